// Package pins names the GPIO pins of the STM32H7 parts. A Pin value packs
// the port index and the pin number into one byte, so pin identities are
// cheap to store in capability tables and compare in hot paths.
//
// This package only identifies pins. Alternate-function capability, such as
// which pins may carry a given SPI signal, is owned by the peripheral
// packages that consume them.
package pins

import "strconv"

// Pin is a single GPIO pin, encoded as port*16 + number.
type Pin uint8

// NoPin explicitly marks a signal as unconnected. Peripherals treat a role
// assigned NoPin as deliberately absent rather than invalid.
const NoPin Pin = 0xFF

const (
	portA Pin = iota * 16
	portB
	portC
	portD
	portE
	portF
	portG
	portH
	portI
	portJ
	portK
)

// Port A
const (
	PA0 = portA + iota
	PA1
	PA2
	PA3
	PA4
	PA5
	PA6
	PA7
	PA8
	PA9
	PA10
	PA11
	PA12
	PA13
	PA14
	PA15
)

// Port B
const (
	PB0 = portB + iota
	PB1
	PB2
	PB3
	PB4
	PB5
	PB6
	PB7
	PB8
	PB9
	PB10
	PB11
	PB12
	PB13
	PB14
	PB15
)

// Port C
const (
	PC0 = portC + iota
	PC1
	PC2
	PC3
	PC4
	PC5
	PC6
	PC7
	PC8
	PC9
	PC10
	PC11
	PC12
	PC13
	PC14
	PC15
)

// Port D
const (
	PD0 = portD + iota
	PD1
	PD2
	PD3
	PD4
	PD5
	PD6
	PD7
	PD8
	PD9
	PD10
	PD11
	PD12
	PD13
	PD14
	PD15
)

// Port E
const (
	PE0 = portE + iota
	PE1
	PE2
	PE3
	PE4
	PE5
	PE6
	PE7
	PE8
	PE9
	PE10
	PE11
	PE12
	PE13
	PE14
	PE15
)

// Port F
const (
	PF0 = portF + iota
	PF1
	PF2
	PF3
	PF4
	PF5
	PF6
	PF7
	PF8
	PF9
	PF10
	PF11
	PF12
	PF13
	PF14
	PF15
)

// Port G
const (
	PG0 = portG + iota
	PG1
	PG2
	PG3
	PG4
	PG5
	PG6
	PG7
	PG8
	PG9
	PG10
	PG11
	PG12
	PG13
	PG14
	PG15
)

// Port H
const (
	PH0 = portH + iota
	PH1
	PH2
	PH3
	PH4
	PH5
	PH6
	PH7
	PH8
	PH9
	PH10
	PH11
	PH12
	PH13
	PH14
	PH15
)

// Port I
const (
	PI0 = portI + iota
	PI1
	PI2
	PI3
	PI4
	PI5
	PI6
	PI7
	PI8
	PI9
	PI10
	PI11
	PI12
	PI13
	PI14
	PI15
)

// Port J
const (
	PJ0 = portJ + iota
	PJ1
	PJ2
	PJ3
	PJ4
	PJ5
	PJ6
	PJ7
	PJ8
	PJ9
	PJ10
	PJ11
	PJ12
	PJ13
	PJ14
	PJ15
)

// Port K
const (
	PK0 = portK + iota
	PK1
	PK2
	PK3
	PK4
	PK5
	PK6
	PK7
	PK8
	PK9
	PK10
	PK11
	PK12
	PK13
	PK14
	PK15
)

// Port returns the zero-based port index (0 for A, 1 for B, ...).
func (p Pin) Port() uint8 {
	return uint8(p) >> 4
}

// Num returns the pin number within its port, 0 through 15.
func (p Pin) Num() uint8 {
	return uint8(p) & 0x0F
}

// String returns the conventional pin name, such as "PA5".
func (p Pin) String() string {
	if p == NoPin {
		return "NoPin"
	}
	if p > PK15 {
		return "Pin(" + strconv.Itoa(int(p)) + ")"
	}
	return "P" + string(rune('A'+p.Port())) + strconv.Itoa(int(p.Num()))
}
