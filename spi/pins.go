package spi

import "stm32h7x/pins"

// Admissible pins per instance and role, from the device's alternate
// function mapping. A driver is only constructed over a (SCK, MISO, MOSI)
// tuple drawn from these sets; anything else cannot electrically reach the
// peripheral. pins.NoPin is admissible for every role: a transmit-only port
// has no MISO, a receive-only port no MOSI.
var validPins = [instanceCount]struct {
	sck, miso, mosi []pins.Pin
}{
	SPI1: {
		sck:  []pins.Pin{pins.PA5, pins.PB3, pins.PG11},
		miso: []pins.Pin{pins.PA6, pins.PB4, pins.PG9},
		mosi: []pins.Pin{pins.PA7, pins.PB5, pins.PD7},
	},
	SPI2: {
		sck:  []pins.Pin{pins.PA9, pins.PA12, pins.PB10, pins.PB13, pins.PD3, pins.PI1},
		miso: []pins.Pin{pins.PB14, pins.PC2, pins.PI2},
		mosi: []pins.Pin{pins.PB15, pins.PC1, pins.PC3, pins.PI3},
	},
	SPI3: {
		sck:  []pins.Pin{pins.PB3, pins.PC10},
		miso: []pins.Pin{pins.PB4, pins.PC11},
		mosi: []pins.Pin{pins.PB2, pins.PB5, pins.PC12, pins.PD6},
	},
	SPI4: {
		sck:  []pins.Pin{pins.PE2, pins.PE12},
		miso: []pins.Pin{pins.PE5, pins.PE13},
		mosi: []pins.Pin{pins.PE6, pins.PE14},
	},
	SPI5: {
		sck:  []pins.Pin{pins.PF7, pins.PH6, pins.PK0},
		miso: []pins.Pin{pins.PF8, pins.PH7, pins.PJ11},
		mosi: []pins.Pin{pins.PF9, pins.PF11, pins.PJ10},
	},
	SPI6: {
		sck:  []pins.Pin{pins.PA5, pins.PB3, pins.PG13},
		miso: []pins.Pin{pins.PA6, pins.PB4, pins.PG12},
		mosi: []pins.Pin{pins.PA7, pins.PB5, pins.PG14},
	},
}

// validatePins proves a pin tuple is admissible for the instance. It runs
// before any register write, so a rejected tuple leaves the peripheral
// untouched.
func validatePins(inst Instance, sck, miso, mosi pins.Pin) error {
	set := &validPins[inst]
	if !pinAllowed(set.sck, sck) {
		return ErrInvalidSCKPin
	}
	if !pinAllowed(set.miso, miso) {
		return ErrInvalidMISOPin
	}
	if !pinAllowed(set.mosi, mosi) {
		return ErrInvalidMOSIPin
	}
	return nil
}

func pinAllowed(set []pins.Pin, p pins.Pin) bool {
	if p == pins.NoPin {
		return true
	}
	for _, q := range set {
		if p == q {
			return true
		}
	}
	return false
}
