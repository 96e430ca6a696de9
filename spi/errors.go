package spi

import "errors"

// Transfer errors mirror the peripheral's sticky error flags. The driver
// reports them but never clears them; recovery is the caller's action.
var (
	// ErrOverrun reports that received data was overwritten before being read.
	ErrOverrun = errors.New("spi: receive overrun")
	// ErrModeFault reports a multi-master conflict on the bus.
	ErrModeFault = errors.New("spi: mode fault")
	// ErrCRC reports a CRC check failure on received data.
	ErrCRC = errors.New("spi: crc error")
	// ErrWouldBlock signals that no progress is possible right now and the
	// caller should retry. It is returned as-is, never wrapped.
	ErrWouldBlock = errors.New("spi: would block")
)

// Construction-time errors. All of them surface before the first register
// write, so a failed constructor leaves the peripheral untouched.
var (
	ErrZeroRate        = errors.New("spi: requested rate is zero")
	ErrRateTooHigh     = errors.New("spi: requested rate exceeds kernel clock")
	ErrFrameSize       = errors.New("spi: frame size must be 4 to 32 bits")
	ErrNegativeCSDelay = errors.New("spi: cs delay must not be negative")
	ErrWordWidth       = errors.New("spi: word type does not match frame size")
	ErrInvalidSCKPin   = errors.New("spi: pin cannot serve SCK on this instance")
	ErrInvalidMISOPin  = errors.New("spi: pin cannot serve MISO on this instance")
	ErrInvalidMOSIPin  = errors.New("spi: pin cannot serve MOSI on this instance")
	ErrInstanceClaimed = errors.New("spi: instance already claimed")
	ErrUnknownInstance = errors.New("spi: unknown instance")
)

var (
	// ErrPortReleased is returned by every operation on a released port.
	ErrPortReleased = errors.New("spi: port released")
	// ErrUnknownEvent is returned by Listen and Unlisten for events this
	// driver does not know.
	ErrUnknownEvent = errors.New("spi: unknown event")
	// ErrTxSliceMismatch is returned by Blocking.Tx when both slices are
	// given with different lengths.
	ErrTxSliceMismatch = errors.New("spi: tx and rx slices must be the same length")
)
