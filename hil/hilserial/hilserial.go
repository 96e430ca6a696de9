// Package hilserial opens the serial link to a board running the selftest
// firmware. The Port interface keeps the session code independent of the
// transport so tests can substitute an in-memory pipe.
package hilserial

import "io"

// Port is a byte stream to the board under test.
type Port interface {
	io.ReadWriteCloser

	// Flush discards whatever sits in the driver buffers, usually boot
	// noise from before the harness attached.
	Flush() error
}

// Config holds the link settings.
type Config struct {
	// Device is the port path, e.g. "/dev/ttyACM0" or "COM3".
	Device string

	// Baud is the line rate. USB CDC links ignore it.
	Baud int

	// ReadTimeout bounds a single Read, in milliseconds. Zero blocks.
	ReadTimeout int
}
