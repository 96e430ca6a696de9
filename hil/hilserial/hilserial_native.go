//go:build !tinygo

package hilserial

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"
)

// NativePort drives a real serial device through tarm/serial.
type NativePort struct {
	port *serial.Port
	cfg  *Config
}

// Open opens the configured serial device.
func Open(cfg *Config) (Port, error) {
	if cfg == nil {
		return nil, errors.New("hilserial: nil config")
	}
	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: time.Duration(cfg.ReadTimeout) * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("hilserial: open %s: %w", cfg.Device, err)
	}
	return &NativePort{port: port, cfg: cfg}, nil
}

// Read reads from the device. tarm/serial reports an expired ReadTimeout
// as io.EOF, and a serial line has no real end of stream, so the EOF is
// mapped to an empty read and the session loop polls again.
func (p *NativePort) Read(b []byte) (int, error) {
	n, err := p.port.Read(b)
	if err == io.EOF {
		return n, nil
	}
	return n, err
}

func (p *NativePort) Write(b []byte) (int, error) { return p.port.Write(b) }

func (p *NativePort) Flush() error {
	return p.port.Flush()
}

func (p *NativePort) Close() error {
	if p.port == nil {
		return nil
	}
	return p.port.Close()
}
