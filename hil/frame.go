// Package hil carries selftest reports from a board under test to the host
// harness. Frames are length-prefixed, sequence-numbered, CRC16-protected
// and sync-terminated, so the host can pick up mid-stream and survive line
// noise: any malformed frame drops the decoder out of sync and it scans
// forward to the next sync byte.
//
// Frame layout:
//
//	[length u8] [sequence u8] [payload ...] [crc16 big endian] [0x7E]
//
// The CRC covers the length, sequence and payload bytes.
package hil

import (
	"bytes"
	"errors"

	"github.com/sigurn/crc16"
)

const (
	frameHeaderSize  = 2
	frameTrailerSize = 3

	// FrameLengthMin and FrameLengthMax bound the length byte. Anything
	// outside is treated as stream corruption.
	FrameLengthMin = frameHeaderSize + frameTrailerSize
	FrameLengthMax = 64

	// SyncByte terminates every frame.
	SyncByte = 0x7E
)

// MaxPayload is the largest payload a single frame can carry.
const MaxPayload = FrameLengthMax - FrameLengthMin

var ErrPayloadTooLarge = errors.New("hil: payload exceeds frame capacity")

var crcTable = crc16.MakeTable(crc16.CRC16_CCITT_FALSE)

// Encode wraps a payload into one frame.
func Encode(seq uint8, payload []byte) ([]byte, error) {
	if len(payload) > MaxPayload {
		return nil, ErrPayloadTooLarge
	}
	n := len(payload) + FrameLengthMin
	f := make([]byte, 0, n)
	f = append(f, byte(n), seq)
	f = append(f, payload...)
	crc := crc16.Checksum(f, crcTable)
	f = append(f, byte(crc>>8), byte(crc))
	f = append(f, SyncByte)
	return f, nil
}

// Frame is one decoded frame.
type Frame struct {
	Seq     uint8
	Payload []byte
}

// Decoder extracts frames from a byte stream. It starts synchronized; any
// framing or CRC violation desynchronizes it and input is discarded up to
// the next sync byte.
type Decoder struct {
	buf    []byte
	synced bool
}

func NewDecoder() *Decoder {
	return &Decoder{synced: true}
}

// Feed appends raw bytes and returns the complete frames found. Partial
// frames stay buffered for the next call.
func (d *Decoder) Feed(data []byte) []Frame {
	d.buf = append(d.buf, data...)
	var frames []Frame
	for {
		f, ok := d.next()
		if !ok {
			return frames
		}
		frames = append(frames, f)
	}
}

func (d *Decoder) next() (Frame, bool) {
	for {
		if !d.synced {
			idx := bytes.IndexByte(d.buf, SyncByte)
			if idx < 0 {
				d.buf = d.buf[:0]
				return Frame{}, false
			}
			d.buf = d.buf[idx+1:]
			d.synced = true
		}

		// Sync bytes between frames are padding.
		for len(d.buf) > 0 && d.buf[0] == SyncByte {
			d.buf = d.buf[1:]
		}
		if len(d.buf) < FrameLengthMin {
			return Frame{}, false
		}

		n := int(d.buf[0])
		if n < FrameLengthMin || n > FrameLengthMax {
			d.synced = false
			continue
		}
		if len(d.buf) < n {
			return Frame{}, false
		}
		if d.buf[n-1] != SyncByte {
			d.synced = false
			continue
		}
		want := uint16(d.buf[n-3])<<8 | uint16(d.buf[n-2])
		if crc16.Checksum(d.buf[:n-3], crcTable) != want {
			d.synced = false
			continue
		}

		f := Frame{
			Seq:     d.buf[1],
			Payload: append([]byte(nil), d.buf[frameHeaderSize:n-frameTrailerSize]...),
		}
		d.buf = d.buf[n:]
		return f, true
	}
}
