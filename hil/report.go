package hil

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Check identifiers carried in report payloads. The board runs the checks
// in this order and closes the stream with CheckSummary.
const (
	CheckKernelClock uint8 = iota + 1
	CheckRateLadder
	CheckConstruct
	CheckClaim
	CheckPinProof
	CheckLoopback8
	CheckLoopback16

	// CheckSummary closes a run: Got counts failures, Want counts checks.
	CheckSummary uint8 = 0xFF
)

var checkNames = map[uint8]string{
	CheckKernelClock: "kernel-clock",
	CheckRateLadder:  "rate-ladder",
	CheckConstruct:   "construct",
	CheckClaim:       "claim",
	CheckPinProof:    "pin-proof",
	CheckLoopback8:   "loopback-8bit",
	CheckLoopback16:  "loopback-16bit",
	CheckSummary:     "summary",
}

// CheckName returns the human name of a check identifier.
func CheckName(id uint8) string {
	if name, ok := checkNames[id]; ok {
		return name
	}
	return fmt.Sprintf("check-%#02x", id)
}

// Status is a check verdict.
type Status uint8

const (
	Pass Status = iota
	Fail
	Skip
)

func (s Status) String() string {
	switch s {
	case Pass:
		return "PASS"
	case Fail:
		return "FAIL"
	case Skip:
		return "SKIP"
	}
	return "????"
}

// Report is one check verdict with the observed and expected values, little
// endian on the wire:
//
//	[check u8] [status u8] [got u32] [want u32]
type Report struct {
	Check  uint8
	Status Status
	Got    uint32
	Want   uint32
}

const reportSize = 10

var ErrBadReport = errors.New("hil: malformed report payload")

// Marshal encodes the report payload.
func (r Report) Marshal() []byte {
	p := make([]byte, reportSize)
	p[0] = r.Check
	p[1] = byte(r.Status)
	binary.LittleEndian.PutUint32(p[2:], r.Got)
	binary.LittleEndian.PutUint32(p[6:], r.Want)
	return p
}

// ParseReport decodes a report payload.
func ParseReport(p []byte) (Report, error) {
	if len(p) != reportSize {
		return Report{}, ErrBadReport
	}
	return Report{
		Check:  p[0],
		Status: Status(p[1]),
		Got:    binary.LittleEndian.Uint32(p[2:]),
		Want:   binary.LittleEndian.Uint32(p[6:]),
	}, nil
}
