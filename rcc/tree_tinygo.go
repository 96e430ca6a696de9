//go:build tinygo

package rcc

import (
	"unsafe"

	"stm32h7x/internal/mmio"
)

// Kernel clock selector fields live in two domain clock configuration
// registers of the RCC block.
const rccBase uintptr = 0x5802_4400

type rccSelRegs struct {
	_        [0x50]byte
	d2ccip1r mmio.U32 // SPI123SEL [14:12], SPI45SEL [18:16]
	_        [4]byte
	d3ccipr  mmio.U32 // SPI6SEL [30:28]
}

var selRegs = (*rccSelRegs)(unsafe.Pointer(rccBase))

// LiveTree answers kernel clock selections from the RCC registers and
// source frequencies from a table the board's clock bring-up fills in.
// The zero value reports every source as stopped.
type LiveTree struct {
	frequency [sourceCount]Hertz
}

// Run marks a source as running at the given frequency. Boards call this
// once per configured source after clock bring-up.
func (t *LiveTree) Run(s Source, hz Hertz) *LiveTree {
	t.frequency[s] = hz
	return t
}

func (t *LiveTree) KernelSelection(g Group) uint8 {
	switch g {
	case GroupSPI123:
		return uint8(selRegs.d2ccip1r.Get() >> 12 & 0x7)
	case GroupSPI45:
		return uint8(selRegs.d2ccip1r.Get() >> 16 & 0x7)
	case GroupSPI6:
		return uint8(selRegs.d3ccipr.Get() >> 28 & 0x7)
	}
	return 0xFF
}

func (t *LiveTree) SourceFrequency(s Source) (Hertz, bool) {
	if s >= sourceCount || t.frequency[s] == 0 {
		return 0, false
	}
	return t.frequency[s], true
}
