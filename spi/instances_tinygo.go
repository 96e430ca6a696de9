//go:build tinygo

package spi

import (
	"unsafe"

	"stm32h7x/internal/mmio"
)

var instanceBases = [instanceCount]uintptr{
	SPI1: 0x4001_3000,
	SPI2: 0x4000_3800,
	SPI3: 0x4000_3C00,
	SPI4: 0x4001_3400,
	SPI5: 0x4001_5000,
	SPI6: 0x5800_1400,
}

func (inst Instance) regs() *registers {
	return (*registers)(unsafe.Pointer(instanceBases[inst]))
}

// Peripheral clock enable registers in the RCC block.
type rccEnableRegs struct {
	_        [0xE8]byte
	apb1lenr mmio.U32 // 0xE8
	_        [4]byte  // APB1HENR
	apb2enr  mmio.U32 // 0xF0
	apb4enr  mmio.U32 // 0xF4
}

var rccEnable = (*rccEnableRegs)(unsafe.Pointer(uintptr(0x5802_4400)))

func enableBusClock(inst Instance) {
	info := &instanceTable[inst]
	switch info.bus {
	case busAPB1L:
		rccEnable.apb1lenr.SetBits(1 << info.enableBit)
	case busAPB2:
		rccEnable.apb2enr.SetBits(1 << info.enableBit)
	case busAPB4:
		rccEnable.apb4enr.SetBits(1 << info.enableBit)
	}
}
