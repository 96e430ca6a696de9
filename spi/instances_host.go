//go:build !tinygo

package spi

// On host builds each instance is backed by an ordinary RAM register block,
// so the whole driver runs in unit tests with bit-level assertions on what
// would have been programmed into silicon.

var hostBlocks [instanceCount]registers

func (inst Instance) regs() *registers {
	return &hostBlocks[inst]
}

// hostRCC records peripheral clock enables the way the RCC block would
// latch them.
type hostRCC struct {
	apb1lenr, apb2enr, apb4enr uint32
}

var hostBusClocks hostRCC

func enableBusClock(inst Instance) {
	info := &instanceTable[inst]
	switch info.bus {
	case busAPB1L:
		hostBusClocks.apb1lenr |= 1 << info.enableBit
	case busAPB2:
		hostBusClocks.apb2enr |= 1 << info.enableBit
	case busAPB4:
		hostBusClocks.apb4enr |= 1 << info.enableBit
	}
}
