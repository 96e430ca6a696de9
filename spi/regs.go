package spi

import "stm32h7x/internal/mmio"

// registers is the SPI block layout. Field offsets follow the reference
// manual; padding keeps each register at its documented address.
type registers struct {
	cr1     mmio.U32  // 0x00 control 1: enable, start, SSI
	cr2     mmio.U32  // 0x04 control 2: transaction size
	cfg1    mmio.U32  // 0x08 configuration 1: divisor, data size
	cfg2    mmio.U32  // 0x0C configuration 2: mode, duplex, CS handling
	ier     mmio.U32  // 0x10 interrupt enables
	sr      mmio.U32  // 0x14 status
	ifcr    mmio.U32  // 0x18 interrupt/status flag clear
	_       mmio.U32  // 0x1C
	txdr    mmio.Data // 0x20 transmit data, byte/half/word access
	_       [3]mmio.U32
	rxdr    mmio.Data // 0x30 receive data, byte/half/word access
	_       [3]mmio.U32
	crcpoly mmio.U32 // 0x40
	txcrc   mmio.U32 // 0x44
	rxcrc   mmio.U32 // 0x48
	udrdr   mmio.U32 // 0x4C
	i2scfgr mmio.U32 // 0x50
}

// CR1 bits.
const (
	cr1SPE    = 1 << 0  // peripheral enable
	cr1CSTART = 1 << 9  // master transaction start
	cr1SSI    = 1 << 12 // internal slave select (not selected)
)

// CFG1 fields.
const (
	cfg1DSIZEPos  = 0 // frame size minus one
	cfg1DSIZEMask = 0x1F
	cfg1MBRPos    = 28 // master baud rate divisor code
	cfg1MBRMask   = 0x7
)

// CFG2 fields.
const (
	cfg2MSSIPos  = 0 // master SS idle cycles (CS delay)
	cfg2MSSIMask = 0xF
	cfg2IOSWP    = 1 << 15 // swap MISO/MOSI
	cfg2COMMPos  = 17      // communication direction
	cfg2COMMMask = 0x3
	cfg2MASTER   = 1 << 22
	cfg2LSBFRST  = 1 << 23 // kept clear: MSB first
	cfg2CPHA     = 1 << 24
	cfg2CPOL     = 1 << 25
	cfg2SSM      = 1 << 26 // software slave management
	cfg2SSOE     = 1 << 29 // SS output enable (hardware CS)
)

// IER bits.
const (
	ierRXPIE  = 1 << 0
	ierTXPIE  = 1 << 1
	ierEOTIE  = 1 << 3
	ierUDRIE  = 1 << 5
	ierOVRIE  = 1 << 6
	ierCRCEIE = 1 << 7
	ierMODFIE = 1 << 9
)

// SR bits.
const (
	srRXP  = 1 << 0 // receive data available
	srTXP  = 1 << 1 // transmit space available
	srEOT  = 1 << 3 // end of transaction
	srUDR  = 1 << 5 // underrun
	srOVR  = 1 << 6 // overrun
	srCRCE = 1 << 7 // CRC error
	srMODF = 1 << 9 // mode fault
)
