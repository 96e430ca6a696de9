package spi

import (
	"sync"

	"stm32h7x/rcc"
)

// Instance names one of the six SPI blocks.
type Instance uint8

const (
	SPI1 Instance = iota
	SPI2
	SPI3
	SPI4
	SPI5
	SPI6

	instanceCount
)

// busClock identifies the RCC register holding an instance's peripheral
// clock enable bit.
type busClock uint8

const (
	busAPB1L busClock = iota // APB1LENR
	busAPB2                  // APB2ENR
	busAPB4                  // APB4ENR
)

type instanceInfo struct {
	name      string
	group     rcc.Group
	bus       busClock
	enableBit uint8
}

var instanceTable = [instanceCount]instanceInfo{
	SPI1: {"SPI1", rcc.GroupSPI123, busAPB2, 12},
	SPI2: {"SPI2", rcc.GroupSPI123, busAPB1L, 14},
	SPI3: {"SPI3", rcc.GroupSPI123, busAPB1L, 15},
	SPI4: {"SPI4", rcc.GroupSPI45, busAPB2, 13},
	SPI5: {"SPI5", rcc.GroupSPI45, busAPB2, 20},
	SPI6: {"SPI6", rcc.GroupSPI6, busAPB4, 5},
}

func (inst Instance) String() string {
	if inst >= instanceCount {
		return "SPI?"
	}
	return instanceTable[inst].name
}

// Group returns the kernel clock group the instance draws its clock from.
func (inst Instance) Group() rcc.Group {
	return instanceTable[inst].group
}

// The claim registry enforces one live Port per instance. A claimed
// instance stays claimed until the Port is released, so two drivers can
// never write the same register block.
var (
	claimMu sync.Mutex
	claimed [instanceCount]bool
)

func claim(inst Instance) error {
	claimMu.Lock()
	defer claimMu.Unlock()
	if claimed[inst] {
		return ErrInstanceClaimed
	}
	claimed[inst] = true
	return nil
}

func unclaim(inst Instance) {
	claimMu.Lock()
	claimed[inst] = false
	claimMu.Unlock()
}
