package spi

import (
	"unsafe"

	"stm32h7x/pins"
	"stm32h7x/rcc"
)

// Word is the set of types a port can transfer. The configured frame size
// picks the width: frames of 4..8 bits move as uint8, 9..16 as uint16,
// 17..32 as uint32. Construction fails unless the type parameter matches.
type Word interface {
	~uint8 | ~uint16 | ~uint32
}

// Port is one claimed SPI instance in master mode. It is the sole writer to
// that instance's registers until Release. Operations are non-blocking:
// TrySend and TryReceive return ErrWouldBlock instead of waiting, and all
// retry and deadline policy stays with the caller.
//
// A Port must not be shared between contexts without external
// synchronization. If interrupts are enabled through Listen, route all
// register access through one owner and use the interrupt as a wake signal.
type Port[W Word] struct {
	inst     Instance
	regs     *registers
	released bool
}

// Event is a notification category for Listen and Unlisten.
type Event uint8

const (
	// ReceiveReady fires when a received word is ready to be read.
	ReceiveReady Event = iota
	// TransmitReady fires when there is room to send another word.
	TransmitReady
	// ErrorGroup fires on any of underrun, overrun, CRC error or mode
	// fault. The four flags are always enabled and disabled together.
	ErrorGroup
	// TransactionComplete fires at the end of a sized transaction.
	TransactionComplete
)

const errorGroupIE = ierUDRIE | ierOVRIE | ierCRCEIE | ierMODFIE

// New claims an instance and programs it in one step: prove the pin tuple
// is admissible, resolve the kernel clock through the tree, reduce the
// requested rate to a divisor, then write the register program and enable
// the port. Any failure happens before the first register write and leaves
// the peripheral untouched and unclaimed.
//
// The pins must already be in the right alternate function; this driver
// never touches GPIO. Unused signals are passed as pins.NoPin.
func New[W Word](inst Instance, sck, miso, mosi pins.Pin, cfg Config, rate rcc.Hertz, tree rcc.ClockTree) (*Port[W], error) {
	if inst >= instanceCount {
		return nil, ErrUnknownInstance
	}
	if err := validatePins(inst, sck, miso, mosi); err != nil {
		return nil, err
	}
	return newPort[W](inst, cfg, rate, tree)
}

// NewUnchecked is New without the pin proof, for pin muxings the capability
// table does not know about. The caller vouches for the routing.
func NewUnchecked[W Word](inst Instance, cfg Config, rate rcc.Hertz, tree rcc.ClockTree) (*Port[W], error) {
	if inst >= instanceCount {
		return nil, ErrUnknownInstance
	}
	return newPort[W](inst, cfg, rate, tree)
}

func newPort[W Word](inst Instance, cfg Config, rate rcc.Hertz, tree rcc.ClockTree) (*Port[W], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var w W
	if unsafe.Sizeof(w) != wordBytes(cfg.frameSize) {
		return nil, ErrWordWidth
	}
	kernel, err := rcc.KernelClock(tree, inst.Group())
	if err != nil {
		return nil, err
	}
	mbr, err := divisorFor(kernel, rate)
	if err != nil {
		return nil, err
	}
	csCycles := csDelayCycles(cfg.csDelay, rate)

	if err := claim(inst); err != nil {
		return nil, err
	}
	enableBusClock(inst)
	r := inst.regs()

	// Keep the SS output disabled while the port is being programmed.
	r.cfg2.Set(0)
	r.cfg1.ReplaceBits(mbr, cfg1MBRMask, cfg1MBRPos)
	r.cfg1.ReplaceBits(uint32(cfg.frameSize-1), cfg1DSIZEMask, cfg1DSIZEPos)
	r.cr2.Set(uint32(cfg.transferSize))
	r.cr1.Set(cr1SSI)
	r.cfg2.Set(composeCFG2(cfg, csCycles))
	r.cr1.Set(cr1SSI | cr1SPE)

	return &Port[W]{inst: inst, regs: r}, nil
}

// wordBytes returns the transfer width a frame size requires.
func wordBytes(frameSize uint8) uintptr {
	switch {
	case frameSize <= 8:
		return 1
	case frameSize <= 16:
		return 2
	}
	return 4
}

// srError maps status error flags to their error, in fixed priority:
// overrun, then mode fault, then CRC. An error present alongside ready data
// is always reported, never skipped.
func srError(sr uint32) error {
	switch {
	case sr&srOVR != 0:
		return ErrOverrun
	case sr&srMODF != 0:
		return ErrModeFault
	case sr&srCRCE != 0:
		return ErrCRC
	}
	return nil
}

// TryReceive reads one received word if one is ready. With no word ready it
// returns ErrWouldBlock. Error flags are sticky in hardware: once reported
// they keep being reported until the caller clears them.
func (p *Port[W]) TryReceive() (W, error) {
	if p.released {
		return 0, ErrPortReleased
	}
	sr := p.regs.sr.Get()
	if err := srError(sr); err != nil {
		return 0, err
	}
	if sr&srRXP == 0 {
		return 0, ErrWouldBlock
	}
	return p.readWord(), nil
}

// TrySend queues one word if there is transmit room, strobing the master
// transaction start exactly once per accepted word. With no room it returns
// ErrWouldBlock and the hardware is not touched.
func (p *Port[W]) TrySend(w W) error {
	if p.released {
		return ErrPortReleased
	}
	sr := p.regs.sr.Get()
	if err := srError(sr); err != nil {
		return err
	}
	if sr&srTXP == 0 {
		return ErrWouldBlock
	}
	p.writeWord(w)
	p.regs.cr1.SetBits(cr1CSTART)
	return nil
}

// The data register access width must match the configured frame width;
// construction guaranteed sizeof(W) is that width.

func (p *Port[W]) readWord() W {
	var w W
	switch unsafe.Sizeof(w) {
	case 1:
		return W(p.regs.rxdr.Load8())
	case 2:
		return W(p.regs.rxdr.Load16())
	}
	return W(p.regs.rxdr.Load32())
}

func (p *Port[W]) writeWord(w W) {
	switch unsafe.Sizeof(w) {
	case 1:
		p.regs.txdr.Store8(uint8(w))
	case 2:
		p.regs.txdr.Store16(uint16(w))
	default:
		p.regs.txdr.Store32(uint32(w))
	}
}

// TxReady reports whether the port can accept another word.
func (p *Port[W]) TxReady() bool {
	return !p.released && p.regs.sr.HasBits(srTXP)
}

// RxReady reports whether a received word is waiting.
func (p *Port[W]) RxReady() bool {
	return !p.released && p.regs.sr.HasBits(srRXP)
}

// ModeFault reports whether the port detected a multi-master conflict.
func (p *Port[W]) ModeFault() bool {
	return !p.released && p.regs.sr.HasBits(srMODF)
}

// Overrun reports whether received data was lost.
func (p *Port[W]) Overrun() bool {
	return !p.released && p.regs.sr.HasBits(srOVR)
}

// Listen enables interrupt notification for an event category. It has no
// effect on polling; it only gates whether the interrupt line fires.
func (p *Port[W]) Listen(e Event) error {
	if p.released {
		return ErrPortReleased
	}
	mask, err := eventMask(e)
	if err != nil {
		return err
	}
	p.regs.ier.SetBits(mask)
	return nil
}

// Unlisten disables interrupt notification for an event category.
func (p *Port[W]) Unlisten(e Event) error {
	if p.released {
		return ErrPortReleased
	}
	mask, err := eventMask(e)
	if err != nil {
		return err
	}
	p.regs.ier.ClearBits(mask)
	return nil
}

func eventMask(e Event) (uint32, error) {
	switch e {
	case ReceiveReady:
		return ierRXPIE, nil
	case TransmitReady:
		return ierTXPIE, nil
	case ErrorGroup:
		return errorGroupIE, nil
	case TransactionComplete:
		return ierEOTIE, nil
	}
	return 0, ErrUnknownEvent
}

// Instance returns which SPI block the port drives.
func (p *Port[W]) Instance() Instance {
	return p.inst
}

// Release hands the instance back: the claim is dropped so the instance can
// be constructed again, and every further operation on this port returns
// ErrPortReleased. Registers keep their programmed values; any shutdown
// sequencing belongs to the caller. Release is idempotent.
func (p *Port[W]) Release() Instance {
	if !p.released {
		p.released = true
		unclaim(p.inst)
	}
	return p.inst
}
