package spi

import (
	"errors"
	"testing"

	"stm32h7x/pins"
	"stm32h7x/rcc"
)

// testTree runs the reset-default source of every group at 100 MHz.
func testTree() *rcc.StaticTree {
	return new(rcc.StaticTree).
		Run(rcc.PLL1Q, 100*rcc.MHz).
		Run(rcc.PCLK2, 100*rcc.MHz).
		Run(rcc.PCLK4, 100*rcc.MHz)
}

// resetInstance gives a test a zeroed register block and a free claim, and
// restores both when the test ends.
func resetInstance(t *testing.T, inst Instance) {
	t.Helper()
	hostBlocks[inst] = registers{}
	hostBusClocks = hostRCC{}
	t.Cleanup(func() {
		unclaim(inst)
		hostBlocks[inst] = registers{}
	})
}

func field(v, mask uint32, pos uint8) uint32 {
	return v >> pos & mask
}

func TestNewProgramsFullRegisterSet(t *testing.T) {
	resetInstance(t, SPI1)
	p, err := New[uint8](SPI1, pins.PA5, pins.PA6, pins.PA7,
		NewConfig(Mode0), 1*rcc.MHz, testTree())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer p.Release()

	r := &hostBlocks[SPI1]
	cfg1 := r.cfg1.Get()
	// 100 MHz kernel, 1 MHz request: ratio 100 lands in the ÷128 rung.
	if mbr := field(cfg1, cfg1MBRMask, cfg1MBRPos); mbr != 6 {
		t.Errorf("MBR = %d, want 6 (÷128)", mbr)
	}
	if dsize := field(cfg1, cfg1DSIZEMask, cfg1DSIZEPos); dsize != 7 {
		t.Errorf("DSIZE = %d, want 7 (8-bit frames)", dsize)
	}
	if tsize := r.cr2.Get(); tsize != 0 {
		t.Errorf("TSIZE = %d, want 0 (endless)", tsize)
	}
	if cr1 := r.cr1.Get(); cr1 != cr1SSI|cr1SPE {
		t.Errorf("CR1 = %#x, want SSI|SPE", cr1)
	}
	cfg2 := r.cfg2.Get()
	if cfg2&cfg2MASTER == 0 || cfg2&cfg2SSM == 0 {
		t.Errorf("CFG2 = %#x, want MASTER and SSM set", cfg2)
	}
	if cfg2&(cfg2SSOE|cfg2IOSWP|cfg2CPOL|cfg2CPHA) != 0 {
		t.Errorf("CFG2 = %#x, unexpected option bits for a default config", cfg2)
	}
	if hostBusClocks.apb2enr&(1<<12) == 0 {
		t.Error("SPI1 peripheral clock not enabled in APB2ENR")
	}
}

func TestNewProgramsEveryConfigField(t *testing.T) {
	resetInstance(t, SPI2)
	cfg := NewConfig(Mode3).
		FrameSize(16).
		ManageCS().
		SwapMisoMosi().
		CommMode(HalfDuplex).
		TransferSize(10).
		CSDelay(2.5e-6) // 2.5 cycles at 1 MHz: truncate, then margin
	p, err := New[uint16](SPI2, pins.PB10, pins.PB14, pins.PB15,
		cfg, 1*rcc.MHz, testTree())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer p.Release()

	r := &hostBlocks[SPI2]
	if dsize := field(r.cfg1.Get(), cfg1DSIZEMask, cfg1DSIZEPos); dsize != 15 {
		t.Errorf("DSIZE = %d, want 15", dsize)
	}
	if tsize := r.cr2.Get(); tsize != 10 {
		t.Errorf("TSIZE = %d, want 10", tsize)
	}
	v := r.cfg2.Get()
	if v&cfg2CPOL == 0 || v&cfg2CPHA == 0 {
		t.Error("Mode3 bits missing from CFG2")
	}
	if v&cfg2SSOE == 0 || v&cfg2SSM != 0 {
		t.Errorf("CFG2 = %#x: managed CS must set SSOE and leave SSM clear", v)
	}
	if v&cfg2IOSWP == 0 {
		t.Error("IOSWP not set")
	}
	if comm := field(v, cfg2COMMMask, cfg2COMMPos); comm != uint32(HalfDuplex) {
		t.Errorf("COMM = %d, want %d", comm, HalfDuplex)
	}
	if mssi := field(v, cfg2MSSIMask, cfg2MSSIPos); mssi != 3 {
		t.Errorf("MSSI = %d, want 3", mssi)
	}
	if hostBusClocks.apb1lenr&(1<<14) == 0 {
		t.Error("SPI2 peripheral clock not enabled in APB1LENR")
	}
}

func TestConstructionFailuresLeaveRegistersUntouched(t *testing.T) {
	good := testTree()
	stopped := new(rcc.StaticTree) // every source dead
	cases := []struct {
		name string
		run  func() error
		want error
	}{
		{"invalid pin", func() error {
			_, err := New[uint8](SPI1, pins.PA0, pins.PA6, pins.PA7,
				NewConfig(Mode0), 1*rcc.MHz, good)
			return err
		}, ErrInvalidSCKPin},
		{"bad frame size", func() error {
			_, err := New[uint8](SPI1, pins.PA5, pins.PA6, pins.PA7,
				NewConfig(Mode0).FrameSize(3), 1*rcc.MHz, good)
			return err
		}, ErrFrameSize},
		{"negative cs delay", func() error {
			_, err := New[uint8](SPI1, pins.PA5, pins.PA6, pins.PA7,
				NewConfig(Mode0).CSDelay(-1), 1*rcc.MHz, good)
			return err
		}, ErrNegativeCSDelay},
		{"word width mismatch", func() error {
			_, err := New[uint8](SPI1, pins.PA5, pins.PA6, pins.PA7,
				NewConfig(Mode0).FrameSize(16), 1*rcc.MHz, good)
			return err
		}, ErrWordWidth},
		{"zero rate", func() error {
			_, err := New[uint8](SPI1, pins.PA5, pins.PA6, pins.PA7,
				NewConfig(Mode0), 0, good)
			return err
		}, ErrZeroRate},
		{"rate above kernel", func() error {
			_, err := New[uint8](SPI1, pins.PA5, pins.PA6, pins.PA7,
				NewConfig(Mode0), 200*rcc.MHz, good)
			return err
		}, ErrRateTooHigh},
		{"stopped kernel clock", func() error {
			_, err := New[uint8](SPI1, pins.PA5, pins.PA6, pins.PA7,
				NewConfig(Mode0), 1*rcc.MHz, stopped)
			return err
		}, rcc.ErrSourceStopped},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			resetInstance(t, SPI1)
			if err := c.run(); !errors.Is(err, c.want) {
				t.Fatalf("err = %v, want %v", err, c.want)
			}
			if hostBlocks[SPI1] != (registers{}) {
				t.Error("registers written by a failed construction")
			}
			if err := claim(SPI1); err != nil {
				t.Error("instance left claimed by a failed construction")
			}
			unclaim(SPI1)
		})
	}
}

func TestInstanceClaiming(t *testing.T) {
	resetInstance(t, SPI3)
	tree := testTree()

	p1, err := New[uint8](SPI3, pins.PB3, pins.PB4, pins.PB2,
		NewConfig(Mode0), 1*rcc.MHz, tree)
	if err != nil {
		t.Fatalf("first New: %v", err)
	}
	if _, err := New[uint8](SPI3, pins.PC10, pins.PC11, pins.PC12,
		NewConfig(Mode0), 1*rcc.MHz, tree); !errors.Is(err, ErrInstanceClaimed) {
		t.Fatalf("second New: err = %v, want ErrInstanceClaimed", err)
	}
	if inst := p1.Release(); inst != SPI3 {
		t.Fatalf("Release returned %v, want SPI3", inst)
	}
	p2, err := New[uint8](SPI3, pins.PB3, pins.PB4, pins.PB2,
		NewConfig(Mode0), 1*rcc.MHz, tree)
	if err != nil {
		t.Fatalf("New after Release: %v", err)
	}
	p2.Release()
}

func TestWordWidthMustMatchFrameSize(t *testing.T) {
	resetInstance(t, SPI4)
	tree := testTree()
	cases := []struct {
		bits  uint8
		width uint8 // 1, 2 or 4: the only word size this frame fits
	}{
		{4, 1}, {8, 1},
		{9, 2}, {16, 2},
		{17, 4}, {32, 4},
	}
	for _, c := range cases {
		cfg := NewConfig(Mode0).FrameSize(c.bits)

		if p, err := NewUnchecked[uint8](SPI4, cfg, 1*rcc.MHz, tree); err == nil {
			p.Release()
			if c.width != 1 {
				t.Errorf("frame size %d accepted uint8", c.bits)
			}
		} else if c.width == 1 {
			t.Errorf("frame size %d rejected uint8: %v", c.bits, err)
		} else if !errors.Is(err, ErrWordWidth) {
			t.Errorf("frame size %d as uint8: err = %v, want ErrWordWidth", c.bits, err)
		}

		if p, err := NewUnchecked[uint16](SPI4, cfg, 1*rcc.MHz, tree); err == nil {
			p.Release()
			if c.width != 2 {
				t.Errorf("frame size %d accepted uint16", c.bits)
			}
		} else if c.width == 2 {
			t.Errorf("frame size %d rejected uint16: %v", c.bits, err)
		}

		if p, err := NewUnchecked[uint32](SPI4, cfg, 1*rcc.MHz, tree); err == nil {
			p.Release()
			if c.width != 4 {
				t.Errorf("frame size %d accepted uint32", c.bits)
			}
		} else if c.width == 4 {
			t.Errorf("frame size %d rejected uint32: %v", c.bits, err)
		}
	}
}

func TestTryReceivePriorityAndData(t *testing.T) {
	resetInstance(t, SPI5)
	p, err := New[uint8](SPI5, pins.PF7, pins.PF8, pins.PF9,
		NewConfig(Mode0), 1*rcc.MHz, testTree())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer p.Release()
	r := &hostBlocks[SPI5]

	if _, err := p.TryReceive(); err != ErrWouldBlock {
		t.Fatalf("idle port: err = %v, want ErrWouldBlock", err)
	}

	r.rxdr.Store8(0x5A)
	r.sr.Set(srRXP)
	w, err := p.TryReceive()
	if err != nil {
		t.Fatalf("TryReceive with data ready: %v", err)
	}
	if w != 0x5A {
		t.Errorf("received %#x, want 0x5a", w)
	}

	// Overrun wins over CRC even with a word waiting.
	r.sr.Set(srOVR | srCRCE | srRXP)
	if _, err := p.TryReceive(); !errors.Is(err, ErrOverrun) {
		t.Errorf("overrun+crc: err = %v, want ErrOverrun", err)
	}

	r.sr.Set(srMODF | srCRCE)
	if _, err := p.TryReceive(); !errors.Is(err, ErrModeFault) {
		t.Errorf("modf+crc: err = %v, want ErrModeFault", err)
	}

	r.sr.Set(srCRCE | srRXP)
	if _, err := p.TryReceive(); !errors.Is(err, ErrCRC) {
		t.Errorf("crc: err = %v, want ErrCRC", err)
	}
}

func TestTrySendStrobesStartOncePerWord(t *testing.T) {
	resetInstance(t, SPI2)
	p, err := New[uint8](SPI2, pins.PD3, pins.PC2, pins.PC1,
		NewConfig(Mode0), 1*rcc.MHz, testTree())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer p.Release()
	r := &hostBlocks[SPI2]

	// No transmit room: no strobe, no data write.
	r.sr.Set(0)
	if err := p.TrySend(0x11); err != ErrWouldBlock {
		t.Fatalf("full fifo: err = %v, want ErrWouldBlock", err)
	}
	if r.cr1.Get()&cr1CSTART != 0 {
		t.Error("CSTART strobed on would-block")
	}
	if r.txdr.Load8() != 0 {
		t.Error("data register written on would-block")
	}

	r.sr.Set(srTXP)
	if err := p.TrySend(0xA5); err != nil {
		t.Fatalf("TrySend: %v", err)
	}
	if got := r.txdr.Load8(); got != 0xA5 {
		t.Errorf("TXDR = %#x, want 0xa5", got)
	}
	if r.cr1.Get()&cr1CSTART == 0 {
		t.Error("accepted word did not strobe CSTART")
	}

	// Errors block the send path before any write.
	r.txdr.Store8(0)
	r.sr.Set(srOVR | srTXP)
	if err := p.TrySend(0x22); !errors.Is(err, ErrOverrun) {
		t.Errorf("overrun: err = %v, want ErrOverrun", err)
	}
	if got := r.txdr.Load8(); got != 0 {
		t.Error("data register written despite error")
	}
}

func TestSixteenBitWordPath(t *testing.T) {
	resetInstance(t, SPI4)
	p, err := New[uint16](SPI4, pins.PE12, pins.PE13, pins.PE14,
		NewConfig(Mode0).FrameSize(16), 1*rcc.MHz, testTree())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer p.Release()
	r := &hostBlocks[SPI4]

	r.sr.Set(srTXP | srRXP)
	r.rxdr.Store16(0xBEEF)
	if err := p.TrySend(0x1234); err != nil {
		t.Fatalf("TrySend: %v", err)
	}
	if got := r.txdr.Load16(); got != 0x1234 {
		t.Errorf("TXDR = %#x, want 0x1234", got)
	}
	got, err := p.TryReceive()
	if err != nil {
		t.Fatalf("TryReceive: %v", err)
	}
	if got != 0xBEEF {
		t.Errorf("received %#x, want 0xbeef", got)
	}
}

func TestListenUnlisten(t *testing.T) {
	resetInstance(t, SPI6)
	p, err := New[uint8](SPI6, pins.PG13, pins.PG12, pins.PG14,
		NewConfig(Mode0), 1*rcc.MHz, testTree())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer p.Release()
	r := &hostBlocks[SPI6]

	if err := p.Listen(ReceiveReady); err != nil {
		t.Fatalf("Listen(ReceiveReady): %v", err)
	}
	if r.ier.Get() != ierRXPIE {
		t.Errorf("IER = %#x, want RXPIE only", r.ier.Get())
	}
	if err := p.Listen(TransmitReady); err != nil {
		t.Fatalf("Listen(TransmitReady): %v", err)
	}
	if err := p.Listen(TransactionComplete); err != nil {
		t.Fatalf("Listen(TransactionComplete): %v", err)
	}
	if r.ier.Get() != ierRXPIE|ierTXPIE|ierEOTIE {
		t.Errorf("IER = %#x, want RXPIE|TXPIE|EOTIE", r.ier.Get())
	}

	// The error group toggles as one unit.
	if err := p.Listen(ErrorGroup); err != nil {
		t.Fatalf("Listen(ErrorGroup): %v", err)
	}
	want := uint32(ierRXPIE | ierTXPIE | ierEOTIE | ierUDRIE | ierOVRIE | ierCRCEIE | ierMODFIE)
	if r.ier.Get() != want {
		t.Errorf("IER = %#x, want %#x (all four error enables set together)", r.ier.Get(), want)
	}
	if err := p.Unlisten(ErrorGroup); err != nil {
		t.Fatalf("Unlisten(ErrorGroup): %v", err)
	}
	if r.ier.Get() != ierRXPIE|ierTXPIE|ierEOTIE {
		t.Errorf("IER = %#x after Unlisten(ErrorGroup): error enables must clear together, others stay", r.ier.Get())
	}

	if err := p.Listen(Event(99)); !errors.Is(err, ErrUnknownEvent) {
		t.Errorf("unknown event: err = %v, want ErrUnknownEvent", err)
	}
}

func TestReleasedPortRefusesOperations(t *testing.T) {
	resetInstance(t, SPI1)
	p, err := New[uint8](SPI1, pins.PA5, pins.PA6, pins.PA7,
		NewConfig(Mode0), 1*rcc.MHz, testTree())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	hostBlocks[SPI1].sr.Set(srTXP | srRXP)
	if inst := p.Release(); inst != SPI1 {
		t.Fatalf("Release returned %v, want SPI1", inst)
	}

	if _, err := p.TryReceive(); !errors.Is(err, ErrPortReleased) {
		t.Errorf("TryReceive: err = %v, want ErrPortReleased", err)
	}
	if err := p.TrySend(1); !errors.Is(err, ErrPortReleased) {
		t.Errorf("TrySend: err = %v, want ErrPortReleased", err)
	}
	if err := p.Listen(ReceiveReady); !errors.Is(err, ErrPortReleased) {
		t.Errorf("Listen: err = %v, want ErrPortReleased", err)
	}
	if err := p.Unlisten(ReceiveReady); !errors.Is(err, ErrPortReleased) {
		t.Errorf("Unlisten: err = %v, want ErrPortReleased", err)
	}
	if p.TxReady() || p.RxReady() || p.ModeFault() || p.Overrun() {
		t.Error("flag queries on a released port must report false")
	}

	// Idempotent, and the instance is free again.
	if inst := p.Release(); inst != SPI1 {
		t.Errorf("second Release returned %v", inst)
	}
	p2, err := New[uint8](SPI1, pins.PA5, pins.PA6, pins.PA7,
		NewConfig(Mode0), 1*rcc.MHz, testTree())
	if err != nil {
		t.Fatalf("New after Release: %v", err)
	}
	p2.Release()
}

func TestFlagQueries(t *testing.T) {
	resetInstance(t, SPI3)
	p, err := New[uint8](SPI3, pins.PC10, pins.PC11, pins.PD6,
		NewConfig(Mode0), 1*rcc.MHz, testTree())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer p.Release()
	r := &hostBlocks[SPI3]

	r.sr.Set(0)
	if p.TxReady() || p.RxReady() || p.ModeFault() || p.Overrun() {
		t.Error("all flags must read clear")
	}
	r.sr.Set(srTXP | srMODF)
	if !p.TxReady() || !p.ModeFault() {
		t.Error("TXP and MODF set but not reported")
	}
	if p.RxReady() || p.Overrun() {
		t.Error("RXP and OVR clear but reported")
	}
}

func TestNewUncheckedSkipsPinProof(t *testing.T) {
	resetInstance(t, SPI5)
	p, err := NewUnchecked[uint8](SPI5, NewConfig(Mode0), 1*rcc.MHz, testTree())
	if err != nil {
		t.Fatalf("NewUnchecked: %v", err)
	}
	defer p.Release()
	if cr1 := hostBlocks[SPI5].cr1.Get(); cr1 != cr1SSI|cr1SPE {
		t.Errorf("CR1 = %#x, port not programmed", cr1)
	}
}

func TestUnknownInstanceRejected(t *testing.T) {
	if _, err := New[uint8](Instance(9), pins.NoPin, pins.NoPin, pins.NoPin,
		NewConfig(Mode0), 1*rcc.MHz, testTree()); !errors.Is(err, ErrUnknownInstance) {
		t.Errorf("New: err = %v, want ErrUnknownInstance", err)
	}
	if _, err := NewUnchecked[uint8](Instance(9),
		NewConfig(Mode0), 1*rcc.MHz, testTree()); !errors.Is(err, ErrUnknownInstance) {
		t.Errorf("NewUnchecked: err = %v, want ErrUnknownInstance", err)
	}
}
