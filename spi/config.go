package spi

// Polarity is the idle level of the clock line.
type Polarity uint8

const (
	IdleLow Polarity = iota
	IdleHigh
)

// Phase selects which clock transition captures data.
type Phase uint8

const (
	CaptureFirstEdge Phase = iota
	CaptureSecondEdge
)

// Mode pairs clock polarity and phase. The four standard SPI modes are
// predefined; most devices document which one they speak.
type Mode struct {
	Polarity Polarity
	Phase    Phase
}

var (
	Mode0 = Mode{IdleLow, CaptureFirstEdge}
	Mode1 = Mode{IdleLow, CaptureSecondEdge}
	Mode2 = Mode{IdleHigh, CaptureFirstEdge}
	Mode3 = Mode{IdleHigh, CaptureSecondEdge}
)

// CommMode selects the communication direction. The values are the COMM
// field encodings.
type CommMode uint8

const (
	FullDuplex   CommMode = 0
	TransmitOnly CommMode = 1
	ReceiveOnly  CommMode = 2
	HalfDuplex   CommMode = 3
)

// Config describes everything needed to program a port once. Build one with
// NewConfig and the chainable mutators, then hand it to New; it is consumed
// at initialization and never consulted again.
//
//	cfg := spi.NewConfig(spi.Mode0).FrameSize(16).ManageCS()
//
// Mutators do not validate their arguments. Validation happens once, at the
// construction boundary, so a half-built Config can hold out-of-range values
// without consequence.
type Config struct {
	mode         Mode
	swapMisoMosi bool
	csDelay      float32 // seconds
	frameSize    uint8   // bits per word
	managedCS    bool
	commMode     CommMode
	transferSize uint16 // words per transaction, 0 = endless
}

// NewConfig returns a configuration with the defaults: 8-bit frames, full
// duplex, software-managed CS, no CS delay, endless transactions.
func NewConfig(mode Mode) Config {
	return Config{
		mode:      mode,
		frameSize: 8,
	}
}

// SwapMisoMosi routes the MISO signal to the MOSI pin and vice versa. Useful
// when a board swapped the traces.
func (c Config) SwapMisoMosi() Config {
	c.swapMisoMosi = true
	return c
}

// CSDelay sets the minimum delay between CS assertion and the start of the
// transaction, in seconds. The hardware counts the delay in SCK cycles, so
// the programmed delay rounds up to the next cycle; it saturates at the
// 15-cycle field maximum.
func (c Config) CSDelay(seconds float32) Config {
	c.csDelay = seconds
	return c
}

// FrameSize sets the bits per transferred word, 4 through 32.
func (c Config) FrameSize(bits uint8) Config {
	c.frameSize = bits
	return c
}

// ManageCS hands chip-select to the peripheral. Without it the CS pin is
// free for software GPIO use.
func (c Config) ManageCS() Config {
	c.managedCS = true
	return c
}

// CommMode sets the communication direction.
func (c Config) CommMode(m CommMode) Config {
	c.commMode = m
	return c
}

// TransferSize sets the words per transaction. Zero keeps the transaction
// open until the caller ends it.
func (c Config) TransferSize(words uint16) Config {
	c.transferSize = words
	return c
}

// Validate checks the ranges the hardware cannot express. The data-size
// field encodes frameSize-1, so a frame size of zero would wrap around;
// sizes below 4 and above 32 are unsupported by the peripheral.
func (c Config) Validate() error {
	if c.frameSize < 4 || c.frameSize > 32 {
		return ErrFrameSize
	}
	if c.csDelay < 0 {
		return ErrNegativeCSDelay
	}
	return nil
}
