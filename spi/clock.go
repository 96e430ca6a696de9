package spi

import (
	"stm32h7x/internal/mathx"
	"stm32h7x/rcc"
)

// The divisor ladder: MBR code n divides the kernel clock by 2<<n, so codes
// 0..7 give divisors 2, 4, 8, 16, 32, 64, 128, 256.

// divisorFor maps a kernel clock and a requested bit rate to an MBR code.
// The integer ratio kernel/request is rounded to the nearest ladder step:
// exact power-of-two ratios resolve to exactly the requested rate, and
// until the ladder saturates at ÷256 the achieved rate stays within half
// a step of the request.
func divisorFor(kernel, request rcc.Hertz) (uint32, error) {
	if request == 0 {
		return 0, ErrZeroRate
	}
	switch ratio := kernel / request; {
	case ratio == 0:
		return 0, ErrRateTooHigh
	case ratio <= 2:
		return 0, nil // ÷2
	case ratio <= 5:
		return 1, nil // ÷4
	case ratio <= 11:
		return 2, nil // ÷8
	case ratio <= 23:
		return 3, nil // ÷16
	case ratio <= 47:
		return 4, nil // ÷32
	case ratio <= 95:
		return 5, nil // ÷64
	case ratio <= 191:
		return 6, nil // ÷128
	default:
		return 7, nil // ÷256
	}
}

// ActualRate reports the bit rate a port will really run at: the kernel
// clock divided by the ladder divisor picked for the request. It answers
// "what do I get if I ask for this" without claiming an instance.
func ActualRate(kernel, request rcc.Hertz) (rcc.Hertz, error) {
	code, err := divisorFor(kernel, request)
	if err != nil {
		return 0, err
	}
	return kernel >> (code + 1), nil
}

const maxCSIdleCycles = 0xF // MSSI is a 4-bit field

// csDelayCycles converts a CS delay in seconds to SCK idle cycles at the
// requested bit rate. The product truncates, so any nonzero delay gets one
// extra cycle to guarantee the programmed delay is never shorter than asked.
// The result saturates at the field maximum of 15.
func csDelayCycles(delay float32, request rcc.Hertz) uint8 {
	raw := mathx.Clamp(float64(delay*float32(request)), 0, maxCSIdleCycles)
	cycles := uint32(raw)
	if delay > 0 {
		cycles++
	}
	return uint8(mathx.Clamp(cycles, 0, maxCSIdleCycles))
}

// composeCFG2 builds the full CFG2 value written at initialization. Master
// mode is always set and the bit order is always MSB first; everything else
// comes from the configuration. SSOE and SSM are mutually exclusive: the
// peripheral drives CS when managed, otherwise software slave management
// keeps the NSS input released.
func composeCFG2(cfg Config, csCycles uint8) uint32 {
	v := uint32(cfg2MASTER)
	if cfg.mode.Phase == CaptureSecondEdge {
		v |= cfg2CPHA
	}
	if cfg.mode.Polarity == IdleHigh {
		v |= cfg2CPOL
	}
	if cfg.managedCS {
		v |= cfg2SSOE
	} else {
		v |= cfg2SSM
	}
	if cfg.swapMisoMosi {
		v |= cfg2IOSWP
	}
	v |= (uint32(csCycles) & cfg2MSSIMask) << cfg2MSSIPos
	v |= (uint32(cfg.commMode) & cfg2COMMMask) << cfg2COMMPos
	return v
}
