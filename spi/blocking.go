package spi

import "tinygo.org/x/drivers"

// Blocking wraps a port in retry loops for callers that want plain
// call-and-wait transfers. It spins on ErrWouldBlock and has no deadline of
// its own; a caller needing timeouts should poll the port directly.
//
// For 8-bit words the adapter satisfies the tinygo.org/x/drivers SPI
// interface, so device drivers from that ecosystem run on top of a Port
// unchanged.
type Blocking[W Word] struct {
	Port *Port[W]
}

var _ drivers.SPI = Blocking[uint8]{}

// Blocking returns the blocking adapter for the port.
func (p *Port[W]) Blocking() Blocking[W] {
	return Blocking[W]{Port: p}
}

// Transfer sends one word and waits for the word clocked back.
func (b Blocking[W]) Transfer(w W) (W, error) {
	for {
		err := b.Port.TrySend(w)
		if err == nil {
			break
		}
		if err != ErrWouldBlock {
			return 0, err
		}
	}
	for {
		word, err := b.Port.TryReceive()
		if err == nil {
			return word, nil
		}
		if err != ErrWouldBlock {
			return 0, err
		}
	}
}

// Tx clocks the write slice out while filling the read slice. Either slice
// may be nil: nil r discards received words, nil w clocks out zeroes for
// each wanted read. When both are given their lengths must match. Received
// words are always drained, full duplex leaves no word behind to overrun.
func (b Blocking[W]) Tx(w, r []W) error {
	switch {
	case len(w) == 0 && len(r) == 0:
		return nil
	case len(r) == 0:
		for _, word := range w {
			if _, err := b.Transfer(word); err != nil {
				return err
			}
		}
	case len(w) == 0:
		for i := range r {
			word, err := b.Transfer(0)
			if err != nil {
				return err
			}
			r[i] = word
		}
	default:
		if len(w) != len(r) {
			return ErrTxSliceMismatch
		}
		for i, word := range w {
			got, err := b.Transfer(word)
			if err != nil {
				return err
			}
			r[i] = got
		}
	}
	return nil
}
