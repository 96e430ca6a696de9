// Package rcc models the slice of the STM32H7 reset and clock control block
// that peripheral drivers need: which kernel clock source a peripheral group
// is switched to, and how fast that source runs. Clock tree bring-up itself
// happens elsewhere; this package only answers "what clock does this
// peripheral see", through the ClockTree oracle.
package rcc

import "errors"

// Hertz is a clock frequency. The H7 tops out well under 1 GHz, so 32 bits
// cover every clock in the tree.
type Hertz uint32

const (
	KHz Hertz = 1_000
	MHz Hertz = 1_000_000
)

var (
	// ErrSourceStopped reports that the selected kernel clock source is not
	// running. Initialization cannot proceed on a dead clock.
	ErrSourceStopped = errors.New("rcc: selected kernel clock source is not running")
	// ErrBadSelector reports a selector field value outside the group's
	// source table. Reserved encodings are an error, never a default.
	ErrBadSelector = errors.New("rcc: kernel clock selector is reserved")
)

// Group identifies a set of peripherals sharing one kernel clock selector
// field. The SPI instances split across three groups.
type Group uint8

const (
	GroupSPI123 Group = iota // SPI1, SPI2, SPI3 (D2 domain, SPI123SEL)
	GroupSPI45               // SPI4, SPI5 (D2 domain, SPI45SEL)
	GroupSPI6                // SPI6 (D3 domain, SPI6SEL)
)

func (g Group) String() string {
	switch g {
	case GroupSPI123:
		return "SPI1/2/3"
	case GroupSPI45:
		return "SPI4/5"
	case GroupSPI6:
		return "SPI6"
	}
	return "unknown group"
}

// Source is a kernel clock origin. Names follow the reference manual.
type Source uint8

const (
	PLL1Q Source = iota
	PLL2P
	PLL2Q
	PLL3P
	PLL3Q
	I2SCKIN
	PerCK
	HSIKer
	CSIKer
	HSE
	PCLK2
	PCLK4

	sourceCount
)

var sourceNames = [sourceCount]string{
	PLL1Q:   "pll1_q_ck",
	PLL2P:   "pll2_p_ck",
	PLL2Q:   "pll2_q_ck",
	PLL3P:   "pll3_p_ck",
	PLL3Q:   "pll3_q_ck",
	I2SCKIN: "i2s_ckin",
	PerCK:   "per_ck",
	HSIKer:  "hsi_ker_ck",
	CSIKer:  "csi_ker_ck",
	HSE:     "hse_ck",
	PCLK2:   "pclk2",
	PCLK4:   "pclk4",
}

func (s Source) String() string {
	if s >= sourceCount {
		return "unknown source"
	}
	return sourceNames[s]
}

// Per-group selector tables. The selector field value indexes into the
// group's table. Index 0 is the hardware reset selection (pll1_q_ck for
// SPI1/2/3, pclk2 for SPI4/5, pclk4 for SPI6). Values past the end of a
// table are reserved encodings.
var selectorTables = [...][]Source{
	GroupSPI123: {PLL1Q, PLL2P, PLL3P, I2SCKIN, PerCK},
	GroupSPI45:  {PCLK2, PLL2Q, PLL3Q, HSIKer, CSIKer, HSE},
	GroupSPI6:   {PCLK4, PLL2Q, PLL3Q, HSIKer, CSIKer, HSE},
}

// Sources returns the selector table for a group: the source chosen by
// selector value i is Sources(g)[i]. The slice is shared; callers must not
// modify it. Unknown groups return nil.
func Sources(g Group) []Source {
	if int(g) >= len(selectorTables) {
		return nil
	}
	return selectorTables[g]
}

// ClockTree reports the state of the clock tree. Implementations answer from
// live RCC registers on target builds or from fixed tables in tests and
// host tools.
type ClockTree interface {
	// KernelSelection returns the raw selector field value for the group.
	KernelSelection(g Group) uint8
	// SourceFrequency returns the frequency a source runs at. The bool is
	// false when the source is stopped or its rate is unknown.
	SourceFrequency(s Source) (Hertz, bool)
}

// KernelClock resolves the kernel clock feeding a peripheral group: decode
// the group's selector through its source table, then ask the tree for that
// source's frequency. A reserved selector or a stopped source is an error;
// there is no fallback frequency.
func KernelClock(tree ClockTree, g Group) (Hertz, error) {
	table := Sources(g)
	sel := tree.KernelSelection(g)
	if int(sel) >= len(table) {
		return 0, ErrBadSelector
	}
	hz, running := tree.SourceFrequency(table[sel])
	if !running || hz == 0 {
		return 0, ErrSourceStopped
	}
	return hz, nil
}

// StaticTree is a ClockTree backed by plain values. Tests and host tools
// build one directly; firmware can use it when the clock configuration is
// known at build time.
type StaticTree struct {
	selection [len(selectorTables)]uint8
	frequency [sourceCount]Hertz
}

// Select sets the selector field value recorded for a group.
func (t *StaticTree) Select(g Group, sel uint8) *StaticTree {
	t.selection[g] = sel
	return t
}

// Run marks a source as running at the given frequency.
func (t *StaticTree) Run(s Source, hz Hertz) *StaticTree {
	t.frequency[s] = hz
	return t
}

func (t *StaticTree) KernelSelection(g Group) uint8 {
	if int(g) >= len(t.selection) {
		return 0xFF
	}
	return t.selection[g]
}

func (t *StaticTree) SourceFrequency(s Source) (Hertz, bool) {
	if s >= sourceCount || t.frequency[s] == 0 {
		return 0, false
	}
	return t.frequency[s], true
}
