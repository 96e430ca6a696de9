//go:build !tinygo

package mmio

import "unsafe"

// On host builds registers are ordinary memory, so tests can allocate a
// register block with new() and assert on programmed bits.

// Get returns the register value.
func (r *U32) Get() uint32 {
	return r.reg
}

// Set writes the whole register.
func (r *U32) Set(v uint32) {
	r.reg = v
}

// SetBits sets the bits in mask, leaving the rest untouched.
func (r *U32) SetBits(mask uint32) {
	r.reg |= mask
}

// ClearBits clears the bits in mask, leaving the rest untouched.
func (r *U32) ClearBits(mask uint32) {
	r.reg &^= mask
}

// HasBits reports whether all bits in mask are set.
func (r *U32) HasBits(mask uint32) bool {
	return r.reg&mask == mask
}

// ReplaceBits writes value into the field described by mask and shift.
// The value is masked before shifting, so stray high bits cannot leak
// into neighbouring fields.
func (r *U32) ReplaceBits(value, mask uint32, shift uint8) {
	r.reg = r.reg&^(mask<<shift) | (value&mask)<<shift
}

// Load8 reads one byte from the data register address.
func (d *Data) Load8() uint8 {
	return *(*uint8)(unsafe.Pointer(&d.reg))
}

// Load16 reads one half-word from the data register address.
func (d *Data) Load16() uint16 {
	return *(*uint16)(unsafe.Pointer(&d.reg))
}

// Load32 reads the full word from the data register address.
func (d *Data) Load32() uint32 {
	return d.reg
}

// Store8 writes one byte to the data register address.
func (d *Data) Store8(v uint8) {
	*(*uint8)(unsafe.Pointer(&d.reg)) = v
}

// Store16 writes one half-word to the data register address.
func (d *Data) Store16(v uint16) {
	*(*uint16)(unsafe.Pointer(&d.reg)) = v
}

// Store32 writes the full word to the data register address.
func (d *Data) Store32(v uint32) {
	d.reg = v
}
