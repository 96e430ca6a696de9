// Package mmio provides fixed-width accessors for memory-mapped peripheral
// registers. Every load and store is a single aligned access of the stated
// width; there is no read-modify-write hidden inside Get or Set, and no
// access of a different width than the method name says.
//
// Two implementations share these types. Under TinyGo the accessors compile
// to volatile loads and stores, so the compiler cannot elide, fuse or
// reorder them relative to each other. Under regular Go they are plain
// memory operations on ordinary structs, which lets driver logic run
// against RAM-backed register blocks in unit tests.
package mmio

// U32 is one 32-bit peripheral register.
type U32 struct {
	reg uint32
}

// Data is a 32-bit data register that additionally accepts byte and
// half-word packed access at its base address, the way SPI FIFO data
// registers do. The access width must equal the configured frame width;
// mixing widths on a live FIFO changes how the hardware packs frames.
type Data struct {
	reg uint32
}
