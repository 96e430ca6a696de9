//go:build tinygo

package mmio

import (
	"runtime/volatile"
	"unsafe"
)

func (r *U32) Get() uint32 {
	return volatile.LoadUint32(&r.reg)
}

func (r *U32) Set(v uint32) {
	volatile.StoreUint32(&r.reg, v)
}

func (r *U32) SetBits(mask uint32) {
	volatile.StoreUint32(&r.reg, volatile.LoadUint32(&r.reg)|mask)
}

func (r *U32) ClearBits(mask uint32) {
	volatile.StoreUint32(&r.reg, volatile.LoadUint32(&r.reg)&^mask)
}

func (r *U32) HasBits(mask uint32) bool {
	return volatile.LoadUint32(&r.reg)&mask == mask
}

func (r *U32) ReplaceBits(value, mask uint32, shift uint8) {
	v := volatile.LoadUint32(&r.reg)
	volatile.StoreUint32(&r.reg, v&^(mask<<shift)|(value&mask)<<shift)
}

func (d *Data) Load8() uint8 {
	return volatile.LoadUint8((*uint8)(unsafe.Pointer(&d.reg)))
}

func (d *Data) Load16() uint16 {
	return volatile.LoadUint16((*uint16)(unsafe.Pointer(&d.reg)))
}

func (d *Data) Load32() uint32 {
	return volatile.LoadUint32(&d.reg)
}

func (d *Data) Store8(v uint8) {
	volatile.StoreUint8((*uint8)(unsafe.Pointer(&d.reg)), v)
}

func (d *Data) Store16(v uint16) {
	volatile.StoreUint16((*uint16)(unsafe.Pointer(&d.reg)), v)
}

func (d *Data) Store32(v uint32) {
	volatile.StoreUint32(&d.reg, v)
}
