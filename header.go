// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package segalloc

import "unsafe"

// header is the fixed-width, in-band metadata prepended to every block.
// Its three fields occupy exactly HeaderSize bytes with no padding:
// payloadSz at offset 0 (4 bytes), alloc at offset 4 (2 bytes), classIdx
// at offset 6 (2 bytes).
type header struct {
	payloadSz uint32
	alloc     uint16
	classIdx  uint16
}

func init() {
	if unsafe.Sizeof(header{}) != HeaderSize {
		panic("segalloc: header size assumption violated")
	}
}

// headerAt returns the header whose first byte is at addr.
func headerAt(addr uintptr) *header {
	return (*header)(unsafe.Pointer(addr))
}

// headerFor returns the header of the block owning the given payload
// address.
func headerFor(payloadAddr uintptr) *header {
	return headerAt(payloadAddr - HeaderSize)
}

// payloadAddr returns the address of the payload following a header at
// headerAddr.
func payloadAddr(headerAddr uintptr) uintptr {
	return headerAddr + HeaderSize
}

// nextOf reads the intrusive free-list next pointer stored in the first
// pointer-sized slot of the free block's payload. A zero return value is
// the list-terminating sentinel.
func nextOf(payloadAddr uintptr) uintptr {
	return *(*uintptr)(unsafe.Pointer(payloadAddr))
}

// setNext stores the intrusive free-list next pointer in the first
// pointer-sized slot of a free block's payload.
func setNext(payloadAddr uintptr, next uintptr) {
	*(*uintptr)(unsafe.Pointer(payloadAddr)) = next
}

// copyPayload copies n bytes from src's payload to dst's payload. Both
// addresses must refer to live, non-overlapping regions of at least n
// bytes.
func copyPayload(dst, src uintptr, n int) {
	if n == 0 {
		return
	}
	d := unsafe.Slice((*byte)(unsafe.Pointer(dst)), n)
	s := unsafe.Slice((*byte)(unsafe.Pointer(src)), n)
	copy(d, s)
}

// roundUp rounds n up to the next multiple of m. m must be a power of 2.
func roundUp(n, m int) int { return (n + m - 1) &^ (m - 1) }
