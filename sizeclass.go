// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package segalloc

import "github.com/cznic/mathutil"

// classOf maps a block footprint (header + payload, in bytes) to its
// size-class index: the position of the highest set bit of footprint,
// minus MinExponent. Footprints below MinBlockSize map to class 0. The
// function is total for any footprint up to the allocator's request
// ceiling; at that ceiling Allocate's footprint maps to ReallocClass
// itself, and only Reallocate's doubled footprints can map past it (carve
// files such remainders under ReallocClass).
func classOf(footprint int) int {
	if footprint < MinBlockSize {
		return 0
	}
	idx := mathutil.BitLen(footprint) - 1 - MinExponent
	if idx < 0 {
		idx = 0
	}
	return idx
}

// adjustedFootprint returns the 8-byte-aligned total block size (header
// + payload) needed to satisfy a request for r payload bytes.
func adjustedFootprint(r int) int {
	return roundUp(r+HeaderSize, Alignment)
}
