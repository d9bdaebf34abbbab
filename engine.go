// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package segalloc

// findFit performs a first-fit walk of the free list at classIdx,
// looking for a block whose payload holds at least needPayload bytes.
// On success it unlinks the candidate from the list, carves it down to
// needPayload (splitting off a remainder per the adaptive policy when
// maySplit is true and the remainder can host a standalone block), and
// returns the granted block's payload address. The candidate's header
// classIdx field is left untouched; callers record the class the block
// was ultimately granted from.
func (a *Allocator) findFit(needPayload, classIdx int, maySplit bool) (uintptr, bool) {
	var prev uintptr
	cur := a.freeLists[classIdx]
	for cur != 0 {
		h := headerFor(cur)
		p := int(h.payloadSz)
		next := nextOf(cur)
		if p < needPayload {
			prev = cur
			cur = next
			continue
		}

		// cur is the first-fit candidate; unlink it.
		if prev == 0 {
			a.freeLists[classIdx] = next
		} else {
			setNext(prev, next)
		}

		headerAddr := cur - HeaderSize
		if maySplit {
			a.carve(headerAddr, p, needPayload, classIdx)
		} else {
			// Whole candidate payload granted as-is, even if it
			// exceeds the request; payloadSz is already correct.
			h.alloc = 1
		}
		return cur, true
	}
	return 0, false
}

// carve marks the block at headerAddr (whose current payload size is
// totalPayload) allocated. When the totalPayload-needPayload remainder
// is large enough to stand on its own, it is split into a new free block
// and the granted payload shrinks to exactly needPayload bytes;
// otherwise the whole totalPayload is granted. classIdx names the
// class this carve is happening "as", the list the candidate came from
// for findFit, or the newly minted block's target class when called
// from Allocator.Allocate/Reallocate directly against a fresh segment
// extension, which is also the class whose hit counter gates whether
// the remainder stays in-place or is redistributed by size.
func (a *Allocator) carve(headerAddr uintptr, totalPayload, needPayload, classIdx int) {
	h := headerAt(headerAddr)
	remainder := totalPayload - needPayload
	if remainder >= MinBlockSize {
		newHeaderAddr := headerAddr + HeaderSize + uintptr(needPayload)
		newPayload := payloadAddr(newHeaderAddr)
		nh := headerAt(newHeaderAddr)
		nh.payloadSz = uint32(remainder - HeaderSize)
		nh.alloc = 0

		dest := classIdx
		if a.hitCounters[classIdx] < HitSensor {
			dest = classOf(remainder)
			if dest >= ClassCount {
				// classOf is total but only guarantees a list-sized
				// index up to the request ceiling; footprints large
				// enough to overflow it only arise from the doubled
				// reallocation footprint, so they belong in the
				// reallocation class same as their parent block.
				dest = ReallocClass
			}
		}
		nh.classIdx = uint16(dest)

		setNext(newPayload, a.freeLists[dest])
		a.freeLists[dest] = newPayload

		h.payloadSz = uint32(needPayload)
	}
	h.alloc = 1
}
