// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package segalloc

import (
	"fmt"
	"os"
	"unsafe"
)

// extent records the address range of one region obtained from the
// segment, used by Validate to bounds-check free-list blocks.
type extent struct {
	lo, hi uintptr
}

// Allocator is a segregated-fit free-list allocator over a Segment. Its
// zero value is not ready for use, construct with NewAllocator, or
// call Init after wiring a Segment, so the reallocation class's hit
// counter is pre-saturated before any Allocate/Reallocate call.
type Allocator struct {
	seg Segment

	freeLists   [ClassCount]uintptr
	hitCounters [ClassCount]uint64

	extents    []extent
	totalBytes int
	allocs     int
	extends    int
}

// NewAllocator constructs an Allocator over seg and initializes it.
func NewAllocator(seg Segment) *Allocator {
	a := &Allocator{seg: seg}
	a.Init()
	return a
}

// Init resets the allocator: all free lists are cleared, all hit
// counters are zeroed except the reallocation class's, which is
// pre-saturated at HitSensor so its adaptive branch is always taken,
// and the segment is reset to zero pages. Init returns false only if the
// segment cannot be reset.
func (a *Allocator) Init() bool {
	for i := range a.freeLists {
		a.freeLists[i] = 0
	}
	for i := range a.hitCounters {
		a.hitCounters[i] = 0
	}
	a.hitCounters[ReallocClass] = HitSensor
	a.extents = a.extents[:0]
	a.totalBytes = 0
	a.allocs = 0
	a.extends = 0

	if _, err := a.seg.Init(0); err != nil {
		return false
	}
	if trace {
		fmt.Fprintf(os.Stderr, "Init()\n")
	}
	return true
}

// Allocate reserves size bytes and returns a pointer to the payload, or
// nil if size is zero, exceeds the allocator's request ceiling, or the
// segment cannot be extended.
func (a *Allocator) Allocate(size int) unsafe.Pointer {
	if trace {
		defer func() {
			fmt.Fprintf(os.Stderr, "Allocate(%#x)\n", size)
		}()
	}
	if size <= 0 || size > maxRequestSize {
		return nil
	}

	footprint := adjustedFootprint(size)
	needPayload := footprint - HeaderSize
	targetClass := classOf(footprint)
	a.hitCounters[targetClass]++

	for i := 0; i < ReallocClass; i++ {
		if payload, ok := a.findFit(needPayload, i, true); ok {
			headerFor(payload).classIdx = uint16(i)
			a.allocs++
			return unsafe.Pointer(payload)
		}
		if a.hitCounters[targetClass] >= HitSensor {
			break
		}
	}

	headerAddr, totalPayload, ok := a.extendFor(footprint)
	if !ok {
		return nil
	}
	h := headerAt(headerAddr)
	h.payloadSz = uint32(totalPayload)
	h.alloc = 0

	a.carve(headerAddr, totalPayload, needPayload, targetClass)
	h.classIdx = uint16(targetClass)
	a.allocs++
	return unsafe.Pointer(payloadAddr(headerAddr))
}

// Free returns p to the free list of its recorded class. Freeing a nil
// pointer is a no-op. Freeing anything else not obtained from Allocate
// or Reallocate is undefined behavior; Free does not validate p.
func (a *Allocator) Free(p unsafe.Pointer) {
	if trace {
		defer func() {
			fmt.Fprintf(os.Stderr, "Free(%p)\n", p)
		}()
	}
	if p == nil {
		return
	}

	payload := uintptr(p)
	h := headerFor(payload)
	cls := int(h.classIdx)

	a.hitCounters[cls]--
	setNext(payload, a.freeLists[cls])
	a.freeLists[cls] = payload
	h.alloc = 0
	a.allocs--
}

// Reallocate resizes the block at p to hold at least newsz bytes,
// preserving its contents up to the lesser of the old and new sizes. A
// nil p delegates to Allocate. A zero or over-ceiling newsz returns nil
// without touching p. When newsz does not exceed p's current payload,
// p is returned unchanged. Otherwise the block is grown through the
// dedicated reallocation size class with a doubling retention policy,
// p's contents are copied into the new block, p is freed, and the new
// payload pointer is returned (or nil if the segment cannot grow).
func (a *Allocator) Reallocate(p unsafe.Pointer, newsz int) unsafe.Pointer {
	if trace {
		defer func() {
			fmt.Fprintf(os.Stderr, "Reallocate(%p, %#x)\n", p, newsz)
		}()
	}
	if p == nil {
		return a.Allocate(newsz)
	}
	if newsz <= 0 || newsz > maxRequestSize {
		return nil
	}

	oldPayload := uintptr(p)
	oldHeader := headerFor(oldPayload)
	oldPayloadSz := int(oldHeader.payloadSz)
	if newsz <= oldPayloadSz {
		return p
	}

	adjusted := adjustedFootprint(newsz) * 2
	needPayload := adjusted - HeaderSize
	a.hitCounters[ReallocClass]++

	if payload, ok := a.findFit(needPayload, ReallocClass, true); ok {
		headerFor(payload).classIdx = ReallocClass
		copyPayload(payload, oldPayload, oldPayloadSz)
		a.Free(p)
		a.allocs++
		return unsafe.Pointer(payload)
	}

	headerAddr, totalPayload, ok := a.extendFor(adjusted)
	if !ok {
		return nil
	}
	h := headerAt(headerAddr)
	h.payloadSz = uint32(totalPayload)
	h.alloc = 0

	a.carve(headerAddr, totalPayload, needPayload, ReallocClass)
	h.classIdx = ReallocClass

	newPayload := payloadAddr(headerAddr)
	copyPayload(newPayload, oldPayload, oldPayloadSz)
	a.Free(p)
	a.allocs++
	return unsafe.Pointer(newPayload)
}

// extendFor asks the segment for enough whole pages to cover footprint
// bytes and records the resulting extent. It returns the header address
// of the fresh region, the region's total payload capacity, and whether
// the extension succeeded.
func (a *Allocator) extendFor(footprint int) (uintptr, int, bool) {
	pageSize := a.seg.PageSize()
	pages := (footprint + pageSize - 1) / pageSize
	headerAddr, err := a.seg.Extend(pages)
	if err != nil || headerAddr == 0 {
		return 0, 0, false
	}

	size := pages * pageSize
	a.extents = append(a.extents, extent{lo: headerAddr, hi: headerAddr + uintptr(size)})
	a.totalBytes += size
	a.extends++
	return headerAddr, size - HeaderSize, true
}

// Validate reports whether the allocator's free lists are structurally
// consistent: every visited block is marked free and tagged with the
// class it is stored in, every list terminates in the null sentinel
// within a bound proportional to heap size, no list contains a cycle,
// and every visited block lies within a region obtained from the
// segment.
func (a *Allocator) Validate() bool {
	maxHops := a.totalBytes/MinBlockSize + 1
	for cls := 0; cls < ClassCount; cls++ {
		seen := make(map[uintptr]bool)
		cur := a.freeLists[cls]
		hops := 0
		for cur != 0 {
			if hops > maxHops || seen[cur] {
				return false
			}
			seen[cur] = true

			if !a.withinBounds(cur) {
				return false
			}
			h := headerFor(cur)
			if h.alloc != 0 {
				return false
			}
			if int(h.classIdx) != cls {
				return false
			}

			cur = nextOf(cur)
			hops++
		}
	}
	return true
}

func (a *Allocator) withinBounds(payload uintptr) bool {
	headerAddr := payload - HeaderSize
	for _, e := range a.extents {
		if headerAddr >= e.lo && payload < e.hi {
			return true
		}
	}
	return false
}
