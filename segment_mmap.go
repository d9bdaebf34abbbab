// Copyright 2011 Evan Shaw. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE-MMAP-GO file.

// Modifications (c) 2017 The Memory Authors.
// Further modifications: adapted from a fixed-slot slab segment into a
// page-granular, monotonically growing Segment for segalloc.

package segalloc

import (
	"fmt"
	"os"
	"unsafe"
)

// addrOf returns the address of a mapped region's first byte.
func addrOf(b []byte) uintptr {
	if len(b) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&b[0]))
}

// mmapSegment is the OS-backed Segment returned by NewOSSegment; an
// Allocator uses it only when it is passed to NewAllocator. Each Extend
// call requests a
// fresh OS mapping sized to a whole number of pages; the regions are not
// required to be adjacent in the process address space (see the
// Segment doc comment), only individually page-aligned and writable.
type mmapSegment struct {
	pageSize int
	regions  [][]byte
}

// newMmapSegment constructs a Segment backed by anonymous OS mappings.
func newMmapSegment() *mmapSegment {
	return &mmapSegment{pageSize: os.Getpagesize()}
}

// NewOSSegment returns a Segment backed by anonymous OS memory mappings,
// growing by fresh mappings rather than a single contiguous region (see
// the Segment doc comment). This is the Segment implementation
// NewAllocator callers reach for outside of tests.
func NewOSSegment() Segment {
	return newMmapSegment()
}

func (s *mmapSegment) PageSize() int { return s.pageSize }

func (s *mmapSegment) Init(pages int) (uintptr, error) {
	if trace {
		defer func() {
			fmt.Fprintf(os.Stderr, "segment.Init(%d)\n", pages)
		}()
	}
	for _, b := range s.regions {
		if len(b) != 0 {
			if err := unmap(addrOf(b), len(b)); err != nil {
				return 0, err
			}
		}
	}
	s.regions = s.regions[:0]
	if pages == 0 {
		return 0, nil
	}
	return s.Extend(pages)
}

func (s *mmapSegment) Extend(pages int) (uintptr, error) {
	if trace {
		defer func() {
			fmt.Fprintf(os.Stderr, "segment.Extend(%d)\n", pages)
		}()
	}
	if pages <= 0 {
		return 0, fmt.Errorf("segalloc: invalid page count %d", pages)
	}
	b, err := mmap(pages * s.pageSize)
	if err != nil {
		return 0, err
	}
	s.regions = append(s.regions, b)
	return addrOf(b), nil
}
