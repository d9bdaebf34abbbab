// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package segalloc

// Segment is the page-granular heap abstraction the allocator facade
// consumes. It is deliberately out of scope for the segregated-fit
// engine itself: the allocator calls Init each time it is (re)initialized
// and Extend otherwise, and never inspects memory beyond what Extend
// hands back.
//
// Implementations need not actually grow one single contiguous mapping,
// since the facade never computes an address relative to a remembered
// base, only relative to pointers it was itself handed by Init/Extend
// or derived from blocks it already owns, but PageSize must stay
// constant for the lifetime of the Segment.
type Segment interface {
	// Init (re)creates the segment with the given number of pages
	// already committed and returns a pointer to the start of that
	// region (the "base pointer"). pages may be zero, in which case
	// the returned pointer carries no meaning and must not be
	// dereferenced until the first successful Extend.
	Init(pages int) (uintptr, error)

	// Extend grows the segment by pages pages and returns a pointer to
	// the start of the newly added region. It returns a zero pointer
	// and a non-nil error if the segment cannot be grown.
	Extend(pages int) (uintptr, error)

	// PageSize reports the segment's page size in bytes, a power of
	// two, constant for the Segment's lifetime.
	PageSize() int
}
