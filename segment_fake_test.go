// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package segalloc

import "unsafe"

// fakeSegment is a Segment backed by plain Go-managed byte slices
// instead of real OS mappings. It exists purely so tests can pin
// PageSize to a known value and run hermetically wherever the suite
// executes, without reaching for a containerized OS.
type fakeSegment struct {
	pageSize int
	regions  [][]byte
}

func newFakeSegment(pageSize int) *fakeSegment {
	return &fakeSegment{pageSize: pageSize}
}

func (s *fakeSegment) PageSize() int { return s.pageSize }

func (s *fakeSegment) Init(pages int) (uintptr, error) {
	s.regions = s.regions[:0]
	if pages == 0 {
		return 0, nil
	}
	return s.Extend(pages)
}

func (s *fakeSegment) Extend(pages int) (uintptr, error) {
	b := make([]byte, pages*s.pageSize)
	s.regions = append(s.regions, b)
	return uintptr(unsafe.Pointer(&b[0])), nil
}
