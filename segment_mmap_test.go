// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package segalloc

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMmapSegmentExtendAndInit(t *testing.T) {
	seg := newMmapSegment()
	assert.Greater(t, seg.PageSize(), 0)

	base, err := seg.Init(0)
	require.NoError(t, err)
	assert.Zero(t, base)

	p1, err := seg.Extend(1)
	require.NoError(t, err)
	require.NotZero(t, p1)

	p2, err := seg.Extend(2)
	require.NoError(t, err)
	require.NotZero(t, p2)
	assert.Len(t, seg.regions, 2)

	// Writing across the whole extended region must not fault.
	b := bytesAt(unsafe.Pointer(p2), 2*seg.PageSize())
	for i := range b {
		b[i] = byte(i)
	}
	for i, g := range b {
		require.Equal(t, byte(i), g)
	}

	base, err = seg.Init(1)
	require.NoError(t, err)
	require.NotZero(t, base)
	assert.Len(t, seg.regions, 1)
}

// TestAllocatorOverRealMmapSegment is a light end-to-end smoke test that
// the facade works over the real OS-backed Segment, not just the
// hermetic fakeSegment the rest of the suite uses.
func TestAllocatorOverRealMmapSegment(t *testing.T) {
	a := NewAllocator(newMmapSegment())

	p := a.Allocate(4000)
	require.NotNil(t, p)
	b := bytesAt(p, 4000)
	for i := range b {
		b[i] = byte(i)
	}
	for i, g := range b {
		require.Equal(t, byte(i), g)
	}

	a.Free(p)
	assert.True(t, a.Validate())
}
