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

func TestHeaderSizeIsEightBytes(t *testing.T) {
	assert.EqualValues(t, HeaderSize, unsafe.Sizeof(header{}))
}

func TestHeaderRoundTrip(t *testing.T) {
	buf := make([]byte, 64)
	addr := uintptr(unsafe.Pointer(&buf[0]))

	h := headerAt(addr)
	h.payloadSz = 123
	h.alloc = 1
	h.classIdx = 7

	got := headerAt(addr)
	assert.EqualValues(t, 123, got.payloadSz)
	assert.EqualValues(t, 1, got.alloc)
	assert.EqualValues(t, 7, got.classIdx)
	assert.Equal(t, addr+HeaderSize, payloadAddr(addr))
}

func TestFreeListNextPointerRoundTrip(t *testing.T) {
	buf := make([]byte, 64)
	payload := uintptr(unsafe.Pointer(&buf[0])) + HeaderSize

	require.Zero(t, nextOf(payload))
	setNext(payload, 0xdeadbeef)
	assert.EqualValues(t, 0xdeadbeef, nextOf(payload))
}

func TestRoundUp(t *testing.T) {
	cases := []struct{ n, m, want int }{
		{0, 8, 0},
		{1, 8, 8},
		{8, 8, 8},
		{9, 8, 16},
		{100, 8, 104},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, roundUp(c.n, c.m))
	}
}
