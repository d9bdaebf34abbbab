// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package segalloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassOfBoundaries(t *testing.T) {
	cases := []struct {
		footprint int
		want      int
	}{
		{0, 0},
		{1, 0},
		{15, 0},
		{16, 0},
		{31, 0},
		{32, 1},
		{63, 1},
		{64, 2},
		{4095, 7},
		{4096, 8},
	}
	for _, c := range cases {
		assert.Equalf(t, c.want, classOf(c.footprint), "classOf(%d)", c.footprint)
	}
}

func TestClassOfIsTotalAndMonotonic(t *testing.T) {
	prev := classOf(0)
	for f := 1; f <= 1<<20; f *= 2 {
		got := classOf(f)
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
}

func TestAdjustedFootprint(t *testing.T) {
	cases := []struct{ r, want int }{
		{0, 8},
		{1, 16},
		{8, 16},
		{100, 112},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, adjustedFootprint(c.r))
	}
}
