// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package segalloc implements a segregated-fit free-list memory allocator.
//
// The allocator carves blocks out of a page-extensible heap segment
// obtained from a Segment collaborator (see segment.go). Every block
// begins with an 8-byte header (header.go) recording its payload size,
// allocation state, and the size-class list it belongs to when free. A
// request is rounded up to an 8-byte-aligned footprint, mapped to one of
// 28 size classes (classOf), and served by first-fit search with
// splitting of any oversized remainder (the fit-and-split engine in
// engine.go). An adaptive, per-class hit counter suppresses cross-class
// search and remainder redistribution once a class is hot enough,
// trading fragmentation for fewer list walks under sustained load.
//
// Freed blocks are never coalesced with their neighbors; fragmentation
// is managed purely by size-class discipline and, for Reallocate, a
// doubling retention policy that keeps grown blocks out of the regular
// allocation path entirely (they live in the dedicated reallocation
// class, index ReallocClass).
//
// None of this is safe for concurrent use. Callers needing multiple
// independent heaps construct one *Allocator per heap via NewAllocator;
// callers needing thread safety serialize externally.
package segalloc

const (
	// HeaderSize is the fixed width, in bytes, of every block header.
	HeaderSize = 8

	// Alignment all block footprints are rounded up to.
	Alignment = 8

	// MinBlockSize is the smallest footprint (header + payload) a
	// standalone block can have.
	MinBlockSize = 16

	// ClassCount is the number of size-class free lists.
	ClassCount = 28

	// ReallocClass is the index of the size class reserved for blocks
	// produced or consumed by Reallocate.
	ReallocClass = ClassCount - 1

	// MinExponent is the exponent of the smallest size class's lower
	// bound (2^MinExponent == MinBlockSize).
	MinExponent = 4

	// HitSensor is the per-class demand count at which the adaptive
	// policy suppresses cross-class search and remainder redistribution,
	// keeping split remainders in the class they were carved from.
	HitSensor = 150000

	// maxRequestSize bounds allocate/reallocate request sizes; requests
	// above it are rejected like a negative or zero size.
	maxRequestSize = 1<<31 - 1 // INT_MAX, matching the 32-bit payload_sz field
)

// trace, when true, makes Allocator's Init, Allocate, Free and
// Reallocate, and the OS-backed segment's Init and Extend, log each call
// and its arguments to stderr. It exists purely for interactive
// debugging and is never enabled by default.
var trace = false
