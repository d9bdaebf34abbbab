// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command segalloc-demo exercises the segalloc Allocator against a real
// OS-backed Segment: it allocates a run of blocks, writes a byte
// pattern into each, frees every other one, validates the heap, and
// reports basic counts. It exists to give the allocator a runnable
// entry point outside of its test suite.
package main

import (
	"flag"
	"fmt"
	"log"
	"unsafe"

	"github.com/mo-elmu/segalloc"
)

func main() {
	count := flag.Int("n", 64, "number of blocks to allocate")
	size := flag.Int("size", 256, "payload size per block, in bytes")
	flag.Parse()

	a := segalloc.NewAllocator(segalloc.NewOSSegment())

	ptrs := make([]unsafe.Pointer, *count)
	for i := range ptrs {
		p := a.Allocate(*size)
		if p == nil {
			log.Fatalf("Allocate(%d) failed at block %d", *size, i)
		}
		b := unsafe.Slice((*byte)(p), *size)
		for j := range b {
			b[j] = byte(i)
		}
		ptrs[i] = p
	}

	for i, p := range ptrs {
		if i%2 == 0 {
			a.Free(p)
		}
	}

	if !a.Validate() {
		log.Fatal("heap failed validation")
	}

	fmt.Printf("allocated %d blocks of %d bytes, freed %d, heap valid\n",
		*count, *size, (*count+1)/2)
}
