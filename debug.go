// Copyright 2024 The Region Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package region

import (
	"fmt"
	"os"
	"unsafe"
)

// trace enables verbose operation logging to stderr for every Alloc/Free
// call. It is always false in committed code; flip it locally when
// chasing a corrupted heap, the same switch the teacher package uses.
const trace = false

func tracef(s string, va ...interface{}) {
	if !trace {
		return
	}

	fmt.Fprintf(os.Stderr, s, va...)
	fmt.Fprintln(os.Stderr)
}

// checkBlock runs the cheap debug-mode assertions SPEC_FULL.md §4.7
// promises: the block's size is a positive multiple of align and its
// address falls inside the region's block-bearing range. It is a no-op
// unless r.debug is set. A failed assertion panics with a descriptive
// message, as SPEC_FULL.md §4.7 specifies for debug-mode checks.
func (r *Region) checkBlock(p unsafe.Pointer) {
	if !r.debug {
		return
	}

	if !r.inRegion(p) {
		panic(fmt.Errorf("region: block at %#x outside region: %w", uintptr(p), ErrInvalidPointer))
	}

	size := blockSize(p)
	if size == 0 || size%align != 0 {
		panic(fmt.Errorf("region: block at %#x has size %d: %w", uintptr(p), size, ErrCorruptedBlock))
	}
}

// checkNotFree walks the free list looking for block; in debug mode, Free
// uses this to reject an obvious double free by panicking, per
// SPEC_FULL.md §4.7.
func (r *Region) checkNotFree(block unsafe.Pointer) {
	if !r.debug {
		return
	}

	for b := r.first; b != nil; b = b.next {
		if unsafe.Pointer(b) == block {
			panic(fmt.Errorf("region: block at %#x already free: %w", uintptr(block), ErrDoubleFree))
		}
	}
}
