// Copyright 2024 The Region Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package region

import (
	"fmt"
	"unsafe"
)

// wrapFree adapts an internal *freeBlock to the public FreeBlock handle a
// Policy operates on.
func wrapFree(b *freeBlock) *FreeBlock {
	if b == nil {
		return nil
	}

	return &FreeBlock{b: b}
}

// Alloc reserves n bytes and returns a slice over the payload. n must be
// non-negative. The returned slice has length n and capacity equal to the
// block's full usable size (see UsableSize) — the same convention the
// teacher package uses for its Malloc.
//
// Alloc returns ErrOutOfMemory if the installed Policy cannot find a
// large enough free block.
func (r *Region) Alloc(n int) ([]byte, error) {
	if n < 0 {
		panic("region: invalid alloc size")
	}

	need := roundup(uintptr(n)+commonHeaderSize, align)

	victim := r.policy(wrapFree(r.first), need)
	if victim == nil {
		tracef("Alloc(%d) -> out of memory", n)

		return nil, ErrOutOfMemory
	}

	vb := victim.b
	vsize := vb.size
	vnext := vb.next
	pred := r.predecessorOf(vb)

	rem, hasRemainder := split(unsafe.Pointer(vb), vsize, need)
	if hasRemainder {
		remBlock := freeBlockAt(rem)
		remBlock.next = vnext

		if pred == nil {
			r.first = remBlock
		} else {
			pred.next = remBlock
		}
	} else {
		if pred == nil {
			r.first = vnext
		} else {
			pred.next = vnext
		}
	}

	r.checkBlock(unsafe.Pointer(vb))

	usable := need - commonHeaderSize
	full := unsafe.Slice((*byte)(payload(unsafe.Pointer(vb))), usable)
	out := full[:n:usable]

	tracef("Alloc(%d) -> %#x (block size %d)", n, uintptr(unsafe.Pointer(vb)), need)

	return out, nil
}

// predecessorOf returns the free-list node whose next pointer is victim,
// or nil if victim is the current head. The free list is address-sorted,
// so this is the same traversal spec.md §4.4 describes for "finding the
// predecessor".
func (r *Region) predecessorOf(victim *freeBlock) *freeBlock {
	if r.first == victim {
		return nil
	}

	for b := r.first; b != nil; b = b.next {
		if b.next == victim {
			return b
		}
	}

	return nil
}

// Free returns p, previously obtained from Alloc on the same Region, to
// the free list, coalescing with either adjacent free neighbor.
func (r *Region) Free(p []byte) error {
	full := p[:cap(p)]

	ptr := unsafe.Pointer(unsafe.SliceData(full))
	if ptr == nil {
		return nil
	}

	block := blockFromPayload(ptr)
	r.checkBlock(block)
	r.checkNotFree(block)

	bsize := blockSize(block)
	fb := freeBlockAt(block)
	addr := uintptr(block)

	var prev, next *freeBlock
	for b := r.first; b != nil; b = b.next {
		if uintptr(unsafe.Pointer(b)) > addr {
			next = b

			break
		}

		prev = b
	}

	if prev == nil {
		r.first = fb
	} else {
		prev.next = fb
	}

	fb.next = next

	// Coalesce with the right neighbor first, then the left, so the
	// left-merge test below still reads fb's original address.
	if next != nil && addr+bsize == uintptr(unsafe.Pointer(next)) {
		fb.size = bsize + next.size
		fb.next = next.next
	}

	if prev != nil && uintptr(unsafe.Pointer(prev))+prev.size == addr {
		prev.size += fb.size
		prev.next = fb.next
	}

	tracef("Free(%#x) block size %d", addr, bsize)

	return nil
}

// UsableSize reports the full writable capacity of the block backing p,
// which may exceed len(p) due to alignment rounding. p must have been
// returned by Alloc on the same Region and not yet freed. It resolves the
// get_size open question from spec.md §9.
func (r *Region) UsableSize(p []byte) int {
	full := p[:cap(p)]

	ptr := unsafe.Pointer(unsafe.SliceData(full))
	if ptr == nil {
		return 0
	}

	block := blockFromPayload(ptr)

	return int(blockSize(block) - commonHeaderSize)
}

// String renders basic region accounting, for debugging only — no part
// of the public contract depends on its format.
func (r *Region) String() string {
	return fmt.Sprintf("Region{size: %d, first: %#x}", r.memorySize, uintptr(unsafe.Pointer(r.first)))
}
