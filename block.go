// Copyright 2024 The Region Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package region

import "unsafe"

// align is the platform's maximum natural alignment. Every block size is
// rounded up to a multiple of align, and every payload pointer Alloc
// returns lands on an align boundary.
const align = 16

// commonHeader is the prefix present at the start of every block, free or
// occupied. It carries the block's total size, including the prefix
// itself, rounded up to align.
type commonHeader struct {
	size uintptr
}

// freeBlock extends commonHeader with the singly-linked free-list pointer.
// It is only meaningful while the block is free; once handed out by Alloc
// the next field is never read again until the block is freed and
// reinterpreted as a freeBlock.
type freeBlock struct {
	commonHeader
	next *freeBlock
}

// FreeBlock is the public, read-only view of a free block handed to a
// Policy. It exposes only Size, Next and Addr, keeping the rest of the block
// layout — an unsafe overlay onto the region's backing bytes — private to
// this package.
type FreeBlock struct {
	b *freeBlock
}

// Size reports the block's total size in bytes, including its prefix.
func (f *FreeBlock) Size() uintptr {
	if f == nil || f.b == nil {
		return 0
	}

	return f.b.size
}

// Next returns the next free block in ascending address order, or nil if
// f is the last one.
func (f *FreeBlock) Next() *FreeBlock {
	if f == nil || f.b == nil || f.b.next == nil {
		return nil
	}

	return &FreeBlock{b: f.b.next}
}

// Addr reports the block's base address, for diagnostic use only.
func (f *FreeBlock) Addr() uintptr {
	if f == nil || f.b == nil {
		return 0
	}

	return uintptr(unsafe.Pointer(f.b))
}

var (
	commonHeaderSize = roundup(unsafe.Sizeof(commonHeader{}), align)
	freeBlockSize    = roundup(unsafe.Sizeof(freeBlock{}), align)
)

// roundup rounds n up to the next multiple of m. m must be a power of 2.
func roundup(n, m uintptr) uintptr { return (n + m - 1) &^ (m - 1) }

// blockHeaderAt overlays a commonHeader onto the bytes at p.
func blockHeaderAt(p unsafe.Pointer) *commonHeader { return (*commonHeader)(p) }

// freeBlockAt overlays a freeBlock onto the bytes at p.
func freeBlockAt(p unsafe.Pointer) *freeBlock { return (*freeBlock)(p) }

// blockSize reads the size field common to every block.
func blockSize(p unsafe.Pointer) uintptr { return blockHeaderAt(p).size }

// payload returns the pointer to the writable bytes following a block's
// common prefix.
func payload(p unsafe.Pointer) unsafe.Pointer {
	return unsafe.Pointer(uintptr(p) + commonHeaderSize)
}

// blockFromPayload recovers a block's base address from a pointer
// previously returned as payload(block).
func blockFromPayload(p unsafe.Pointer) unsafe.Pointer {
	return unsafe.Pointer(uintptr(p) - commonHeaderSize)
}

// advance returns the address n bytes past p.
func advance(p unsafe.Pointer, n uintptr) unsafe.Pointer {
	return unsafe.Pointer(uintptr(p) + n)
}

// split carves an occupied block of need bytes off the low address side of
// a free block of vsize bytes starting at p, and returns the remainder
// free block's address together with whether a remainder exists at all.
// The caller is responsible for splicing the remainder into the free
// list; split only rewrites the two blocks' prefixes.
func split(p unsafe.Pointer, vsize, need uintptr) (remainder unsafe.Pointer, hasRemainder bool) {
	blockHeaderAt(p).size = need
	if vsize == need {
		return nil, false
	}

	rem := advance(p, need)
	freeBlockAt(rem).size = vsize - need

	return rem, true
}
