// Copyright 2024 The Region Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package region

import (
	"fmt"
	"unsafe"
)

// WalkFunc is called once per block, in ascending physical address order.
// addr is the block's base address (not its payload); size includes the
// common prefix. visit must not call Alloc or Free on the Region it was
// given — Walk promises nothing about the list state if it does.
type WalkFunc func(addr uintptr, size int, isFree bool)

// Walk visits every block in the region in physical address order,
// classifying each as free or occupied. It tracks the free-list cursor in
// parallel with the physical scan: a block is free iff its address
// matches the current cursor, in which case the cursor advances to the
// next free block. Formatting or otherwise presenting the walked blocks
// is entirely the caller's problem; Walk itself never prints anything.
func (r *Region) Walk(visit WalkFunc) error {
	cursor := r.first
	block := advance(r.base, headerSize)
	end := r.end()

	for uintptr(block) < uintptr(end) {
		size := blockSize(block)
		if size == 0 || size%align != 0 {
			return fmt.Errorf("region: corrupted block at %#x (size %d): %w", uintptr(block), size, ErrCorruptedBlock)
		}

		isFree := cursor != nil && unsafe.Pointer(cursor) == block
		visit(uintptr(block), int(size), isFree)

		if isFree {
			cursor = cursor.next
		}

		block = advance(block, size)
	}

	return nil
}
