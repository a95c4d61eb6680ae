// Copyright 2024 The Region Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package region

import "errors"

var (
	// ErrRegionTooSmall is returned by New when the supplied backing slice
	// cannot hold a header and one minimal free block.
	ErrRegionTooSmall = errors.New("region: backing slice too small")

	// ErrMisaligned is returned by New when the backing slice's address
	// does not satisfy align.
	ErrMisaligned = errors.New("region: backing slice is not aligned")

	// ErrOutOfMemory is returned by Alloc when the installed Policy finds
	// no free block large enough to satisfy the request.
	ErrOutOfMemory = errors.New("region: out of memory")

	// ErrInvalidPointer is the cause wrapped into a panic by Alloc and Free,
	// in debug mode, when a block's address falls outside the region's
	// block-bearing range.
	ErrInvalidPointer = errors.New("region: pointer not owned by this region")

	// ErrCorruptedBlock is the cause wrapped into a panic by a debug-mode
	// assertion failure: a block's size field is not a positive multiple
	// of align. Walk also returns it wrapped as an ordinary error, since
	// Walk's corruption check runs unconditionally, not only in debug
	// mode.
	ErrCorruptedBlock = errors.New("region: corrupted block header")

	// ErrDoubleFree is the cause wrapped into a panic by Free, in debug
	// mode, when the block being freed is already linked into the free
	// list.
	ErrDoubleFree = errors.New("region: double free")
)
