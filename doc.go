// Copyright 2024 The Region Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package region implements a fixed-region heap allocator.
//
// A Region carves variable-sized blocks out of a single, contiguous []byte
// supplied by the caller at construction time. Blocks are tracked with an
// intrusive, address-sorted, singly-linked free list; adjacent free blocks
// are coalesced on Free. The allocator never grows its backing slice and
// never asks the runtime for more memory on the caller's behalf — it is
// meant to stand in for the system allocator inside a controlled region:
// tests, embedded targets, custom arenas.
//
// A Region is not safe for concurrent use; callers needing concurrent
// access must serialize it themselves.
//
// Changelog
//
// 2024-01-01 Initial release: first-fit placement, splitting, coalescing.
package region
