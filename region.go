// Copyright 2024 The Region Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package region

import (
	"fmt"
	"unsafe"
)

// regionHeader mirrors the three fields spec.md's region header reserves
// at the front of the backing bytes: memory_size, the installed fit
// function, and the free-list head. Only its size is used — a Go func
// value and a live pointer cannot be marshaled into raw bytes, so the
// actual memorySize/policy/first state lives on the *Region handle (see
// SPEC_FULL.md §3, and the "Global region pointer" note in spec.md §9).
// Reserving headerSize bytes still keeps block tiling starting at
// base+headerSize exactly as the spec's invariant 1 requires.
type regionHeader struct {
	memorySize uintptr
	fit        uintptr
	first      uintptr
}

var headerSize = roundup(unsafe.Sizeof(regionHeader{}), align)

// Region is a fixed-region heap allocator bound to one caller-supplied
// backing slice. Its zero value is not usable; construct one with New.
//
// Region is not safe for concurrent use.
type Region struct {
	mem        []byte // keeps the backing array alive for Region's lifetime
	base       unsafe.Pointer
	memorySize uintptr
	policy     Policy
	first      *freeBlock
	debug      bool
}

// Config holds the options New accepts, following the functional-options
// pattern.
type Config struct {
	Debug bool
}

// Option configures a Region at construction time.
type Option func(*Config)

// WithDebug turns on the cheap debug-mode assertions described in
// SPEC_FULL.md §4.7: block size sanity, address-in-region checks, and a
// double-free guard on Free. They are skipped entirely when disabled, the
// default.
func WithDebug(enabled bool) Option {
	return func(c *Config) { c.Debug = enabled }
}

// New reserves headerSize bytes at the start of mem for the region header
// (the header bytes themselves are not written; the state lives on the
// returned *Region) and seeds one free block spanning the remainder. mem's address must already satisfy align, and len(mem) must
// be large enough to hold the header and one minimal free block.
//
// The default placement policy is FirstFit.
func New(mem []byte, opts ...Option) (*Region, error) {
	if len(mem) == 0 {
		return nil, fmt.Errorf("region: empty backing slice: %w", ErrRegionTooSmall)
	}

	base := unsafe.Pointer(&mem[0])
	if uintptr(base)%align != 0 {
		return nil, fmt.Errorf("region: base address %#x is not %d-byte aligned: %w", uintptr(base), align, ErrMisaligned)
	}

	minSize := headerSize + freeBlockSize
	if uintptr(len(mem)) < minSize {
		return nil, fmt.Errorf("region: %d bytes is below the %d-byte minimum: %w", len(mem), minSize, ErrRegionTooSmall)
	}

	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}

	first := freeBlockAt(advance(base, headerSize))
	first.size = uintptr(len(mem)) - headerSize
	first.next = nil

	r := &Region{
		mem:        mem,
		base:       base,
		memorySize: uintptr(len(mem)),
		policy:     FirstFit,
		first:      first,
		debug:      cfg.Debug,
	}

	tracef("New(%d bytes) first=%#x size=%d", len(mem), uintptr(unsafe.Pointer(first)), first.size)

	return r, nil
}

// SetPolicy replaces the installed placement policy. It does not alter
// the free list.
func (r *Region) SetPolicy(p Policy) {
	r.policy = p
}

// end returns the address one past the last byte of the region.
func (r *Region) end() unsafe.Pointer {
	return advance(r.base, r.memorySize)
}

// inRegion reports whether p lies within the block-bearing portion of the
// region, i.e. [base+headerSize, base+memorySize).
func (r *Region) inRegion(p unsafe.Pointer) bool {
	lo := uintptr(advance(r.base, headerSize))
	hi := uintptr(r.end())
	addr := uintptr(p)

	return addr >= lo && addr < hi
}
