// Copyright 2024 The Region Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hostmem supplies the backing region github.com/cznic/region
// treats as an external collaborator (spec.md §1): it mmaps an anonymous,
// page-aligned range of memory and hands back the []byte a Region is
// built on top of. It is a convenience for tests, benchmarks, and
// embedders that don't already have a byte range to offer — region.New
// itself has no dependency on this package or on the OS at all.
package hostmem

import "fmt"

// Region is a live mmap allocation. Release must be called exactly once
// when the memory is no longer needed; using Bytes afterward is
// undefined.
type Region struct {
	bytes   []byte
	release func([]byte) error
}

// Bytes returns the backing slice, suitable for passing to region.New.
func (r *Region) Bytes() []byte { return r.bytes }

// Release unmaps the region.
func (r *Region) Release() error {
	if r.release == nil {
		return nil
	}

	err := r.release(r.bytes)
	r.release = nil

	return err
}

// New mmaps size bytes of anonymous, read-write, zero-filled memory. size
// is rounded up to the OS page size by the underlying mmap call. The
// returned Region's address always satisfies every alignment region.New
// could ever require, since OS pages are aligned far more strictly than
// the platform's maximum natural alignment.
func New(size int) (*Region, error) {
	if size <= 0 {
		return nil, fmt.Errorf("hostmem: invalid size %d", size)
	}

	b, err := mmapAnon(size)
	if err != nil {
		return nil, fmt.Errorf("hostmem: mmap %d bytes: %w", size, err)
	}

	return &Region{bytes: b, release: munmapAnon}, nil
}
