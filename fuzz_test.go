// Copyright 2024 The Region Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package region

import (
	"bytes"
	"testing"

	"github.com/cznic/mathutil"
	"github.com/stretchr/testify/require"
)

// soak drives a single randomized alloc/fill/free-everything round,
// ported from the teacher package's test1/test2/test3 in all_test.go: a
// seeded FC32 generator picks allocation sizes and payload bytes, content
// is verified to have survived interleaved churn, then everything is
// freed back and the region is checked to have round-tripped to the
// single free block it started with (invariant 5, spec.md §3).
func soak(t *testing.T, regionSize, maxAlloc int) {
	rng, err := mathutil.NewFC32(1, int32(maxAlloc), true)
	require.NoError(t, err)

	rng.Seed(42)

	mem := newAligned(t, regionSize)
	r, err := New(mem)
	require.NoError(t, err)

	freeBefore := r.first.size

	var ptrs [][]byte

	var want [][]byte

	for {
		size := int(rng.Next())

		p, err := r.Alloc(size)
		if err != nil {
			require.ErrorIs(t, err, ErrOutOfMemory)

			break
		}

		for i := range p {
			p[i] = byte(rng.Next())
		}

		ptrs = append(ptrs, p)
		want = append(want, append([]byte(nil), p...))

		r.checkInvariants(t)
	}

	require.NotEmpty(t, ptrs)

	for i, p := range ptrs {
		if !bytes.Equal(p, want[i]) {
			t.Fatalf("block %d corrupted", i)
		}
	}

	// Shuffle the free order by swapping each entry with a randomly chosen
	// one, the same swap loop the teacher package uses in test1.
	for i := range ptrs {
		j := int(rng.Next()) % len(ptrs)
		ptrs[i], ptrs[j] = ptrs[j], ptrs[i]
	}

	for _, p := range ptrs {
		require.NoError(t, r.Free(p))
		r.checkInvariants(t)
	}

	require.NotNil(t, r.first)
	require.Nil(t, r.first.next)
	require.Equal(t, freeBefore, r.first.size)
}

func TestSoakSmall(t *testing.T) { soak(t, 1<<16, 64) }
func TestSoakLarge(t *testing.T) { soak(t, 1<<20, 4096) }

// soakInterleaved frees each allocation immediately after verifying it,
// instead of batching all frees at the end — ported from the teacher's
// test2, which interleaves verify-then-free in a single pass.
func soakInterleaved(t *testing.T, regionSize, maxAlloc int) {
	rng, err := mathutil.NewFC32(1, int32(maxAlloc), true)
	require.NoError(t, err)

	rng.Seed(7)

	mem := newAligned(t, regionSize)
	r, err := New(mem)
	require.NoError(t, err)

	freeBefore := r.first.size

	for i := 0; i < 500; i++ {
		size := int(rng.Next())

		p, err := r.Alloc(size)
		if err != nil {
			require.ErrorIs(t, err, ErrOutOfMemory)

			continue
		}

		for j := range p {
			p[j] = byte(i)
		}

		for _, v := range p {
			require.Equal(t, byte(i), v)
		}

		require.NoError(t, r.Free(p))
		r.checkInvariants(t)
	}

	require.NotNil(t, r.first)
	require.Nil(t, r.first.next)
	require.Equal(t, freeBefore, r.first.size)
}

func TestSoakInterleavedSmall(t *testing.T) { soakInterleaved(t, 1<<16, 64) }
func TestSoakInterleavedLarge(t *testing.T) { soakInterleaved(t, 1<<18, 2048) }
