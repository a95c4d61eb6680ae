// Copyright 2024 The Region Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build darwin || dragonfly || freebsd || linux || openbsd || netbsd || solaris

// Adapted from the teacher package's mmap_unix.go, itself derived from
// evanshaw/mmap-go: swapped the raw syscall.Mmap/syscall.Syscall(SYS_MUNMAP)
// calls for golang.org/x/sys/unix, the binding used for the same purpose
// by alewtschuk/balloc and alecthomas/vheap in the retrieved corpus.

package hostmem

import "golang.org/x/sys/unix"

func mmapAnon(size int) ([]byte, error) {
	return unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED|unix.MAP_ANON)
}

func munmapAnon(b []byte) error {
	return unix.Munmap(b)
}
