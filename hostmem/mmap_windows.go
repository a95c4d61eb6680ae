// Copyright 2024 The Region Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

// Adapted from the teacher package's mmap_windows.go: CreateFileMapping
// followed by MapViewOfFile, rewritten against golang.org/x/sys/windows
// instead of raw syscall so both platform files in this package share one
// dependency family.

package hostmem

import (
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	handleMu  sync.Mutex
	handleMap = map[uintptr]windows.Handle{}
)

func mmapAnon(size int) ([]byte, error) {
	maxSizeHigh := uint32(uint64(size) >> 32)
	maxSizeLow := uint32(uint64(size) & 0xFFFFFFFF)

	h, err := windows.CreateFileMapping(windows.InvalidHandle, nil, windows.PAGE_READWRITE, maxSizeHigh, maxSizeLow, nil)
	if err != nil {
		return nil, fmt.Errorf("CreateFileMapping: %w", err)
	}

	addr, err := windows.MapViewOfFile(h, windows.FILE_MAP_WRITE, 0, 0, uintptr(size))
	if err != nil {
		windows.CloseHandle(h)

		return nil, fmt.Errorf("MapViewOfFile: %w", err)
	}

	handleMu.Lock()
	handleMap[addr] = h
	handleMu.Unlock()

	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

func munmapAnon(b []byte) error {
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(b)))

	if err := windows.UnmapViewOfFile(addr); err != nil {
		return fmt.Errorf("UnmapViewOfFile: %w", err)
	}

	handleMu.Lock()
	h, ok := handleMap[addr]
	delete(handleMap, addr)
	handleMu.Unlock()

	if !ok {
		return fmt.Errorf("hostmem: unknown base address %#x", addr)
	}

	return windows.CloseHandle(h)
}
