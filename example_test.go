// Copyright 2024 The Region Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package region_test

import (
	"fmt"

	"github.com/cznic/region"
	"github.com/cznic/region/hostmem"
)

// ExampleRegion_walk carves a region out of host-allocated memory,
// allocates a single block, and walks the region. Formatting and
// counting are entirely the caller's concern; Walk only visits.
func ExampleRegion_walk() {
	h, err := hostmem.New(4096)
	if err != nil {
		fmt.Println(err)

		return
	}
	defer h.Release()

	r, err := region.New(h.Bytes())
	if err != nil {
		fmt.Println(err)

		return
	}

	if _, err := r.Alloc(32); err != nil {
		fmt.Println(err)

		return
	}

	var free, occupied int

	err = r.Walk(func(addr uintptr, size int, isFree bool) {
		if isFree {
			free++
		} else {
			occupied++
		}
	})
	if err != nil {
		fmt.Println(err)

		return
	}

	fmt.Printf("%d occupied, %d free\n", occupied, free)
	// Output: 1 occupied, 1 free
}
