// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package boundary

import "github.com/cespare/xxhash/v2"

func xxhashSum(b []byte) uint64 {
	return xxhash.Sum64(b)
}
