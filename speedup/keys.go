// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package speedup

import (
	"errors"
	"strings"
)

// ParseKeys parses a comma-separated list of join-key column names.
// Names are trimmed, empty names are ignored, and repeated names are
// kept only at their first position.
func ParseKeys(s string) ([]string, error) {
	var keys []string
	seen := make(map[string]bool)
	for _, k := range strings.Split(s, ",") {
		k = strings.TrimSpace(k)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return nil, errors.New("no join keys given")
	}
	return keys, nil
}
