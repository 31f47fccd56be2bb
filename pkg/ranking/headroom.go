// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package ranking

import "strconv"

// Headroom is the remaining quota for a model in one region. A lookup that
// fails or finds no usage record yields an unknown headroom, which is distinct
// from a known value of zero: zero means the quota is exhausted, unknown means
// it could not be determined.
type Headroom struct {
	value int64
	known bool
}

// KnownHeadroom returns a headroom with the given value.
func KnownHeadroom(value int64) Headroom {
	return Headroom{value: value, known: true}
}

// UnknownHeadroom returns the sentinel for an undetermined headroom.
func UnknownHeadroom() Headroom {
	return Headroom{}
}

// Value returns the headroom and whether it is known.
func (h Headroom) Value() (int64, bool) {
	return h.value, h.known
}

// OK reports whether the headroom permits a deployment. Unknown headroom is
// treated optimistically so that an unresolved quota lookup never excludes a
// region that capacity says is viable.
func (h Headroom) OK() bool {
	return !h.known || h.value > 0
}

func (h Headroom) String() string {
	if !h.known {
		return "unknown"
	}

	return strconv.FormatInt(h.value, 10)
}

// MarshalJSON encodes a known headroom as a number and an unknown one as the
// string "unknown".
func (h Headroom) MarshalJSON() ([]byte, error) {
	if !h.known {
		return []byte(`"unknown"`), nil
	}

	return []byte(strconv.FormatInt(h.value, 10)), nil
}
