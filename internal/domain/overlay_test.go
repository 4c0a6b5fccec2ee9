package domain

import (
	"math"
	"testing"
)

func TestOverlayFlag(t *testing.T) {
	cases := []struct {
		key  OverlayKey
		raw  any
		want bool
	}{
		{OverlayAvailability, false, false},
		{OverlayAvailability, true, true},
		{OverlayAvailability, "false", true},
		{OverlayAvailability, int64(0), true},
		{OverlayAvailability, nil, true},
		{OverlayHalf, false, false},
		{OverlayVisibility, map[string]any{}, true},
		{OverlayExtras, false, false},
		{OverlayExtras, true, true},
		{OverlayExtras, nil, false},
		{OverlayExtras, "", false},
		{OverlayExtras, "sim", true},
		{OverlayExtras, int32(0), false},
		{OverlayExtras, int64(2), true},
		{OverlayExtras, 0.0, false},
		{OverlayExtras, math.NaN(), false},
		{OverlayExtras, []any{}, true},
	}

	for _, tc := range cases {
		if got := OverlayFlag(tc.key, tc.raw); got != tc.want {
			t.Errorf("OverlayFlag(%s, %#v)=%v want %v", tc.key, tc.raw, got, tc.want)
		}
	}
}
