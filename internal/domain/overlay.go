package domain

import (
	"fmt"
	"math"
)

// OverlayKey names one stored id->bool overlay document.
type OverlayKey string

const (
	OverlayAvailability OverlayKey = "item_status"
	OverlayVisibility   OverlayKey = "item_visibility"
	OverlayExtras       OverlayKey = "item_extras_status"
	OverlayHalf         OverlayKey = "pizza_half_status"
)

var OverlayKeys = []OverlayKey{
	OverlayAvailability,
	OverlayVisibility,
	OverlayExtras,
	OverlayHalf,
}

func (k OverlayKey) Valid() bool {
	for _, v := range OverlayKeys {
		if k == v {
			return true
		}
	}
	return false
}

// OverlayFlag reads one stored overlay value written by any client. Only an
// explicit false turns availability, visibility or half pizzas off; the
// extras document keeps the stored value, so it follows truthiness.
func OverlayFlag(key OverlayKey, raw any) bool {
	if key != OverlayExtras {
		b, ok := raw.(bool)
		return !ok || b
	}

	switch v := raw.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case int32:
		return v != 0
	case int64:
		return v != 0
	case int:
		return v != 0
	case float64:
		return v != 0 && !math.IsNaN(v)
	default:
		return true
	}
}

// ItemFlag is the public name of an overlay flag.
type ItemFlag string

const (
	FlagAvailable     ItemFlag = "available"
	FlagVisible       ItemFlag = "visible"
	FlagAcceptsExtras ItemFlag = "accepts_extras"
	FlagAllowHalf     ItemFlag = "allow_half"
)

func (f ItemFlag) Overlay() (OverlayKey, error) {
	switch f {
	case FlagAvailable:
		return OverlayAvailability, nil
	case FlagVisible:
		return OverlayVisibility, nil
	case FlagAcceptsExtras:
		return OverlayExtras, nil
	case FlagAllowHalf:
		return OverlayHalf, nil
	default:
		return "", fmt.Errorf("unknown item flag %q", f)
	}
}
