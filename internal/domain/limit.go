package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Limit is an integer ceiling that may be unbounded. The zero value is
// unbounded, which is distinct from a finite limit of zero.
type Limit struct {
	n      int
	finite bool
}

func Unbounded() Limit { return Limit{} }

func LimitOf(n int) Limit { return Limit{n: n, finite: true} }

func (l Limit) IsUnbounded() bool { return !l.finite }

// Value reports the finite ceiling; ok is false when unbounded.
func (l Limit) Value() (n int, ok bool) { return l.n, l.finite }

// Allows reports whether count stays within the limit.
func (l Limit) Allows(count int) bool {
	return !l.finite || count <= l.n
}

// Compare orders limits; unbounded is greater than every finite limit.
func (l Limit) Compare(o Limit) int {
	switch {
	case !l.finite && !o.finite:
		return 0
	case !l.finite:
		return 1
	case !o.finite:
		return -1
	case l.n < o.n:
		return -1
	case l.n > o.n:
		return 1
	default:
		return 0
	}
}

func (l Limit) String() string {
	if !l.finite {
		return "unbounded"
	}
	return strconv.Itoa(l.n)
}

// MarshalJSON writes null for unbounded limits.
func (l Limit) MarshalJSON() ([]byte, error) {
	if !l.finite {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(l.n)), nil
}

func (l *Limit) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*l = Unbounded()
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*l = LimitOf(n)
	return nil
}
