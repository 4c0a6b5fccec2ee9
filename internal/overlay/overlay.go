// Package overlay applies the stored per-item flags to the catalog parsed
// from the menu sheet.
package overlay

import "github.com/samia-cardapio/cardapio-api/internal/domain"

// Flags holds the four overlay documents. A nil map behaves as empty.
type Flags struct {
	Availability map[string]bool
	Visibility   map[string]bool
	Extras       map[string]bool
	Half         map[string]bool
}

// ByKey returns the mapping stored under an overlay document key.
func (f Flags) ByKey(key domain.OverlayKey) map[string]bool {
	switch key {
	case domain.OverlayAvailability:
		return f.Availability
	case domain.OverlayVisibility:
		return f.Visibility
	case domain.OverlayExtras:
		return f.Extras
	case domain.OverlayHalf:
		return f.Half
	}
	return nil
}

func (f *Flags) Set(key domain.OverlayKey, m map[string]bool) {
	switch key {
	case domain.OverlayAvailability:
		f.Availability = m
	case domain.OverlayVisibility:
		f.Visibility = m
	case domain.OverlayExtras:
		f.Extras = m
	case domain.OverlayHalf:
		f.Half = m
	}
}

// Apply removes hidden items and sets available, acceptsExtras and
// allowHalf on every remaining one. The input records are left untouched.
func Apply(items []domain.Record, f Flags) []domain.Record {
	out := make([]domain.Record, 0, len(items))

	for _, item := range items {
		id := item.ID()
		if explicitFalse(f.Visibility, id) {
			continue
		}

		isPizza := item.Bool(domain.KeyIsPizza)

		acceptsExtras, ok := f.Extras[id]
		if !ok {
			acceptsExtras = isPizza
		}

		merged := item.Clone()
		merged[domain.KeyAvailable] = !explicitFalse(f.Availability, id)
		merged[domain.KeyAcceptsExtras] = acceptsExtras
		merged[domain.KeyAllowHalf] = isPizza && !explicitFalse(f.Half, id)
		out = append(out, merged)
	}

	return out
}

func explicitFalse(m map[string]bool, id string) bool {
	v, ok := m[id]
	return ok && !v
}
