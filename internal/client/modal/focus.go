package modal

// FocusRing contains keyboard focus within one modal. Movement wraps at
// both ends so focus can never escape into the page behind the overlay.
type FocusRing struct {
	items []string
	idx   int
}

// NewFocusRing builds a ring over the given focusable item ids, focused on
// the first item.
func NewFocusRing(items []string) *FocusRing {
	return &FocusRing{items: items}
}

// Current returns the focused item, or "" for an empty ring.
func (f *FocusRing) Current() string {
	if len(f.items) == 0 {
		return ""
	}
	return f.items[f.idx]
}

// Next advances focus, wrapping last->first, and returns the new item.
func (f *FocusRing) Next() string {
	if len(f.items) == 0 {
		return ""
	}
	f.idx = (f.idx + 1) % len(f.items)
	return f.items[f.idx]
}

// Prev moves focus backward, wrapping first->last, and returns the new item.
func (f *FocusRing) Prev() string {
	if len(f.items) == 0 {
		return ""
	}
	f.idx = (f.idx - 1 + len(f.items)) % len(f.items)
	return f.items[f.idx]
}
