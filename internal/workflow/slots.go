package workflow

import "fmt"

// SlotPicker accumulates the admin's chosen interview times for one date.
// Selecting an already-chosen time is a no-op; removal only happens through
// an explicit Deselect.
type SlotPicker struct {
	date   string
	order  []string
	chosen map[string]struct{}
}

// NewSlotPicker starts an empty selection for a date (YYYY-MM-DD).
func NewSlotPicker(date string) *SlotPicker {
	return &SlotPicker{date: date, chosen: make(map[string]struct{})}
}

// Select adds a time (HH:MM). Returns false when it was already chosen.
func (p *SlotPicker) Select(t string) bool {
	if _, ok := p.chosen[t]; ok {
		return false
	}
	p.chosen[t] = struct{}{}
	p.order = append(p.order, t)
	return true
}

// Deselect removes a time. Returns false when it was not chosen.
func (p *SlotPicker) Deselect(t string) bool {
	if _, ok := p.chosen[t]; !ok {
		return false
	}
	delete(p.chosen, t)
	for i, existing := range p.order {
		if existing == t {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of chosen times.
func (p *SlotPicker) Len() int { return len(p.order) }

// Times returns the chosen times in selection order.
func (p *SlotPicker) Times() []string {
	return append([]string(nil), p.order...)
}

// ISODateTimes renders the selection as the ISO date-time strings the
// assignment endpoint expects.
func (p *SlotPicker) ISODateTimes() []string {
	result := make([]string, 0, len(p.order))
	for _, t := range p.order {
		result = append(result, fmt.Sprintf("%sT%s:00", p.date, t))
	}
	return result
}
