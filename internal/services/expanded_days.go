package services

import "sort"

// ExpandedDays is the set of day keys currently shown expanded. It is
// display state only and is never persisted.
type ExpandedDays struct {
	days map[string]struct{}
}

func NewExpandedDays() *ExpandedDays {
	return &ExpandedDays{days: make(map[string]struct{})}
}

func (e *ExpandedDays) Expand(date string) {
	e.days[date] = struct{}{}
}

func (e *ExpandedDays) Collapse(date string) {
	delete(e.days, date)
}

// Toggle flips date and reports whether it is now expanded.
func (e *ExpandedDays) Toggle(date string) bool {
	if e.IsExpanded(date) {
		e.Collapse(date)
		return false
	}
	e.Expand(date)
	return true
}

func (e *ExpandedDays) IsExpanded(date string) bool {
	_, ok := e.days[date]
	return ok
}

// Keys returns the expanded days, newest first.
func (e *ExpandedDays) Keys() []string {
	keys := make([]string, 0, len(e.days))
	for k := range e.days {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys
}
