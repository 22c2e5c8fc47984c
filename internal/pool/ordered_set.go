package pool

// OrderedSet is an insertion-ordered set of bullet texts. The zero value is ready to use.
type OrderedSet struct {
	items []string
	index map[string]struct{}
}

// NewOrderedSet builds a set from items, dropping exact duplicates
func NewOrderedSet(items ...string) *OrderedSet {
	s := &OrderedSet{}
	for _, item := range items {
		s.Add(item)
	}
	return s
}

// Add appends item if it is not already present and reports whether it was added
func (s *OrderedSet) Add(item string) bool {
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, ok := s.index[item]; ok {
		return false
	}
	s.index[item] = struct{}{}
	s.items = append(s.items, item)
	return true
}

// Contains reports whether item is in the set
func (s *OrderedSet) Contains(item string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[item]
	return ok
}

// Items returns a copy of the set's contents in insertion order
func (s *OrderedSet) Items() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of items
func (s *OrderedSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}
