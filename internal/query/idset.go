package query

// IDSet is an ordered set of ids. The zero value is empty and ready to use.
type IDSet struct {
	ids   []int64
	index map[int64]struct{}
}

// NewIDSet keeps the first occurrence of each id.
func NewIDSet(ids ...int64) IDSet {
	s := IDSet{index: make(map[int64]struct{}, len(ids))}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add appends id unless it is already present.
func (s *IDSet) Add(id int64) {
	if s.index == nil {
		s.index = make(map[int64]struct{})
	}
	if _, ok := s.index[id]; ok {
		return
	}
	s.index[id] = struct{}{}
	s.ids = append(s.ids, id)
}

func (s IDSet) Len() int {
	return len(s.ids)
}

func (s IDSet) Contains(id int64) bool {
	_, ok := s.index[id]
	return ok
}

// Slice returns a copy of the ids in set order.
func (s IDSet) Slice() []int64 {
	out := make([]int64, len(s.ids))
	copy(out, s.ids)
	return out
}

// Union keeps s's order and appends ids only in o.
func (s IDSet) Union(o IDSet) IDSet {
	out := NewIDSet(s.ids...)
	for _, id := range o.ids {
		out.Add(id)
	}
	return out
}

func (s IDSet) Intersect(o IDSet) IDSet {
	out := NewIDSet()
	for _, id := range s.ids {
		if o.Contains(id) {
			out.Add(id)
		}
	}
	return out
}

func (s IDSet) Difference(o IDSet) IDSet {
	out := NewIDSet()
	for _, id := range s.ids {
		if !o.Contains(id) {
			out.Add(id)
		}
	}
	return out
}
