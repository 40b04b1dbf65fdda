package ecs

// entityStore tracks slot generations, reference counts and free slots.
// Slot ids start at 1 so that the zero Entity is never valid.
type entityStore struct {
	gen   []generation
	alive []bool
	refs  []int
	free  []entityID
}

func (s *entityStore) create() Entity {
	var id entityID
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.gen = append(s.gen, 0)
		s.alive = append(s.alive, false)
		s.refs = append(s.refs, 0)
		id = entityID(len(s.gen))
	}
	idx := id - 1
	s.alive[idx] = true
	s.refs[idx] = 1
	return makeEntity(id, s.gen[idx])
}

func (s *entityStore) index(e Entity) (int, bool) {
	id := e.id()
	if id == 0 || int(id) > len(s.gen) {
		return 0, false
	}
	idx := int(id - 1)
	if !s.alive[idx] || s.gen[idx] != e.generation() {
		return 0, false
	}
	return idx, true
}

func (s *entityStore) destroy(e Entity) bool {
	idx, ok := s.index(e)
	if !ok {
		return false
	}
	s.alive[idx] = false
	s.refs[idx] = 0
	s.gen[idx]++
	s.free = append(s.free, e.id())
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	_, ok := s.index(e)
	return ok
}

func (s *entityStore) retain(e Entity) int {
	idx, ok := s.index(e)
	if !ok {
		return 0
	}
	s.refs[idx]++
	return s.refs[idx]
}

// release drops one reference and reports the remaining count.
func (s *entityStore) release(e Entity) int {
	idx, ok := s.index(e)
	if !ok {
		return 0
	}
	if s.refs[idx] > 0 {
		s.refs[idx]--
	}
	return s.refs[idx]
}

func (s *entityStore) refCount(e Entity) int {
	idx, ok := s.index(e)
	if !ok {
		return 0
	}
	return s.refs[idx]
}

func (s *entityStore) all() []Entity {
	out := make([]Entity, 0, len(s.gen)-len(s.free))
	for i, alive := range s.alive {
		if alive {
			out = append(out, makeEntity(entityID(i+1), s.gen[i]))
		}
	}
	return out
}
