package ecs

// entityStore tracks entity generations and free ids.
type entityStore struct {
	gen   []generation
	free  []entityID
	alive []Entity
}

func (s *entityStore) create() Entity {
	var id entityID
	if len(s.free) > 0 {
		id = s.free[len(s.free)-1]
		s.free = s.free[:len(s.free)-1]
	} else {
		s.gen = append(s.gen, 0)
		id = entityID(len(s.gen))
	}
	e := makeEntity(id, s.gen[id-1])
	s.alive = append(s.alive, e)
	return e
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	s.gen[e.id()-1]++
	s.free = append(s.free, e.id())
	for i, a := range s.alive {
		if a == e {
			s.alive = append(s.alive[:i], s.alive[i+1:]...)
			break
		}
	}
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) > len(s.gen) {
		return false
	}
	return s.gen[id-1] == e.generation()
}

func (s *entityStore) reset() {
	s.gen = nil
	s.free = nil
	s.alive = nil
}
