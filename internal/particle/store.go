package particle

// Store is the ordered particle collection. It keeps two buffers: the front
// buffer is the last published tick, the back buffer receives the tick being
// computed. Store does no locking; the owner serializes ticks and reads.
type Store struct {
	front []Particle
	back  []Particle
}

func NewStore(capacity int) *Store {
	return &Store{
		front: make([]Particle, 0, capacity),
		back:  make([]Particle, 0, capacity),
	}
}

func (s *Store) Len() int { return len(s.front) }

// Front returns the published buffer. Callers must treat it as read-only and
// must not retain it past the next Commit.
func (s *Store) Front() []Particle { return s.front }

// Snapshot copies the published buffer out.
func (s *Store) Snapshot() []Particle {
	out := make([]Particle, len(s.front))
	copy(out, s.front)
	return out
}

// Append adds particles to the published buffer.
func (s *Store) Append(ps ...Particle) {
	s.front = append(s.front, ps...)
}

// Reset replaces the published population.
func (s *Store) Reset(ps []Particle) {
	s.front = append(s.front[:0], ps...)
}

// Back returns the write buffer sized to the current population. Its
// contents are unspecified until the caller fills it.
func (s *Store) Back() []Particle {
	if cap(s.back) < len(s.front) {
		s.back = make([]Particle, len(s.front), cap(s.front))
	}
	s.back = s.back[:len(s.front)]
	return s.back
}

// Commit publishes the write buffer.
func (s *Store) Commit() {
	s.front, s.back = s.back, s.front
}
