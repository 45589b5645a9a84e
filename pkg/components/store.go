package components

// ParticleEntry pairs a particle with its derived render instance. The two
// share a lifetime: they are appended together at spawn and dropped
// together by compaction.
type ParticleEntry struct {
	Particle Particle
	Instance RenderInstance
}

// ParticleStore is the append/retain buffer of live particles owned by one
// spawner. Entry order is not meaningful and may change across ticks.
type ParticleStore struct {
	Entries []ParticleEntry
}

func (s *ParticleStore) Len() int {
	return len(s.Entries)
}

func (s *ParticleStore) IsEmpty() bool {
	return len(s.Entries) == 0
}

// Push appends a particle and its render instance.
func (s *ParticleStore) Push(p Particle, inst RenderInstance) {
	s.Entries = append(s.Entries, ParticleEntry{Particle: p, Instance: inst})
}

// Retain compacts the store in place, keeping only entries for which keep
// returns true. Runs in O(n) with no per-entry allocation.
func (s *ParticleStore) Retain(keep func(*Particle) bool) {
	n := 0
	for i := range s.Entries {
		if keep(&s.Entries[i].Particle) {
			if n != i {
				s.Entries[n] = s.Entries[i]
			}
			n++
		}
	}
	s.Entries = s.Entries[:n]
}
