package puzzle

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// DefaultSequenceLength is the number of puzzles generated per room.
const DefaultSequenceLength = 90

// Source supplies randomness. *rand.Rand satisfies it.
type Source interface {
	// Intn returns a value in [0, n). n > 0.
	Intn(n int) int
}

// Sequence is an ordered, read-only list of puzzles shared by every player of a room.
type Sequence struct {
	puzzles []Puzzle
}

// NewSequence wraps puzzles; the slice is copied.
func NewSequence(puzzles []Puzzle) Sequence {
	cp := make([]Puzzle, len(puzzles))
	copy(cp, puzzles)
	return Sequence{puzzles: cp}
}

// Len returns the number of puzzles.
func (s Sequence) Len() int { return len(s.puzzles) }

// At returns the puzzle at i, wrapping past the end.
func (s Sequence) At(i int) Puzzle {
	if len(s.puzzles) == 0 {
		return Puzzle{}
	}
	i %= len(s.puzzles)
	if i < 0 {
		i += len(s.puzzles)
	}
	return s.puzzles[i]
}

// Next returns the index after i, wrapping to 0 past the end.
func (s Sequence) Next(i int) int {
	if len(s.puzzles) == 0 || i+1 >= len(s.puzzles) {
		return 0
	}
	return i + 1
}

// Puzzles returns a copy of the ordered list.
func (s Sequence) Puzzles() []Puzzle {
	cp := make([]Puzzle, len(s.puzzles))
	copy(cp, s.puzzles)
	return cp
}

type pool struct {
	difficulty Difficulty
	puzzles    []Puzzle
}

// Sequencer draws round-robin across pools, never repeating a pool entry until that
// pool is exhausted.
type Sequencer struct {
	mu    sync.Mutex
	src   Source
	pools []pool
}

// NewSequencer validates pools. A nil src uses a time-seeded *rand.Rand.
func NewSequencer(src Source, pools ...Pool) (*Sequencer, error) {
	if len(pools) == 0 {
		return nil, errors.New("sequencer needs at least one pool")
	}
	if src == nil {
		src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s := &Sequencer{src: src}
	for _, p := range pools {
		if len(p.Keys) == 0 {
			return nil, fmt.Errorf("pool %s is empty", p.Difficulty)
		}
		parsed := pool{difficulty: p.Difficulty, puzzles: make([]Puzzle, 0, len(p.Keys))}
		for _, key := range p.Keys {
			digits, err := ParseKey(key)
			if err != nil {
				return nil, fmt.Errorf("pool %s: %w", p.Difficulty, err)
			}
			parsed.puzzles = append(parsed.puzzles, Puzzle{Digits: digits, Difficulty: p.Difficulty, Key: key})
		}
		s.pools = append(s.pools, parsed)
	}
	return s, nil
}

// NewDefaultSequencer uses DefaultPools.
func NewDefaultSequencer(src Source) *Sequencer {
	s, err := NewSequencer(src, DefaultPools()...)
	if err != nil {
		panic(fmt.Sprintf("puzzle: built-in pools invalid: %v", err))
	}
	return s
}

// Generate builds a sequence of n puzzles. Pool i supplies entries i, i+len(pools), ...
func (s *Sequencer) Generate(n int) Sequence {
	if n <= 0 {
		n = DefaultSequenceLength
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	used := make([]map[string]bool, len(s.pools))
	for i := range used {
		used[i] = make(map[string]bool)
	}

	out := make([]Puzzle, 0, n)
	for step := 0; len(out) < n; step++ {
		idx := step % len(s.pools)
		p := s.pools[idx]

		available := make([]Puzzle, 0, len(p.puzzles))
		for _, pz := range p.puzzles {
			if !used[idx][pz.Key] {
				available = append(available, pz)
			}
		}
		if len(available) == 0 {
			used[idx] = make(map[string]bool)
			available = p.puzzles
		}

		pick := available[s.src.Intn(len(available))]
		used[idx][pick.Key] = true
		out = append(out, pick)
	}
	return Sequence{puzzles: out}
}
