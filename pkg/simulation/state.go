package simulation

import (
	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/selection"
)

// EntityState is the per-entity state committed at the end of a frame.
type EntityState struct {
	Position geometry.Vector3D
	Velocity geometry.Vector3D
	Phase    Phase
	// Age counts the frames spent Active, the activation frame is age 1.
	Age int
	// LaunchEdge and ArrivalEdge are set only on the frame the transition happened.
	LaunchEdge  bool
	ArrivalEdge bool
}

// Snapshot is an immutable set of entity states for one frame.
// Advance reads one snapshot and returns a new one, never mutating its input.
type Snapshot struct {
	frame  int
	states []EntityState
}

// InitialSnapshot places every entity at its launch position, at rest and Inactive.
// Its frame is -1: it is the "previous frame" of frame 0.
func InitialSnapshot(launchPositions []geometry.Vector3D) *Snapshot {
	s := &Snapshot{frame: -1, states: make([]EntityState, len(launchPositions))}
	for i, p := range launchPositions {
		s.states[i] = EntityState{Position: p}
	}
	return s
}

// Frame is the frame index that produced the snapshot.
func (s *Snapshot) Frame() int { return s.frame }

func (s *Snapshot) Len() int { return len(s.states) }

// State returns the state of entity i, the zero state when i is out of range.
func (s *Snapshot) State(i int) EntityState {
	return selection.Pick(s.states, i, EntityState{})
}

// States returns a copy of every entity state.
func (s *Snapshot) States() []EntityState {
	out := make([]EntityState, len(s.states))
	copy(out, s.states)
	return out
}

// Count returns how many entities are in phase p.
func (s *Snapshot) Count(p Phase) int {
	n := 0
	for _, st := range s.states {
		if st.Phase == p {
			n++
		}
	}
	return n
}

// AllArrived reports whether every entity reached its target.
// A zero-entity snapshot has nothing left to do.
func (s *Snapshot) AllArrived() bool {
	return s.Count(Arrived) == len(s.states)
}
