package simulation

import "github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/geometry"

// EntityFrame is what the presentation layer receives for one entity.
type EntityFrame struct {
	Index    int               `json:"index"`
	Name     string            `json:"name"`
	Position geometry.Vector3D `json:"position"`
	Velocity geometry.Vector3D `json:"velocity"`
	Target   geometry.Vector3D `json:"target"`
	Visible  bool              `json:"visible"`
	Phase    Phase             `json:"phase"`
	Age      int               `json:"age"`
	Launched bool              `json:"launched,omitempty"` // activation edge
	Arrived  bool              `json:"arrived,omitempty"`  // arrival edge
}

type ObstacleFrame struct {
	Name     string            `json:"name"`
	Position geometry.Vector3D `json:"position"`
	Radius   float64           `json:"radius"`
}

// Frame is the output of one simulated frame.
type Frame struct {
	Index     int             `json:"frame"`
	Time      float64         `json:"time"` // seconds since frame 0
	Entities  []EntityFrame   `json:"entities"`
	Obstacles []ObstacleFrame `json:"obstacles,omitempty"`
}

// Visible returns the number of entities currently presented.
func (f Frame) Visible() int {
	n := 0
	for _, e := range f.Entities {
		if e.Visible {
			n++
		}
	}
	return n
}

// Events returns the entities that launched or arrived on this frame.
func (f Frame) Events() []EntityFrame {
	var out []EntityFrame
	for _, e := range f.Entities {
		if e.Launched || e.Arrived {
			out = append(out, e)
		}
	}
	return out
}

func buildFrame(snap *Snapshot, names []string, in FrameInput) Frame {
	f := Frame{
		Index:    in.Frame,
		Time:     float64(in.Frame) * in.DeltaTime,
		Entities: make([]EntityFrame, snap.Len()),
	}
	for i := range f.Entities {
		st := snap.State(i)
		f.Entities[i] = EntityFrame{
			Index:    i,
			Name:     names[i],
			Position: st.Position,
			Velocity: st.Velocity,
			Target:   in.Targets[i],
			Visible:  st.Phase.Visible(),
			Phase:    st.Phase,
			Age:      st.Age,
			Launched: st.LaunchEdge,
			Arrived:  st.ArrivalEdge,
		}
	}
	return f
}
