package simulation

import "fmt"

// Phase is the lifecycle of one entity: Inactive, then Active, then Arrived.
// Transitions only move forward, so the active and arrived latches never un-fire.
type Phase uint8

const (
	Inactive Phase = iota
	Active
	Arrived
)

func (p Phase) String() string {
	switch p {
	case Inactive:
		return "inactive"
	case Active:
		return "active"
	case Arrived:
		return "arrived"
	default:
		return "unknown"
	}
}

// Activate moves Inactive to Active. edge is true only when the transition happened.
func (p Phase) Activate() (next Phase, edge bool) {
	if p == Inactive {
		return Active, true
	}
	return p, false
}

// Arrive moves Active to Arrived. Inactive entities cannot arrive.
func (p Phase) Arrive() (next Phase, edge bool) {
	if p == Active {
		return Arrived, true
	}
	return p, false
}

// Launched is the active latch: true from the activation frame on.
func (p Phase) Launched() bool { return p >= Active }

// Landed is the arrival latch.
func (p Phase) Landed() bool { return p == Arrived }

// Visible reports whether the entity is presented: launched and not yet arrived.
func (p Phase) Visible() bool { return p == Active }

// MarshalText writes the phase name, so frames read well as JSON.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(b []byte) error {
	switch string(b) {
	case "inactive":
		*p = Inactive
	case "active":
		*p = Active
	case "arrived":
		*p = Arrived
	default:
		return fmt.Errorf("unknown phase %q", b)
	}
	return nil
}
