package simulation

import (
	"encoding/json"
	"testing"
)

func TestPhase_Transitions(t *testing.T) {
	tests := []struct {
		from         Phase
		activate     Phase
		activateEdge bool
		arrive       Phase
		arriveEdge   bool
	}{
		{Inactive, Active, true, Inactive, false},
		{Active, Active, false, Arrived, true},
		{Arrived, Arrived, false, Arrived, false},
	}
	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			if got, edge := tt.from.Activate(); got != tt.activate || edge != tt.activateEdge {
				t.Errorf("Activate() = %v, %v; want %v, %v", got, edge, tt.activate, tt.activateEdge)
			}
			if got, edge := tt.from.Arrive(); got != tt.arrive || edge != tt.arriveEdge {
				t.Errorf("Arrive() = %v, %v; want %v, %v", got, edge, tt.arrive, tt.arriveEdge)
			}
		})
	}
}

func TestPhase_Latches(t *testing.T) {
	if Inactive.Launched() || Inactive.Visible() || Inactive.Landed() {
		t.Error("inactive latches")
	}
	if !Active.Launched() || !Active.Visible() || Active.Landed() {
		t.Error("active latches")
	}
	if !Arrived.Launched() || Arrived.Visible() || !Arrived.Landed() {
		t.Error("arrived latches")
	}
}

func TestPhase_JSON(t *testing.T) {
	b, err := json.Marshal(struct{ P Phase }{Arrived})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"P":"arrived"}` {
		t.Errorf("marshal = %s", b)
	}
	var back struct{ P Phase }
	if err := json.Unmarshal(b, &back); err != nil || back.P != Arrived {
		t.Errorf("unmarshal = %v, %v", back.P, err)
	}
	if err := json.Unmarshal([]byte(`{"P":"lost"}`), &back); err == nil {
		t.Error("expected error for unknown phase")
	}
}
