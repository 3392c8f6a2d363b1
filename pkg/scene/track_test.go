package scene

import (
	"testing"

	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/geometry"
)

func TestTrack_Constant(t *testing.T) {
	tr := NewScalarTrack(Constant,
		Key[float64]{Frame: 10, Value: 1},
		Key[float64]{Frame: 1, Value: 0}, // out of order on purpose
		Key[float64]{Frame: 20, Value: 0.25},
	)
	tests := []struct {
		frame int
		want  float64
	}{
		{-5, 0},
		{1, 0},
		{9, 0},
		{10, 1},
		{19, 1},
		{20, 0.25},
		{500, 0.25},
	}
	for _, tt := range tests {
		if got := tr.At(tt.frame); got != tt.want {
			t.Errorf("At(%d) = %v; want %v", tt.frame, got, tt.want)
		}
	}
}

func TestTrack_Linear(t *testing.T) {
	tr := NewVectorTrack(Linear,
		Key[geometry.Vector3D]{Frame: 0, Value: geometry.Zero},
		Key[geometry.Vector3D]{Frame: 10, Value: geometry.Vector3D{X: 100, Y: -10}},
	)
	if got, want := tr.At(5), (geometry.Vector3D{X: 50, Y: -5}); !got.Eq(want) {
		t.Errorf("At(5) = %v; want %v", got, want)
	}
	if got, want := tr.At(11), (geometry.Vector3D{X: 100, Y: -10}); !got.Eq(want) {
		t.Errorf("At(11) = %v; want %v", got, want)
	}
}

func TestTrack_Empty(t *testing.T) {
	var tr Track[float64]
	if got := tr.At(3); got != 0 {
		t.Errorf("empty track At(3) = %v; want 0", got)
	}
}

func TestParseInterpolation(t *testing.T) {
	for in, want := range map[string]Interpolation{"": Constant, "constant": Constant, "linear": Linear} {
		got, err := ParseInterpolation(in)
		if err != nil || got != want {
			t.Errorf("ParseInterpolation(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseInterpolation("bezier"); err == nil {
		t.Error("expected error for unknown interpolation")
	}
}

func TestKeyframed_ActivationFromScale(t *testing.T) {
	lp := NewStatic("LP", geometry.Zero).WithScale(NewVectorTrack(Constant,
		Key[geometry.Vector3D]{Frame: 1, Value: geometry.Zero},
		Key[geometry.Vector3D]{Frame: 5, Value: geometry.Vector3D{X: 1, Y: 1, Z: 1}},
	))
	before, _ := lp.Sample(4)
	after, _ := lp.Sample(5)
	if before.Activation > ActivationThreshold {
		t.Errorf("activation before key = %v; want below threshold", before.Activation)
	}
	if after.Activation <= ActivationThreshold {
		t.Errorf("activation after key = %v; want above threshold", after.Activation)
	}
}

func TestKeyframed_ExplicitActivationWins(t *testing.T) {
	lp := NewStatic("LP", geometry.Zero).WithActivation(NewScalarTrack(Constant, Key[float64]{Value: 0.1}))
	tr, _ := lp.Sample(100)
	if tr.Activation != 0.1 {
		t.Errorf("Activation = %v; want 0.1 (scale must be ignored)", tr.Activation)
	}
}

func TestKeyframed_FlickerOnlyWhenArmed(t *testing.T) {
	lp := NewStatic("LP", geometry.Zero).
		WithActivation(NewScalarTrack(Constant, Key[float64]{Frame: 0, Value: 0}, Key[float64]{Frame: 10, Value: 1})).
		WithFlicker(7, 0.9, 0.5, 0)
	for f := 0; f < 10; f++ {
		tr, _ := lp.Sample(f)
		if tr.Activation != 0 {
			t.Fatalf("frame %d: unarmed signal perturbed to %v", f, tr.Activation)
		}
	}
	varied := false
	for f := 10; f < 60; f++ {
		tr, _ := lp.Sample(f)
		if tr.Activation != 1 {
			varied = true
		}
	}
	if !varied {
		t.Error("armed signal never flickered")
	}
}
