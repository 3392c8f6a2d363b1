package registry

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/scene"
)

func objects(prefix string, n int) []scene.Object {
	out := make([]scene.Object, n)
	for i := range out {
		out[i] = scene.NewStatic(fmt.Sprintf("%s.%03d", prefix, i), geometry.Vector3D{X: float64(i)})
	}
	// scenes hand collections over in arbitrary order
	rand.New(rand.NewPCG(1, 2)).Shuffle(n, func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func TestResolve_Pairing(t *testing.T) {
	tests := []struct {
		a, b     int
		warnings int
	}{
		{1, 1, 0},
		{4, 4, 0},
		{3, 5, 1},
		{5, 3, 1},
		{1, 9, 1},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%dx%d", tt.a, tt.b), func(t *testing.T) {
			reg, err := Resolve(
				scene.NewCollection(scene.LaunchPointsCollection, objects("LP", tt.a)...),
				scene.NewCollection(scene.TargetsCollection, objects("TGT", tt.b)...),
				nil,
			)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			want := min(tt.a, tt.b)
			if reg.Len() != want {
				t.Fatalf("entities = %d; want %d", reg.Len(), want)
			}
			for i, e := range reg.Entities {
				if e.Index != i {
					t.Errorf("entity %d has index %d", i, e.Index)
				}
				if got, want := e.Launch.Name(), fmt.Sprintf("LP.%03d", i); got != want {
					t.Errorf("entity %d launch = %s; want %s", i, got, want)
				}
				if got, want := e.Target.Name(), fmt.Sprintf("TGT.%03d", i); got != want {
					t.Errorf("entity %d target = %s; want %s", i, got, want)
				}
			}
			if len(reg.Warnings) != tt.warnings {
				t.Errorf("warnings = %v; want %d", reg.Warnings, tt.warnings)
			}
		})
	}
}

// Scenario D: 3 launch points, 5 targets.
func TestResolve_SizeMismatchWarns(t *testing.T) {
	reg, err := Resolve(
		scene.NewCollection("Launchpads", objects("LP", 3)...),
		scene.NewCollection("Targets", objects("TGT", 5)...),
		nil,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reg.Len() != 3 {
		t.Fatalf("entities = %d; want 3", reg.Len())
	}
	if len(reg.Warnings) != 1 {
		t.Fatalf("warnings = %d; want 1", len(reg.Warnings))
	}
	w := reg.Warnings[0]
	if w.LaunchPoints != 3 || w.Targets != 5 {
		t.Errorf("warning counts = %d/%d", w.LaunchPoints, w.Targets)
	}
	if len(w.Unused) != 2 || w.Unused[0] != "TGT.003" || w.Unused[1] != "TGT.004" {
		t.Errorf("unused = %v", w.Unused)
	}
}

func TestResolve_ConfigurationErrors(t *testing.T) {
	some := scene.NewCollection("x", objects("O", 2)...)
	empty := scene.NewCollection("empty")
	tests := []struct {
		name       string
		launch     *scene.Collection
		targets    *scene.Collection
		collection string
	}{
		{"missing launch", nil, some, scene.LaunchPointsCollection},
		{"missing targets", some, nil, scene.TargetsCollection},
		{"empty launch", empty, some, "empty"},
		{"empty targets", some, empty, "empty"},
		{"both empty", empty, empty, "empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := Resolve(tt.launch, tt.targets, nil)
			if reg != nil {
				t.Error("registry must not be partially built")
			}
			if !errors.Is(err, ErrConfiguration) {
				t.Fatalf("err = %v; want ErrConfiguration", err)
			}
			var ce *ConfigurationError
			if !errors.As(err, &ce) || ce.Collection != tt.collection {
				t.Errorf("collection = %v; want %s", ce, tt.collection)
			}
		})
	}
}

func TestResolve_Obstacles(t *testing.T) {
	obs := scene.NewCollection(scene.ObstaclesCollection,
		scene.NewStatic("REP.002", geometry.Zero),
		scene.NewStatic("REP.001", geometry.Zero).WithEmitter(42, 7),
	)
	reg, err := Resolve(
		scene.NewCollection("l", objects("LP", 1)...),
		scene.NewCollection("t", objects("TGT", 1)...),
		obs,
	)
	if err != nil {
		t.Fatal(err)
	}
	if len(reg.Obstacles) != 2 {
		t.Fatalf("obstacles = %d; want 2", len(reg.Obstacles))
	}
	first := reg.Obstacles[0]
	if first.Source.Name() != "REP.001" || first.Strength != 42 || first.Radius != 7 {
		t.Errorf("first obstacle = %+v", first)
	}
	if second := reg.Obstacles[1]; second.Strength != 0 || second.Radius != 0 {
		t.Errorf("second obstacle should defer to globals: %+v", second)
	}
}

func TestResolveScene_Demo(t *testing.T) {
	reg, err := ResolveScene(scene.Demo(scene.DefaultDemoOptions()))
	if err != nil {
		t.Fatal(err)
	}
	if reg.Len() != 4 || len(reg.Obstacles) != 2 || len(reg.Warnings) != 0 {
		t.Errorf("demo registry = %d entities, %d obstacles, %d warnings", reg.Len(), len(reg.Obstacles), len(reg.Warnings))
	}
	if _, err := ResolveScene(nil); !errors.Is(err, ErrConfiguration) {
		t.Errorf("nil scene err = %v", err)
	}
}
