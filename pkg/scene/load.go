package scene

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/geometry"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/scene.schema.json
var sceneSchema string

// File is the JSON representation of a scene.
// An absent collection decodes to a nil slice, an explicit [] to an empty one.
type File struct {
	Name         string       `json:"name"`
	LaunchPoints []ObjectSpec `json:"launchPoints"`
	Targets      []ObjectSpec `json:"targets"`
	Obstacles    []ObjectSpec `json:"obstacles"`
}

type ObjectSpec struct {
	Name           string       `json:"name"`
	Position       []float64    `json:"position,omitempty"`
	PositionKeys   []VectorKey  `json:"positionKeys,omitempty"`
	Rotation       []float64    `json:"rotation,omitempty"` // degrees
	Scale          []float64    `json:"scale,omitempty"`
	ScaleKeys      []VectorKey  `json:"scaleKeys,omitempty"`
	ActivationKeys []ScalarKey  `json:"activationKeys,omitempty"`
	Interpolation  string       `json:"interpolation,omitempty"`
	Strength       float64      `json:"strength,omitempty"`
	Radius         float64      `json:"radius,omitempty"`
	Flicker        *FlickerSpec `json:"flicker,omitempty"`
}

type VectorKey struct {
	Frame int       `json:"frame"`
	Value []float64 `json:"value"`
}

type ScalarKey struct {
	Frame int     `json:"frame"`
	Value float64 `json:"value"`
}

type FlickerSpec struct {
	Seed      int64   `json:"seed"`
	Amplitude float64 `json:"amplitude"`
	Frequency float64 `json:"frequency"`
}

// LoadScene reads a scene file and validates it against the embedded schema.
func LoadScene(path string) (*Scene, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	return ParseScene(b)
}

// ParseScene validates and builds a scene from its JSON form.
func ParseScene(data []byte) (*Scene, error) {
	// 1. Compile Schema
	sch, err := jsonschema.CompileString("scene.schema.json", sceneSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to compile scene schema: %w", err)
	}

	// 2. Validate
	var v interface{}
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode scene json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("scene validation failed: %w", err)
	}

	// 3. Unmarshal into Struct
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scene: %w", err)
	}
	return f.Build()
}

// Build turns the file representation into sampled objects.
func (f *File) Build() (*Scene, error) {
	s := &Scene{Name: f.Name}
	var err error
	if s.LaunchPoints, err = buildCollection(LaunchPointsCollection, f.LaunchPoints); err != nil {
		return nil, err
	}
	if s.Targets, err = buildCollection(TargetsCollection, f.Targets); err != nil {
		return nil, err
	}
	if s.Obstacles, err = buildCollection(ObstaclesCollection, f.Obstacles); err != nil {
		return nil, err
	}
	return s, nil
}

func buildCollection(name string, specs []ObjectSpec) (*Collection, error) {
	if specs == nil {
		return nil, nil
	}
	c := &Collection{Name: name, Objects: make([]Object, 0, len(specs))}
	for _, spec := range specs {
		o, err := spec.Build()
		if err != nil {
			return nil, fmt.Errorf("%s/%s: %w", name, spec.Name, err)
		}
		c.Objects = append(c.Objects, o)
	}
	return c, nil
}

// Build creates the keyframed object described by the spec.
func (s ObjectSpec) Build() (*Keyframed, error) {
	mode, err := ParseInterpolation(s.Interpolation)
	if err != nil {
		return nil, err
	}

	position := NewVectorTrack(mode, vectorKeys(s.PositionKeys)...)
	if position.Len() == 0 {
		position = NewVectorTrack(Constant, Key[geometry.Vector3D]{Value: geometry.FromSlice(s.Position)})
	}
	k := NewKeyframed(s.Name, position)

	if len(s.Rotation) > 0 {
		r := geometry.FromSlice(s.Rotation)
		k.WithRotation(geometry.EulerDegrees(r.X, r.Y, r.Z))
	}
	if len(s.ScaleKeys) > 0 {
		k.WithScale(NewVectorTrack(mode, vectorKeys(s.ScaleKeys)...))
	} else if len(s.Scale) > 0 {
		k.WithScale(NewVectorTrack(Constant, Key[geometry.Vector3D]{Value: geometry.FromSlice(s.Scale)}))
	}
	if len(s.ActivationKeys) > 0 {
		keys := make([]Key[float64], 0, len(s.ActivationKeys))
		for _, sk := range s.ActivationKeys {
			keys = append(keys, Key[float64]{Frame: sk.Frame, Value: sk.Value})
		}
		k.WithActivation(NewScalarTrack(mode, keys...))
	}
	if s.Strength > 0 || s.Radius > 0 {
		k.WithEmitter(s.Strength, s.Radius)
	}
	if s.Flicker != nil {
		k.WithFlicker(s.Flicker.Seed, s.Flicker.Amplitude, s.Flicker.Frequency, 0)
	}
	return k, nil
}

func vectorKeys(in []VectorKey) []Key[geometry.Vector3D] {
	keys := make([]Key[geometry.Vector3D], 0, len(in))
	for _, vk := range in {
		keys = append(keys, Key[geometry.Vector3D]{Frame: vk.Frame, Value: geometry.FromSlice(vk.Value)})
	}
	return keys
}
