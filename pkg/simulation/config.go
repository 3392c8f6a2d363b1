package simulation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/registry"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/config.schema.json
var configSchema string

// Parameters are read-only during a run. The defaults are tuned for a scene
// about 700 units wide and must be re-tuned for other scales.
type Parameters struct {
	ExitSpeed      float64 `json:"exitSpeed"`      // launch impulse along the launch forward axis
	AttractionGain float64 `json:"attractionGain"` // pull toward the target
	// RefDistance sharpens turning near the target: boost = 1 + RefDistance/distance.
	RefDistance float64 `json:"refDistance"`
	MaxSpeed    float64 `json:"maxSpeed"`

	ObstacleStrength float64 `json:"obstacleStrength"`
	ObstacleRadius   float64 `json:"obstacleRadius"`

	ArrivalDistance float64 `json:"arrivalDistance"`
	EntityRadius    float64 `json:"entityRadius"` // presentation only

	// CoastFrames delays forces after launch, 0 applies them from the launch frame.
	CoastFrames int `json:"coastFrames"`
	// MaxAcceleration clamps the total force magnitude, 0 disables the clamp.
	MaxAcceleration float64 `json:"maxAcceleration"`
}

type Config struct {
	FrameRate  float64    `json:"frameRate"`
	MaxFrames  int        `json:"maxFrames"` // 0 runs until every entity arrived
	Parallel   bool       `json:"parallel"`
	Parameters Parameters `json:"parameters"`
}

func DefaultParameters() Parameters {
	return Parameters{
		ExitSpeed:        50,
		AttractionGain:   200,
		RefDistance:      1000,
		MaxSpeed:         150,
		ObstacleStrength: 100,
		ObstacleRadius:   150,
		ArrivalDistance:  20,
		EntityRadius:     10,
	}
}

func DefaultConfig() *Config {
	return &Config{
		FrameRate:  24,
		MaxFrames:  600,
		Parameters: DefaultParameters(),
	}
}

// DeltaTime is the simulated time between two frames.
func (c *Config) DeltaTime() float64 {
	return 1 / c.FrameRate
}

// ParameterError reports an unusable configuration value.
// It matches registry.ErrConfiguration with errors.Is.
type ParameterError struct {
	Field  string
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Field, e.Reason)
}

func (e *ParameterError) Is(target error) bool {
	return target == registry.ErrConfiguration
}

// Validate checks value ranges and the tunneling guard: an entity moving at
// MaxSpeed must not be able to skip over the arrival sphere between two frames.
func (c *Config) Validate() error {
	p := c.Parameters
	switch {
	case c.FrameRate <= 0:
		return &ParameterError{Field: "frameRate", Reason: "must be positive"}
	case c.MaxFrames < 0:
		return &ParameterError{Field: "maxFrames", Reason: "must not be negative"}
	case p.MaxSpeed <= 0:
		return &ParameterError{Field: "maxSpeed", Reason: "must be positive"}
	case p.ArrivalDistance <= 0:
		return &ParameterError{Field: "arrivalDistance", Reason: "must be positive"}
	case p.ExitSpeed < 0, p.AttractionGain < 0, p.RefDistance < 0,
		p.ObstacleStrength < 0, p.ObstacleRadius < 0, p.MaxAcceleration < 0:
		return &ParameterError{Field: "parameters", Reason: "gains, distances and limits must not be negative"}
	case p.CoastFrames < 0:
		return &ParameterError{Field: "coastFrames", Reason: "must not be negative"}
	}
	if minArrival := p.MaxSpeed / c.FrameRate; p.ArrivalDistance < minArrival {
		return &ParameterError{
			Field:  "arrivalDistance",
			Reason: fmt.Sprintf("%.3f is below maxSpeed/frameRate (%.3f), entities could tunnel past their target", p.ArrivalDistance, minArrival),
		}
	}
	return nil
}

// LoadConfig loads configuration from a JSON file and validates it against the schema.
// Fields absent from the file keep their default value.
func LoadConfig(configFile string) (*Config, error) {
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(b)
}

// ParseConfig is LoadConfig for an in-memory document.
func ParseConfig(data []byte) (*Config, error) {
	// 1. Compile Schema
	sch, err := jsonschema.CompileString("config.schema.json", configSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	// 2. Validate
	var v interface{}
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// 3. Unmarshal into Struct, on top of the defaults
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
