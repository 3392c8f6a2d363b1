package scene

import (
	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/geometry"
	"github.com/ojrac/opensimplex-go"
)

// Keyframed is a scene object whose transform is driven by keyframe tracks.
type Keyframed struct {
	name     string
	position Track[geometry.Vector3D]
	rotation geometry.Quaternion
	scale    Track[geometry.Vector3D]
	// activation overrides the scale-derived signal when it has keys.
	activation Track[float64]

	strength float64
	radius   float64

	flicker *flicker
}

type flicker struct {
	noise     opensimplex.Noise
	amplitude float64
	frequency float64
	channel   float64
}

// NewStatic returns an object fixed at position with identity rotation and unit scale.
func NewStatic(name string, position geometry.Vector3D) *Keyframed {
	return NewKeyframed(name, NewVectorTrack(Constant, Key[geometry.Vector3D]{Value: position}))
}

// NewKeyframed returns an object following the position track.
func NewKeyframed(name string, position Track[geometry.Vector3D]) *Keyframed {
	return &Keyframed{
		name:     name,
		position: position,
		rotation: geometry.Identity,
		scale:    NewVectorTrack(Constant, Key[geometry.Vector3D]{Value: geometry.Vector3D{X: 1, Y: 1, Z: 1}}),
	}
}

// WithRotation sets the (static) orientation.
func (k *Keyframed) WithRotation(e geometry.Euler) *Keyframed {
	k.rotation = e.Quaternion()
	return k
}

// WithScale sets the scale track. Without an explicit activation track the
// activation signal is the length of the scale vector.
func (k *Keyframed) WithScale(scale Track[geometry.Vector3D]) *Keyframed {
	k.scale = scale
	return k
}

// WithActivation sets an explicit activation signal track.
func (k *Keyframed) WithActivation(activation Track[float64]) *Keyframed {
	k.activation = activation
	return k
}

// WithEmitter sets per-obstacle strength and radius, 0 keeps the global parameter.
func (k *Keyframed) WithEmitter(strength, radius float64) *Keyframed {
	k.strength = strength
	k.radius = radius
	return k
}

// WithFlicker perturbs the activation signal with simplex noise once the base
// signal is above zero. Used to check that a wobbling signal fires only once.
func (k *Keyframed) WithFlicker(seed int64, amplitude, frequency float64, channel int) *Keyframed {
	k.flicker = &flicker{
		noise:     opensimplex.New(seed),
		amplitude: amplitude,
		frequency: frequency,
		channel:   float64(channel),
	}
	return k
}

func (k *Keyframed) Name() string { return k.name }

func (k *Keyframed) Strength() float64 { return k.strength }

func (k *Keyframed) Radius() float64 { return k.radius }

// Sample evaluates every track at frame.
func (k *Keyframed) Sample(frame int) (Transform, error) {
	tr := Transform{
		Position: k.position.At(frame),
		Rotation: k.rotation,
		Scale:    k.scale.At(frame),
	}
	if k.activation.Len() > 0 {
		tr.Activation = k.activation.At(frame)
	} else {
		tr.Activation = tr.Scale.Len()
	}
	if k.flicker != nil && tr.Activation > 0 {
		n := k.flicker.noise.Eval2(float64(frame)*k.flicker.frequency, k.flicker.channel)
		tr.Activation += n * k.flicker.amplitude
	}
	return tr, nil
}

var (
	_ Object  = (*Keyframed)(nil)
	_ Emitter = (*Keyframed)(nil)
)
