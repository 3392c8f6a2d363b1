package scene

import (
	"fmt"
	"sort"

	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/geometry"
)

// Interpolation selects how values between two keys are computed.
type Interpolation string

const (
	Constant Interpolation = "constant"
	Linear   Interpolation = "linear"
)

// ParseInterpolation maps a scene file value to an Interpolation, empty means Constant.
func ParseInterpolation(s string) (Interpolation, error) {
	switch Interpolation(s) {
	case "", Constant:
		return Constant, nil
	case Linear:
		return Linear, nil
	}
	return "", fmt.Errorf("unknown interpolation %q", s)
}

// Key is a value pinned at a frame.
type Key[T any] struct {
	Frame int
	Value T
}

// Track is a keyframed value. Before the first key it holds the first value,
// after the last key it holds the last value.
type Track[T any] struct {
	keys []Key[T]
	mode Interpolation
	lerp func(a, b T, t float64) T
}

func newTrack[T any](mode Interpolation, lerp func(a, b T, t float64) T, keys []Key[T]) Track[T] {
	sorted := make([]Key[T], len(keys))
	copy(sorted, keys)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Frame < sorted[j].Frame })
	return Track[T]{keys: sorted, mode: mode, lerp: lerp}
}

// NewScalarTrack builds a float track.
func NewScalarTrack(mode Interpolation, keys ...Key[float64]) Track[float64] {
	return newTrack(mode, func(a, b, t float64) float64 { return a + (b-a)*t }, keys)
}

// NewVectorTrack builds a vector track.
func NewVectorTrack(mode Interpolation, keys ...Key[geometry.Vector3D]) Track[geometry.Vector3D] {
	return newTrack(mode, func(a, b geometry.Vector3D, t float64) geometry.Vector3D { return a.Lerp(b, t) }, keys)
}

// Len is the number of keys.
func (tr Track[T]) Len() int {
	return len(tr.keys)
}

// At evaluates the track at frame. An empty track yields the zero value.
func (tr Track[T]) At(frame int) T {
	var zero T
	n := len(tr.keys)
	if n == 0 {
		return zero
	}
	// first key strictly after frame
	i := sort.Search(n, func(i int) bool { return tr.keys[i].Frame > frame })
	if i == 0 {
		return tr.keys[0].Value
	}
	if i == n {
		return tr.keys[n-1].Value
	}
	prev, next := tr.keys[i-1], tr.keys[i]
	if tr.mode != Linear || tr.lerp == nil {
		return prev.Value
	}
	t := float64(frame-prev.Frame) / float64(next.Frame-prev.Frame)
	return tr.lerp(prev.Value, next.Value, t)
}
