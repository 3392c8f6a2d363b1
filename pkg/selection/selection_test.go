package selection

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/geometry"
)

func TestPickMatchesBlend(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for _, n := range []int{0, 1, 2, 5, 33} {
		values := make([]geometry.Vector3D, n)
		for i := range values {
			values[i] = geometry.Vector3D{X: r.Float64(), Y: r.Float64(), Z: float64(i)}
		}
		for i := -1; i <= n; i++ {
			def := geometry.Vector3D{X: -1}
			p := Pick(values, i, def)
			b := Blend(values, i, def)
			if p != b {
				t.Errorf("n=%d i=%d: Pick %v != Blend %v", n, i, p, b)
			}
			if i >= 0 && i < n && p != values[i] {
				t.Errorf("n=%d i=%d: got %v; want %v", n, i, p, values[i])
			}
			if (i < 0 || i >= n) && p != def {
				t.Errorf("n=%d i=%d out of range: got %v; want default", n, i, p)
			}
		}
	}
}

func TestBlend_DuplicateValues(t *testing.T) {
	values := []float64{1, 1, 0, 1}
	for i, want := range values {
		if got := Blend(values, i, -1); got != want {
			t.Errorf("Blend(%d) = %v; want %v", i, got, want)
		}
	}
}

func TestGather(t *testing.T) {
	got, err := Gather(4, func(i int) (int, error) { return i * i, nil })
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range got {
		if v != i*i {
			t.Errorf("Gather[%d] = %d", i, v)
		}
	}

	boom := errors.New("boom")
	calls := 0
	_, err = Gather(4, func(i int) (int, error) {
		calls++
		if i == 1 {
			return 0, boom
		}
		return i, nil
	})
	if !errors.Is(err, boom) || calls != 2 {
		t.Errorf("err = %v after %d calls; want boom after 2", err, calls)
	}
}

func BenchmarkPick(b *testing.B) {
	values := make([]float64, 64)
	for i := 0; i < b.N; i++ {
		for k := range values {
			_ = Pick(values, k, 0)
		}
	}
}

func BenchmarkBlend(b *testing.B) {
	values := make([]float64, 64)
	for i := 0; i < b.N; i++ {
		for k := range values {
			_ = Blend(values, k, 0)
		}
	}
}
