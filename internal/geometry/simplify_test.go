package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerpendicularDistance(t *testing.T) {
	tests := []struct {
		name    string
		p, a, b Point
		want    float64
	}{
		{
			name: "point above segment midpoint",
			p:    Point{5, 3},
			a:    Point{0, 0},
			b:    Point{10, 0},
			want: 3,
		},
		{
			name: "point on the segment",
			p:    Point{5, 0},
			a:    Point{0, 0},
			b:    Point{10, 0},
			want: 0,
		},
		{
			name: "projection clamped before start",
			p:    Point{-3, 4},
			a:    Point{0, 0},
			b:    Point{10, 0},
			want: 5,
		},
		{
			name: "projection clamped after end",
			p:    Point{13, 4},
			a:    Point{0, 0},
			b:    Point{10, 0},
			want: 5,
		},
		{
			name: "degenerate segment",
			p:    Point{3, 4},
			a:    Point{0, 0},
			b:    Point{0, 0},
			want: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := perpendicularDistance(tt.p, tt.a, tt.b)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestSimplify(t *testing.T) {
	t.Run("two points unchanged", func(t *testing.T) {
		points := []Point{{0, 0}, {10, 10}}
		assert.Equal(t, points, Simplify(points, 0.001))
	})

	t.Run("near-collinear interior point dropped", func(t *testing.T) {
		points := []Point{{0, 0}, {0.0000001, 0.0000001}, {10, 10}}
		got := Simplify(points, 0.00001)
		assert.Equal(t, []Point{{0, 0}, {10, 10}}, got)
	})

	t.Run("significant corner kept", func(t *testing.T) {
		points := []Point{{0, 0}, {5, 5}, {10, 0}}
		got := Simplify(points, 0.1)
		assert.Equal(t, points, got)
	})

	t.Run("first and last always preserved", func(t *testing.T) {
		points := zigzag(501)
		got := Simplify(points, 0.5)
		require.NotEmpty(t, got)
		assert.Equal(t, points[0], got[0])
		assert.Equal(t, points[len(points)-1], got[len(got)-1])
	})

	t.Run("never returns more points than input", func(t *testing.T) {
		points := zigzag(200)
		got := Simplify(points, 1e-9)
		assert.LessOrEqual(t, len(got), len(points))
	})

	t.Run("idempotent at fixed tolerance", func(t *testing.T) {
		points := zigzag(300)
		once := Simplify(points, 0.01)
		twice := Simplify(once, 0.01)
		assert.Equal(t, once, twice)
	})

	t.Run("iterative path matches recursive result", func(t *testing.T) {
		points := zigzag(DefaultIterativeThreshold + 100)
		fromIterative := Simplify(points, 0.01)
		fromRecursive := simplifyRecursive(points, 0.01)
		assert.Equal(t, fromRecursive, fromIterative)
	})

	t.Run("input slice is not mutated", func(t *testing.T) {
		points := []Point{{0, 0}, {1, 5}, {2, 0}, {3, 5}, {4, 0}}
		original := make([]Point, len(points))
		copy(original, points)
		Simplify(points, 0.1)
		assert.Equal(t, original, points)
	})
}

// zigzag builds an n-point sawtooth polyline with amplitude decaying along x.
func zigzag(n int) []Point {
	points := make([]Point, n)
	for i := range points {
		y := 0.0
		if i%2 == 1 {
			y = 1.0 / (1.0 + float64(i)/20.0)
		}
		points[i] = Point{float64(i) * 0.01, y}
	}
	return points
}

func TestSimplify_ErrorBound(t *testing.T) {
	// Every dropped point must lie within tolerance of some segment of the
	// simplified line.
	tolerance := 0.05
	points := zigzag(400)
	simplified := Simplify(points, tolerance)

	for _, p := range points {
		minDist := math.Inf(1)
		for i := 0; i < len(simplified)-1; i++ {
			d := perpendicularDistance(p, simplified[i], simplified[i+1])
			if d < minDist {
				minDist = d
			}
		}
		assert.LessOrEqual(t, minDist, tolerance)
	}
}
