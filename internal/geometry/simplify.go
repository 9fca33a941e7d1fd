package geometry

import "math"

// Point is one polyline vertex in (x, y) = (lon, lat) order.
type Point [2]float64

// DefaultIterativeThreshold is the point count above which simplification
// switches from the recursive form to the explicit-stack form, keeping the
// call depth bounded on very long routes.
const DefaultIterativeThreshold = 4096

// Simplify reduces a polyline with the Douglas-Peucker algorithm: every
// dropped point lies within tolerance (perpendicular distance, in coordinate
// units) of the simplified line. The first and last input points are always
// preserved, and the output never has more points than the input.
func Simplify(points []Point, tolerance float64) []Point {
	if len(points) <= 2 {
		return points
	}
	if len(points) > DefaultIterativeThreshold {
		return simplifyIterative(points, tolerance)
	}
	return simplifyRecursive(points, tolerance)
}

func simplifyRecursive(points []Point, tolerance float64) []Point {
	if len(points) <= 2 {
		return points
	}

	start := points[0]
	end := points[len(points)-1]

	maxDist := 0.0
	maxIndex := 0
	for i := 1; i < len(points)-1; i++ {
		d := perpendicularDistance(points[i], start, end)
		if d > maxDist {
			maxDist = d
			maxIndex = i
		}
	}

	if maxDist <= tolerance {
		// Every interior point is within tolerance of the chord.
		return []Point{start, end}
	}

	left := simplifyRecursive(points[:maxIndex+1], tolerance)
	right := simplifyRecursive(points[maxIndex:], tolerance)

	// Join the halves, dropping the point duplicated at the split.
	out := make([]Point, 0, len(left)+len(right)-1)
	out = append(out, left[:len(left)-1]...)
	out = append(out, right...)
	return out
}

// simplifyIterative is the same algorithm with an explicit segment stack
// instead of recursion.
func simplifyIterative(points []Point, tolerance float64) []Point {
	keep := make([]bool, len(points))
	keep[0] = true
	keep[len(points)-1] = true

	type span struct {
		first, last int
	}
	stack := []span{{0, len(points) - 1}}

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		maxDist := 0.0
		maxIndex := 0
		for i := s.first + 1; i < s.last; i++ {
			d := perpendicularDistance(points[i], points[s.first], points[s.last])
			if d > maxDist {
				maxDist = d
				maxIndex = i
			}
		}

		if maxDist > tolerance {
			keep[maxIndex] = true
			stack = append(stack, span{s.first, maxIndex}, span{maxIndex, s.last})
		}
	}

	out := make([]Point, 0, len(points))
	for i, p := range points {
		if keep[i] {
			out = append(out, p)
		}
	}
	return out
}

// perpendicularDistance returns the distance from p to the segment a-b. The
// projection parameter is clamped to [0, 1], so points beyond either endpoint
// measure against that endpoint rather than the infinite line.
func perpendicularDistance(p, a, b Point) float64 {
	dx := b[0] - a[0]
	dy := b[1] - a[1]

	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		// Degenerate segment: a and b coincide.
		return math.Hypot(p[0]-a[0], p[1]-a[1])
	}

	t := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	closestX := a[0] + t*dx
	closestY := a[1] + t*dy
	return math.Hypot(p[0]-closestX, p[1]-closestY)
}
