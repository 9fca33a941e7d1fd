package geometry

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/vrp-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

// Route geometry arrives in one of two encodings: WKT LINESTRING text or a
// GeoJSON object. Validation is strict; optimization (precision rounding plus
// polyline simplification) degrades gracefully and never loses a geometry.

const (
	// MaxGeometrySize caps geometry strings at 100k characters.
	MaxGeometrySize = 100000

	// DefaultTolerance is the simplification tolerance in degrees, roughly
	// one metre at the equator.
	DefaultTolerance = 0.00001

	// DefaultSimplifyMinPoints - polylines at or below this point count are
	// stored as-is.
	DefaultSimplifyMinPoints = 100

	precisionFactor = 1e6 // 6 decimal places, ~11cm
)

var wktLineString = regexp.MustCompile(`(?is)^\s*LINESTRING\s*\(\s*(.*?)\s*\)\s*$`)

// Format of a geometry string.
type Format int

const (
	FormatUnknown Format = iota
	FormatWKT
	FormatGeoJSON
)

// DetectFormat classifies a geometry string by its prefix.
func DetectFormat(geom string) Format {
	trimmed := strings.TrimSpace(geom)
	switch {
	case strings.HasPrefix(strings.ToUpper(trimmed), "LINESTRING"):
		return FormatWKT
	case strings.HasPrefix(trimmed, "{"):
		return FormatGeoJSON
	default:
		return FormatUnknown
	}
}

type geoJSONGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// Validate checks a route geometry string. An empty string is a no-op. The
// string must fit the size cap and be either WKT LINESTRING text or a GeoJSON
// object carrying both "type" and "coordinates".
func Validate(geom string) error {
	if geom == "" {
		return nil
	}
	if len(geom) > MaxGeometrySize {
		return errors.NewFormatError("geometry",
			fmt.Sprintf("geometry exceeds %d characters (got %d)", MaxGeometrySize, len(geom)))
	}

	switch DetectFormat(geom) {
	case FormatWKT:
		return nil
	case FormatGeoJSON:
		var g geoJSONGeometry
		if err := json.Unmarshal([]byte(geom), &g); err != nil {
			return errors.NewFormatError("geometry", "geometry is not valid GeoJSON: "+err.Error())
		}
		if g.Type == "" || len(g.Coordinates) == 0 {
			return errors.NewFormatError("geometry", "GeoJSON geometry must have both type and coordinates")
		}
		return nil
	default:
		return errors.NewFormatError("geometry", "geometry must be WKT LINESTRING or a GeoJSON object")
	}
}

// Engine rounds and simplifies route geometry for storage and transmission.
type Engine struct {
	tolerance         float64
	simplifyMinPoints int
	logger            *zap.Logger
}

func NewEngine(tolerance float64, simplifyMinPoints int, logger *zap.Logger) *Engine {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	if simplifyMinPoints <= 0 {
		simplifyMinPoints = DefaultSimplifyMinPoints
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		tolerance:         tolerance,
		simplifyMinPoints: simplifyMinPoints,
		logger:            logger,
	}
}

// Optimize validates a geometry, rounds every coordinate to 6 decimal places
// and, when the polyline is longer than the simplification threshold, reduces
// it with Douglas-Peucker. A validation failure is returned to the caller;
// any failure during the optimization itself is logged and the original
// geometry comes back unmodified.
func (e *Engine) Optimize(geom string) (string, error) {
	if geom == "" {
		return geom, nil
	}
	if err := Validate(geom); err != nil {
		return "", err
	}

	switch DetectFormat(geom) {
	case FormatWKT:
		optimized, err := e.optimizeWKT(geom)
		if err != nil {
			e.logger.Warn("Failed to optimize WKT geometry, keeping original",
				zap.Int("size", len(geom)),
				zap.Error(err))
			return geom, nil
		}
		return optimized, nil

	case FormatGeoJSON:
		optimized, err := e.optimizeGeoJSON(geom)
		if err != nil {
			e.logger.Warn("Failed to optimize GeoJSON geometry, keeping original",
				zap.Int("size", len(geom)),
				zap.Error(err))
			return geom, nil
		}
		return optimized, nil
	}

	return geom, nil
}

func (e *Engine) optimizeWKT(geom string) (string, error) {
	match := wktLineString.FindStringSubmatch(geom)
	if match == nil {
		return "", fmt.Errorf("no LINESTRING coordinate body found")
	}

	parts := strings.Split(match[1], ",")
	points := make([]Point, 0, len(parts))
	for _, part := range parts {
		fields := strings.Fields(strings.TrimSpace(part))
		if len(fields) < 2 {
			return "", fmt.Errorf("malformed WKT coordinate %q", part)
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return "", fmt.Errorf("malformed WKT x value %q: %w", fields[0], err)
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return "", fmt.Errorf("malformed WKT y value %q: %w", fields[1], err)
		}
		points = append(points, Point{x, y})
	}

	points = e.roundAndSimplify(points)

	var b strings.Builder
	b.WriteString("LINESTRING(")
	for i, p := range points {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatFloat(p[0], 'f', -1, 64))
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(p[1], 'f', -1, 64))
	}
	b.WriteByte(')')
	return b.String(), nil
}

func (e *Engine) optimizeGeoJSON(geom string) (string, error) {
	var g geoJSONGeometry
	if err := json.Unmarshal([]byte(geom), &g); err != nil {
		return "", err
	}

	// Only LineString coordinates are a flat point list; anything else is
	// stored untouched.
	if g.Type != "LineString" {
		return geom, nil
	}

	var coords [][]float64
	if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
		return "", fmt.Errorf("malformed LineString coordinates: %w", err)
	}

	points := make([]Point, 0, len(coords))
	for _, c := range coords {
		if len(c) < 2 {
			return "", fmt.Errorf("coordinate with %d components", len(c))
		}
		points = append(points, Point{c[0], c[1]})
	}

	points = e.roundAndSimplify(points)

	out := make([][]float64, len(points))
	for i, p := range points {
		out[i] = []float64{p[0], p[1]}
	}

	encoded, err := json.Marshal(struct {
		Type        string      `json:"type"`
		Coordinates [][]float64 `json:"coordinates"`
	}{Type: g.Type, Coordinates: out})
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func (e *Engine) roundAndSimplify(points []Point) []Point {
	for i := range points {
		points[i][0] = roundCoord(points[i][0])
		points[i][1] = roundCoord(points[i][1])
	}
	if len(points) > e.simplifyMinPoints {
		points = Simplify(points, e.tolerance)
	}
	return points
}

func roundCoord(v float64) float64 {
	return math.Round(v*precisionFactor) / precisionFactor
}
