package errors

import "fmt"

// ValidationKind classifies why a value was rejected by the VRP validators.
type ValidationKind string

const (
	// KindRange - value outside its allowed numeric bounds
	KindRange ValidationKind = "RANGE_ERROR"
	// KindShape - wrong array length or malformed structure
	KindShape ValidationKind = "SHAPE_ERROR"
	// KindOverlap - time windows intersect each other
	KindOverlap ValidationKind = "OVERLAP_ERROR"
	// KindFormat - geometry is neither valid WKT nor valid GeoJSON
	KindFormat ValidationKind = "FORMAT_ERROR"
)

// ValidationError carries the field and offending value so handlers can
// translate it into a request-level error response.
type ValidationError struct {
	Kind    ValidationKind `json:"kind"`
	Field   string         `json:"field"`
	Value   interface{}    `json:"value,omitempty"`
	Message string         `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: field %q: %s", e.Kind, e.Field, e.Message)
}

func NewRangeError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Kind: KindRange, Field: field, Value: value, Message: message}
}

func NewShapeError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Kind: KindShape, Field: field, Value: value, Message: message}
}

func NewOverlapError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Kind: KindOverlap, Field: field, Value: value, Message: message}
}

func NewFormatError(field string, message string) *ValidationError {
	return &ValidationError{Kind: KindFormat, Field: field, Message: message}
}

// Warning is a non-fatal usability hint returned alongside a successful
// validation, e.g. a setup time longer than the service time.
type Warning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
