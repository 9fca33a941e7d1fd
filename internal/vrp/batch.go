package vrp

import (
	"github.com/vrp-microservice/internal/pkg/errors"
)

// BatchResult is the outcome for one item in a bulk validation pass.
type BatchResult struct {
	Index    int              `json:"index"`
	Err      error            `json:"error,omitempty"`
	Warnings []errors.Warning `json:"warnings,omitempty"`
}

// OK reports whether the item passed validation.
func (r BatchResult) OK() bool {
	return r.Err == nil
}

// ValidateBatch runs a per-item validation over n items and collects every
// outcome instead of stopping at the first failure. Bulk import uses this to
// report per-row errors in one response.
func ValidateBatch(n int, validate func(i int) ([]errors.Warning, error)) []BatchResult {
	results := make([]BatchResult, 0, n)
	for i := 0; i < n; i++ {
		warnings, err := validate(i)
		results = append(results, BatchResult{
			Index:    i,
			Err:      err,
			Warnings: warnings,
		})
	}
	return results
}

// CountValid returns how many results passed.
func CountValid(results []BatchResult) int {
	valid := 0
	for _, r := range results {
		if r.OK() {
			valid++
		}
	}
	return valid
}
