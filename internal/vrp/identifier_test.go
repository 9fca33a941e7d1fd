package vrp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextOptimizerID(t *testing.T) {
	assert.Equal(t, int64(1), NextOptimizerID(0), "empty collection starts at 1")
	assert.Equal(t, int64(2), NextOptimizerID(1))
	assert.Equal(t, int64(101), NextOptimizerID(100))
	assert.Equal(t, int64(1), NextOptimizerID(-5), "negative max treated as empty")
}
