package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToDisplay(t *testing.T) {
	// 1000px image shown in a 500px container: halved and rounded.
	assert.Equal(t, 250, ToDisplay(500, 1000, 500))
	assert.Equal(t, 1, ToDisplay(3, 1000, 500)) // 1.5 rounds up
	assert.Equal(t, 0, ToDisplay(100, 0, 500))
}

func TestToActual(t *testing.T) {
	assert.Equal(t, 500, ToActual(250, 1000, 500))
	assert.Equal(t, 2, ToActual(1, 1000, 500))
	assert.Equal(t, 0, ToActual(100, 1000, 0))
}

func TestConversions_NotExactInverses(t *testing.T) {
	// 3px in a 1000->500 scale maps to 1 display px and back to 2 actual px.
	// One unit of drift per round-trip is accepted.
	v := ToActual(ToDisplay(3, 1000, 500), 1000, 500)
	assert.Equal(t, 2, v)
}
