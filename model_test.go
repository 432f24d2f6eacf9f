package sacfit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModelType(t *testing.T) {
	assert.Equal(t, "Sphere", ModelSphere.String())
	assert.Equal(t, "Unknown(99)", ModelType(99).String())
}

func TestCoefficients(t *testing.T) {
	t.Run("Clone", func(t *testing.T) {
		c := Coefficients{1, 2, 3, 4}
		clone := c.Clone()
		clone[0] = 9
		assert.Equal(t, Coefficients{1, 2, 3, 4}, c)
	})

	t.Run("IsFinite", func(t *testing.T) {
		assert.True(t, Coefficients{0, 0, 0, 1}.IsFinite())
		assert.True(t, Coefficients{}.IsFinite())
		assert.False(t, Coefficients{0, math.NaN(), 0, 1}.IsFinite())
		assert.False(t, Coefficients{0, 0, math.Inf(-1), 1}.IsFinite())
	})
}
