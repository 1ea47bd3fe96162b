package vec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec2Float_Within(t *testing.T) {
	origin := Vec2Float{}
	assert.True(t, Vec2Float{X: 0.3}.Within(origin, 0.5))
	assert.True(t, Vec2Float{X: 0.5}.Within(origin, 0.5), "граница включительно")
	assert.False(t, Vec2Float{X: 0.51}.Within(origin, 0.5))
	assert.True(t, origin.Within(origin, 0))
	assert.False(t, origin.Within(origin, -1))
}

func TestVec2Float_Cell(t *testing.T) {
	assert.Equal(t, Vec2{X: 2, Y: 3}, Vec2Float{X: 2.9, Y: 3.0}.Cell())
	assert.Equal(t, Vec2{X: -1, Y: -2}, Vec2Float{X: -0.1, Y: -1.5}.Cell())
	assert.Equal(t, Vec2Float{X: 4.5, Y: 0.5}, FromVec2(Vec2{X: 4}))
}

func TestVec2Float_Arithmetic(t *testing.T) {
	v := Vec2Float{X: 3, Y: 4}
	assert.InDelta(t, 5, v.Length(), 1e-9)
	assert.InDelta(t, 1, v.Normalized().Length(), 1e-9)
	assert.Equal(t, Vec2Float{}, Vec2Float{}.Normalized())
	assert.Equal(t, Vec2Float{X: 4, Y: 6}, v.Add(Vec2Float{X: 1, Y: 2}))
	assert.Equal(t, Vec2Float{X: 2, Y: 2}, v.Sub(Vec2Float{X: 1, Y: 2}))
	assert.Equal(t, Vec2Float{X: 1.5, Y: 2}, v.Mul(0.5))
	assert.True(t, Vec2Float{}.IsZero())
	assert.InDelta(t, 25, v.DistanceSqTo(Vec2Float{}), 1e-9)
}

func TestVec2(t *testing.T) {
	assert.True(t, Vec2{X: 4, Y: 4}.InBounds(5, 5))
	assert.False(t, Vec2{X: 5, Y: 0}.InBounds(5, 5))
	assert.False(t, Vec2{X: 0, Y: -1}.InBounds(5, 5))
	assert.Equal(t, Vec2{X: 3, Y: 1}, Vec2{X: 1, Y: 1}.Add(Vec2{X: 2}))
	assert.InDelta(t, math.Sqrt2, Vec2{}.DistanceTo(Vec2{X: 1, Y: 1}), 1e-9)
}
