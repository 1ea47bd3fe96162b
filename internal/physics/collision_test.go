package physics

import (
	"testing"

	"github.com/annel0/tile-adventure/internal/vec"
	"github.com/stretchr/testify/assert"
)

func TestGetCollisionCells(t *testing.T) {
	unit := NewBoxCollider(1, 1)
	assert.Equal(t, []vec.Vec2{{X: 2, Y: 3}}, GetCollisionCells(vec.Vec2Float{X: 2.5, Y: 3.5}, unit))

	// Смещённый коллайдер задевает четыре ячейки
	cells := GetCollisionCells(vec.Vec2Float{X: 2, Y: 3}, unit)
	assert.ElementsMatch(t, []vec.Vec2{{X: 1, Y: 2}, {X: 2, Y: 2}, {X: 1, Y: 3}, {X: 2, Y: 3}}, cells)

	point := NewBoxCollider(0, 0)
	assert.Equal(t, []vec.Vec2{{X: 4, Y: 0}}, GetCollisionCells(vec.Vec2Float{X: 4, Y: 0}, point))
	assert.Equal(t, []vec.Vec2{{X: -1, Y: -1}}, GetCollisionCells(vec.Vec2Float{X: -0.5, Y: -0.5}, point))

	neg := NewBoxCollider(-1, -2)
	assert.Zero(t, neg.Width)
	assert.Zero(t, neg.Height)
}

func TestCanMoveToPosition(t *testing.T) {
	blocked := vec.Vec2{X: 3, Y: 3}
	passable := func(c vec.Vec2) bool { return c != blocked && c.InBounds(5, 5) }
	body := NewBoxCollider(0.6, 0.6)

	assert.True(t, CanMoveToPosition(vec.Vec2Float{X: 2.5, Y: 2.5}, body, passable))
	assert.False(t, CanMoveToPosition(vec.Vec2Float{X: 3.5, Y: 3.5}, body, passable))
	assert.False(t, CanMoveToPosition(vec.Vec2Float{X: 2.9, Y: 2.9}, body, passable), "край коллайдера задевает занятую ячейку по диагонали")
	assert.False(t, CanMoveToPosition(vec.Vec2Float{X: 0.2, Y: 1}, body, passable), "выход за границу области")
}

func TestBoxCollider_Overlap(t *testing.T) {
	c := NewBoxCollider(1, 1)
	assert.True(t, c.IsPointInside(vec.Vec2Float{X: 1, Y: 1}, vec.Vec2Float{X: 0.5, Y: 1.4}))
	assert.False(t, c.IsPointInside(vec.Vec2Float{X: 1, Y: 1}, vec.Vec2Float{X: 1.5, Y: 1}))

	assert.True(t, CheckBoxCollision(vec.Vec2Float{}, c, vec.Vec2Float{X: 0.9}, c))
	assert.False(t, CheckBoxCollision(vec.Vec2Float{}, c, vec.Vec2Float{X: 1}, c))
}
