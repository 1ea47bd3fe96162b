package physics

import (
	"math"

	"github.com/annel0/tile-adventure/internal/vec"
)

// BoxCollider представляет прямоугольный коллайдер в мировых единицах.
// Позиция предмета — центр коллайдера.
type BoxCollider struct {
	Width  float64
	Height float64
}

// NewBoxCollider создаёт коллайдер с указанными размерами; отрицательные размеры обнуляются
func NewBoxCollider(width, height float64) *BoxCollider {
	return &BoxCollider{
		Width:  math.Max(width, 0),
		Height: math.Max(height, 0),
	}
}

// IsPointInside проверяет, находится ли точка внутри коллайдера
func (bc *BoxCollider) IsPointInside(colliderPos, point vec.Vec2Float) bool {
	halfWidth := bc.Width / 2
	halfHeight := bc.Height / 2

	return point.X >= colliderPos.X-halfWidth &&
		point.X < colliderPos.X+halfWidth &&
		point.Y >= colliderPos.Y-halfHeight &&
		point.Y < colliderPos.Y+halfHeight
}

// CheckBoxCollision проверяет столкновение двух коллайдеров
func CheckBoxCollision(pos1 vec.Vec2Float, collider1 *BoxCollider, pos2 vec.Vec2Float, collider2 *BoxCollider) bool {
	halfWidth1 := collider1.Width / 2
	halfHeight1 := collider1.Height / 2
	halfWidth2 := collider2.Width / 2
	halfHeight2 := collider2.Height / 2

	return pos1.X+halfWidth1 > pos2.X-halfWidth2 &&
		pos1.X-halfWidth1 < pos2.X+halfWidth2 &&
		pos1.Y+halfHeight1 > pos2.Y-halfHeight2 &&
		pos1.Y-halfHeight1 < pos2.Y+halfHeight2
}

// GetCollisionCells возвращает ячейки сетки, которые перекрывает коллайдер.
// Правая и нижняя границы не включаются: коллайдер 1x1 в центре ячейки занимает ровно её.
func GetCollisionCells(pos vec.Vec2Float, collider *BoxCollider) []vec.Vec2 {
	halfWidth := collider.Width / 2
	halfHeight := collider.Height / 2

	minX := int(math.Floor(pos.X - halfWidth))
	minY := int(math.Floor(pos.Y - halfHeight))
	maxX := int(math.Ceil(pos.X+halfWidth)) - 1
	maxY := int(math.Ceil(pos.Y+halfHeight)) - 1
	// Вырожденный коллайдер на границе ячейки всё равно стоит в одной ячейке
	if maxX < minX {
		maxX = minX
	}
	if maxY < minY {
		maxY = minY
	}

	cells := make([]vec.Vec2, 0, (maxX-minX+1)*(maxY-minY+1))
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			cells = append(cells, vec.Vec2{X: x, Y: y})
		}
	}
	return cells
}

// CanMoveToPosition проверяет, может ли предмет с указанным коллайдером встать в позицию.
// passable сообщает, проходима ли ячейка.
func CanMoveToPosition(newPos vec.Vec2Float, collider *BoxCollider, passable func(vec.Vec2) bool) bool {
	for _, cell := range GetCollisionCells(newPos, collider) {
		if !passable(cell) {
			// Хотя бы одна ячейка непроходима
			return false
		}
	}
	return true
}
