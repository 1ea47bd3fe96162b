package vec

import "math"

// Vec2 представляет целочисленные координаты ячейки тайловой сетки
type Vec2 struct {
	X, Y int
}

// InBounds проверяет, лежит ли ячейка внутри сетки width x height
func (v Vec2) InBounds(width, height int) bool {
	return v.X >= 0 && v.Y >= 0 && v.X < width && v.Y < height
}

// Add складывает два вектора
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// DistanceTo вычисляет расстояние до другой ячейки
func (v Vec2) DistanceTo(other Vec2) float64 {
	dx := float64(v.X - other.X)
	dy := float64(v.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}
