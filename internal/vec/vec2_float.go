package vec

import "math"

// Vec2Float представляет позицию в мировых единицах (1.0 = одна ячейка)
type Vec2Float struct {
	X, Y float64
}

// Cell возвращает ячейку сетки, в которой лежит точка
func (v Vec2Float) Cell() Vec2 {
	return Vec2{X: int(math.Floor(v.X)), Y: int(math.Floor(v.Y))}
}

// FromVec2 возвращает центр ячейки в мировых единицах
func FromVec2(v Vec2) Vec2Float {
	return Vec2Float{X: float64(v.X) + 0.5, Y: float64(v.Y) + 0.5}
}

// Add складывает два вектора
func (v Vec2Float) Add(other Vec2Float) Vec2Float {
	return Vec2Float{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub вычитает вектор
func (v Vec2Float) Sub(other Vec2Float) Vec2Float {
	return Vec2Float{X: v.X - other.X, Y: v.Y - other.Y}
}

// Mul умножает вектор на скаляр
func (v Vec2Float) Mul(scalar float64) Vec2Float {
	return Vec2Float{X: v.X * scalar, Y: v.Y * scalar}
}

// IsZero сообщает, является ли вектор нулевым
func (v Vec2Float) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Normalized возвращает нормализованный вектор
func (v Vec2Float) Normalized() Vec2Float {
	length := v.Length()
	if length == 0 {
		return Vec2Float{}
	}
	return Vec2Float{X: v.X / length, Y: v.Y / length}
}

// Length возвращает длину вектора
func (v Vec2Float) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// DistanceTo вычисляет евклидово расстояние до другой точки
func (v Vec2Float) DistanceTo(other Vec2Float) float64 {
	return math.Sqrt(v.DistanceSqTo(other))
}

// DistanceSqTo возвращает квадрат расстояния; удобно для сравнения с радиусом без корня
func (v Vec2Float) DistanceSqTo(other Vec2Float) float64 {
	dx := v.X - other.X
	dy := v.Y - other.Y
	return dx*dx + dy*dy
}

// Within проверяет, что точка лежит не дальше radius (граница включительно)
func (v Vec2Float) Within(other Vec2Float, radius float64) bool {
	if radius < 0 {
		return false
	}
	return v.DistanceTo(other) <= radius
}
