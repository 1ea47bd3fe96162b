package worldgen

import (
	"github.com/aquilax/go-perlin"
)

// Noise — генератор шума Перлина, привязанный к сиду
type Noise struct {
	p     *perlin.Perlin
	scale float64
}

// NewNoise создаёт генератор с заданным сидом.
// scale задаёт размер "пятен" рельефа в ячейках.
func NewNoise(seed int64, scale float64) *Noise {
	alpha := 2.0  // Сглаживание шума
	beta := 2.0   // Частота шума
	n := int32(3) // Количество октав
	if scale <= 0 {
		scale = 8
	}
	return &Noise{p: perlin.NewPerlin(alpha, beta, n, seed), scale: scale}
}

// At возвращает значение шума для ячейки в диапазоне [0, 1]
func (n *Noise) At(x, y int) float64 {
	v := n.p.Noise2D(float64(x)/n.scale, float64(y)/n.scale)
	v = (v + 1.0) / 2.0
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
