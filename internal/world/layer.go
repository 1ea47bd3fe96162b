package world

import (
	"fmt"

	"github.com/annel0/tile-adventure/internal/vec"
)

// LayerKind задаёт условное назначение слоя в порядке спереди назад.
//
// 0 – LayerFloor: земля, вода, дорожки;
// 1 – LayerActive: препятствия и коллизии, по этому слою ходят сущности;
// 2 – LayerCeiling: кроны, крыши, надстройки.
// Область может иметь любое количество слоёв; константы лишь именуют первые три.
type LayerKind uint8

const (
	LayerFloor LayerKind = iota
	LayerActive
	LayerCeiling

	DefaultLayerCount // всегда последний: количество стандартных слоёв
)

// Cell — идентификатор тайла в ячейке слоя. 0 означает пустую ячейку.
type Cell uint16

// CellEmpty — пустая ячейка
const CellEmpty Cell = 0

// Layer — двумерная сетка ячеек одного слоя области
type Layer struct {
	width  int
	height int
	cells  []Cell
}

// NewLayer создаёт слой заданного размера
func NewLayer(width, height int) (*Layer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: layer size %dx%d", ErrInvalidArgument, width, height)
	}
	return &Layer{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}, nil
}

func (l *Layer) Width() int  { return l.width }
func (l *Layer) Height() int { return l.height }

// Get возвращает содержимое ячейки
func (l *Layer) Get(x, y int) (Cell, error) {
	idx, err := l.index(x, y)
	if err != nil {
		return CellEmpty, err
	}
	return l.cells[idx], nil
}

// Set записывает содержимое ячейки
func (l *Layer) Set(x, y int, c Cell) error {
	idx, err := l.index(x, y)
	if err != nil {
		return err
	}
	l.cells[idx] = c
	return nil
}

// At — вариант Get для координат ячейки
func (l *Layer) At(pos vec.Vec2) (Cell, error) {
	return l.Get(pos.X, pos.Y)
}

// Fill заполняет весь слой одним значением
func (l *Layer) Fill(c Cell) {
	for i := range l.cells {
		l.cells[i] = c
	}
}

func (l *Layer) index(x, y int) (int, error) {
	if !(vec.Vec2{X: x, Y: y}).InBounds(l.width, l.height) {
		return 0, fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrIndexOutOfRange, x, y, l.width, l.height)
	}
	return y*l.width + x, nil
}
