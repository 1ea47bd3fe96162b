package world

import (
	"testing"

	"github.com/annel0/tile-adventure/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLayer(t *testing.T) {
	l, err := NewLayer(3, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, l.Width())
	assert.Equal(t, 2, l.Height())

	for _, size := range [][2]int{{0, 1}, {1, 0}, {-2, 3}} {
		_, err := NewLayer(size[0], size[1])
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}
}

func TestLayer_GetSet(t *testing.T) {
	l, err := NewLayer(4, 3)
	require.NoError(t, err)

	c, err := l.Get(3, 2)
	require.NoError(t, err)
	assert.Equal(t, CellEmpty, c, "новый слой пуст")

	require.NoError(t, l.Set(3, 2, Cell(7)))
	require.NoError(t, l.Set(0, 0, Cell(1)))

	c, err = l.Get(3, 2)
	require.NoError(t, err)
	assert.Equal(t, Cell(7), c)

	c, err = l.At(vec.Vec2{X: 0, Y: 0})
	require.NoError(t, err)
	assert.Equal(t, Cell(1), c)

	// Соседние ячейки не затронуты
	c, err = l.Get(2, 2)
	require.NoError(t, err)
	assert.Equal(t, CellEmpty, c)
}

func TestLayer_OutOfRange(t *testing.T) {
	l, err := NewLayer(4, 3)
	require.NoError(t, err)

	for _, p := range []vec.Vec2{{X: -1, Y: 0}, {X: 0, Y: -1}, {X: 4, Y: 0}, {X: 0, Y: 3}, {X: 10, Y: 10}} {
		_, err := l.Get(p.X, p.Y)
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "Get %v", p)
		assert.ErrorIs(t, l.Set(p.X, p.Y, Cell(1)), ErrIndexOutOfRange, "Set %v", p)
	}
}

func TestLayer_Fill(t *testing.T) {
	l, err := NewLayer(5, 5)
	require.NoError(t, err)
	l.Fill(Cell(3))

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			c, err := l.Get(x, y)
			require.NoError(t, err)
			assert.Equal(t, Cell(3), c)
		}
	}
}
