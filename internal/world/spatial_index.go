package world

import (
	"fmt"
	"math"

	"github.com/annel0/tile-adventure/internal/vec"
	"github.com/annel0/tile-adventure/internal/world/entity"
	"github.com/google/uuid"
)

// ProximityIndex отвечает на запрос "предметы в радиусе r от точки p".
// Любая реализация обязана возвращать то же множество, что и полный перебор.
type ProximityIndex interface {
	// Rebuild полностью перестраивает индекс по актуальным позициям
	Rebuild(items []entity.Item)
	Insert(item entity.Item)
	Remove(item entity.Item)
	// Relocate учитывает новую позицию уже проиндексированного предмета
	Relocate(id uuid.UUID)
	// QueryRange возвращает предметы на расстоянии <= radius (граница включительно)
	QueryRange(center vec.Vec2Float, radius float64) []entity.Item
	Len() int
}

// LinearIndex — полный перебор. Для областей игрового масштаба этого достаточно.
type LinearIndex struct {
	items []entity.Item
}

// NewLinearIndex создаёт индекс с линейным поиском
func NewLinearIndex() *LinearIndex {
	return &LinearIndex{}
}

func (li *LinearIndex) Rebuild(items []entity.Item) {
	li.items = append(li.items[:0], items...)
}

func (li *LinearIndex) Insert(item entity.Item) {
	li.items = append(li.items, item)
}

func (li *LinearIndex) Remove(item entity.Item) {
	for i, it := range li.items {
		if it == item {
			li.items = append(li.items[:i], li.items[i+1:]...)
			return
		}
	}
}

// Relocate ничего не делает: позиции читаются при каждом запросе
func (li *LinearIndex) Relocate(uuid.UUID) {}

func (li *LinearIndex) QueryRange(center vec.Vec2Float, radius float64) []entity.Item {
	result := make([]entity.Item, 0)
	if math.IsNaN(radius) || radius < 0 {
		return result
	}
	for _, item := range li.items {
		if item.Position().Within(center, radius) {
			result = append(result, item)
		}
	}
	return result
}

func (li *LinearIndex) Len() int { return len(li.items) }

// cellKey представляет ключ ячейки в пространственной сетке
type cellKey struct {
	x, y int
}

// GridIndex — равномерная сетка корзин для крупных областей.
// Предметы, встроившие entity.Base, сами сообщают о перемещениях через область
// (Relocate); остальным нужен Rebuild.
type GridIndex struct {
	cellSize float64
	cells    map[cellKey]map[uuid.UUID]entity.Item
	entities map[uuid.UUID]gridSlot
}

// gridSlot запоминает, в какой корзине лежит предмет
type gridSlot struct {
	key  cellKey
	item entity.Item
}

// NewGridIndex создаёт пространственный индекс с заданным размером ячейки
func NewGridIndex(cellSize float64) *GridIndex {
	if cellSize <= 0 || math.IsNaN(cellSize) || math.IsInf(cellSize, 0) {
		cellSize = 4.0 // Размер ячейки по умолчанию, в мировых единицах
	}
	return &GridIndex{
		cellSize: cellSize,
		cells:    make(map[cellKey]map[uuid.UUID]entity.Item),
		entities: make(map[uuid.UUID]gridSlot),
	}
}

func (gi *GridIndex) Rebuild(items []entity.Item) {
	gi.cells = make(map[cellKey]map[uuid.UUID]entity.Item)
	gi.entities = make(map[uuid.UUID]gridSlot, len(items))
	for _, item := range items {
		gi.Insert(item)
	}
}

func (gi *GridIndex) Insert(item entity.Item) {
	if _, exists := gi.entities[item.ID()]; exists {
		gi.Remove(item)
	}
	gi.link(item, gi.keyFor(item.Position()))
}

func (gi *GridIndex) Remove(item entity.Item) {
	slot, exists := gi.entities[item.ID()]
	if !exists {
		return
	}
	gi.unlink(item.ID(), slot.key)
}

// Relocate перекладывает предмет в корзину, соответствующую его текущей позиции
func (gi *GridIndex) Relocate(id uuid.UUID) {
	slot, exists := gi.entities[id]
	if !exists {
		return
	}
	key := gi.keyFor(slot.item.Position())
	if key == slot.key {
		return
	}
	gi.unlink(id, slot.key)
	gi.link(slot.item, key)
}

func (gi *GridIndex) QueryRange(center vec.Vec2Float, radius float64) []entity.Item {
	result := make([]entity.Item, 0)
	if math.IsNaN(radius) || radius < 0 {
		return result
	}

	minKey := gi.keyFor(vec.Vec2Float{X: center.X - radius, Y: center.Y - radius})
	maxKey := gi.keyFor(vec.Vec2Float{X: center.X + radius, Y: center.Y + radius})

	// Рамка запроса покрывает больше ячеек, чем занято: проходим по занятым
	span := (float64(maxKey.x-minKey.x) + 1) * (float64(maxKey.y-minKey.y) + 1)
	if math.IsInf(radius, 1) || span > float64(len(gi.cells)) {
		for _, cell := range gi.cells {
			for _, item := range cell {
				if item.Position().Within(center, radius) {
					result = append(result, item)
				}
			}
		}
		return result
	}

	for x := minKey.x; x <= maxKey.x; x++ {
		for y := minKey.y; y <= maxKey.y; y++ {
			for _, item := range gi.cells[cellKey{x: x, y: y}] {
				if item.Position().Within(center, radius) {
					result = append(result, item)
				}
			}
		}
	}
	return result
}

func (gi *GridIndex) link(item entity.Item, key cellKey) {
	cell, exists := gi.cells[key]
	if !exists {
		cell = make(map[uuid.UUID]entity.Item)
		gi.cells[key] = cell
	}
	cell[item.ID()] = item
	gi.entities[item.ID()] = gridSlot{key: key, item: item}
}

func (gi *GridIndex) unlink(id uuid.UUID, key cellKey) {
	delete(gi.entities, id)
	if cell, ok := gi.cells[key]; ok {
		delete(cell, id)
		if len(cell) == 0 {
			delete(gi.cells, key)
		}
	}
}

func (gi *GridIndex) Len() int { return len(gi.entities) }

// Stats возвращает статистику индекса
func (gi *GridIndex) Stats() string {
	maxPerCell := 0
	for _, cell := range gi.cells {
		if len(cell) > maxPerCell {
			maxPerCell = len(cell)
		}
	}
	avg := 0.0
	if len(gi.cells) > 0 {
		avg = float64(len(gi.entities)) / float64(len(gi.cells))
	}
	return fmt.Sprintf("GridIndex: %d items, %d cells, avg %.2f items/cell, max %d items/cell",
		len(gi.entities), len(gi.cells), avg, maxPerCell)
}

// maxGridCoord ограничивает номер ячейки, чтобы огромные и бесконечные координаты
// не давали неопределённого преобразования float -> int
const maxGridCoord = 1 << 30

// keyFor возвращает ячейку сетки; Floor корректно обрабатывает отрицательные координаты
func (gi *GridIndex) keyFor(p vec.Vec2Float) cellKey {
	return cellKey{
		x: gridCoord(p.X / gi.cellSize),
		y: gridCoord(p.Y / gi.cellSize),
	}
}

func gridCoord(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= maxGridCoord:
		return maxGridCoord
	case v <= -maxGridCoord:
		return -maxGridCoord
	}
	return int(math.Floor(v))
}
