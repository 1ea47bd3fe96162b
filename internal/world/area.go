package world

import (
	"fmt"

	"github.com/annel0/tile-adventure/internal/vec"
	"github.com/annel0/tile-adventure/internal/world/entity"
	"github.com/google/uuid"
)

// MinAreaSize — минимальная ширина и высота области в ячейках
const MinAreaSize = 5

// Area представляет отдельный участок мира: стопку слоёв и размещённые предметы.
// Area не потокобезопасна: все изменения происходят в пределах одного тика.
type Area struct {
	name   string
	width  int
	height int
	layers []*Layer

	items   []entity.Item
	members map[entity.Item]struct{}
	index   ProximityIndex
}

// AreaOption настраивает область при создании
type AreaOption func(*Area)

// WithIndex подменяет пространственный индекс (по умолчанию линейный перебор)
func WithIndex(idx ProximityIndex) AreaOption {
	return func(a *Area) {
		if idx != nil {
			a.index = idx
		}
	}
}

// NewArea создаёт область с layerCount слоями размером width x height
func NewArea(name string, layerCount, width, height int, opts ...AreaOption) (*Area, error) {
	// Проверки размеров
	if width < MinAreaSize {
		return nil, fmt.Errorf("%w: area must be at least %d cells wide, got %d", ErrInvalidArgument, MinAreaSize, width)
	}
	if height < MinAreaSize {
		return nil, fmt.Errorf("%w: area must be at least %d cells high, got %d", ErrInvalidArgument, MinAreaSize, height)
	}
	if layerCount < 0 {
		return nil, fmt.Errorf("%w: negative layer count %d", ErrInvalidArgument, layerCount)
	}

	layers := make([]*Layer, layerCount)
	for l := range layers {
		layer, err := NewLayer(width, height)
		if err != nil {
			return nil, err
		}
		layers[l] = layer
	}

	a := &Area{
		name:    name,
		width:   width,
		height:  height,
		layers:  layers,
		items:   make([]entity.Item, 0),
		members: make(map[entity.Item]struct{}),
		index:   NewLinearIndex(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

func (a *Area) Name() string { return a.name }
func (a *Area) Width() int   { return a.width }
func (a *Area) Height() int  { return a.height }

// Layers возвращает слои в порядке спереди назад
func (a *Area) Layers() []*Layer {
	out := make([]*Layer, len(a.layers))
	copy(out, a.layers)
	return out
}

// Layer возвращает слой по индексу
func (a *Area) Layer(i int) (*Layer, error) {
	if i < 0 || i >= len(a.layers) {
		return nil, fmt.Errorf("%w: layer %d of %d", ErrIndexOutOfRange, i, len(a.layers))
	}
	return a.layers[i], nil
}

// Contains проверяет, размещён ли предмет в области
func (a *Area) Contains(item entity.Item) bool {
	if item == nil {
		return false
	}
	_, ok := a.members[item]
	return ok
}

// AddItem размещает предмет в области
func (a *Area) AddItem(item entity.Item) error {
	if item == nil {
		return fmt.Errorf("%w: nil item", ErrInvalidArgument)
	}
	if a.Contains(item) {
		return fmt.Errorf("add %s to %s: %w", item.Name(), a.name, ErrDuplicateItem)
	}
	if owner := item.Owner(); owner != nil {
		return fmt.Errorf("add %s to %s: %w", item.Name(), a.name, ErrItemOwned)
	}

	a.items = append(a.items, item)
	a.members[item] = struct{}{}
	item.SetOwner(a)
	a.index.Insert(item)
	return nil
}

// RemoveItem убирает предмет из области. Отсутствующий предмет — ошибка ErrNotFound:
// тихий no-op скрыл бы рассинхронизацию кэшей резолвера и коллекции области.
func (a *Area) RemoveItem(item entity.Item) error {
	if !a.Contains(item) {
		name := "<nil>"
		if item != nil {
			name = item.Name()
		}
		return fmt.Errorf("remove %s from %s: %w", name, a.name, ErrNotFound)
	}

	for i, it := range a.items {
		if it == item {
			a.items = append(a.items[:i], a.items[i+1:]...)
			break
		}
	}
	delete(a.members, item)
	item.SetOwner(nil)
	a.index.Remove(item)
	return nil
}

// Items возвращает снимок размещённых предметов в порядке добавления
func (a *Area) Items() []entity.Item {
	out := make([]entity.Item, len(a.items))
	copy(out, a.items)
	return out
}

// Len возвращает количество предметов
func (a *Area) Len() int {
	return len(a.items)
}

// ItemsInRange возвращает предметы на расстоянии <= r от точки p
func (a *Area) ItemsInRange(p vec.Vec2Float, r float64) []entity.Item {
	return a.index.QueryRange(p, r)
}

// ItemMoved переносит предмет в индексе после смены позиции.
// Вызывается самим предметом через entity.MoveObserver.
func (a *Area) ItemMoved(id uuid.UUID) {
	a.index.Relocate(id)
}

// Reindex полностью синхронизирует индекс с текущими позициями предметов.
// Нужен для предметов, которые меняют позицию в обход Base.SetPosition/Character.Move.
func (a *Area) Reindex() {
	a.index.Rebuild(a.items)
}

var _ entity.MoveObserver = (*Area)(nil)

// InBounds проверяет, что точка лежит внутри области
func (a *Area) InBounds(p vec.Vec2Float) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < float64(a.width) && p.Y < float64(a.height)
}
