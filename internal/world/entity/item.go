package entity

import (
	"errors"

	"github.com/annel0/tile-adventure/internal/vec"
	"github.com/google/uuid"
)

var (
	// ErrNotFound возвращается при удалении предмета, которого нет в коллекции
	ErrNotFound = errors.New("item not found")
	// ErrDuplicateItem возвращается при повторном добавлении того же предмета
	ErrDuplicateItem = errors.New("item already present")
	// ErrFixedItem возвращается при попытке сдвинуть неподвижный предмет
	ErrFixedItem = errors.New("item is fixed")
)

// World — срез области, который доступен реакциям сущностей (OnHit, OnInteract).
// Area реализует этот интерфейс.
type World interface {
	AddItem(item Item) error
	RemoveItem(item Item) error
	Contains(item Item) bool
}

// Item представляет любой размещаемый в мире объект
type Item interface {
	ID() uuid.UUID
	Name() string
	Texture() string
	Icon() string
	Position() vec.Vec2Float
	SetPosition(pos vec.Vec2Float)
	Fixed() bool

	// Owner возвращает область, в которой размещён предмет (nil, если не размещён)
	Owner() World
	// SetOwner вызывается только областью при добавлении/удалении предмета
	SetOwner(w World)
}

// Base — базовая реализация Item. Встраивается во все конкретные типы.
type Base struct {
	id       uuid.UUID
	name     string
	texture  string
	icon     string
	position vec.Vec2Float
	fixed    bool
	owner    World
}

// NewBase создаёт базовый предмет с новым уникальным ID
func NewBase(name, texture, icon string, pos vec.Vec2Float, fixed bool) Base {
	return Base{
		id:       uuid.New(),
		name:     name,
		texture:  texture,
		icon:     icon,
		position: pos,
		fixed:    fixed,
	}
}

func (b *Base) ID() uuid.UUID           { return b.id }
func (b *Base) Name() string            { return b.name }
func (b *Base) Texture() string         { return b.texture }
func (b *Base) Icon() string            { return b.icon }
func (b *Base) Position() vec.Vec2Float { return b.position }
func (b *Base) Fixed() bool             { return b.fixed }
func (b *Base) Owner() World            { return b.owner }
func (b *Base) SetOwner(w World)        { b.owner = w }

// SetPosition размещает предмет. Используется загрузчиком и переходами между
// областями; для неподвижных предметов это единственный способ задать позицию.
func (b *Base) SetPosition(pos vec.Vec2Float) {
	b.position = pos
	b.notifyMoved()
}

// MoveObserver — владелец, которому предмет сообщает о смене позиции
// (область держит по ним пространственный индекс)
type MoveObserver interface {
	ItemMoved(id uuid.UUID)
}

func (b *Base) notifyMoved() {
	if o, ok := b.owner.(MoveObserver); ok {
		o.ItemMoved(b.id)
	}
}

// Mover — всё, что умеет перемещаться
type Mover interface {
	Item
	Move(delta vec.Vec2Float) error
}

// Character — подвижный предмет, база для всех действующих лиц
type Character struct {
	Base
	direction vec.Vec2Float
}

// NewCharacter создаёт подвижного персонажа
func NewCharacter(name, texture, icon string, pos vec.Vec2Float) Character {
	return Character{
		Base:      NewBase(name, texture, icon, pos, false),
		direction: vec.Vec2Float{X: 0, Y: 1}, // По умолчанию смотрит вниз (юг)
	}
}

// Move сдвигает персонажа на delta. Коллизии здесь не проверяются.
func (c *Character) Move(delta vec.Vec2Float) error {
	if c.fixed {
		return ErrFixedItem
	}
	if delta.IsZero() {
		return nil
	}
	c.position = c.position.Add(delta)
	c.direction = delta.Normalized()
	c.notifyMoved()
	return nil
}

// Direction возвращает нормализованное направление последнего движения
func (c *Character) Direction() vec.Vec2Float {
	return c.direction
}
