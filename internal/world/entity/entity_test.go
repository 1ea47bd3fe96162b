package entity

import (
	"errors"
	"testing"

	"github.com/annel0/tile-adventure/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testWorld — минимальный мир для проверки колбэков без зависимости от Area
type testWorld struct {
	items map[Item]struct{}
}

func newTestWorld(items ...Item) *testWorld {
	w := &testWorld{items: make(map[Item]struct{})}
	for _, it := range items {
		_ = w.AddItem(it)
	}
	return w
}

func (w *testWorld) AddItem(item Item) error {
	if _, ok := w.items[item]; ok {
		return ErrDuplicateItem
	}
	w.items[item] = struct{}{}
	item.SetOwner(w)
	return nil
}

func (w *testWorld) RemoveItem(item Item) error {
	if _, ok := w.items[item]; !ok {
		return ErrNotFound
	}
	delete(w.items, item)
	item.SetOwner(nil)
	return nil
}

func (w *testWorld) Contains(item Item) bool {
	_, ok := w.items[item]
	return ok
}

// Проверки реализации ролей на этапе компиляции
var (
	_ Attackable   = (*Player)(nil)
	_ Attacker     = (*Player)(nil)
	_ Interactor   = (*Player)(nil)
	_ Inventory    = (*Player)(nil)
	_ Mover        = (*Player)(nil)
	_ Attackable   = (*Monster)(nil)
	_ Attacker     = (*Monster)(nil)
	_ Interactable = (*Goodie)(nil)
	_ Item         = (*Portal)(nil)
)

func TestNewPlayer_Defaults(t *testing.T) {
	p := NewPlayer(vec.Vec2Float{X: 2, Y: 3})

	assert.Equal(t, "Player", p.Name())
	assert.Equal(t, "char.png", p.Texture())
	assert.Equal(t, "charicon.png", p.Icon())
	assert.Equal(t, vec.Vec2Float{X: 2, Y: 3}, p.Position())
	assert.False(t, p.Fixed())

	assert.Equal(t, 4, p.MaxHitpoints())
	assert.Equal(t, 4, p.Hitpoints())
	assert.InDelta(t, 0.5, p.AttackRange(), 1e-9)
	assert.Equal(t, 1, p.AttackValue())
	assert.InDelta(t, 0.8, p.InteractionRange(), 1e-9)

	require.NotNil(t, p.AttackableItems())
	require.NotNil(t, p.InteractableItems())
	assert.Equal(t, 0, p.AttackableItems().Len())
	assert.Equal(t, 0, p.InteractableItems().Len())
	assert.Empty(t, p.InventoryItems())
	assert.False(t, p.InPortal)
}

func TestNewBase_UniqueIDs(t *testing.T) {
	a := NewGoodie("a", "", "", vec.Vec2Float{})
	b := NewGoodie("a", "", "", vec.Vec2Float{})
	assert.NotEqual(t, a.ID(), b.ID(), "одинаковые параметры не дают одинаковый идентификатор")
}

func TestVitals_Clamp(t *testing.T) {
	v := NewVitals(4)
	v.SetHitpoints(10)
	assert.Equal(t, 4, v.Hitpoints())
	v.SetHitpoints(-3)
	assert.Equal(t, 0, v.Hitpoints())
	assert.False(t, v.Alive())

	v.SetHitpoints(4)
	v.SetMaxHitpoints(2)
	assert.Equal(t, 2, v.Hitpoints(), "уменьшение максимума урезает текущее здоровье")

	zero := NewVitals(0)
	assert.Equal(t, 1, zero.MaxHitpoints())

	v = NewVitals(3)
	assert.False(t, v.Damage(2))
	assert.False(t, v.Damage(0), "нулевой урон ничего не меняет")
	assert.Equal(t, 1, v.Hitpoints())
	assert.True(t, v.Damage(5))
	assert.Equal(t, 0, v.Hitpoints())
}

func TestOffenseReach_NegativeClamped(t *testing.T) {
	o := NewOffense(-1, -5)
	assert.Zero(t, o.AttackRange())
	assert.Zero(t, o.AttackValue())

	r := NewReach(-0.3)
	assert.Zero(t, r.InteractionRange())
}

func TestBag(t *testing.T) {
	var b Bag
	g := NewGoodie("coin", "", "", vec.Vec2Float{})

	require.NoError(t, b.AddToInventory(g))
	assert.ErrorIs(t, b.AddToInventory(g), ErrDuplicateItem)
	assert.Equal(t, 1, b.InventoryLen())

	items := b.InventoryItems()
	items[0] = nil
	assert.Equal(t, Item(g), b.InventoryItems()[0], "InventoryItems возвращает копию")

	require.NoError(t, b.RemoveFromInventory(g))
	assert.ErrorIs(t, b.RemoveFromInventory(g), ErrNotFound)
	assert.Zero(t, b.InventoryLen())
}

func TestCharacter_Move(t *testing.T) {
	c := NewCharacter("c", "", "", vec.Vec2Float{X: 1, Y: 1})
	require.NoError(t, c.Move(vec.Vec2Float{X: 0.5, Y: -0.25}))
	assert.Equal(t, vec.Vec2Float{X: 1.5, Y: 0.75}, c.Position())
	assert.Equal(t, vec.Vec2Float{X: 0.5, Y: -0.25}.Normalized(), c.Direction())

	require.NoError(t, c.Move(vec.Vec2Float{}))
	assert.Equal(t, vec.Vec2Float{X: 1.5, Y: 0.75}, c.Position())
	assert.Equal(t, vec.Vec2Float{X: 0.5, Y: -0.25}.Normalized(), c.Direction(), "нулевой шаг не сбрасывает направление")

	c.fixed = true
	assert.ErrorIs(t, c.Move(vec.Vec2Float{X: 1}), ErrFixedItem)
	assert.Equal(t, vec.Vec2Float{X: 1.5, Y: 0.75}, c.Position())
}

func TestPlayer_OnHit(t *testing.T) {
	p := NewPlayer(vec.Vec2Float{})
	m := NewMonster("Orc", "orc.png", vec.Vec2Float{}, 3, 0.5, 3)
	w := newTestWorld(p, m)

	require.NoError(t, p.OnHit(w, m, p))
	assert.Equal(t, 1, p.Hitpoints())
	assert.False(t, p.Dead())

	require.NoError(t, p.OnHit(w, m, p))
	assert.Equal(t, 0, p.Hitpoints())
	assert.True(t, p.Dead())
	assert.True(t, w.Contains(p), "игрок не удаляется из мира при смерти")
}

func TestMonster_DespawnsOnDeath(t *testing.T) {
	p := NewPlayer(vec.Vec2Float{})
	m := NewMonster("Orc", "orc.png", vec.Vec2Float{X: 0.3}, 2, 0.5, 1)
	w := newTestWorld(p, m)

	require.NoError(t, m.OnHit(w, p, m))
	assert.Equal(t, 1, m.Hitpoints())
	assert.True(t, w.Contains(m))

	require.NoError(t, m.OnHit(w, p, m))
	assert.Equal(t, 0, m.Hitpoints())
	assert.False(t, w.Contains(m))
	assert.Nil(t, m.Owner())

	// Повторный удар по уже удалённому монстру не ошибка
	require.NoError(t, m.OnHit(w, p, m))
}

func TestGoodie_PickUp(t *testing.T) {
	p := NewPlayer(vec.Vec2Float{})
	g := NewGoodie("Diamond", "items.png", "diamond.png", vec.Vec2Float{X: 0.5})
	w := newTestWorld(p, g)

	require.NoError(t, g.OnInteract(w, p, g))
	assert.False(t, w.Contains(g))
	assert.Equal(t, []Item{g}, p.InventoryItems())

	// Без инвентаря взаимодействие ничего не делает
	g2 := NewGoodie("Coin", "", "", vec.Vec2Float{})
	w2 := newTestWorld(g2)
	require.NoError(t, g2.OnInteract(w2, &noBag{}, g2))
	assert.True(t, w2.Contains(g2))
}

func TestGoodie_FailedPickUpKeepsItem(t *testing.T) {
	t.Run("already carried", func(t *testing.T) {
		p := NewPlayer(vec.Vec2Float{})
		g := NewGoodie("Coin", "", "", vec.Vec2Float{})
		w := newTestWorld(p, g)
		require.NoError(t, p.AddToInventory(g))

		assert.ErrorIs(t, g.OnInteract(w, p, g), ErrDuplicateItem)
		assert.True(t, w.Contains(g), "предмет остаётся в мире")
		assert.Equal(t, []Item{g}, p.InventoryItems())
	})

	t.Run("world refuses removal", func(t *testing.T) {
		p := NewPlayer(vec.Vec2Float{})
		g := NewGoodie("Coin", "", "", vec.Vec2Float{})
		w := &stuckWorld{testWorld: newTestWorld(p, g)}

		assert.ErrorIs(t, g.OnInteract(w, p, g), errStuck)
		assert.True(t, w.Contains(g))
		assert.Empty(t, p.InventoryItems(), "инвентарь откатывается")
	})
}

var errStuck = errors.New("stuck")

// stuckWorld не отдаёт предметы
type stuckWorld struct {
	*testWorld
}

func (w *stuckWorld) RemoveItem(Item) error { return errStuck }

type noBag struct{ Base }

func (noBag) InteractionRange() float64   { return 1 }
func (noBag) InteractableItems() *ItemSet { return NewItemSet() }

func TestItemSet(t *testing.T) {
	s := NewItemSet()
	a := NewGoodie("a", "", "", vec.Vec2Float{})
	b := NewGoodie("b", "", "", vec.Vec2Float{})

	s.Replace([]Item{a, b, a})
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has(a))
	assert.ElementsMatch(t, []Item{a, b}, s.Slice())

	seen := 0
	s.Each(func(Item) { seen++ })
	assert.Equal(t, 2, seen)

	s.Replace([]Item{b})
	assert.False(t, s.Has(a))
	assert.Equal(t, 1, s.Len())

	s.Clear()
	assert.Zero(t, s.Len())
}

func TestPortal(t *testing.T) {
	pt := NewPortal(vec.Vec2Float{X: 3, Y: 3}, "cave", vec.Vec2Float{X: 1, Y: 1})
	assert.True(t, pt.Fixed())
	assert.Equal(t, "cave", pt.Destination)
	assert.Equal(t, vec.Vec2Float{X: 1, Y: 1}, pt.Target)
}
