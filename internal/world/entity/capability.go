package entity

// Attackable — роль предмета, который можно атаковать
type Attackable interface {
	Item
	// MaxHitpoints — максимум очков здоровья в здоровом состоянии (>0)
	MaxHitpoints() int
	// Hitpoints — текущие очки здоровья, всегда в [0, MaxHitpoints]
	Hitpoints() int
	// SetHitpoints устанавливает здоровье с ограничением по диапазону
	SetHitpoints(hp int)
	// OnHit вызывается резолвером при каждом попадании. Реакция сама решает,
	// как урон превращается в потерю здоровья и что происходит при смерти.
	OnHit(w World, attacker Attacker, target Attackable) error
}

// Attacker — роль предмета, наносящего урон атакуемым соседям
type Attacker interface {
	Item
	AttackRange() float64
	AttackValue() int
	// AttackableItems — кэш кандидатов, который поддерживает резолвер
	AttackableItems() *ItemSet
}

// Interactor — роль предмета, взаимодействующего с соседями
type Interactor interface {
	Item
	InteractionRange() float64
	// InteractableItems — кэш кандидатов, который поддерживает резолвер
	InteractableItems() *ItemSet
}

// Interactable — цель взаимодействия
type Interactable interface {
	Item
	OnInteract(w World, actor Interactor, target Interactable) error
}

// Inventory — носитель предметов
type Inventory interface {
	Item
	InventoryItems() []Item
	AddToInventory(item Item) error
	RemoveFromInventory(item Item) error
}

// Vitals — блок данных здоровья для Attackable
type Vitals struct {
	maxHitpoints int
	hitpoints    int
}

// NewVitals создаёт здоровый блок; max < 1 поднимается до 1
func NewVitals(max int) Vitals {
	if max < 1 {
		max = 1
	}
	return Vitals{maxHitpoints: max, hitpoints: max}
}

func (v *Vitals) MaxHitpoints() int { return v.maxHitpoints }
func (v *Vitals) Hitpoints() int    { return v.hitpoints }

// SetHitpoints ограничивает значение диапазоном [0, MaxHitpoints]
func (v *Vitals) SetHitpoints(hp int) {
	switch {
	case hp < 0:
		hp = 0
	case hp > v.maxHitpoints:
		hp = v.maxHitpoints
	}
	v.hitpoints = hp
}

// SetMaxHitpoints меняет максимум и заново ограничивает текущее здоровье
func (v *Vitals) SetMaxHitpoints(max int) {
	if max < 1 {
		max = 1
	}
	v.maxHitpoints = max
	v.SetHitpoints(v.hitpoints)
}

// Damage вычитает урон и сообщает, закончилось ли здоровье
func (v *Vitals) Damage(amount int) bool {
	if amount > 0 {
		v.SetHitpoints(v.hitpoints - amount)
	}
	return v.hitpoints == 0
}

// Alive сообщает, осталось ли здоровье
func (v *Vitals) Alive() bool {
	return v.hitpoints > 0
}

// Offense — блок данных атакующего
type Offense struct {
	attackRange float64
	attackValue int
	attackable  *ItemSet
}

// NewOffense создаёт блок атаки; отрицательные значения обнуляются
func NewOffense(attackRange float64, attackValue int) Offense {
	o := Offense{attackable: NewItemSet()}
	o.SetAttackRange(attackRange)
	o.SetAttackValue(attackValue)
	return o
}

func (o *Offense) AttackRange() float64      { return o.attackRange }
func (o *Offense) AttackValue() int          { return o.attackValue }
func (o *Offense) AttackableItems() *ItemSet { return o.attackable }

func (o *Offense) SetAttackRange(r float64) {
	if r < 0 {
		r = 0
	}
	o.attackRange = r
}

func (o *Offense) SetAttackValue(v int) {
	if v < 0 {
		v = 0
	}
	o.attackValue = v
}

// Reach — блок данных взаимодействующего
type Reach struct {
	interactionRange float64
	interactable     *ItemSet
}

// NewReach создаёт блок взаимодействия
func NewReach(interactionRange float64) Reach {
	r := Reach{interactable: NewItemSet()}
	r.SetInteractionRange(interactionRange)
	return r
}

func (r *Reach) InteractionRange() float64   { return r.interactionRange }
func (r *Reach) InteractableItems() *ItemSet { return r.interactable }

func (r *Reach) SetInteractionRange(v float64) {
	if v < 0 {
		v = 0
	}
	r.interactionRange = v
}

// Bag — блок данных инвентаря
type Bag struct {
	items []Item
}

// InventoryItems возвращает копию списка переносимых предметов
func (b *Bag) InventoryItems() []Item {
	out := make([]Item, len(b.items))
	copy(out, b.items)
	return out
}

// AddToInventory кладёт предмет в инвентарь
func (b *Bag) AddToInventory(item Item) error {
	for _, it := range b.items {
		if it == item {
			return ErrDuplicateItem
		}
	}
	b.items = append(b.items, item)
	return nil
}

// RemoveFromInventory убирает предмет из инвентаря
func (b *Bag) RemoveFromInventory(item Item) error {
	for i, it := range b.items {
		if it == item {
			b.items = append(b.items[:i], b.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// InventoryLen возвращает количество предметов в инвентаре
func (b *Bag) InventoryLen() int {
	return len(b.items)
}
