package entity

import "github.com/annel0/tile-adventure/internal/vec"

// Значения игрока по умолчанию
const (
	PlayerMaxHitpoints     = 4
	PlayerAttackRange      = 0.5
	PlayerAttackValue      = 1
	PlayerInteractionRange = 0.8
)

// Player — персонаж игрока: Character со всеми четырьмя ролями
type Player struct {
	Character
	Vitals
	Offense
	Reach
	Bag

	// InPortal выставляется резолвером, пока игрок стоит в портале.
	// Читается внешним обработчиком переходов между областями.
	InPortal bool
}

// NewPlayer создаёт игрока со значениями по умолчанию
func NewPlayer(pos vec.Vec2Float) *Player {
	return &Player{
		Character: NewCharacter("Player", "char.png", "charicon.png", pos),
		Vitals:    NewVitals(PlayerMaxHitpoints),
		Offense:   NewOffense(PlayerAttackRange, PlayerAttackValue),
		Reach:     NewReach(PlayerInteractionRange),
	}
}

// OnHit снимает здоровье на величину атаки нападающего.
// Игрок не удаляется из области при смерти; это решает игровой цикл.
func (p *Player) OnHit(w World, attacker Attacker, target Attackable) error {
	p.Damage(attacker.AttackValue())
	return nil
}

// Dead сообщает, что здоровье игрока исчерпано
func (p *Player) Dead() bool {
	return !p.Alive()
}
