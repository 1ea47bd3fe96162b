package entity

import (
	"fmt"

	"github.com/annel0/tile-adventure/internal/vec"
)

// Monster — враждебный персонаж: атакуемый и атакующий одновременно
type Monster struct {
	Character
	Vitals
	Offense
}

// NewMonster создаёт монстра с заданными параметрами
func NewMonster(name, texture string, pos vec.Vec2Float, maxHitpoints int, attackRange float64, attackValue int) *Monster {
	return &Monster{
		Character: NewCharacter(name, texture, texture, pos),
		Vitals:    NewVitals(maxHitpoints),
		Offense:   NewOffense(attackRange, attackValue),
	}
}

// OnHit снимает здоровье; при смерти монстр убирает себя из мира
func (m *Monster) OnHit(w World, attacker Attacker, target Attackable) error {
	if !m.Damage(attacker.AttackValue()) {
		return nil
	}
	if w == nil || !w.Contains(m) {
		return nil
	}
	if err := w.RemoveItem(m); err != nil {
		return fmt.Errorf("despawn %s: %w", m.Name(), err)
	}
	return nil
}
