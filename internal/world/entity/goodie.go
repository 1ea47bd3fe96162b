package entity

import (
	"errors"
	"fmt"

	"github.com/annel0/tile-adventure/internal/vec"
)

// Goodie — неподвижный собираемый предмет (монета, алмаз, зелье)
type Goodie struct {
	Base
}

// NewGoodie создаёт собираемый предмет
func NewGoodie(name, texture, icon string, pos vec.Vec2Float) *Goodie {
	return &Goodie{Base: NewBase(name, texture, icon, pos, true)}
}

// OnInteract перекладывает предмет из мира в инвентарь актёра.
// Если у актёра нет инвентаря, взаимодействие ничего не делает.
// При любой ошибке предмет остаётся там, где был.
func (g *Goodie) OnInteract(w World, actor Interactor, target Interactable) error {
	inv, ok := actor.(Inventory)
	if !ok {
		return nil
	}
	if err := inv.AddToInventory(g); err != nil {
		return fmt.Errorf("pick up %s: %w", g.Name(), err)
	}
	if w != nil && w.Contains(g) {
		if err := w.RemoveItem(g); err != nil {
			// Откат: предмет не должен оказаться и в мире, и в инвентаре
			if rbErr := inv.RemoveFromInventory(g); rbErr != nil {
				return fmt.Errorf("pick up %s: %w", g.Name(), errors.Join(err, rbErr))
			}
			return fmt.Errorf("pick up %s: %w", g.Name(), err)
		}
	}
	return nil
}
