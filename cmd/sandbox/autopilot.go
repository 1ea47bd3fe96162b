package main

import (
	"math"

	"github.com/annel0/tile-adventure/internal/game"
	"github.com/annel0/tile-adventure/internal/input"
	"github.com/annel0/tile-adventure/internal/vec"
	"github.com/annel0/tile-adventure/internal/world/entity"
)

// stepLength — длина шага игрока за тик в мировых единицах
const stepLength = 0.25

// autopilot заменяет устройство ввода: идёт к ближайшей цели и атакует или подбирает её.
// Это не поиск пути: шаг всегда делается напрямую к цели.
type autopilot struct{}

func (a *autopilot) next(sim *game.Simulation) input.Intents {
	p := sim.Player()
	if p.InteractableItems().Len() > 0 {
		return input.Intents{Interact: true}
	}
	if p.AttackableItems().Len() > 0 {
		return input.Intents{Attack: true}
	}

	target, ok := nearest(sim, p)
	if !ok {
		return input.Intents{Close: true}
	}
	dir := target.Sub(p.Position())
	step := dir
	if dir.Length() > stepLength {
		step = dir.Normalized().Mul(stepLength)
	}
	return input.Intents{Move: detour(sim, p.Position(), step)}
}

// detour обходит препятствие: если прямой шаг закрыт, пробует шаги под прямым углом
func detour(sim *game.Simulation, from, step vec.Vec2Float) vec.Vec2Float {
	candidates := []vec.Vec2Float{
		step,
		{X: -step.Y, Y: step.X},
		{X: step.Y, Y: -step.X},
	}
	for _, c := range candidates {
		if sim.CanOccupy(from.Add(c)) {
			return c
		}
	}
	return step
}

// nearest ищет ближайшую цель; портал выбирается, когда других целей нет
func nearest(sim *game.Simulation, p *entity.Player) (vec.Vec2Float, bool) {
	best := math.Inf(1)
	var bestPos vec.Vec2Float
	var portal *entity.Portal

	for _, item := range sim.Area().Items() {
		switch it := item.(type) {
		case *entity.Portal:
			portal = it
			continue
		case *entity.Monster, *entity.Goodie:
		default:
			continue
		}
		if d := item.Position().DistanceTo(p.Position()); d < best {
			best = d
			bestPos = item.Position()
		}
	}
	if !math.IsInf(best, 1) {
		return bestPos, true
	}
	if portal != nil && !p.InPortal {
		return portal.Position(), true
	}
	return vec.Vec2Float{}, false
}
