package game

import (
	"github.com/annel0/tile-adventure/internal/vec"
	"github.com/annel0/tile-adventure/internal/world/entity"
	"github.com/google/uuid"
)

// ItemView — копия состояния предмета для рендера и HUD
type ItemView struct {
	ID           uuid.UUID
	Name         string
	Texture      string
	Icon         string
	Position     vec.Vec2Float
	Fixed        bool
	Hitpoints    int
	MaxHitpoints int
	Attackable   bool
}

// PlayerView — копия состояния игрока для HUD
type PlayerView struct {
	ItemView
	InPortal           bool
	Inventory          []ItemView
	AttackCandidates   int
	InteractCandidates int
}

// Snapshot — снимок мира после тика. Ничего не ссылается на живые предметы.
type Snapshot struct {
	Tick   uint64
	Area   string
	Width  int
	Height int
	Layers int
	Items  []ItemView
	Player PlayerView
}

// Snapshot возвращает снимок для коллабораторов рендера. Вызывать между тиками.
func (s *Simulation) Snapshot() Snapshot {
	items := s.area.Items()
	snap := Snapshot{
		Tick:   s.tick,
		Area:   s.area.Name(),
		Width:  s.area.Width(),
		Height: s.area.Height(),
		Layers: len(s.area.Layers()),
		Items:  make([]ItemView, 0, len(items)),
	}
	for _, item := range items {
		snap.Items = append(snap.Items, viewOf(item))
	}

	inv := s.player.InventoryItems()
	snap.Player = PlayerView{
		ItemView:           viewOf(s.player),
		InPortal:           s.player.InPortal,
		Inventory:          make([]ItemView, 0, len(inv)),
		AttackCandidates:   s.player.AttackableItems().Len(),
		InteractCandidates: s.player.InteractableItems().Len(),
	}
	for _, item := range inv {
		snap.Player.Inventory = append(snap.Player.Inventory, viewOf(item))
	}
	return snap
}

func viewOf(item entity.Item) ItemView {
	v := ItemView{
		ID:       item.ID(),
		Name:     item.Name(),
		Texture:  item.Texture(),
		Icon:     item.Icon(),
		Position: item.Position(),
		Fixed:    item.Fixed(),
	}
	if a, ok := item.(entity.Attackable); ok {
		v.Attackable = true
		v.Hitpoints = a.Hitpoints()
		v.MaxHitpoints = a.MaxHitpoints()
	}
	return v
}
