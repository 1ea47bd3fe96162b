package worldgen

import (
	"fmt"
	"math/rand"

	"github.com/annel0/tile-adventure/internal/config"
	"github.com/annel0/tile-adventure/internal/logging"
	"github.com/annel0/tile-adventure/internal/vec"
	"github.com/annel0/tile-adventure/internal/world"
	"github.com/annel0/tile-adventure/internal/world/entity"
)

// Тайлы пола и активного слоя
const (
	CellGrass world.Cell = iota + 1
	CellSand
	CellWater
	CellTree
	CellRock
)

// Пороги шума для рельефа
const (
	waterLevel = 0.32
	sandLevel  = 0.38
	treeLevel  = 0.68
)

// World — сгенерированная область вместе с игроком
type World struct {
	Area   *world.Area
	Player *entity.Player
	Portal *entity.Portal
}

// GenerateArea строит область: рельеф по шуму Перлина, монстры, собираемые предметы, портал.
// Генерация детерминирована для одного и того же сида.
func GenerateArea(cfg config.WorldConfig) (*world.Area, error) {
	var opts []world.AreaOption
	if cfg.Index == config.IndexGrid {
		opts = append(opts, world.WithIndex(world.NewGridIndex(cfg.CellSize)))
	}

	area, err := world.NewArea(cfg.Name, cfg.Layers, cfg.Width, cfg.Height, opts...)
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", cfg.Name, err)
	}

	noise := NewNoise(cfg.Seed, 8)
	if err := paintTerrain(area, noise); err != nil {
		return nil, fmt.Errorf("generate %s: %w", cfg.Name, err)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	free := walkableCells(area)
	rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })

	// Центр области оставляем под игрока
	center := vec.Vec2{X: cfg.Width / 2, Y: cfg.Height / 2}
	take := func() (vec.Vec2Float, bool) {
		for len(free) > 0 {
			c := free[0]
			free = free[1:]
			if c.DistanceTo(center) < 2 {
				continue
			}
			return vec.FromVec2(c), true
		}
		return vec.Vec2Float{}, false
	}

	for i := 0; i < cfg.Monsters; i++ {
		pos, ok := take()
		if !ok {
			break
		}
		orc := entity.NewMonster(fmt.Sprintf("Orc %d", i+1), "orc.png", pos, 3, 0.5, 1)
		if err := area.AddItem(orc); err != nil {
			return nil, err
		}
	}
	for i := 0; i < cfg.Goodies; i++ {
		pos, ok := take()
		if !ok {
			break
		}
		goodie := entity.NewGoodie("Diamond", "items.png", "diamondicon.png", pos)
		if err := area.AddItem(goodie); err != nil {
			return nil, err
		}
	}
	if cfg.Portal && cfg.PortalTo != "" {
		if pos, ok := take(); ok {
			portal := entity.NewPortal(pos, cfg.PortalTo, vec.FromVec2(center))
			if err := area.AddItem(portal); err != nil {
				return nil, err
			}
		}
	}

	logging.GetWorldLogger().Info("🌍 Область %s %dx%d: слоёв=%d предметов=%d",
		cfg.Name, cfg.Width, cfg.Height, cfg.Layers, area.Len())
	return area, nil
}

// Generate строит область и ставит игрока в центр или ближайшую к нему проходимую ячейку
func Generate(cfg config.WorldConfig) (*World, error) {
	area, err := GenerateArea(cfg)
	if err != nil {
		return nil, err
	}

	start := NearestWalkable(area, vec.Vec2{X: cfg.Width / 2, Y: cfg.Height / 2})
	player := entity.NewPlayer(vec.FromVec2(start))
	if err := area.AddItem(player); err != nil {
		return nil, err
	}

	w := &World{Area: area, Player: player}
	for _, item := range area.Items() {
		if p, ok := item.(*entity.Portal); ok {
			w.Portal = p
		}
	}
	return w, nil
}

// paintTerrain заполняет слой пола и слой препятствий (если они есть)
func paintTerrain(area *world.Area, noise *Noise) error {
	layers := area.Layers()
	if len(layers) == 0 {
		return nil
	}
	floor := layers[world.LayerFloor]
	var active *world.Layer
	if len(layers) > int(world.LayerActive) {
		active = layers[world.LayerActive]
	}

	for y := 0; y < area.Height(); y++ {
		for x := 0; x < area.Width(); x++ {
			v := noise.At(x, y)
			tile := CellGrass
			switch {
			case v < waterLevel:
				tile = CellWater
			case v < sandLevel:
				tile = CellSand
			}
			if err := floor.Set(x, y, tile); err != nil {
				return err
			}
			if active != nil && v > treeLevel {
				if err := active.Set(x, y, CellTree); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// walkableCells возвращает ячейки без воды и препятствий
func walkableCells(area *world.Area) []vec.Vec2 {
	layers := area.Layers()
	cells := make([]vec.Vec2, 0, area.Width()*area.Height())
	for y := 0; y < area.Height(); y++ {
		for x := 0; x < area.Width(); x++ {
			if Walkable(layers, x, y) {
				cells = append(cells, vec.Vec2{X: x, Y: y})
			}
		}
	}
	return cells
}

// Walkable проверяет, можно ли стоять в ячейке
func Walkable(layers []*world.Layer, x, y int) bool {
	if len(layers) > int(world.LayerFloor) {
		if c, err := layers[world.LayerFloor].Get(x, y); err != nil || c == CellWater {
			return false
		}
	}
	if len(layers) > int(world.LayerActive) {
		if c, err := layers[world.LayerActive].Get(x, y); err != nil || c != world.CellEmpty {
			return false
		}
	}
	return true
}

// Passable проверяет проходимость ячейки области; подходит для коллайдера симуляции
func Passable(area *world.Area, cell vec.Vec2) bool {
	return Walkable(area.Layers(), cell.X, cell.Y)
}

// NearestWalkable ищет проходимую ячейку, ближайшую к from; если таких нет, возвращает from
func NearestWalkable(area *world.Area, from vec.Vec2) vec.Vec2 {
	layers := area.Layers()
	best, bestDist := from, -1.0
	for y := 0; y < area.Height(); y++ {
		for x := 0; x < area.Width(); x++ {
			if !Walkable(layers, x, y) {
				continue
			}
			c := vec.Vec2{X: x, Y: y}
			if d := c.DistanceTo(from); bestDist < 0 || d < bestDist {
				best, bestDist = c, d
			}
		}
	}
	return best
}
