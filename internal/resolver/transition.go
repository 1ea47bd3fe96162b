package resolver

import "github.com/annel0/tile-adventure/internal/world/entity"

// Relevance — вид кэша кандидатов
type Relevance uint8

const (
	RelevanceAttack Relevance = iota
	RelevanceInteract
)

func (r Relevance) String() string {
	switch r {
	case RelevanceAttack:
		return "attack"
	case RelevanceInteract:
		return "interact"
	default:
		return "unknown"
	}
}

// TransitionKind — вход в кэш кандидатов или выход из него
type TransitionKind uint8

const (
	Entered TransitionKind = iota
	Left
)

func (k TransitionKind) String() string {
	if k == Entered {
		return "entered"
	}
	return "left"
}

// Transition описывает смену состояния предмета относительно актёра:
// предмет стал (или перестал быть) атакуемым / доступным для взаимодействия.
type Transition struct {
	Actor     entity.Item
	Item      entity.Item
	Relevance Relevance
	Kind      TransitionKind
}

// replace заменяет содержимое кэша и возвращает разницу со старым состоянием.
// Наблюдаемое множество всегда совпадает с полным пересчётом.
func replace(actor entity.Item, set *entity.ItemSet, next []entity.Item, rel Relevance) []Transition {
	var transitions []Transition

	nextSet := make(map[entity.Item]struct{}, len(next))
	for _, item := range next {
		nextSet[item] = struct{}{}
		if !set.Has(item) {
			transitions = append(transitions, Transition{Actor: actor, Item: item, Relevance: rel, Kind: Entered})
		}
	}
	set.Each(func(item entity.Item) {
		if _, ok := nextSet[item]; !ok {
			transitions = append(transitions, Transition{Actor: actor, Item: item, Relevance: rel, Kind: Left})
		}
	})

	set.Replace(next)
	return transitions
}
