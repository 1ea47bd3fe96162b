package entity

import "github.com/zyedidia/generic/mapset"

// ItemSet — неупорядоченное множество предметов. Используется как кэш
// кандидатов: источником истины всегда остаётся коллекция Area.
type ItemSet struct {
	set mapset.Set[Item]
}

// NewItemSet создаёт пустое множество
func NewItemSet() *ItemSet {
	return &ItemSet{set: mapset.New[Item]()}
}

func (s *ItemSet) Has(item Item) bool { return s.set.Has(item) }
func (s *ItemSet) Len() int           { return s.set.Size() }

// Each обходит элементы в неопределённом порядке
func (s *ItemSet) Each(fn func(item Item)) {
	s.set.Each(fn)
}

// Slice возвращает снимок элементов в неопределённом порядке
func (s *ItemSet) Slice() []Item {
	out := make([]Item, 0, s.set.Size())
	s.set.Each(func(item Item) {
		out = append(out, item)
	})
	return out
}

// Replace полностью заменяет содержимое множества
func (s *ItemSet) Replace(items []Item) {
	s.set = mapset.New[Item]()
	for _, item := range items {
		s.set.Put(item)
	}
}

// Clear очищает множество
func (s *ItemSet) Clear() {
	s.set = mapset.New[Item]()
}
