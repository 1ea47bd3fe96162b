package world

import (
	"errors"

	"github.com/annel0/tile-adventure/internal/world/entity"
)

var (
	// ErrInvalidArgument — недопустимые параметры конструктора
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrIndexOutOfRange — обращение к ячейке вне сетки слоя
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrNotFound — предмета нет в области
	ErrNotFound = entity.ErrNotFound
	// ErrDuplicateItem — предмет уже есть в области
	ErrDuplicateItem = entity.ErrDuplicateItem
	// ErrItemOwned — предмет уже размещён в другой области
	ErrItemOwned = errors.New("item belongs to another area")
)
