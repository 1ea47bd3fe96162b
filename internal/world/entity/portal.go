package entity

import "github.com/annel0/tile-adventure/internal/vec"

// Portal — неподвижная точка перехода в другую область
type Portal struct {
	Base
	Destination string
	Target      vec.Vec2Float
}

// NewPortal создаёт портал в область destination с точкой появления target
func NewPortal(pos vec.Vec2Float, destination string, target vec.Vec2Float) *Portal {
	return &Portal{
		Base:        NewBase("Portal", "portal.png", "", pos, true),
		Destination: destination,
		Target:      target,
	}
}
