package domain

import (
	"maps"

	"github.com/samber/lo"
)

const (
	FieldElementID   = "element_id"
	FieldRoom        = "room"
	FieldPlayer      = "player"
	FieldType        = "type"
	FieldCoordinates = "coordinates"
	FieldStyles      = "styles"
)

// Element is a board entity with an open schema.
// Unknown keys are kept through every merge and storage round-trip.
type Element map[string]any

func (e Element) ID() string {
	id, _ := e[FieldElementID].(string)
	return id
}

func (e Element) Room() string {
	room, _ := e[FieldRoom].(string)
	return room
}

// Player returns the owning player, false when the element has none.
func (e Element) Player() (string, bool) {
	player, ok := e[FieldPlayer].(string)
	return player, ok && player != ""
}

func (e Element) Clone() Element {
	if e == nil {
		return nil
	}
	return maps.Clone(e)
}

// Merge shallow-merges layers into a new element, later layers winning per field.
func Merge(layers ...Element) Element {
	raw := lo.Map(layers, func(layer Element, _ int) map[string]any {
		return layer
	})
	return lo.Assign(raw...)
}
