package handlers

import (
	"board-lab/domain"
	"board-lab/errors"
	"board-lab/runtime"
	"context"
	"maps"

	"github.com/google/uuid"
)

const missingElementIDReply = "No element_id parameter provided"

// UpsertElement validates an element, broadcasts it to the room and
// hands it to persistence. A missing element_id means creation.
type UpsertElement struct{ playerBase }

func (h UpsertElement) Handle(ctx context.Context) error {
	data := domain.Element(maps.Clone(h.msg.Data))
	if data == nil {
		data = domain.Element{}
	}
	data[domain.FieldRoom] = h.conn.Room()

	create := false
	if data[domain.FieldElementID] == nil {
		create = true
		data[domain.FieldElementID] = uuid.NewString()
		if data[domain.FieldPlayer] == nil {
			data[domain.FieldPlayer] = h.conn.Player()
		}
	}

	element, err := domain.ValidateElement(data)
	var verrs errors.ValidationErrors
	if errors.As(err, &verrs) {
		h.Log.Debug("Invalid element", "room", h.conn.Room(), "player", h.conn.Player(), "error", err)
		return h.sendError(verrs)
	}
	if err != nil {
		return err
	}

	if err := h.sendToPlayer(h.createMessage(h.msg.Event, element), runtime.Delivery{}); err != nil {
		return err
	}
	h.Elements.Upsert(ctx, element, create)
	return nil
}

// DeleteElement broadcasts the deletion then removes the element from persistence.
type DeleteElement struct{ playerBase }

func (h DeleteElement) Handle(ctx context.Context) error {
	if h.msg.Data[domain.FieldElementID] == nil {
		h.Log.Debug(errors.ErrMissingElementID.Error(), "room", h.conn.Room(), "player", h.conn.Player())
		return h.sendError(missingElementIDReply)
	}
	elementID, err := domain.ParseElementRef(h.msg.Data)
	var verrs errors.ValidationErrors
	if errors.As(err, &verrs) {
		h.Log.Debug("Invalid element reference", "room", h.conn.Room(), "player", h.conn.Player(), "error", err)
		return h.sendError(verrs)
	}
	if err != nil {
		return err
	}

	msg := h.createMessage(h.msg.Event, map[string]any{domain.FieldElementID: elementID})
	if err := h.sendToPlayer(msg, runtime.Delivery{}); err != nil {
		return err
	}
	h.Elements.Delete(ctx, elementID, h.conn.Room())
	return nil
}
