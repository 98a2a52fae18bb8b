package services

import (
	"board-lab/contract"
	"board-lab/domain"
	"board-lab/sink"
	"context"
	"log/slog"
	"time"
)

// ElementService is the persistence side of element handlers.
// Creations are written through, updates go through the debounce queue.
// Calls never block on storage: the part that decides ordering happens
// in the caller's goroutine, storage I/O runs on the element's lane.
type ElementService struct {
	queue      *sink.ElementQueue
	repository contract.IElementRepository
	log        *slog.Logger
	timeout    time.Duration
}

func NewElementService(
	queue *sink.ElementQueue,
	repository contract.IElementRepository,
	log *slog.Logger,
	timeout time.Duration,
) *ElementService {
	return &ElementService{queue: queue, repository: repository, log: log, timeout: timeout}
}

func (s *ElementService) Upsert(ctx context.Context, element domain.Element, create bool) {
	if !create {
		s.queue.Submit(ctx, element)
		return
	}
	ctx = context.WithoutCancel(ctx)
	s.queue.Serialize(element.ID(), func() {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		if err := s.repository.Put(ctx, element); err != nil {
			s.log.Error("Element not created", "element_id", element.ID(), "room", element.Room(), "error", err)
		}
	})
}

// Delete installs the tombstone right away, so later updates are ignored,
// then deletes from storage after the work already queued for the element.
func (s *ElementService) Delete(ctx context.Context, elementID, room string) {
	s.queue.Delete(elementID)
	ctx = context.WithoutCancel(ctx)
	s.queue.Serialize(elementID, func() {
		defer s.queue.DropTombstone(elementID)

		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		if err := s.repository.Delete(ctx, elementID, room); err != nil {
			s.log.Error("Element not deleted", "element_id", elementID, "room", room, "error", err)
		}
	})
}

// RoomElements returns the stored elements of a room with their buffered
// updates applied. Elements being deleted are left out.
func (s *ElementService) RoomElements(ctx context.Context, room string) ([]domain.Element, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	stored, err := s.repository.Scan(ctx, room)
	if err != nil {
		return nil, err
	}
	elements := make([]domain.Element, 0, len(stored))
	for _, element := range stored {
		fields, deleted, ok := s.queue.Get(element.ID())
		switch {
		case ok && deleted:
			continue
		case ok:
			elements = append(elements, domain.Merge(element, fields))
		default:
			elements = append(elements, element)
		}
	}
	return elements, nil
}
