//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"board-lab/domain"
	"context"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// IElementRepository is the durable storage engine for board elements.
// Get reports false when the element was never stored.
type IElementRepository interface {
	Get(ctx context.Context, elementID, room string) (domain.Element, bool, error)
	Put(ctx context.Context, element domain.Element) error
	Delete(ctx context.Context, elementID, room string) error
	Scan(ctx context.Context, room string) ([]domain.Element, error)
}

// IElementService is what handlers use to persist elements.
// Upsert and Delete are best effort: faults are logged, never returned.
// They return without waiting for storage, and calls made in order for one
// element reach storage in that order.
type IElementService interface {
	Upsert(ctx context.Context, element domain.Element, create bool)
	Delete(ctx context.Context, elementID, room string)
	RoomElements(ctx context.Context, room string) ([]domain.Element, error)
}
