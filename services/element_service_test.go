package services

import (
	"board-lab/domain"
	"board-lab/errors"
	"board-lab/mocks"
	"board-lab/sink"
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type serviceFixture struct {
	svc   *ElementService
	queue *sink.ElementQueue
	lanes *sink.Lanes
}

func newElementService(repo *mocks.MockIElementRepository) serviceFixture {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	lanes := sink.NewLanes(log)
	queue := sink.NewElementQueue(repo, log, time.Hour, time.Second, sink.WithLanes(lanes))
	return serviceFixture{svc: NewElementService(queue, repo, log, time.Second), queue: queue, lanes: lanes}
}

// settle waits for the storage work queued so far.
func (f serviceFixture) settle(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, f.lanes.Wait(ctx))
}

func TestElementService_Upsert(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	t.Run("creation is written through", func(t *testing.T) {
		req := require.New(t)
		repo := mocks.NewMockIElementRepository(ctrl)
		f := newElementService(repo)
		element := domain.Element{"element_id": "e1", "room": "R", "player": "alice"}

		repo.EXPECT().Put(gomock.Any(), element).Return(nil).Times(1)

		f.svc.Upsert(ctx, element, true)
		f.settle(t)
		req.Equal(0, f.queue.Len())
	})

	t.Run("creation fault is swallowed", func(t *testing.T) {
		repo := mocks.NewMockIElementRepository(ctrl)
		f := newElementService(repo)

		repo.EXPECT().Put(gomock.Any(), gomock.Any()).Return(fmt.Errorf("%w: disk full", errors.ErrStorage))

		f.svc.Upsert(ctx, domain.Element{"element_id": "e1", "room": "R", "player": "alice"}, true)
		f.settle(t)
	})

	t.Run("update is buffered", func(t *testing.T) {
		req := require.New(t)
		repo := mocks.NewMockIElementRepository(ctrl)
		f := newElementService(repo)

		f.svc.Upsert(ctx, domain.Element{"element_id": "e1", "room": "R", "x": 4}, false)

		fields, deleted, ok := f.queue.Get("e1")
		req.True(ok)
		req.False(deleted)
		req.Equal(4, fields["x"])
	})
}

func TestElementService_Delete(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mocks.NewMockIElementRepository(ctrl)
	f := newElementService(repo)
	ctx := context.Background()

	// Given a buffered update
	f.svc.Upsert(ctx, domain.Element{"element_id": "e1", "room": "R", "x": 4}, false)

	// When deleting, the tombstone is there before storage is touched
	var deletedDuringStorage bool
	repo.EXPECT().Delete(gomock.Any(), "e1", "R").DoAndReturn(func(context.Context, string, string) error {
		// an update racing the storage delete is ignored
		f.svc.Upsert(ctx, domain.Element{"element_id": "e1", "room": "R", "x": 5}, false)
		_, deletedDuringStorage, _ = f.queue.Get("e1")
		return nil
	})
	f.svc.Delete(ctx, "e1", "R")
	_, deleted, _ := f.queue.Get("e1")
	req.True(deleted)

	// Then nothing is left buffered
	f.settle(t)
	req.True(deletedDuringStorage)
	req.False(f.queue.Exists("e1"))
}

func TestElementService_Storage_Work_Keeps_Call_Order(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mocks.NewMockIElementRepository(ctrl)
	f := newElementService(repo)
	ctx := context.Background()
	element := domain.Element{"element_id": "e1", "room": "R", "player": "alice"}

	// Given a slow creation
	release := make(chan struct{})
	var calls []string
	repo.EXPECT().Put(gomock.Any(), element).DoAndReturn(func(context.Context, domain.Element) error {
		<-release
		calls = append(calls, "put")
		return nil
	})
	repo.EXPECT().Delete(gomock.Any(), "e1", "R").DoAndReturn(func(context.Context, string, string) error {
		calls = append(calls, "delete")
		return nil
	})

	// When the element is deleted before the creation reached storage
	f.svc.Upsert(ctx, element, true)
	f.svc.Delete(ctx, "e1", "R")
	close(release)

	// Then storage sees the creation first
	f.settle(t)
	req.Equal([]string{"put", "delete"}, calls)
}

func TestElementService_RoomElements(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mocks.NewMockIElementRepository(ctrl)
	f := newElementService(repo)
	svc, queue := f.svc, f.queue
	ctx := context.Background()

	// Given three stored elements, one with a buffered update and one being deleted
	repo.EXPECT().Scan(gomock.Any(), "R").Return([]domain.Element{
		{"element_id": "e1", "room": "R", "player": "alice", "x": 1.0, "type": "rect"},
		{"element_id": "e2", "room": "R", "player": "bob"},
		{"element_id": "e3", "room": "R", "player": "bob"},
	}, nil)
	svc.Upsert(ctx, domain.Element{"element_id": "e1", "room": "R", "x": 7}, false)
	queue.Delete("e3")

	elements, err := svc.RoomElements(ctx, "R")

	// Then buffered fields win and deleted elements are hidden
	req.NoError(err)
	req.Equal([]domain.Element{
		{"element_id": "e1", "room": "R", "player": "alice", "x": 7, "type": "rect"},
		{"element_id": "e2", "room": "R", "player": "bob"},
	}, elements)
}

func TestElementService_RoomElements_Storage_Fault(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mocks.NewMockIElementRepository(ctrl)
	f := newElementService(repo)

	repo.EXPECT().Scan(gomock.Any(), "R").Return(nil, errors.ErrStorage)

	_, err := f.svc.RoomElements(context.Background(), "R")
	req.ErrorIs(err, errors.ErrStorage)
}
