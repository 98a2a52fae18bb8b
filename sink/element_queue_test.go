package sink_test

import (
	"board-lab/domain"
	"board-lab/mocks"
	"board-lab/sink"
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const saveDelay = 40 * time.Millisecond

func fixedJitter() float64 { return 0.25 }

func newQueue(repo *mocks.MockIElementRepository) *sink.ElementQueue {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return sink.NewElementQueue(repo, logger, saveDelay, time.Second, sink.WithJitter(fixedJitter))
}

func TestElementQueue_Coalesces_Burst_Into_One_Write(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mocks.NewMockIElementRepository(ctrl)
	q := newQueue(repo)
	ctx := context.Background()

	// Given a never stored element
	repo.EXPECT().Get(gomock.Any(), "e1", "R").Return(nil, false, nil).Times(1)
	// Then a single write carries the last value
	repo.EXPECT().Put(gomock.Any(), domain.Element{
		"element_id": "e1", "room": "R", "player": "alice", "x": 2,
	}).Return(nil).Times(1)

	// When two updates land within the quiet period
	q.Submit(ctx, domain.Element{"element_id": "e1", "room": "R", "player": "alice", "x": 1})
	time.Sleep(saveDelay / 2)
	q.Submit(ctx, domain.Element{"element_id": "e1", "room": "R", "x": 2})

	req.Eventually(func() bool { return q.Len() == 0 }, time.Second, 5*time.Millisecond)
	// Leave room for the second timer, which must find nothing to do
	time.Sleep(3 * saveDelay)
}

func TestElementQueue_Merges_On_Top_Of_Stored_Record(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mocks.NewMockIElementRepository(ctrl)
	q := newQueue(repo)

	repo.EXPECT().Get(gomock.Any(), "e1", "R").
		Return(domain.Element{"element_id": "e1", "room": "R", "player": "alice", "type": "rect", "x": 0}, true, nil)
	repo.EXPECT().Put(gomock.Any(), domain.Element{
		"element_id": "e1", "room": "R", "player": "alice", "type": "rect", "x": 5,
	}).Return(nil)

	q.Submit(context.Background(), domain.Element{"element_id": "e1", "room": "R", "x": 5})

	req.Eventually(func() bool { return q.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestElementQueue_Tombstone_Wins(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	// No storage call is expected at all
	repo := mocks.NewMockIElementRepository(ctrl)
	q := newQueue(repo)
	ctx := context.Background()

	// Given a pending write
	q.Submit(ctx, domain.Element{"element_id": "e1", "room": "R", "player": "alice"})
	// When the element is deleted then updated again
	q.Delete("e1")
	q.Submit(ctx, domain.Element{"element_id": "e1", "room": "R", "player": "alice", "x": 9})

	// Then the update is ignored
	fields, deleted, ok := q.Get("e1")
	req.True(ok)
	req.True(deleted)
	req.Nil(fields)

	// And no flush writes it back
	time.Sleep(3 * saveDelay)
	req.True(q.Exists("e1"))

	// Once cleared, the element accepts updates again
	q.DropTombstone("e1")
	req.False(q.Exists("e1"))
}

func TestElementQueue_DropTombstone_Keeps_Buffered_Writes(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mocks.NewMockIElementRepository(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	q := sink.NewElementQueue(repo, logger, time.Hour, time.Second)

	q.Submit(context.Background(), domain.Element{"element_id": "e1", "room": "R", "player": "alice"})
	q.DropTombstone("e1")

	fields, deleted, ok := q.Get("e1")
	req.True(ok)
	req.False(deleted)
	req.Equal("alice", fields["player"])
}

func TestElementQueue_Drops_Element_Without_Player(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mocks.NewMockIElementRepository(ctrl)
	q := newQueue(repo)

	repo.EXPECT().Get(gomock.Any(), "e1", "R").Return(nil, false, nil)
	repo.EXPECT().Put(gomock.Any(), gomock.Any()).Times(0)

	q.Submit(context.Background(), domain.Element{"element_id": "e1", "room": "R", "x": 1})

	req.Eventually(func() bool { return q.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestElementQueue_Storage_Faults_Still_Clean_Up(t *testing.T) {
	tests := []struct {
		name   string
		expect func(repo *mocks.MockIElementRepository)
	}{
		{
			name: "read fails",
			expect: func(repo *mocks.MockIElementRepository) {
				repo.EXPECT().Get(gomock.Any(), "e1", "R").Return(nil, false, fmt.Errorf("disk gone"))
				repo.EXPECT().Put(gomock.Any(), gomock.Any()).Times(0)
			},
		},
		{
			name: "write fails",
			expect: func(repo *mocks.MockIElementRepository) {
				repo.EXPECT().Get(gomock.Any(), "e1", "R").Return(nil, false, nil)
				repo.EXPECT().Put(gomock.Any(), gomock.Any()).Return(fmt.Errorf("disk full"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			repo := mocks.NewMockIElementRepository(ctrl)
			tt.expect(repo)
			q := newQueue(repo)

			q.Submit(context.Background(), domain.Element{"element_id": "e1", "room": "R", "player": "alice"})

			req.Eventually(func() bool { return q.Len() == 0 }, time.Second, 5*time.Millisecond)
		})
	}
}

func TestElementQueue_Close_Flushes_Immediately(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mocks.NewMockIElementRepository(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	q := sink.NewElementQueue(repo, logger, time.Hour, time.Second)

	repo.EXPECT().Get(gomock.Any(), "e1", "R").Return(nil, false, nil)
	repo.EXPECT().Put(gomock.Any(), domain.Element{"element_id": "e1", "room": "R", "player": "alice"}).Return(nil)

	// Given a write far from its flush
	q.Submit(context.Background(), domain.Element{"element_id": "e1", "room": "R", "player": "alice"})

	// When closing
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	req.NoError(q.Close(ctx))

	// Then it is written and later updates are dropped
	req.Equal(0, q.Len())
	q.Submit(context.Background(), domain.Element{"element_id": "e2", "room": "R", "player": "alice"})
	req.False(q.Exists("e2"))
}
