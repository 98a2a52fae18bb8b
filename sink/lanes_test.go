package sink_test

import (
	"board-lab/sink"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func quietLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLanes_Keep_Order_Per_Key(t *testing.T) {
	req := require.New(t)
	lanes := sink.NewLanes(quietLog())
	var mu sync.Mutex
	got := map[string][]int{}

	// Given tasks for two keys, the first one slow
	for i := 0; i < 50; i++ {
		for _, key := range []string{"a", "b"} {
			lanes.Go(key, func() {
				if i == 0 {
					time.Sleep(10 * time.Millisecond)
				}
				mu.Lock()
				got[key] = append(got[key], i)
				mu.Unlock()
			})
		}
	}

	// Then each key ran its tasks in submission order
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	req.NoError(lanes.Wait(ctx))
	for _, key := range []string{"a", "b"} {
		req.Len(got[key], 50)
		for i, v := range got[key] {
			req.Equal(i, v, "key %s", key)
		}
	}
}

func TestLanes_Panicking_Task_Does_Not_Block_Its_Key(t *testing.T) {
	req := require.New(t)
	lanes := sink.NewLanes(quietLog())
	ran := make(chan struct{})

	lanes.Go("a", func() { panic(fmt.Errorf("boom")) })
	lanes.Go("a", func() { close(ran) })

	req.Eventually(func() bool {
		select {
		case <-ran:
			return true
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}

func TestLanes_Wait(t *testing.T) {
	req := require.New(t)
	lanes := sink.NewLanes(quietLog())

	// Idle lanes return at once
	req.NoError(lanes.Wait(context.Background()))

	// A blocked lane outlives a short deadline
	release := make(chan struct{})
	lanes.Go("a", func() { <-release })
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	req.ErrorIs(lanes.Wait(ctx), context.DeadlineExceeded)

	close(release)
	req.NoError(lanes.Wait(context.Background()))
}
