package systems

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
)

func TestNewJobSystemValidation(t *testing.T) {
	if _, err := NewJobSystem(0, 1); !errors.Is(err, ErrNoWorkers) {
		t.Errorf("expected ErrNoWorkers, got %v", err)
	}
	if _, err := NewJobSystem(1, -1); !errors.Is(err, ErrNegativeChannelSize) {
		t.Errorf("expected ErrNegativeChannelSize, got %v", err)
	}
}

func TestJobSystemRunsCallbacks(t *testing.T) {
	js, err := NewJobSystem(2, 1)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	var completed, failed atomic.Int32
	boom := errors.New("boom")

	// more jobs than queue slots, so some go through the overflow path
	for i := 0; i < 20; i++ {
		wg.Add(1)
		shouldFail := i%2 == 0
		err := js.Submit(metadata.JobTask{
			JobType: metadata.JOB_TYPE_GENERAL,
			Name:    "job",
			OnStart: func(ctx context.Context) (interface{}, error) {
				if shouldFail {
					return nil, boom
				}
				return 42, nil
			},
			OnComplete: func(result interface{}) {
				if result.(int) == 42 {
					completed.Add(1)
				}
				wg.Done()
			},
			OnFailure: func(err error) {
				if errors.Is(err, boom) {
					failed.Add(1)
				}
				wg.Done()
			},
		})
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}

	wg.Wait()
	if completed.Load() != 10 || failed.Load() != 10 {
		t.Errorf("expected 10 completions and 10 failures, got %d and %d", completed.Load(), failed.Load())
	}
	if err := js.Shutdown(); err != nil {
		t.Fatal(err)
	}
}

func TestJobSystemSubmitErrors(t *testing.T) {
	js, err := NewJobSystem(1, 4)
	if err != nil {
		t.Fatal(err)
	}

	if err := js.Submit(metadata.JobTask{Name: "empty"}); !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for a job without OnStart, got %v", err)
	}

	if err := js.Shutdown(); err != nil {
		t.Fatal(err)
	}
	// a second shutdown is a no-op
	if err := js.Shutdown(); err != nil {
		t.Fatal(err)
	}

	err = js.Submit(metadata.JobTask{
		Name:    "late",
		OnStart: func(ctx context.Context) (interface{}, error) { return nil, nil },
	})
	if !errors.Is(err, ErrJobSystemClosed) {
		t.Errorf("expected ErrJobSystemClosed, got %v", err)
	}
}

func TestJobSystemShutdownCancelsContext(t *testing.T) {
	js, err := NewJobSystem(1, 1)
	if err != nil {
		t.Fatal(err)
	}

	started := make(chan struct{})
	var sawCancel atomic.Bool
	js.Submit(metadata.JobTask{
		Name: "long",
		OnStart: func(ctx context.Context) (interface{}, error) {
			close(started)
			select {
			case <-ctx.Done():
				sawCancel.Store(true)
				return nil, ctx.Err()
			case <-time.After(5 * time.Second):
				return nil, nil
			}
		},
	})

	<-started
	if err := js.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if !sawCancel.Load() {
		t.Error("running job should observe the cancelled context")
	}
}
