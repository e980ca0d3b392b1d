package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/veicsys/veicsys/internal/core/ports"
)

type recordingService struct {
	mu    sync.Mutex
	seen  map[string][]string
	fails bool
}

func (s *recordingService) Process(_ context.Context, e ports.ProcessEventInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seen == nil {
		s.seen = make(map[string][]string)
	}
	s.seen[e.Protocol] = append(s.seen[e.Protocol], e.Status)
	if s.fails {
		return errors.New("boom")
	}
	return nil
}

func TestDispatcher_PreservesPerProcessOrder(t *testing.T) {
	svc := &recordingService{}
	d := NewDispatcher(4, svc, zerolog.Nop())
	d.Start(context.Background())

	statuses := []string{"em_analise", "em_andamento", "concluido"}
	var batch []ports.ProcessEventInput
	for i := 0; i < 20; i++ {
		for _, st := range statuses {
			batch = append(batch, ports.ProcessEventInput{Protocol: fmt.Sprintf("VS-%08X", i), Status: st})
		}
	}
	if err := d.EnqueueBatch(batch); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	d.Stop()

	if len(svc.seen) != 20 {
		t.Fatalf("expected 20 protocols processed, got %d", len(svc.seen))
	}
	for protocol, got := range svc.seen {
		if fmt.Sprint(got) != fmt.Sprint(statuses) {
			t.Errorf("%s: events out of order: %v", protocol, got)
		}
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(0, &recordingService{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d default workers, got %d", defaultWorkers, len(d.workers))
	}
	first := d.shardIndex("VS-0000ABCD")
	for i := 0; i < 5; i++ {
		if got := d.shardIndex("VS-0000ABCD"); got != first {
			t.Fatalf("shard changed: %d vs %d", got, first)
		}
	}
}

func TestDispatcher_ErrorsDoNotStopWorkers(t *testing.T) {
	svc := &recordingService{fails: true}
	d := NewDispatcher(1, svc, zerolog.Nop())
	d.Start(context.Background())

	_ = d.Enqueue(ports.ProcessEventInput{Protocol: "VS-1", Status: "em_analise"})
	_ = d.Enqueue(ports.ProcessEventInput{Protocol: "VS-2", Status: "em_analise"})
	d.Stop()

	if len(svc.seen) != 2 {
		t.Fatalf("expected both events attempted, got %v", svc.seen)
	}
}

func TestDispatcher_EnqueueAfterStop(t *testing.T) {
	d := NewDispatcher(2, &recordingService{}, zerolog.Nop())
	d.Start(context.Background())
	d.Stop()
	d.Stop()

	if err := d.Enqueue(ports.ProcessEventInput{Protocol: "VS-1"}); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}

func TestDispatcher_CancelStopsWorkers(t *testing.T) {
	svc := &recordingService{}
	d := NewDispatcher(2, svc, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	cancel()

	exited := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(exited)
	}()
	select {
	case <-exited:
	case <-time.After(time.Second):
		t.Fatal("workers still running after cancellation")
	}

	// Far more than one worker buffer: none of these may block.
	for i := 0; i < 2*channelBuffer+1; i++ {
		if err := d.Enqueue(ports.ProcessEventInput{Protocol: "VS-1"}); !errors.Is(err, ErrStopped) {
			t.Fatalf("enqueue %d: expected ErrStopped, got %v", i, err)
		}
	}
	d.Stop()
}
