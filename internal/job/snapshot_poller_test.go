package job

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bsujalnaik/GoogleHackathon/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

type stubValuer struct {
	mu       sync.Mutex
	calls    int
	holdings []domain.Holding
}

func (s *stubValuer) Valuation(ctx context.Context) (domain.Valuation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return domain.Valuation{}, nil
}

func (s *stubValuer) Holdings() []domain.Holding {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.holdings
}

func (s *stubValuer) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestSnapshotPollerTakesSnapshots(t *testing.T) {
	t.Parallel()

	tracer := trace.NewNoopTracerProvider().Tracer("test")
	stub := &stubValuer{holdings: []domain.Holding{{Ticker: "TCS.NS", Quantity: 1, AverageCost: 1}}}
	poller := NewSnapshotPoller(tracer, stub, 0)
	poller.interval = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	go poller.Start(ctx)

	eventually(t, func() bool { return stub.callCount() > 0 })
	cancel()
}

func TestSnapshotPollerSkipsEmptyPortfolio(t *testing.T) {
	tracer := trace.NewNoopTracerProvider().Tracer("test")
	stub := &stubValuer{}
	poller := NewSnapshotPoller(tracer, stub, 900)

	poller.snapshot(context.Background())

	if stub.callCount() != 0 {
		t.Fatalf("expected no valuation for an empty portfolio, got %d calls", stub.callCount())
	}
}

func TestSnapshotPollerDefaultInterval(t *testing.T) {
	poller := NewSnapshotPoller(trace.NewNoopTracerProvider().Tracer("test"), nil, -10)
	if poller.interval != 900*time.Second {
		t.Fatalf("expected 900s default, got %s", poller.interval)
	}
}

func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(200 * time.Millisecond)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met")
}
