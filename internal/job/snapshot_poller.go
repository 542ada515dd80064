package job

import (
	"context"
	"log"
	"time"

	"github.com/bsujalnaik/GoogleHackathon/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

// SnapshotPoller periodically values the portfolio so history accrues
// even when no client is hitting the API.
type SnapshotPoller struct {
	tracer   trace.Tracer
	valuer   PortfolioValuer
	interval time.Duration
}

type PortfolioValuer interface {
	Valuation(ctx context.Context) (domain.Valuation, error)
	Holdings() []domain.Holding
}

func NewSnapshotPoller(tracer trace.Tracer, valuer PortfolioValuer, intervalSecs int) *SnapshotPoller {
	if intervalSecs <= 0 {
		intervalSecs = 900
	}
	return &SnapshotPoller{
		tracer:   tracer,
		valuer:   valuer,
		interval: time.Duration(intervalSecs) * time.Second,
	}
}

// Start blocks until ctx is cancelled, taking one snapshot per interval.
func (p *SnapshotPoller) Start(ctx context.Context) {
	if p.valuer == nil {
		log.Println("Snapshot poller disabled: no portfolio service")
		<-ctx.Done()
		return
	}

	log.Println("Snapshot poller starting...")
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Snapshot poller stopped")
			return
		case <-ticker.C:
			p.snapshot(ctx)
		}
	}
}

func (p *SnapshotPoller) snapshot(ctx context.Context) {
	ctx, span := p.tracer.Start(ctx, "job.snapshot")
	defer span.End()

	// an empty portfolio has nothing worth recording
	if len(p.valuer.Holdings()) == 0 {
		return
	}
	if _, err := p.valuer.Valuation(ctx); err != nil {
		log.Printf("snapshot valuation error: %v", err)
	}
}
