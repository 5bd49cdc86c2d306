package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"
)

// DryRunPublisher implements Publisher without a broker connection, for
// dry_run mode (spec.md §6: "no network connection is opened; bytes are
// written to the configured writer and immediately acked"). Grounded on
// the teacher's pkg/utils/output_manager.go, which writes pipeline output
// records to a configured destination rather than a broker.
type DryRunPublisher struct {
	w     io.Writer
	mu    sync.Mutex
	stats *perTopicStats
}

// NewDryRunPublisher writes each published record as a line-delimited JSON
// envelope to w.
func NewDryRunPublisher(w io.Writer) *DryRunPublisher {
	return &DryRunPublisher{w: w, stats: newPerTopicStats()}
}

type dryRunRecord struct {
	Topic string `json:"topic"`
	Key   string `json:"key,omitempty"`
	Value []byte `json:"value"`
}

func (p *DryRunPublisher) Publish(ctx context.Context, topic, key string, value []byte) (*AckFuture, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	counter := p.stats.counter(topic)
	counter.sent.Add(1)

	p.mu.Lock()
	line, err := json.Marshal(dryRunRecord{Topic: topic, Key: key, Value: value})
	if err == nil {
		_, err = fmt.Fprintln(p.w, string(line))
	}
	p.mu.Unlock()

	future := newAckFuture()
	if err != nil {
		counter.failed.Add(1)
		future.resolve(err)
		return future, nil
	}
	counter.acked.Add(1)
	future.resolve(nil)
	return future, nil
}

func (p *DryRunPublisher) StatsFor(topic string) Stats {
	return p.stats.statsFor(topic)
}

// Flush is a no-op: dry-run publishes resolve synchronously, so nothing is
// ever in-flight.
func (p *DryRunPublisher) Flush(timeout time.Duration) int {
	return 0
}

func (p *DryRunPublisher) Close() error {
	return nil
}
