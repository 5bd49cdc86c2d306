// Package broker implements Component F, the Broker Publisher
// (SPEC_FULL §4.F): a non-blocking, asynchronously-acked send to the
// message broker, with per-topic delivery accounting and a flush-on-drain
// operation the Correlation Orchestrator calls during Draining.
package broker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// AckFuture resolves once the broker has acked (or permanently failed) the
// record it was returned for.
type AckFuture struct {
	done chan struct{}
	err  error
}

func newAckFuture() *AckFuture {
	return &AckFuture{done: make(chan struct{})}
}

func (f *AckFuture) resolve(err error) {
	f.err = err
	close(f.done)
}

// Wait blocks until the future resolves or ctx is done.
func (f *AckFuture) Wait(ctx context.Context) error {
	select {
	case <-f.done:
		return f.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stats tracks the three delivery counters spec.md §4.F requires.
type Stats struct {
	Sent   int64
	Acked  int64
	Failed int64
}

type statsCounter struct {
	sent, acked, failed atomic.Int64
}

func (s *statsCounter) snapshot() Stats {
	return Stats{Sent: s.sent.Load(), Acked: s.acked.Load(), Failed: s.failed.Load()}
}

// Publisher is the interface the orchestrator drives; KafkaPublisher and
// DryRunPublisher both implement it so dry-run mode (spec.md §6) needs no
// network connection.
type Publisher interface {
	// Publish sends value under key to topic. It does not block on the
	// broker ack; the returned AckFuture resolves later. A non-nil error
	// from Publish itself means the send could not even be queued
	// (e.g. *model.QueueFull, returned by KafkaPublisher only after its
	// own backoff retries are exhausted).
	Publish(ctx context.Context, topic, key string, value []byte) (*AckFuture, error)

	// StatsFor returns the delivery counters for topic.
	StatsFor(topic string) Stats

	// Flush blocks until all in-flight records are acked or timeout
	// expires, returning the residual in-flight count.
	Flush(timeout time.Duration) int

	// Close implies Flush with an internal default deadline.
	Close() error
}

// perTopicStats is embedded by both Publisher implementations.
type perTopicStats struct {
	mu     sync.Mutex
	topics map[string]*statsCounter
}

func newPerTopicStats() *perTopicStats {
	return &perTopicStats{topics: make(map[string]*statsCounter)}
}

func (p *perTopicStats) counter(topic string) *statsCounter {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.topics[topic]
	if !ok {
		c = &statsCounter{}
		p.topics[topic] = c
	}
	return c
}

func (p *perTopicStats) statsFor(topic string) Stats {
	return p.counter(topic).snapshot()
}
