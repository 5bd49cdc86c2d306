package broker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"go-corrgen/internal/model"
)

// pending correlates an in-flight *kafka.Message with the AckFuture and
// topic the delivery-report goroutine must resolve/account once
// producer.Events() yields the matching kafka.Message.
type pending struct {
	topic  string
	future *AckFuture
}

// KafkaPublisher implements Publisher over a real *kafka.Producer. It
// retries ErrQueueFull internally using the bounded exponential backoff
// from spec.md §7 before surfacing *model.QueueFull to the caller, and
// drains delivery reports on a background goroutine so Publish never
// blocks on an ack.
//
// Grounded on the teacher's internal/pipeline/retry.go for the
// backoff-and-retry shape, generalized from job-level retry to a
// single-send retry loop, and on the confluent-kafka-go producer example
// for the Events() drain pattern.
type KafkaPublisher struct {
	producer *kafka.Producer
	stats    *perTopicStats
	backoff  backoff

	mu      sync.Mutex
	waiting map[*kafka.Message]*pending

	done chan struct{}
}

// NewKafkaPublisher creates the underlying producer from conf and starts
// the delivery-report drain goroutine.
func NewKafkaPublisher(conf *kafka.ConfigMap) (*KafkaPublisher, error) {
	producer, err := kafka.NewProducer(conf)
	if err != nil {
		return nil, err
	}
	p := &KafkaPublisher{
		producer: producer,
		stats:    newPerTopicStats(),
		backoff:  defaultBackoff(),
		waiting:  make(map[*kafka.Message]*pending),
		done:     make(chan struct{}),
	}
	go p.drainEvents()
	return p, nil
}

func (p *KafkaPublisher) drainEvents() {
	for e := range p.producer.Events() {
		msg, ok := e.(*kafka.Message)
		if !ok {
			continue
		}

		p.mu.Lock()
		pend, found := p.waiting[msg]
		if found {
			delete(p.waiting, msg)
		}
		p.mu.Unlock()
		if !found {
			continue
		}

		counter := p.stats.counter(pend.topic)
		if msg.TopicPartition.Error != nil {
			counter.failed.Add(1)
			pend.future.resolve(&model.DeliveryError{Topic: pend.topic, Err: msg.TopicPartition.Error})
			continue
		}
		counter.acked.Add(1)
		pend.future.resolve(nil)
	}
	close(p.done)
}

// Publish sends value under key to topic, retrying ErrQueueFull internally
// with a bounded exponential backoff (spec.md §7) before giving up and
// returning *model.QueueFull for the orchestrator to count as a failure.
func (p *KafkaPublisher) Publish(ctx context.Context, topic, key string, value []byte) (*AckFuture, error) {
	var keyBytes []byte
	if key != "" {
		keyBytes = []byte(key)
	}

	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            keyBytes,
		Value:          value,
	}

	future := newAckFuture()

	for attempt := 0; ; attempt++ {
		p.mu.Lock()
		p.waiting[msg] = &pending{topic: topic, future: future}
		p.mu.Unlock()

		err := p.producer.Produce(msg, nil)
		if err == nil {
			p.stats.counter(topic).sent.Add(1)
			return future, nil
		}

		p.mu.Lock()
		delete(p.waiting, msg)
		p.mu.Unlock()

		var kerr kafka.Error
		isQueueFull := errors.As(err, &kerr) && kerr.Code() == kafka.ErrQueueFull
		if !isQueueFull || attempt >= p.backoff.maxRetries {
			p.stats.counter(topic).failed.Add(1)
			return nil, &model.QueueFull{Topic: topic}
		}

		select {
		case <-time.After(p.backoff.delay(attempt)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (p *KafkaPublisher) StatsFor(topic string) Stats {
	return p.stats.statsFor(topic)
}

// Flush blocks until the producer's internal queue drains or timeout
// expires, returning the residual in-flight message count.
func (p *KafkaPublisher) Flush(timeout time.Duration) int {
	return p.producer.Flush(int(timeout / time.Millisecond))
}

func (p *KafkaPublisher) Close() error {
	residual := p.Flush(10 * time.Second)
	p.producer.Close()
	<-p.done
	if residual > 0 {
		return &model.DrainTimeout{Residual: residual}
	}
	return nil
}
