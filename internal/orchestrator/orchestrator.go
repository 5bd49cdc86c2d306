// Package orchestrator implements Component G, the Correlation
// Orchestrator (SPEC_FULL §4.G): the Init → BulkLoadMasters →
// StreamTransactional → Draining → Done state machine that drives every
// other component. Stage sequencing is grounded on the teacher's
// internal/pipeline/pipeline.go (one goroutine per stage/entity, a shared
// sync.WaitGroup, status transitions persisted as the run progresses),
// generalized from a fixed five-stage ETL pipeline to a variable number of
// per-entity generation tasks.
package orchestrator

import (
	"context"
	"sync"
	"time"

	"go-corrgen/internal/broker"
	"go-corrgen/internal/entitygen"
	"go-corrgen/internal/fieldgen"
	"go-corrgen/internal/genlog"
	"go-corrgen/internal/model"
	"go-corrgen/internal/ratelimit"
	"go-corrgen/internal/refpool"
	"go-corrgen/internal/runlog"
	"go-corrgen/internal/wireformat"
)

// Options configures one Generate run. Translating CLI flags or an API
// request body into Options is the excluded front end's job; cmd/corrgen
// provides a minimal flag-based example.
type Options struct {
	DryRun       bool
	DryRunWriter interface {
		Write(p []byte) (n int, err error)
	}
	Format       wireformat.Format
	Seed         uint64
	DrainTimeout time.Duration
	Registry     wireformat.RegistryClient // nil: a StaticRegistryClient in dry-run or without a registry URL, else a ConfluentRegistryClient
	Log          *runlog.Store             // nil disables run-history persistence

	// CleanTopics runs Component F's CleanTopics admin operation against
	// every declared topic before BulkLoadMasters begins (spec.md §6).
	// Ignored in dry-run mode, which never touches a real broker.
	CleanTopics       bool
	CleanTopicTimeout time.Duration
}

// EntitySummary is the per-entity row of a run's final report
// (spec.md §4.G Done: "per-entity sent/acked/failed").
type EntitySummary struct {
	Entity string
	Sent   int64
	Acked  int64
	Failed int64
}

// Summary is returned by Generate once Done is reached.
type Summary struct {
	Entities []EntitySummary
	Failed   bool
	// Residual is the number of records still in-flight when the drain
	// deadline was hit (spec.md §6 exit code 3), 0 on a clean drain.
	Residual int
}

// Validate runs only the Init phase (spec.md §6: "validate(config_path) →
// exit_code").
func Validate(cfg model.GeneratorConfig) error {
	registry := fieldgen.NewRegistry(0)
	return validate(cfg, registry)
}

// Generate runs the full state machine to completion or until ctx is
// cancelled.
func Generate(ctx context.Context, cfg model.GeneratorConfig, brokerCfg model.BrokerConfig, opts Options) (Summary, error) {
	log := genlog.New("orchestrator")

	registry := fieldgen.NewRegistry(opts.Seed)
	if err := validate(cfg, registry); err != nil {
		return Summary{}, err
	}

	track := make(map[string]bool)
	for name, e := range cfg.MasterData {
		track[name] = e.TrackRecent
	}
	for name, e := range cfg.TransactionalData {
		track[name] = e.TrackRecent
	}
	pool := refpool.NewPool(track)

	pub, err := newPublisher(brokerCfg, opts)
	if err != nil {
		return Summary{}, err
	}
	defer pub.Close()

	encoder, err := newEncoder(opts, brokerCfg)
	if err != nil {
		return Summary{}, err
	}

	if opts.Log != nil {
		opts.Log.RunStarted()
	}

	if opts.CleanTopics && !opts.DryRun {
		log.Info("cleaning declared topics")
		if err := cleanDeclaredTopics(cfg, brokerCfg, opts); err != nil {
			log.WithField("error", err).Error("clean_topics failed")
			return Summary{}, err
		}
	}

	log.Info("bulk-loading master entities")
	if err := bulkLoadMasters(ctx, cfg.MasterData, registry, pool, pub, encoder, opts.DrainTimeout); err != nil {
		return Summary{}, err
	}

	log.Info("streaming transactional entities")
	taskErrors := streamTransactional(ctx, cfg.TransactionalData, registry, pool, pub, encoder)
	for name, taskErr := range taskErrors {
		log.WithField("entity", name).WithField("error", taskErr).Error("transactional task failed")
	}

	log.Info("draining publisher")
	deadline := opts.DrainTimeout
	if deadline == 0 {
		deadline = 30 * time.Second
	}
	residual := pub.Flush(deadline)
	if residual > 0 {
		log.WithField("residual", residual).Warn("drain timeout with records still in-flight")
	}

	summary := buildSummary(cfg, pub, taskErrors)
	summary.Residual = residual
	if opts.Log != nil {
		opts.Log.RunFinished(summary.Failed)
	}
	if residual > 0 {
		return summary, &model.DrainTimeout{Residual: residual}
	}
	return summary, nil
}

// cleanDeclaredTopics implements spec.md §6's clean_topics flag: failures
// to clean are fatal, raised before BulkLoadMasters touches the pool or the
// broker.
func cleanDeclaredTopics(cfg model.GeneratorConfig, brokerCfg model.BrokerConfig, opts Options) error {
	seen := make(map[string]bool)
	var topics []string
	for _, e := range cfg.MasterData {
		if e.KafkaTopic != "" && !seen[e.KafkaTopic] {
			seen[e.KafkaTopic] = true
			topics = append(topics, e.KafkaTopic)
		}
	}
	for _, e := range cfg.TransactionalData {
		if e.KafkaTopic != "" && !seen[e.KafkaTopic] {
			seen[e.KafkaTopic] = true
			topics = append(topics, e.KafkaTopic)
		}
	}
	if len(topics) == 0 {
		return nil
	}

	timeout := opts.CleanTopicTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return broker.CleanTopics(brokerConfMap(brokerCfg), topics, 1, 1, timeout)
}

func newPublisher(brokerCfg model.BrokerConfig, opts Options) (broker.Publisher, error) {
	if opts.DryRun {
		w := opts.DryRunWriter
		if w == nil {
			w = discardWriter{}
		}
		return broker.NewDryRunPublisher(w), nil
	}
	return broker.NewKafkaPublisher(brokerConfMap(brokerCfg))
}

func newEncoder(opts Options, brokerCfg model.BrokerConfig) (wireformat.Encoder, error) {
	if opts.Format != wireformat.FormatSchemaFramed {
		return wireformat.NewJSONEncoder(), nil
	}
	registry := opts.Registry
	if registry == nil {
		if opts.DryRun || brokerCfg.SchemaRegistryURL == "" {
			registry = wireformat.StaticRegistryClient{ID: 1}
		} else {
			client, err := wireformat.NewConfluentRegistryClient(brokerCfg.SchemaRegistryURL, "AVRO")
			if err != nil {
				return nil, err
			}
			registry = client
		}
	}
	return wireformat.NewSchemaFramedEncoder(registry), nil
}

// bulkLoadMasters runs spec.md §4.G's BulkLoadMasters stage: every
// bulk_load master entity is generated and published sequentially at max
// rate, appended to the pool on successful submit, then flushed before
// StreamTransactional begins so downstream references see the masters.
func bulkLoadMasters(ctx context.Context, masters map[string]model.EntityConfig, registry *fieldgen.Registry, pool *refpool.Pool, pub broker.Publisher, encoder wireformat.Encoder, drainTimeout time.Duration) error {
	for _, entity := range masters {
		if !entity.BulkLoad {
			continue
		}
		if entity.Source == model.SourceCSV {
			if err := loadAndPublishCSV(ctx, entity, pool, pub, encoder); err != nil {
				return err
			}
			continue
		}

		count := 0
		if entity.Count != nil {
			count = *entity.Count
		}
		adapter := entitygen.NewPoolAdapter(pool, pool)
		gen := entitygen.New(entity, registry, adapter)

		for i := 0; i < count; i++ {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err := buildAndPublish(ctx, gen, entity, pool, pub, encoder); err != nil {
				switch err.(type) {
				case *model.MissingReference, *model.QueueFull:
					continue
				default:
					return err
				}
			}
		}
	}

	deadline := drainTimeout
	if deadline == 0 {
		deadline = 30 * time.Second
	}
	pub.Flush(deadline)
	return nil
}

func loadAndPublishCSV(ctx context.Context, entity model.EntityConfig, pool *refpool.Pool, pub broker.Publisher, encoder wireformat.Encoder) error {
	records, err := loadCSVMaster(entity)
	if err != nil {
		return err
	}
	for _, rec := range records {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := publishRecord(ctx, entity, rec, pool, pub, encoder); err != nil {
			return err
		}
	}
	return nil
}

// streamTransactional runs spec.md §4.G's StreamTransactional stage: each
// transactional entity is an independent task, all sharing the same pool
// and publisher. Grounded on the teacher's per-stage goroutine-with-
// WaitGroup shape in pipeline.Run, applied per-entity here. taskErrors
// collects each task's fatal error, if any, keyed by entity name, so Done
// can fold "a task died with nothing to show the publisher" into the exit
// code (spec.md §4.G: "exit 0 iff failed == 0 and no fatal error").
func streamTransactional(ctx context.Context, entities map[string]model.EntityConfig, registry *fieldgen.Registry, pool *refpool.Pool, pub broker.Publisher, encoder wireformat.Encoder) map[string]error {
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		taskErrors = make(map[string]error)
	)
	for name, entity := range entities {
		wg.Add(1)
		go func(name string, entity model.EntityConfig) {
			defer wg.Done()
			if err := runTransactionalTask(ctx, entity, registry, pool, pub, encoder); err != nil {
				mu.Lock()
				taskErrors[name] = err
				mu.Unlock()
			}
		}(name, entity)
	}
	wg.Wait()
	return taskErrors
}

// runTransactionalTask returns the error that stopped the task, or nil if
// it stopped cleanly (max_messages reached or cancellation).
func runTransactionalTask(ctx context.Context, entity model.EntityConfig, registry *fieldgen.Registry, pool *refpool.Pool, pub broker.Publisher, encoder wireformat.Encoder) error {
	log := genlog.New("orchestrator").WithField("entity", entity.Name)
	limiter := ratelimit.New(entity.RatePerSecond)
	adapter := entitygen.NewPoolAdapter(pool, pool)
	gen := entitygen.New(entity, registry, adapter)

	maxMessages := -1
	if entity.MaxMessages != nil {
		maxMessages = *entity.MaxMessages
	}

	sent := 0
	for maxMessages < 0 || sent < maxMessages {
		if err := limiter.Wait(ctx); err != nil {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}

		if err := buildAndPublish(ctx, gen, entity, pool, pub, encoder); err != nil {
			switch err.(type) {
			case *model.MissingReference, *model.GenerationError:
				log.WithField("error", err).Warn("dropping record")
				continue
			case *model.QueueFull:
				// Backoff is already exhausted by the publisher
				// (spec.md §7: "after N retries, count as failure").
				// The stats counter was bumped there; the task keeps
				// streaming rather than treating backpressure as fatal.
				log.WithField("error", err).Warn("queue full, counted as failure")
				continue
			default:
				// EmptyPool and every other remaining error kind are
				// task-fatal (spec.md §7): a master with zero records can never
				// satisfy this task's relationship sampling, so the task
				// stops rather than spinning on the same failure.
				log.WithField("error", err).Error("task stopped on fatal error")
				return err
			}
		}
		sent++
	}
	return nil
}

func buildAndPublish(ctx context.Context, gen *entitygen.Generator, entity model.EntityConfig, pool *refpool.Pool, pub broker.Publisher, encoder wireformat.Encoder) error {
	rec, err := gen.Build()
	if err != nil {
		return err
	}
	return publishRecord(ctx, entity, rec, pool, pub, encoder)
}

func publishRecord(ctx context.Context, entity model.EntityConfig, rec *model.Record, pool *refpool.Pool, pub broker.Publisher, encoder wireformat.Encoder) error {
	payload, err := encoder.Encode(entity, rec)
	if err != nil {
		return err
	}

	key := ""
	if entity.KeyField != "" {
		if v, ok := rec.Get(entity.KeyField); ok {
			key = v.AsString()
		}
	}

	if _, err := pub.Publish(ctx, entity.KafkaTopic, key, payload); err != nil {
		return err
	}

	if entity.IDField != "" {
		if err := pool.Append(entity.Name, entity.IDField, rec); err != nil {
			return err
		}
	}
	return nil
}

func buildSummary(cfg model.GeneratorConfig, pub broker.Publisher, taskErrors map[string]error) Summary {
	var summary Summary
	for name, e := range cfg.MasterData {
		s := pub.StatsFor(e.KafkaTopic)
		summary.Entities = append(summary.Entities, EntitySummary{Entity: name, Sent: s.Sent, Acked: s.Acked, Failed: s.Failed})
		if s.Failed > 0 {
			summary.Failed = true
		}
	}
	for name, e := range cfg.TransactionalData {
		s := pub.StatsFor(e.KafkaTopic)
		summary.Entities = append(summary.Entities, EntitySummary{Entity: name, Sent: s.Sent, Acked: s.Acked, Failed: s.Failed})
		if s.Failed > 0 {
			summary.Failed = true
		}
	}
	if len(taskErrors) > 0 {
		summary.Failed = true
	}
	return summary
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
