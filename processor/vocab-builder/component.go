// Package vocabbuilder provides a streaming processor that builds YAML
// vocabulary sources and publishes the rendered outputs.
package vocabbuilder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/natsclient"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/c360studio/semvocab/export"
	"github.com/c360studio/semvocab/graph"
	"github.com/c360studio/semvocab/source"
	"github.com/c360studio/semvocab/storage"
	"github.com/c360studio/semvocab/vocab"
	"github.com/c360studio/semvocab/vocabulary/predicates"
)

const componentName = "vocab-builder"

// Component implements the vocab-builder processor.
type Component struct {
	name       string
	config     Config
	natsClient *natsclient.Client
	logger     *slog.Logger
	metrics    *buildMetrics
	store      *storage.Store

	formats []export.Format
	date    time.Time

	// Resolved subjects from port config
	inputSubject   string
	inputStream    string
	exportSubject  string
	failureSubject string
	graphSubject   string

	// Lifecycle
	running   bool
	startTime time.Time
	mu        sync.RWMutex
	cancel    context.CancelFunc

	// Counters
	buildsSucceeded atomic.Int64
	buildsFailed    atomic.Int64
	publishErrors   atomic.Int64
	lastActivityMu  sync.RWMutex
	lastActivity    time.Time
}

// NewComponent creates a new vocab-builder processor.
func NewComponent(rawConfig json.RawMessage, deps component.Dependencies) (component.Discoverable, error) {
	config := DefaultConfig()
	if len(rawConfig) > 0 {
		if err := json.Unmarshal(rawConfig, &config); err != nil {
			return nil, fmt.Errorf("unmarshal config: %w", err)
		}
	}
	if config.Ports == nil {
		config.Ports = DefaultConfig().Ports
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	inputSubject := "vocab.source.>"
	inputStream := "VOCAB"
	exportSubject := "vocab.export"
	failureSubject := "vocab.failure"
	graphSubject := graph.IngestSubject

	if len(config.Ports.Inputs) > 0 {
		inputSubject = config.Ports.Inputs[0].Subject
		inputStream = config.Ports.Inputs[0].StreamName
	}
	if len(config.Ports.Outputs) > 0 {
		exportSubject = config.Ports.Outputs[0].Subject
	}
	if len(config.Ports.Outputs) > 1 {
		failureSubject = config.Ports.Outputs[1].Subject
	}
	if len(config.Ports.Outputs) > 2 {
		graphSubject = config.Ports.Outputs[2].Subject
	}

	logger := deps.GetLoggerWithComponent(componentName)
	return &Component{
		name:           componentName,
		config:         config,
		natsClient:     deps.NATSClient,
		logger:         logger,
		metrics:        newBuildMetrics(deps.MetricsRegistry, logger),
		formats:        config.GetFormats(),
		date:           config.GetDate(),
		inputSubject:   inputSubject,
		inputStream:    inputStream,
		exportSubject:  exportSubject,
		failureSubject: failureSubject,
		graphSubject:   graphSubject,
	}, nil
}

// Initialize prepares the component.
func (c *Component) Initialize() error {
	return nil
}

// Start begins consuming vocabulary sources.
func (c *Component) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return fmt.Errorf("component already running")
	}
	if c.natsClient == nil {
		c.mu.Unlock()
		return fmt.Errorf("NATS client required")
	}

	if c.config.StoreArtifacts && c.store == nil {
		js, err := c.natsClient.JetStream()
		if err != nil {
			c.mu.Unlock()
			return fmt.Errorf("get jetstream: %w", err)
		}
		store, err := storage.NewStore(ctx, js)
		if err != nil {
			c.mu.Unlock()
			return fmt.Errorf("open artifact store: %w", err)
		}
		c.store = store
	}

	c.running = true
	c.startTime = time.Now()

	consumeCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()

	consumerCfg := natsclient.StreamConsumerConfig{
		StreamName:    c.inputStream,
		ConsumerName:  c.name,
		FilterSubject: c.inputSubject,
		DeliverPolicy: "new",
		AckPolicy:     "explicit",
		MaxDeliver:    3,
		AckWait:       30 * time.Second,
	}

	if err := c.natsClient.ConsumeStreamWithConfig(consumeCtx, consumerCfg, c.handleMessage); err != nil {
		c.mu.Lock()
		c.running = false
		c.cancel = nil
		c.mu.Unlock()
		cancel()
		return fmt.Errorf("start consumer: %w", err)
	}

	c.logger.Info("vocab-builder started",
		"formats", c.config.Formats,
		"input", c.inputSubject,
		"output", c.exportSubject)

	return nil
}

// handleMessage builds a single vocabulary source.
func (c *Component) handleMessage(ctx context.Context, msg jetstream.Msg) {
	var baseMsg message.BaseMessage
	if err := json.Unmarshal(msg.Data(), &baseMsg); err != nil {
		c.logger.Warn("Failed to unmarshal base message",
			"error", err,
			"subject", msg.Subject())
		_ = msg.Term()
		return
	}

	src, ok := baseMsg.Payload().(*SourcePayload)
	if !ok {
		c.logger.Warn("Unexpected payload type",
			"type", baseMsg.Type(),
			"subject", msg.Subject())
		_ = msg.Term()
		return
	}

	res := c.process(src)
	c.updateLastActivity()

	if res.failure != nil {
		if err := c.publish(ctx, c.failureSubject, FailureType, res.failure); err != nil {
			c.logger.Warn("Failed to publish build failure",
				"build_id", res.failure.BuildID,
				"error", err)
			_ = msg.Nak()
			return
		}
		c.record(ctx, res)
		_ = msg.Ack()
		return
	}

	for _, r := range res.results {
		subject := c.exportSubject + "." + r.Format
		if err := c.publish(ctx, subject, ResultType, r); err != nil {
			c.logger.Warn("Failed to publish build result",
				"build_id", r.BuildID,
				"subject", subject,
				"error", err)
			_ = msg.Nak()
			return
		}
	}
	if c.config.PublishGraph {
		c.publishEntities(ctx, res)
	}
	c.record(ctx, res)
	_ = msg.Ack()
}

// publishEntities sends the built terms to graph ingestion. Failures are
// logged without failing the build.
func (c *Component) publishEntities(ctx context.Context, res *buildResult) {
	entities := graph.Entities(res.vocab, c.name, time.Now())
	n, err := graph.Publish(ctx, c.natsClient, c.graphSubject, c.name, entities)
	if err != nil {
		c.publishErrors.Add(1)
		c.logger.Warn("Failed to publish term entities",
			"build_id", res.id,
			"published", n,
			"total", len(entities),
			"error", err)
		return
	}
	c.logger.Debug("Published term entities", "build_id", res.id, "count", n)
}

// buildResult is the outcome of processing one source.
type buildResult struct {
	id      string
	vocab   *vocab.Vocab
	results []*BuildResult
	failure *BuildFailure
	elapsed time.Duration
}

// process builds src and renders every configured format.
func (c *Component) process(src *SourcePayload) *buildResult {
	start := time.Now()
	res := &buildResult{id: uuid.NewString()}
	logger := c.logger.With("build_id", res.id, "source", src.Name)

	fail := func(outcome string, err error) *buildResult {
		res.elapsed = time.Since(start)
		res.failure = &BuildFailure{BuildID: res.id, Source: src.Name, Error: err.Error()}
		c.buildsFailed.Add(1)
		c.metrics.observe(outcome, res.elapsed)
		logger.Warn("Vocabulary build failed", "outcome", outcome, "error", err)
		return res
	}

	raw, err := source.Load([]byte(src.Content))
	if err != nil {
		return fail(outcomeInvalid, err)
	}

	opts := []vocab.Option{vocab.WithLogger(logger), vocab.WithBuildID(res.id)}
	if !c.date.IsZero() {
		opts = append(opts, vocab.WithDate(c.date))
	}
	v, err := vocab.NewBuilder(opts...).Build(raw)
	if err != nil {
		return fail(outcomeInvalid, err)
	}
	res.vocab = v

	var names []string
	if c.config.RegisterPredicates {
		names = predicates.Register(v)
	}

	terms := make(map[string]int)
	for kind, n := range v.Stats() {
		terms[string(kind)] = n
	}

	for _, f := range c.formats {
		data, err := export.Render(v, f)
		if err != nil {
			return fail(outcomeError, fmt.Errorf("render %s: %w", f, err))
		}
		info, _ := export.GetFormatInfo(f)
		res.results = append(res.results, &BuildResult{
			BuildID:    res.id,
			Source:     src.Name,
			Vocab:      v.Prefix,
			URL:        v.URL,
			Format:     string(f),
			MIMEType:   info.MIMEType,
			Content:    string(data),
			Terms:      terms,
			Predicates: names,
		})
	}

	res.elapsed = time.Since(start)
	c.buildsSucceeded.Add(1)
	c.metrics.observe(outcomeSuccess, res.elapsed)
	c.metrics.recordTerms(v)

	logger.Debug("Built vocabulary",
		"vocab", v.Prefix,
		"formats", len(res.results),
		"predicates", len(names),
		"duration", res.elapsed)
	return res
}

func (c *Component) publish(ctx context.Context, subject string, t message.Type, payload message.Payload) error {
	baseMsg := message.NewBaseMessage(t, payload, c.name)
	data, err := json.Marshal(baseMsg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	if err := c.natsClient.PublishToStream(ctx, subject, data); err != nil {
		c.publishErrors.Add(1)
		return fmt.Errorf("publish to %s: %w", subject, err)
	}
	return nil
}

// record keeps the build in the artifact store when one is configured.
func (c *Component) record(ctx context.Context, res *buildResult) {
	if c.store == nil {
		return
	}

	rec := &storage.BuildRecord{ID: res.id, Success: res.failure == nil, Duration: res.elapsed}
	if res.failure != nil {
		rec.Source = res.failure.Source
		rec.Error = res.failure.Error
	}

	var errs []error
	for _, r := range res.results {
		rec.Source, rec.Vocab, rec.Terms = r.Source, r.Vocab, r.Terms
		rec.Formats = append(rec.Formats, r.Format)
		_, err := c.store.PutArtifact(ctx, &storage.Artifact{
			Vocab:   r.Vocab,
			Format:  r.Format,
			BuildID: r.BuildID,
			Source:  r.Source,
			Content: []byte(r.Content),
		})
		errs = append(errs, err)
	}
	errs = append(errs, c.store.RecordBuild(ctx, rec))

	if err := errors.Join(errs...); err != nil {
		c.logger.Warn("Failed to store build", "build_id", res.id, "error", err)
	}
}

// Stop gracefully stops the component.
func (c *Component) Stop(_ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return nil
	}

	if c.cancel != nil {
		c.cancel()
	}

	c.running = false
	c.logger.Info("vocab-builder stopped",
		"builds_succeeded", c.buildsSucceeded.Load(),
		"builds_failed", c.buildsFailed.Load(),
		"publish_errors", c.publishErrors.Load())

	return nil
}

// Meta returns component metadata.
func (c *Component) Meta() component.Metadata {
	return component.Metadata{
		Name:        componentName,
		Type:        "processor",
		Description: "Builds YAML vocabularies into Turtle, JSON-LD, HTML and JSON-LD contexts",
		Version:     "1.0.0",
	}
}

// InputPorts returns configured input port definitions.
func (c *Component) InputPorts() []component.Port {
	if c.config.Ports == nil {
		return []component.Port{}
	}

	ports := make([]component.Port, len(c.config.Ports.Inputs))
	for i, portDef := range c.config.Ports.Inputs {
		ports[i] = buildPort(portDef, component.DirectionInput)
	}
	return ports
}

// OutputPorts returns configured output port definitions.
func (c *Component) OutputPorts() []component.Port {
	if c.config.Ports == nil {
		return []component.Port{}
	}

	ports := make([]component.Port, len(c.config.Ports.Outputs))
	for i, portDef := range c.config.Ports.Outputs {
		ports[i] = buildPort(portDef, component.DirectionOutput)
	}
	return ports
}

// buildPort creates a component.Port from a PortDefinition. Export ports
// cover every format subject below the configured one.
func buildPort(portDef component.PortDefinition, direction component.Direction) component.Port {
	port := component.Port{
		Name:        portDef.Name,
		Direction:   direction,
		Required:    portDef.Required,
		Description: portDef.Description,
	}
	subject := portDef.Subject
	if direction == component.DirectionOutput && portDef.Name == "exports_out" {
		subject += ".>"
	}
	if portDef.Type == "jetstream" {
		port.Config = component.JetStreamPort{
			StreamName: portDef.StreamName,
			Subjects:   []string{subject},
		}
	} else {
		port.Config = component.NATSPort{
			Subject: subject,
		}
	}
	return port
}

// ConfigSchema returns the configuration schema.
func (c *Component) ConfigSchema() component.ConfigSchema {
	return vocabBuilderSchema
}

// Health returns the current health status.
func (c *Component) Health() component.HealthStatus {
	c.mu.RLock()
	running := c.running
	startTime := c.startTime
	c.mu.RUnlock()

	status := "stopped"
	if running {
		status = "running"
	}

	return component.HealthStatus{
		Healthy:    running,
		LastCheck:  time.Now(),
		ErrorCount: int(c.publishErrors.Load()),
		Uptime:     time.Since(startTime),
		Status:     status,
	}
}

// DataFlow returns current data flow metrics.
func (c *Component) DataFlow() component.FlowMetrics {
	var errorRate float64
	if total := c.buildsSucceeded.Load() + c.buildsFailed.Load(); total > 0 {
		errorRate = float64(c.buildsFailed.Load()) / float64(total)
	}
	return component.FlowMetrics{
		ErrorRate:    errorRate,
		LastActivity: c.getLastActivity(),
	}
}

func (c *Component) updateLastActivity() {
	c.lastActivityMu.Lock()
	c.lastActivity = time.Now()
	c.lastActivityMu.Unlock()
}

func (c *Component) getLastActivity() time.Time {
	c.lastActivityMu.RLock()
	defer c.lastActivityMu.RUnlock()
	return c.lastActivity
}
