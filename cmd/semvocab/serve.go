package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/metric"
	"github.com/c360studio/semstreams/natsclient"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	vocabbuilder "github.com/c360studio/semvocab/processor/vocab-builder"
	"github.com/c360studio/semvocab/source"
)

const (
	streamName      = "VOCAB"
	graphStreamName = "GRAPH"
	sourceSubject   = "vocab.source"
)

func serveCmd(a *app) *cobra.Command {
	var (
		metricsAddr string
		store       bool
		publishTerm bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the vocab-builder processor against NATS",
		Long: `Connect to NATS, ensure the VOCAB stream exists and build every
vocabulary source published on vocab.source.>. Outputs are published
on vocab.export.<format>, failures on vocab.failure. With --graph every
built term is also published as an entity on graph.ingest.entity.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return a.serve(ctx, metricsAddr, store, publishTerm)
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":9090", "Prometheus metrics listen address (empty disables)")
	cmd.Flags().BoolVar(&store, "store", false, "Keep rendered outputs and build records in NATS KV")
	cmd.Flags().BoolVar(&publishTerm, "graph", false, "Publish built terms as knowledge graph entities")

	cmd.AddCommand(publishCmd(a))
	return cmd
}

func publishCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "publish [patterns...]",
		Short: "Publish vocabulary files for a running serve process",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			files, err := source.Expand(args)
			if err != nil {
				return err
			}

			client, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer client.Close(ctx)

			for _, path := range files {
				subject, err := publishSource(ctx, client, path)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "published %s to %s\n", path, subject)
			}
			return nil
		},
	}
}

func (a *app) serve(ctx context.Context, metricsAddr string, store, publishGraph bool) error {
	client, err := a.connect(ctx)
	if err != nil {
		return err
	}
	defer client.Close(ctx)

	if err := ensureStream(ctx, client, streamName, "vocab.>"); err != nil {
		return err
	}
	if publishGraph {
		if err := ensureStream(ctx, client, graphStreamName, "graph.>"); err != nil {
			return err
		}
	}

	registry := metric.NewMetricsRegistry()
	rawConfig, err := json.Marshal(map[string]any{
		"formats":             a.cfg.Output.Formats,
		"date":                a.cfg.Build.Date,
		"register_predicates": true,
		"store_artifacts":     store,
		"publish_graph":       publishGraph,
	})
	if err != nil {
		return fmt.Errorf("marshal component config: %w", err)
	}

	comp, err := vocabbuilder.NewComponent(rawConfig, component.Dependencies{
		NATSClient:      client,
		MetricsRegistry: registry,
		Logger:          a.logger,
	})
	if err != nil {
		return fmt.Errorf("create vocab-builder: %w", err)
	}
	lc, ok := comp.(component.LifecycleComponent)
	if !ok {
		return errors.New("vocab-builder does not support lifecycle management")
	}
	if err := lc.Initialize(); err != nil {
		return fmt.Errorf("initialize vocab-builder: %w", err)
	}
	if err := lc.Start(ctx); err != nil {
		return fmt.Errorf("start vocab-builder: %w", err)
	}
	defer func() {
		if err := lc.Stop(10 * time.Second); err != nil {
			a.logger.Error("Error stopping vocab-builder", "error", err)
		}
	}()

	if metricsAddr != "" {
		srv := &http.Server{
			Addr:              metricsAddr,
			Handler:           promhttp.HandlerFor(registry.PrometheusRegistry(), promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("Metrics server failed", "addr", metricsAddr, "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		a.logger.Info("Serving metrics", "addr", metricsAddr)
	}

	a.logger.Info("semvocab ready", "version", Version, "stream", streamName)
	<-ctx.Done()
	a.logger.Info("Received shutdown signal")
	return nil
}

// connect opens the NATS connection. NATS_URL and SEMVOCAB_NATS_URL take
// precedence over the configured URL.
func (a *app) connect(ctx context.Context) (*natsclient.Client, error) {
	url := a.cfg.NATS.URL
	if envURL := os.Getenv("NATS_URL"); envURL != "" {
		url = envURL
	} else if envURL := os.Getenv("SEMVOCAB_NATS_URL"); envURL != "" {
		url = envURL
	}

	a.logger.Info("Connecting to NATS", "url", url)
	client, err := natsclient.NewClient(url,
		natsclient.WithName(appName),
		natsclient.WithMaxReconnects(-1),
		natsclient.WithReconnectWait(time.Second),
		natsclient.WithHealthInterval(30*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create NATS client: %w", err)
	}

	if err := client.Connect(ctx); err != nil {
		return nil, wrapNATSError(err, url)
	}

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.WaitForConnection(connCtx); err != nil {
		return nil, wrapNATSError(err, url)
	}
	return client, nil
}

// wrapNATSError adds guidance for the common connection failures.
func wrapNATSError(err error, url string) error {
	errStr := err.Error()
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no servers available") ||
		strings.Contains(errStr, "timeout") {
		return fmt.Errorf(`NATS connection failed: %w

NATS is not running at %s.

Start a server with JetStream enabled (nats-server -js) or set NATS_URL.`, err, url)
	}
	return fmt.Errorf("NATS connection failed: %w", err)
}

func ensureStream(ctx context.Context, client *natsclient.Client, name, subjects string) error {
	js, err := client.JetStream()
	if err != nil {
		return fmt.Errorf("get jetstream: %w", err)
	}
	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     name,
		Subjects: []string{subjects},
		MaxAge:   24 * time.Hour,
		Storage:  jetstream.FileStorage,
	})
	if err != nil {
		return fmt.Errorf("ensure stream %s: %w", name, err)
	}
	return nil
}

// publishSource publishes one file as a source payload and returns the
// subject it was sent on.
func publishSource(ctx context.Context, client *natsclient.Client, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	payload := &vocabbuilder.SourcePayload{Name: filepath.Base(path), Content: string(data)}
	msg, err := json.Marshal(message.NewBaseMessage(vocabbuilder.SourceType, payload, appName))
	if err != nil {
		return "", fmt.Errorf("marshal source: %w", err)
	}

	subject := sourceSubject + "." + subjectToken(path)
	if err := client.PublishToStream(ctx, subject, msg); err != nil {
		return "", fmt.Errorf("publish to %s: %w", subject, err)
	}
	return subject, nil
}

// subjectToken turns a file name into a single NATS subject token.
func subjectToken(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', '*', '>', ' ', '\t':
			return '_'
		}
		return r
	}, base)
}
