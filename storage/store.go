// Package storage keeps rendered vocabulary artifacts and build records in
// NATS KV.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

// Bucket names.
const (
	BucketArtifacts = "VOCAB_ARTIFACTS"
	BucketBuilds    = "VOCAB_BUILDS"
)

// ErrNotFound is returned when an artifact or build record is not found.
var ErrNotFound = errors.New("entry not found")

// ArtifactKey identifies the latest rendering of a vocabulary in one format.
type ArtifactKey struct {
	Vocab  string
	Format string
}

// String returns the KV key.
func (k ArtifactKey) String() string {
	return k.Vocab + "." + k.Format
}

// ParseArtifactKey parses a KV key produced by ArtifactKey.String.
func ParseArtifactKey(s string) (ArtifactKey, error) {
	vocab, format, ok := strings.Cut(s, ".")
	if !ok || vocab == "" || format == "" {
		return ArtifactKey{}, fmt.Errorf("invalid artifact key format: %s", s)
	}
	return ArtifactKey{Vocab: vocab, Format: format}, nil
}

// Artifact is one rendered output of a build.
type Artifact struct {
	Vocab     string    `json:"vocab"`
	Format    string    `json:"format"`
	BuildID   string    `json:"build_id"`
	Source    string    `json:"source"`
	Content   []byte    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Key returns the artifact's KV key.
func (a *Artifact) Key() ArtifactKey {
	return ArtifactKey{Vocab: a.Vocab, Format: a.Format}
}

// BuildRecord summarizes one build.
type BuildRecord struct {
	ID        string         `json:"id"`
	Vocab     string         `json:"vocab,omitempty"`
	Source    string         `json:"source"`
	Success   bool           `json:"success"`
	Error     string         `json:"error,omitempty"`
	Terms     map[string]int `json:"terms,omitempty"`
	Formats   []string       `json:"formats,omitempty"`
	Duration  time.Duration  `json:"duration"`
	CreatedAt time.Time      `json:"created_at"`
}

// Store provides artifact and build storage backed by NATS KV.
type Store struct {
	artifacts jetstream.KeyValue
	builds    jetstream.KeyValue
}

// NewStore creates a Store with the given JetStream context.
// It creates the KV buckets if they don't exist.
func NewStore(ctx context.Context, js jetstream.JetStream) (*Store, error) {
	artifacts, err := getOrCreateBucket(ctx, js, BucketArtifacts, 5)
	if err != nil {
		return nil, fmt.Errorf("create artifacts bucket: %w", err)
	}

	builds, err := getOrCreateBucket(ctx, js, BucketBuilds, 1)
	if err != nil {
		return nil, fmt.Errorf("create builds bucket: %w", err)
	}

	return &Store{artifacts: artifacts, builds: builds}, nil
}

func getOrCreateBucket(ctx context.Context, js jetstream.JetStream, name string, history uint8) (jetstream.KeyValue, error) {
	kv, err := js.KeyValue(ctx, name)
	if err == nil {
		return kv, nil
	}
	return js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      name,
		Description: fmt.Sprintf("semvocab %s storage", strings.ToLower(name)),
		History:     history,
	})
}

// PutArtifact stores a as the latest rendering for its vocabulary and
// format and returns the KV revision.
func (s *Store) PutArtifact(ctx context.Context, a *Artifact) (uint64, error) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	data, err := json.Marshal(a)
	if err != nil {
		return 0, fmt.Errorf("marshal artifact: %w", err)
	}

	rev, err := s.artifacts.Put(ctx, a.Key().String(), data)
	if err != nil {
		return 0, fmt.Errorf("store artifact %s: %w", a.Key(), err)
	}
	return rev, nil
}

// GetArtifact retrieves the latest artifact for key.
func (s *Store) GetArtifact(ctx context.Context, key ArtifactKey) (*Artifact, error) {
	entry, err := s.artifacts.Get(ctx, key.String())
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get artifact: %w", err)
	}

	var a Artifact
	if err := json.Unmarshal(entry.Value(), &a); err != nil {
		return nil, fmt.Errorf("unmarshal artifact: %w", err)
	}
	return &a, nil
}

// ListArtifacts returns the keys of all artifacts of a vocabulary.
func (s *Store) ListArtifacts(ctx context.Context, vocab string) ([]ArtifactKey, error) {
	keys, err := s.artifacts.Keys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("list artifact keys: %w", err)
	}

	var out []ArtifactKey
	for _, k := range keys {
		key, err := ParseArtifactKey(k)
		if err != nil || key.Vocab != vocab {
			continue
		}
		out = append(out, key)
	}
	return out, nil
}

// RecordBuild stores a build record under its ID.
func (s *Store) RecordBuild(ctx context.Context, r *BuildRecord) error {
	if r.ID == "" {
		return errors.New("build record requires an id")
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal build record: %w", err)
	}
	if _, err := s.builds.Put(ctx, r.ID, data); err != nil {
		return fmt.Errorf("store build record: %w", err)
	}
	return nil
}

// GetBuild retrieves a build record by ID.
func (s *Store) GetBuild(ctx context.Context, id string) (*BuildRecord, error) {
	entry, err := s.builds.Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get build record: %w", err)
	}

	var r BuildRecord
	if err := json.Unmarshal(entry.Value(), &r); err != nil {
		return nil, fmt.Errorf("unmarshal build record: %w", err)
	}
	return &r, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, jetstream.ErrKeyNotFound)
}
