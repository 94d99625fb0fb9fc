package storage

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactKey(t *testing.T) {
	t.Run("String joins vocab and format", func(t *testing.T) {
		assert.Equal(t, "ex.turtle", ArtifactKey{Vocab: "ex", Format: "turtle"}.String())
	})

	t.Run("Parse round trips", func(t *testing.T) {
		key, err := ParseArtifactKey("ex.context")
		require.NoError(t, err)
		assert.Equal(t, ArtifactKey{Vocab: "ex", Format: "context"}, key)
	})

	t.Run("Parse rejects invalid keys", func(t *testing.T) {
		for _, input := range []string{"", "ex", ".turtle", "ex."} {
			_, err := ParseArtifactKey(input)
			assert.Error(t, err, input)
		}
	})
}

func TestArtifactJSON(t *testing.T) {
	a := Artifact{
		Vocab:     "ex",
		Format:    "turtle",
		BuildID:   "b1",
		Source:    "ex.yml",
		Content:   []byte("@prefix ex: <http://example.org/> .\n"),
		CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	data, err := json.Marshal(&a)
	require.NoError(t, err)

	var got Artifact
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, a, got)
	assert.Equal(t, "ex.turtle", got.Key().String())
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(jetstream.ErrKeyNotFound))
	assert.True(t, isNotFound(fmt.Errorf("get: %w", jetstream.ErrKeyNotFound)))
	assert.False(t, isNotFound(jetstream.ErrNoKeysFound))
	assert.False(t, isNotFound(nil))
}
