package doccache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitalvas/apidoc/openapi"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type countingObserver struct{ hits, misses int }

func (o *countingObserver) ObserveCacheLookup(hit bool) {
	if hit {
		o.hits++
	} else {
		o.misses++
	}
}

func testDocument() *openapi.Document {
	return openapi.Assemble([]openapi.Endpoint{{
		Path:        "/health",
		Method:      "get",
		OperationID: "health",
		Summary:     "health",
		Tag:         openapi.Tag{Name: "Default", Description: "Basic operations"},
		Response:    &openapi.Schema{Type: "object"},
	}}, nil, openapi.Settings{})
}

func TestNewEntry(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	entry, err := NewEntry(testDocument(), now)
	require.NoError(t, err)

	id, err := uuid.Parse(entry.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
	assert.Equal(t, `"`+entry.ID+`"`, entry.ETag())
	assert.Equal(t, now, entry.GeneratedAt)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(entry.JSON, &raw))
	assert.Equal(t, "3.1.0", raw["openapi"])
}

func TestMemory(t *testing.T) {
	ctx := context.Background()

	t.Run("miss then hit", func(t *testing.T) {
		obs := &countingObserver{}
		c := NewMemory(WithObserver(obs))

		_, err := c.Get(ctx)
		assert.ErrorIs(t, err, ErrMiss)

		stored, err := c.Store(ctx, testDocument())
		require.NoError(t, err)

		got, err := c.Get(ctx)
		require.NoError(t, err)
		assert.Same(t, stored, got)
		assert.Equal(t, 1, obs.hits)
		assert.Equal(t, 1, obs.misses)
	})

	t.Run("expires after ttl", func(t *testing.T) {
		clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
		c := NewMemory(WithTTL(time.Minute), WithClock(clock.Now))

		_, err := c.Store(ctx, testDocument())
		require.NoError(t, err)

		clock.Advance(59 * time.Second)
		_, err = c.Get(ctx)
		require.NoError(t, err)

		clock.Advance(time.Second)
		_, err = c.Get(ctx)
		assert.ErrorIs(t, err, ErrMiss)
	})

	t.Run("no ttl never expires", func(t *testing.T) {
		clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
		c := NewMemory(WithClock(clock.Now))

		_, err := c.Store(ctx, testDocument())
		require.NoError(t, err)
		clock.Advance(24 * 365 * time.Hour)

		_, err = c.Get(ctx)
		assert.NoError(t, err)
	})

	t.Run("invalidate", func(t *testing.T) {
		c := NewMemory()
		_, err := c.Store(ctx, testDocument())
		require.NoError(t, err)

		require.NoError(t, c.Invalidate(ctx))
		_, err = c.Get(ctx)
		assert.ErrorIs(t, err, ErrMiss)
	})
}

func TestFile(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cache", "openapi.json")
		c := NewFile(path)
		assert.Equal(t, path, c.Path())

		_, err := c.Get(ctx)
		assert.ErrorIs(t, err, ErrMiss)

		stored, err := c.Store(ctx, testDocument())
		require.NoError(t, err)

		got, err := NewFile(path).Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, stored.ID, got.ID)
		assert.True(t, stored.GeneratedAt.Equal(got.GeneratedAt))
		assert.JSONEq(t, string(stored.JSON), string(got.JSON))
		require.NotNil(t, got.Document)
		assert.Empty(t, cmp.Diff(stored.Document, got.Document))
	})

	t.Run("expires after ttl", func(t *testing.T) {
		clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
		obs := &countingObserver{}
		c := NewFile(filepath.Join(t.TempDir(), "openapi.json"),
			WithTTL(time.Hour), WithClock(clock.Now), WithObserver(obs))

		_, err := c.Store(ctx, testDocument())
		require.NoError(t, err)

		_, err = c.Get(ctx)
		require.NoError(t, err)

		clock.Advance(2 * time.Hour)
		_, err = c.Get(ctx)
		assert.ErrorIs(t, err, ErrMiss)
		assert.Equal(t, 1, obs.hits)
		assert.Equal(t, 1, obs.misses)
	})

	t.Run("corrupt file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "openapi.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

		_, err := NewFile(path).Get(ctx)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrMiss)
	})

	t.Run("invalidate", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "openapi.json")
		c := NewFile(path)

		require.NoError(t, c.Invalidate(ctx))

		_, err := c.Store(ctx, testDocument())
		require.NoError(t, err)
		require.NoError(t, c.Invalidate(ctx))

		_, err = os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("no temp files left behind", func(t *testing.T) {
		dir := t.TempDir()
		c := NewFile(filepath.Join(dir, "openapi.json"))

		_, err := c.Store(ctx, testDocument())
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "openapi.json", entries[0].Name())
	})
}
