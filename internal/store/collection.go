package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"
)

// collection serializes a whole slice of T under one blob key.
type collection[T any] struct {
	blobs  Blobs
	key    string
	logger *slog.Logger
}

func newCollection[T any](blobs Blobs, key string, logger *slog.Logger) collection[T] {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return collection[T]{blobs: blobs, key: key, logger: logger}
}

// load reads the collection. A missing key yields an empty collection, and
// so does a blob that no longer decodes: the warning is logged and startup
// carries on.
func (c collection[T]) load(ctx context.Context) ([]T, error) {
	data, err := c.blobs.Get(ctx, c.key)
	if errors.Is(err, ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.key, err)
	}

	var values []T
	if err := json.Unmarshal(data, &values); err != nil {
		c.logger.Warn("discarding unreadable collection",
			"key", c.key,
			"bytes", len(data),
			"error", err,
		)
		return []T{}, nil
	}
	if values == nil {
		values = []T{}
	}
	return values, nil
}

func (c collection[T]) save(ctx context.Context, values []T) error {
	if values == nil {
		values = []T{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", c.key, err)
	}
	if err := c.blobs.Put(ctx, c.key, data); err != nil {
		return fmt.Errorf("persist %s: %w", c.key, err)
	}
	return nil
}
