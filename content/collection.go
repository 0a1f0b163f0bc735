package content

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
)

// Collection is a handle on one ordered list of entries. A collection that
// has never been written, or whose stored form cannot be decoded, reads as
// the built-in defaults.
type Collection[T interface{ Validate() error }] struct {
	store       *Store
	name        string
	id          func(T) string
	defaults    func() []T
	clean       func(T) T
	newestFirst bool
}

// List returns every entry in display order.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	if c.newestFirst {
		slices.Reverse(items)
	}
	return items, nil
}

// Get returns the entry with the given id, or ErrNotFound.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	items, err := c.load(ctx)
	if err != nil {
		return zero, err
	}
	if i := c.index(items, id); i >= 0 {
		return items[i], nil
	}
	return zero, fmt.Errorf("%s %q: %w", c.name, id, ErrNotFound)
}

// Upsert validates item, strips control characters from its text, then replaces the entry with the same id in place or
// appends it as the newest entry.
func (c *Collection[T]) Upsert(ctx context.Context, item T) error {
	if err := item.Validate(); err != nil {
		return invalid(err)
	}
	if c.clean != nil {
		// Stripping can empty a required field.
		item = c.clean(item)
		if err := item.Validate(); err != nil {
			return invalid(err)
		}
	}
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	items, err := c.load(ctx)
	if err != nil {
		return err
	}
	if i := c.index(items, c.id(item)); i >= 0 {
		items[i] = item
	} else {
		items = append(items, item)
	}
	return c.save(ctx, items)
}

// Remove deletes the entry with the given id, or returns ErrNotFound.
func (c *Collection[T]) Remove(ctx context.Context, id string) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	items, err := c.load(ctx)
	if err != nil {
		return err
	}
	i := c.index(items, id)
	if i < 0 {
		return fmt.Errorf("%s %q: %w", c.name, id, ErrNotFound)
	}
	return c.save(ctx, slices.Delete(items, i, i+1))
}

// ResetToDefault discards every stored change to the collection.
func (c *Collection[T]) ResetToDefault(ctx context.Context) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	return c.store.deleteCollection(ctx, c.name)
}

func (c *Collection[T]) index(items []T, id string) int {
	return slices.IndexFunc(items, func(item T) bool { return c.id(item) == id })
}

// load returns the stored order, oldest first.
func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	raw, ok, err := c.store.readCollection(ctx, c.name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return c.defaults(), nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		c.store.logger.Warn("stored collection is corrupt, using defaults", "collection", c.name, "error", err)
		return c.defaults(), nil
	}
	return items, nil
}

func (c *Collection[T]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", c.name, err)
	}
	return c.store.writeCollection(ctx, c.name, string(raw))
}
