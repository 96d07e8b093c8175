package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/renatomh/gorestaurant-web/internal/food"
)

// ErrUnknownItem is returned when an edit targets an id that is not in the local list.
var ErrUnknownItem = errors.New("food is not in the local list")

// Remote is the backend capability the collection mirrors.
type Remote interface {
	List(ctx context.Context) ([]food.Food, error)
	Create(ctx context.Context, f food.Food) (food.Food, error)
	Update(ctx context.Context, id int64, f food.Food) (food.Food, error)
	Delete(ctx context.Context, id int64) error
}

// Collection is the in-memory mirror of the remote food list.
// Local state only changes after the remote call succeeds.
type Collection struct {
	remote Remote
	log    *slog.Logger

	mu    sync.RWMutex
	foods []food.Food
}

// NewCollection returns an empty collection backed by remote.
func NewCollection(remote Remote, log *slog.Logger) *Collection {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Collection{remote: remote, log: log, foods: []food.Food{}}
}

// Load replaces the local list with the remote one. On failure the list is kept.
func (c *Collection) Load(ctx context.Context) error {
	list, err := c.remote.List(ctx)
	if err != nil {
		c.log.Warn("remote operation failed", "op", "load", "err", err)
		return fmt.Errorf("load foods: %w", err)
	}
	fresh := make([]food.Food, len(list))
	copy(fresh, list)

	c.mu.Lock()
	c.foods = fresh
	c.mu.Unlock()
	c.log.Debug("foods loaded", "count", len(fresh))
	return nil
}

// Add creates a food from d and appends the stored record.
func (c *Collection) Add(ctx context.Context, d food.Draft) (food.Food, error) {
	created, err := c.remote.Create(ctx, d.NewFood())
	if err != nil {
		c.log.Warn("remote operation failed", "op", "add", "err", err)
		return food.Food{}, fmt.Errorf("add food: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if idx := indexOf(c.foods, created.ID); idx >= 0 {
		// ids are unique; a repeated id replaces the stale entry in place
		c.log.Warn("created food id already present", "id", created.ID)
		c.foods[idx] = created
		return created, nil
	}
	c.foods = append(c.foods, created)
	c.log.Info("food added", "id", created.ID, "name", created.Name)
	return created, nil
}

// Update sends the local record for id merged with d and replaces it with the response.
func (c *Collection) Update(ctx context.Context, id int64, d food.Draft) (food.Food, error) {
	prev, ok := c.Find(id)
	if !ok {
		return food.Food{}, fmt.Errorf("update food %d: %w", id, ErrUnknownItem)
	}
	updated, err := c.remote.Update(ctx, id, d.Apply(prev))
	if err != nil {
		c.log.Warn("remote operation failed", "op", "update", "id", id, "err", err)
		return food.Food{}, fmt.Errorf("update food %d: %w", id, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	next := make([]food.Food, len(c.foods))
	for i, f := range c.foods {
		if f.ID == id {
			next[i] = updated
			continue
		}
		next[i] = f
	}
	c.foods = next
	c.log.Info("food updated", "id", id)
	return updated, nil
}

// ToggleAvailable flips the availability flag of id.
func (c *Collection) ToggleAvailable(ctx context.Context, id int64) (food.Food, error) {
	prev, ok := c.Find(id)
	if !ok {
		return food.Food{}, fmt.Errorf("toggle food %d: %w", id, ErrUnknownItem)
	}
	return c.Update(ctx, id, food.Draft{Available: food.Bool(!prev.Available)})
}

// Delete removes id remotely, then drops every local entry with that id.
func (c *Collection) Delete(ctx context.Context, id int64) error {
	if err := c.remote.Delete(ctx, id); err != nil {
		c.log.Warn("remote operation failed", "op", "delete", "id", id, "err", err)
		return fmt.Errorf("delete food %d: %w", id, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	next := make([]food.Food, 0, len(c.foods))
	for _, f := range c.foods {
		if f.ID != id {
			next = append(next, f)
		}
	}
	c.foods = next
	c.log.Info("food deleted", "id", id)
	return nil
}

// Snapshot returns a copy of the local list in server order.
func (c *Collection) Snapshot() []food.Food {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]food.Food, len(c.foods))
	copy(out, c.foods)
	return out
}

// Find returns the local record for id.
func (c *Collection) Find(id int64) (food.Food, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if idx := indexOf(c.foods, id); idx >= 0 {
		return c.foods[idx], true
	}
	return food.Food{}, false
}

// Len returns the number of local items.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.foods)
}

func indexOf(foods []food.Food, id int64) int {
	for i, f := range foods {
		if f.ID == id {
			return i
		}
	}
	return -1
}
