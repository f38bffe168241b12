// Package catalog owns the authoritative in-memory copy of the wardrobe
// for the running process and keeps it consistent with durable storage.
// Mutations update the in-memory list immediately; item edits reach the
// store after a short debounce window so rapid successive edits coalesce
// into a single write.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"wardrobe/internal/model"
	"wardrobe/internal/store"
)

// DebounceDelay is the window during which successive updates coalesce
// into one durable write.
const DebounceDelay = 500 * time.Millisecond

// Catalog is the catalog state manager.
type Catalog struct {
	db    *sql.DB
	saver *debouncer
	now   func() time.Time

	mu    sync.Mutex
	items []model.ClothingItem
}

// New creates a catalog backed by the given database. Call Load before
// serving reads.
func New(db *sql.DB) *Catalog {
	return newCatalog(db, timerScheduler{}, time.Now)
}

func newCatalog(db *sql.DB, sched scheduler, now func() time.Time) *Catalog {
	return &Catalog{
		db:    db,
		saver: newDebouncer(DebounceDelay, sched),
		now:   func() time.Time { return now().UTC() },
	}
}

// Load reads all items into memory. On first run (empty store) it seeds
// the store with the built-in sample set and adopts it.
func (c *Catalog) Load(ctx context.Context) error {
	n, err := store.CountClothes(ctx, c.db)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	var items []model.ClothingItem
	if n == 0 {
		items = model.SampleItems(c.now())
		if err := store.InsertClothingBatch(ctx, c.db, items); err != nil {
			return fmt.Errorf("seeding sample catalog: %w", err)
		}
	} else {
		items, err = store.ListClothing(ctx, c.db)
		if err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}
	}

	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return nil
}

// Reload re-reads the in-memory list from storage, discarding any
// in-memory-only state. Used after imports.
func (c *Catalog) Reload(ctx context.Context) error {
	items, err := store.ListClothing(ctx, c.db)
	if err != nil {
		return fmt.Errorf("reloading catalog: %w", err)
	}

	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return nil
}

// Items returns a copy of the current in-memory list, newest first.
func (c *Catalog) Items() []model.ClothingItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.ClothingItem, len(c.items))
	copy(out, c.items)
	return out
}

// Get returns the in-memory item with the given id, or nil.
func (c *Catalog) Get(id string) *model.ClothingItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == id {
			item := c.items[i]
			return &item
		}
	}
	return nil
}

// Count returns the number of items in the in-memory list.
func (c *Catalog) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Add constructs a new item from the form, persists it, and prepends it
// to the in-memory list.
func (c *Catalog) Add(ctx context.Context, form *model.ClothingForm) (*model.ClothingItem, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	now := c.now()
	wearFreq := form.WearFrequency
	if wearFreq == 0 {
		wearFreq = 3
	}
	images := form.Images
	if images == nil {
		images = []string{}
	}

	item := model.ClothingItem{
		ID:            uuid.NewString(),
		Name:          form.Name,
		Images:        images,
		Category:      form.Category,
		Area:          form.Area,
		Season:        form.Season,
		Occasion:      form.Occasion,
		Color:         form.Color,
		Brand:         form.Brand,
		Notes:         form.Notes,
		PurchaseDate:  form.PurchaseDate,
		Price:         model.ParsePrice(form.Price),
		WearFrequency: wearFreq,
		NeedsWash:     form.NeedsWash,
		IsFavorite:    form.IsFavorite,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := store.InsertClothing(ctx, c.db, &item); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.items = append([]model.ClothingItem{item}, c.items...)
	c.mu.Unlock()
	return &item, nil
}

// Update patches the in-memory item immediately and schedules the
// durable write behind the debounce window. Only the most recent
// pending write is retained; earlier pending writes are superseded.
// Returns nil without error if the id is unknown.
func (c *Catalog) Update(ctx context.Context, id string, patch *model.ClothingPatch) (*model.ClothingItem, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	var updated *model.ClothingItem
	for i := range c.items {
		if c.items[i].ID == id {
			patch.Apply(&c.items[i])
			c.items[i].UpdatedAt = c.now()
			snapshot := c.items[i]
			updated = &snapshot
			break
		}
	}
	c.mu.Unlock()

	if updated == nil {
		return nil, nil
	}

	// The write reads the item again when the timer fires. A snapshot
	// taken now could go stale: a toggle inside the window persists
	// immediately, and replaying an older row would undo it.
	c.saver.Schedule(func(ctx context.Context) error {
		current := c.Get(id)
		if current == nil {
			return nil
		}
		return store.UpdateClothing(ctx, c.db, current)
	}, func(err error) {
		slog.Error("debounced write failed", "id", id, "error", err)
	})
	return updated, nil
}

// Delete removes an item from storage and the in-memory list. Deleting
// an unknown id is a no-op.
func (c *Catalog) Delete(ctx context.Context, id string) error {
	if err := store.DeleteClothing(ctx, c.db, id); err != nil {
		return err
	}

	c.mu.Lock()
	c.items = removeIDs(c.items, map[string]bool{id: true})
	c.mu.Unlock()
	return nil
}

// DeleteMany removes multiple items from storage and the in-memory list.
func (c *Catalog) DeleteMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := store.DeleteClothingBatch(ctx, c.db, ids); err != nil {
		return err
	}

	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	c.mu.Lock()
	c.items = removeIDs(c.items, drop)
	c.mu.Unlock()
	return nil
}

// ToggleFavorite flips an item's favorite flag, persisting immediately.
// Unknown ids are a no-op and return nil.
func (c *Catalog) ToggleFavorite(ctx context.Context, id string) (*model.ClothingItem, error) {
	return c.toggle(ctx, id, func(item *model.ClothingItem) {
		item.IsFavorite = !item.IsFavorite
	})
}

// ToggleNeedsWash flips an item's wash flag, persisting immediately.
// Unknown ids are a no-op and return nil.
func (c *Catalog) ToggleNeedsWash(ctx context.Context, id string) (*model.ClothingItem, error) {
	return c.toggle(ctx, id, func(item *model.ClothingItem) {
		item.NeedsWash = !item.NeedsWash
	})
}

func (c *Catalog) toggle(ctx context.Context, id string, flip func(*model.ClothingItem)) (*model.ClothingItem, error) {
	c.mu.Lock()
	var updated *model.ClothingItem
	for i := range c.items {
		if c.items[i].ID == id {
			flip(&c.items[i])
			c.items[i].UpdatedAt = c.now()
			snapshot := c.items[i]
			updated = &snapshot
			break
		}
	}
	c.mu.Unlock()

	if updated == nil {
		return nil, nil
	}
	if err := store.UpdateClothing(ctx, c.db, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Clear erases all items from storage and memory.
func (c *Catalog) Clear(ctx context.Context) error {
	if err := store.ClearClothes(ctx, c.db); err != nil {
		return err
	}

	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
	return nil
}

// ResetToSample clears the catalog and re-seeds the built-in sample set.
func (c *Catalog) ResetToSample(ctx context.Context) error {
	if err := store.ClearClothes(ctx, c.db); err != nil {
		return err
	}

	items := model.SampleItems(c.now())
	if err := store.InsertClothingBatch(ctx, c.db, items); err != nil {
		return err
	}

	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return nil
}

// PendingWrite reports whether a debounced update is queued but not yet
// durable.
func (c *Catalog) PendingWrite() bool {
	return c.saver.Pending()
}

// Flush forces any pending debounced write to storage. Called on
// graceful shutdown.
func (c *Catalog) Flush(ctx context.Context) error {
	return c.saver.Flush(ctx)
}

func removeIDs(items []model.ClothingItem, drop map[string]bool) []model.ClothingItem {
	out := items[:0]
	for _, item := range items {
		if !drop[item.ID] {
			out = append(out, item)
		}
	}
	return out
}
