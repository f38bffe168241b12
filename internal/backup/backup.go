// Package backup implements the JSON export/import of the catalog.
// Import validates untrusted documents before anything touches storage
// and tolerates older exports via a normalization pass.
package backup

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"wardrobe/internal/model"
	"wardrobe/internal/store"
)

// Document is the backup file format.
type Document struct {
	Version    string               `json:"version"`
	ExportDate string               `json:"exportDate"`
	Items      []model.ClothingItem `json:"items"`
}

// RemindAfter is how long after the last backup the reminder fires.
const RemindAfter = 7 * 24 * time.Hour

// Export builds a backup document for the given items.
func Export(items []model.ClothingItem, now time.Time) Document {
	if items == nil {
		items = []model.ClothingItem{}
	}
	return Document{
		Version:    model.DataVersion,
		ExportDate: now.UTC().Format(time.RFC3339),
		Items:      items,
	}
}

// FileName returns the timestamped download name for an export.
func FileName(now time.Time) string {
	return now.Format("wardrobe_20060102_1504.json")
}

// Parse decodes and structurally validates an untrusted backup
// document. On any failure it returns a descriptive error and the
// caller must not touch storage.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid backup document: %w", err)
	}
	if doc.Version == "" {
		return nil, fmt.Errorf("invalid backup document: missing version")
	}
	if doc.Items == nil {
		return nil, fmt.Errorf("invalid backup document: missing items")
	}
	for i := range doc.Items {
		item := &doc.Items[i]
		if item.ID == "" {
			return nil, fmt.Errorf("invalid backup document: item %d missing id", i)
		}
		if item.Name == "" {
			return nil, fmt.Errorf("invalid backup document: item %d missing name", i)
		}
		if item.Category == "" {
			return nil, fmt.Errorf("invalid backup document: item %d missing category", i)
		}
	}
	return &doc, nil
}

// Normalize fills defaults for fields that older or partial exports may
// omit, so the rest of the system never sees a half-formed item.
func Normalize(items []model.ClothingItem, now time.Time) []model.ClothingItem {
	now = now.UTC()
	out := make([]model.ClothingItem, len(items))
	for i, item := range items {
		if item.Images == nil {
			item.Images = []string{}
		}
		if len(item.Season) == 0 {
			item.Season = []string{model.SeasonAll}
		}
		if len(item.Occasion) == 0 {
			item.Occasion = []string{model.OccasionHome}
		}
		if item.Color == "" {
			item.Color = "#FFFFFF"
		}
		if item.WearFrequency < 1 || item.WearFrequency > 5 {
			item.WearFrequency = 3
		}
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}
		if item.UpdatedAt.IsZero() {
			item.UpdatedAt = now
		}
		out[i] = item
	}
	return out
}

// MergeResult reports what a merge import did.
type MergeResult struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
}

// ImportReplace clears storage and bulk-inserts the items in a single
// transaction, returning the inserted count. If any insert fails the
// clear is rolled back with it, so the pre-existing catalog survives.
func ImportReplace(ctx context.Context, db *sql.DB, items []model.ClothingItem) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting replace import: %w", err)
	}
	defer tx.Rollback()

	if err := store.ClearClothes(ctx, tx); err != nil {
		return 0, err
	}
	for i := range items {
		if err := store.InsertClothing(ctx, tx, &items[i]); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing replace import: %w", err)
	}
	return len(items), nil
}

// ImportMerge upserts each item by id. Not atomic across items: on a
// mid-batch failure, earlier items stay applied and the partial counts
// are returned alongside the error.
func ImportMerge(ctx context.Context, db *sql.DB, items []model.ClothingItem) (MergeResult, error) {
	var res MergeResult
	for i := range items {
		existing, err := store.GetClothing(ctx, db, items[i].ID)
		if err != nil {
			return res, err
		}
		if existing != nil {
			if err := store.UpdateClothing(ctx, db, &items[i]); err != nil {
				return res, err
			}
			res.Updated++
		} else {
			if err := store.InsertClothing(ctx, db, &items[i]); err != nil {
				return res, err
			}
			res.Added++
		}
	}
	return res, nil
}

// RecordBackup stores the last-backup timestamp.
func RecordBackup(ctx context.Context, db *sql.DB, now time.Time) error {
	return store.SetSetting(ctx, db, store.SettingLastBackup, now.UTC().Format(time.RFC3339))
}

// ShouldRemind reports whether the user should be nudged to back up:
// never backed up, an unreadable timestamp, or more than RemindAfter ago.
func ShouldRemind(lastBackup string, now time.Time) bool {
	if lastBackup == "" {
		return true
	}
	t, err := time.Parse(time.RFC3339, lastBackup)
	if err != nil {
		return true
	}
	return now.Sub(t) > RemindAfter
}
