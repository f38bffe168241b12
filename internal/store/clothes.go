package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"wardrobe/internal/model"
)

const clothingColumns = `id, name, images, category, area, season, occasion, color,
	brand, notes, purchase_date, price, wear_frequency, needs_wash, is_favorite,
	created_at, updated_at`

// execer covers both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// InsertClothing persists a new item. The caller is responsible for id
// and timestamp assignment.
func InsertClothing(ctx context.Context, db execer, item *model.ClothingItem) error {
	images, err := encodeStrings(item.Images)
	if err != nil {
		return fmt.Errorf("encoding images: %w", err)
	}
	season, err := encodeStrings(item.Season)
	if err != nil {
		return fmt.Errorf("encoding season: %w", err)
	}
	occasion, err := encodeStrings(item.Occasion)
	if err != nil {
		return fmt.Errorf("encoding occasion: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO clothes (`+clothingColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Name, images, item.Category, nullString(item.Area),
		season, occasion, item.Color, nullString(item.Brand), nullString(item.Notes),
		nullString(item.PurchaseDate), nullFloat(item.Price), item.WearFrequency,
		item.NeedsWash, item.IsFavorite, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting clothing item: %w", err)
	}
	return nil
}

// InsertClothingBatch persists multiple items in a single transaction.
func InsertClothingBatch(ctx context.Context, db *sql.DB, items []model.ClothingItem) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	for i := range items {
		if err := InsertClothing(ctx, tx, &items[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing batch insert: %w", err)
	}
	return nil
}

// GetClothing returns an item by id, or nil if it does not exist.
func GetClothing(ctx context.Context, db *sql.DB, id string) (*model.ClothingItem, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+clothingColumns+` FROM clothes WHERE id = ?`, id)

	item, err := scanClothing(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting clothing item: %w", err)
	}
	return item, nil
}

// ListClothing returns all items, newest first.
func ListClothing(ctx context.Context, db *sql.DB) ([]model.ClothingItem, error) {
	return queryClothing(ctx, db,
		`SELECT `+clothingColumns+` FROM clothes ORDER BY created_at DESC, id`)
}

// ListClothingByCategory returns all items of one category, newest first.
func ListClothingByCategory(ctx context.Context, db *sql.DB, category string) ([]model.ClothingItem, error) {
	return queryClothing(ctx, db,
		`SELECT `+clothingColumns+` FROM clothes WHERE category = ?
		 ORDER BY created_at DESC, id`, category)
}

// ListFavorites returns all favorited items, newest first.
func ListFavorites(ctx context.Context, db *sql.DB) ([]model.ClothingItem, error) {
	return queryClothing(ctx, db,
		`SELECT `+clothingColumns+` FROM clothes WHERE is_favorite = 1
		 ORDER BY created_at DESC, id`)
}

// ListNeedsWash returns all items flagged for washing, newest first.
func ListNeedsWash(ctx context.Context, db *sql.DB) ([]model.ClothingItem, error) {
	return queryClothing(ctx, db,
		`SELECT `+clothingColumns+` FROM clothes WHERE needs_wash = 1
		 ORDER BY created_at DESC, id`)
}

// UpdateClothing replaces the stored row for the item's id. Updating a
// missing id is a no-op.
func UpdateClothing(ctx context.Context, db *sql.DB, item *model.ClothingItem) error {
	images, err := encodeStrings(item.Images)
	if err != nil {
		return fmt.Errorf("encoding images: %w", err)
	}
	season, err := encodeStrings(item.Season)
	if err != nil {
		return fmt.Errorf("encoding season: %w", err)
	}
	occasion, err := encodeStrings(item.Occasion)
	if err != nil {
		return fmt.Errorf("encoding occasion: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`UPDATE clothes SET name = ?, images = ?, category = ?, area = ?,
		    season = ?, occasion = ?, color = ?, brand = ?, notes = ?,
		    purchase_date = ?, price = ?, wear_frequency = ?, needs_wash = ?,
		    is_favorite = ?, updated_at = ?
		 WHERE id = ?`,
		item.Name, images, item.Category, nullString(item.Area),
		season, occasion, item.Color, nullString(item.Brand), nullString(item.Notes),
		nullString(item.PurchaseDate), nullFloat(item.Price), item.WearFrequency,
		item.NeedsWash, item.IsFavorite, item.UpdatedAt, item.ID,
	)
	if err != nil {
		return fmt.Errorf("updating clothing item: %w", err)
	}
	return nil
}

// DeleteClothing removes an item. Deleting a missing id is a no-op.
func DeleteClothing(ctx context.Context, db *sql.DB, id string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM clothes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting clothing item: %w", err)
	}
	return nil
}

// DeleteClothingBatch removes multiple items in a single transaction.
func DeleteClothingBatch(ctx context.Context, db *sql.DB, ids []string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	for _, id := range ids {
		if _, err := tx.ExecContext(ctx, `DELETE FROM clothes WHERE id = ?`, id); err != nil {
			return fmt.Errorf("deleting clothing item %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing batch delete: %w", err)
	}
	return nil
}

// ClearClothes removes all items.
func ClearClothes(ctx context.Context, db execer) error {
	_, err := db.ExecContext(ctx, `DELETE FROM clothes`)
	if err != nil {
		return fmt.Errorf("clearing clothes: %w", err)
	}
	return nil
}

// CountClothes returns the number of stored items.
func CountClothes(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clothes`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting clothes: %w", err)
	}
	return n, nil
}

func queryClothing(ctx context.Context, db *sql.DB, query string, args ...any) ([]model.ClothingItem, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing clothes: %w", err)
	}
	defer rows.Close()

	var items []model.ClothingItem
	for rows.Next() {
		item, err := scanClothing(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning clothing item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanClothing(s scanner) (*model.ClothingItem, error) {
	item := &model.ClothingItem{}
	var images, season, occasion string
	var area, brand, notes, purchaseDate sql.NullString
	var price sql.NullFloat64

	err := s.Scan(&item.ID, &item.Name, &images, &item.Category, &area,
		&season, &occasion, &item.Color, &brand, &notes, &purchaseDate,
		&price, &item.WearFrequency, &item.NeedsWash, &item.IsFavorite,
		&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}

	item.Area = area.String
	item.Brand = brand.String
	item.Notes = notes.String
	item.PurchaseDate = purchaseDate.String
	if price.Valid {
		item.Price = &price.Float64
	}

	if err := json.Unmarshal([]byte(images), &item.Images); err != nil {
		return nil, fmt.Errorf("decoding images: %w", err)
	}
	if err := json.Unmarshal([]byte(season), &item.Season); err != nil {
		return nil, fmt.Errorf("decoding season: %w", err)
	}
	if err := json.Unmarshal([]byte(occasion), &item.Occasion); err != nil {
		return nil, fmt.Errorf("decoding occasion: %w", err)
	}
	if item.Images == nil {
		item.Images = []string{}
	}
	return item, nil
}

// encodeStrings stores multi-value fields as JSON arrays in TEXT columns.
func encodeStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
