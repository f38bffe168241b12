package store

import (
	"context"
	"testing"
	"time"

	"wardrobe/internal/db"
	"wardrobe/internal/model"
)

func testItem(id, name, category string, created time.Time) *model.ClothingItem {
	return &model.ClothingItem{
		ID:            id,
		Name:          name,
		Images:        []string{},
		Category:      category,
		Season:        []string{model.SeasonAll},
		Occasion:      []string{model.OccasionHome},
		Color:         "#FFFFFF",
		WearFrequency: 3,
		CreatedAt:     created,
		UpdatedAt:     created,
	}
}

func TestInsertAndGetClothing(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	item := testItem("item-1", "White Shirt", model.CategoryTop, now)
	item.Brand = "Uniqlo"
	item.Season = []string{model.SeasonSpring, model.SeasonSummer}
	price := 29.9
	item.Price = &price

	if err := InsertClothing(ctx, database, item); err != nil {
		t.Fatalf("InsertClothing: %v", err)
	}

	got, err := GetClothing(ctx, database, "item-1")
	if err != nil {
		t.Fatalf("GetClothing: %v", err)
	}
	if got == nil {
		t.Fatal("expected item, got nil")
	}
	if got.Name != "White Shirt" {
		t.Errorf("expected name 'White Shirt', got %q", got.Name)
	}
	if got.Brand != "Uniqlo" {
		t.Errorf("expected brand 'Uniqlo', got %q", got.Brand)
	}
	if len(got.Season) != 2 || got.Season[0] != model.SeasonSpring {
		t.Errorf("unexpected season %v", got.Season)
	}
	if got.Price == nil || *got.Price != 29.9 {
		t.Errorf("unexpected price %v", got.Price)
	}
	if !got.CreatedAt.Equal(now) {
		t.Errorf("expected createdAt %v, got %v", now, got.CreatedAt)
	}
}

func TestGetClothingMissing(t *testing.T) {
	database := db.NewTestDB(t)

	got, err := GetClothing(context.Background(), database, "nope")
	if err != nil {
		t.Fatalf("GetClothing: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing id, got %+v", got)
	}
}

func TestListClothingNewestFirst(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	InsertClothing(ctx, database, testItem("old", "Old Coat", model.CategoryOuterwear, base.Add(-time.Hour)))
	InsertClothing(ctx, database, testItem("new", "New Coat", model.CategoryOuterwear, base))

	items, err := ListClothing(ctx, database)
	if err != nil {
		t.Fatalf("ListClothing: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != "new" {
		t.Errorf("expected newest item first, got %q", items[0].ID)
	}
}

func TestUpdateClothing(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	item := testItem("item-1", "Jeans", model.CategoryPants, now)
	InsertClothing(ctx, database, item)

	item.Name = "Blue Jeans"
	item.NeedsWash = true
	item.Area = model.AreaShelf
	item.UpdatedAt = now.Add(time.Minute)
	if err := UpdateClothing(ctx, database, item); err != nil {
		t.Fatalf("UpdateClothing: %v", err)
	}

	got, _ := GetClothing(ctx, database, "item-1")
	if got.Name != "Blue Jeans" {
		t.Errorf("expected updated name, got %q", got.Name)
	}
	if !got.NeedsWash {
		t.Error("expected needsWash true")
	}
	if got.Area != model.AreaShelf {
		t.Errorf("expected area override 'shelf', got %q", got.Area)
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Error("expected updatedAt after createdAt")
	}
}

func TestUpdateClothingMissingIsNoop(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item := testItem("ghost", "Ghost", model.CategoryTop, time.Now().UTC())
	if err := UpdateClothing(ctx, database, item); err != nil {
		t.Fatalf("UpdateClothing on missing id: %v", err)
	}

	n, _ := CountClothes(ctx, database)
	if n != 0 {
		t.Errorf("expected empty store, got %d items", n)
	}
}

func TestDeleteClothingIdempotent(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	InsertClothing(ctx, database, testItem("item-1", "Scarf", model.CategoryAccessory, time.Now().UTC()))

	if err := DeleteClothing(ctx, database, "item-1"); err != nil {
		t.Fatalf("DeleteClothing: %v", err)
	}
	// Deleting again must not error.
	if err := DeleteClothing(ctx, database, "item-1"); err != nil {
		t.Fatalf("DeleteClothing (repeat): %v", err)
	}

	n, _ := CountClothes(ctx, database)
	if n != 0 {
		t.Errorf("expected 0 items, got %d", n)
	}
}

func TestBatchInsertAndDelete(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	now := time.Now().UTC()
	items := []model.ClothingItem{
		*testItem("a", "A", model.CategoryTop, now),
		*testItem("b", "B", model.CategoryBag, now),
		*testItem("c", "C", model.CategoryShoes, now),
	}
	if err := InsertClothingBatch(ctx, database, items); err != nil {
		t.Fatalf("InsertClothingBatch: %v", err)
	}

	n, _ := CountClothes(ctx, database)
	if n != 3 {
		t.Fatalf("expected 3 items, got %d", n)
	}

	if err := DeleteClothingBatch(ctx, database, []string{"a", "c"}); err != nil {
		t.Fatalf("DeleteClothingBatch: %v", err)
	}
	left, _ := ListClothing(ctx, database)
	if len(left) != 1 || left[0].ID != "b" {
		t.Errorf("expected only item 'b' left, got %v", left)
	}
}

func TestBatchInsertDuplicateRollsBack(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	now := time.Now().UTC()
	items := []model.ClothingItem{
		*testItem("a", "A", model.CategoryTop, now),
		*testItem("a", "A again", model.CategoryTop, now),
	}
	if err := InsertClothingBatch(ctx, database, items); err == nil {
		t.Fatal("expected duplicate id error")
	}

	n, _ := CountClothes(ctx, database)
	if n != 0 {
		t.Errorf("expected rollback to leave store empty, got %d items", n)
	}
}

func TestSecondaryLists(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	now := time.Now().UTC()
	fav := testItem("fav", "Favorite Dress", model.CategoryDress, now)
	fav.IsFavorite = true
	dirty := testItem("dirty", "Gym Shirt", model.CategoryTop, now)
	dirty.NeedsWash = true
	InsertClothing(ctx, database, fav)
	InsertClothing(ctx, database, dirty)

	tops, err := ListClothingByCategory(ctx, database, model.CategoryTop)
	if err != nil {
		t.Fatalf("ListClothingByCategory: %v", err)
	}
	if len(tops) != 1 || tops[0].ID != "dirty" {
		t.Errorf("unexpected tops %v", tops)
	}

	favs, _ := ListFavorites(ctx, database)
	if len(favs) != 1 || favs[0].ID != "fav" {
		t.Errorf("unexpected favorites %v", favs)
	}

	wash, _ := ListNeedsWash(ctx, database)
	if len(wash) != 1 || wash[0].ID != "dirty" {
		t.Errorf("unexpected needs-wash list %v", wash)
	}
}

func TestClearClothes(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	InsertClothing(ctx, database, testItem("a", "A", model.CategoryTop, time.Now().UTC()))
	if err := ClearClothes(ctx, database); err != nil {
		t.Fatalf("ClearClothes: %v", err)
	}

	n, _ := CountClothes(ctx, database)
	if n != 0 {
		t.Errorf("expected 0 items after clear, got %d", n)
	}
}
