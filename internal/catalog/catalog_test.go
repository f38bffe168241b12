package catalog

import (
	"context"
	"testing"
	"time"

	"wardrobe/internal/db"
	"wardrobe/internal/model"
	"wardrobe/internal/store"
)

// manualScheduler lets tests fire the debounce timer deterministically.
type manualScheduler struct {
	fn func()
}

func (m *manualScheduler) Schedule(_ time.Duration, fn func()) func() bool {
	m.fn = fn
	return func() bool {
		stopped := m.fn != nil
		m.fn = nil
		return stopped
	}
}

func (m *manualScheduler) Fire() {
	if m.fn != nil {
		fn := m.fn
		m.fn = nil
		fn()
	}
}

func newTestCatalog(t *testing.T) (*Catalog, *manualScheduler) {
	t.Helper()
	database := db.NewTestDB(t)
	sched := &manualScheduler{}
	return newCatalog(database, sched, time.Now), sched
}

func testForm(name, category string) *model.ClothingForm {
	return &model.ClothingForm{
		Name:          name,
		Category:      category,
		Season:        []string{model.SeasonAll},
		Occasion:      []string{model.OccasionHome},
		Color:         "#FFFFFF",
		WearFrequency: 3,
	}
}

func TestLoadSeedsEmptyStore(t *testing.T) {
	cat, _ := newTestCatalog(t)
	ctx := context.Background()

	if err := cat.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cat.Count() == 0 {
		t.Fatal("expected sample items after first load")
	}

	// Durable too, not just in memory.
	n, err := store.CountClothes(ctx, cat.db)
	if err != nil {
		t.Fatal(err)
	}
	if n != cat.Count() {
		t.Errorf("store has %d items, memory has %d", n, cat.Count())
	}
}

func TestLoadExistingStoreDoesNotReseed(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item := model.SampleItems(time.Now().UTC())[0]
	item.ID = "only"
	if err := store.InsertClothing(ctx, database, &item); err != nil {
		t.Fatal(err)
	}

	cat := newCatalog(database, &manualScheduler{}, time.Now)
	if err := cat.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cat.Count() != 1 {
		t.Errorf("expected 1 item, got %d", cat.Count())
	}
}

func TestAddAssignsIDAndTimestamps(t *testing.T) {
	cat, _ := newTestCatalog(t)
	ctx := context.Background()

	first, err := cat.Add(ctx, testForm("White Shirt", model.CategoryTop))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	second, err := cat.Add(ctx, testForm("Black Shirt", model.CategoryTop))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if first.ID == "" || first.ID == second.ID {
		t.Errorf("expected distinct non-empty ids, got %q and %q", first.ID, second.ID)
	}
	if !first.CreatedAt.Equal(first.UpdatedAt) {
		t.Errorf("expected createdAt == updatedAt at creation, got %v / %v",
			first.CreatedAt, first.UpdatedAt)
	}

	// Newest first.
	items := cat.Items()
	if items[0].ID != second.ID {
		t.Errorf("expected newest item first, got %q", items[0].Name)
	}
}

func TestAddCoercesPrice(t *testing.T) {
	cat, _ := newTestCatalog(t)

	form := testForm("Coat", model.CategoryOuterwear)
	form.Price = "129.50"
	item, err := cat.Add(context.Background(), form)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if item.Price == nil || *item.Price != 129.5 {
		t.Errorf("expected price 129.5, got %v", item.Price)
	}

	form2 := testForm("Free Coat", model.CategoryOuterwear)
	item2, _ := cat.Add(context.Background(), form2)
	if item2.Price != nil {
		t.Errorf("expected absent price, got %v", *item2.Price)
	}
}

func TestAddRejectsInvalidForm(t *testing.T) {
	cat, _ := newTestCatalog(t)
	ctx := context.Background()

	cases := []*model.ClothingForm{
		{Category: model.CategoryTop, Season: []string{"all"}, Occasion: []string{"home"}},
		{Name: "x", Category: "hat", Season: []string{"all"}, Occasion: []string{"home"}},
		{Name: "x", Category: model.CategoryTop, Occasion: []string{"home"}},
		{Name: "x", Category: model.CategoryTop, Season: []string{"all"}},
		{Name: "x", Category: model.CategoryTop, Season: []string{"all"}, Occasion: []string{"home"}, WearFrequency: 6},
	}
	for i, form := range cases {
		if _, err := cat.Add(ctx, form); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
	if cat.Count() != 0 {
		t.Errorf("expected no items after rejected adds, got %d", cat.Count())
	}
}

func TestUpdateIsOptimisticAndDebounced(t *testing.T) {
	cat, sched := newTestCatalog(t)
	ctx := context.Background()

	item, _ := cat.Add(ctx, testForm("Jeans", model.CategoryPants))

	name := "Blue Jeans"
	updated, err := cat.Update(ctx, item.ID, &model.ClothingPatch{Name: &name})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Blue Jeans" {
		t.Errorf("expected immediate in-memory update, got %q", updated.Name)
	}
	if got := cat.Get(item.ID); got.Name != "Blue Jeans" {
		t.Errorf("expected list to reflect patch, got %q", got.Name)
	}
	if !cat.PendingWrite() {
		t.Error("expected a pending durable write")
	}

	// Not yet durable.
	stored, _ := store.GetClothing(ctx, cat.db, item.ID)
	if stored.Name != "Jeans" {
		t.Errorf("expected store unchanged before flush, got %q", stored.Name)
	}

	sched.Fire()
	if cat.PendingWrite() {
		t.Error("expected no pending write after timer fires")
	}
	stored, _ = store.GetClothing(ctx, cat.db, item.ID)
	if stored.Name != "Blue Jeans" {
		t.Errorf("expected store updated after flush, got %q", stored.Name)
	}
}

func TestUpdateCoalescesWithinWindow(t *testing.T) {
	cat, sched := newTestCatalog(t)
	ctx := context.Background()

	item, _ := cat.Add(ctx, testForm("Skirt", model.CategorySkirt))

	for _, name := range []string{"Skirt A", "Skirt B", "Skirt C"} {
		n := name
		if _, err := cat.Update(ctx, item.ID, &model.ClothingPatch{Name: &n}); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}

	sched.Fire()
	sched.Fire() // earlier writes must have been superseded, not queued

	stored, _ := store.GetClothing(ctx, cat.db, item.ID)
	if stored.Name != "Skirt C" {
		t.Errorf("expected only last patch durable, got %q", stored.Name)
	}
}

// A toggle persists immediately; a debounced write queued before it
// must not replay the pre-toggle row when the timer fires.
func TestToggleInsideUpdateWindowStaysDurable(t *testing.T) {
	cat, sched := newTestCatalog(t)
	ctx := context.Background()

	item, _ := cat.Add(ctx, testForm("Coat", model.CategoryOuterwear))

	name := "Winter Coat"
	if _, err := cat.Update(ctx, item.ID, &model.ClothingPatch{Name: &name}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if _, err := cat.ToggleFavorite(ctx, item.ID); err != nil {
		t.Fatalf("ToggleFavorite: %v", err)
	}
	stored, _ := store.GetClothing(ctx, cat.db, item.ID)
	if !stored.IsFavorite {
		t.Fatal("expected favorite durable before the timer fires")
	}

	sched.Fire()

	stored, _ = store.GetClothing(ctx, cat.db, item.ID)
	if !stored.IsFavorite {
		t.Error("expected favorite to survive the debounced write")
	}
	if stored.Name != "Winter Coat" {
		t.Errorf("expected patched name durable, got %q", stored.Name)
	}
}

func TestDeleteInsideUpdateWindow(t *testing.T) {
	cat, sched := newTestCatalog(t)
	ctx := context.Background()

	item, _ := cat.Add(ctx, testForm("Scarf", model.CategoryAccessory))
	name := "Wool Scarf"
	cat.Update(ctx, item.ID, &model.ClothingPatch{Name: &name})

	if err := cat.Delete(ctx, item.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	sched.Fire()

	stored, _ := store.GetClothing(ctx, cat.db, item.ID)
	if stored != nil {
		t.Errorf("expected deleted item to stay deleted, got %+v", stored)
	}
}

func TestUpdateUnknownIDIsNoop(t *testing.T) {
	cat, _ := newTestCatalog(t)

	name := "Ghost"
	updated, err := cat.Update(context.Background(), "missing", &model.ClothingPatch{Name: &name})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated != nil {
		t.Errorf("expected nil for unknown id, got %+v", updated)
	}
	if cat.PendingWrite() {
		t.Error("expected no pending write for unknown id")
	}
}

func TestFlushPersistsPendingWrite(t *testing.T) {
	cat, _ := newTestCatalog(t)
	ctx := context.Background()

	item, _ := cat.Add(ctx, testForm("Bag", model.CategoryBag))
	name := "Leather Bag"
	cat.Update(ctx, item.ID, &model.ClothingPatch{Name: &name})

	if err := cat.Flush(ctx); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	stored, _ := store.GetClothing(ctx, cat.db, item.ID)
	if stored.Name != "Leather Bag" {
		t.Errorf("expected flushed name, got %q", stored.Name)
	}
	if cat.PendingWrite() {
		t.Error("expected no pending write after flush")
	}
}

func TestDeleteRemovesBothLayers(t *testing.T) {
	cat, _ := newTestCatalog(t)
	ctx := context.Background()

	item, _ := cat.Add(ctx, testForm("Socks", model.CategoryUnderwear))

	if err := cat.Delete(ctx, item.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if cat.Get(item.ID) != nil {
		t.Error("expected item gone from memory")
	}
	stored, _ := store.GetClothing(ctx, cat.db, item.ID)
	if stored != nil {
		t.Error("expected item gone from store")
	}

	// Idempotent.
	if err := cat.Delete(ctx, item.ID); err != nil {
		t.Errorf("expected repeat delete to be a no-op, got %v", err)
	}
}

func TestDeleteMany(t *testing.T) {
	cat, _ := newTestCatalog(t)
	ctx := context.Background()

	a, _ := cat.Add(ctx, testForm("A", model.CategoryTop))
	b, _ := cat.Add(ctx, testForm("B", model.CategoryTop))
	c, _ := cat.Add(ctx, testForm("C", model.CategoryTop))

	if err := cat.DeleteMany(ctx, []string{a.ID, c.ID}); err != nil {
		t.Fatalf("DeleteMany: %v", err)
	}
	items := cat.Items()
	if len(items) != 1 || items[0].ID != b.ID {
		t.Errorf("expected only %q left, got %v", b.Name, items)
	}
}

func TestToggles(t *testing.T) {
	cat, _ := newTestCatalog(t)
	ctx := context.Background()

	item, _ := cat.Add(ctx, testForm("Dress", model.CategoryDress))

	toggled, err := cat.ToggleFavorite(ctx, item.ID)
	if err != nil {
		t.Fatalf("ToggleFavorite: %v", err)
	}
	if !toggled.IsFavorite {
		t.Error("expected favorite set")
	}

	// Toggles persist immediately, no debounce.
	stored, _ := store.GetClothing(ctx, cat.db, item.ID)
	if !stored.IsFavorite {
		t.Error("expected favorite durable immediately")
	}

	toggled, _ = cat.ToggleNeedsWash(ctx, item.ID)
	if !toggled.NeedsWash {
		t.Error("expected needsWash set")
	}
	toggled, _ = cat.ToggleNeedsWash(ctx, item.ID)
	if toggled.NeedsWash {
		t.Error("expected needsWash cleared after second toggle")
	}

	// Unknown id is a no-op.
	res, err := cat.ToggleFavorite(ctx, "missing")
	if err != nil || res != nil {
		t.Errorf("expected nil no-op for unknown id, got %v / %v", res, err)
	}
}

func TestClearAndResetToSample(t *testing.T) {
	cat, _ := newTestCatalog(t)
	ctx := context.Background()

	cat.Add(ctx, testForm("Something", model.CategoryTop))
	if err := cat.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if cat.Count() != 0 {
		t.Errorf("expected empty catalog, got %d items", cat.Count())
	}
	n, _ := store.CountClothes(ctx, cat.db)
	if n != 0 {
		t.Errorf("expected empty store, got %d items", n)
	}

	if err := cat.ResetToSample(ctx); err != nil {
		t.Fatalf("ResetToSample: %v", err)
	}
	if cat.Count() == 0 {
		t.Error("expected sample items after reset")
	}
	n, _ = store.CountClothes(ctx, cat.db)
	if n != cat.Count() {
		t.Errorf("store has %d items, memory has %d", n, cat.Count())
	}
}
