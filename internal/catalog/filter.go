package catalog

import (
	"strings"

	"wardrobe/internal/model"
)

// ApplyFilter returns the items satisfying every defined predicate.
// Predicates are AND-combined; an undefined predicate passes everything.
func ApplyFilter(items []model.ClothingItem, f model.Filter) []model.ClothingItem {
	out := make([]model.ClothingItem, 0, len(items))
	for _, item := range items {
		if matches(&item, f) {
			out = append(out, item)
		}
	}
	return out
}

func matches(item *model.ClothingItem, f model.Filter) bool {
	if f.Category != "" && item.Category != f.Category {
		return false
	}
	if f.Season != "" && !contains(item.Season, f.Season) {
		return false
	}
	if f.Occasion != "" && !contains(item.Occasion, f.Occasion) {
		return false
	}
	if f.Color != "" && item.Color != f.Color {
		return false
	}
	if f.Keyword != "" && !matchesKeyword(item, f.Keyword) {
		return false
	}
	if f.NeedsWash != nil && item.NeedsWash != *f.NeedsWash {
		return false
	}
	if f.IsFavorite != nil && item.IsFavorite != *f.IsFavorite {
		return false
	}
	return true
}

// matchesKeyword does a case-insensitive substring match against name,
// brand, and notes. Any one field matching is sufficient.
func matchesKeyword(item *model.ClothingItem, keyword string) bool {
	kw := strings.ToLower(keyword)
	for _, field := range []string{item.Name, item.Brand, item.Notes} {
		if field == "" {
			continue
		}
		if strings.Contains(strings.ToLower(field), kw) {
			return true
		}
	}
	return false
}

// HasActiveFilters reports whether any predicate is defined.
func HasActiveFilters(f model.Filter) bool {
	return f.Category != "" || f.Season != "" || f.Occasion != "" ||
		f.Color != "" || f.Keyword != "" || f.NeedsWash != nil || f.IsFavorite != nil
}

// AreaGroups partitions a filtered list into the five wardrobe areas.
type AreaGroups struct {
	Hanging   []model.ClothingItem `json:"hanging"`
	Shelf     []model.ClothingItem `json:"shelf"`
	Drawer    []model.ClothingItem `json:"drawer"`
	Underwear []model.ClothingItem `json:"underwear"`
	Shoes     []model.ClothingItem `json:"shoes"`
}

// GroupByArea assigns each item to its effective area: the explicit
// override when present, otherwise the category default.
func GroupByArea(items []model.ClothingItem) AreaGroups {
	groups := AreaGroups{
		Hanging:   []model.ClothingItem{},
		Shelf:     []model.ClothingItem{},
		Drawer:    []model.ClothingItem{},
		Underwear: []model.ClothingItem{},
		Shoes:     []model.ClothingItem{},
	}
	for _, item := range items {
		switch item.ItemArea() {
		case model.AreaHanging:
			groups.Hanging = append(groups.Hanging, item)
		case model.AreaShelf:
			groups.Shelf = append(groups.Shelf, item)
		case model.AreaDrawer:
			groups.Drawer = append(groups.Drawer, item)
		case model.AreaUnderwear:
			groups.Underwear = append(groups.Underwear, item)
		case model.AreaShoes:
			groups.Shoes = append(groups.Shoes, item)
		default:
			// Imported items can carry area values this build does not
			// know; they land in the drawer like unknown categories do.
			groups.Drawer = append(groups.Drawer, item)
		}
	}
	return groups
}

// GroupByCategory partitions a filtered list by category. Every known
// category is present in the result, possibly empty.
func GroupByCategory(items []model.ClothingItem) map[string][]model.ClothingItem {
	groups := make(map[string][]model.ClothingItem, len(model.Categories))
	for _, cat := range model.Categories {
		groups[cat] = []model.ClothingItem{}
	}
	for _, item := range items {
		groups[item.Category] = append(groups[item.Category], item)
	}
	return groups
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
