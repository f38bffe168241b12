package model

import (
	"fmt"
	"strconv"
	"time"
)

// ClothingItem is a single garment or accessory in the catalog.
// Field names match the JSON backup format.
type ClothingItem struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Images        []string  `json:"images"`
	Category      string    `json:"category"`
	Area          string    `json:"area,omitempty"`
	Season        []string  `json:"season"`
	Occasion      []string  `json:"occasion"`
	Color         string    `json:"color"`
	Brand         string    `json:"brand,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	PurchaseDate  string    `json:"purchaseDate,omitempty"`
	Price         *float64  `json:"price,omitempty"`
	WearFrequency int       `json:"wearFrequency"`
	NeedsWash     bool      `json:"needsWash"`
	IsFavorite    bool      `json:"isFavorite"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Categories.
const (
	CategoryTop       = "top"
	CategoryPants     = "pants"
	CategorySkirt     = "skirt"
	CategoryDress     = "dress"
	CategoryOuterwear = "outerwear"
	CategoryUnderwear = "underwear"
	CategoryShoes     = "shoes"
	CategoryBag       = "bag"
	CategoryAccessory = "accessory"
)

// Wardrobe display areas.
const (
	AreaHanging   = "hanging"
	AreaShelf     = "shelf"
	AreaDrawer    = "drawer"
	AreaUnderwear = "underwear"
	AreaShoes     = "shoes"
)

// Seasons.
const (
	SeasonSpring = "spring"
	SeasonSummer = "summer"
	SeasonAutumn = "autumn"
	SeasonWinter = "winter"
	SeasonAll    = "all"
)

// Occasions.
const (
	OccasionWork   = "work"
	OccasionDate   = "date"
	OccasionSports = "sports"
	OccasionHome   = "home"
	OccasionTravel = "travel"
	OccasionFormal = "formal"
)

// DataVersion is the backup format version.
const DataVersion = "1.0.0"

// MaxImages is the maximum number of images per item.
const MaxImages = 5

var Categories = []string{
	CategoryTop, CategoryPants, CategorySkirt, CategoryDress, CategoryOuterwear,
	CategoryUnderwear, CategoryShoes, CategoryBag, CategoryAccessory,
}

var Areas = []string{AreaHanging, AreaShelf, AreaDrawer, AreaUnderwear, AreaShoes}

var Seasons = []string{SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter, SeasonAll}

var Occasions = []string{OccasionWork, OccasionDate, OccasionSports, OccasionHome, OccasionTravel, OccasionFormal}

// categoryArea maps each category to its default wardrobe area.
// This table is the single source of truth for area derivation.
var categoryArea = map[string]string{
	CategoryTop:       AreaHanging,
	CategorySkirt:     AreaHanging,
	CategoryDress:     AreaHanging,
	CategoryOuterwear: AreaHanging,
	CategoryBag:       AreaShelf,
	CategoryPants:     AreaDrawer,
	CategoryAccessory: AreaDrawer,
	CategoryUnderwear: AreaUnderwear,
	CategoryShoes:     AreaShoes,
}

// DefaultArea returns the default area for a category, or AreaDrawer for
// an unknown category.
func DefaultArea(category string) string {
	if area, ok := categoryArea[category]; ok {
		return area
	}
	return AreaDrawer
}

// ItemArea returns the effective display area for an item: the explicit
// override when set to a known area, otherwise the category default.
func (c *ClothingItem) ItemArea() string {
	if ValidArea(c.Area) {
		return c.Area
	}
	return DefaultArea(c.Category)
}

func ValidCategory(s string) bool {
	_, ok := categoryArea[s]
	return ok
}

func ValidArea(s string) bool {
	for _, a := range Areas {
		if s == a {
			return true
		}
	}
	return false
}

func ValidSeason(s string) bool {
	for _, v := range Seasons {
		if s == v {
			return true
		}
	}
	return false
}

func ValidOccasion(s string) bool {
	for _, v := range Occasions {
		if s == v {
			return true
		}
	}
	return false
}

// ClothingForm is the input for creating an item. Price is a string so
// the form can leave it blank; it is coerced on add.
type ClothingForm struct {
	Name          string   `json:"name"`
	Images        []string `json:"images"`
	Category      string   `json:"category"`
	Area          string   `json:"area"`
	Season        []string `json:"season"`
	Occasion      []string `json:"occasion"`
	Color         string   `json:"color"`
	Brand         string   `json:"brand"`
	Notes         string   `json:"notes"`
	PurchaseDate  string   `json:"purchaseDate"`
	Price         string   `json:"price"`
	WearFrequency int      `json:"wearFrequency"`
	NeedsWash     bool     `json:"needsWash"`
	IsFavorite    bool     `json:"isFavorite"`
}

// Validate checks the form before an item is constructed from it.
func (f *ClothingForm) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("name required")
	}
	if !ValidCategory(f.Category) {
		return fmt.Errorf("invalid category %q", f.Category)
	}
	if f.Area != "" && !ValidArea(f.Area) {
		return fmt.Errorf("invalid area %q", f.Area)
	}
	if len(f.Season) == 0 {
		return fmt.Errorf("at least one season required")
	}
	for _, s := range f.Season {
		if !ValidSeason(s) {
			return fmt.Errorf("invalid season %q", s)
		}
	}
	if len(f.Occasion) == 0 {
		return fmt.Errorf("at least one occasion required")
	}
	for _, o := range f.Occasion {
		if !ValidOccasion(o) {
			return fmt.Errorf("invalid occasion %q", o)
		}
	}
	if f.WearFrequency != 0 && (f.WearFrequency < 1 || f.WearFrequency > 5) {
		return fmt.Errorf("wear frequency must be between 1 and 5")
	}
	if len(f.Images) > MaxImages {
		return fmt.Errorf("at most %d images allowed", MaxImages)
	}
	if f.Price != "" {
		if _, err := strconv.ParseFloat(f.Price, 64); err != nil {
			return fmt.Errorf("invalid price %q", f.Price)
		}
	}
	return nil
}

// ClothingPatch is a partial update. Nil fields are left unchanged.
// An Area pointer to the empty string clears the explicit override.
type ClothingPatch struct {
	Name          *string   `json:"name,omitempty"`
	Images        *[]string `json:"images,omitempty"`
	Category      *string   `json:"category,omitempty"`
	Area          *string   `json:"area,omitempty"`
	Season        *[]string `json:"season,omitempty"`
	Occasion      *[]string `json:"occasion,omitempty"`
	Color         *string   `json:"color,omitempty"`
	Brand         *string   `json:"brand,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	PurchaseDate  *string   `json:"purchaseDate,omitempty"`
	Price         *string   `json:"price,omitempty"`
	WearFrequency *int      `json:"wearFrequency,omitempty"`
	NeedsWash     *bool     `json:"needsWash,omitempty"`
	IsFavorite    *bool     `json:"isFavorite,omitempty"`
}

// Validate checks the defined fields of a patch.
func (p *ClothingPatch) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if p.Category != nil && !ValidCategory(*p.Category) {
		return fmt.Errorf("invalid category %q", *p.Category)
	}
	if p.Area != nil && *p.Area != "" && !ValidArea(*p.Area) {
		return fmt.Errorf("invalid area %q", *p.Area)
	}
	if p.Season != nil {
		if len(*p.Season) == 0 {
			return fmt.Errorf("at least one season required")
		}
		for _, s := range *p.Season {
			if !ValidSeason(s) {
				return fmt.Errorf("invalid season %q", s)
			}
		}
	}
	if p.Occasion != nil {
		if len(*p.Occasion) == 0 {
			return fmt.Errorf("at least one occasion required")
		}
		for _, o := range *p.Occasion {
			if !ValidOccasion(o) {
				return fmt.Errorf("invalid occasion %q", o)
			}
		}
	}
	if p.WearFrequency != nil && (*p.WearFrequency < 1 || *p.WearFrequency > 5) {
		return fmt.Errorf("wear frequency must be between 1 and 5")
	}
	if p.Images != nil && len(*p.Images) > MaxImages {
		return fmt.Errorf("at most %d images allowed", MaxImages)
	}
	if p.Price != nil && *p.Price != "" {
		if _, err := strconv.ParseFloat(*p.Price, 64); err != nil {
			return fmt.Errorf("invalid price %q", *p.Price)
		}
	}
	return nil
}

// Apply copies the defined patch fields onto the item.
func (p *ClothingPatch) Apply(item *ClothingItem) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Images != nil {
		item.Images = *p.Images
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Area != nil {
		item.Area = *p.Area
	}
	if p.Season != nil {
		item.Season = *p.Season
	}
	if p.Occasion != nil {
		item.Occasion = *p.Occasion
	}
	if p.Color != nil {
		item.Color = *p.Color
	}
	if p.Brand != nil {
		item.Brand = *p.Brand
	}
	if p.Notes != nil {
		item.Notes = *p.Notes
	}
	if p.PurchaseDate != nil {
		item.PurchaseDate = *p.PurchaseDate
	}
	if p.Price != nil {
		item.Price = ParsePrice(*p.Price)
	}
	if p.WearFrequency != nil {
		item.WearFrequency = *p.WearFrequency
	}
	if p.NeedsWash != nil {
		item.NeedsWash = *p.NeedsWash
	}
	if p.IsFavorite != nil {
		item.IsFavorite = *p.IsFavorite
	}
}

// ParsePrice coerces a form price string to a number, or nil when blank
// or unparsable.
func ParsePrice(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// Filter is a set of optional predicates over the catalog. All defined
// predicates are AND-combined.
type Filter struct {
	Category   string `json:"category,omitempty"`
	Season     string `json:"season,omitempty"`
	Occasion   string `json:"occasion,omitempty"`
	Color      string `json:"color,omitempty"`
	Keyword    string `json:"keyword,omitempty"`
	NeedsWash  *bool  `json:"needsWash,omitempty"`
	IsFavorite *bool  `json:"isFavorite,omitempty"`
}
