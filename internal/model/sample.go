package model

import "time"

// sampleSeed holds the static part of a sample item.
type sampleSeed struct {
	id       string
	name     string
	category string
	season   []string
	occasion []string
	color    string
	brand    string
	notes    string
	wearFreq int
	favorite bool
}

var sampleSeeds = []sampleSeed{
	{
		id: "sample-white-tee", name: "White Cotton Tee", category: CategoryTop,
		season: []string{SeasonAll}, occasion: []string{OccasionHome, OccasionWork},
		color: "#FFFFFF", brand: "Uniqlo", notes: "Goes with everything", wearFreq: 5, favorite: true,
	},
	{
		id: "sample-blue-jeans", name: "Blue Straight Jeans", category: CategoryPants,
		season: []string{SeasonSpring, SeasonAutumn}, occasion: []string{OccasionWork, OccasionDate},
		color: "#4169E1", brand: "Levi's", wearFreq: 4,
	},
	{
		id: "sample-black-dress", name: "Little Black Dress", category: CategoryDress,
		season: []string{SeasonSummer}, occasion: []string{OccasionDate, OccasionFormal},
		color: "#000000", notes: "Dry clean only", wearFreq: 2, favorite: true,
	},
	{
		id: "sample-wool-coat", name: "Camel Wool Coat", category: CategoryOuterwear,
		season: []string{SeasonWinter}, occasion: []string{OccasionWork, OccasionFormal},
		color: "#8B4513", brand: "COS", wearFreq: 3,
	},
	{
		id: "sample-pleated-skirt", name: "Pleated Midi Skirt", category: CategorySkirt,
		season: []string{SeasonSpring, SeasonSummer}, occasion: []string{OccasionWork},
		color: "#F5F5DC", wearFreq: 3,
	},
	{
		id: "sample-sneakers", name: "White Sneakers", category: CategoryShoes,
		season: []string{SeasonAll}, occasion: []string{OccasionSports, OccasionTravel},
		color: "#FFFFFF", brand: "Adidas", wearFreq: 5, favorite: true,
	},
	{
		id: "sample-tote-bag", name: "Canvas Tote", category: CategoryBag,
		season: []string{SeasonAll}, occasion: []string{OccasionHome, OccasionTravel},
		color: "#F0E68C", wearFreq: 4,
	},
	{
		id: "sample-silk-scarf", name: "Silk Scarf", category: CategoryAccessory,
		season: []string{SeasonSpring, SeasonAutumn}, occasion: []string{OccasionDate, OccasionFormal},
		color: "#FFB6C1", notes: "Gift from mom", wearFreq: 1,
	},
}

// SampleItems builds the built-in starter catalog used to seed an empty
// store. Timestamps are set to the given time.
func SampleItems(now time.Time) []ClothingItem {
	items := make([]ClothingItem, 0, len(sampleSeeds))
	for _, s := range sampleSeeds {
		items = append(items, ClothingItem{
			ID:            s.id,
			Name:          s.name,
			Images:        []string{},
			Category:      s.category,
			Season:        s.season,
			Occasion:      s.occasion,
			Color:         s.color,
			Brand:         s.brand,
			Notes:         s.notes,
			WearFrequency: s.wearFreq,
			IsFavorite:    s.favorite,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}
	return items
}
