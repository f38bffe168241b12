// Package stats computes aggregate statistics over the catalog for the
// statistics view.
package stats

import (
	"sort"
	"time"

	"wardrobe/internal/model"
)

// trendDays is the window for the recent-additions trend.
const trendDays = 30

// topColors caps the color breakdown.
const topColors = 10

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type SeasonCount struct {
	Season string `json:"season"`
	Count  int    `json:"count"`
}

type OccasionCount struct {
	Occasion string `json:"occasion"`
	Count    int    `json:"count"`
}

type ColorCount struct {
	Color string `json:"color"`
	Count int    `json:"count"`
}

// TrendPoint is the number of items added on one day.
type TrendPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Stats is the aggregate view over the catalog.
type Stats struct {
	TotalCount     int             `json:"totalCount"`
	CategoryStats  []CategoryCount `json:"categoryStats"`
	SeasonStats    []SeasonCount   `json:"seasonStats"`
	OccasionStats  []OccasionCount `json:"occasionStats"`
	ColorStats     []ColorCount    `json:"colorStats"`
	RecentTrend    []TrendPoint    `json:"recentTrend"`
	TotalValue     float64         `json:"totalValue"`
	FavoriteCount  int             `json:"favoriteCount"`
	NeedsWashCount int             `json:"needsWashCount"`
}

// Compute derives the full statistics view from the item list. Category,
// season and occasion breakdowns omit empty buckets; colors are the top
// ten by count.
func Compute(items []model.ClothingItem, now time.Time) Stats {
	s := Stats{
		TotalCount:    len(items),
		CategoryStats: []CategoryCount{},
		SeasonStats:   []SeasonCount{},
		OccasionStats: []OccasionCount{},
	}

	categoryCounts := make(map[string]int)
	seasonCounts := make(map[string]int)
	occasionCounts := make(map[string]int)
	colorCounts := make(map[string]int)

	for _, item := range items {
		categoryCounts[item.Category]++
		for _, season := range item.Season {
			seasonCounts[season]++
		}
		for _, occasion := range item.Occasion {
			occasionCounts[occasion]++
		}
		colorCounts[item.Color]++

		if item.Price != nil {
			s.TotalValue += *item.Price
		}
		if item.IsFavorite {
			s.FavoriteCount++
		}
		if item.NeedsWash {
			s.NeedsWashCount++
		}
	}

	for _, cat := range model.Categories {
		if n := categoryCounts[cat]; n > 0 {
			s.CategoryStats = append(s.CategoryStats, CategoryCount{Category: cat, Count: n})
		}
	}
	for _, season := range model.Seasons {
		if n := seasonCounts[season]; n > 0 {
			s.SeasonStats = append(s.SeasonStats, SeasonCount{Season: season, Count: n})
		}
	}
	for _, occasion := range model.Occasions {
		if n := occasionCounts[occasion]; n > 0 {
			s.OccasionStats = append(s.OccasionStats, OccasionCount{Occasion: occasion, Count: n})
		}
	}

	s.ColorStats = rankColors(colorCounts)
	s.RecentTrend = trend(items, now)
	return s
}

func rankColors(counts map[string]int) []ColorCount {
	ranked := make([]ColorCount, 0, len(counts))
	for color, count := range counts {
		ranked = append(ranked, ColorCount{Color: color, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Color < ranked[j].Color
	})
	if len(ranked) > topColors {
		ranked = ranked[:topColors]
	}
	return ranked
}

// trend returns one point per day for the last trendDays days, oldest
// first, counting items created on that day.
func trend(items []model.ClothingItem, now time.Time) []TrendPoint {
	points := make([]TrendPoint, trendDays)
	index := make(map[string]int, trendDays)
	for i := 0; i < trendDays; i++ {
		day := now.AddDate(0, 0, -(trendDays - 1 - i)).Format("2006-01-02")
		points[i] = TrendPoint{Date: day}
		index[day] = i
	}

	for _, item := range items {
		day := item.CreatedAt.Format("2006-01-02")
		if i, ok := index[day]; ok {
			points[i].Count++
		}
	}
	return points
}
