package models

// CalorieResponse is the lookup result shape the original CalorEase API
// returns for a dish. Field names are wire names — exported history blobs
// from the web client must import cleanly.
type CalorieResponse struct {
	DishName           string  `json:"dish_name"`
	Servings           float64 `json:"servings"`
	CaloriesPerServing float64 `json:"calories_per_serving"`
	TotalCalories      float64 `json:"total_calories"`
	Source             string  `json:"source"`
}

// SearchHistoryItem is one recorded calorie lookup.
type SearchHistoryItem struct {
	CalorieResponse
	ID          string `json:"id"`
	Timestamp   int64  `json:"timestamp"` // unix millis
	SearchQuery string `json:"searchQuery"`
}

type SearchHistoryStats struct {
	TotalSearches            int     `json:"totalSearches"`
	TotalCalories            float64 `json:"totalCalories"`
	AverageCaloriesPerSearch float64 `json:"averageCaloriesPerSearch"`
	MostSearchedDish         string  `json:"mostSearchedDish"`
	SearchesThisWeek         int     `json:"searchesThisWeek"`
	SearchesThisMonth        int     `json:"searchesThisMonth"`
}

// PaginatedHistory is one page of history plus paging metadata.
type PaginatedHistory struct {
	Items       []SearchHistoryItem `json:"items"`
	TotalItems  int                 `json:"totalItems"`
	TotalPages  int                 `json:"totalPages"`
	CurrentPage int                 `json:"currentPage"`
	HasNext     bool                `json:"hasNext"`
	HasPrevious bool                `json:"hasPrevious"`
}
