package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lokeshrana9999/calor-ease-client/models"
	"github.com/lokeshrana9999/calor-ease-client/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHistoryService() (*SearchHistoryService, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	return NewSearchHistoryService(store, HistoryKeyForUser(1)), store
}

func calorieResult(dish string, servings, perServing float64) models.CalorieResponse {
	return models.CalorieResponse{
		DishName:           dish,
		Servings:           servings,
		CaloriesPerServing: perServing,
		TotalCalories:      servings * perServing,
		Source:             "USDA FoodData Central",
	}
}

func TestAddSearchDistinctDishes(t *testing.T) {
	svc, _ := newHistoryService()

	svc.AddSearch(calorieResult("pasta", 1, 300), "pasta")
	svc.AddSearch(calorieResult("salad", 1, 120), "salad")
	svc.AddSearch(calorieResult("burger", 1, 550), "burger")

	history := svc.GetHistory()
	require.Len(t, history, 3)
	// newest first
	assert.Equal(t, "burger", history[0].DishName)
	assert.Equal(t, "salad", history[1].DishName)
	assert.Equal(t, "pasta", history[2].DishName)
}

func TestAddSearchOverwritesInPlace(t *testing.T) {
	svc, _ := newHistoryService()

	svc.AddSearch(calorieResult("pasta", 1, 300), "pasta")
	svc.AddSearch(calorieResult("salad", 1, 120), "salad")
	svc.AddSearch(calorieResult("burger", 1, 550), "burger")

	before := svc.GetHistory()
	oldID := before[1].ID

	// Same dish (different case) and same servings: replace, don't grow,
	// and keep the positional index rather than moving to the front.
	updated := svc.AddSearch(calorieResult("SALAD", 1, 130), "big salad")

	history := svc.GetHistory()
	require.Len(t, history, 3)
	assert.Equal(t, "SALAD", history[1].DishName)
	assert.Equal(t, updated.ID, history[1].ID)
	assert.NotEqual(t, oldID, history[1].ID)
	assert.Equal(t, "big salad", history[1].SearchQuery)
	assert.Equal(t, "burger", history[0].DishName)
	assert.Equal(t, "pasta", history[2].DishName)
}

func TestAddSearchServingsTolerance(t *testing.T) {
	svc, _ := newHistoryService()

	svc.AddSearch(calorieResult("rice", 2.0, 200), "rice")
	svc.AddSearch(calorieResult("rice", 2.05, 200), "rice again")
	require.Len(t, svc.GetHistory(), 1, "within 0.1 servings should replace")

	svc.AddSearch(calorieResult("rice", 2.2, 200), "more rice")
	require.Len(t, svc.GetHistory(), 2, "0.2 apart is a new entry")
}

func TestHistoryCap(t *testing.T) {
	svc, _ := newHistoryService()

	for i := 0; i < MaxHistoryItems+5; i++ {
		svc.AddSearch(calorieResult(fmt.Sprintf("dish %d", i), 1, 100), "q")
	}

	history := svc.GetHistory()
	assert.Len(t, history, MaxHistoryItems)
	// most recent insertion survives at the front
	assert.Equal(t, fmt.Sprintf("dish %d", MaxHistoryItems+4), history[0].DishName)
}

func TestGetHistoryToleratesCorruptBlob(t *testing.T) {
	svc, store := newHistoryService()

	require.NoError(t, store.Set(HistoryKeyForUser(1), "{definitely not json"))
	assert.Empty(t, svc.GetHistory())

	require.NoError(t, store.Set(HistoryKeyForUser(1), `"a string, not an array"`))
	assert.Empty(t, svc.GetHistory())
}

func TestPaginationReconstructsHistory(t *testing.T) {
	svc, _ := newHistoryService()
	for i := 0; i < 25; i++ {
		svc.AddSearch(calorieResult(fmt.Sprintf("dish %d", i), 1, 100), "q")
	}

	var all []models.SearchHistoryItem
	page := 1
	for {
		p := svc.GetPaginatedHistory(page, 10)
		assert.Equal(t, 25, p.TotalItems)
		assert.Equal(t, 3, p.TotalPages)
		assert.Equal(t, page, p.CurrentPage)
		assert.Equal(t, page > 1, p.HasPrevious)
		all = append(all, p.Items...)
		if !p.HasNext {
			break
		}
		page++
	}

	assert.Equal(t, svc.GetHistory(), all)

	outOfRange := svc.GetPaginatedHistory(7, 10)
	assert.Empty(t, outOfRange.Items)
	assert.Equal(t, 25, outOfRange.TotalItems)
}

func TestSearchHistoryFilters(t *testing.T) {
	svc, _ := newHistoryService()
	svc.AddSearch(calorieResult("Chicken Curry", 1, 400), "spicy chicken")
	svc.AddSearch(calorieResult("Beef Stew", 1, 500), "stew")
	svc.AddSearch(models.CalorieResponse{
		DishName: "Tofu Bowl", Servings: 1, CaloriesPerServing: 250,
		TotalCalories: 250, Source: "Estimated",
	}, "tofu")

	byDish := svc.SearchHistory("CHICKEN", 1, 10)
	require.Len(t, byDish.Items, 1)
	assert.Equal(t, "Chicken Curry", byDish.Items[0].DishName)

	byQuery := svc.SearchHistory("spicy", 1, 10)
	require.Len(t, byQuery.Items, 1)

	bySource := svc.SearchHistory("estimated", 1, 10)
	require.Len(t, bySource.Items, 1)
	assert.Equal(t, "Tofu Bowl", bySource.Items[0].DishName)

	none := svc.SearchHistory("pizza", 1, 10)
	assert.Empty(t, none.Items)
	assert.Equal(t, 0, none.TotalPages)
}

func TestGetRecentSearchesDefaultsToFive(t *testing.T) {
	svc, _ := newHistoryService()
	for i := 0; i < 8; i++ {
		svc.AddSearch(calorieResult(fmt.Sprintf("dish %d", i), 1, 100), "q")
	}

	assert.Len(t, svc.GetRecentSearches(0), 5)
	assert.Len(t, svc.GetRecentSearches(3), 3)
}

func TestStatistics(t *testing.T) {
	svc, store := newHistoryService()

	now := time.Now().UnixMilli()
	day := int64(24 * 60 * 60 * 1000)
	seed := []models.SearchHistoryItem{
		{CalorieResponse: calorieResult("Pasta", 1, 300), ID: "a", Timestamp: now - day, SearchQuery: "pasta"},
		{CalorieResponse: calorieResult("pasta", 2, 300), ID: "b", Timestamp: now - 10*day, SearchQuery: "pasta"},
		{CalorieResponse: calorieResult("Salad", 1, 120), ID: "c", Timestamp: now - 40*day, SearchQuery: "salad"},
	}
	data, err := json.Marshal(seed)
	require.NoError(t, err)
	require.NoError(t, store.Set(HistoryKeyForUser(1), string(data)))

	stats := svc.GetStatistics()
	assert.Equal(t, 3, stats.TotalSearches)
	assert.Equal(t, float64(300+600+120), stats.TotalCalories)
	assert.Equal(t, float64(340), stats.AverageCaloriesPerSearch)
	assert.Equal(t, "pasta", stats.MostSearchedDish, "mode is case-insensitive")
	assert.Equal(t, 1, stats.SearchesThisWeek)
	assert.Equal(t, 2, stats.SearchesThisMonth)
}

func TestStatisticsEmpty(t *testing.T) {
	svc, _ := newHistoryService()

	stats := svc.GetStatistics()
	assert.Equal(t, 0, stats.TotalSearches)
	assert.Equal(t, float64(0), stats.AverageCaloriesPerSearch)
	assert.Equal(t, "None", stats.MostSearchedDish)
}

func TestDeleteSearch(t *testing.T) {
	svc, _ := newHistoryService()
	item := svc.AddSearch(calorieResult("pasta", 1, 300), "pasta")

	assert.True(t, svc.DeleteSearch(item.ID))
	assert.Empty(t, svc.GetHistory())
	assert.False(t, svc.DeleteSearch(item.ID))
}

func TestClearHistory(t *testing.T) {
	svc, store := newHistoryService()
	svc.AddSearch(calorieResult("pasta", 1, 300), "pasta")

	svc.ClearHistory()
	assert.Empty(t, svc.GetHistory())
	_, ok := store.Get(HistoryKeyForUser(1))
	assert.False(t, ok, "blob should be removed, not emptied")
}

func TestExportImportRoundTrip(t *testing.T) {
	svc, _ := newHistoryService()
	svc.AddSearch(calorieResult("pasta", 1, 300), "pasta")
	svc.AddSearch(calorieResult("salad", 2, 120), "salad")
	original := svc.GetHistory()

	exported := svc.ExportHistory()

	fresh, _ := newHistoryService()
	require.True(t, fresh.ImportHistory(exported))
	assert.Equal(t, original, fresh.GetHistory())
}

func TestImportHistoryValidation(t *testing.T) {
	svc, _ := newHistoryService()

	assert.False(t, svc.ImportHistory("not json at all"))
	assert.False(t, svc.ImportHistory(`{"id": "x"}`), "top level must be an array")
	assert.False(t, svc.ImportHistory("null"))
	assert.False(t, svc.ImportHistory("true"))
	assert.False(t, svc.ImportHistory("42"))

	payload := `[
		{"id": "ok", "dish_name": "pasta", "calories_per_serving": 300, "servings": 1, "total_calories": 300, "source": "test", "timestamp": 1, "searchQuery": "pasta"},
		{"id": "", "dish_name": "empty id", "calories_per_serving": 100},
		{"dish_name": "missing id", "calories_per_serving": 100},
		{"id": "bad-cal", "dish_name": "stringy", "calories_per_serving": "lots"},
		42
	]`
	require.True(t, svc.ImportHistory(payload))

	history := svc.GetHistory()
	require.Len(t, history, 1)
	assert.Equal(t, "ok", history[0].ID)
	assert.Equal(t, float64(300), history[0].CaloriesPerServing)
}

func TestImportHistoryNullLeavesCollectionUntouched(t *testing.T) {
	svc, _ := newHistoryService()
	svc.AddSearch(calorieResult("pasta", 1, 300), "pasta")

	// null decodes without error but is not an array; the attempt must be
	// rejected with no write at all
	assert.False(t, svc.ImportHistory("null"))
	require.Len(t, svc.GetHistory(), 1)
}

func TestImportHistoryAcceptsZeroCalories(t *testing.T) {
	svc, _ := newHistoryService()

	// zero is a number; only a missing or non-numeric figure is rejected
	require.True(t, svc.ImportHistory(`[{"id": "z", "dish_name": "water", "calories_per_serving": 0}]`))
	assert.Len(t, svc.GetHistory(), 1)
}

// failingStore rejects every write so the degraded-write path can be observed.
type failingStore struct{}

func (failingStore) Get(string) (string, bool) { return "", false }
func (failingStore) Set(string, string) error  { return errors.New("quota exceeded") }
func (failingStore) Remove(string) error       { return errors.New("quota exceeded") }

func TestAddSearchSurvivesWriteFailure(t *testing.T) {
	svc := NewSearchHistoryService(failingStore{}, HistoryKeyForUser(1))

	// The returned item and the persisted state are allowed to diverge; the
	// call must still hand back the constructed item without panicking.
	item := svc.AddSearch(calorieResult("pasta", 1, 300), "pasta")
	assert.NotEmpty(t, item.ID)
	assert.Empty(t, svc.GetHistory())
}
