package services

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/lokeshrana9999/calor-ease-client/logger"
	"github.com/lokeshrana9999/calor-ease-client/models"
	"github.com/lokeshrana9999/calor-ease-client/storage"
	"github.com/lokeshrana9999/calor-ease-client/utils"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	HistoryStorageKey = "calor_ease_search_history"
	MaxHistoryItems   = 1000
)

var validate = validator.New()

// HistoryKeyForUser scopes the blob per account. The web client had one blob
// per browser; the server keeps one per user.
func HistoryKeyForUser(userID uint) string {
	return fmt.Sprintf("%s:%d", HistoryStorageKey, userID)
}

type SearchHistoryService struct {
	store storage.Store
	key   string
}

func NewSearchHistoryService(store storage.Store, key string) *SearchHistoryService {
	return &SearchHistoryService{store: store, key: key}
}

// AddSearch records a successful lookup. A near-identical earlier search
// (same dish case-insensitively, servings within 0.1) is overwritten at its
// existing index rather than moved to the front; otherwise the new item is
// prepended. The collection is capped at MaxHistoryItems.
func (s *SearchHistoryService) AddSearch(result models.CalorieResponse, searchQuery string) models.SearchHistoryItem {
	item := models.SearchHistoryItem{
		CalorieResponse: result,
		ID:              utils.GenerateID("search"),
		Timestamp:       time.Now().UnixMilli(),
		SearchQuery:     strings.ToLower(strings.TrimSpace(searchQuery)),
	}

	history := s.GetHistory()

	existing := -1
	for i, h := range history {
		if strings.EqualFold(h.DishName, result.DishName) &&
			math.Abs(h.Servings-result.Servings) < 0.1 {
			existing = i
			break
		}
	}

	if existing != -1 {
		history[existing] = item
	} else {
		history = append([]models.SearchHistoryItem{item}, history...)
	}

	if len(history) > MaxHistoryItems {
		history = history[:MaxHistoryItems]
	}
	s.saveHistory(history)

	return item
}

// GetHistory returns the decoded collection, newest first. A missing or
// corrupt blob degrades to an empty slice.
func (s *SearchHistoryService) GetHistory() []models.SearchHistoryItem {
	stored, ok := s.store.Get(s.key)
	if !ok {
		return []models.SearchHistoryItem{}
	}

	var history []models.SearchHistoryItem
	if err := json.Unmarshal([]byte(stored), &history); err != nil {
		logger.Warn("failed to parse search history", zap.Error(err))
		return []models.SearchHistoryItem{}
	}
	if history == nil {
		return []models.SearchHistoryItem{}
	}
	return history
}

// GetPaginatedHistory slices the history 1-indexed. Out-of-range pages come
// back with an empty items slice, not an error.
func (s *SearchHistoryService) GetPaginatedHistory(page, limit int) models.PaginatedHistory {
	return paginateHistory(s.GetHistory(), page, limit)
}

// SearchHistory filters by dish name, the recorded query, or the source
// (all case-insensitive substring checks), then paginates the result.
func (s *SearchHistoryService) SearchHistory(query string, page, limit int) models.PaginatedHistory {
	term := strings.ToLower(strings.TrimSpace(query))

	all := s.GetHistory()
	filtered := make([]models.SearchHistoryItem, 0, len(all))
	for _, item := range all {
		if strings.Contains(strings.ToLower(item.DishName), term) ||
			strings.Contains(item.SearchQuery, term) ||
			strings.Contains(strings.ToLower(item.Source), term) {
			filtered = append(filtered, item)
		}
	}

	return paginateHistory(filtered, page, limit)
}

func (s *SearchHistoryService) GetRecentSearches(limit int) []models.SearchHistoryItem {
	if limit <= 0 {
		limit = 5
	}
	history := s.GetHistory()
	if len(history) > limit {
		history = history[:limit]
	}
	return history
}

func (s *SearchHistoryService) GetStatistics() models.SearchHistoryStats {
	history := s.GetHistory()
	now := time.Now().UnixMilli()
	const oneWeek = 7 * 24 * 60 * 60 * 1000
	const oneMonth = 30 * 24 * 60 * 60 * 1000

	totalSearches := len(history)
	var totalCalories float64
	for _, item := range history {
		totalCalories += item.TotalCalories
	}
	var averageCalories float64
	if totalSearches > 0 {
		averageCalories = totalCalories / float64(totalSearches)
	}

	// Mode over lowercased dish names; first dish to reach the max count
	// (in collection order) wins so the result is deterministic.
	dishCounts := map[string]int{}
	mostSearchedDish := "None"
	best := 0
	for _, item := range history {
		name := strings.ToLower(item.DishName)
		dishCounts[name]++
		if dishCounts[name] > best {
			best = dishCounts[name]
			mostSearchedDish = name
		}
	}

	var week, month int
	for _, item := range history {
		age := now - item.Timestamp
		if age < oneWeek {
			week++
		}
		if age < oneMonth {
			month++
		}
	}

	return models.SearchHistoryStats{
		TotalSearches:            totalSearches,
		TotalCalories:            math.Round(totalCalories),
		AverageCaloriesPerSearch: math.Round(averageCalories),
		MostSearchedDish:         mostSearchedDish,
		SearchesThisWeek:         week,
		SearchesThisMonth:        month,
	}
}

// DeleteSearch removes one item by id and reports whether anything changed.
func (s *SearchHistoryService) DeleteSearch(id string) bool {
	history := s.GetHistory()
	filtered := make([]models.SearchHistoryItem, 0, len(history))
	for _, item := range history {
		if item.ID != id {
			filtered = append(filtered, item)
		}
	}

	if len(filtered) != len(history) {
		s.saveHistory(filtered)
		return true
	}
	return false
}

func (s *SearchHistoryService) ClearHistory() {
	if err := s.store.Remove(s.key); err != nil {
		logger.Error("failed to clear search history", zap.Error(err))
	}
}

// ExportHistory renders the whole collection as pretty-printed JSON for the
// caller to offer as a download.
func (s *SearchHistoryService) ExportHistory() string {
	data, err := json.MarshalIndent(s.GetHistory(), "", "  ")
	if err != nil {
		logger.Error("failed to export search history", zap.Error(err))
		return "[]"
	}
	return string(data)
}

// historyImportRecord declares what an incoming element must carry to be
// accepted: a non-empty id and dish name, and a numeric calorie figure.
// Pointer fields distinguish "absent" from zero values.
type historyImportRecord struct {
	ID                 *string  `json:"id" validate:"required,min=1"`
	DishName           *string  `json:"dish_name" validate:"required,min=1"`
	CaloriesPerServing *float64 `json:"calories_per_serving" validate:"required"`
}

// ImportHistory parses an exported payload and replaces the stored
// collection with the elements that pass shape validation. A payload that is
// not a JSON array is rejected outright with no partial write.
func (s *SearchHistoryService) ImportHistory(jsonData string) bool {
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(jsonData), &raw); err != nil {
		logger.Warn("failed to import history", zap.Error(err))
		return false
	}
	// a JSON null also decodes into a nil slice without error; only an
	// actual array may replace the collection
	if raw == nil {
		return false
	}

	valid := make([]models.SearchHistoryItem, 0, len(raw))
	for _, r := range raw {
		var rec historyImportRecord
		if err := json.Unmarshal(r, &rec); err != nil {
			continue
		}
		if err := validate.Struct(rec); err != nil {
			continue
		}
		var item models.SearchHistoryItem
		if err := json.Unmarshal(r, &item); err != nil {
			continue
		}
		valid = append(valid, item)
	}

	s.saveHistory(valid)
	return true
}

// saveHistory persists the full collection. A failed write is logged and
// swallowed; the caller already holds the updated value.
func (s *SearchHistoryService) saveHistory(history []models.SearchHistoryItem) {
	data, err := json.Marshal(history)
	if err != nil {
		logger.Error("failed to encode search history", zap.Error(err))
		return
	}
	if err := s.store.Set(s.key, string(data)); err != nil {
		logger.Error("failed to save search history", zap.Error(err))
	}
}

func paginateHistory(all []models.SearchHistoryItem, page, limit int) models.PaginatedHistory {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	totalItems := len(all)
	totalPages := (totalItems + limit - 1) / limit

	start := (page - 1) * limit
	end := start + limit
	if start > totalItems {
		start = totalItems
	}
	if end > totalItems {
		end = totalItems
	}

	return models.PaginatedHistory{
		Items:       all[start:end],
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		CurrentPage: page,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}
