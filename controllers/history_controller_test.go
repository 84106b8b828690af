package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lokeshrana9999/calor-ease-client/config"
	"github.com/lokeshrana9999/calor-ease-client/models"
	"github.com/lokeshrana9999/calor-ease-client/services"
	"github.com/lokeshrana9999/calor-ease-client/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRouter wires the protected routes behind a stub middleware that
// injects the user id, so no JWT or database is needed.
func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	config.Storage = storage.NewMemoryStore()

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", uint(1))
		c.Next()
	})

	r.GET("/history", GetHistory)
	r.GET("/history/recent", GetRecentSearches)
	r.GET("/history/stats", GetHistoryStatistics)
	r.GET("/history/export", ExportHistory)
	r.POST("/history/import", ImportHistory)
	r.DELETE("/history/:id", DeleteSearch)
	r.DELETE("/history", ClearHistory)
	return r
}

func seedHistory(t *testing.T, dishes ...string) []models.SearchHistoryItem {
	t.Helper()
	svc := services.NewSearchHistoryService(config.Storage, services.HistoryKeyForUser(1))
	var items []models.SearchHistoryItem
	for _, d := range dishes {
		items = append(items, svc.AddSearch(models.CalorieResponse{
			DishName: d, Servings: 1, CaloriesPerServing: 100, TotalCalories: 100, Source: "test",
		}, d))
	}
	return items
}

func TestGetHistoryEndpoint(t *testing.T) {
	r := testRouter()
	seedHistory(t, "pasta", "salad", "burger")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/history?page=1&limit=2", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var page models.PaginatedHistory
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 3, page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Items, 2)
	assert.True(t, page.HasNext)
}

func TestGetHistoryEndpointWithQuery(t *testing.T) {
	r := testRouter()
	seedHistory(t, "pasta", "salad")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/history?q=pasta", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var page models.PaginatedHistory
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "pasta", page.Items[0].DishName)
}

func TestDeleteSearchEndpoint(t *testing.T) {
	r := testRouter()
	items := seedHistory(t, "pasta")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/history/"+items[0].ID, nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/history/"+items[0].ID, nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestImportHistoryEndpointRejectsBadPayload(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/history/import", strings.NewReader(`{"not": "an array"}`))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportHistoryEndpoint(t *testing.T) {
	r := testRouter()
	seedHistory(t, "pasta")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/history/export", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "search-history.json")
	var exported []models.SearchHistoryItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &exported))
	assert.Len(t, exported, 1)
}
