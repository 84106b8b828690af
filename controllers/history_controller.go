package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GET /history?page=1&limit=10&q=chicken
func GetHistory(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	svc := historyServiceFor(userID)
	if q := c.Query("q"); q != "" {
		c.JSON(http.StatusOK, svc.SearchHistory(q, page, limit))
		return
	}
	c.JSON(http.StatusOK, svc.GetPaginatedHistory(page, limit))
}

// GET /history/recent?limit=5
func GetRecentSearches(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	c.JSON(http.StatusOK, historyServiceFor(userID).GetRecentSearches(limit))
}

// GET /history/stats
func GetHistoryStatistics(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	c.JSON(http.StatusOK, historyServiceFor(userID).GetStatistics())
}

// DELETE /history/:id
func DeleteSearch(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if !historyServiceFor(userID).DeleteSearch(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "search not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "search deleted"})
}

// DELETE /history
func ClearHistory(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	historyServiceFor(userID).ClearHistory()
	c.JSON(http.StatusOK, gin.H{"message": "history cleared"})
}

// GET /history/export — pretty JSON the client can save as a file.
func ExportHistory(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="search-history.json"`)
	c.Data(http.StatusOK, "application/json", []byte(historyServiceFor(userID).ExportHistory()))
}

// POST /history/import — body is the exported JSON array.
func ImportHistory(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	if !historyServiceFor(userID).ImportHistory(string(body)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid history payload"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "history imported"})
}
