package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// POST /get-calories  { "dish_name": "chicken curry", "servings": 2 }
func GetCalories(c *gin.Context) {
	var body struct {
		DishName string  `json:"dish_name" binding:"required"`
		Servings float64 `json:"servings" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := nutritionSvc().GetCalories(body.DishName, body.Servings)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	// The web client recorded every successful lookup; the server does the
	// same so history stays in step with searches.
	historyServiceFor(userID).AddSearch(*result, body.DishName)

	c.JSON(http.StatusOK, result)
}
