package controllers

import (
	"github.com/lokeshrana9999/calor-ease-client/config"
	"github.com/lokeshrana9999/calor-ease-client/services"

	"github.com/gin-gonic/gin"
)

// nutritionSvc is a hook so tests can point the lookup at a stub server.
var nutritionSvc = func() *services.NutritionService {
	return services.NewNutritionService()
}

func userIDFromCtx(c *gin.Context) (uint, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	switch id := v.(type) {
	case uint:
		return id, true
	case int:
		return uint(id), true
	case int64:
		return uint(id), true
	default:
		return 0, false
	}
}

func historyServiceFor(userID uint) *services.SearchHistoryService {
	return services.NewSearchHistoryService(config.Storage, services.HistoryKeyForUser(userID))
}

func mealPlanServiceFor(userID uint) *services.MealPlanService {
	return services.NewMealPlanService(config.Storage, services.MealPlanKeyForUser(userID))
}
