package routes

import (
	"github.com/lokeshrana9999/calor-ease-client/controllers"
	"github.com/lokeshrana9999/calor-ease-client/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	// Everything else requires a Bearer token
	protected := r.Group("/")
	protected.Use(middlewares.AuthMiddleware())
	{
		protected.POST("/get-calories", controllers.GetCalories)

		history := protected.Group("/history")
		{
			history.GET("", controllers.GetHistory)
			history.GET("/recent", controllers.GetRecentSearches)
			history.GET("/stats", controllers.GetHistoryStatistics)
			history.GET("/export", controllers.ExportHistory)
			history.POST("/import", controllers.ImportHistory)
			history.DELETE("/:id", controllers.DeleteSearch)
			history.DELETE("", controllers.ClearHistory)
		}

		plans := protected.Group("/meal-plans")
		{
			plans.POST("", controllers.CreateMealPlan)
			plans.GET("", controllers.ListMealPlans)
			plans.GET("/active", controllers.GetActiveMealPlan)
			plans.GET("/stats", controllers.GetMealPlanStatistics)
			plans.GET("/export", controllers.ExportMealPlans)
			plans.POST("/import", controllers.ImportMealPlans)
			plans.DELETE("", controllers.ClearMealPlans)
			plans.GET("/:id", controllers.GetMealPlan)
			plans.PUT("/:id", controllers.UpdateMealPlan)
			plans.DELETE("/:id", controllers.DeleteMealPlan)
			plans.POST("/:id/activate", controllers.ActivateMealPlan)
			plans.POST("/:id/duplicate", controllers.DuplicateMealPlan)
			plans.POST("/:id/meals/:mealType/items", controllers.AddItemToMeal)
			plans.DELETE("/:id/meals/:mealType/items/:itemId", controllers.RemoveItemFromMeal)
			plans.POST("/:id/meals/:mealType/items/:itemId/move", controllers.MoveItemBetweenMeals)
			plans.PUT("/:id/meals/:mealType/items/:itemId/servings", controllers.UpdateItemServings)
		}
	}

	return r
}
