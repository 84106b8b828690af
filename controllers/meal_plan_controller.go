package controllers

import (
	"net/http"

	"github.com/lokeshrana9999/calor-ease-client/models"
	"github.com/lokeshrana9999/calor-ease-client/services"

	"github.com/gin-gonic/gin"
)

// POST /meal-plans
func CreateMealPlan(c *gin.Context) {
	var body struct {
		Name          string   `json:"name" binding:"required"`
		Description   string   `json:"description"`
		CalorieTarget *float64 `json:"calorieTarget"`
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

	plan := mealPlanServiceFor(userID).CreateMealPlan(body.Name, body.Description, body.CalorieTarget)
	c.JSON(http.StatusCreated, plan)
}

// GET /meal-plans
func ListMealPlans(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	c.JSON(http.StatusOK, mealPlanServiceFor(userID).GetAllMealPlans())
}

// GET /meal-plans/:id
func GetMealPlan(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	plan := mealPlanServiceFor(userID).GetMealPlan(c.Param("id"))
	if plan == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal plan not found"})
		return
	}
	c.JSON(http.StatusOK, plan)
}

// PUT /meal-plans/:id
func UpdateMealPlan(c *gin.Context) {
	var body struct {
		Name          *string  `json:"name"`
		Description   *string  `json:"description"`
		CalorieTarget *float64 `json:"calorieTarget"`
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

	plan := mealPlanServiceFor(userID).UpdateMealPlan(c.Param("id"), services.MealPlanUpdate{
		Name:          body.Name,
		Description:   body.Description,
		CalorieTarget: body.CalorieTarget,
	})
	if plan == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal plan not found"})
		return
	}
	c.JSON(http.StatusOK, plan)
}

// DELETE /meal-plans/:id
func DeleteMealPlan(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if !mealPlanServiceFor(userID).DeleteMealPlan(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal plan not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "meal plan deleted"})
}

// POST /meal-plans/:id/activate
func ActivateMealPlan(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if !mealPlanServiceFor(userID).SetActiveMealPlan(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal plan not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "meal plan activated"})
}

// GET /meal-plans/active
func GetActiveMealPlan(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	plan := mealPlanServiceFor(userID).GetActiveMealPlan()
	if plan == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active meal plan"})
		return
	}
	c.JSON(http.StatusOK, plan)
}

// POST /meal-plans/:id/duplicate  { "name": "optional new name" }
func DuplicateMealPlan(c *gin.Context) {
	var body struct {
		Name string `json:"name"`
	}
	// Body is optional; ignore bind errors from an empty body.
	_ = c.ShouldBindJSON(&body)

	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	plan := mealPlanServiceFor(userID).DuplicateMealPlan(c.Param("id"), body.Name)
	if plan == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal plan not found"})
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// GET /meal-plans/stats
func GetMealPlanStatistics(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	c.JSON(http.StatusOK, mealPlanServiceFor(userID).GetStatistics())
}

// DELETE /meal-plans
func ClearMealPlans(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	mealPlanServiceFor(userID).ClearAllMealPlans()
	c.JSON(http.StatusOK, gin.H{"message": "meal plans cleared"})
}

// GET /meal-plans/export
func ExportMealPlans(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="meal-plans.json"`)
	c.Data(http.StatusOK, "application/json", []byte(mealPlanServiceFor(userID).ExportMealPlans()))
}

// POST /meal-plans/import
func ImportMealPlans(c *gin.Context) {
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

	if !mealPlanServiceFor(userID).ImportMealPlans(string(body)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal plan payload"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "meal plans imported"})
}

// POST /meal-plans/:id/meals/:mealType/items
func AddItemToMeal(c *gin.Context) {
	mealType := models.MealType(c.Param("mealType"))
	if !mealType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal type"})
		return
	}

	var body struct {
		Item             models.SearchHistoryItem `json:"item" binding:"required"`
		ServingsOverride *float64                 `json:"servingsOverride"`
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

	plan := mealPlanServiceFor(userID).AddItemToMeal(c.Param("id"), mealType, body.Item, body.ServingsOverride)
	if plan == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal plan not found"})
		return
	}
	c.JSON(http.StatusOK, plan)
}

// DELETE /meal-plans/:id/meals/:mealType/items/:itemId
func RemoveItemFromMeal(c *gin.Context) {
	mealType := models.MealType(c.Param("mealType"))
	if !mealType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal type"})
		return
	}

	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	plan := mealPlanServiceFor(userID).RemoveItemFromMeal(c.Param("id"), mealType, c.Param("itemId"))
	if plan == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal plan not found"})
		return
	}
	c.JSON(http.StatusOK, plan)
}

// POST /meal-plans/:id/meals/:mealType/items/:itemId/move  { "to": "dinner" }
func MoveItemBetweenMeals(c *gin.Context) {
	fromMeal := models.MealType(c.Param("mealType"))
	if !fromMeal.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal type"})
		return
	}

	var body struct {
		To models.MealType `json:"to" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || !body.To.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid destination meal type"})
		return
	}

	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	plan := mealPlanServiceFor(userID).MoveItemBetweenMeals(c.Param("id"), fromMeal, body.To, c.Param("itemId"))
	if plan == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal plan or item not found"})
		return
	}
	c.JSON(http.StatusOK, plan)
}

// PUT /meal-plans/:id/meals/:mealType/items/:itemId/servings  { "servings": 3 }
func UpdateItemServings(c *gin.Context) {
	mealType := models.MealType(c.Param("mealType"))
	if !mealType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal type"})
		return
	}

	var body struct {
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

	plan := mealPlanServiceFor(userID).UpdateItemServings(c.Param("id"), mealType, c.Param("itemId"), body.Servings)
	if plan == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal plan or item not found"})
		return
	}
	c.JSON(http.StatusOK, plan)
}
