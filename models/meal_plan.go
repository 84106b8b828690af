package models

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
)

// MealTypes in display order.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner}

func (t MealType) Valid() bool {
	return t == MealBreakfast || t == MealLunch || t == MealDinner
}

// MealPlanItem is an independent copy of a history item inside a meal bucket.
// A history item can be added to several buckets; each copy gets its own
// mealPlanItemId, so later changes to history never reach into plans.
type MealPlanItem struct {
	SearchHistoryItem
	MealPlanItemID   string   `json:"mealPlanItemId"`
	AddedAt          int64    `json:"addedAt"` // unix millis
	ServingsOverride *float64 `json:"servingsOverride,omitempty"`
}

// EffectiveServings returns the servings used for calorie math. An override
// of zero falls back to the base servings, matching the web client where a
// zero override was falsy.
func (i MealPlanItem) EffectiveServings() float64 {
	if i.ServingsOverride != nil && *i.ServingsOverride != 0 {
		return *i.ServingsOverride
	}
	return i.Servings
}

type Meals struct {
	Breakfast []MealPlanItem `json:"breakfast"`
	Lunch     []MealPlanItem `json:"lunch"`
	Dinner    []MealPlanItem `json:"dinner"`
}

// Bucket returns a pointer to the slice for the given meal type, or nil for
// an unknown type.
func (m *Meals) Bucket(t MealType) *[]MealPlanItem {
	switch t {
	case MealBreakfast:
		return &m.Breakfast
	case MealLunch:
		return &m.Lunch
	case MealDinner:
		return &m.Dinner
	}
	return nil
}

type MealPlan struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	CreatedAt     int64    `json:"createdAt"` // unix millis
	UpdatedAt     int64    `json:"updatedAt"`
	Meals         Meals    `json:"meals"`
	TotalCalories float64  `json:"totalCalories"` // always the rounded sum over all buckets
	IsActive      bool     `json:"isActive"`
	CalorieTarget *float64 `json:"calorieTarget,omitempty"`
}

type MealPlanStats struct {
	TotalPlans               int     `json:"totalPlans"`
	TotalMeals               int     `json:"totalMeals"`
	AverageCaloriesPerPlan   float64 `json:"averageCaloriesPerPlan"`
	MostUsedDish             string  `json:"mostUsedDish"`
	ActivePlans              int     `json:"activePlans"`
	TotalCaloriesAcrossPlans float64 `json:"totalCaloriesAcrossPlans"`
}
