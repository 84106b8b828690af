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

	"go.uber.org/zap"
)

const (
	MealPlanStorageKey = "calor_ease_meal_plans"
	MaxMealPlans       = 50
)

func MealPlanKeyForUser(userID uint) string {
	return fmt.Sprintf("%s:%d", MealPlanStorageKey, userID)
}

type MealPlanService struct {
	store storage.Store
	key   string
}

func NewMealPlanService(store storage.Store, key string) *MealPlanService {
	return &MealPlanService{store: store, key: key}
}

// MealPlanUpdate carries a partial update; nil fields are left alone.
type MealPlanUpdate struct {
	Name          *string
	Description   *string
	CalorieTarget *float64
	Meals         *models.Meals
}

// CreateMealPlan builds an empty plan and prepends it, newest first. The
// collection is capped at MaxMealPlans.
func (s *MealPlanService) CreateMealPlan(name, description string, calorieTarget *float64) models.MealPlan {
	now := time.Now().UnixMilli()
	plan := models.MealPlan{
		ID:          utils.GenerateID("meal_plan"),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
		UpdatedAt:   now,
		Meals: models.Meals{
			Breakfast: []models.MealPlanItem{},
			Lunch:     []models.MealPlanItem{},
			Dinner:    []models.MealPlanItem{},
		},
		TotalCalories: 0,
		IsActive:      false,
		CalorieTarget: calorieTarget,
	}

	plans := s.GetAllMealPlans()
	plans = append([]models.MealPlan{plan}, plans...)
	if len(plans) > MaxMealPlans {
		plans = plans[:MaxMealPlans]
	}
	s.saveMealPlans(plans)

	return plan
}

// GetAllMealPlans decodes the stored collection; missing or corrupt blobs
// degrade to an empty slice. Buckets are normalized to non-nil so older or
// hand-edited blobs can't leave null arrays behind.
func (s *MealPlanService) GetAllMealPlans() []models.MealPlan {
	stored, ok := s.store.Get(s.key)
	if !ok {
		return []models.MealPlan{}
	}

	var plans []models.MealPlan
	if err := json.Unmarshal([]byte(stored), &plans); err != nil {
		logger.Warn("failed to parse meal plans", zap.Error(err))
		return []models.MealPlan{}
	}
	for i := range plans {
		normalizeMeals(&plans[i].Meals)
	}
	if plans == nil {
		return []models.MealPlan{}
	}
	return plans
}

func (s *MealPlanService) GetMealPlan(id string) *models.MealPlan {
	for _, plan := range s.GetAllMealPlans() {
		if plan.ID == id {
			p := plan
			return &p
		}
	}
	return nil
}

// UpdateMealPlan merges the partial update into the plan, stamps updatedAt
// and recomputes totalCalories from the buckets unconditionally — the stored
// total is never trusted.
func (s *MealPlanService) UpdateMealPlan(id string, updates MealPlanUpdate) *models.MealPlan {
	plans := s.GetAllMealPlans()

	idx := -1
	for i := range plans {
		if plans[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}

	plan := &plans[idx]
	if updates.Name != nil {
		plan.Name = *updates.Name
	}
	if updates.Description != nil {
		plan.Description = *updates.Description
	}
	if updates.CalorieTarget != nil {
		plan.CalorieTarget = updates.CalorieTarget
	}
	if updates.Meals != nil {
		plan.Meals = *updates.Meals
		normalizeMeals(&plan.Meals)
	}
	plan.UpdatedAt = time.Now().UnixMilli()
	plan.TotalCalories = calculateTotalCalories(plan)

	s.saveMealPlans(plans)

	updated := *plan
	return &updated
}

func (s *MealPlanService) DeleteMealPlan(id string) bool {
	plans := s.GetAllMealPlans()
	filtered := make([]models.MealPlan, 0, len(plans))
	for _, plan := range plans {
		if plan.ID != id {
			filtered = append(filtered, plan)
		}
	}

	if len(filtered) != len(plans) {
		s.saveMealPlans(filtered)
		return true
	}
	return false
}

// AddItemToMeal copies a history item into the named bucket. If the bucket
// already holds the same dish (case-insensitive) the copy replaces it at its
// existing position; otherwise it is appended.
func (s *MealPlanService) AddItemToMeal(planID string, mealType models.MealType, historyItem models.SearchHistoryItem, servingsOverride *float64) *models.MealPlan {
	plan := s.GetMealPlan(planID)
	if plan == nil {
		return nil
	}
	bucket := plan.Meals.Bucket(mealType)
	if bucket == nil {
		return nil
	}

	item := models.MealPlanItem{
		SearchHistoryItem: historyItem,
		MealPlanItemID:    utils.GenerateID("meal_plan"),
		AddedAt:           time.Now().UnixMilli(),
		ServingsOverride:  servingsOverride,
	}

	existing := -1
	for i, it := range *bucket {
		if strings.EqualFold(it.DishName, historyItem.DishName) {
			existing = i
			break
		}
	}
	if existing != -1 {
		(*bucket)[existing] = item
	} else {
		*bucket = append(*bucket, item)
	}

	return s.UpdateMealPlan(planID, MealPlanUpdate{Meals: &plan.Meals})
}

func (s *MealPlanService) RemoveItemFromMeal(planID string, mealType models.MealType, mealPlanItemID string) *models.MealPlan {
	plan := s.GetMealPlan(planID)
	if plan == nil {
		return nil
	}
	bucket := plan.Meals.Bucket(mealType)
	if bucket == nil {
		return nil
	}

	filtered := make([]models.MealPlanItem, 0, len(*bucket))
	for _, it := range *bucket {
		if it.MealPlanItemID != mealPlanItemID {
			filtered = append(filtered, it)
		}
	}
	*bucket = filtered

	return s.UpdateMealPlan(planID, MealPlanUpdate{Meals: &plan.Meals})
}

// MoveItemBetweenMeals takes the item out of the source bucket and appends
// the same item to the destination. Unknown plan, bucket or item yields nil.
func (s *MealPlanService) MoveItemBetweenMeals(planID string, fromMeal, toMeal models.MealType, mealPlanItemID string) *models.MealPlan {
	plan := s.GetMealPlan(planID)
	if plan == nil {
		return nil
	}
	from := plan.Meals.Bucket(fromMeal)
	to := plan.Meals.Bucket(toMeal)
	if from == nil || to == nil {
		return nil
	}

	idx := -1
	for i, it := range *from {
		if it.MealPlanItemID == mealPlanItemID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}

	item := (*from)[idx]
	*from = append((*from)[:idx], (*from)[idx+1:]...)
	*to = append(*to, item)

	return s.UpdateMealPlan(planID, MealPlanUpdate{Meals: &plan.Meals})
}

func (s *MealPlanService) UpdateItemServings(planID string, mealType models.MealType, mealPlanItemID string, newServings float64) *models.MealPlan {
	plan := s.GetMealPlan(planID)
	if plan == nil {
		return nil
	}
	bucket := plan.Meals.Bucket(mealType)
	if bucket == nil {
		return nil
	}

	idx := -1
	for i, it := range *bucket {
		if it.MealPlanItemID == mealPlanItemID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}

	(*bucket)[idx].ServingsOverride = &newServings

	return s.UpdateMealPlan(planID, MealPlanUpdate{Meals: &plan.Meals})
}

// SetActiveMealPlan makes the given plan the single active one. Every other
// plan is deactivated in the same write; their updatedAt stamps are left
// untouched. Nothing is persisted when the id is unknown.
func (s *MealPlanService) SetActiveMealPlan(id string) bool {
	plans := s.GetAllMealPlans()
	found := false

	for i := range plans {
		if plans[i].ID == id {
			found = true
			plans[i].IsActive = true
			plans[i].UpdatedAt = time.Now().UnixMilli()
		} else {
			plans[i].IsActive = false
		}
	}

	if found {
		s.saveMealPlans(plans)
	}
	return found
}

func (s *MealPlanService) GetActiveMealPlan() *models.MealPlan {
	for _, plan := range s.GetAllMealPlans() {
		if plan.IsActive {
			p := plan
			return &p
		}
	}
	return nil
}

// DuplicateMealPlan copies a plan under a new id with fresh item ids in every
// bucket. The copy is never active and defaults its name to "<original> (Copy)".
func (s *MealPlanService) DuplicateMealPlan(id, newName string) *models.MealPlan {
	original := s.GetMealPlan(id)
	if original == nil {
		return nil
	}

	now := time.Now().UnixMilli()
	duplicated := *original
	duplicated.ID = utils.GenerateID("meal_plan")
	duplicated.Name = newName
	if duplicated.Name == "" {
		duplicated.Name = original.Name + " (Copy)"
	}
	duplicated.CreatedAt = now
	duplicated.UpdatedAt = now
	duplicated.IsActive = false
	duplicated.Meals = models.Meals{
		Breakfast: duplicateItems(original.Meals.Breakfast, now),
		Lunch:     duplicateItems(original.Meals.Lunch, now),
		Dinner:    duplicateItems(original.Meals.Dinner, now),
	}

	plans := s.GetAllMealPlans()
	plans = append([]models.MealPlan{duplicated}, plans...)
	if len(plans) > MaxMealPlans {
		plans = plans[:MaxMealPlans]
	}
	s.saveMealPlans(plans)

	return &duplicated
}

func duplicateItems(items []models.MealPlanItem, now int64) []models.MealPlanItem {
	out := make([]models.MealPlanItem, 0, len(items))
	for _, it := range items {
		copied := it
		copied.MealPlanItemID = utils.GenerateID("meal_plan")
		copied.AddedAt = now
		if it.ServingsOverride != nil {
			v := *it.ServingsOverride
			copied.ServingsOverride = &v
		}
		out = append(out, copied)
	}
	return out
}

func (s *MealPlanService) GetStatistics() models.MealPlanStats {
	plans := s.GetAllMealPlans()

	totalPlans := len(plans)
	var activePlans, totalMeals int
	var totalCalories float64
	for _, plan := range plans {
		if plan.IsActive {
			activePlans++
		}
		totalMeals += len(plan.Meals.Breakfast) + len(plan.Meals.Lunch) + len(plan.Meals.Dinner)
		totalCalories += plan.TotalCalories
	}

	var averageCalories float64
	if totalPlans > 0 {
		averageCalories = totalCalories / float64(totalPlans)
	}

	dishCounts := map[string]int{}
	mostUsedDish := "None"
	best := 0
	for _, plan := range plans {
		for _, t := range models.MealTypes {
			for _, it := range *plan.Meals.Bucket(t) {
				name := strings.ToLower(it.DishName)
				dishCounts[name]++
				if dishCounts[name] > best {
					best = dishCounts[name]
					mostUsedDish = name
				}
			}
		}
	}

	return models.MealPlanStats{
		TotalPlans:               totalPlans,
		TotalMeals:               totalMeals,
		AverageCaloriesPerPlan:   math.Round(averageCalories),
		MostUsedDish:             mostUsedDish,
		ActivePlans:              activePlans,
		TotalCaloriesAcrossPlans: math.Round(totalCalories),
	}
}

func (s *MealPlanService) ClearAllMealPlans() {
	if err := s.store.Remove(s.key); err != nil {
		logger.Error("failed to clear meal plans", zap.Error(err))
	}
}

func (s *MealPlanService) ExportMealPlans() string {
	data, err := json.MarshalIndent(s.GetAllMealPlans(), "", "  ")
	if err != nil {
		logger.Error("failed to export meal plans", zap.Error(err))
		return "[]"
	}
	return string(data)
}

// mealPlanImportRecord declares the accepted plan shape: non-empty id and
// name, a meals object, and a numeric total.
type mealPlanImportRecord struct {
	ID            *string       `json:"id" validate:"required,min=1"`
	Name          *string       `json:"name" validate:"required,min=1"`
	Meals         *models.Meals `json:"meals" validate:"required"`
	TotalCalories *float64      `json:"totalCalories" validate:"required"`
}

// ImportMealPlans replaces the stored collection with the elements that pass
// shape validation; a non-array payload is rejected with no partial write.
func (s *MealPlanService) ImportMealPlans(jsonData string) bool {
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(jsonData), &raw); err != nil {
		logger.Warn("failed to import meal plans", zap.Error(err))
		return false
	}
	// a JSON null also decodes into a nil slice without error; only an
	// actual array may replace the collection
	if raw == nil {
		return false
	}

	valid := make([]models.MealPlan, 0, len(raw))
	for _, r := range raw {
		var rec mealPlanImportRecord
		if err := json.Unmarshal(r, &rec); err != nil {
			continue
		}
		if err := validate.Struct(rec); err != nil {
			continue
		}
		var plan models.MealPlan
		if err := json.Unmarshal(r, &plan); err != nil {
			continue
		}
		normalizeMeals(&plan.Meals)
		valid = append(valid, plan)
	}

	s.saveMealPlans(valid)
	return true
}

// MealCalories sums one bucket without rounding; display code rounds. The
// plan's own totalCalories stays the rounded sum over all three buckets —
// the two are intentionally not interchangeable.
func MealCalories(plan *models.MealPlan, mealType models.MealType) float64 {
	bucket := plan.Meals.Bucket(mealType)
	if bucket == nil {
		return 0
	}
	var total float64
	for _, it := range *bucket {
		total += it.EffectiveServings() * it.CaloriesPerServing
	}
	return total
}

func calculateTotalCalories(plan *models.MealPlan) float64 {
	var total float64
	for _, t := range models.MealTypes {
		total += MealCalories(plan, t)
	}
	return math.Round(total)
}

func normalizeMeals(m *models.Meals) {
	if m.Breakfast == nil {
		m.Breakfast = []models.MealPlanItem{}
	}
	if m.Lunch == nil {
		m.Lunch = []models.MealPlanItem{}
	}
	if m.Dinner == nil {
		m.Dinner = []models.MealPlanItem{}
	}
}

func (s *MealPlanService) saveMealPlans(plans []models.MealPlan) {
	data, err := json.Marshal(plans)
	if err != nil {
		logger.Error("failed to encode meal plans", zap.Error(err))
		return
	}
	if err := s.store.Set(s.key, string(data)); err != nil {
		logger.Error("failed to save meal plans", zap.Error(err))
	}
}
