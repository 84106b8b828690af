package services

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/lokeshrana9999/calor-ease-client/models"
)

// NutritionService answers calorie lookups against the USDA FoodData Central
// search API. It is the server-side counterpart of the /get-calories endpoint
// the web client used to call.
type NutritionService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewNutritionService() *NutritionService {
	return &NutritionService{
		apiKey:  os.Getenv("USDA_API_KEY"),
		baseURL: "https://api.nal.usda.gov/fdc/v1",
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// NewNutritionServiceWithBaseURL is used by tests to point at a stub server.
func NewNutritionServiceWithBaseURL(baseURL string) *NutritionService {
	s := NewNutritionService()
	s.baseURL = strings.TrimRight(baseURL, "/")
	return s
}

type foodSearchResponse struct {
	Foods []struct {
		Description   string `json:"description"`
		FoodNutrients []struct {
			NutrientID   int     `json:"nutrientId"`
			NutrientName string  `json:"nutrientName"`
			UnitName     string  `json:"unitName"`
			Value        float64 `json:"value"`
		} `json:"foodNutrients"`
	} `json:"foods"`
}

const energyNutrientID = 1008 // kcal

// GetCalories looks the dish up and builds the CalorieResponse shape the
// stores consume. Servings must be positive.
func (s *NutritionService) GetCalories(dishName string, servings float64) (*models.CalorieResponse, error) {
	dishName = strings.TrimSpace(dishName)
	if dishName == "" {
		return nil, fmt.Errorf("dish name is required")
	}
	if servings <= 0 {
		return nil, fmt.Errorf("servings must be positive")
	}

	u := fmt.Sprintf("%s/foods/search?api_key=%s&query=%s&pageSize=1",
		s.baseURL, url.QueryEscape(s.apiKey), url.QueryEscape(dishName))

	resp, err := s.client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("failed to call FoodData Central: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read FoodData Central response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fooddata central API error %d: %s", resp.StatusCode, string(body))
	}

	var sr foodSearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("failed to parse FoodData Central JSON: %w", err)
	}
	if len(sr.Foods) == 0 {
		return nil, fmt.Errorf("no nutrition data found for %q", dishName)
	}

	food := sr.Foods[0]
	var perServing float64
	found := false
	for _, n := range food.FoodNutrients {
		if n.NutrientID == energyNutrientID || strings.EqualFold(n.NutrientName, "Energy") {
			perServing = n.Value
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("no calorie figure in FoodData Central result for %q", dishName)
	}

	return &models.CalorieResponse{
		DishName:           food.Description,
		Servings:           servings,
		CaloriesPerServing: perServing,
		TotalCalories:      round2(perServing * servings),
		Source:             "USDA FoodData Central",
	}, nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
