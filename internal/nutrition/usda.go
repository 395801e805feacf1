package nutrition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nutriplan/internal/config"
	"nutriplan/internal/meal"
)

// ErrNotFound is returned by a Lookup that has no data for a food.
var ErrNotFound = errors.New("nutrition: food not found")

// Lookup is an authoritative source of nutrition facts.
type Lookup interface {
	Lookup(ctx context.Context, name string) (meal.NutritionInfo, error)
}

const usdaDataType = "Survey (FNDDS)"

// FoodData Central nutrient names, matched as substrings.
const (
	nutrientEnergy  = "Energy"
	nutrientProtein = "Protein"
	nutrientCarbs   = "Carbohydrate, by difference"
	nutrientFat     = "Total lipid (fat)"
	nutrientFiber   = "Fiber, total dietary"
	nutrientSugar   = "Sugars, total including NLEA"
)

// usdaClient queries the USDA FoodData Central search API.
type usdaClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewUSDAClient creates a FoodData Central client. It returns nil when no
// API key is configured.
func NewUSDAClient(cfg *config.Config) Lookup {
	if cfg.USDAAPIKey == "" {
		return nil
	}
	return &usdaClient{
		apiKey:  cfg.USDAAPIKey,
		baseURL: strings.TrimRight(cfg.USDAAPIURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type usdaSearchResponse struct {
	Foods []struct {
		Description   string `json:"description"`
		FoodNutrients []struct {
			NutrientName string  `json:"nutrientName"`
			UnitName     string  `json:"unitName"`
			Value        float64 `json:"value"`
		} `json:"foodNutrients"`
	} `json:"foods"`
}

// Lookup returns nutrition facts for the best-matching food.
func (c *usdaClient) Lookup(ctx context.Context, name string) (meal.NutritionInfo, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("query", name)
	q.Set("dataType", usdaDataType)
	q.Set("pageSize", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/foods/search?"+q.Encode(), nil)
	if err != nil {
		return meal.NutritionInfo{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return meal.NutritionInfo{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return meal.NutritionInfo{}, fmt.Errorf("usda api error: status=%d body=%s", resp.StatusCode, string(bodyBytes))
	}

	var searchResp usdaSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return meal.NutritionInfo{}, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(searchResp.Foods) == 0 {
		return meal.NutritionInfo{}, ErrNotFound
	}

	food := searchResp.Foods[0]
	value := func(nutrient string) float64 {
		for _, n := range food.FoodNutrients {
			if strings.Contains(n.NutrientName, nutrient) {
				return math.Max(0, n.Value)
			}
		}
		return 0
	}

	calories := value(nutrientEnergy)
	if calories <= 0 {
		calories = EstimateCalories(name)
	}

	return meal.NutritionInfo{
		Calories: calories,
		Protein:  value(nutrientProtein),
		Carbs:    value(nutrientCarbs),
		Fat:      value(nutrientFat),
		Fiber:    meal.Grams(value(nutrientFiber)),
		Sugar:    meal.Grams(value(nutrientSugar)),
	}, nil
}
