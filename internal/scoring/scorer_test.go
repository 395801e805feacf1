package scoring

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"nutriplan/internal/meal"
)

const tolerance = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func TestDefaultWeights(t *testing.T) {
	w := DefaultWeights()
	// The stock factors deliberately sum to 0.95.
	if !approx(w.Sum(), 0.95) {
		t.Errorf("expected default weights to sum to 0.95, got %v", w.Sum())
	}
	if n := w.Normalized(); !approx(n.Sum(), 1) {
		t.Errorf("expected normalized weights to sum to 1, got %v", n.Sum())
	}
}

func TestScore(t *testing.T) {
	s := NewScorer(DefaultConfig())

	tests := []struct {
		name    string
		c       meal.Candidate
		cuisine meal.Cuisine
		want    float64
	}{
		{"avocado toast", meal.Candidate{Name: "Avocado Toast with Fruit", Cost: 5.50}, meal.CuisineAny, 0.66},
		{"overnight oats", meal.Candidate{Name: "Overnight Oats with Almond Milk", Cost: 3.75}, meal.CuisineAny, 0.695},
		{"tofu scramble", meal.Candidate{Name: "Tofu Scramble with Vegetables", Cost: 4.50}, meal.CuisineAny, 0.35*(1-175.0/525) + 0.25*0.64 + 0.15*0.8 + 0.20},
		{"cuisine mismatch", meal.Candidate{Name: "Overnight Oats with Almond Milk", Cost: 3.75}, meal.CuisineItalian, 0.555},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Score(tt.c, 525, 6.25, meal.GoalMaintenance, tt.cuisine)
			if !approx(got, tt.want) {
				t.Errorf("Score = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCapitalisedGoalKeywordMissesThreshold(t *testing.T) {
	s := NewScorer(DefaultConfig())
	c := meal.Candidate{Name: "Grilled Chicken Salad", Cost: 8.25}

	// 550 kcal estimate against 630, over budget, goal miss, any cuisine.
	want := 0.35*(1-80.0/630) + 0.15*0.6 + 0.20
	got := s.Score(c, 630, 7.5, meal.GoalWeightLoss, meal.CuisineAny)
	if !approx(got, want) {
		t.Fatalf("Score = %v, want %v", got, want)
	}
	if s.Suitable(got) {
		t.Errorf("expected %v to fall below the threshold", got)
	}
}

func TestNormalizedScoring(t *testing.T) {
	c := meal.Candidate{Name: "Overnight Oats with Almond Milk", Cost: 3.75}
	stock := NewScorer(DefaultConfig()).Score(c, 525, 6.25, meal.GoalMaintenance, meal.CuisineAny)

	cfg := DefaultConfig()
	cfg.Normalize = true
	normalized := NewScorer(cfg).Score(c, 525, 6.25, meal.GoalMaintenance, meal.CuisineAny)

	if !approx(normalized, stock/0.95) {
		t.Errorf("expected normalized score %v, got %v", stock/0.95, normalized)
	}
}

func TestSubScores(t *testing.T) {
	t.Run("calorie match", func(t *testing.T) {
		if got := CalorieMatch(525, 525); got != 1 {
			t.Errorf("exact hit: got %v", got)
		}
		if got := CalorieMatch(2000, 500); got != 0 {
			t.Errorf("large miss: got %v", got)
		}
		if got := CalorieMatch(300, 0); got != 0 {
			t.Errorf("zero target should clamp to 1 kcal: got %v", got)
		}
	})

	t.Run("budget match", func(t *testing.T) {
		if got := BudgetMatch(7, 6.25); got != 0 {
			t.Errorf("over budget: got %v", got)
		}
		if got := BudgetMatch(6.25, 6.25); got != 0.5 {
			t.Errorf("exactly on budget: got %v", got)
		}
		if got := BudgetMatch(0, 0); got != 1 {
			t.Errorf("free meal on zero budget: got %v", got)
		}
	})

	t.Run("health goal match", func(t *testing.T) {
		tests := []struct {
			name string
			goal meal.Goal
			want float64
		}{
			{"Grilled Chicken Salad", meal.GoalWeightLoss, 0.6},
			{"grilled chicken salad", meal.GoalWeightLoss, 0.9},
			{"Vegetable Lasagna", meal.GoalWeightLoss, 0.6},
			{"Protein Bar", meal.GoalMuscleGain, 0.6},
			{"protein bar", meal.GoalMuscleGain, 0.9},
			{"Veggie Wrap", meal.GoalMuscleGain, 0.9},
			{"Apple with Almond Butter", meal.GoalMuscleGain, 0.6},
			{"Anything", meal.GoalMaintenance, 0.8},
			{"Anything", meal.Goal(""), 0.5},
		}
		for _, tt := range tests {
			if got := HealthGoalMatch(tt.name, tt.goal); got != tt.want {
				t.Errorf("HealthGoalMatch(%q, %q) = %v, want %v", tt.name, tt.goal, got, tt.want)
			}
		}
	})

	t.Run("health goal keywords are case sensitive", func(t *testing.T) {
		if got := HealthGoalMatch("Beef and Bean Chili", meal.GoalMuscleGain); got != 0.6 {
			t.Errorf("capitalised keyword should miss: got %v", got)
		}
		if got := HealthGoalMatch("Lean beef bowl", meal.GoalMuscleGain); got != 0.9 {
			t.Errorf("lowercase keyword should match: got %v", got)
		}
	})

	t.Run("cuisine match", func(t *testing.T) {
		if got := CuisineMatch("Mediterranean Salad with Feta", meal.CuisineMediterranean); got != 1 {
			t.Errorf("name contains cuisine: got %v", got)
		}
		if got := CuisineMatch("Protein Bar", meal.CuisineIndian); got != 0.3 {
			t.Errorf("mismatch: got %v", got)
		}
		if got := CuisineMatch("Protein Bar", meal.CuisineAny); got != 1 {
			t.Errorf("any: got %v", got)
		}
	})
}

func TestSuitable(t *testing.T) {
	s := NewScorer(DefaultConfig())
	if s.Suitable(0.6) {
		t.Error("threshold itself must not be suitable")
	}
	if !s.Suitable(0.6000001) {
		t.Error("expected score above threshold to be suitable")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty path uses defaults", func(t *testing.T) {
		cfg, err := LoadConfig("")
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg != DefaultConfig() {
			t.Errorf("expected defaults, got %+v", cfg)
		}
	})

	t.Run("partial override", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "scoring.yaml")
		yml := "weights:\n  preference_matching: 0.25\nnormalize: true\n"
		if err := os.WriteFile(path, []byte(yml), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.Weights.PreferenceMatching != 0.25 || cfg.Weights.NutritionalBalance != 0.35 {
			t.Errorf("unexpected weights: %+v", cfg.Weights)
		}
		if !cfg.Normalize || cfg.SuitabilityThreshold != DefaultSuitabilityThreshold {
			t.Errorf("unexpected config: %+v", cfg)
		}
		if w := NewScorer(cfg).Weights(); !approx(w.Sum(), 1) {
			t.Errorf("expected normalized weights, sum %v", w.Sum())
		}
	})

	t.Run("invalid threshold", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "scoring.yaml")
		if err := os.WriteFile(path, []byte("suitability_threshold: 1.5\n"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Error("expected validation error")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected read error")
		}
	})
}
