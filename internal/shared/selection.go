package shared

import (
	"time"
)

// Policy names how a slot's meal was chosen.
type Policy string

const (
	PolicyRandom    Policy = "random"
	PolicyBestMatch Policy = "best-match"
	PolicyFallback  Policy = "fallback"
)

// SelectionMeta holds operational metadata for one slot selection.
type SelectionMeta struct {
	Slot            string
	MealName        string
	Policy          Policy
	Score           float64
	NutritionSource string
	Latency         time.Duration
}
