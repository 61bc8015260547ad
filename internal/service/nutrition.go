package service

import (
	"fmt"
	"math"

	"github.com/alenapavlenkko/lifetracker/internal/models"
)

// activityFactors - множители BMR по уровню активности
var activityFactors = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very-active": 1.9,
}

// NutritionTargets - дневные нормы
type NutritionTargets struct {
	BMR       int       `json:"bmr"`
	Calories  int       `json:"calories"`
	Protein   int       `json:"protein"`
	Carbs     int       `json:"carbs"`
	Fats      int       `json:"fats"`
	Hydration Hydration `json:"hydration"`
}

// Hydration - рекомендуемый диапазон воды в литрах
type Hydration struct {
	MinLiters float64 `json:"minLiters"`
	MaxLiters float64 `json:"maxLiters"`
}

// EstimateNutrition считает BMR по Миффлину-Сан Жеору и раскладывает калории на БЖУ
func EstimateNutrition(p *models.FitnessProfile) (NutritionTargets, error) {
	factor, ok := activityFactors[p.ActivityLevel]
	if !ok {
		return NutritionTargets{}, invalid("unknown activity level %q", p.ActivityLevel)
	}
	if p.Weight <= 0 || p.Height <= 0 || p.Age <= 0 {
		return NutritionTargets{}, invalid("age, weight and height must be positive")
	}

	bmr := 10*p.Weight + 6.25*p.Height - 5*float64(p.Age)
	if p.Gender == "male" {
		bmr += 5
	} else {
		bmr -= 161
	}

	calories := bmr * factor
	switch p.Goal {
	case models.GoalWeightLoss:
		calories -= 500
	case models.GoalMuscleGain:
		calories += 300
	}
	calories = math.Round(calories)

	proteinPerKg := 1.8
	if p.Goal == models.GoalMuscleGain {
		proteinPerKg = 2.2
	}
	protein := math.Round(p.Weight * proteinPerKg)
	fatKcal := calories * 0.25
	carbs := (calories - protein*4 - fatKcal) / 4

	return NutritionTargets{
		BMR:       int(math.Round(bmr)),
		Calories:  int(calories),
		Protein:   int(protein),
		Fats:      int(math.Round(fatKcal / 9)),
		Carbs:     int(math.Round(carbs)),
		Hydration: EstimateHydration(p.Weight),
	}, nil
}

// EstimateHydration - 30-35 мл на кг веса
func EstimateHydration(weight float64) Hydration {
	return Hydration{
		MinLiters: round2(weight * 0.030),
		MaxLiters: round2(weight * 0.035),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func validActivityLevel(level string) error {
	if _, ok := activityFactors[level]; !ok {
		return fmt.Errorf("%w: unknown activity level %q", ErrValidation, level)
	}
	return nil
}
