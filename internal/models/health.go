package models

import "gorm.io/datatypes"

// SleepLog - одна запись на пользователя за дату
type SleepLog struct {
	Base
	UserID   string  `gorm:"type:varchar(36);not null;uniqueIndex:idx_sleep_user_date" json:"-"`
	Date     string  `gorm:"size:10;not null;uniqueIndex:idx_sleep_user_date" json:"date"`
	BedTime  string  `gorm:"size:5;not null" json:"bedTime"`
	WakeTime string  `gorm:"size:5;not null" json:"wakeTime"`
	Duration int     `json:"duration"` // минуты
	Quality  int     `json:"quality"`  // 1-5
	Notes    *string `gorm:"type:text" json:"notes,omitempty"`
}

type WorkoutProgram struct {
	Base
	UserID             string                  `gorm:"type:varchar(36);index;not null" json:"-"`
	Name               string                  `gorm:"size:255;not null" json:"name"`
	Description        *string                 `gorm:"type:text" json:"description,omitempty"`
	Sessions           []WorkoutProgramSession `gorm:"foreignKey:ProgramID;constraint:OnDelete:CASCADE" json:"sessions"`
	Active             bool                    `json:"active"`
	AutoCreateMissions bool                    `json:"autoCreateMissions"`
}

// WorkoutProgramSession - шаблон занятия на день недели (0 = воскресенье)
type WorkoutProgramSession struct {
	Base
	ProgramID  string  `gorm:"type:varchar(36);index;not null" json:"-"`
	DayOfWeek  int     `json:"dayOfWeek"`
	Type       string  `gorm:"size:50;not null" json:"type"`
	CustomType *string `gorm:"size:100" json:"customType,omitempty"`
	Duration   int     `json:"duration"`
	Intensity  string  `gorm:"size:20" json:"intensity"`
	Time       *string `gorm:"size:5" json:"time,omitempty"`
}

type WorkoutSession struct {
	Base
	UserID     string  `gorm:"type:varchar(36);index;not null" json:"-"`
	Date       string  `gorm:"size:10;index;not null" json:"date"`
	Type       string  `gorm:"size:50;not null" json:"type"`
	CustomType *string `gorm:"size:100" json:"customType,omitempty"`
	Duration   int     `json:"duration"`
	Intensity  string  `gorm:"size:20" json:"intensity"`
	Time       *string `gorm:"size:5" json:"time,omitempty"`
	Notes      *string `gorm:"type:text" json:"notes,omitempty"`
	Completed  bool    `json:"completed"`
	ProgramID  *string `gorm:"type:varchar(36);index" json:"programId,omitempty"`
	MissionID  *string `gorm:"type:varchar(36)" json:"missionId,omitempty"`
}

// Label - название занятия для людей: customType для "other"
func (s WorkoutSession) Label() string {
	if s.CustomType != nil && *s.CustomType != "" {
		return *s.CustomType
	}
	return s.Type
}

type PersonalRecord struct {
	Base
	UserID   string  `gorm:"type:varchar(36);index;not null" json:"-"`
	Exercise string  `gorm:"size:255;not null" json:"exercise"`
	Value    float64 `json:"value"`
	Reps     *int    `json:"reps,omitempty"`
	Unit     string  `gorm:"size:20;not null" json:"unit"`
	Date     string  `gorm:"size:10;not null" json:"date"`
}

const (
	GoalWeightLoss  = "weight-loss"
	GoalMaintenance = "maintenance"
	GoalMuscleGain  = "muscle-gain"
)

type FitnessProfile struct {
	Base
	UserID        string   `gorm:"type:varchar(36);uniqueIndex;not null" json:"-"`
	Age           int      `json:"age"`
	Weight        float64  `json:"weight"` // кг
	Height        float64  `json:"height"` // см
	Gender        string   `gorm:"size:10" json:"gender"`
	Goal          string   `gorm:"size:20" json:"goal"`
	ActivityLevel string   `gorm:"size:20" json:"activityLevel"`
	TargetWeight  *float64 `json:"targetWeight,omitempty"`
}

// Meal хранится внутри DailyNutrition как JSON
type Meal struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Time     string  `json:"time,omitempty"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// DailyNutrition - сумма за день, пересчитывается из Meals при каждом изменении
type DailyNutrition struct {
	Base
	UserID   string                    `gorm:"type:varchar(36);not null;uniqueIndex:idx_nutrition_user_date" json:"-"`
	Date     string                    `gorm:"size:10;not null;uniqueIndex:idx_nutrition_user_date" json:"date"`
	Calories int                       `json:"calories"`
	Protein  float64                   `json:"protein"`
	Carbs    float64                   `json:"carbs"`
	Fats     float64                   `json:"fats"`
	Meals    datatypes.JSONSlice[Meal] `json:"meals"`
}
