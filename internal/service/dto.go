package service

import "time"

// Account DTOs
type RegisterDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
}

type LoginDTO struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SettingsDTO struct {
	Theme              string `json:"theme"`
	DayStartHour       int    `json:"dayStartHour"`
	DayEndHour         int    `json:"dayEndHour"`
	ShowQuotes         bool   `json:"showQuotes"`
	ShowStreaks        bool   `json:"showStreaks"`
	ShowCompletedTasks bool   `json:"showCompletedTasks"`
	ShowNightRoutine   bool   `json:"showNightRoutine"`
	ShowWeekNumbers    bool   `json:"showWeekNumbers"`
}

// Routine DTOs
type RoutineActionDTO struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Category   *string `json:"category"`
	Importance string  `json:"importance"`
}

type RoutineLogDTO struct {
	ActionID  string `json:"actionId" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Completed bool   `json:"completed"`
}

// Planning DTOs
type TaskDTO struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	DueDate     *string `json:"dueDate"`
	MissionID   *string `json:"missionId"`
	ProjectID   *string `json:"projectId"`
}

type MissionDTO struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	TimeFrame   string  `json:"timeFrame"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	DueDate     *string `json:"dueDate"`
	// nil - оставить задачи как есть, пустой массив - очистить
	Tasks []TaskDTO `json:"tasks"`
}

type ProjectDTO struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Objectives  []string   `json:"objectives"`
	Deadline    *string    `json:"deadline"`
	CompletedAt *time.Time `json:"completedAt"`
	Tasks       []TaskDTO  `json:"tasks"`
}

type CalendarEventDTO struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	Description       *string `json:"description"`
	Date              string  `json:"date"`
	StartTime         *string `json:"startTime"`
	EndTime           *string `json:"endTime"`
	Priority          string  `json:"priority"`
	IsRecurring       bool    `json:"isRecurring"`
	RecurrencePattern *string `json:"recurrencePattern"`
	MissionID         *string `json:"missionId"`
	ProjectID         *string `json:"projectId"`
	Completed         bool    `json:"completed"`
}

type NoteDTO struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Color   string `json:"color"`
	Pinned  bool   `json:"pinned"`
}

// Health DTOs
type SleepLogDTO struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"`
	BedTime  string  `json:"bedTime"`
	WakeTime string  `json:"wakeTime"`
	Duration int     `json:"duration"`
	Quality  int     `json:"quality"`
	Notes    *string `json:"notes"`
}

type ProgramSessionDTO struct {
	DayOfWeek  int     `json:"dayOfWeek"`
	Type       string  `json:"type"`
	CustomType *string `json:"customType"`
	Duration   int     `json:"duration"`
	Intensity  string  `json:"intensity"`
	Time       *string `json:"time"`
}

type ProgramDTO struct {
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	Description        *string             `json:"description"`
	Sessions           []ProgramSessionDTO `json:"sessions"`
	Active             *bool               `json:"active"`
	AutoCreateMissions bool                `json:"autoCreateMissions"`
}

type ApplyProgramDTO struct {
	ProgramID string `json:"programId" binding:"required"`
	StartDate string `json:"startDate"`
	Weeks     int    `json:"weeks"`
}

type WorkoutDTO struct {
	ID         string  `json:"id"`
	Date       string  `json:"date"`
	Type       string  `json:"type"`
	CustomType *string `json:"customType"`
	Duration   int     `json:"duration"`
	Intensity  string  `json:"intensity"`
	Time       *string `json:"time"`
	Notes      *string `json:"notes"`
	Completed  bool    `json:"completed"`
	ProgramID  *string `json:"programId"`
	MissionID  *string `json:"missionId"`
}

type RecordDTO struct {
	ID       string  `json:"id"`
	Exercise string  `json:"exercise"`
	Value    float64 `json:"value"`
	Reps     *int    `json:"reps"`
	Unit     string  `json:"unit"`
	Date     string  `json:"date"`
}

type ProfileDTO struct {
	Age           int      `json:"age"`
	Weight        float64  `json:"weight"`
	Height        float64  `json:"height"`
	Gender        string   `json:"gender"`
	Goal          string   `json:"goal"`
	ActivityLevel string   `json:"activityLevel"`
	TargetWeight  *float64 `json:"targetWeight"`
}

type MealDTO struct {
	Date     string  `json:"date"`
	Name     string  `json:"name" binding:"required"`
	Time     string  `json:"time"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}
