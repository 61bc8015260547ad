package models

// Виды рутин: утренние и вечерние действия живут в одной таблице
const (
	RoutineMorning = "morning"
	RoutineNight   = "night"
)

const (
	ImportanceLow    = "low"
	ImportanceMedium = "medium"
	ImportanceHigh   = "high"
)

type RoutineAction struct {
	Base
	UserID     string       `gorm:"type:varchar(36);index;not null" json:"-"`
	Kind       string       `gorm:"size:10;index;not null" json:"-"`
	Name       string       `gorm:"size:255;not null" json:"name"`
	Category   *string      `gorm:"size:100" json:"category,omitempty"`
	Importance string       `gorm:"size:10;not null" json:"importance"`
	Logs       []RoutineLog `gorm:"foreignKey:ActionID;constraint:OnDelete:CASCADE" json:"logs"`
}

// RoutineLog - отметка за день, не больше одной на (ActionID, Date)
type RoutineLog struct {
	Base
	ActionID  string `gorm:"type:varchar(36);not null;uniqueIndex:idx_routine_log_action_date" json:"actionId"`
	Date      string `gorm:"size:10;not null;uniqueIndex:idx_routine_log_action_date" json:"date"`
	Completed bool   `json:"completed"`
}
