package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	TaskTodo       = "todo"
	TaskInProgress = "in-progress"
	TaskDone       = "done"
)

const (
	MissionPending    = "pending"
	MissionInProgress = "in-progress"
	MissionCompleted  = "completed"
)

type Task struct {
	Base
	UserID      string     `gorm:"type:varchar(36);index;not null" json:"-"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description,omitempty"`
	Priority    string     `gorm:"size:10;not null" json:"priority"`
	Status      string     `gorm:"size:20;not null" json:"status"`
	DueDate     *string    `gorm:"size:10" json:"dueDate,omitempty"`
	MissionID   *string    `gorm:"type:varchar(36);index" json:"missionId,omitempty"`
	ProjectID   *string    `gorm:"type:varchar(36);index" json:"projectId,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type Mission struct {
	Base
	UserID      string     `gorm:"type:varchar(36);index;not null" json:"-"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description,omitempty"`
	TimeFrame   string     `gorm:"size:10;not null" json:"timeFrame"` // day, week, month, year
	Priority    string     `gorm:"size:10;not null" json:"priority"`
	Status      string     `gorm:"size:20;not null" json:"status"`
	Tasks       []Task     `gorm:"foreignKey:MissionID" json:"tasks"`
	DueDate     *string    `gorm:"size:10;index" json:"dueDate,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type Project struct {
	Base
	UserID      string                     `gorm:"type:varchar(36);index;not null" json:"-"`
	Title       string                     `gorm:"size:255;not null" json:"title"`
	Description *string                    `gorm:"type:text" json:"description,omitempty"`
	Objectives  datatypes.JSONSlice[string] `json:"objectives"`
	Tasks       []Task                     `gorm:"foreignKey:ProjectID" json:"tasks"`
	Deadline    *string                    `gorm:"size:10" json:"deadline,omitempty"`
	CompletedAt *time.Time                 `json:"completedAt,omitempty"`
}

type CalendarEvent struct {
	Base
	UserID            string  `gorm:"type:varchar(36);index;not null" json:"-"`
	Title             string  `gorm:"size:255;not null" json:"title"`
	Description       *string `gorm:"type:text" json:"description,omitempty"`
	Date              string  `gorm:"size:10;index;not null" json:"date"`
	StartTime         *string `gorm:"size:5" json:"startTime,omitempty"`
	EndTime           *string `gorm:"size:5" json:"endTime,omitempty"`
	Priority          string  `gorm:"size:10;not null" json:"priority"`
	IsRecurring       bool    `json:"isRecurring"`
	RecurrencePattern *string `gorm:"size:20" json:"recurrencePattern,omitempty"`
	MissionID         *string `gorm:"type:varchar(36)" json:"missionId,omitempty"`
	ProjectID         *string `gorm:"type:varchar(36)" json:"projectId,omitempty"`
	Completed         bool    `json:"completed"`
}

type Note struct {
	Base
	UserID  string `gorm:"type:varchar(36);index;not null" json:"-"`
	Title   string `gorm:"size:255" json:"title"`
	Content string `gorm:"type:text" json:"content"` // HTML из редактора
	Color   string `gorm:"size:20" json:"color"`
	Pinned  bool   `json:"pinned"`
}
