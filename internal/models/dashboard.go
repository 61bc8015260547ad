package models

import "gorm.io/datatypes"

// Widget - плитка дашборда
type Widget struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Enabled bool   `json:"enabled"`
	Order   int    `json:"order"`
	Width   int    `json:"width"`  // 1-4
	Height  int    `json:"height"` // 1-2
}

// DashboardLayout - раскладка пользователя. Нет строки = раскладку ещё не сохраняли.
type DashboardLayout struct {
	Base
	UserID  string                      `gorm:"type:varchar(36);uniqueIndex;not null" json:"-"`
	Widgets datatypes.JSONSlice[Widget] `json:"widgets"`
}
