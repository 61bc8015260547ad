package models

// All перечисляет модели для AutoMigrate
func All() []interface{} {
	return []interface{}{
		&User{},
		&UserSettings{},
		&RoutineAction{},
		&RoutineLog{},
		&Task{},
		&Mission{},
		&Project{},
		&CalendarEvent{},
		&Note{},
		&SleepLog{},
		&WorkoutProgram{},
		&WorkoutProgramSession{},
		&WorkoutSession{},
		&PersonalRecord{},
		&FitnessProfile{},
		&DailyNutrition{},
		&DashboardLayout{},
	}
}
