package models

// All lists every table for AutoMigrate.
func All() []any {
	return []any{
		&HealthProfile{},
		&GlucoseLog{},
		&CheckIn{},
		&MealPlan{},
		&Alert{},
		&UserDevice{},
	}
}
