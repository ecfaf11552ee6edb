package model

// LifeStage labels a span of the player's life, used for presentation
// and for the event generator's prompt context.
type LifeStage struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	MinAge int    `json:"minAge"`
	MaxAge int    `json:"maxAge"`
	Color  uint32 `json:"color"`
}

// LifeStages in ascending age order.
var LifeStages = []LifeStage{
	{ID: "starter", Name: "Starting out", MinAge: 18, MaxAge: 25, Color: 0x87CEEB},
	{ID: "growth", Name: "Growth years", MinAge: 26, MaxAge: 35, Color: 0x98FB98},
	{ID: "prime", Name: "Prime years", MinAge: 36, MaxAge: 50, Color: 0xFFD700},
	{ID: "mature", Name: "Mature years", MinAge: 51, MaxAge: 65, Color: 0xFFA500},
	{ID: "retire", Name: "Retirement", MinAge: 66, MaxAge: 100, Color: 0xC0C0C0},
}

// StageForAge returns the life stage covering the given age. Ages past
// the table fall into retirement.
func StageForAge(age int) LifeStage {
	for _, s := range LifeStages {
		if age >= s.MinAge && age <= s.MaxAge {
			return s
		}
	}
	return LifeStages[len(LifeStages)-1]
}
