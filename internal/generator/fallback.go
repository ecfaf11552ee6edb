package generator

import (
	"github.com/fortunesim/fortune-simulator-backend/internal/model"
)

// Fallback returns the deterministic event served when the external
// generator is disabled or fails. With at most one month left in the
// year it is a year-end reflection; otherwise a short study break.
func Fallback(p *model.Player) *model.EventDescriptor {
	if p.RemainingMonths() <= 1 {
		return &model.EventDescriptor{
			Category:    model.CategoryDaily,
			TimeMonths:  1,
			Title:       "Year-End Reflection",
			Description: "The year is winding down. You spend a quiet evening going over what went well and what did not.",
			Choices: []model.EventChoice{
				{
					Text:       "Write down lessons learned",
					ResultText: "Putting the year on paper makes the patterns obvious.",
					Effect:     map[string]any{"insight": 3},
				},
				{
					Text:       "Celebrate with a small dinner",
					ResultText: "A good meal and good company close out the year.",
					Effect:     map[string]any{"cash": -500, "insight": 1},
				},
			},
		}
	}
	return &model.EventDescriptor{
		Category:    model.CategoryLearning,
		TimeMonths:  1,
		Title:       "Quiet Month",
		Description: "Nothing remarkable happens this month, which leaves time for reading.",
		Choices: []model.EventChoice{
			{
				Text:       "Read up on investing",
				ResultText: "A few evenings with a classic on markets sharpen your thinking.",
				Effect:     map[string]any{"insight": 2},
			},
			{
				Text:       "Relax and recharge",
				ResultText: "Rest is its own kind of investment.",
				Effect:     map[string]any{"insight": 1},
			},
		},
	}
}
