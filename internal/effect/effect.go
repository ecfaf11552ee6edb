// Package effect models event and action deltas as a tagged variant
// type. The external generator speaks in a loose name→number mapping;
// Decode turns that mapping into typed deltas so the applier's routing
// is exhaustive instead of string-matched.
package effect

import (
	"sort"
	"strings"

	"github.com/fortunesim/fortune-simulator-backend/internal/model"
)

// Delta is one typed change to player state.
type Delta interface {
	isDelta()
}

// Cash adds to liquid cash (negative values spend).
type Cash struct {
	Amount float64
}

// Income adds to annual income.
type Income struct {
	Amount float64
}

// Insight adjusts investment insight, clamped to [0,100] on apply.
type Insight struct {
	Points int
}

// MonthlyExpense adds to the fixed monthly outlay.
type MonthlyExpense struct {
	Amount float64
}

// Skill raises a skill field. Applied through the study curve (one
// level ≈ 20 study hours), so event-granted skill always pays the
// diminishing-returns tax.
type Skill struct {
	Field  string
	Levels float64
}

func (Cash) isDelta()           {}
func (Income) isDelta()         {}
func (Insight) isDelta()        {}
func (MonthlyExpense) isDelta() {}
func (Skill) isDelta()          {}

const skillKeyPrefix = "skill_"

// Decode converts a wire delta mapping into typed deltas. Only numeric
// entries are considered; unknown keys and skill keys naming unknown
// fields are dropped silently. Keys are processed in sorted order so
// application is deterministic.
func Decode(raw map[string]any) []Delta {
	if len(raw) == 0 {
		return nil
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	deltas := make([]Delta, 0, len(keys))
	for _, key := range keys {
		value, ok := asNumber(raw[key])
		if !ok {
			continue
		}

		switch {
		case key == "cash":
			deltas = append(deltas, Cash{Amount: value})
		case key == "income":
			deltas = append(deltas, Income{Amount: value})
		case key == "insight":
			deltas = append(deltas, Insight{Points: int(value)})
		case key == "monthlyExpense":
			deltas = append(deltas, MonthlyExpense{Amount: value})
		case strings.HasPrefix(key, skillKeyPrefix):
			field := strings.TrimPrefix(key, skillKeyPrefix)
			if model.KnownSkillField(field) {
				deltas = append(deltas, Skill{Field: field, Levels: value})
			}
		}
	}
	return deltas
}

// asNumber accepts the numeric shapes JSON decoding and in-process
// callers produce.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
