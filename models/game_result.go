package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// GameResult stores the single best recorded result per (user, game) pair.
// The composite unique index enforces the one-row-per-pair invariant; repeat
// submissions update this row. Attempts only ever grows.
type GameResult struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"index;not null;uniqueIndex:idx_results_user_game" json:"user_id"`
	GameID    uint           `gorm:"index;not null;uniqueIndex:idx_results_user_game" json:"game_id"`
	Score     int            `gorm:"not null" json:"score"`
	Attempts  int            `gorm:"not null;default:1" json:"attempts"`
	Details   datatypes.JSON `gorm:"type:jsonb" json:"details"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	User      User           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Game      Game           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// DetailsMap decodes the free-form details payload. A nil or invalid payload
// decodes to an empty map.
func (r GameResult) DetailsMap() map[string]any {
	m := map[string]any{}
	if len(r.Details) == 0 {
		return m
	}
	_ = json.Unmarshal(r.Details, &m)
	return m
}

// TimeTaken extracts the elapsed-time field from the details payload.
// A missing or non-numeric value reads as 0.
func (r GameResult) TimeTaken() float64 {
	return DetailTime(r.DetailsMap())
}

// DetailTime reads the time_taken field out of a decoded details payload,
// treating absent values as 0.
func DetailTime(details map[string]any) float64 {
	v, ok := details["time_taken"]
	if !ok {
		return 0
	}
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case json.Number:
		f, _ := t.Float64()
		return f
	default:
		return 0
	}
}
