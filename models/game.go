package models

import "time"

// Game is a catalog row for one of the festival mini-games. The catalog is
// seeded at startup and never mutated by gameplay.
type Game struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"size:32;uniqueIndex;not null" json:"key"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GameSetting holds the per-game toggles an administrator controls: whether the
// game accepts submissions and how many attempts a user may record.
type GameSetting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GameID    uint      `gorm:"uniqueIndex;not null" json:"game_id"`
	IsEnabled bool      `gorm:"not null;default:true" json:"is_enabled"`
	PlayLimit int       `gorm:"not null;default:1" json:"play_limit"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Game      Game      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
