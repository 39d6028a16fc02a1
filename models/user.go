package models

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"gorm.io/gorm"
)

// User represents a festival site account. Passwords are stored as bcrypt hashes only.
// Phone signups are stored with a synthesized email address so the unique email
// column stays the single identity key.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"size:64;not null" json:"username"`
	Email        string         `gorm:"size:255;uniqueIndex" json:"email"`
	Phone        string         `gorm:"size:32" json:"phone"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	ReadableID   string         `gorm:"size:8;uniqueIndex" json:"readable_id"`
	RegisterIP   string         `gorm:"size:45" json:"register_ip"`
	LastLoginAt  *time.Time     `json:"last_login_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Results      []GameResult   `json:"-"`
}

// BeforeCreate hook ensures timestamps are set even when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return nil
}

// BeforeUpdate ensures the UpdatedAt timestamp is refreshed.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}

// NormalizePhone strips everything but digits from a phone number.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SynthesizePhoneEmail maps a phone number onto a deterministic email address
// under the configured domain, e.g. 01012345678 -> 01012345678@phone.hoshifest.app.
func SynthesizePhoneEmail(phone, domain string) string {
	return NormalizePhone(phone) + "@" + domain
}

// IsPhoneEmail reports whether an email address was synthesized from a phone number.
func IsPhoneEmail(email, domain string) bool {
	return strings.HasSuffix(strings.ToLower(email), "@"+strings.ToLower(domain))
}

// NewReadableID returns a random 4-digit human-facing identifier. Uniqueness is
// enforced by the database index; callers retry on collision.
func NewReadableID() string {
	return fmt.Sprintf("%04d", rand.Intn(10000))
}
