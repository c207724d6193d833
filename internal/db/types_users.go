package db

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// User represents an account row. The resume bytes live in the same
// table but are only loaded by GetResume.
type User struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Role         string      `json:"role"`
	Phone        string      `json:"phone,omitempty"`
	Title        string      `json:"title,omitempty"`
	Location     string      `json:"location,omitempty"`
	Bio          string      `json:"bio,omitempty"`
	Experience   string      `json:"experience,omitempty"`
	Education    string      `json:"education,omitempty"`
	Skills       StringArray `json:"skills"`
	PasswordHash string      `json:"-" db:"password_hash"` // Never serialize to JSON
	PasswordSet  bool        `json:"password_set" db:"password_set"`
	HasResume    bool        `json:"has_resume"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Resume is an uploaded resume document.
type Resume struct {
	Filename string
	MIME     string
	Data     []byte
}

// StringArray handles JSONB string arrays
type StringArray []string

// Scan implements the Scanner interface for StringArray
func (a *StringArray) Scan(src interface{}) error {
	if src == nil {
		*a = []string{}
		return nil
	}
	source, ok := src.([]byte)
	if !ok {
		return errors.New("type assertion .([]byte) failed")
	}
	return json.Unmarshal(source, a)
}

// Value implements the Valuer interface for StringArray
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}
