package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// University represents an educational institution in the catalog.
//
// A record can be referenced by two kinds of identifier: the numeric
// database id assigned on creation, and an optional SourceID carried in
// imported data. SourceID is the stable one across re-imports, so it is
// preferred as the public-facing identifier when present. At most one
// record may hold a given non-empty SourceID; the import path enforces
// this by always looking up before inserting.
type University struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// SourceID is the external identifier from imported data.
	// Empty for records created by hand in the admin panel.
	SourceID string `gorm:"index;type:varchar(120)" json:"source_id,omitempty"`

	Name    string `gorm:"not null" json:"name"`
	Country string `gorm:"not null;index" json:"country"`
	Alpha2  string `gorm:"type:varchar(2)" json:"alpha2,omitempty"` // ISO 3166-1 country code
	State   string `gorm:"type:varchar(100)" json:"state,omitempty"`
	City    string `gorm:"type:varchar(100)" json:"city,omitempty"`
	Website string `gorm:"type:varchar(255)" json:"website,omitempty"`
	FlagURL string `gorm:"type:varchar(255)" json:"flag_url,omitempty"`
	LogoURL string `gorm:"type:varchar(255)" json:"logo_url,omitempty"`

	// Courses is a plain list of course names offered by the university.
	Courses datatypes.JSONSlice[string] `json:"courses"`

	Description string `gorm:"type:text" json:"description,omitempty"`
}
