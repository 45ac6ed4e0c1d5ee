package model

import (
	"time"
)

// Record kinds. A single table holds both, discriminated by Kind.
const (
	KindCompany = "company"
	KindMember  = "member"
)

// Record is a finalized registry entry produced by a completed wizard run.
// Records are only ever created, never updated or deleted, and every query
// against them is scoped by the owning user.
type Record struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	UserID uint   `json:"-" gorm:"index"`
	Kind   string `json:"kind" gorm:"type:varchar(20);index"`

	MembershipType string `json:"membership_type,omitempty" gorm:"type:varchar(50)"`
	CompanyName    string `json:"company_name,omitempty" gorm:"type:varchar(200)"`
	LegalForm      string `json:"legal_form,omitempty" gorm:"type:varchar(100)"`
	FoundingYear   int    `json:"founding_year,omitempty"`

	FirstName string `json:"first_name,omitempty" gorm:"type:varchar(100)"`
	LastName  string `json:"last_name,omitempty" gorm:"type:varchar(100)"`

	Street     string `json:"street,omitempty" gorm:"type:varchar(200)"`
	PostalCode string `json:"postal_code,omitempty" gorm:"type:varchar(20)"`
	City       string `json:"city,omitempty" gorm:"type:varchar(100)"`
	Country    string `json:"country,omitempty" gorm:"type:varchar(100)"`

	Industry string `json:"industry,omitempty" gorm:"type:varchar(100)"`
	Email    string `json:"email,omitempty" gorm:"type:varchar(200)"`
	Phone    string `json:"phone,omitempty" gorm:"type:varchar(50)"`

	PrivacyConsent  bool `json:"privacy_consent"`
	NewsletterOptIn bool `json:"newsletter_opt_in"`

	// Consent document reference, membership records only. DocumentName is
	// the generated on-disk name, DocumentOriginalName the sanitized name
	// shown on download.
	DocumentName         string `json:"-" gorm:"type:varchar(100)"`
	DocumentOriginalName string `json:"document_name,omitempty" gorm:"type:varchar(255)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// HasDocument reports whether a consent document is attached
func (r *Record) HasDocument() bool {
	return r.DocumentName != ""
}
