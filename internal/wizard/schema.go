package wizard

import (
	"registry-service/internal/model"
)

// FieldKind determines how a submitted form value is merged and how it is
// mapped onto the finalized record.
type FieldKind int

const (
	// Text fields are stored as submitted
	Text FieldKind = iota
	// Int fields must parse as integers; a malformed value rejects the
	// step submission instead of faulting later
	Int
	// Bool fields come from checkboxes; an unchecked box is absent from
	// the form and defaults to false
	Bool
)

// Field declares one wizard form field
type Field struct {
	Name string
	Kind FieldKind
}

// Step declares the field subset one wizard page submits. Merging a step
// only ever touches its declared fields, which is what keeps later steps
// from erasing earlier ones.
type Step struct {
	Title  string
	Fields []Field
}

// Schema declares a complete wizard flow for one record kind
type Schema struct {
	Kind string
	// SeedParams are query parameters captured when the wizard starts,
	// e.g. /member/new?type=premium
	SeedParams map[string]string
	Steps      []Step
	// FileField, if set, names the optional upload accepted on the final
	// step
	FileField string
}

// StepCount returns the number of steps in the flow
func (s *Schema) StepCount() int {
	return len(s.Steps)
}

// Step returns the 1-based step k, or false when k is out of range
func (s *Schema) Step(k int) (*Step, bool) {
	if k < 1 || k > len(s.Steps) {
		return nil, false
	}
	return &s.Steps[k-1], true
}

// Schemas returns the wizard flows keyed by record kind
func Schemas() map[string]*Schema {
	return map[string]*Schema{
		model.KindCompany: {
			Kind: model.KindCompany,
			Steps: []Step{
				{
					Title: "Company details",
					Fields: []Field{
						{Name: "company_name", Kind: Text},
						{Name: "legal_form", Kind: Text},
						{Name: "founding_year", Kind: Int},
					},
				},
				{
					Title: "Address",
					Fields: []Field{
						{Name: "street", Kind: Text},
						{Name: "postal_code", Kind: Text},
						{Name: "city", Kind: Text},
						{Name: "country", Kind: Text},
					},
				},
				{
					Title: "Contact person",
					Fields: []Field{
						{Name: "first_name", Kind: Text},
						{Name: "last_name", Kind: Text},
						{Name: "email", Kind: Text},
						{Name: "phone", Kind: Text},
					},
				},
				{
					Title: "Classification and consent",
					Fields: []Field{
						{Name: "industry", Kind: Text},
						{Name: "privacy_consent", Kind: Bool},
						{Name: "newsletter_opt_in", Kind: Bool},
					},
				},
			},
		},
		model.KindMember: {
			Kind:       model.KindMember,
			SeedParams: map[string]string{"type": "membership_type"},
			FileField:  "consent_document",
			Steps: []Step{
				{
					Title: "Member details",
					Fields: []Field{
						{Name: "first_name", Kind: Text},
						{Name: "last_name", Kind: Text},
						{Name: "company_name", Kind: Text},
					},
				},
				{
					Title: "Address",
					Fields: []Field{
						{Name: "street", Kind: Text},
						{Name: "postal_code", Kind: Text},
						{Name: "city", Kind: Text},
						{Name: "country", Kind: Text},
					},
				},
				{
					Title: "Contact",
					Fields: []Field{
						{Name: "email", Kind: Text},
						{Name: "phone", Kind: Text},
					},
				},
				{
					Title: "Consent",
					Fields: []Field{
						{Name: "industry", Kind: Text},
						{Name: "privacy_consent", Kind: Bool},
						{Name: "newsletter_opt_in", Kind: Bool},
					},
				},
			},
		},
	}
}
