package wizard

import (
	"fmt"
	"net/url"
	"strconv"

	"registry-service/internal/model"
)

// FieldError reports a submitted value that failed validation during a step
// merge. The step is re-shown with the error; nothing from the submission is
// merged.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid value for field %q", e.Field)
}

// MergeStep folds one step submission into the slot. Only the step's
// declared fields are touched: values already in the slot for other fields
// survive untouched, and resubmitting a step overwrites its own fields.
// Bool fields absent from the form (unchecked boxes) merge as "false".
func MergeStep(slot *Slot, step *Step, form url.Values) error {
	// Validate before mutating so a rejected submission leaves the slot
	// exactly as it was.
	for _, f := range step.Fields {
		if f.Kind != Int {
			continue
		}
		v := form.Get(f.Name)
		if v == "" {
			continue
		}
		if _, err := strconv.Atoi(v); err != nil {
			return &FieldError{Field: f.Name}
		}
	}

	for _, f := range step.Fields {
		switch f.Kind {
		case Bool:
			slot.Values[f.Name] = strconv.FormatBool(form.Has(f.Name))
		default:
			slot.Values[f.Name] = form.Get(f.Name)
		}
	}
	return nil
}

// StepView returns the step's declared fields with their current slot
// values, for idempotent rendering of a wizard page.
func StepView(slot *Slot, step *Step) map[string]string {
	view := make(map[string]string, len(step.Fields))
	for _, f := range step.Fields {
		view[f.Name] = slot.Values[f.Name]
	}
	return view
}

// BuildRecord maps a completed slot onto a record owned by userID. Fields
// never supplied stay at their zero values, matching the column defaults.
func BuildRecord(slot *Slot, userID uint) *model.Record {
	rec := &model.Record{
		UserID: userID,
		Kind:   slot.Kind,
	}

	for name, value := range slot.Values {
		switch name {
		case "membership_type":
			rec.MembershipType = value
		case "company_name":
			rec.CompanyName = value
		case "legal_form":
			rec.LegalForm = value
		case "founding_year":
			// Merge-time validation already rejected non-numeric input;
			// anything unparseable here stays at zero.
			if year, err := strconv.Atoi(value); err == nil {
				rec.FoundingYear = year
			}
		case "first_name":
			rec.FirstName = value
		case "last_name":
			rec.LastName = value
		case "street":
			rec.Street = value
		case "postal_code":
			rec.PostalCode = value
		case "city":
			rec.City = value
		case "country":
			rec.Country = value
		case "industry":
			rec.Industry = value
		case "email":
			rec.Email = value
		case "phone":
			rec.Phone = value
		case "privacy_consent":
			rec.PrivacyConsent = value == "true"
		case "newsletter_opt_in":
			rec.NewsletterOptIn = value == "true"
		}
	}

	return rec
}
