package wizard

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"registry-service/internal/model"
)

func companySchema(t *testing.T) *Schema {
	t.Helper()
	s, ok := Schemas()[model.KindCompany]
	require.True(t, ok)
	return s
}

func TestMergeStep_OnlyTouchesDeclaredFields(t *testing.T) {
	schema := companySchema(t)
	slot := &Slot{Kind: model.KindCompany, Values: map[string]string{}}

	step1, ok := schema.Step(1)
	require.True(t, ok)
	require.NoError(t, MergeStep(slot, step1, url.Values{
		"company_name":  {"Acme"},
		"legal_form":    {"GmbH"},
		"founding_year": {"1999"},
		"city":          {"should be ignored, not step 1's field"},
	}))

	step2, ok := schema.Step(2)
	require.True(t, ok)
	require.NoError(t, MergeStep(slot, step2, url.Values{
		"street": {"Main St 1"},
		"city":   {"Berlin"},
	}))

	// Step 2 never erases step 1's fields
	require.Equal(t, "Acme", slot.Values["company_name"])
	require.Equal(t, "GmbH", slot.Values["legal_form"])
	require.Equal(t, "1999", slot.Values["founding_year"])
	require.Equal(t, "Main St 1", slot.Values["street"])
	require.Equal(t, "Berlin", slot.Values["city"])
	// Step 2 fields absent from the form merge as empty
	require.Equal(t, "", slot.Values["postal_code"])
}

func TestMergeStep_ResubmitOverwritesOwnFields(t *testing.T) {
	schema := companySchema(t)
	slot := &Slot{Kind: model.KindCompany, Values: map[string]string{}}
	step1, _ := schema.Step(1)

	require.NoError(t, MergeStep(slot, step1, url.Values{"company_name": {"Acme"}}))
	require.NoError(t, MergeStep(slot, step1, url.Values{"company_name": {"Acme GmbH"}}))

	require.Equal(t, "Acme GmbH", slot.Values["company_name"])
}

func TestMergeStep_UncheckedBoolDefaultsFalse(t *testing.T) {
	schema := companySchema(t)
	slot := &Slot{Kind: model.KindCompany, Values: map[string]string{}}
	step4, ok := schema.Step(4)
	require.True(t, ok)

	require.NoError(t, MergeStep(slot, step4, url.Values{
		"industry":        {"software"},
		"privacy_consent": {"on"},
		// newsletter_opt_in unchecked, absent from form
	}))

	require.Equal(t, "true", slot.Values["privacy_consent"])
	require.Equal(t, "false", slot.Values["newsletter_opt_in"])
}

func TestMergeStep_RejectsMalformedInt(t *testing.T) {
	schema := companySchema(t)
	slot := &Slot{Kind: model.KindCompany, Values: map[string]string{"company_name": "kept"}}
	step1, _ := schema.Step(1)

	err := MergeStep(slot, step1, url.Values{
		"company_name":  {"Acme"},
		"founding_year": {"nineteen99"},
	})

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	require.Equal(t, "founding_year", fieldErr.Field)
	// Rejected submission leaves the slot untouched
	require.Equal(t, "kept", slot.Values["company_name"])
}

func TestMergeStep_EmptyIntIsAllowed(t *testing.T) {
	schema := companySchema(t)
	slot := &Slot{Kind: model.KindCompany, Values: map[string]string{}}
	step1, _ := schema.Step(1)

	require.NoError(t, MergeStep(slot, step1, url.Values{"company_name": {"Acme"}}))
	require.Equal(t, "", slot.Values["founding_year"])
}

func TestStepView_ReturnsDeclaredFieldsOnly(t *testing.T) {
	schema := companySchema(t)
	slot := &Slot{Kind: model.KindCompany, Values: map[string]string{
		"company_name": "Acme",
		"city":         "Berlin",
	}}
	step1, _ := schema.Step(1)

	view := StepView(slot, step1)
	require.Equal(t, "Acme", view["company_name"])
	require.NotContains(t, view, "city")
	require.Contains(t, view, "founding_year")
}

func TestSchema_StepOutOfRange(t *testing.T) {
	schema := companySchema(t)

	_, ok := schema.Step(0)
	require.False(t, ok)
	_, ok = schema.Step(5)
	require.False(t, ok)
	_, ok = schema.Step(4)
	require.True(t, ok)
}

func TestBuildRecord_MapsAllFields(t *testing.T) {
	slot := &Slot{
		Kind: model.KindMember,
		Values: map[string]string{
			"membership_type":   "premium",
			"first_name":        "Jane",
			"last_name":         "Doe",
			"company_name":      "Acme",
			"street":            "Main St 1",
			"postal_code":       "10115",
			"city":              "Berlin",
			"country":           "DE",
			"industry":          "software",
			"email":             "jane@example.com",
			"phone":             "+49 30 1234",
			"privacy_consent":   "true",
			"newsletter_opt_in": "false",
		},
	}

	rec := BuildRecord(slot, 7)
	require.Equal(t, uint(7), rec.UserID)
	require.Equal(t, model.KindMember, rec.Kind)
	require.Equal(t, "premium", rec.MembershipType)
	require.Equal(t, "Jane", rec.FirstName)
	require.Equal(t, "Acme", rec.CompanyName)
	require.Equal(t, "Berlin", rec.City)
	require.True(t, rec.PrivacyConsent)
	require.False(t, rec.NewsletterOptIn)
}

func TestBuildRecord_MissingFieldsStayAtDefaults(t *testing.T) {
	slot := &Slot{
		Kind:   model.KindCompany,
		Values: map[string]string{"company_name": "Acme"},
	}

	rec := BuildRecord(slot, 1)
	require.Equal(t, "Acme", rec.CompanyName)
	require.Zero(t, rec.FoundingYear)
	require.Empty(t, rec.City)
	require.False(t, rec.PrivacyConsent)
}

func TestBuildRecord_YearParsing(t *testing.T) {
	slot := &Slot{
		Kind:   model.KindCompany,
		Values: map[string]string{"founding_year": "2004"},
	}
	require.Equal(t, 2004, BuildRecord(slot, 1).FoundingYear)
}
