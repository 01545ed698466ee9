package forms

import (
	"net/http"
	"strconv"
	"strings"

	"reflections/application/queries"
	"reflections/pkg/utils"
)

// GeneralError is the FieldErrors key for messages not tied to one input
const GeneralError = "_"

// ReflectionForm holds the posted reflection fields and their errors
type ReflectionForm struct {
	Memory    string `form:"memory" validate:"required,max=5000"`
	Happiness *int   `form:"happiness" validate:"required,min=1,max=10"`
	Symbol    string `form:"symbol" validate:"required,max=50"`

	// RawHappiness is the submitted text, echoed back when it does not parse
	RawHappiness string            `form:"-" validate:"-"`
	Errors       utils.FieldErrors `form:"-" validate:"-"`
}

// BindReflectionForm reads the reflection fields from a posted form
func BindReflectionForm(r *http.Request) (*ReflectionForm, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}

	form := &ReflectionForm{
		Memory:       strings.TrimSpace(r.PostForm.Get("memory")),
		Symbol:       strings.TrimSpace(r.PostForm.Get("symbol")),
		RawHappiness: strings.TrimSpace(r.PostForm.Get("happiness")),
	}

	if form.RawHappiness != "" {
		if n, err := strconv.Atoi(form.RawHappiness); err == nil {
			form.Happiness = &n
		} else {
			form.Errors = utils.FieldErrors{"happiness": "Must be a whole number."}
		}
	}

	return form, nil
}

// FromReflection pre-fills a form from a stored reflection
func FromReflection(view queries.ReflectionView) *ReflectionForm {
	happiness := view.Happiness
	return &ReflectionForm{
		Memory:       view.Memory,
		Happiness:    &happiness,
		Symbol:       view.Symbol,
		RawHappiness: strconv.Itoa(happiness),
	}
}

// Valid runs the field rules and reports whether the form has no errors
func (f *ReflectionForm) Valid() bool {
	for field, msg := range utils.ValidateFields(f) {
		if _, exists := f.Errors[field]; exists {
			continue
		}
		f.AddError(field, msg)
	}
	return len(f.Errors) == 0
}

// AddError records msg against field
func (f *ReflectionForm) AddError(field, msg string) {
	if f.Errors == nil {
		f.Errors = utils.FieldErrors{}
	}
	f.Errors[field] = msg
}

// HappinessValue returns the parsed rating, or zero when absent
func (f *ReflectionForm) HappinessValue() int {
	if f.Happiness == nil {
		return 0
	}
	return *f.Happiness
}

// HappinessText is the value shown in the happiness input
func (f *ReflectionForm) HappinessText() string {
	if f.Happiness != nil {
		return strconv.Itoa(*f.Happiness)
	}
	return f.RawHappiness
}
