package inventory

import (
	"html"
	"strings"

	"github.com/google/uuid"
)

// Exact field error messages surfaced by the validation stage.
const (
	MsgNameEmpty        = "Name must not be empty."
	MsgDescriptionEmpty = "Description must not be empty."
	MsgQualityEmpty     = "Quality must not be empty."
	MsgSlotEmpty        = "Slot must not be empty"
	MsgFileNotImage     = "Please submit a image file"
)

// FieldError is a single field-scoped validation failure
type FieldError struct {
	Field   string
	Message string
}

// FieldErrors is an ordered sequence of field errors; empty means accepted
type FieldErrors []FieldError

// Has reports whether a field has an error
func (e FieldErrors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Get returns the message for a field, or ""
func (e FieldErrors) Get(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// FileUpload carries an uploaded file through the write pipeline
type FileUpload struct {
	Name        string
	ContentType string
	Data        []byte
}

// IsImage reports whether the declared content type is an image type
func (f *FileUpload) IsImage() bool {
	return strings.HasPrefix(f.ContentType, "image/")
}

// ItemForm holds the raw form fields of the item create/update forms.
// The File field is nil when no file part was submitted.
type ItemForm struct {
	Name        string
	Description string
	Quality     string
	Slot        string
	File        *FileUpload
}

// Sanitized returns a copy with every text field trimmed and HTML-escaped.
// Sanitization happens regardless of validation outcome so that re-rendered
// forms echo safe values.
func (f ItemForm) Sanitized() ItemForm {
	f.Name = sanitize(f.Name)
	f.Description = sanitize(f.Description)
	f.Quality = sanitize(f.Quality)
	f.Slot = sanitize(f.Slot)
	return f
}

// Validate runs the declarative field rules and the file-type check on the
// submitted values, producing field errors as data. It never returns an
// error value. Length rules measure the trimmed input before HTML escaping;
// entity expansion must not push a too-short value past a minimum, so
// Validate runs on the raw form and Sanitized on its result.
func (f ItemForm) Validate() FieldErrors {
	var errs FieldErrors

	if len(strings.TrimSpace(f.Name)) < 1 {
		errs = append(errs, FieldError{Field: "name", Message: MsgNameEmpty})
	}
	if len(strings.TrimSpace(f.Description)) < 3 {
		errs = append(errs, FieldError{Field: "description", Message: MsgDescriptionEmpty})
	}
	if len(strings.TrimSpace(f.Quality)) < 1 {
		errs = append(errs, FieldError{Field: "quality", Message: MsgQualityEmpty})
	}
	if len(strings.TrimSpace(f.Slot)) < 1 {
		errs = append(errs, FieldError{Field: "slot", Message: MsgSlotEmpty})
	}
	if f.File != nil && !f.File.IsImage() {
		errs = append(errs, FieldError{Field: "file", Message: MsgFileNotImage})
	}

	return errs
}

// SlotID parses the slot reference. A non-empty value that is not a valid
// identifier can only come from a tampered form; the returned error is
// surfaced as a request failure, not a field error.
func (f ItemForm) SlotID() (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(f.Slot))
}

func sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}
