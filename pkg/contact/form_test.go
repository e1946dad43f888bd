package contact

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() Form {
	return Form{
		Name:    "Ada",
		Email:   "ada@example.com",
		Subject: "Project",
		Message: "Hello there",
	}
}

func TestFormValidate(t *testing.T) {
	assert.NoError(t, validForm().Validate())

	padded := Form{Name: "  Ada ", Email: " ada@example.com ", Subject: " s ", Message: " m "}
	assert.NoError(t, padded.Validate())
	assert.Equal(t, "Ada", padded.Normalize().Name)
}

func TestFormValidate_Fields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Form)
		fields []string
	}{
		{"missing name", func(f *Form) { f.Name = "" }, []string{"name"}},
		{"blank subject", func(f *Form) { f.Subject = "   " }, []string{"subject"}},
		{"missing message", func(f *Form) { f.Message = "" }, []string{"message"}},
		{"missing email", func(f *Form) { f.Email = "" }, []string{"email"}},
		{"bad email", func(f *Form) { f.Email = "not-an-email" }, []string{"email"}},
		{"display name email", func(f *Form) { f.Email = "Ada <ada@example.com>" }, []string{"email"}},
		{"everything", func(f *Form) { *f = Form{} }, []string{"email", "message", "name", "subject"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)
			err := f.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidForm))

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			got := make([]string, 0, len(ve.Fields))
			for k := range ve.Fields {
				got = append(got, k)
			}
			assert.ElementsMatch(t, tt.fields, got)
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := (&ValidationError{Fields: map[string]string{"name": "required", "email": "required"}}).Error()
	assert.Equal(t, "invalid contact form (email: required; name: required)", err)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "idle", StatusIdle.String())
	assert.Equal(t, "submitting", StatusSubmitting.String())
	assert.Equal(t, "success", StatusSuccess.String())
	assert.Equal(t, "error", StatusError.String())
	assert.Equal(t, "unknown", Status(42).String())
}
