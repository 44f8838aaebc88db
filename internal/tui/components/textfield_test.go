package components

import (
	"errors"
	"strings"
	"testing"
)

func TestTextField_RequiredValidation(t *testing.T) {
	f := NewTextField("Host:", "hostname").WithRequired(true)

	if err := f.Validate(); !errors.Is(err, ErrFieldRequired) {
		t.Errorf("Validate() = %v, want ErrFieldRequired", err)
	}

	f.SetValue("db.example.com")
	if err := f.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestTextField_CustomValidator(t *testing.T) {
	wantErr := errors.New("must be numeric")
	f := NewTextField("Port:", "").WithValidator(func(v string) error {
		for _, r := range v {
			if r < '0' || r > '9' {
				return wantErr
			}
		}
		return nil
	})

	f.SetValue("abc")
	if err := f.Validate(); !errors.Is(err, wantErr) {
		t.Errorf("Validate() = %v, want %v", err, wantErr)
	}

	f.SetValue("3306")
	if err := f.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestTextField_FocusBlur(t *testing.T) {
	f := NewTextField("Host:", "hostname")

	if f.IsFocused() {
		t.Error("new field should not be focused")
	}

	f.Focus()
	if !f.IsFocused() {
		t.Error("field should be focused after Focus")
	}

	f.Blur()
	if f.IsFocused() {
		t.Error("field should not be focused after Blur")
	}
}

func TestTextField_ViewShowsRequiredMarker(t *testing.T) {
	f := NewTextField("Host:", "hostname").WithRequired(true)

	if !strings.Contains(f.View(), "*") {
		t.Error("required field view missing * marker")
	}
}

func TestTextField_PasswordMasksValue(t *testing.T) {
	f := NewTextField("Password:", "").WithPassword().WithValue("secret")

	if strings.Contains(f.View(), "secret") {
		t.Error("password value must not appear in the view")
	}
	if f.Value() != "secret" {
		t.Errorf("Value() = %q, want secret", f.Value())
	}
}
