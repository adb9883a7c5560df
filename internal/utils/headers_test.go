package utils

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/dope-playground/brandscout/internal/models"
)

func TestHeaderValidator_ValidateName(t *testing.T) {
	validator := NewHeaderValidator()

	tests := []struct {
		name        string
		headerName  string
		expectError bool
	}{
		{"letters", "User-Agent", false},
		{"digits", "X-Request-ID-123", false},
		{"hyphens", "Accept-Language", false},
		{"space", "User Agent", true},
		{"underscore", "User_Agent", true},
		{"symbol", "User@Agent", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateName(tt.headerName)
			if (err != nil) != tt.expectError {
				t.Errorf("expectError=%v, got %v", tt.expectError, err)
			}
		})
	}
}

func TestHeaderValidator_ValidateValue(t *testing.T) {
	validator := NewHeaderValidator()

	tests := []struct {
		name        string
		headerValue string
		expectError bool
	}{
		{"ascii", "Mozilla/5.0", false},
		{"empty", "", false},
		{"at limit", strings.Repeat(" ", MaxHeaderValueLength), false},
		{"too long", strings.Repeat("a", MaxHeaderValueLength+1), true},
		{"control characters", "value\x00with\x01null", true},
		{"non ascii", "café", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateValue("X-Test", tt.headerValue)
			if (err != nil) != tt.expectError {
				t.Errorf("expectError=%v, got %v", tt.expectError, err)
			}
		})
	}
}

func TestHeaderValidator_Forbidden(t *testing.T) {
	validator := NewHeaderValidator()

	for _, name := range []string{"Host", "host", "Content-Length", "TRANSFER-ENCODING", "Connection"} {
		if !validator.IsForbidden(name) {
			t.Errorf("%s should be forbidden", name)
		}
		err := validator.ValidateHeader(name, "x")
		var verr *models.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: expected ValidationError, got %v", name, err)
		}
	}
	if validator.IsForbidden("User-Agent") {
		t.Error("User-Agent should be allowed")
	}
}

func TestHeaderValidator_Validate(t *testing.T) {
	validator := NewHeaderValidator()

	ok := http.Header{"User-Agent": {"Bot/1.0"}, "X-Token": {"abc"}}
	if err := validator.Validate(ok); err != nil {
		t.Errorf("valid headers rejected: %v", err)
	}

	bad := http.Header{"User-Agent": {"Bot/1.0"}, "X-Bad": {"line\nbreak"}}
	if err := validator.Validate(bad); err == nil {
		t.Error("header with newline accepted")
	}

	if err := validator.Validate(http.Header{}); err != nil {
		t.Errorf("empty headers rejected: %v", err)
	}
}

func TestHeaderRedactor(t *testing.T) {
	redactor := NewHeaderRedactor()

	tests := []struct {
		name   string
		header string
		value  string
		want   string
	}{
		{"bearer", "Authorization", "Bearer abc.def.ghi", "Bearer ***"},
		{"long key", "X-API-Key", "sk-1234567890abcdef", "sk-1***cdef"},
		{"short secret", "X-Secret", "hunter2", "***"},
		{"cookie", "Cookie", "session=abcdef123456", "sess***3456"},
		{"not sensitive", "User-Agent", "Mozilla/5.0", "Mozilla/5.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := redactor.RedactHeaderValue(tt.header, tt.value); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	headers := http.Header{
		"X-Api-Key":  {"sk-1234567890abcdef"},
		"User-Agent": {"Bot/1.0"},
		"Accept":     {},
	}
	got := redactor.RedactToString(headers)
	want := "User-Agent: Bot/1.0, X-Api-Key: sk-1***cdef"
	if got != want {
		t.Errorf("RedactToString = %q, want %q", got, want)
	}
}
