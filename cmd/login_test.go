package cmd

import (
	"errors"
	"testing"

	"github.com/inkdex/inkdex/pkg/clierr"
)

func TestValidateCredentials(t *testing.T) {
	cases := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{"valid", "ada@example.com", "secret", false},
		{"empty email", "", "secret", true},
		{"empty password", "ada@example.com", "", true},
		{"both empty", "", "", true},
		{"not an email", "ada.example.com", "secret", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateCredentials(tc.email, tc.password)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				var cerr *clierr.Error
				if !errors.As(err, &cerr) || cerr.Type != clierr.Validation {
					t.Fatalf("expected a validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
