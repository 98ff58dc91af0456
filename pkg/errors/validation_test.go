package errors

import (
	"strings"
	"testing"
)

func TestValidatePlotName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "p1", false},
		{"valid underscore", "_hidden", false},
		{"valid mixed", "scatter_A2", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 65), true},
		{"leading digit", "1p", true},
		{"dash", "my-plot", true},
		{"operator", "a|b", true},
		{"reserved", "spacer", true},
		{"space", "p 1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePlotName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePlotName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidSpec) {
				t.Errorf("ValidatePlotName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidSpec)
			}
		})
	}
}

func TestValidateOutputName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "figure", false},
		{"valid dotted", "figure.v2", false},

		{"empty", "", true},
		{"with path /", "out/figure", true},
		{"with path \\", "out\\figure", true},
		{"hidden", ".figure", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		allowed []string
		wantErr bool
	}{
		{"redis", "redis://localhost:6379/0", []string{"redis", "rediss"}, false},
		{"rediss", "rediss://cache:6380", []string{"redis", "rediss"}, false},
		{"mongo", "mongodb://localhost:27017", []string{"mongodb", "mongodb+srv"}, false},

		{"empty", "", []string{"redis"}, true},
		{"wrong scheme", "http://localhost", []string{"redis"}, true},
		{"no scheme", "localhost:6379", []string{"redis"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input, tt.allowed...)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
