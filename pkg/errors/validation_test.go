package errors

import (
	"strings"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative file", "plans/ground.svg", false},
		{"absolute", "/tmp/out/ground.svg", false},
		{"dotted name", "out/v1.2/plan.svg", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 501), true},
		{"traversal", "out/../../etc/passwd", true},
		{"windows traversal", "out\\..\\x", true},
		{"null byte", "out\x00.svg", true},
		{"newline", "out\n.svg", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateDesignID(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"house-01", false},
		{"3f2b9c4e-1d2a-4b7e-9a51-6c1f0e8d2a77", false},
		{"villa_v2.final", false},

		{"", true},
		{"-leading", true},
		{"a/b", true},
		{"a..b", true},
		{"has space", true},
		{strings.Repeat("x", 129), true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateDesignID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDesignID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFacade(t *testing.T) {
	for _, f := range []string{"N", "s", " E ", "w"} {
		if err := ValidateFacade(f); err != nil {
			t.Errorf("ValidateFacade(%q) = %v", f, err)
		}
	}
	for _, f := range []string{"", "NE", "north"} {
		if err := ValidateFacade(f); !Is(err, ErrCodeInvalidFacade) {
			t.Errorf("ValidateFacade(%q) = %v, want INVALID_FACADE", f, err)
		}
	}
}

func TestValidateSection(t *testing.T) {
	for _, s := range []string{"A-A", "b-b", "AA", "B"} {
		if err := ValidateSection(s); err != nil {
			t.Errorf("ValidateSection(%q) = %v", s, err)
		}
	}
	if err := ValidateSection("C-C"); !Is(err, ErrCodeInvalidSection) {
		t.Errorf("ValidateSection(C-C) = %v, want INVALID_SECTION", err)
	}
}
