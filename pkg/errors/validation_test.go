package errors

import (
	"strings"
	"testing"
)

func TestValidateGalleryName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple name", "sunset-study", false},
		{"spaces allowed", "morning sketch 3", false},
		{"unicode allowed", "étude", false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 129), true},
		{"control character", "bad\x01name", true},
		{"parent traversal", "../escape", true},
		{"path separator", "a/b", true},
		{"backslash", "a\\b", true},
		{"null byte", "a\x00b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGalleryName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGalleryName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidName) {
				t.Errorf("expected %s code, got %s", ErrCodeInvalidName, GetCode(err))
			}
		})
	}
}

func TestValidateLayerName(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"grid", false},
		{"infrastructure", false},
		{"", true},
		{"Grid", true},
		{"grid1", true},
		{"grid-lines", true},
	}

	for _, tt := range tests {
		err := ValidateLayerName(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateLayerName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestValidateHexColor(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"#f4efe6", false},
		{"#FFF", false},
		{"#abc123", false},
		{"", true},
		{"f4efe6", true},
		{"#f4ef", true},
		{"#gggggg", true},
	}

	for _, tt := range tests {
		err := ValidateHexColor(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateHexColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
