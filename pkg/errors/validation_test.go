package errors

import (
	"testing"
)

func TestValidateFieldName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "name", false},
		{"valid with space", "unit price", false},
		{"valid unicode", "größe", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"newline", "foo\nbar", true},
		{"null byte", "foo\x00bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFieldName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFieldName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFraction(t *testing.T) {
	tests := []struct {
		v       float64
		wantErr bool
	}{
		{0, false},
		{0.5, false},
		{1, false},
		{-0.1, true},
		{1.01, true},
	}
	for _, tt := range tests {
		err := ValidateFraction("ribbon.opacity", tt.v)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFraction(%g) error = %v, wantErr %v", tt.v, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidConfig) {
			t.Errorf("ValidateFraction(%g) code = %v, want %v", tt.v, GetCode(err), ErrCodeInvalidConfig)
		}
	}
}

func TestDataFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"data.json", "json", false},
		{"data.CSV", "csv", false},
		{"dir/data.toml", "toml", false},
		{"data.yml", "yaml", false},
		{"data.yaml", "yaml", false},
		{"data.txt", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DataFormat(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DataFormat(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("DataFormat(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
