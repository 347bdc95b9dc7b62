package core

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "dot separator", in: "12.34", want: "12.34"},
		{name: "comma separator", in: "12,34", want: "12.34"},
		{name: "integer", in: "150", want: "150"},
		{name: "rounds to two places", in: "10.005", want: "10.01"},
		{name: "whitespace trimmed", in: " 42,50 ", want: "42.5"},
		{name: "empty", in: "", wantErr: true},
		{name: "mixed separators", in: "1,234.56", wantErr: true},
		{name: "double comma", in: "1,2,3", wantErr: true},
		{name: "zero", in: "0", wantErr: true},
		{name: "negative", in: "-5", wantErr: true},
		{name: "garbage", in: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAmount) {
					t.Errorf("ParseAmount(%q) error = %v, want ErrInvalidAmount", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q) error = %v", tt.in, err)
			}
			if got.String() != tt.want {
				t.Errorf("ParseAmount(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "1234.56", want: "R$ 1234,56"},
		{in: "5", want: "R$ 5,00"},
		{in: "0", want: "R$ 0,00"},
		{in: "-12.3", want: "-R$ 12,30"},
	}

	for _, tt := range tests {
		d := decimal.RequireFromString(tt.in)
		if got := FormatBRL(d); got != tt.want {
			t.Errorf("FormatBRL(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
