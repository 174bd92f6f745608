package input

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParseIdentifiers(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"newlines", "356938035643809\n356938035643810\n", []string{"356938035643809", "356938035643810"}},
		{"commas and spaces", " 111 , 222,333 ", []string{"111", "222", "333"}},
		{"mixed separators", "1,\n\n,2\n3", []string{"1", "2", "3"}},
		{"strips non-digits", "IMEI: 35-693803-564380-9", []string{"356938035643809"}},
		{"drops tokens without digits", "abc\n123\n---", []string{"123"}},
		{"keeps duplicates in order", "9\n8\n9", []string{"9", "8", "9"}},
		{"crlf", "111\r\n222\r\n", []string{"111", "222"}},
		{"empty", "", []string{}},
		{"only separators", ",,\n,\n", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseIdentifiers(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseIdentifiers(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSanitizeIgnoresNonASCIIDigits(t *testing.T) {
	// Arabic-Indic digits are not part of an IMEI
	if got := Sanitize("12٣4"); got != "124" {
		t.Errorf("expected 124, got %q", got)
	}
}

func TestReadIdentifiers(t *testing.T) {
	ids, err := ReadIdentifiers(strings.NewReader("111\n222,333\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(ids, []string{"111", "222", "333"}) {
		t.Errorf("unexpected identifiers %v", ids)
	}

	_, err = ReadIdentifiers(strings.NewReader("\n  \n"))
	if !errors.Is(err, ErrNoIdentifiers) {
		t.Errorf("expected ErrNoIdentifiers, got %v", err)
	}
}

func TestSerialNumber(t *testing.T) {
	tests := []struct {
		model, imei, want string
	}{
		{"VLock", "356938035643809", "VL35643809"},
		{"VLock Pro", "356938035643809", "VLPRO35643809"},
		{"VLock Ultra", "356938035643809", "VLULTRA35643809"},
		{"Something Else", "356938035643809", "VL35643809"},
		{"VLock Pro", "1234", "VLPRO1234"},
	}
	for _, tt := range tests {
		if got := SerialNumber(tt.model, tt.imei); got != tt.want {
			t.Errorf("SerialNumber(%q, %q) = %q, want %q", tt.model, tt.imei, got, tt.want)
		}
	}
}
