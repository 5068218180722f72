package models

import (
	"reflect"
	"testing"
)

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase", "Portrait", "portrait"},
		{"trim spaces", "  portrait  ", "portrait"},
		{"trim tabs", "\tportrait\t", "portrait"},
		{"mixed case with inner space", "Street Night", "street night"},
		{"already normalized", "portrait", "portrait"},
		{"only whitespace", "   ", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeTag(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeTag(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestValidateTag(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		errType error
	}{
		{"valid simple", "portrait", false, nil},
		{"valid with hyphen", "black-and-white", false, nil},
		{"valid with space", "street night", false, nil},
		{"valid with numbers", "iso3200", false, nil},
		{"empty string", "", true, ErrEmptyTagName},
		{"too long", "this-is-a-very-long-tag-name-that-exceeds-fifty-characters", true, ErrTagNameTooLong},
		{"invalid chars", "portrait!", true, ErrInvalidTagCharacter},
		{"uppercase rejected after normalization step", "Portrait", true, ErrInvalidTagCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTag(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTag(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr && err != tt.errType {
				t.Errorf("ValidateTag(%q) error = %v, want %v", tt.input, err, tt.errType)
			}
		})
	}
}

func TestAddShortcut(t *testing.T) {
	tests := []struct {
		name        string
		list        []string
		input       string
		expected    []string
		wantChanged bool
	}{
		{"add to empty", nil, "portrait", []string{"portrait"}, true},
		{"normalizes before insert", []string{"portrait"}, "  Landscape ", []string{"landscape", "portrait"}, true},
		{"keeps sorted order", []string{"landscape", "street"}, "macro", []string{"landscape", "macro", "street"}, true},
		{"duplicate is a no-op", []string{"portrait"}, "portrait", []string{"portrait"}, false},
		{"duplicate after normalization is a no-op", []string{"portrait"}, " PORTRAIT ", []string{"portrait"}, false},
		{"empty input is a no-op", []string{"portrait"}, "", []string{"portrait"}, false},
		{"whitespace input is a no-op", []string{"portrait"}, "   ", []string{"portrait"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := AddShortcut(tt.list, tt.input)
			if changed != tt.wantChanged {
				t.Errorf("AddShortcut(%v, %q) changed = %v, want %v", tt.list, tt.input, changed, tt.wantChanged)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("AddShortcut(%v, %q) = %v, want %v", tt.list, tt.input, got, tt.expected)
			}
		})
	}
}

func TestAddShortcutDoesNotMutateInput(t *testing.T) {
	list := []string{"landscape", "street"}
	AddShortcut(list, "macro")
	if !reflect.DeepEqual(list, []string{"landscape", "street"}) {
		t.Errorf("input list mutated: %v", list)
	}
}

func TestRemoveShortcut(t *testing.T) {
	tests := []struct {
		name     string
		list     []string
		input    string
		expected []string
	}{
		{"remove present", []string{"landscape", "portrait"}, "portrait", []string{"landscape"}},
		{"remove absent is idempotent", []string{"landscape"}, "portrait", []string{"landscape"}},
		{"remove normalizes", []string{"landscape", "portrait"}, " Portrait ", []string{"landscape"}},
		{"remove all occurrences", []string{"portrait", "portrait", "street"}, "portrait", []string{"street"}},
		{"remove from empty", nil, "portrait", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemoveShortcut(tt.list, tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("RemoveShortcut(%v, %q) = %v, want %v", tt.list, tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeShortcuts(t *testing.T) {
	tests := []struct {
		name     string
		list     []string
		expected []string
	}{
		{"sorts", []string{"street", "landscape"}, []string{"landscape", "street"}},
		{"dedupes after normalization", []string{"Portrait", "portrait "}, []string{"portrait"}},
		{"drops empties", []string{"", "  ", "macro"}, []string{"macro"}},
		{"nil stays empty", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeShortcuts(tt.list)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("NormalizeShortcuts(%v) = %v, want %v", tt.list, got, tt.expected)
			}
		})
	}
}
