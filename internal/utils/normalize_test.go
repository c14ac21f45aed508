package utils

import (
	"reflect"
	"testing"
)

func TestNormalizeTheme(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Ghost-Story", "ghost-story"},
		{"  Conto   de FANTASMA ", "conto de fantasma"},
		{"Terror Psicológico", "terror psicológico"},
		{"ÉPICO", "épico"},
		{"", ""},
		{"   ", ""},
	}

	for _, test := range tests {
		result := NormalizeTheme(test.input)
		if result != test.expected {
			t.Errorf("NormalizeTheme(%q) = %q; expected %q", test.input, result, test.expected)
		}
	}
}

func TestThemeMatches(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wanted  string
		want    bool
	}{
		{"igual", "ghost-story", "ghost-story", true},
		{"maiúsculas", "Ghost-Story", "ghost-story", true},
		{"contém", "victorian ghost-story", "ghost-story", true},
		{"não contém", "romance", "ghost-story", false},
		{"tema do conteúdo vazio", "", "ghost-story", false},
		{"tema pedido vazio", "romance", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ThemeMatches(tt.content, tt.wanted); got != tt.want {
				t.Errorf("ThemeMatches(%q, %q) = %v, want %v", tt.content, tt.wanted, got, tt.want)
			}
		})
	}
}

func TestParseThemes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"vazio", "", nil},
		{"só espaços", "  ", nil},
		{"único", "Horror", []string{"horror"}},
		{"duplicados e vazios", "horror, ,Horror,ghost-story,", []string{"horror", "ghost-story"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseThemes(tt.input)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseThemes(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
