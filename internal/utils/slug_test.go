package utils

import (
	"strings"
	"testing"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		uniqueID string
		expected string
	}{
		{"título simples", "A Casa Assombrada", "abc123def456", "a-casa-assombrada-abc123de"},
		{"título com acentos", "Sombras na Várzea", "xyz789abc123", "sombras-na-varzea-xyz789ab"},
		{"título com cedilha", "Lição do Farol", "ccc333ddd444", "licao-do-farol-ccc333dd"},
		{"título com pontuação", "Quem Bate? (Parte 2)", "def456ghi789", "quem-bate-parte-2-def456gh"},
		{"elisão com apóstrofo", "Olho d'Água", "aaa111bbb222", "olho-dagua-aaa111bb"},
		{"elisão com apóstrofo tipográfico", "O Copo D’Água", "aaa111bbb222", "o-copo-dagua-aaa111bb"},
		{"ordinal", "2ª Noite no Sobrado", "bbb222ccc333", "2-noite-no-sobrado-bbb222cc"},
		{"uuid com hífens", "Neblina", "9F1C2E7A-1b2c-4d5e-8f90-123456789abc", "neblina-9f1c2e7a"},
		{"id curto com hífen", "Neblina", "ab-cd", "neblina-abcd"},
		{"id curto", "Teste", "abc", "teste-abc"},
		{"id sem caracteres válidos", "Neblina", "---", "neblina"},
		{"título vazio", "", "abc123def456", ""},
		{"id vazio", "Teste", "", ""},
		{"só caracteres especiais", "!@#$%^&*()", "abc123def456", "abc123de"},
		{"espaços múltiplos", "O   Último   Trem", "xyz789abc123", "o-ultimo-trem-xyz789ab"},
		{"underscores", "conto_de_natal", "bbb222ccc333", "conto-de-natal-bbb222cc"},
		{"limite de palavras", "um dois tres quatro cinco seis sete oito nove dez", "abc123def456",
			"um-dois-tres-quatro-cinco-seis-sete-oito-abc123de"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GenerateSlug(tt.title, tt.uniqueID)
			if result != tt.expected {
				t.Errorf("GenerateSlug(%q, %q) = %q; expected %q",
					tt.title, tt.uniqueID, result, tt.expected)
			}
		})
	}
}

func TestGenerateSlug_Truncation(t *testing.T) {
	tests := []struct {
		name  string
		title string
	}{
		{"título longo", strings.Repeat("Histórias da Madrugada Fria ", 10)},
		{"palavra única longa", strings.Repeat("a", 80)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GenerateSlug(tt.title, "abc123def456")

			if !strings.HasSuffix(result, "-abc123de") {
				t.Fatalf("slug deveria terminar com o id curto, got: %q", result)
			}
			base := strings.TrimSuffix(result, "-abc123de")
			if len(base) > MaxSlugBaseLength {
				t.Errorf("slug base deveria ter no máximo %d chars, got %d: %q", MaxSlugBaseLength, len(base), base)
			}
			if n := len(strings.Split(base, "-")); n > MaxSlugWords {
				t.Errorf("slug base deveria ter no máximo %d palavras, got %d: %q", MaxSlugWords, n, base)
			}
		})
	}
}

func TestGenerateSlug_NoStrayHyphens(t *testing.T) {
	titles := []string{
		"Conto -- de -- Terror",
		"   Espaços   Múltiplos   ",
		"-Hífen no início",
		"Hífen no final-",
		"'Aspas' soltas '",
	}

	for _, title := range titles {
		result := GenerateSlug(title, "abc123def456")
		if strings.Contains(result, "--") {
			t.Errorf("slug contém hífens consecutivos: %q", result)
		}
		if strings.HasPrefix(result, "-") {
			t.Errorf("slug não deveria começar com hífen: %q", result)
		}
	}
}

func TestFoldAccents(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Várzea", "Varzea"},
		{"lição", "licao"},
		{"ÉPICO", "EPICO"},
		{"sem acento", "sem acento"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := FoldAccents(tt.input); got != tt.expected {
			t.Errorf("FoldAccents(%q) = %q; expected %q", tt.input, got, tt.expected)
		}
	}
}
