package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var themeCaser = cases.Lower(language.Und)

// FoldAccents remove diacríticos: "Várzea" -> "Varzea"
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

// NormalizeTheme normaliza um tema para comparação: NFC, minúsculas e espaços colapsados.
// Acentos são mantidos para continuar compatível com LOWER(...) LIKE no banco.
// Exemplo: "  Conto   de FANTASMA " -> "conto de fantasma"
func NormalizeTheme(theme string) string {
	if theme == "" {
		return ""
	}
	normalized := norm.NFC.String(theme)
	normalized = themeCaser.String(normalized)
	return strings.Join(strings.Fields(normalized), " ")
}

// ThemeMatches indica se o tema de um conteúdo casa (de forma aproximada) com o tema pedido.
// Mesma regra do filtro SQL: o tema do conteúdo contém o tema pedido.
func ThemeMatches(contentTheme, wanted string) bool {
	c := NormalizeTheme(contentTheme)
	w := NormalizeTheme(wanted)
	if c == "" || w == "" {
		return false
	}
	return strings.Contains(c, w)
}

// ParseThemes converte string comma-separated em lista normalizada, sem vazios e sem duplicatas
func ParseThemes(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	return DedupeThemes(parts)
}

// DedupeThemes normaliza e remove duplicatas preservando a ordem
func DedupeThemes(themes []string) []string {
	result := make([]string, 0, len(themes))
	seen := make(map[string]struct{}, len(themes))
	for _, t := range themes {
		n := NormalizeTheme(t)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		result = append(result, n)
	}
	return result
}
