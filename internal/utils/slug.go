package utils

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	MaxSlugBaseLength = 60
	MaxSlugWords      = 8
	ShortIDLength     = 8
)

// GenerateSlug monta o slug de um conto: palavras do título sem acentos, em minúsculas,
// unidas por hífen, seguidas dos primeiros caracteres de uniqueID.
// Elisões são unidas ("Olho d'Água" -> "olho-dagua") e o título é cortado em palavras inteiras.
// Exemplo: "A Casa Assombrada" + "9f1c2e7a-..." -> "a-casa-assombrada-9f1c2e7a"
func GenerateSlug(title, uniqueID string) string {
	if title == "" || uniqueID == "" {
		return ""
	}

	shortID := shortSlugID(uniqueID)
	base := slugWords(title)

	switch {
	case base == "":
		return shortID
	case shortID == "":
		return base
	}
	return base + "-" + shortID
}

// slugWords extrai as palavras ASCII do título respeitando os limites de palavras e tamanho
func slugWords(title string) string {
	folded := FoldAccents(themeCaser.String(norm.NFC.String(title)))

	var words []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			current.WriteRune(r)
		case r == '\'' || r == '’' || r == 'ʼ':
			// elisão: "d'água" vira uma palavra só
		default:
			flush()
		}
	}
	flush()

	if len(words) == 0 {
		return ""
	}
	if len(words[0]) > MaxSlugBaseLength {
		return words[0][:MaxSlugBaseLength]
	}

	slug := words[0]
	for i, w := range words[1:] {
		if i+2 > MaxSlugWords || len(slug)+1+len(w) > MaxSlugBaseLength {
			break
		}
		slug += "-" + w
	}
	return slug
}

// shortSlugID mantém apenas letras e dígitos do identificador (hífens de UUID saem)
func shortSlugID(id string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(id) {
		if b.Len() == ShortIDLength {
			break
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
