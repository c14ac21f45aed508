package recommend

import (
	"math"
	"sort"
	"time"

	"github.com/prefeitura-rio/app-recomendacao/internal/models"
)

// Source indica de qual gerador veio um candidato
type Source uint8

const (
	SourceContentBased Source = 1 << iota
	SourceCollaborative
)

// Candidate é um conteúdo com o score calculado
type Candidate struct {
	Content models.Content
	Score   float64
	Sources Source
}

// Scorer calcula o score de conteúdo de um candidato
type Scorer struct {
	bonuses  Bonuses
	affinity Affinity
	now      time.Time
}

// NewScorer cria um scorer para uma requisição
func NewScorer(b Bonuses, aff Affinity, now time.Time) *Scorer {
	return &Scorer{bonuses: b, affinity: aff, now: now}
}

// Score soma bônus de tema preferido, tema derivado, recência e popularidade.
// Os bônus de tema são cumulativos.
func (s *Scorer) Score(c models.Content) float64 {
	score := 0.0
	if c.MatchesAny(s.affinity.Preferred) {
		score += s.bonuses.Preferred
	}
	if c.MatchesAny(s.affinity.Derived) {
		score += s.bonuses.Derived
	}
	score += s.recencyBonus(c)
	score += s.popularityBonus(c)
	return score
}

// recencyBonus: max(0, RecencyMax - dias) para conteúdo mais novo que a janela
func (s *Scorer) recencyBonus(c models.Content) float64 {
	age := s.now.Sub(c.CreatedAt)
	if age < 0 {
		age = 0
	}
	if age >= s.bonuses.RecencyWindow {
		return 0
	}
	days := age.Hours() / 24
	return math.Max(0, s.bonuses.RecencyMax-days)
}

func (s *Scorer) popularityBonus(c models.Content) float64 {
	likes := float64(c.LikesCount)
	if likes < 0 {
		return 0
	}
	return math.Min(s.bonuses.PopularityCap, likes)
}

// Merge combina os candidatos por conteúdo com os colaborativos. Conteúdo colaborativo recebe
// o bônus colaborativo somado ao score que já tinha no conjunto por conteúdo (0 se não estava
// nele). Itens do histórico são descartados.
func (s *Scorer) Merge(contentBased []Candidate, collaborative []models.Content, signals Signals) []Candidate {
	byID := make(map[int64]*Candidate, len(contentBased)+len(collaborative))
	order := make([]int64, 0, len(contentBased)+len(collaborative))

	put := func(c Candidate) {
		if signals.Seen(c.Content.ID) {
			return
		}
		if existing, ok := byID[c.Content.ID]; ok {
			existing.Sources |= c.Sources
			if c.Score > existing.Score {
				existing.Score = c.Score
			}
			return
		}
		cp := c
		byID[c.Content.ID] = &cp
		order = append(order, c.Content.ID)
	}

	for _, c := range contentBased {
		put(c)
	}
	boosted := make(map[int64]struct{}, len(collaborative))
	for _, item := range collaborative {
		if _, dup := boosted[item.ID]; dup {
			continue
		}
		boosted[item.ID] = struct{}{}

		base := 0.0
		if existing, ok := byID[item.ID]; ok {
			base = existing.Score
		}
		put(Candidate{Content: item, Score: base + s.bonuses.Collaborative, Sources: SourceCollaborative})
	}

	out := make([]Candidate, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	return out
}

// Rank ordena por score desc, depois mais recente, depois id desc, e trunca em limit
func Rank(candidates []Candidate, limit int) []Candidate {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidateLess(candidates[j], candidates[i])
	})
	if limit >= 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// candidateLess define a ordem total usada no ranking (a < b quando a fica depois de b)
func candidateLess(a, b Candidate) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	if !a.Content.CreatedAt.Equal(b.Content.CreatedAt) {
		return a.Content.CreatedAt.Before(b.Content.CreatedAt)
	}
	return a.Content.ID < b.Content.ID
}

func contentsOf(candidates []Candidate) []models.Content {
	out := make([]models.Content, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.Content)
	}
	return out
}
