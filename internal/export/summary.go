package export

import (
	"sort"

	"github.com/contacto-solutions/novedades-tracker/constants"
	"github.com/contacto-solutions/novedades-tracker/internal/entity"
)

// CategorySummary is one line of the executive summary: a grouped count with
// its share of the batch and the editorial impact label.
type CategorySummary struct {
	Categoria  string  `json:"categoria"`
	Total      int     `json:"total"`
	Porcentaje float64 `json:"porcentaje"`
	Impacto    string  `json:"impacto"`
}

// Summary groups records by category. Presentational aggregation only:
// counts, percentage of the batch total, and an impact label looked up by
// exact category match (unmatched categories get the low-impact default).
// Output is ordered by count descending, then category for stability.
func (s *Service) Summary(records []entity.NoveltyRecord) []CategorySummary {
	if len(records) == 0 {
		return nil
	}
	counts := map[string]int{}
	for _, r := range records {
		counts[r.Categoria]++
	}
	out := make([]CategorySummary, 0, len(counts))
	total := len(records)
	for cat, n := range counts {
		out = append(out, CategorySummary{
			Categoria:  cat,
			Total:      n,
			Porcentaje: 100 * float64(n) / float64(total),
			Impacto:    constants.ImpactFor(cat, s.impactLabels),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Categoria < out[j].Categoria
	})
	return out
}
