package planner

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/rs/zerolog/log"
	"github.com/travigo/journeyresolver/pkg/config"
	"github.com/travigo/journeyresolver/pkg/ctdf"
	"golang.org/x/exp/slices"
)

// Ranker scores itineraries against the preferred modes with a configurable expression. The expression sees
// preferredLegs, legs and durationMinutes.
type Ranker struct {
	Expression string

	program *vm.Program
}

func rankingEnvironment(itinerary ctdf.Itinerary, preferred ctdf.ModeSet) map[string]any {
	preferredLegs := 0
	for _, leg := range itinerary.Legs {
		if preferred.Contains(leg.Mode) {
			preferredLegs++
		}
	}

	return map[string]any{
		"preferredLegs":   float64(preferredLegs),
		"legs":            float64(len(itinerary.Legs)),
		"durationMinutes": itinerary.Duration.Minutes(),
	}
}

func NewRanker(expression string) (*Ranker, error) {
	if expression == "" {
		expression = config.DefaultRankingExpression
	}

	program, err := expr.Compile(expression, expr.Env(rankingEnvironment(ctdf.Itinerary{}, nil)), expr.AsFloat64())
	if err != nil {
		return nil, fmt.Errorf("ranking expression %q: %w", expression, err)
	}

	return &Ranker{
		Expression: expression,
		program:    program,
	}, nil
}

func (r *Ranker) Score(itinerary ctdf.Itinerary, preferred ctdf.ModeSet) float64 {
	output, err := expr.Run(r.program, rankingEnvironment(itinerary, preferred))
	if err != nil {
		log.Warn().Err(err).Str("expression", r.Expression).Msg("Failed to score itinerary")
		return 0
	}

	score, ok := output.(float64)
	if !ok {
		return 0
	}

	return score
}

// Rerank orders itineraries by descending score, keeping the provider's order between equal scores
func (r *Ranker) Rerank(itineraries []ctdf.Itinerary, preferred ctdf.ModeSet) []ctdf.Itinerary {
	scores := make([]float64, len(itineraries))
	indexes := make([]int, len(itineraries))
	for i, itinerary := range itineraries {
		scores[i] = r.Score(itinerary, preferred)
		indexes[i] = i
	}

	slices.SortStableFunc(indexes, func(a, b int) int {
		switch {
		case scores[a] > scores[b]:
			return -1
		case scores[a] < scores[b]:
			return 1
		default:
			return 0
		}
	})

	ranked := make([]ctdf.Itinerary, 0, len(itineraries))
	for _, index := range indexes {
		ranked = append(ranked, itineraries[index])
	}

	return ranked
}
