package matching

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"wow-campus/internal/i18n"
)

const DefaultTopN = 20

var ErrScoringPanic = errors.New("scoring panicked")

type Scored[T any] struct {
	Candidate T
	Score     int
	Reasons   []string
}

type Ranking[T any] struct {
	Matches []Scored[T]
	Total   int
	Average int
}

// ScoreAll scores every candidate in order. A candidate whose scorer fails or
// panics gets score 0 with the localized calculation-error reason; onErr is
// told about it and the rest of the batch proceeds.
func ScoreAll[T any](candidates []T, score func(T) (Match, error), loc i18n.Localizer, onErr func(T, error)) []Scored[T] {
	out := make([]Scored[T], 0, len(candidates))
	for _, c := range candidates {
		m, err := safeScore(c, score)
		if err != nil {
			if onErr != nil {
				onErr(c, err)
			}
			m = Match{Score: 0, Reasons: []string{loc.T(i18n.KeyReasonError)}}
		}
		out = append(out, Scored[T]{Candidate: c, Score: m.Score, Reasons: m.Reasons})
	}
	return out
}

func safeScore[T any](c T, score func(T) (Match, error)) (m Match, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrScoringPanic, r)
		}
	}()
	return score(c)
}

// Rank drops zero scores, orders the rest by score descending keeping input
// order for ties, and keeps the first limit entries. Total and Average cover
// every positive match, not just the kept ones.
func Rank[T any](scored []Scored[T], limit int) Ranking[T] {
	if limit <= 0 {
		limit = DefaultTopN
	}

	positive := make([]Scored[T], 0, len(scored))
	sum := 0
	for _, s := range scored {
		if s.Score <= 0 {
			continue
		}
		positive = append(positive, s)
		sum += s.Score
	}

	sort.SliceStable(positive, func(i, j int) bool {
		return positive[i].Score > positive[j].Score
	})

	r := Ranking[T]{Total: len(positive)}
	if r.Total > 0 {
		r.Average = int(math.Round(float64(sum) / float64(r.Total)))
	}
	if len(positive) > limit {
		positive = positive[:limit]
	}
	r.Matches = positive
	return r
}
