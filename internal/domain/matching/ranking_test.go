package matching

import (
	"errors"
	"testing"

	"wow-campus/internal/i18n"
)

type candidate struct {
	id    int64
	score int
	fail  error
	panic bool
}

func scoreCandidate(c candidate) (Match, error) {
	if c.panic {
		panic("boom")
	}
	if c.fail != nil {
		return Match{}, c.fail
	}
	return Match{Score: c.score, Reasons: []string{"ok"}}, nil
}

func TestScoreAll_IsolatesFailures(t *testing.T) {
	in := []candidate{
		{id: 1, score: 50},
		{id: 2, fail: ErrInvalidInput},
		{id: 3, panic: true},
		{id: 4, score: 80},
	}

	var failed []int64
	out := ScoreAll(in, scoreCandidate, i18n.Localizer{}, func(c candidate, err error) {
		failed = append(failed, c.id)
		if c.id == 3 && !errors.Is(err, ErrScoringPanic) {
			t.Fatalf("expected ErrScoringPanic, got %v", err)
		}
	})

	if len(out) != 4 {
		t.Fatalf("expected 4 scored candidates, got %d", len(out))
	}
	if len(failed) != 2 || failed[0] != 2 || failed[1] != 3 {
		t.Fatalf("unexpected failures: %v", failed)
	}
	for _, s := range out[1:3] {
		if s.Score != 0 || len(s.Reasons) != 1 || s.Reasons[0] != "계산 오류" {
			t.Fatalf("expected calculation error entry, got %+v", s)
		}
	}
	if out[3].Score != 80 {
		t.Fatalf("candidate after failures was not scored: %+v", out[3])
	}
}

func TestRank_OrdersStablyAndFilters(t *testing.T) {
	scored := []Scored[int64]{
		{Candidate: 1, Score: 40},
		{Candidate: 2, Score: 0},
		{Candidate: 3, Score: 90},
		{Candidate: 4, Score: 40},
		{Candidate: 5, Score: 90},
		{Candidate: 6, Score: 10},
	}

	r := Rank(scored, 0)
	want := []int64{3, 5, 1, 4, 6}
	if len(r.Matches) != len(want) {
		t.Fatalf("expected %d matches, got %d", len(want), len(r.Matches))
	}
	for i, id := range want {
		if r.Matches[i].Candidate != id {
			t.Fatalf("position %d: expected %d, got %d", i, id, r.Matches[i].Candidate)
		}
	}
	for i := 1; i < len(r.Matches); i++ {
		if r.Matches[i].Score > r.Matches[i-1].Score {
			t.Fatalf("scores not non-increasing at %d", i)
		}
	}
	if r.Total != 5 {
		t.Fatalf("expected total 5, got %d", r.Total)
	}
	if r.Average != 54 {
		t.Fatalf("expected average 54, got %d", r.Average)
	}
}

func TestRank_TruncatesButKeepsTotals(t *testing.T) {
	scored := make([]Scored[int], 0, 30)
	for i := 0; i < 30; i++ {
		scored = append(scored, Scored[int]{Candidate: i, Score: 50})
	}

	r := Rank(scored, DefaultTopN)
	if len(r.Matches) != 20 {
		t.Fatalf("expected 20 matches, got %d", len(r.Matches))
	}
	if r.Total != 30 || r.Average != 50 {
		t.Fatalf("unexpected totals: total=%d avg=%d", r.Total, r.Average)
	}
	if r.Matches[19].Candidate != 19 {
		t.Fatalf("ties must keep input order")
	}
}

func TestRank_Empty(t *testing.T) {
	r := Rank([]Scored[int]{{Candidate: 1, Score: 0}}, 5)
	if len(r.Matches) != 0 || r.Total != 0 || r.Average != 0 {
		t.Fatalf("expected empty ranking, got %+v", r)
	}
}
