package matching

import (
	"strings"

	"wow-campus/internal/i18n"
)

type Match struct {
	Score   int
	Reasons []string
}

// Reasons explains a breakdown in the localizer's language. Order follows
// the criteria order: skills, location, experience, visa, salary.
func (b Breakdown) Reasons(loc i18n.Localizer) []string {
	out := make([]string, 0, 5)

	if len(b.MatchedSkills) > 0 {
		out = append(out, loc.T(i18n.KeyReasonSkills, strings.Join(b.MatchedSkills, ", ")))
	}

	switch b.Location {
	case LocationExact:
		out = append(out, loc.T(i18n.KeyReasonLocation, b.jobLocation))
	case LocationAdjacent:
		out = append(out, loc.T(i18n.KeyReasonLocationAdjacent, b.jobLocation))
	}

	if b.ExperienceMet {
		if key, ok := experienceReasonKeys[b.level]; ok {
			out = append(out, loc.T(key))
		}
	}

	switch b.Visa {
	case VisaSponsorship:
		out = append(out, loc.T(i18n.KeyReasonVisaSponsorship))
	case VisaSettled:
		out = append(out, loc.T(i18n.KeyReasonVisaSettled, strings.ToUpper(b.visaStatus)))
	}

	if b.Salary == SalaryInRange {
		out = append(out, loc.T(i18n.KeyReasonSalary))
	}

	return out
}

var experienceReasonKeys = map[string]string{
	LevelEntry:  i18n.KeyReasonExpEntry,
	LevelJunior: i18n.KeyReasonExpJunior,
	LevelMid:    i18n.KeyReasonExpMid,
	LevelSenior: i18n.KeyReasonExpSenior,
}

// Reasons is the standalone reason generator; it evaluates the pair itself.
func Reasons(job Job, seeker Seeker, loc i18n.Localizer) []string {
	b, err := Evaluate(job, seeker)
	if err != nil {
		return []string{loc.T(i18n.KeyReasonError)}
	}
	return b.Reasons(loc)
}

// Compute returns score and reasons from a single evaluation.
func Compute(job Job, seeker Seeker, loc i18n.Localizer) (Match, error) {
	b, err := Evaluate(job, seeker)
	if err != nil {
		return Match{}, err
	}
	return Match{Score: b.Score, Reasons: b.Reasons(loc)}, nil
}
