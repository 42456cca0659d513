package matching

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrInvalidInput = errors.New("invalid matching input")

type Criterion string

const (
	CriterionSkills     Criterion = "skills"
	CriterionLocation   Criterion = "location"
	CriterionExperience Criterion = "experience"
	CriterionVisa       Criterion = "visa"
	CriterionSalary     Criterion = "salary"
)

const (
	WeightSkills     = 40.0
	WeightLocation   = 25.0
	WeightExperience = 20.0
	WeightVisa       = 10.0
	WeightSalary     = 5.0
)

const (
	LevelEntry     = "entry"
	LevelJunior    = "junior"
	LevelMid       = "mid"
	LevelSenior    = "senior"
	LevelExecutive = "executive"
)

// Job is the scoring view of a posting. Zero salary bounds mean "not stated".
type Job struct {
	ID              int64
	Title           string
	Location        string
	Skills          []string
	ExperienceLevel string
	VisaSponsorship bool
	SalaryMin       int64
	SalaryMax       int64
}

// Seeker is the scoring view of a jobseeker profile. PreferredLocation may hold
// several regions separated by "/".
type Seeker struct {
	ID                int64
	Skills            []string
	PreferredLocation string
	ExperienceYears   *int
	VisaStatus        string
	SalaryExpectation int64
}

type SubScore struct {
	Criterion  Criterion
	Earned     float64
	Max        float64
	Applicable bool
}

type LocationFit int

const (
	LocationNone LocationFit = iota
	LocationExact
	LocationAdjacent
)

type VisaFit int

const (
	VisaNone VisaFit = iota
	VisaSponsorship
	VisaSettled
)

type SalaryFit int

const (
	SalaryOutOfRange SalaryFit = iota
	SalaryInRange
	SalaryNear
	SalaryFar
)

type Breakdown struct {
	Criteria []SubScore
	Earned   float64
	Max      float64
	Score    int

	MatchedSkills []string
	Location      LocationFit
	ExperienceMet bool
	Visa          VisaFit
	Salary        SalaryFit

	jobLocation string
	level       string
	visaStatus  string
}

func (b Breakdown) Criterion(c Criterion) (SubScore, bool) {
	for _, s := range b.Criteria {
		if s.Criterion == c {
			return s, true
		}
	}
	return SubScore{}, false
}

var settledVisas = map[string]struct{}{
	"F-2": {},
	"F-4": {},
	"F-5": {},
	"F-6": {},
}

// Evaluate scores a job/seeker pair. Only criteria with data on both sides
// count toward the denominator; when none do, the score is 0.
func Evaluate(job Job, seeker Seeker) (Breakdown, error) {
	if err := validate(job, seeker); err != nil {
		return Breakdown{}, err
	}

	b := Breakdown{
		Criteria:    make([]SubScore, 0, 5),
		jobLocation: strings.TrimSpace(job.Location),
		level:       strings.ToLower(strings.TrimSpace(job.ExperienceLevel)),
		visaStatus:  strings.TrimSpace(seeker.VisaStatus),
	}

	b.add(scoreSkills(job, seeker, &b))
	b.add(scoreLocation(job, seeker, &b))
	b.add(scoreExperience(job, seeker, &b))
	b.add(scoreVisa(job, seeker, &b))
	b.add(scoreSalary(job, seeker, &b))

	if b.Max > 0 {
		b.Score = clampInt(int(math.Round(100*b.Earned/b.Max)), 0, 100)
	}
	return b, nil
}

// Score returns the 0..100 match score, or 0 when the input is invalid.
func Score(job Job, seeker Seeker) int {
	b, err := Evaluate(job, seeker)
	if err != nil {
		return 0
	}
	return b.Score
}

func (b *Breakdown) add(s SubScore) {
	b.Criteria = append(b.Criteria, s)
	if !s.Applicable {
		return
	}
	b.Earned += s.Earned
	b.Max += s.Max
}

func validate(job Job, seeker Seeker) error {
	if seeker.ExperienceYears != nil && *seeker.ExperienceYears < 0 {
		return fmt.Errorf("%w: experience_years %d", ErrInvalidInput, *seeker.ExperienceYears)
	}
	if job.SalaryMin < 0 || job.SalaryMax < 0 {
		return fmt.Errorf("%w: salary range %d..%d", ErrInvalidInput, job.SalaryMin, job.SalaryMax)
	}
	if job.SalaryMin > 0 && job.SalaryMax > 0 && job.SalaryMin > job.SalaryMax {
		return fmt.Errorf("%w: salary_min %d > salary_max %d", ErrInvalidInput, job.SalaryMin, job.SalaryMax)
	}
	if seeker.SalaryExpectation < 0 {
		return fmt.Errorf("%w: salary_expectation %d", ErrInvalidInput, seeker.SalaryExpectation)
	}
	return nil
}

func scoreSkills(job Job, seeker Seeker, b *Breakdown) SubScore {
	s := SubScore{Criterion: CriterionSkills, Max: WeightSkills}

	required := cleanSkills(job.Skills)
	owned := cleanSkills(seeker.Skills)
	if len(required) == 0 || len(owned) == 0 {
		return s
	}
	s.Applicable = true

	matched := make([]string, 0, len(required))
	for _, req := range required {
		r := strings.ToLower(req)
		for _, have := range owned {
			h := strings.ToLower(have)
			if strings.Contains(h, r) || strings.Contains(r, h) {
				matched = append(matched, req)
				break
			}
		}
	}

	b.MatchedSkills = matched
	s.Earned = WeightSkills * float64(len(matched)) / float64(len(required))
	return s
}

func cleanSkills(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

func scoreLocation(job Job, seeker Seeker, b *Breakdown) SubScore {
	s := SubScore{Criterion: CriterionLocation, Max: WeightLocation}

	jobLoc := strings.ToLower(strings.TrimSpace(job.Location))
	prefs := splitLocations(seeker.PreferredLocation)
	if jobLoc == "" || len(prefs) == 0 {
		return s
	}
	s.Applicable = true

	for _, p := range prefs {
		if strings.Contains(jobLoc, p) || strings.Contains(p, jobLoc) {
			b.Location = LocationExact
			s.Earned = WeightLocation
			return s
		}
	}

	if adjacentRegions(jobLoc, prefs) {
		b.Location = LocationAdjacent
		s.Earned = 15
	}
	return s
}

func splitLocations(raw string) []string {
	parts := strings.Split(raw, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func isSeoul(s string) bool {
	return strings.Contains(s, "서울") || strings.Contains(s, "seoul")
}

func isGyeonggi(s string) bool {
	return strings.Contains(s, "경기") || strings.Contains(s, "gyeonggi")
}

// Seoul and Gyeonggi count as commutable from each other.
func adjacentRegions(jobLoc string, prefs []string) bool {
	for _, p := range prefs {
		if isSeoul(p) && isGyeonggi(jobLoc) {
			return true
		}
		if isGyeonggi(p) && isSeoul(jobLoc) {
			return true
		}
	}
	return false
}

func scoreExperience(job Job, seeker Seeker, b *Breakdown) SubScore {
	s := SubScore{Criterion: CriterionExperience, Max: WeightExperience}
	if b.level == "" || seeker.ExperienceYears == nil {
		return s
	}
	s.Applicable = true

	pts := experiencePoints(b.level, *seeker.ExperienceYears)
	s.Earned = float64(pts)
	switch b.level {
	case LevelEntry, LevelJunior, LevelMid, LevelSenior:
		b.ExperienceMet = pts == int(WeightExperience)
	}
	return s
}

func experiencePoints(level string, years int) int {
	switch level {
	case LevelEntry:
		if years <= 1 {
			return 20
		}
		if years <= 3 {
			return 15
		}
		return 10
	case LevelJunior:
		if years >= 1 && years <= 3 {
			return 20
		}
		if years <= 5 {
			return 15
		}
		return 10
	case LevelMid:
		if years >= 3 && years <= 7 {
			return 20
		}
		if years >= 1 && years <= 10 {
			return 15
		}
		return 10
	case LevelSenior:
		if years >= 5 {
			return 20
		}
		if years >= 3 {
			return 15
		}
		return 5
	default:
		return 10
	}
}

func scoreVisa(job Job, seeker Seeker, b *Breakdown) SubScore {
	s := SubScore{Criterion: CriterionVisa, Max: WeightVisa, Applicable: true}
	if job.VisaSponsorship {
		b.Visa = VisaSponsorship
		s.Earned = WeightVisa
		return s
	}
	if _, ok := settledVisas[strings.ToUpper(b.visaStatus)]; ok {
		b.Visa = VisaSettled
		s.Earned = WeightVisa
	}
	return s
}

func scoreSalary(job Job, seeker Seeker, b *Breakdown) SubScore {
	s := SubScore{Criterion: CriterionSalary, Max: WeightSalary}
	if job.SalaryMin <= 0 || job.SalaryMax <= 0 || seeker.SalaryExpectation <= 0 {
		return s
	}
	s.Applicable = true

	exp := seeker.SalaryExpectation
	if exp >= job.SalaryMin && exp <= job.SalaryMax {
		b.Salary = SalaryInRange
		s.Earned = WeightSalary
		return s
	}

	gap := job.SalaryMin - exp
	if exp > job.SalaryMax {
		gap = exp - job.SalaryMax
	}
	mid := float64(job.SalaryMin+job.SalaryMax) / 2
	ratio := float64(gap) / mid

	// A [3000, 4000] range against 4500 is 500/3500, about 14%, and earns 3 of
	// 5; that seeker/job pair totals 78.
	switch {
	case ratio <= 0.2:
		b.Salary = SalaryNear
		s.Earned = 3
	case ratio <= 0.4:
		b.Salary = SalaryFar
		s.Earned = 1
	default:
		b.Salary = SalaryOutOfRange
	}
	return s
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
