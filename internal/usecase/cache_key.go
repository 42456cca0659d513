package usecase

import (
	"strconv"

	"wow-campus/internal/i18n"
)

const (
	matchJobsPrefix    = "matching:jobs:"
	matchSeekersPrefix = "matching:seekers:"
	statisticsKey      = "matching:statistics"
)

func MatchJobsCacheKey(seekerID int64, loc i18n.Locale) string {
	return matchJobsPrefix + strconv.FormatInt(seekerID, 10) + ":" + string(loc)
}

func MatchSeekersCacheKey(jobID int64, loc i18n.Locale) string {
	return matchSeekersPrefix + strconv.FormatInt(jobID, 10) + ":" + string(loc)
}

// matchInvalidationPatterns lists what a write to postings or profiles can
// make stale. Any posting change affects every seeker's job list and the
// reverse.
func matchInvalidationPatterns() []string {
	return []string{matchJobsPrefix + "*", matchSeekersPrefix + "*", statisticsKey}
}
