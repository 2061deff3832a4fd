// Package recommend scores visible, not-yet-applied jobs against a
// seeker's declared skill list. It is a pure function of its inputs:
// no persistence, no side effects.
package recommend

import (
	"sort"
	"strings"

	"github.com/talenthub/backend/internal/models"
)

const (
	maxResults    = 10
	scorePerSkill = 20
	maxScore      = 100
)

// ScoredJob is a job annotated with its 0-100 match score.
type ScoredJob struct {
	models.Job
	MatchScore int `json:"match_score"`
}

// MatchScore counts how many skills appear as case-insensitive substrings
// of text and returns min(100, 20 * matches).
func MatchScore(skills []string, text string) int {
	normalized := strings.ToLower(text)
	matched := 0
	for _, skill := range skills {
		if skill == "" {
			continue
		}
		if strings.Contains(normalized, strings.ToLower(skill)) {
			matched++
		}
	}
	score := matched * scorePerSkill
	if score > maxScore {
		return maxScore
	}
	return score
}

// Recommend ranks candidate jobs for a seeker. Jobs are scored against
// "title category level", sorted by descending score then descending
// creation date, and capped at 10 results. A seeker with no declared
// skills gets the 10 most recent candidates, unscored.
func Recommend(skills []string, jobs []models.Job) []ScoredJob {
	scored := make([]ScoredJob, len(jobs))
	for i, job := range jobs {
		scored[i] = ScoredJob{Job: job}
		if len(skills) > 0 {
			text := job.Title + " " + job.Category + " " + job.Level
			scored[i].MatchScore = MatchScore(skills, text)
		}
	}

	if len(skills) == 0 {
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].Date.After(scored[j].Date)
		})
	} else {
		sort.SliceStable(scored, func(i, j int) bool {
			if scored[i].MatchScore != scored[j].MatchScore {
				return scored[i].MatchScore > scored[j].MatchScore
			}
			return scored[i].Date.After(scored[j].Date)
		})
	}

	if len(scored) > maxResults {
		scored = scored[:maxResults]
	}
	return scored
}
