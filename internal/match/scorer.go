package match

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"jobscout/internal/job"
)

// Sub-score weights. They intentionally do not renormalize when a sub-score
// has no input: a posting without an experience requirement caps at 0.7 even
// when every other signal is perfect.
const (
	skillsWeight      = 0.4
	experienceWeight  = 0.3
	locationWeight    = 0.2
	descriptionWeight = 0.1

	defaultRequiredYears = 5.0
)

// MatchResult pairs a posting with its match score and a human-readable
// rationale. Results are immutable once returned.
type MatchResult struct {
	Job           *job.Posting `json:"job"`
	Score         float64      `json:"score"`
	Rationale     string       `json:"rationale"`
	MatchedSkills []string     `json:"skills_match"`
	LocationMatch bool         `json:"location_match"`
}

var yearsRangePattern = regexp.MustCompile(`(\d+)[-+](\d+)?`)

// ScoreJob computes a weighted match score in [0,1] between a candidate
// profile and a posting. Missing inputs contribute zero to their sub-score;
// the call never fails.
func ScoreJob(p Profile, posting *job.Posting) MatchResult {
	score := 0.0

	if len(p.Skills) > 0 && len(posting.Skills) > 0 {
		score += skillsSubScore(p.Skills, posting.Skills) * skillsWeight
	}

	if p.ExperienceYears != nil && posting.Experience != "" {
		score += experienceSubScore(*p.ExperienceYears, posting.Experience) * experienceWeight
	}

	if len(p.PreferredLocations) > 0 {
		score += locationSubScore(posting.Location, p.PreferredLocations) * locationWeight
	}

	if len(p.Skills) > 0 && posting.Description != "" {
		score += descriptionSubScore(p.Skills, posting.Description) * descriptionWeight
	}

	if score > 1.0 {
		score = 1.0
	}

	return MatchResult{
		Job:           posting,
		Score:         score,
		Rationale:     matchRationale(p, posting),
		MatchedSkills: matchedSkills(p.Skills, posting.Description),
		LocationMatch: locationMatched(posting.Location, p.PreferredLocations),
	}
}

// skillsSubScore is the fraction of profile skills present in the posting's
// skill list, case-insensitively.
func skillsSubScore(profileSkills, jobSkills []string) float64 {
	matches := 0
	for _, skill := range profileSkills {
		if containsFold(jobSkills, skill) {
			matches++
		}
	}
	return float64(matches) / float64(len(profileSkills))
}

// experienceSubScore compares candidate years against the posting's derived
// requirement. Overqualification is never penalized; underqualification
// falls off linearly, reaching zero only at zero candidate experience.
func experienceSubScore(candidateYears float64, requirement string) float64 {
	required := requiredYears(requirement)

	if candidateYears >= required {
		return 1.0
	}

	score := 1.0 - (required-candidateYears)/required
	if score < 0 {
		return 0
	}
	return score
}

// requiredYears maps a posting's free-text experience requirement to a
// representative years value.
func requiredYears(requirement string) float64 {
	lower := strings.ToLower(requirement)

	switch {
	case strings.Contains(lower, "entry") || strings.Contains(lower, "junior"):
		return 1.0
	case strings.Contains(lower, "mid") || strings.Contains(lower, "intermediate"):
		return 3.0
	case strings.Contains(lower, "senior"):
		return 7.0
	case strings.Contains(lower, "lead") || strings.Contains(lower, "principal"):
		return 10.0
	}

	if m := yearsRangePattern.FindStringSubmatch(lower); m != nil {
		minYears, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			maxYears := minYears + 2
			if m[2] != "" {
				if parsed, err := strconv.ParseFloat(m[2], 64); err == nil {
					maxYears = parsed
				}
			}
			return (minYears + maxYears) / 2
		}
	}

	return defaultRequiredYears
}

// locationSubScore checks preference rules in priority order; the first
// matching rule wins.
func locationSubScore(jobLocation string, preferred []string) float64 {
	lower := strings.ToLower(jobLocation)

	for _, pref := range preferred {
		if strings.Contains(lower, strings.ToLower(pref)) {
			return 1.0
		}
	}

	for _, pref := range preferred {
		for _, word := range strings.Fields(strings.ToLower(pref)) {
			if strings.Contains(lower, word) {
				return 0.7
			}
		}
	}

	if containsFold(preferred, "remote") && strings.Contains(lower, "remote") {
		return 1.0
	}
	if containsFold(preferred, "hybrid") && strings.Contains(lower, "hybrid") {
		return 0.8
	}

	return 0.0
}

func descriptionSubScore(profileSkills []string, description string) float64 {
	lower := strings.ToLower(description)
	matches := 0
	for _, skill := range profileSkills {
		if strings.Contains(lower, strings.ToLower(skill)) {
			matches++
		}
	}
	return float64(matches) / float64(len(profileSkills))
}

// matchedSkills returns the profile skills appearing in the posting's
// description, the same substring logic the description sub-score uses.
func matchedSkills(profileSkills []string, description string) []string {
	lower := strings.ToLower(description)
	var matched []string
	for _, skill := range profileSkills {
		if strings.Contains(lower, strings.ToLower(skill)) {
			matched = append(matched, skill)
		}
	}
	return matched
}

func locationMatched(jobLocation string, preferred []string) bool {
	lower := strings.ToLower(jobLocation)
	for _, pref := range preferred {
		if strings.Contains(lower, strings.ToLower(pref)) {
			return true
		}
	}
	return false
}

// matchRationale builds the semicolon-joined explanation for a match. Each
// reason is added independently; a generic fallback covers the empty case.
func matchRationale(p Profile, posting *job.Posting) string {
	var reasons []string

	if len(p.Skills) > 0 && len(posting.Skills) > 0 {
		var matching []string
		for _, skill := range p.Skills {
			if containsFold(posting.Skills, skill) {
				matching = append(matching, skill)
			}
		}
		if len(matching) > 0 {
			if len(matching) > 3 {
				matching = matching[:3]
			}
			reasons = append(reasons, fmt.Sprintf("Skills match: %s", strings.Join(matching, ", ")))
		}
	}

	if p.ExperienceYears != nil && posting.Experience != "" {
		expLower := strings.ToLower(posting.Experience)
		if strings.Contains(expLower, "senior") && *p.ExperienceYears >= 5 {
			reasons = append(reasons, "Experience level matches senior position")
		} else if strings.Contains(expLower, "entry") && *p.ExperienceYears <= 2 {
			reasons = append(reasons, "Experience level matches entry position")
		}
	}

	locLower := strings.ToLower(posting.Location)
	for _, pref := range p.PreferredLocations {
		if strings.Contains(locLower, strings.ToLower(pref)) {
			reasons = append(reasons, fmt.Sprintf("Location preference: %s", pref))
			break
		}
	}

	if strings.Contains(strings.ToLower(posting.Company), "startup") &&
		containsFold(p.JobPreferences, "startup") {
		reasons = append(reasons, "Company type preference: Startup")
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "General fit based on job requirements")
	}

	return strings.Join(reasons, "; ")
}
