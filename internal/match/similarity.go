package match

import (
	"strings"

	"jobscout/internal/job"
)

// SimilarityScore computes an additive job-to-job similarity in [0,1].
// Each term is independent; only the total is capped.
func SimilarityScore(a, b *job.Posting) float64 {
	score := 0.0

	titleA := strings.ToLower(a.Title)
	titleB := strings.ToLower(b.Title)
	if titleA == titleB {
		score += 0.3
	} else if anyWordIn(titleA, titleB) {
		score += 0.2
	}

	if len(a.Skills) > 0 && len(b.Skills) > 0 {
		common := commonSkillCount(a.Skills, b.Skills)
		if common > 0 {
			larger := len(a.Skills)
			if len(b.Skills) > larger {
				larger = len(b.Skills)
			}
			score += 0.3 * float64(common) / float64(larger)
		}
	}

	if a.Experience != "" && b.Experience != "" {
		expA := strings.ToLower(a.Experience)
		expB := strings.ToLower(b.Experience)
		if expA == expB {
			score += 0.2
		} else if mentionsSeniority(expA) && mentionsSeniority(expB) {
			score += 0.15
		}
	}

	if strings.EqualFold(a.Location, b.Location) {
		score += 0.2
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// CoarseSimilarity is the cheaper two-factor heuristic used by the
// reference-job recommendation pathway: skill-overlap count plus a boolean
// location match. It is deliberately distinct from SimilarityScore and must
// stay a separate code path; callers filter on overlap > 0 or a location
// match instead of a score threshold.
func CoarseSimilarity(ref, candidate *job.Posting) (skillOverlap int, locationMatch bool) {
	skillOverlap = commonSkillCount(ref.Skills, candidate.Skills)
	locationMatch = ref.Location != "" && strings.EqualFold(ref.Location, candidate.Location)
	return skillOverlap, locationMatch
}

func anyWordIn(source, target string) bool {
	for _, word := range strings.Fields(source) {
		if strings.Contains(target, word) {
			return true
		}
	}
	return false
}

func commonSkillCount(a, b []string) int {
	set := make(map[string]struct{}, len(a))
	for _, skill := range a {
		set[strings.ToLower(skill)] = struct{}{}
	}
	count := 0
	seen := make(map[string]struct{}, len(b))
	for _, skill := range b {
		lower := strings.ToLower(skill)
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		if _, ok := set[lower]; ok {
			count++
		}
	}
	return count
}

func mentionsSeniority(experience string) bool {
	return strings.Contains(experience, "senior") || strings.Contains(experience, "lead")
}
