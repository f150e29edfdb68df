package match

import (
	"math"
	"strings"
	"testing"

	"jobscout/internal/job"
)

func floatPtr(v float64) *float64 { return &v }

func TestScoreJobSkillsOnly(t *testing.T) {
	profile := Profile{Skills: []string{"Python", "React"}}
	posting := &job.Posting{
		ID:     "j1",
		Title:  "Software Engineer",
		Skills: []string{"Python", "React", "AWS", "SQL"},
	}

	result := ScoreJob(profile, posting)

	// Both profile skills are present: 1.0 * 0.4. The other sub-scores have
	// no inputs and contribute nothing.
	if math.Abs(result.Score-0.4) > 1e-9 {
		t.Fatalf("expected score 0.4, got %v", result.Score)
	}
}

func TestScoreJobUnderqualified(t *testing.T) {
	profile := Profile{ExperienceYears: floatPtr(2)}
	posting := &job.Posting{ID: "j1", Experience: "senior"}

	result := ScoreJob(profile, posting)

	// senior maps to 7 required years: sub-score 2/7, weighted by 0.3.
	want := (2.0 / 7.0) * 0.3
	if math.Abs(result.Score-want) > 1e-9 {
		t.Fatalf("expected score %v, got %v", want, result.Score)
	}
}

func TestExperienceOverqualifiedNeverPenalized(t *testing.T) {
	cases := []struct {
		years       float64
		requirement string
	}{
		{10, "3-5 years"},
		{7, "senior"},
		{1.5, "junior"},
		{20, "lead engineer"},
		{5, "anything unparsable"},
	}

	for _, tc := range cases {
		if got := experienceSubScore(tc.years, tc.requirement); got != 1.0 {
			t.Fatalf("experienceSubScore(%v, %q) = %v, want 1.0", tc.years, tc.requirement, got)
		}
	}
}

func TestRequiredYears(t *testing.T) {
	cases := []struct {
		requirement string
		want        float64
	}{
		{"entry level position", 1},
		{"junior", 1},
		{"mid level", 3},
		{"intermediate", 3},
		{"senior", 7},
		{"lead", 10},
		{"principal engineer", 10},
		{"3-5 years", 4},
		{"4+ years", 5},
		{"no signal at all", 5},
	}

	for _, tc := range cases {
		if got := requiredYears(tc.requirement); got != tc.want {
			t.Fatalf("requiredYears(%q) = %v, want %v", tc.requirement, got, tc.want)
		}
	}
}

func TestLocationSubScorePriorityOrder(t *testing.T) {
	cases := []struct {
		name      string
		location  string
		preferred []string
		want      float64
	}{
		{"substring match", "Bangalore, Karnataka", []string{"Bangalore"}, 1.0},
		{"word overlap", "Greater Mumbai Area", []string{"Mumbai Central"}, 0.7},
		{"remote both sides", "Remote", []string{"Remote"}, 1.0},
		{"hybrid both sides", "Hybrid - Pune office", []string{"Hybrid"}, 1.0},
		{"no match", "Chennai", []string{"Delhi"}, 0.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := locationSubScore(tc.location, tc.preferred); got != tc.want {
				t.Fatalf("locationSubScore(%q, %v) = %v, want %v", tc.location, tc.preferred, got, tc.want)
			}
		})
	}
}

func TestScoreJobBounds(t *testing.T) {
	postings := []*job.Posting{
		{ID: "a", Title: "Engineer", Location: "Remote", Experience: "senior",
			Skills: []string{"Python"}, Description: "python everywhere"},
		{ID: "b"},
		{ID: "c", Title: "Designer", Location: "Pune", Experience: "2-4 years",
			Skills: []string{"Figma"}, Description: "design work"},
	}
	profiles := []Profile{
		{},
		{Skills: []string{"Python", "React", "Aws"}},
		{Skills: []string{"Python"}, ExperienceYears: floatPtr(12),
			PreferredLocations: []string{"Remote"}, JobPreferences: []string{"Remote"}},
	}

	for _, p := range profiles {
		for _, posting := range postings {
			result := ScoreJob(p, posting)
			if result.Score < 0 || result.Score > 1 {
				t.Fatalf("score %v out of bounds for profile %+v posting %s", result.Score, p, posting.ID)
			}
		}
	}
}

func TestSkillsSubScoreMonotonic(t *testing.T) {
	posting := &job.Posting{
		ID:     "j1",
		Skills: []string{"Python", "React", "AWS"},
	}

	without := skillsSubScore([]string{"Python"}, posting.Skills)
	with := skillsSubScore([]string{"Python", "React"}, posting.Skills)

	if with < without {
		t.Fatalf("adding a matching skill decreased the sub-score: %v -> %v", without, with)
	}
}

func TestMissingExperienceWeightNotRenormalized(t *testing.T) {
	profile := Profile{
		Skills:             []string{"Python"},
		ExperienceYears:    floatPtr(10),
		PreferredLocations: []string{"Remote"},
	}
	posting := &job.Posting{
		ID:          "j1",
		Location:    "Remote",
		Skills:      []string{"Python"},
		Description: "python all day",
	}

	result := ScoreJob(profile, posting)

	// Perfect skills, location and description, but the posting has no
	// experience requirement: its 0.3 weight is wasted, not redistributed.
	if math.Abs(result.Score-0.7) > 1e-9 {
		t.Fatalf("expected score 0.7, got %v", result.Score)
	}
}

func TestMatchRationale(t *testing.T) {
	profile := Profile{
		Skills:             []string{"Python", "React", "AWS", "SQL"},
		ExperienceYears:    floatPtr(8),
		PreferredLocations: []string{"Bangalore"},
		JobPreferences:     []string{"Startup"},
	}
	posting := &job.Posting{
		ID:         "j1",
		Title:      "Senior Engineer",
		Company:    "Rocket Startup Ltd",
		Location:   "Bangalore, Karnataka",
		Experience: "senior",
		Skills:     []string{"Python", "React", "AWS", "SQL"},
	}

	rationale := ScoreJob(profile, posting).Rationale

	for _, want := range []string{
		"Skills match: Python, React, AWS",
		"Experience level matches senior position",
		"Location preference: Bangalore",
		"Company type preference: Startup",
	} {
		if !strings.Contains(rationale, want) {
			t.Fatalf("expected rationale to contain %q, got %q", want, rationale)
		}
	}
}

func TestMatchRationaleFallback(t *testing.T) {
	rationale := ScoreJob(Profile{}, &job.Posting{ID: "j1", Title: "Anything"}).Rationale

	if rationale != "General fit based on job requirements" {
		t.Fatalf("expected generic fallback, got %q", rationale)
	}
}

func TestMatchedSkillsUseDescription(t *testing.T) {
	profile := Profile{Skills: []string{"Python", "React", "Rust"}}
	posting := &job.Posting{
		ID:          "j1",
		Description: "We use Python and React in production.",
	}

	result := ScoreJob(profile, posting)

	if len(result.MatchedSkills) != 2 {
		t.Fatalf("expected 2 matched skills, got %v", result.MatchedSkills)
	}
	if result.MatchedSkills[0] != "Python" || result.MatchedSkills[1] != "React" {
		t.Fatalf("unexpected matched skills: %v", result.MatchedSkills)
	}
}
