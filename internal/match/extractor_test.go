package match

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractProfileResumeScenario(t *testing.T) {
	text := "I have 5 years of experience building web apps with Python, React, AWS, SQL"

	profile := ExtractProfile(text)

	if profile.ExperienceYears == nil || *profile.ExperienceYears != 5.0 {
		t.Fatalf("expected 5.0 years, got %v", profile.ExperienceYears)
	}

	for _, want := range []string{"Python", "React", "Aws", "Sql"} {
		if !containsString(profile.Skills, want) {
			t.Fatalf("expected skill %q in %v", want, profile.Skills)
		}
	}
}

func TestExtractProfileEmptyInput(t *testing.T) {
	profile := ExtractProfile("")

	if len(profile.Skills) != 0 {
		t.Fatalf("expected no skills, got %v", profile.Skills)
	}
	if profile.ExperienceYears != nil {
		t.Fatalf("expected nil experience, got %v", *profile.ExperienceYears)
	}
	if len(profile.PreferredLocations) != 0 {
		t.Fatalf("expected no locations, got %v", profile.PreferredLocations)
	}
	if len(profile.JobPreferences) != 0 {
		t.Fatalf("expected no preferences, got %v", profile.JobPreferences)
	}
}

func TestExtractProfileIdempotent(t *testing.T) {
	text := "Senior engineer based in pune, remote friendly, knows docker and kubernetes"

	first := ExtractProfile(text)
	second := ExtractProfile(text)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("profiles differ:\n%+v\n%+v", first, second)
	}
}

func TestExtractSkillsCap(t *testing.T) {
	// Mention enough vocabulary terms to exceed the cap.
	text := strings.Join(skillVocabulary[:30], " ")

	skills := ExtractSkills(text)

	if len(skills) > maxSkills {
		t.Fatalf("expected at most %d skills, got %d", maxSkills, len(skills))
	}
}

func TestExtractSkillsSuffixPatterns(t *testing.T) {
	skills := ExtractSkills("worked with the zig programming language and the ember framework")

	if !containsString(skills, "Zig") {
		t.Fatalf("expected Zig from suffix pattern, got %v", skills)
	}
	if !containsString(skills, "Ember") {
		t.Fatalf("expected Ember from suffix pattern, got %v", skills)
	}
}

func TestExtractSkillsCanonicalForm(t *testing.T) {
	skills := ExtractSkills("experience with node.js, ci/cd pipelines and machine learning")

	for _, want := range []string{"Node.Js", "Ci Cd", "Machine Learning"} {
		if !containsString(skills, want) {
			t.Fatalf("expected %q in %v", want, skills)
		}
	}
}

func TestExtractExperienceYears(t *testing.T) {
	cases := []struct {
		name string
		text string
		want float64
	}{
		{"years of experience", "3 years of experience in backend work", 3},
		{"years in field", "8 years in fintech", 8},
		{"labeled", "experience: 4 years", 4},
		{"plus years", "6+ years experience with go", 6},
		{"senior level parenthesized", "senior level (9 years)", 9},
		{"junior keyword", "junior developer seeking first role", 1},
		{"intermediate keyword", "intermediate backend developer", 3},
		{"senior keyword", "senior backend developer", 7},
		{"principal keyword", "principal engineer", 10},
		{"director keyword", "engineering director", 15},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := extractExperienceYears(tc.text)
			if got == nil {
				t.Fatalf("expected %v years, got nil", tc.want)
			}
			if *got != tc.want {
				t.Fatalf("expected %v years, got %v", tc.want, *got)
			}
		})
	}

	if got := extractExperienceYears("loves hiking and photography"); got != nil {
		t.Fatalf("expected nil for text without experience signals, got %v", *got)
	}
}

func TestExtractPreferredLocations(t *testing.T) {
	locations := extractPreferredLocations("based in mumbai, willing to relocate to bangalore")

	if len(locations) == 0 {
		t.Fatal("expected locations to be extracted")
	}
	if !containsString(locations, "Bangalore") {
		t.Fatalf("expected Bangalore in %v", locations)
	}
	if len(locations) > maxLocations {
		t.Fatalf("expected at most %d locations, got %d", maxLocations, len(locations))
	}
}

func TestExtractPreferredLocationsCityScan(t *testing.T) {
	locations := extractPreferredLocations("open to remote or hybrid work, ideally pune")

	for _, want := range []string{"Remote", "Hybrid", "Pune"} {
		if !containsString(locations, want) {
			t.Fatalf("expected %q in %v", want, locations)
		}
	}
}

func TestExtractJobPreferences(t *testing.T) {
	prefs := extractJobPreferences("looking for a full-time remote role at a fintech startup")

	for _, want := range []string{"Full-time", "Remote", "Startup", "Fintech"} {
		if !containsString(prefs, want) {
			t.Fatalf("expected %q in %v", want, prefs)
		}
	}
	if containsString(prefs, "Healthcare") {
		t.Fatalf("did not expect Healthcare in %v", prefs)
	}
}

func TestTitleCase(t *testing.T) {
	cases := map[string]string{
		"aws":              "Aws",
		"node.js":          "Node.Js",
		"machine learning": "Machine Learning",
		"c++":              "C++",
		"BANGALORE":        "Bangalore",
	}

	for input, want := range cases {
		if got := titleCase(input); got != want {
			t.Fatalf("titleCase(%q) = %q, want %q", input, got, want)
		}
	}
}
