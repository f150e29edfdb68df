package match

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

const (
	maxSkills    = 20
	maxLocations = 5
)

// Profile is the structured representation of a candidate derived from
// resume or query text. A profile is never mutated after extraction; a new
// one replaces an old one.
type Profile struct {
	Skills             []string
	ExperienceYears    *float64
	PreferredLocations []string
	JobPreferences     []string
}

// skillVocabulary is the fixed set of known technical terms scanned for in
// free text. Order matters: matches are reported in scan order.
var skillVocabulary = []string{
	"python", "java", "javascript", "typescript", "react", "angular", "vue",
	"node.js", "express", "django", "flask", "spring", "sql", "mongodb",
	"postgresql", "mysql", "aws", "azure", "gcp", "docker", "kubernetes",
	"git", "github", "jenkins", "ci/cd", "agile", "scrum", "jira",
	"machine learning", "ml", "ai", "artificial intelligence", "data science",
	"data analysis", "statistics", "r", "matlab", "tensorflow", "pytorch",
	"scikit-learn", "pandas", "numpy", "matplotlib", "seaborn",
	"html", "css", "bootstrap", "tailwind", "sass", "less",
	"php", "ruby", "go", "rust", "c++", "c#", ".net", "asp.net",
	"devops", "linux", "unix", "bash", "shell scripting", "powershell",
	"microservices", "api", "rest", "graphql", "soap", "xml", "json",
	"testing", "unit testing", "integration testing", "tdd", "bdd",
	"design patterns", "oop", "functional programming", "clean code",
}

// skillSuffixPatterns catch skills outside the fixed vocabulary, e.g.
// "zig programming" or "ember framework".
var skillSuffixPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\w+)\s+programming`),
	regexp.MustCompile(`(\w+)\s+development`),
	regexp.MustCompile(`(\w+)\s+framework`),
	regexp.MustCompile(`(\w+)\s+library`),
	regexp.MustCompile(`(\w+)\s+tool`),
	regexp.MustCompile(`(\w+)\s+technology`),
}

var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s+years?\s+of?\s+experience`),
	regexp.MustCompile(`(\d+)\s+years?\s+in\s+\w+`),
	regexp.MustCompile(`experience:\s*(\d+)\s+years?`),
	regexp.MustCompile(`(\d+)\+?\s+years?\s+experience`),
	regexp.MustCompile(`senior\s+level\s+\((\d+)\s+years?\)`),
}

// experienceLevels map seniority wording to a representative years value.
// Checked in order; the first group with any keyword present wins.
var experienceLevels = []struct {
	keywords []string
	years    float64
}{
	{[]string{"entry level", "junior"}, 1.0},
	{[]string{"mid level", "intermediate"}, 3.0},
	{[]string{"senior"}, 7.0},
	{[]string{"lead", "principal"}, 10.0},
	{[]string{"architect", "director"}, 15.0},
}

var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`location:\s*([a-z\s,]+)`),
	regexp.MustCompile(`based\s+in\s+([a-z\s,]+)`),
	regexp.MustCompile(`from\s+([a-z\s,]+)`),
	regexp.MustCompile(`willing\s+to\s+relocate\s+to\s+([a-z\s,]+)`),
	regexp.MustCompile(`preferred\s+location:\s*([a-z\s,]+)`),
}

var commonCities = []string{
	"bangalore", "mumbai", "delhi", "pune", "hyderabad", "chennai",
	"kolkata", "noida", "gurgaon", "remote", "hybrid",
}

// preferenceGroups append their canonical tag when any keyword of the group
// is present. Groups are independent; tags can co-occur.
var preferenceGroups = []struct {
	keywords []string
	tag      string
}{
	{[]string{"full time", "full-time"}, "Full-time"},
	{[]string{"part time", "part-time"}, "Part-time"},
	{[]string{"contract"}, "Contract"},
	{[]string{"remote"}, "Remote"},
	{[]string{"hybrid"}, "Hybrid"},
	{[]string{"startup"}, "Startup"},
	{[]string{"enterprise", "corporate"}, "Enterprise"},
	{[]string{"fintech", "finance"}, "Fintech"},
	{[]string{"healthcare", "medical"}, "Healthcare"},
	{[]string{"ecommerce", "retail"}, "E-commerce"},
}

// ExtractProfile derives a structured candidate profile from free text. It
// never fails: signals that are absent from the text simply leave the
// corresponding field empty.
func ExtractProfile(text string) Profile {
	return Profile{
		Skills:             ExtractSkills(text),
		ExperienceYears:    extractExperienceYears(text),
		PreferredLocations: extractPreferredLocations(text),
		JobPreferences:     extractJobPreferences(text),
	}
}

// ExtractSkills scans the text for known skill terms and suffix patterns,
// returning up to 20 canonical title-cased skills in discovery order.
func ExtractSkills(text string) []string {
	lower := strings.ToLower(text)
	var skills []string

	for _, term := range skillVocabulary {
		if !strings.Contains(lower, term) {
			continue
		}
		clean := titleCase(strings.ReplaceAll(term, "/", " "))
		if !containsString(skills, clean) {
			skills = append(skills, clean)
		}
	}

	for _, pattern := range skillSuffixPatterns {
		for _, m := range pattern.FindAllStringSubmatch(lower, -1) {
			if !containsFold(skills, m[1]) {
				skills = append(skills, titleCase(m[1]))
			}
		}
	}

	if len(skills) > maxSkills {
		skills = skills[:maxSkills]
	}
	return skills
}

func extractExperienceYears(text string) *float64 {
	lower := strings.ToLower(text)

	for _, pattern := range experiencePatterns {
		m := pattern.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		years, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		return &years
	}

	for _, level := range experienceLevels {
		for _, keyword := range level.keywords {
			if strings.Contains(lower, keyword) {
				years := level.years
				return &years
			}
		}
	}

	return nil
}

func extractPreferredLocations(text string) []string {
	lower := strings.ToLower(text)
	var locations []string

	for _, pattern := range locationPatterns {
		for _, m := range pattern.FindAllStringSubmatch(lower, -1) {
			location := strings.TrimSpace(m[1])
			if location == "" {
				continue
			}
			location = titleCase(location)
			if !containsString(locations, location) {
				locations = append(locations, location)
			}
		}
	}

	for _, city := range commonCities {
		if strings.Contains(lower, city) && !containsString(locations, titleCase(city)) {
			locations = append(locations, titleCase(city))
		}
	}

	if len(locations) > maxLocations {
		locations = locations[:maxLocations]
	}
	return locations
}

func extractJobPreferences(text string) []string {
	lower := strings.ToLower(text)
	var preferences []string

	for _, group := range preferenceGroups {
		for _, keyword := range group.keywords {
			if strings.Contains(lower, keyword) {
				preferences = append(preferences, group.tag)
				break
			}
		}
	}

	return preferences
}

// titleCase uppercases the first letter of every alphabetic run and
// lowercases the rest, so "node.js" becomes "Node.Js" and "aws" "Aws".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		prevLetter = false
		b.WriteRune(r)
	}
	return b.String()
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
