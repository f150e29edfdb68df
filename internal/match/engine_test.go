package match

import (
	"testing"

	"jobscout/internal/job"

	"go.uber.org/zap"
)

func testJobs() *job.Jobs {
	return &job.Jobs{Items: []*job.Posting{
		{
			ID:          "senior-swe",
			Title:       "Senior Software Engineer",
			Company:     "TechCorp Solutions",
			Location:    "Bangalore, Karnataka",
			Experience:  "5-8 years",
			Skills:      []string{"Python", "React", "AWS", "SQL"},
			Description: "We are looking for a talented software engineer with Python and React experience",
		},
		{
			ID:          "data-scientist",
			Title:       "Data Scientist",
			Company:     "DataTech Inc",
			Location:    "Mumbai, Maharashtra",
			Experience:  "3-6 years",
			Skills:      []string{"Python", "Machine Learning", "SQL", "Statistics"},
			Description: "Join our data science team to build ML models and analyze data",
		},
		{
			ID:          "fullstack",
			Title:       "Full Stack Developer",
			Company:     "StartupXYZ",
			Location:    "Remote",
			Experience:  "2-5 years",
			Skills:      []string{"JavaScript", "Node.js", "React", "MongoDB"},
			Description: "Build scalable web applications using modern technologies",
		},
	}}
}

func TestRecommendSortedAndThresholded(t *testing.T) {
	engine := NewEngine(zap.NewNop())
	profile := Profile{
		Skills:             []string{"Python", "React", "AWS", "SQL"},
		ExperienceYears:    floatPtr(6),
		PreferredLocations: []string{"Bangalore"},
	}

	results := engine.Recommend(profile, testJobs(), Options{})

	if len(results) == 0 {
		t.Fatal("expected recommendations")
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Fatalf("results not sorted descending: %v then %v", results[i-1].Score, results[i].Score)
		}
	}
	for _, r := range results {
		if r.Score <= DefaultMinScore {
			t.Fatalf("result %s below threshold: %v", r.Job.ID, r.Score)
		}
	}
	if results[0].Job.ID != "senior-swe" {
		t.Fatalf("expected senior-swe first, got %s", results[0].Job.ID)
	}
}

func TestRecommendLimit(t *testing.T) {
	engine := NewEngine(zap.NewNop())
	profile := Profile{Skills: []string{"Python", "React"}}

	results := engine.Recommend(profile, testJobs(), Options{MinScore: 0.01, Limit: 1})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
}

func TestRecommendEmptyCollection(t *testing.T) {
	engine := NewEngine(zap.NewNop())

	if got := engine.Recommend(Profile{Skills: []string{"Go"}}, nil, Options{}); len(got) != 0 {
		t.Fatalf("expected empty result for nil collection, got %d", len(got))
	}
	if got := engine.Recommend(Profile{Skills: []string{"Go"}}, &job.Jobs{}, Options{}); len(got) != 0 {
		t.Fatalf("expected empty result for empty collection, got %d", len(got))
	}
}

func TestRecommendSkipsNilPosting(t *testing.T) {
	engine := NewEngine(zap.NewNop())
	jobs := testJobs()
	jobs.Items = append([]*job.Posting{nil}, jobs.Items...)

	results := engine.Recommend(Profile{Skills: []string{"Python"}}, jobs, Options{MinScore: 0.01})

	for _, r := range results {
		if r.Job == nil {
			t.Fatal("nil posting leaked into results")
		}
	}
	if len(results) == 0 {
		t.Fatal("expected surviving postings to be ranked")
	}
}

func TestSimilarJobsExcludesReference(t *testing.T) {
	engine := NewEngine(zap.NewNop())

	results := engine.SimilarJobs("senior-swe", testJobs(), Options{MinScore: 0.01})

	for _, r := range results {
		if r.Job.ID == "senior-swe" {
			t.Fatal("reference posting included in its own similar list")
		}
	}
	if len(results) == 0 {
		t.Fatal("expected similar jobs")
	}
}

func TestSimilarJobsUnknownReference(t *testing.T) {
	engine := NewEngine(zap.NewNop())

	if got := engine.SimilarJobs("nope", testJobs(), Options{}); len(got) != 0 {
		t.Fatalf("expected empty result for unknown reference, got %d", len(got))
	}
}

func TestSimilarByOverlapOrdering(t *testing.T) {
	engine := NewEngine(zap.NewNop())
	jobs := &job.Jobs{Items: []*job.Posting{
		{ID: "ref", Title: "Backend Engineer", Location: "Pune", Skills: []string{"Go", "SQL", "Docker"}},
		{ID: "one-skill", Title: "SRE", Location: "Delhi", Skills: []string{"Docker", "Terraform"}},
		{ID: "two-skills", Title: "Platform Engineer", Location: "Chennai", Skills: []string{"Go", "Docker"}},
		{ID: "location-only", Title: "Designer", Location: "Pune", Skills: []string{"Figma"}},
		{ID: "unrelated", Title: "Writer", Location: "Delhi", Skills: []string{"Prose"}},
	}}

	results := engine.SimilarByOverlap("ref", jobs, 10)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Job.ID != "two-skills" {
		t.Fatalf("expected two-skills first, got %s", results[0].Job.ID)
	}
	if results[1].Job.ID != "one-skill" {
		t.Fatalf("expected one-skill second, got %s", results[1].Job.ID)
	}
	if results[2].Job.ID != "location-only" {
		t.Fatalf("expected location-only third, got %s", results[2].Job.ID)
	}
	if !results[2].LocationMatch {
		t.Fatal("expected location match flag on location-only result")
	}
}

func TestRecommendStableTies(t *testing.T) {
	engine := NewEngine(zap.NewNop())
	jobs := &job.Jobs{Items: []*job.Posting{
		{ID: "first", Title: "A", Location: "Pune", Skills: []string{"Go"}},
		{ID: "second", Title: "B", Location: "Delhi", Skills: []string{"Go"}},
	}}

	results := engine.Recommend(Profile{Skills: []string{"Go"}}, jobs, Options{MinScore: 0.01})

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Job.ID != "first" || results[1].Job.ID != "second" {
		t.Fatalf("tie order not stable: %s then %s", results[0].Job.ID, results[1].Job.ID)
	}
}
