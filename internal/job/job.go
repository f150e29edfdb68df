package job

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"time"
)

// Posting is a single scraped job listing. Postings are created by the
// scraping layer and treated as read-only everywhere else.
type Posting struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Experience  string    `json:"experience,omitempty"`
	Skills      []string  `json:"skills,omitempty"`
	Description string    `json:"description"`
	Salary      string    `json:"salary,omitempty"`
	JobType     string    `json:"job_type,omitempty"`
	Remote      *bool     `json:"remote,omitempty"`
	URL         string    `json:"url,omitempty"`
	Platform    string    `json:"platform,omitempty"`
	PostedAt    time.Time `json:"posted_date,omitempty"`
}

type Jobs struct {
	Items []*Posting
}

// GenerateID derives a stable posting id from the source URL and platform.
func GenerateID(url, platform string) string {
	sum := md5.Sum([]byte(url))
	return platform + "_" + hex.EncodeToString(sum[:])[:8]
}

func (j *Jobs) Len() int {
	if j == nil {
		return 0
	}
	return len(j.Items)
}

func (j *Jobs) FindByID(id string) *Posting {
	if j == nil {
		return nil
	}
	for _, posting := range j.Items {
		if posting != nil && posting.ID == id {
			return posting
		}
	}
	return nil
}

func (j *Jobs) IDs() []string {
	ids := make([]string, 0, j.Len())
	if j == nil {
		return ids
	}
	for _, posting := range j.Items {
		if posting != nil {
			ids = append(ids, posting.ID)
		}
	}
	return ids
}

// Add appends the posting unless one with the same id is already present.
func (j *Jobs) Add(p *Posting) bool {
	if p == nil || p.ID == "" {
		return false
	}
	if j.FindByID(p.ID) != nil {
		return false
	}
	j.Items = append(j.Items, p)
	return true
}

// Search returns postings matching the free-text query and location filter.
// A posting matches the query when it appears in the title, the description
// or any skill. Empty filters match everything.
func (j *Jobs) Search(query, location string, limit int) *Jobs {
	results := &Jobs{}
	if j == nil {
		return results
	}

	query = strings.ToLower(strings.TrimSpace(query))
	location = strings.ToLower(strings.TrimSpace(location))

	for _, posting := range j.Items {
		if posting == nil {
			continue
		}
		if query != "" && !matchesQuery(posting, query) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(posting.Location), location) {
			continue
		}

		results.Items = append(results.Items, posting)
		if limit > 0 && len(results.Items) >= limit {
			break
		}
	}

	return results
}

func matchesQuery(p *Posting, query string) bool {
	if strings.Contains(strings.ToLower(p.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), query) {
		return true
	}
	for _, skill := range p.Skills {
		if strings.Contains(strings.ToLower(skill), query) {
			return true
		}
	}
	return false
}
