// Package profile loads the candidate's CV text and derives the search
// inputs from it.
package profile

import (
	"errors"
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"

	"go-jobscout/internal/filter"
)

const MaxSkills = 10

// Default is used when no CV file is available
const Default = `I am a Software Developer with experience in backend development.
Skills: Python, Go, JavaScript, React, Node.js, Docker, Kubernetes, AWS, PostgreSQL, MongoDB
Experience: 3 years
Looking for: Full-time remote or hybrid roles in software engineering
Preferred locations: India, USA, Europe (remote)
Industries: Tech startups, SaaS companies, fintech`

// FallbackSkills is used when no known skill appears in the CV
var FallbackSkills = []string{"Software Development"}

// KnownSkills in the order they are reported
var KnownSkills = []string{
	"Python", "Java", "JavaScript", "Go", "Golang", "C++", "C#", "Ruby", "PHP",
	"React", "Angular", "Vue", "Node.js", "Django", "Flask", "Spring", "Express",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Jenkins", "CI/CD",
	"PostgreSQL", "MySQL", "MongoDB", "Redis", "Elasticsearch",
	"Machine Learning", "AI", "Deep Learning", "TensorFlow", "PyTorch",
	"REST API", "GraphQL", "Microservices", "Git", "Linux",
}

var skillPatterns = compileSkills(KnownSkills)

// a skill must not be glued to other letters, so "Go" does not match "Google"
func compileSkills(skills []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(skills))
	for i, skill := range skills {
		patterns[i] = regexp.MustCompile(`(^|[^a-z0-9+#])` + regexp.QuoteMeta(filter.Normalize(skill)) + `($|[^a-z0-9+#])`)
	}
	return patterns
}

type Profile struct {
	Text   string   `json:"text"`
	Skills []string `json:"skills"`
	// cv file path, or "default"
	Source string `json:"source"`
}

// Load reads the CV at path. A missing or empty file falls back to Default.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("could not read CV %s: %w", path, err)
		}
		log.Printf("⚠️ CV file '%s' not found. Using default profile.", path)
		return FromText(Default, "default"), nil
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		log.Printf("⚠️ CV file '%s' is empty. Using default profile.", path)
		return FromText(Default, "default"), nil
	}
	return FromText(text, path), nil
}

func FromText(text, source string) *Profile {
	return &Profile{
		Text:   text,
		Skills: SkillsOrFallback(ExtractSkills(text)),
		Source: source,
	}
}

// ExtractSkills returns up to MaxSkills known skills mentioned in text
func ExtractSkills(text string) []string {
	normalized := filter.Normalize(text)
	var found []string
	for i, pattern := range skillPatterns {
		if pattern.MatchString(normalized) {
			found = append(found, KnownSkills[i])
			if len(found) == MaxSkills {
				break
			}
		}
	}
	return found
}

func SkillsOrFallback(skills []string) []string {
	if len(skills) == 0 {
		return append([]string(nil), FallbackSkills...)
	}
	return skills
}

// Level maps years of experience to the seniority word used in queries
func Level(years int) string {
	switch {
	case years < 2:
		return "entry level"
	case years < 5:
		return "mid level"
	default:
		return "senior"
	}
}
