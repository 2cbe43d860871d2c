// Package companies is the static catalogue of employer career pages that
// company-mode searches iterate over.
package companies

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

type Tier string

const (
	High    Tier = "high"
	Mid     Tier = "mid"
	Startup Tier = "startup"
	All     Tier = "all"
)

type Company struct {
	Name    string `yaml:"name" json:"name"`
	Careers string `yaml:"careers" json:"careers"`
	Tier    Tier   `yaml:"-" json:"tier"`
}

//go:embed companies.yaml
var catalogueYAML []byte

type catalogue struct {
	High    []Company `yaml:"high"`
	Mid     []Company `yaml:"mid"`
	Startup []Company `yaml:"startup"`
}

var tiers = mustParse(catalogueYAML)

func mustParse(data []byte) map[Tier][]Company {
	var c catalogue
	if err := yaml.Unmarshal(data, &c); err != nil {
		panic(fmt.Sprintf("companies: invalid embedded catalogue: %v", err))
	}
	return map[Tier][]Company{
		High:    withTier(c.High, High),
		Mid:     withTier(c.Mid, Mid),
		Startup: withTier(c.Startup, Startup),
	}
}

func withTier(list []Company, tier Tier) []Company {
	for i := range list {
		list[i].Tier = tier
	}
	return list
}

// ParseTier accepts the short names and the UI labels ("High-Tier (MNCs)" ...)
func ParseTier(s string) Tier {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, "high"):
		return High
	case strings.HasPrefix(s, "mid"):
		return Mid
	case strings.HasPrefix(s, "startup"):
		return Startup
	default:
		return All
	}
}

// ByTier returns a copy of one tier, or AllCompanies for anything else
func ByTier(tier Tier) []Company {
	list, ok := tiers[tier]
	if !ok {
		return AllCompanies()
	}
	return append([]Company(nil), list...)
}

// AllCompanies lists high, mid then startup tiers. A company listed in more
// than one tier keeps its first position.
func AllCompanies() []Company {
	seen := make(map[string]bool)
	var all []Company
	for _, tier := range []Tier{High, Mid, Startup} {
		for _, c := range tiers[tier] {
			if seen[c.Name] {
				continue
			}
			seen[c.Name] = true
			all = append(all, c)
		}
	}
	return all
}

// Names is the sorted-by-catalogue list of names, for pickers
func Names(list []Company) []string {
	names := make([]string, len(list))
	for i, c := range list {
		names[i] = c.Name
	}
	return names
}
