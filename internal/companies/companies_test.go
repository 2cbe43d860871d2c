package companies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogueLoaded(t *testing.T) {
	for _, tier := range []Tier{High, Mid, Startup} {
		list := ByTier(tier)
		require.NotEmpty(t, list, tier)
		for _, c := range list {
			assert.NotEmpty(t, c.Name)
			assert.Contains(t, c.Careers, "https://", c.Name)
			assert.Equal(t, tier, c.Tier)
		}
	}
	assert.Equal(t, "Google", ByTier(High)[0].Name)
}

func TestAllCompanies_OrderAndDedup(t *testing.T) {
	all := AllCompanies()
	assert.Equal(t, "Google", all[0].Name)

	seen := map[string]int{}
	for _, c := range all {
		seen[c.Name]++
	}
	for name, n := range seen {
		assert.Equal(t, 1, n, name)
	}

	// Razorpay is listed as mid and startup; the mid entry wins
	for _, c := range all {
		if c.Name == "Razorpay" {
			assert.Equal(t, Mid, c.Tier)
		}
	}
	total := len(ByTier(High)) + len(ByTier(Mid)) + len(ByTier(Startup))
	assert.Less(t, len(all), total)
}

func TestParseTier(t *testing.T) {
	tests := map[string]Tier{
		"high":                   High,
		"High-Tier (MNCs)":       High,
		"Mid-Tier (Established)": Mid,
		"startup":                Startup,
		"Startups (Unicorns)":    Startup,
		"All Tiers":              All,
		"":                       All,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseTier(in), in)
	}
}

func TestByTier_ReturnsCopy(t *testing.T) {
	list := ByTier(High)
	list[0].Name = "changed"
	assert.Equal(t, "Google", ByTier(High)[0].Name)
	assert.Equal(t, len(AllCompanies()), len(ByTier(All)))
}
