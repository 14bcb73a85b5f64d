package pipeline

import "strings"

// CategoryLainnya is the catch-all category assigned when no keyword
// rule matches.
const CategoryLainnya = "Lainnya"

// categoryRule pairs a category with its lowercase keyword substrings.
// Order matters: the first category with any match wins.
type categoryRule struct {
	name     string
	keywords []string
}

var defaultRules = []categoryRule{
	{"Pemerintahan", []string{"bupati", "dprd", "pemkab", "peraturan", "perda", "kpu", "pilkada", "pemerintah", "kabupaten", "sekda"}},
	{"Ekonomi", []string{"ekonomi", "investasi", "pasar", "umkm", "industri", "pertanian", "ekspor", "impor"}},
	{"Olahraga", []string{"olahraga", "sepakbola", "voli", "turnamen", "liga", "futsal", "piala", "pertandingan"}},
	{"Hukum", []string{"hukum", "kriminal", "polisi", "pengadilan", "kasus", "kejaksaan", "penangkapan", "sidang"}},
}

// Categorizer maps free text onto a fixed topic set by ordered keyword
// matching. Deterministic, no I/O.
type Categorizer struct {
	rules []categoryRule
}

// NewCategorizer returns a categorizer with the built-in Jombang rule
// set.
func NewCategorizer() *Categorizer {
	return &Categorizer{rules: defaultRules}
}

// Categorize returns the first category whose keyword occurs as a
// substring of the lowercased input, or the catch-all when the input is
// empty or matches nothing.
func (c *Categorizer) Categorize(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return CategoryLainnya
	}

	for _, rule := range c.rules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.name
			}
		}
	}
	return CategoryLainnya
}

// Categories lists every assignable category, catch-all included.
func (c *Categorizer) Categories() []string {
	out := make([]string, 0, len(c.rules)+1)
	for _, rule := range c.rules {
		out = append(out, rule.name)
	}
	return append(out, CategoryLainnya)
}
