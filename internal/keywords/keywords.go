// Package keywords extracts frequency-ranked keywords from article
// titles for the trend views.
package keywords

import (
	"regexp"
	"sort"
	"strings"
)

// tokenRe matches maximal runs of Latin letters, including the
// extended diacritic ranges regional spellings use.
var tokenRe = regexp.MustCompile(`[A-Za-zÀ-ÖØ-öø-ÿ\x{0100}-\x{024F}\x{1E00}-\x{1EFF}]+`)

// stopwords is a closed list of short Indonesian function words.
var stopwords = buildStopwords(`
yang dan di ke dari untuk dengan pada adalah itu ini atau juga tidak karena sebagai dalam akan oleh sudah bisa kami kita mereka saya aku ia para serta hanya lebih masih agar namun sehingga telah pun suatu tiap kepada tanpa antara kalau bila jadi tentang sebuah lah kah si punya ada bukan supaya saat sedang belum baru lama usai kemudian lalu maka hingga setelah sebelum meski meskipun jika ketika dimana demi per atas bawah
`)

func buildStopwords(raw string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, w := range strings.Fields(raw) {
		out[w] = struct{}{}
	}
	return out
}

// Keyword is a token with its aggregated count.
type Keyword struct {
	Token string `json:"token"`
	Count int    `json:"count"`
}

// Tokenize lowercases text and splits it into letter runs. Non-letter
// characters are separators.
func Tokenize(text string) []string {
	matches := tokenRe.FindAllString(text, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, strings.ToLower(m))
	}
	return out
}

// ExtractTop aggregates token counts across titles, dropping stopwords
// and tokens of two runes or fewer, and returns the top k by count.
// Ties keep first-encountered order.
func ExtractTop(titles []string, k int) []Keyword {
	if k <= 0 {
		return nil
	}

	counts := make(map[string]int)
	var order []string

	for _, title := range titles {
		for _, tok := range Tokenize(title) {
			if len([]rune(tok)) <= 2 {
				continue
			}
			if _, skip := stopwords[tok]; skip {
				continue
			}
			if _, seen := counts[tok]; !seen {
				order = append(order, tok)
			}
			counts[tok]++
		}
	}

	ranked := make([]Keyword, 0, len(order))
	for _, tok := range order {
		ranked = append(ranked, Keyword{Token: tok, Count: counts[tok]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}
