package planning

import (
	"sort"
	"strings"
	"unicode"

	"github.com/mealsmith/planner/internal/domain/recipe"
)

// Keyword weights: where a query word turns up decides how much it
// counts, per occurrence.
const (
	titleMatchWeight      = 10
	tagMatchWeight        = 5
	ingredientMatchWeight = 1
)

// searchStopwords are query words too common to discriminate
var searchStopwords = map[string]bool{
	"the": true, "a": true, "an": true, "for": true, "to": true,
	"and": true, "or": true, "with": true, "using": true, "recipes": true,
}

// KeywordSearch is the local fallback ranking used when similarity
// search yields nothing usable. It scores every library recipe by
// weighted keyword hits and returns the top limit matches; when no
// recipe matches at all it returns the limit most recently updated
// recipes, so the pipeline never stalls for lack of input. Pure.
func KeywordSearch(library []*recipe.Recipe, query string, limit int) []*recipe.Recipe {
	if limit <= 0 || len(library) == 0 {
		return nil
	}

	tokens := tokenizeQuery(query)

	type scored struct {
		r     *recipe.Recipe
		score int
	}
	matches := make([]scored, 0, len(library))
	for _, r := range library {
		if s := keywordScore(r, tokens); s > 0 {
			matches = append(matches, scored{r: r, score: s})
		}
	}

	if len(matches) == 0 {
		return mostRecentlyUpdated(library, limit)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]*recipe.Recipe, len(matches))
	for i, m := range matches {
		out[i] = m.r
	}
	return out
}

// tokenizeQuery lowercases the query, strips punctuation, and drops
// short words and stopwords
func tokenizeQuery(query string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, query)

	var tokens []string
	for _, word := range strings.Fields(cleaned) {
		if len(word) <= 2 || searchStopwords[word] {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// keywordScore tallies weighted occurrences of each token in the
// recipe's title, tags and ingredient names
func keywordScore(r *recipe.Recipe, tokens []string) int {
	if len(tokens) == 0 {
		return 0
	}

	title := strings.ToLower(r.Title())
	tags := make([]string, len(r.Tags()))
	for i, t := range r.Tags() {
		tags[i] = strings.ToLower(t)
	}
	ingredients := make([]string, len(r.Ingredients()))
	for i, ing := range r.Ingredients() {
		ingredients[i] = strings.ToLower(ing.Name)
	}

	score := 0
	for _, token := range tokens {
		score += titleMatchWeight * strings.Count(title, token)
		for _, tag := range tags {
			score += tagMatchWeight * strings.Count(tag, token)
		}
		for _, ing := range ingredients {
			score += ingredientMatchWeight * strings.Count(ing, token)
		}
	}
	return score
}

// mostRecentlyUpdated returns up to n recipes ordered by update
// recency, newest first
func mostRecentlyUpdated(library []*recipe.Recipe, n int) []*recipe.Recipe {
	sorted := make([]*recipe.Recipe, len(library))
	copy(sorted, library)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UpdatedAt().After(sorted[j].UpdatedAt())
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
