package client

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Filter narrows a book list locally. Zero-value fields match everything.
// Query is a free-text needle matched case-insensitively against title,
// author, series, the language tag, and the language's English name, so
// searching "polish" finds books tagged "pl".
type Filter struct {
	Collection string
	Author     string
	Series     string
	Language   string
	Query      string
}

// Apply returns the books that pass the filter, preserving order.
func (f Filter) Apply(books []Book) []Book {
	out := make([]Book, 0, len(books))
	for _, b := range books {
		if f.matches(b) {
			out = append(out, b)
		}
	}
	return out
}

func (f Filter) matches(b Book) bool {
	if f.Collection != "" && b.Collection != f.Collection {
		return false
	}
	if f.Author != "" && !strings.EqualFold(b.Author, f.Author) {
		return false
	}
	if f.Series != "" && (b.Series == nil || !strings.EqualFold(*b.Series, f.Series)) {
		return false
	}
	if f.Language != "" && !strings.EqualFold(b.Language, f.Language) {
		return false
	}
	if f.Query != "" && !matchesQuery(b, f.Query) {
		return false
	}
	return true
}

func matchesQuery(b Book, query string) bool {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return true
	}

	haystacks := []string{b.Title, b.Author, b.Language, LanguageDisplayName(b.Language)}
	if b.Series != nil {
		haystacks = append(haystacks, *b.Series)
	}
	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}

// LanguageDisplayName returns the English display name for a BCP 47
// tag, e.g. "pt-BR" becomes "Brazilian Portuguese". Unparseable tags
// come back unchanged.
func LanguageDisplayName(tag string) string {
	parsed, err := language.Parse(tag)
	if err != nil {
		return tag
	}

	name := display.English.Languages().Name(parsed)
	if name == "" {
		return tag
	}
	return name
}

// SortNewestFirst orders books by creation time, newest first, with ID
// as a stable tie-break.
func SortNewestFirst(books []Book) {
	sort.SliceStable(books, func(i, j int) bool {
		if !books[i].CreatedAt.Equal(books[j].CreatedAt) {
			return books[i].CreatedAt.After(books[j].CreatedAt)
		}
		return books[i].ID > books[j].ID
	})
}
