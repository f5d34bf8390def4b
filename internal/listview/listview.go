// Package listview projects in-memory lists into filtered, sorted, 0-based
// pages.
package listview

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const DefaultPageSize = 10

type Query struct {
	Search   string
	Page     int
	PageSize int
}

type Page[T any] struct {
	Items      []T
	Filtered   []T
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
}

// Project filters items whose fields contain the search term, then slices
// out the requested page. Pages past the end come back empty.
func Project[T any](items []T, q Query, fields func(T) []string) Page[T] {
	return ProjectSorted(items, q, fields, nil)
}

func ProjectSorted[T any](items []T, q Query, fields func(T) []string, less func(a, b T) bool) Page[T] {
	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	page := q.Page
	if page < 0 {
		page = 0
	}

	filtered := Filter(items, q.Search, fields)
	if less != nil {
		sort.SliceStable(filtered, func(i, j int) bool { return less(filtered[i], filtered[j]) })
	}

	totalPages := (len(filtered) + pageSize - 1) / pageSize
	start := page * pageSize
	paged := []T{}
	if start < len(filtered) {
		end := start + pageSize
		if end > len(filtered) {
			end = len(filtered)
		}
		paged = filtered[start:end]
	}

	return Page[T]{
		Items:      paged,
		Filtered:   filtered,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: len(filtered),
		TotalPages: totalPages,
	}
}

// Filter keeps the items where any field contains term, ignoring case and
// accents. An empty term keeps everything.
func Filter[T any](items []T, term string, fields func(T) []string) []T {
	needle := Normalize(term)
	result := make([]T, 0, len(items))
	for _, item := range items {
		if needle == "" || matches(fields(item), needle) {
			result = append(result, item)
		}
	}
	return result
}

func matches(values []string, needle string) bool {
	for _, value := range values {
		if strings.Contains(Normalize(value), needle) {
			return true
		}
	}
	return false
}

// Normalize lowercases s and strips diacritics so "Manutenção" matches
// "manutencao".
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// State mirrors a list screen's controls. Changing the search term or the
// page size always returns to the first page.
type State struct {
	search   string
	page     int
	pageSize int
}

func NewState(pageSize int) *State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &State{pageSize: pageSize}
}

func (s *State) SetSearch(term string) {
	s.search = term
	s.page = 0
}

func (s *State) SetPageSize(size int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	s.pageSize = size
	s.page = 0
}

func (s *State) SetPage(page int) {
	if page < 0 {
		page = 0
	}
	s.page = page
}

func (s *State) Query() Query {
	return Query{Search: s.search, Page: s.page, PageSize: s.pageSize}
}
