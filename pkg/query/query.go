// Package query implements the search, filter, sort and paging primitives shared
// by every list screen. All functions are pure and never modify their input.
package query

import (
	"math"
	"sort"
	"strings"
	"sync"
)

// Field extracts the text of one column from an item.
type Field[T any] func(T) string

// Search keeps the items where any of fields contains term, ignoring case.
// A blank term returns items unchanged.
func Search[T any](items []T, fields []Field[T], term string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f(it)), term) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// MatchFunc reports whether a column value satisfies a filter value.
type MatchFunc func(value, want string) bool

// Equals matches case-insensitive equality.
func Equals(value, want string) bool {
	return strings.EqualFold(strings.TrimSpace(value), strings.TrimSpace(want))
}

// Contains matches a case-insensitive substring.
func Contains(value, want string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(strings.TrimSpace(want)))
}

type Filter[T any] struct {
	Field Field[T]
	Value string
	Match MatchFunc
}

// Eq builds an equality filter.
func Eq[T any](field Field[T], value string) Filter[T] {
	return Filter[T]{Field: field, Value: value, Match: Equals}
}

// Like builds a substring filter.
func Like[T any](field Field[T], value string) Filter[T] {
	return Filter[T]{Field: field, Value: value, Match: Contains}
}

// FilterBy keeps the items matching every filter. A filter with an empty value is skipped.
func FilterBy[T any](items []T, filters ...Filter[T]) []T {
	active := make([]Filter[T], 0, len(filters))
	for _, f := range filters {
		if strings.TrimSpace(f.Value) != "" {
			active = append(active, f)
		}
	}
	if len(active) == 0 {
		return items
	}
	out := make([]T, 0, len(items))
next:
	for _, it := range items {
		for _, f := range active {
			match := f.Match
			if match == nil {
				match = Equals
			}
			if !match(f.Field(it), f.Value) {
				continue next
			}
		}
		out = append(out, it)
	}
	return out
}

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection returns Asc for anything but "desc".
func ParseDirection(s string) Direction {
	if strings.EqualFold(s, string(Desc)) {
		return Desc
	}
	return Asc
}

// SortKey orders items either by text or by number. Number wins when both are set.
type SortKey[T any] struct {
	Text   func(T) string
	Number func(T) float64
}

func ByText[T any](f func(T) string) SortKey[T] {
	return SortKey[T]{Text: f}
}

func ByNumber[T any](f func(T) float64) SortKey[T] {
	return SortKey[T]{Number: f}
}

func (k SortKey[T]) compare(a, b T) int {
	switch {
	case k.Number != nil:
		x, y := k.Number(a), k.Number(b)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case k.Text != nil:
		return strings.Compare(k.Text(a), k.Text(b))
	}
	return 0
}

// SortBy returns a stably sorted copy of items.
func SortBy[T any](items []T, key SortKey[T], dir Direction) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		c := key.compare(out[i], out[j])
		if dir == Desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

// Sorter remembers the last requested key so that asking for the same key again
// flips the direction.
type Sorter struct {
	mu  sync.Mutex
	key string
	dir Direction
}

// Toggle registers a request for key and returns the direction to apply.
func (s *Sorter) Toggle(key string) Direction {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key == key && s.dir == Asc {
		s.dir = Desc
	} else {
		s.dir = Asc
	}
	s.key = key
	return s.dir
}

// Set pins key and direction, used when the caller states the direction explicitly.
func (s *Sorter) Set(key string, dir Direction) {
	s.mu.Lock()
	s.key, s.dir = key, dir
	s.mu.Unlock()
}

// Current returns the last applied key and direction.
func (s *Sorter) Current() (string, Direction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key, s.dir
}

type Page[T any] struct {
	Items         []T `json:"items"`
	Page          int `json:"page"`
	PageSize      int `json:"pageSize"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
}

const DefaultPageSize = 10

// Paginate cuts the 1-indexed page out of items. Pages past the end are empty.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page <= 0 {
		page = 1
	}
	p := Page[T]{
		Items:         []T{},
		Page:          page,
		PageSize:      size,
		TotalElements: len(items),
		TotalPages:    int(math.Ceil(float64(len(items)) / float64(size))),
	}
	if len(items) == 0 || page-1 > (len(items)-1)/size {
		return p
	}
	from := (page - 1) * size
	to := from + size
	if to > len(items) {
		to = len(items)
	}
	p.Items = items[from:to]
	return p
}

// Distinct returns the sorted non-empty distinct values of field.
func Distinct[T any](items []T, field Field[T]) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0)
	for _, it := range items {
		v := strings.TrimSpace(field(it))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
