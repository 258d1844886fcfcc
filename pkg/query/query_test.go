package query_test

import (
	"math"
	"strconv"
	"testing"

	"github.com/Astemirdum/library-admin/pkg/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type book struct {
	title     string
	publisher string
	year      int
}

var (
	title     query.Field[book] = func(b book) string { return b.title }
	publisher query.Field[book] = func(b book) string { return b.publisher }
	year      query.Field[book] = func(b book) string { return strconv.Itoa(b.year) }
)

func books() []book {
	return []book{
		{title: "Harry Potter", publisher: "Gramedia", year: 2001},
		{title: "Laskar Pelangi", publisher: "Bentang", year: 2005},
		{title: "the harry files", publisher: "Gramedia", year: 2001},
		{title: "Bumi Manusia", publisher: "Hasta Mitra", year: 1980},
	}
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name string
		term string
		want []string
	}{
		{name: "case insensitive", term: "Harry", want: []string{"Harry Potter", "the harry files"}},
		{name: "padded term", term: "  pelangi ", want: []string{"Laskar Pelangi"}},
		{name: "other field", term: "mitra", want: []string{"Bumi Manusia"}},
		{name: "no match", term: "tolkien", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.Search(books(), []query.Field[book]{title, publisher}, tt.term)
			titles := make([]string, 0, len(got))
			for _, b := range got {
				titles = append(titles, b.title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestSearch_EmptyTermReturnsInput(t *testing.T) {
	in := books()
	got := query.Search(in, []query.Field[book]{title}, "")
	require.Equal(t, in, got)
	got = query.Search(in, []query.Field[book]{title}, "   ")
	require.Equal(t, in, got)
}

func TestFilterBy(t *testing.T) {
	got := query.FilterBy(books(),
		query.Eq(year, "2001"),
		query.Like(publisher, "gram"),
	)
	require.Len(t, got, 2)

	got = query.FilterBy(books(), query.Eq(year, ""), query.Like(publisher, ""))
	require.Len(t, got, 4)

	got = query.FilterBy(books(), query.Eq(year, "2001"), query.Eq(publisher, "Bentang"))
	require.Empty(t, got)
}

func TestSortBy(t *testing.T) {
	in := books()
	byYear := query.ByNumber(func(b book) float64 { return float64(b.year) })

	asc := query.SortBy(in, byYear, query.Asc)
	require.Equal(t, "Bumi Manusia", asc[0].title)
	// stable for equal keys
	require.Equal(t, "Harry Potter", asc[1].title)
	require.Equal(t, "the harry files", asc[2].title)

	desc := query.SortBy(in, byYear, query.Desc)
	require.Equal(t, "Laskar Pelangi", desc[0].title)
	require.Equal(t, "Harry Potter", desc[1].title)
	require.Equal(t, "the harry files", desc[2].title)

	byTitle := query.SortBy(in, query.ByText(func(b book) string { return b.title }), query.Asc)
	require.Equal(t, "Bumi Manusia", byTitle[0].title)

	// input untouched
	require.Equal(t, books(), in)
}

func TestSorter_Toggle(t *testing.T) {
	var s query.Sorter
	require.Equal(t, query.Asc, s.Toggle("judul"))
	require.Equal(t, query.Desc, s.Toggle("judul"))
	require.Equal(t, query.Asc, s.Toggle("judul"))
	require.Equal(t, query.Asc, s.Toggle("stok"))

	s.Set("stok", query.Desc)
	key, dir := s.Current()
	require.Equal(t, "stok", key)
	require.Equal(t, query.Desc, dir)
	require.Equal(t, query.Asc, s.Toggle("stok"))
}

func TestPaginate(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	p := query.Paginate(items, 3, 10)
	require.Equal(t, items[20:25], p.Items)
	require.Equal(t, 3, p.TotalPages)
	require.Equal(t, 25, p.TotalElements)

	p = query.Paginate(items, 4, 10)
	require.Empty(t, p.Items)
	require.NotNil(t, p.Items)
	require.Equal(t, 3, p.TotalPages)

	p = query.Paginate(items, 1, 10)
	require.Equal(t, items[0:10], p.Items)

	p = query.Paginate([]int{}, 1, 10)
	require.Empty(t, p.Items)
	require.Equal(t, 0, p.TotalPages)

	p = query.Paginate(items, math.MaxInt, 10)
	require.Empty(t, p.Items)
	require.Equal(t, 3, p.TotalPages)
	require.Equal(t, math.MaxInt, p.Page)

	p = query.Paginate(items, math.MaxInt/10+1, 10)
	require.Empty(t, p.Items)

	p = query.Paginate(items, 2, math.MaxInt)
	require.Empty(t, p.Items)
	require.Equal(t, 1, p.TotalPages)

	p = query.Paginate(items, 0, 0)
	require.Equal(t, 1, p.Page)
	require.Equal(t, query.DefaultPageSize, p.PageSize)
}

func TestDistinct(t *testing.T) {
	require.Equal(t, []string{"Bentang", "Gramedia", "Hasta Mitra"}, query.Distinct(books(), publisher))
	require.Equal(t, []string{"1980", "2001", "2005"}, query.Distinct(books(), year))
}
