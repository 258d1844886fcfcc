package service

import (
	"strconv"
	"strings"

	"github.com/Astemirdum/library-admin/admin/internal/errs"
	"github.com/Astemirdum/library-admin/admin/internal/model"
	"github.com/Astemirdum/library-admin/pkg/query"
)

type ListParams struct {
	Search string
	Sort   string
	// Order is asc, desc or empty; empty toggles when the same key is sorted again.
	Order string
	Page  int
	Size  int
}

type BookParams struct {
	ListParams
	Year      string
	Publisher string
}

type LendingParams struct {
	ListParams
	Status model.LendingStatus
}

type FineParams struct {
	ListParams
	Status model.FineStatus
}

// List is one page of a screen together with the sort that produced it.
type List[T any] struct {
	query.Page[T]
	Sort  string          `json:"sort,omitempty"`
	Order query.Direction `json:"order,omitempty"`
}

const (
	screenBooks    = "books"
	screenMembers  = "members"
	screenLendings = "lendings"
	screenFines    = "fines"
)

func idKey[T any](f func(T) model.ID) query.SortKey[T] {
	return query.ByNumber(func(it T) float64 { return float64(f(it)) })
}

func dateKey[T any](f func(T) model.Date) query.SortKey[T] {
	return query.ByText(func(it T) string {
		d := f(it)
		if d.IsZero() {
			return ""
		}
		return d.String()
	})
}

func lower[T any](f func(T) string) query.SortKey[T] {
	return query.ByText(func(it T) string { return strings.ToLower(f(it)) })
}

var bookSortKeys = map[string]query.SortKey[model.Book]{
	"id":           idKey(func(b model.Book) model.ID { return b.ID }),
	"no_rak":       lower(func(b model.Book) string { return b.ShelfCode }),
	"judul":        lower(func(b model.Book) string { return b.Title }),
	"pengarang":    lower(func(b model.Book) string { return b.Author }),
	"penerbit":     lower(func(b model.Book) string { return b.Publisher }),
	"tahun_terbit": query.ByNumber(func(b model.Book) float64 { return float64(b.Year) }),
	"stok":         query.ByNumber(func(b model.Book) float64 { return float64(b.Stock) }),
}

var bookSearchFields = []query.Field[model.Book]{
	func(b model.Book) string { return b.Title },
	func(b model.Book) string { return b.Author },
	func(b model.Book) string { return b.Publisher },
	func(b model.Book) string { return b.ShelfCode },
}

var (
	bookYear      query.Field[model.Book] = func(b model.Book) string { return yearText(b.Year) }
	bookPublisher query.Field[model.Book] = func(b model.Book) string { return b.Publisher }
)

func yearText(y model.Int) string {
	if y == 0 {
		return ""
	}
	return strconv.FormatInt(int64(y), 10)
}

var memberSortKeys = map[string]query.SortKey[model.Member]{
	"id":        idKey(func(m model.Member) model.ID { return m.ID }),
	"no_ktp":    query.ByText(func(m model.Member) string { return m.NationalID }),
	"nama":      lower(func(m model.Member) string { return m.Name }),
	"alamat":    lower(func(m model.Member) string { return m.Address }),
	"tgl_lahir": dateKey(func(m model.Member) model.Date { return m.BirthDate }),
}

var memberSearchFields = []query.Field[model.Member]{
	func(m model.Member) string { return m.Name },
	func(m model.Member) string { return m.NationalID },
	func(m model.Member) string { return m.Address },
}

var lendingSortKeys = map[string]query.SortKey[model.LendingView]{
	"id":               idKey(func(l model.LendingView) model.ID { return l.ID }),
	"judul":            lower(func(l model.LendingView) string { return l.BookTitle }),
	"nama":             lower(func(l model.LendingView) string { return l.MemberName }),
	"tgl_pinjam":       dateKey(func(l model.LendingView) model.Date { return l.BorrowDate }),
	"tgl_pengembalian": dateKey(func(l model.LendingView) model.Date { return l.DueDate }),
	"status":           query.ByText(func(l model.LendingView) string { return string(l.Status) }),
	"hari_terlambat":   query.ByNumber(func(l model.LendingView) float64 { return float64(l.DaysLate) }),
}

var lendingSearchFields = []query.Field[model.LendingView]{
	func(l model.LendingView) string { return l.BookID.String() },
	func(l model.LendingView) string { return l.BookTitle },
	func(l model.LendingView) string { return l.MemberID.String() },
	func(l model.LendingView) string { return l.MemberName },
	func(l model.LendingView) string { return l.BorrowDate.String() },
	func(l model.LendingView) string { return l.DueDate.String() },
}

var lendingStatus query.Field[model.LendingView] = func(l model.LendingView) string { return string(l.Status) }

var fineSortKeys = map[string]query.SortKey[model.FineView]{
	"id":           idKey(func(f model.FineView) model.ID { return f.ID }),
	"nama":         lower(func(f model.FineView) string { return f.MemberName }),
	"judul":        lower(func(f model.FineView) string { return f.BookTitle }),
	"jumlah_denda": query.ByNumber(func(f model.FineView) float64 { return float64(f.Amount) }),
	"jenis_denda":  query.ByText(func(f model.FineView) string { return string(f.Type) }),
	"status":       query.ByText(func(f model.FineView) string { return string(f.PaymentStatus()) }),
	"created_at":   query.ByNumber(func(f model.FineView) float64 { return float64(f.CreatedAt.Unix()) }),
}

var fineSearchFields = []query.Field[model.FineView]{
	func(f model.FineView) string { return f.MemberName },
	func(f model.FineView) string { return f.BookTitle },
	func(f model.FineView) string { return string(f.Type) },
}

var fineStatus query.Field[model.FineView] = func(f model.FineView) string { return string(f.PaymentStatus()) }

// list sorts and pages items already searched and filtered.
func list[T any](s *Service, sessionID, screen string, items []T, keys map[string]query.SortKey[T], p ListParams) (List[T], error) {
	out := List[T]{}
	if p.Sort != "" {
		key, ok := keys[p.Sort]
		if !ok {
			return List[T]{}, errs.Validationf("sort", "cannot sort by %q", p.Sort)
		}
		dir, err := s.direction(sessionID, screen, p)
		if err != nil {
			return List[T]{}, err
		}
		items = query.SortBy(items, key, dir)
		out.Sort, out.Order = p.Sort, dir
	}
	out.Page = query.Paginate(items, p.Page, p.Size)
	return out, nil
}

func (s *Service) direction(sessionID, screen string, p ListParams) (query.Direction, error) {
	sorter := s.sorter(sessionID, screen)
	switch strings.ToLower(p.Order) {
	case "":
		return sorter.Toggle(p.Sort), nil
	case string(query.Asc), string(query.Desc):
		dir := query.ParseDirection(p.Order)
		sorter.Set(p.Sort, dir)
		return dir, nil
	}
	return "", errs.Validationf("order", "unknown order %q", p.Order)
}
