// Package stats derives the dashboard numbers and the recent activity feed from
// full snapshots of the four collections.
package stats

import (
	"sort"
	"time"

	"github.com/Astemirdum/library-admin/admin/internal/model"
	"github.com/Astemirdum/library-admin/admin/internal/policy"
)

const (
	DefaultFeedLimit = 10

	UnknownMember = "Unknown Member"
	UnknownBook   = "Unknown Book"
)

type Snapshot struct {
	Books    []model.Book
	Members  []model.Member
	Lendings []model.Lending
	Fines    []model.Fine
}

type Stats struct {
	TotalBooks    int `json:"totalBooks"`
	TotalMembers  int `json:"totalMembers"`
	BooksBorrowed int `json:"booksBorrowed"`
	DueReturns    int `json:"dueReturns"`
	TotalReturned int `json:"totalReturned"`
	TotalFines    int `json:"totalFines"`
}

func ComputeStats(s Snapshot, today time.Time) Stats {
	st := Stats{
		TotalBooks:   len(s.Books),
		TotalMembers: len(s.Members),
		TotalFines:   len(s.Fines),
	}
	for _, l := range s.Lendings {
		if l.IsReturned() {
			st.TotalReturned++
			continue
		}
		st.BooksBorrowed++
		if policy.IsOverdue(today, l.DueDate.Time) {
			st.DueReturns++
		}
	}
	return st
}

// Series is the dashboard chart row, in display order.
func (s Stats) Series() []int {
	return []int{s.TotalMembers, s.TotalBooks, s.BooksBorrowed, s.DueReturns, s.TotalReturned, s.TotalFines}
}

type ActivityKind string

const (
	KindBorrow    ActivityKind = "borrow"
	KindReturn    ActivityKind = "return"
	KindFine      ActivityKind = "fine"
	KindAddBook   ActivityKind = "add-book"
	KindNewMember ActivityKind = "new-member"
)

type Activity struct {
	Kind     ActivityKind `json:"type"`
	Time     time.Time    `json:"time"`
	MemberID model.ID     `json:"userId,omitempty"`
	BookID   model.ID     `json:"bookId,omitempty"`
	Member   string       `json:"user,omitempty"`
	Book     string       `json:"book,omitempty"`
}

// BuildActivityFeed merges the five event kinds, newest first, and keeps at most limit
// entries (DefaultFeedLimit when limit is not positive). Equal timestamps keep the
// order borrow, return, fine, add-book, new-member and, within a kind, collection order.
func BuildActivityFeed(s Snapshot, limit int) []Activity {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	feed := make([]Activity, 0, 2*len(s.Lendings)+len(s.Fines)+len(s.Books)+len(s.Members))
	for _, l := range s.Lendings {
		feed = append(feed, Activity{Kind: KindBorrow, Time: l.CreatedAt.Time, MemberID: l.MemberID, BookID: l.BookID})
	}
	for _, l := range s.Lendings {
		if l.IsReturned() {
			feed = append(feed, Activity{Kind: KindReturn, Time: l.UpdatedAt.Time, MemberID: l.MemberID, BookID: l.BookID})
		}
	}
	for _, f := range s.Fines {
		feed = append(feed, Activity{Kind: KindFine, Time: f.CreatedAt.Time, MemberID: f.MemberID, BookID: f.BookID})
	}
	for _, b := range s.Books {
		feed = append(feed, Activity{Kind: KindAddBook, Time: b.CreatedAt.Time, BookID: b.ID})
	}
	for _, m := range s.Members {
		feed = append(feed, Activity{Kind: KindNewMember, Time: m.CreatedAt.Time, MemberID: m.ID})
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Time.After(feed[j].Time)
	})
	if len(feed) > limit {
		feed = feed[:limit]
	}

	dir := NewDirectory(s.Books, s.Members)
	for i := range feed {
		if feed[i].MemberID != 0 {
			feed[i].Member = dir.MemberName(feed[i].MemberID)
		}
		if feed[i].BookID != 0 {
			feed[i].Book = dir.BookTitle(feed[i].BookID)
		}
	}
	return feed
}

// Directory resolves ids to display names. Missing ids resolve to placeholders.
type Directory struct {
	books   map[model.ID]model.Book
	members map[model.ID]model.Member
}

func NewDirectory(books []model.Book, members []model.Member) Directory {
	d := Directory{
		books:   make(map[model.ID]model.Book, len(books)),
		members: make(map[model.ID]model.Member, len(members)),
	}
	for _, b := range books {
		d.books[b.ID] = b
	}
	for _, m := range members {
		d.members[m.ID] = m
	}
	return d
}

func (d Directory) Book(id model.ID) (model.Book, bool) {
	b, ok := d.books[id]
	return b, ok
}

func (d Directory) Member(id model.ID) (model.Member, bool) {
	m, ok := d.members[id]
	return m, ok
}

func (d Directory) BookTitle(id model.ID) string {
	if b, ok := d.books[id]; ok && b.Title != "" {
		return b.Title
	}
	return UnknownBook
}

func (d Directory) MemberName(id model.ID) string {
	if m, ok := d.members[id]; ok && m.Name != "" {
		return m.Name
	}
	return UnknownMember
}

type FineSummary struct {
	TotalAmount model.Rupiah `json:"totalAmount"`
	Unpaid      int          `json:"unpaid"`
	Paid        int          `json:"paid"`
}

func SummarizeFines(fines []model.Fine) FineSummary {
	var s FineSummary
	for _, f := range fines {
		s.TotalAmount += f.Amount
		if f.IsPaid() {
			s.Paid++
		} else {
			s.Unpaid++
		}
	}
	return s
}

type Dashboard struct {
	Stats      Stats      `json:"stats"`
	Series     []int      `json:"series"`
	Activities []Activity `json:"activities"`
}

func BuildDashboard(s Snapshot, today time.Time, limit int) Dashboard {
	st := ComputeStats(s, today)
	return Dashboard{
		Stats:      st,
		Series:     st.Series(),
		Activities: BuildActivityFeed(s, limit),
	}
}
