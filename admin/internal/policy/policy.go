// Package policy holds the lending rules: when a loan is overdue, how late it is,
// what lateness costs and which new loans are allowed.
package policy

import (
	"math"
	"time"
	_ "time/tzdata"

	"github.com/Astemirdum/library-admin/admin/internal/errs"
	"github.com/Astemirdum/library-admin/admin/internal/model"
)

const (
	DefaultLateFeePerDay  model.Rupiah = 1000
	DefaultMaxLoanDays                 = 14
	DefaultMaxActiveLoans              = 3

	day = 24 * time.Hour
)

type Config struct {
	LateFeePerDay  int64  `envconfig:"POLICY_LATE_FEE_PER_DAY" default:"1000"`
	MaxLoanDays    int    `envconfig:"POLICY_MAX_LOAN_DAYS" default:"14"`
	MaxActiveLoans int    `envconfig:"POLICY_MAX_ACTIVE_LOANS" default:"3"`
	Timezone       string `envconfig:"POLICY_TIMEZONE" default:"Asia/Jakarta"`
}

type Policy struct {
	lateFeePerDay  model.Rupiah
	maxLoanDays    int
	maxActiveLoans int
	loc            *time.Location
}

func Default() Policy {
	return Policy{
		lateFeePerDay:  DefaultLateFeePerDay,
		maxLoanDays:    DefaultMaxLoanDays,
		maxActiveLoans: DefaultMaxActiveLoans,
		loc:            time.UTC,
	}
}

// New builds a policy from cfg, falling back to the defaults for unset values.
// An unknown timezone falls back to UTC.
func New(cfg Config) Policy {
	p := Default()
	if cfg.LateFeePerDay > 0 {
		p.lateFeePerDay = model.Rupiah(cfg.LateFeePerDay)
	}
	if cfg.MaxLoanDays > 0 {
		p.maxLoanDays = cfg.MaxLoanDays
	}
	if cfg.MaxActiveLoans > 0 {
		p.maxActiveLoans = cfg.MaxActiveLoans
	}
	if loc, err := time.LoadLocation(cfg.Timezone); err == nil && cfg.Timezone != "" {
		p.loc = loc
	}
	return p
}

func (p Policy) MaxActiveLoans() int { return p.maxActiveLoans }

// Today is the library's calendar day at instant now.
func (p Policy) Today(now time.Time) model.Date {
	return model.DateOf(now.In(p.loc))
}

// IsOverdue compares calendar days only. A lending without a due date is never overdue.
func IsOverdue(today, due time.Time) bool {
	if due.IsZero() {
		return false
	}
	return model.DateOf(today).After(model.DateOf(due).Time)
}

// DaysLate is zero unless overdue, then the whole number of days past due, rounded up.
func DaysLate(today, due time.Time) int {
	if !IsOverdue(today, due) {
		return 0
	}
	diff := model.DateOf(today).Sub(model.DateOf(due).Time)
	return int(math.Ceil(float64(diff) / float64(day)))
}

// LateFee charges the flat daily rate, without a cap.
func (p Policy) LateFee(daysLate int) model.Rupiah {
	if daysLate <= 0 {
		return 0
	}
	return model.Rupiah(daysLate) * p.lateFeePerDay
}

// ValidateNewLending checks a borrow request on its own.
func (p Policy) ValidateNewLending(req model.LendingRequest) error {
	switch {
	case req.BookID == 0:
		return errs.Validation("id_buku", "book is required")
	case req.MemberID == 0:
		return errs.Validation("id_member", "member is required")
	case req.BorrowDate.IsZero():
		return errs.Validation("tgl_pinjam", "borrow date is required")
	case req.DueDate.IsZero():
		return errs.Validation("tgl_pengembalian", "due date is required")
	}
	borrow, due := model.DateOf(req.BorrowDate.Time), model.DateOf(req.DueDate.Time)
	if due.Before(borrow.Time) {
		return errs.Validation("tgl_pengembalian", "due date is before borrow date")
	}
	if due.Sub(borrow.Time) > time.Duration(p.maxLoanDays)*day {
		return errs.Validationf("tgl_pengembalian", "lending period exceeds %d days", p.maxLoanDays)
	}
	return nil
}

// ActiveLoans counts the unreturned lendings of member.
func ActiveLoans(memberID model.ID, lendings []model.Lending) int {
	n := 0
	for _, l := range lendings {
		if l.MemberID == memberID && !l.IsReturned() {
			n++
		}
	}
	return n
}

// CheckActiveLoans rejects a borrow once the member holds the maximum of unreturned books.
func (p Policy) CheckActiveLoans(memberID model.ID, lendings []model.Lending) error {
	if n := ActiveLoans(memberID, lendings); n >= p.maxActiveLoans {
		return errs.Validationf("id_member", "member already has %d active loans, the limit is %d", n, p.maxActiveLoans)
	}
	return nil
}

// CheckStock rejects lending a book with no copies left.
func CheckStock(book model.Book) error {
	if !book.Available() {
		return errs.Validationf("id_buku", "%q is out of stock", book.Title)
	}
	return nil
}
