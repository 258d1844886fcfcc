package policy_test

import (
	"testing"
	"time"

	"github.com/Astemirdum/library-admin/admin/internal/errs"
	"github.com/Astemirdum/library-admin/admin/internal/model"
	"github.com/Astemirdum/library-admin/admin/internal/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsOverdueAndDaysLate(t *testing.T) {
	due := date(2024, time.January, 1)
	tests := []struct {
		name     string
		today    time.Time
		overdue  bool
		daysLate int
	}{
		{name: "before due", today: date(2023, time.December, 30), overdue: false, daysLate: 0},
		{name: "on due day", today: due, overdue: false, daysLate: 0},
		{name: "due day evening", today: due.Add(23 * time.Hour), overdue: false, daysLate: 0},
		{name: "one day late", today: date(2024, time.January, 2), overdue: true, daysLate: 1},
		{name: "four days late", today: date(2024, time.January, 5), overdue: true, daysLate: 4},
		{name: "late with time of day", today: date(2024, time.January, 5).Add(18 * time.Hour), overdue: true, daysLate: 4},
		{name: "across month", today: date(2024, time.February, 1), overdue: true, daysLate: 31},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overdue, policy.IsOverdue(tt.today, due))
			assert.Equal(t, tt.daysLate, policy.DaysLate(tt.today, due))
			assert.Equal(t, tt.daysLate == 0, !policy.IsOverdue(tt.today, due))
		})
	}
}

func TestNoDueDate(t *testing.T) {
	p := policy.Default()
	today := date(2024, time.January, 5)

	require.False(t, policy.IsOverdue(today, time.Time{}))
	require.Zero(t, policy.DaysLate(today, time.Time{}))
	require.Zero(t, p.LateFee(policy.DaysLate(today, model.Date{}.Time)))
}

func TestLateFee(t *testing.T) {
	p := policy.Default()
	for _, n := range []int{0, 1, 4, 30, 365} {
		require.Equal(t, model.Rupiah(n*1000), p.LateFee(n))
	}
	require.Equal(t, model.Rupiah(0), p.LateFee(-2))

	custom := policy.New(policy.Config{LateFeePerDay: 2500})
	require.Equal(t, model.Rupiah(7500), custom.LateFee(3))
}

func TestFourDaysLate(t *testing.T) {
	p := policy.Default()
	due := date(2024, time.January, 1)
	today := date(2024, time.January, 5)

	require.True(t, policy.IsOverdue(today, due))
	require.Equal(t, 4, policy.DaysLate(today, due))
	require.Equal(t, model.Rupiah(4000), p.LateFee(policy.DaysLate(today, due)))
}

func TestValidateNewLending(t *testing.T) {
	p := policy.Default()
	valid := model.LendingRequest{
		BookID:     1,
		MemberID:   2,
		BorrowDate: model.NewDate(2024, time.March, 1),
		DueDate:    model.NewDate(2024, time.March, 15),
	}

	tests := []struct {
		name   string
		modify func(r *model.LendingRequest)
		field  string
	}{
		{name: "ok, exactly 14 days", modify: func(r *model.LendingRequest) {}},
		{name: "ok, same day", modify: func(r *model.LendingRequest) { r.DueDate = r.BorrowDate }},
		{name: "missing book", modify: func(r *model.LendingRequest) { r.BookID = 0 }, field: "id_buku"},
		{name: "missing member", modify: func(r *model.LendingRequest) { r.MemberID = 0 }, field: "id_member"},
		{name: "missing borrow date", modify: func(r *model.LendingRequest) { r.BorrowDate = model.Date{} }, field: "tgl_pinjam"},
		{name: "missing due date", modify: func(r *model.LendingRequest) { r.DueDate = model.Date{} }, field: "tgl_pengembalian"},
		{name: "due before borrow", modify: func(r *model.LendingRequest) { r.DueDate = model.NewDate(2024, time.February, 28) }, field: "tgl_pengembalian"},
		{name: "15 days", modify: func(r *model.LendingRequest) { r.DueDate = model.NewDate(2024, time.March, 16) }, field: "tgl_pengembalian"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.modify(&req)
			err := p.ValidateNewLending(req)
			if tt.field == "" {
				require.NoError(t, err)
				return
			}
			var vErr *errs.ValidationError
			require.ErrorAs(t, err, &vErr)
			require.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestCheckActiveLoans(t *testing.T) {
	p := policy.Default()
	lendings := []model.Lending{
		{ID: 1, MemberID: 7},
		{ID: 2, MemberID: 7},
		{ID: 3, MemberID: 7, Returned: 1},
		{ID: 4, MemberID: 8},
	}
	require.Equal(t, 2, policy.ActiveLoans(7, lendings))
	require.NoError(t, p.CheckActiveLoans(7, lendings))

	lendings = append(lendings, model.Lending{ID: 5, MemberID: 7})
	err := p.CheckActiveLoans(7, lendings)
	require.True(t, errs.IsValidation(err))
	require.NoError(t, p.CheckActiveLoans(8, lendings))
}

func TestCheckStock(t *testing.T) {
	require.NoError(t, policy.CheckStock(model.Book{Title: "Laskar Pelangi", Stock: 1}))
	require.True(t, errs.IsValidation(policy.CheckStock(model.Book{Title: "Laskar Pelangi"})))
}

func TestToday(t *testing.T) {
	p := policy.New(policy.Config{Timezone: "Asia/Jakarta"})
	// 20:00 UTC on Jan 4 is already Jan 5 in Jakarta.
	now := time.Date(2024, time.January, 4, 20, 0, 0, 0, time.UTC)
	require.Equal(t, model.NewDate(2024, time.January, 5), p.Today(now))
	require.Equal(t, model.NewDate(2024, time.January, 4), policy.Default().Today(now))
}
