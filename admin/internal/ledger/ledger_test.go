package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/Astemirdum/library-admin/admin/internal/errs"
	"github.com/Astemirdum/library-admin/admin/internal/ledger"
	"github.com/Astemirdum/library-admin/admin/internal/model"
	"github.com/Astemirdum/library-admin/admin/internal/policy"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2024, time.January, 5, 10, 0, 0, 0, time.UTC)

func lending(due model.Date) model.Lending {
	return model.Lending{
		ID:         11,
		BookID:     3,
		MemberID:   7,
		BorrowDate: model.NewDate(2023, time.December, 20),
		DueDate:    due,
	}
}

func TestFinesForReturn(t *testing.T) {
	l := ledger.New(policy.Default())
	onTime := lending(model.NewDate(2024, time.January, 10))
	threeDaysLate := lending(model.NewDate(2024, time.January, 2))

	tests := []struct {
		name    string
		lending model.Lending
		a       ledger.Assessment
		want    []model.FineRequest
		field   string
	}{
		{
			name:    "good and on time",
			lending: onTime,
			a:       ledger.Assessment{Condition: ledger.Good},
			want:    []model.FineRequest{},
		},
		{
			name:    "good but late",
			lending: threeDaysLate,
			a:       ledger.Assessment{Condition: ledger.Good},
			want: []model.FineRequest{
				{MemberID: 7, BookID: 3, Amount: 3000, Type: model.FineLate, Description: "Keterlambatan pengembalian 3 hari"},
			},
		},
		{
			name:    "damaged and late",
			lending: threeDaysLate,
			a:       ledger.Assessment{Condition: ledger.Damaged, Amount: 5000, Description: "sampul robek"},
			want: []model.FineRequest{
				{MemberID: 7, BookID: 3, Amount: 3000, Type: model.FineLate, Description: "Keterlambatan pengembalian 3 hari"},
				{MemberID: 7, BookID: 3, Amount: 5000, Type: model.FineDamage, Description: "sampul robek"},
			},
		},
		{
			name:    "other on time",
			lending: onTime,
			a:       ledger.Assessment{Condition: ledger.Other, Amount: 20000, Description: " hilang "},
			want: []model.FineRequest{
				{MemberID: 7, BookID: 3, Amount: 20000, Type: model.FineOther, Description: "hilang"},
			},
		},
		{
			name:    "damaged with explicit type",
			lending: onTime,
			a:       ledger.Assessment{Condition: ledger.Damaged, Type: model.FineOther, Amount: 1500, Description: "coretan"},
			want: []model.FineRequest{
				{MemberID: 7, BookID: 3, Amount: 1500, Type: model.FineOther, Description: "coretan"},
			},
		},
		{
			name:    "damaged without amount",
			lending: onTime,
			a:       ledger.Assessment{Condition: ledger.Damaged, Description: "sampul robek"},
			field:   "jumlah_denda",
		},
		{
			name:    "damaged without description",
			lending: onTime,
			a:       ledger.Assessment{Condition: ledger.Damaged, Amount: 5000, Description: "  "},
			field:   "deskripsi",
		},
		{
			name:    "late type not allowed for condition",
			lending: onTime,
			a:       ledger.Assessment{Condition: ledger.Damaged, Type: model.FineLate, Amount: 5000, Description: "x"},
			field:   "jenis_denda",
		},
		{
			name:    "unknown condition",
			lending: onTime,
			a:       ledger.Assessment{Condition: "baik"},
			field:   "condition",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := l.FinesForReturn(tt.lending, today, tt.a)
			if tt.field != "" {
				var vErr *errs.ValidationError
				require.ErrorAs(t, err, &vErr)
				require.Equal(t, tt.field, vErr.Field)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)

			again, err := l.FinesForReturn(tt.lending, today, tt.a)
			require.NoError(t, err)
			require.Equal(t, got, again)
		})
	}
}

type submitter struct {
	returnErr error
	fineErrs  map[model.FineType]error
	returned  []model.ReturnRequest
	created   []model.FineRequest
}

func (s *submitter) ReturnLending(_ context.Context, _ model.ID, req model.ReturnRequest) error {
	if s.returnErr != nil {
		return s.returnErr
	}
	s.returned = append(s.returned, req)
	return nil
}

func (s *submitter) CreateFine(_ context.Context, req model.FineRequest) (model.Fine, error) {
	if err := s.fineErrs[req.Type]; err != nil {
		return model.Fine{}, err
	}
	s.created = append(s.created, req)
	return model.Fine{ID: model.ID(len(s.created)), MemberID: req.MemberID, Amount: req.Amount, Type: req.Type}, nil
}

func TestSettle(t *testing.T) {
	l := ledger.New(policy.Default())
	ctx := context.Background()
	damaged := ledger.Assessment{Condition: ledger.Damaged, Amount: 5000, Description: "basah"}

	t.Run("clean return", func(t *testing.T) {
		sub := &submitter{}
		out, err := l.Settle(ctx, sub, lending(model.NewDate(2024, time.January, 5)), today, ledger.Assessment{Condition: ledger.Good})
		require.NoError(t, err)
		assert.Equal(t, ledger.StatusReturned, out.Status())
		assert.Equal(t, []model.ReturnRequest{{ReturnedDate: model.NewDate(2024, time.January, 5), Returned: 1}}, sub.returned)
		assert.Empty(t, sub.created)
		assert.Equal(t, model.Rupiah(0), out.TotalFines())
	})

	t.Run("returned with fines", func(t *testing.T) {
		sub := &submitter{}
		out, err := l.Settle(ctx, sub, lending(model.NewDate(2024, time.January, 2)), today, damaged)
		require.NoError(t, err)
		assert.Equal(t, ledger.StatusReturnedWithFines, out.Status())
		assert.Equal(t, 3, out.DaysLate)
		assert.Len(t, out.Created, 2)
		assert.Equal(t, model.Rupiah(8000), out.TotalFines())
		assert.Equal(t, model.FineLate, sub.created[0].Type)
		assert.Equal(t, model.FineDamage, sub.created[1].Type)
	})

	t.Run("partial failure", func(t *testing.T) {
		sub := &submitter{fineErrs: map[model.FineType]error{model.FineDamage: errors.New("upstream down")}}
		out, err := l.Settle(ctx, sub, lending(model.NewDate(2024, time.January, 2)), today, damaged)

		var pErr *errs.PartialFailureError
		require.ErrorAs(t, err, &pErr)
		assert.Equal(t, 1, pErr.Failed)
		assert.Equal(t, 2, pErr.Total)
		assert.Contains(t, pErr.Error(), "returned, but 1 of 2 fines failed")
		assert.Equal(t, ledger.StatusPartialFailure, out.Status())
		require.Len(t, out.Failed, 1)
		assert.Equal(t, model.FineDamage, out.Failed[0].Request.Type)
		assert.Len(t, sub.returned, 1)
	})

	t.Run("return fails", func(t *testing.T) {
		sub := &submitter{returnErr: errors.New("timeout")}
		out, err := l.Settle(ctx, sub, lending(model.NewDate(2024, time.January, 2)), today, damaged)
		require.Error(t, err)
		var pErr *errs.PartialFailureError
		require.False(t, errors.As(err, &pErr))
		assert.Empty(t, sub.created)
		assert.Equal(t, ledger.Outcome{}, out)
	})

	t.Run("invalid assessment sends nothing", func(t *testing.T) {
		sub := &submitter{}
		_, err := l.Settle(ctx, sub, lending(model.NewDate(2024, time.January, 2)), today, ledger.Assessment{Condition: ledger.Damaged})
		require.True(t, errs.IsValidation(err))
		assert.Empty(t, sub.returned)
	})

	t.Run("already returned", func(t *testing.T) {
		sub := &submitter{}
		done := lending(model.NewDate(2024, time.January, 2))
		done.Returned = 1
		done.ReturnedDate = model.NewDate(2024, time.January, 3)
		_, err := l.Settle(ctx, sub, done, today, ledger.Assessment{Condition: ledger.Good})
		require.True(t, errs.IsValidation(err))
		assert.Empty(t, sub.returned)
	})
}
