// Package ledger turns a return event into fine records and reports how the
// return and its fines fared upstream.
package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Astemirdum/library-admin/admin/internal/errs"
	"github.com/Astemirdum/library-admin/admin/internal/model"
	"github.com/Astemirdum/library-admin/admin/internal/policy"
	"github.com/pkg/errors"
)

type Condition string

const (
	Good    Condition = "good"
	Damaged Condition = "damaged"
	Other   Condition = "other"
)

// Assessment is the operator's check of the returned book. Description and Amount
// are required unless the condition is good. Type overrides the fine type derived
// from the condition.
type Assessment struct {
	Condition   Condition      `json:"condition" validate:"required,oneof=good damaged other"`
	Type        model.FineType `json:"jenis_denda,omitempty"`
	Description string         `json:"deskripsi"`
	Amount      model.Rupiah   `json:"jumlah_denda"`
}

type Ledger struct {
	policy policy.Policy
}

func New(p policy.Policy) Ledger {
	return Ledger{policy: p}
}

// FinesForReturn lists the fines a return produces: the late fine first, then the
// condition fine. The result depends only on its arguments.
func (l Ledger) FinesForReturn(lending model.Lending, today time.Time, a Assessment) ([]model.FineRequest, error) {
	fines := make([]model.FineRequest, 0, 2)

	if days := policy.DaysLate(today, lending.DueDate.Time); days > 0 {
		fines = append(fines, model.FineRequest{
			MemberID:    lending.MemberID,
			BookID:      lending.BookID,
			Amount:      l.policy.LateFee(days),
			Type:        model.FineLate,
			Description: fmt.Sprintf("Keterlambatan pengembalian %d hari", days),
		})
	}

	switch a.Condition {
	case Good:
		return fines, nil
	case Damaged, Other:
	default:
		return nil, errs.Validationf("condition", "unknown book condition %q", a.Condition)
	}

	fineType, err := conditionFineType(a)
	if err != nil {
		return nil, err
	}
	if a.Amount <= 0 {
		return nil, errs.Validation("jumlah_denda", "fine amount must be a positive number")
	}
	if strings.TrimSpace(a.Description) == "" {
		return nil, errs.Validation("deskripsi", "fine description is required")
	}
	fines = append(fines, model.FineRequest{
		MemberID:    lending.MemberID,
		BookID:      lending.BookID,
		Amount:      a.Amount,
		Type:        fineType,
		Description: strings.TrimSpace(a.Description),
	})
	return fines, nil
}

func conditionFineType(a Assessment) (model.FineType, error) {
	switch a.Type {
	case "":
		if a.Condition == Damaged {
			return model.FineDamage, nil
		}
		return model.FineOther, nil
	case model.FineDamage, model.FineOther:
		return a.Type, nil
	}
	return "", errs.Validationf("jenis_denda", "fine type %q is not allowed for a condition fine", a.Type)
}

// Submitter is the persistence side of a return.
type Submitter interface {
	ReturnLending(ctx context.Context, id model.ID, req model.ReturnRequest) error
	CreateFine(ctx context.Context, req model.FineRequest) (model.Fine, error)
}

type Status string

const (
	StatusReturned          Status = "returned"
	StatusReturnedWithFines Status = "returned_with_fines"
	StatusPartialFailure    Status = "partial_failure"
)

type FailedFine struct {
	Request model.FineRequest `json:"request"`
	Reason  string            `json:"error"`
	Err     error             `json:"-"`
}

type Outcome struct {
	LendingID    model.ID            `json:"id"`
	ReturnedDate model.Date          `json:"tgl_dikembalikan"`
	DaysLate     int                 `json:"hari_terlambat"`
	Requested    []model.FineRequest `json:"denda"`
	Created      []model.Fine        `json:"denda_dibuat"`
	Failed       []FailedFine        `json:"denda_gagal"`
}

func (o Outcome) Status() Status {
	switch {
	case len(o.Failed) > 0:
		return StatusPartialFailure
	case len(o.Requested) > 0:
		return StatusReturnedWithFines
	}
	return StatusReturned
}

// TotalFines sums every fine the return asked for, created or not.
func (o Outcome) TotalFines() model.Rupiah {
	var sum model.Rupiah
	for _, f := range o.Requested {
		sum += f.Amount
	}
	return sum
}

// Err is a *errs.PartialFailureError when some fines failed, nil otherwise.
func (o Outcome) Err() error {
	if len(o.Failed) == 0 {
		return nil
	}
	causes := make([]error, 0, len(o.Failed))
	for _, f := range o.Failed {
		causes = append(causes, f.Err)
	}
	return &errs.PartialFailureError{Failed: len(o.Failed), Total: len(o.Requested), Causes: causes}
}

// Settle returns the lending and then creates its fines one by one. A failed return
// is returned as is; failed fines are collected in the outcome and reported through
// Outcome.Err.
func (l Ledger) Settle(ctx context.Context, sub Submitter, lending model.Lending, today time.Time, a Assessment) (Outcome, error) {
	if lending.IsReturned() {
		return Outcome{}, errs.Validationf("id", "lending %s is already returned", lending.ID)
	}
	fines, err := l.FinesForReturn(lending, today, a)
	if err != nil {
		return Outcome{}, err
	}

	returned := model.DateOf(today)
	if err = sub.ReturnLending(ctx, lending.ID, model.ReturnRequest{ReturnedDate: returned, Returned: 1}); err != nil {
		return Outcome{}, errors.Wrap(err, "return lending")
	}

	out := Outcome{
		LendingID:    lending.ID,
		ReturnedDate: returned,
		DaysLate:     policy.DaysLate(today, lending.DueDate.Time),
		Requested:    fines,
		Created:      make([]model.Fine, 0, len(fines)),
	}
	for _, req := range fines {
		fine, err := sub.CreateFine(ctx, req)
		if err != nil {
			out.Failed = append(out.Failed, FailedFine{Request: req, Reason: err.Error(), Err: err})
			continue
		}
		out.Created = append(out.Created, fine)
	}
	return out, out.Err()
}
