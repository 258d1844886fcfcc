package service

import (
	"context"

	"github.com/Astemirdum/library-admin/admin/internal/errs"
	"github.com/Astemirdum/library-admin/admin/internal/model"
	"github.com/Astemirdum/library-admin/admin/internal/snapshot"
	"github.com/Astemirdum/library-admin/admin/internal/stats"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var errNoServiceAccount = errors.New("service account is not configured")

// asService runs fn with the background service account token, signing in again
// once if the token has expired.
func (s *Service) asService(ctx context.Context, fn func(token string) error) error {
	token, err := s.accountToken(ctx, false)
	if err != nil {
		return err
	}
	err = fn(token)
	if !errors.Is(err, errs.ErrAuthExpired) {
		return err
	}
	if token, err = s.accountToken(ctx, true); err != nil {
		return err
	}
	return fn(token)
}

func (s *Service) accountToken(ctx context.Context, refresh bool) (string, error) {
	s.tokenMu.Lock()
	defer s.tokenMu.Unlock()
	if s.serviceToken != "" && !refresh {
		return s.serviceToken, nil
	}
	if !s.account.Configured() {
		return "", errNoServiceAccount
	}
	resp, err := s.up.Login(ctx, model.LoginRequest{Email: s.account.Email, Password: s.account.Password})
	if err != nil {
		return "", errors.Wrap(err, "service account login")
	}
	s.serviceToken = resp.Token
	return s.serviceToken, nil
}

// ResubmitFine creates a fine taken from the retry queue.
func (s *Service) ResubmitFine(ctx context.Context, req model.FineRequest) error {
	err := s.asService(ctx, func(token string) error {
		_, err := s.up.CreateFine(ctx, token, req)
		return err
	})
	if err != nil {
		return err
	}
	s.bus.Changed(snapshot.Fines)
	return nil
}

// Reminder is an unreturned lending that is overdue or due tomorrow.
type Reminder struct {
	Lending     model.LendingView
	DueTomorrow bool
	LateFee     model.Rupiah
}

// Reminders lists what the reminder job reports, overdue lendings first.
func (s *Service) Reminders(ctx context.Context) ([]Reminder, error) {
	var snap stats.Snapshot
	err := s.asService(ctx, func(token string) error {
		var err error
		snap, err = s.snapshot(ctx, token)
		return err
	})
	if err != nil {
		return nil, err
	}

	today := s.today()
	tomorrow := model.DateOf(today.AddDate(0, 0, 1))
	views := s.lendingViews(lendingSnapshot{books: snap.Books, members: snap.Members, lendings: snap.Lendings}, today)
	overdue := make([]Reminder, 0)
	soon := make([]Reminder, 0)
	for _, v := range views {
		switch {
		case v.Status == model.LendingOverdue:
			overdue = append(overdue, Reminder{Lending: v, LateFee: s.policy.LateFee(v.DaysLate)})
		case v.Status == model.LendingActive && v.DueDate.Equal(tomorrow.Time):
			soon = append(soon, Reminder{Lending: v, DueTomorrow: true})
		}
	}
	s.log.Debug("reminders", zap.Int("overdue", len(overdue)), zap.Int("due_tomorrow", len(soon)))
	return append(overdue, soon...), nil
}
