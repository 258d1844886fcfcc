package service

import (
	"context"

	"github.com/Astemirdum/library-admin/admin/internal/errs"
	"github.com/Astemirdum/library-admin/admin/internal/model"
	"github.com/Astemirdum/library-admin/admin/internal/snapshot"
	"github.com/Astemirdum/library-admin/admin/internal/stats"
	"github.com/Astemirdum/library-admin/pkg/query"
	"golang.org/x/sync/errgroup"
)

func (s *Service) ListFines(ctx context.Context, sess model.Session, p FineParams) (List[model.FineView], error) {
	var (
		fines   []model.Fine
		books   []model.Book
		members []model.Member
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		fines, err = s.fines(gCtx, sess.Token)
		return err
	})
	g.Go(func() (err error) {
		books, err = s.books(gCtx, sess.Token)
		return err
	})
	g.Go(func() (err error) {
		members, err = s.members(gCtx, sess.Token)
		return err
	})
	if err := g.Wait(); err != nil {
		return List[model.FineView]{}, s.upstreamErr(ctx, sess, err)
	}

	dir := stats.NewDirectory(books, members)
	views := make([]model.FineView, 0, len(fines))
	for _, f := range fines {
		v := model.FineView{Fine: f, MemberName: dir.MemberName(f.MemberID)}
		if f.BookID != 0 {
			v.BookTitle = dir.BookTitle(f.BookID)
		}
		views = append(views, v)
	}
	views = query.Search(views, fineSearchFields, p.Search)
	views = query.FilterBy(views, query.Eq(fineStatus, string(p.Status)))
	return list(s, sess.ID, screenFines, views, fineSortKeys, p.ListParams)
}

func (s *Service) FineSummary(ctx context.Context, sess model.Session) (stats.FineSummary, error) {
	fines, err := s.fines(ctx, sess.Token)
	if err != nil {
		return stats.FineSummary{}, s.upstreamErr(ctx, sess, err)
	}
	return stats.SummarizeFines(fines), nil
}

// CreateFine records a manual fine, e.g. for damage noticed outside a return.
func (s *Service) CreateFine(ctx context.Context, sess model.Session, req model.FineRequest) (model.Fine, error) {
	if req.Amount <= 0 {
		return model.Fine{}, errs.Validation("jumlah_denda", "fine amount must be a positive number")
	}
	fine, err := s.up.CreateFine(ctx, sess.Token, req)
	if err != nil {
		return model.Fine{}, s.upstreamErr(ctx, sess, err)
	}
	s.bus.Changed(snapshot.Fines)
	return fine, nil
}

// PayFine marks an unpaid fine as paid.
func (s *Service) PayFine(ctx context.Context, sess model.Session, id model.ID) (model.Fine, error) {
	s.cache.Invalidate(snapshot.Fines)
	fines, err := s.fines(ctx, sess.Token)
	if err != nil {
		return model.Fine{}, s.upstreamErr(ctx, sess, err)
	}
	var (
		fine  model.Fine
		found bool
	)
	for _, f := range fines {
		if f.ID == id {
			fine, found = f, true
			break
		}
	}
	if !found {
		return model.Fine{}, errs.NotFound("fine", id)
	}
	if fine.IsPaid() {
		return model.Fine{}, errs.Validationf("status", "fine %s is already paid", id)
	}

	paid, err := s.up.UpdateFine(ctx, sess.Token, id, model.FineUpdate{
		MemberID:    fine.MemberID,
		BookID:      fine.BookID,
		Amount:      fine.Amount,
		Type:        fine.Type,
		Description: fine.Description,
		Status:      model.FinePaid,
	})
	if err != nil {
		return model.Fine{}, s.upstreamErr(ctx, sess, err)
	}
	s.bus.Changed(snapshot.Fines)
	if paid.ID == 0 {
		fine.Status = model.FinePaid
		return fine, nil
	}
	return paid, nil
}
