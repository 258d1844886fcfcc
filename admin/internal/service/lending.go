package service

import (
	"context"

	"github.com/Astemirdum/library-admin/admin/internal/errs"
	"github.com/Astemirdum/library-admin/admin/internal/ledger"
	"github.com/Astemirdum/library-admin/admin/internal/model"
	"github.com/Astemirdum/library-admin/admin/internal/policy"
	"github.com/Astemirdum/library-admin/admin/internal/queue"
	"github.com/Astemirdum/library-admin/admin/internal/snapshot"
	"github.com/Astemirdum/library-admin/admin/internal/stats"
	"github.com/Astemirdum/library-admin/pkg/query"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// lendingView derives the status shown on the lendings screen.
func lendingView(l model.Lending, dir stats.Directory, today model.Date) model.LendingView {
	v := model.LendingView{
		Lending:    l,
		BookTitle:  dir.BookTitle(l.BookID),
		MemberName: dir.MemberName(l.MemberID),
		Status:     model.LendingActive,
	}
	if b, ok := dir.Book(l.BookID); ok {
		v.ShelfCode = b.ShelfCode
	}
	if m, ok := dir.Member(l.MemberID); ok {
		v.NationalID = m.NationalID
	}
	switch {
	case l.IsReturned():
		v.Status = model.LendingReturned
		if !l.ReturnedDate.IsZero() {
			v.DaysLate = policy.DaysLate(l.ReturnedDate.Time, l.DueDate.Time)
		}
	case policy.IsOverdue(today.Time, l.DueDate.Time):
		v.Status = model.LendingOverdue
		v.DaysLate = policy.DaysLate(today.Time, l.DueDate.Time)
	}
	return v
}

func (s *Service) lendingViews(snap lendingSnapshot, today model.Date) []model.LendingView {
	dir := stats.NewDirectory(snap.books, snap.members)
	views := make([]model.LendingView, 0, len(snap.lendings))
	for _, l := range snap.lendings {
		views = append(views, lendingView(l, dir, today))
	}
	return views
}

type lendingSnapshot struct {
	books    []model.Book
	members  []model.Member
	lendings []model.Lending
}

func (s *Service) lendingSnapshot(ctx context.Context, token string) (lendingSnapshot, error) {
	var snap lendingSnapshot
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.books, err = s.books(gCtx, token)
		return err
	})
	g.Go(func() (err error) {
		snap.members, err = s.members(gCtx, token)
		return err
	})
	g.Go(func() (err error) {
		snap.lendings, err = s.lendings(gCtx, token)
		return err
	})
	return snap, g.Wait()
}

func (s *Service) ListLendings(ctx context.Context, sess model.Session, p LendingParams) (List[model.LendingView], error) {
	snap, err := s.lendingSnapshot(ctx, sess.Token)
	if err != nil {
		return List[model.LendingView]{}, s.upstreamErr(ctx, sess, err)
	}
	views := s.lendingViews(snap, s.today())
	views = query.Search(views, lendingSearchFields, p.Search)
	views = query.FilterBy(views, query.Eq(lendingStatus, string(p.Status)))
	return list(s, sess.ID, screenLendings, views, lendingSortKeys, p.ListParams)
}

// Borrow checks the request against the policy on fresh books and lendings before creating it.
func (s *Service) Borrow(ctx context.Context, sess model.Session, req model.LendingRequest) (model.Lending, error) {
	if err := s.policy.ValidateNewLending(req); err != nil {
		return model.Lending{}, err
	}

	s.cache.Invalidate(snapshot.Books)
	s.cache.Invalidate(snapshot.Lendings)
	snap, err := s.lendingSnapshot(ctx, sess.Token)
	if err != nil {
		return model.Lending{}, s.upstreamErr(ctx, sess, err)
	}
	dir := stats.NewDirectory(snap.books, snap.members)
	if _, ok := dir.Member(req.MemberID); !ok {
		return model.Lending{}, errs.Validationf("id_member", "unknown member %s", req.MemberID)
	}
	book, ok := dir.Book(req.BookID)
	if !ok {
		return model.Lending{}, errs.Validationf("id_buku", "unknown book %s", req.BookID)
	}
	if err = s.policy.CheckActiveLoans(req.MemberID, snap.lendings); err != nil {
		return model.Lending{}, err
	}
	if err = policy.CheckStock(book); err != nil {
		return model.Lending{}, err
	}

	lending, err := s.up.CreateLending(ctx, sess.Token, req)
	if err != nil {
		return model.Lending{}, s.upstreamErr(ctx, sess, err)
	}
	s.bus.Changed(snapshot.Lendings, snapshot.Books)
	s.log.Info("book lent",
		zap.Stringer("book", req.BookID),
		zap.Stringer("member", req.MemberID),
		zap.Stringer("due", req.DueDate),
	)
	return lending, nil
}

func (s *Service) findLending(ctx context.Context, token string, id model.ID) (model.Lending, error) {
	lendings, err := s.lendings(ctx, token)
	if err != nil {
		return model.Lending{}, err
	}
	for _, l := range lendings {
		if l.ID == id {
			return l, nil
		}
	}
	return model.Lending{}, errs.NotFound("lending", id)
}

func (s *Service) ReturnPreview(ctx context.Context, sess model.Session, id model.ID) (model.ReturnPreview, error) {
	lending, err := s.findLending(ctx, sess.Token, id)
	if err != nil {
		return model.ReturnPreview{}, s.upstreamErr(ctx, sess, err)
	}
	if lending.IsReturned() {
		return model.ReturnPreview{}, errs.Validationf("id", "lending %s is already returned", id)
	}
	today := s.today()
	days := policy.DaysLate(today.Time, lending.DueDate.Time)
	return model.ReturnPreview{
		LendingID: lending.ID,
		DueDate:   lending.DueDate,
		Today:     today,
		Overdue:   days > 0,
		DaysLate:  days,
		LateFee:   s.policy.LateFee(days),
	}, nil
}

type submitter struct {
	up    Upstream
	token string
}

func (sb submitter) ReturnLending(ctx context.Context, id model.ID, req model.ReturnRequest) error {
	return sb.up.ReturnLending(ctx, sb.token, id, req)
}

func (sb submitter) CreateFine(ctx context.Context, req model.FineRequest) (model.Fine, error) {
	return sb.up.CreateFine(ctx, sb.token, req)
}

// Return settles the lending on a freshly loaded copy. Fines that failed for a
// transient reason are handed to the retry queue; the outcome still lists them.
func (s *Service) Return(ctx context.Context, sess model.Session, id model.ID, a ledger.Assessment) (ledger.Outcome, error) {
	s.cache.Invalidate(snapshot.Lendings)
	lending, err := s.findLending(ctx, sess.Token, id)
	if err != nil {
		return ledger.Outcome{}, s.upstreamErr(ctx, sess, err)
	}

	out, err := s.ledger.Settle(ctx, submitter{up: s.up, token: sess.Token}, lending, s.today().Time, a)
	var partial *errs.PartialFailureError
	if err != nil && !errors.As(err, &partial) {
		return ledger.Outcome{}, s.upstreamErr(ctx, sess, err)
	}
	s.bus.Changed(snapshot.Lendings, snapshot.Books, snapshot.Fines)

	log := s.log.With(zap.Stringer("lending", id), zap.String("status", string(out.Status())))
	for _, f := range out.Failed {
		if !errs.IsTransient(f.Err) {
			continue
		}
		if !s.account.Configured() {
			log.Warn("fine not queued for retry", zap.Error(errNoServiceAccount), zap.NamedError("cause", f.Err))
			continue
		}
		qErr := s.enqueuer.Enqueue(ctx, queue.FineRetry{LendingID: id, Request: f.Request})
		if qErr != nil {
			log.Warn("fine not queued for retry", zap.Error(qErr), zap.NamedError("cause", f.Err))
			continue
		}
		log.Info("fine queued for retry", zap.Stringer("amount", f.Request.Amount))
	}
	log.Info("book returned", zap.Int("days_late", out.DaysLate), zap.Stringer("fines", out.TotalFines()))
	return out, err
}
