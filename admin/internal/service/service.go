// Package service is the admin use-case layer: it resolves sessions, keeps the
// collection snapshots fresh and runs the lending, return and fine flows against
// the remote library API.
package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Astemirdum/library-admin/admin/config"
	"github.com/Astemirdum/library-admin/admin/internal/errs"
	"github.com/Astemirdum/library-admin/admin/internal/ledger"
	"github.com/Astemirdum/library-admin/admin/internal/model"
	"github.com/Astemirdum/library-admin/admin/internal/policy"
	"github.com/Astemirdum/library-admin/admin/internal/queue"
	"github.com/Astemirdum/library-admin/admin/internal/session"
	"github.com/Astemirdum/library-admin/admin/internal/snapshot"
	"github.com/Astemirdum/library-admin/admin/internal/stats"
	"github.com/Astemirdum/library-admin/pkg/query"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Upstream interface {
	Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error)

	ListBooks(ctx context.Context, token string) ([]model.Book, error)
	CreateBook(ctx context.Context, token string, req model.BookRequest) (model.Book, error)
	UpdateBook(ctx context.Context, token string, id model.ID, req model.BookRequest) (model.Book, error)
	DeleteBook(ctx context.Context, token string, id model.ID) error

	ListMembers(ctx context.Context, token string) ([]model.Member, error)
	CreateMember(ctx context.Context, token string, req model.MemberRequest) (model.Member, error)
	UpdateMember(ctx context.Context, token string, id model.ID, req model.MemberRequest) (model.Member, error)
	DeleteMember(ctx context.Context, token string, id model.ID) error

	ListLendings(ctx context.Context, token string) ([]model.Lending, error)
	CreateLending(ctx context.Context, token string, req model.LendingRequest) (model.Lending, error)
	ReturnLending(ctx context.Context, token string, id model.ID, req model.ReturnRequest) error

	ListFines(ctx context.Context, token string) ([]model.Fine, error)
	CreateFine(ctx context.Context, token string, req model.FineRequest) (model.Fine, error)
	UpdateFine(ctx context.Context, token string, id model.ID, req model.FineUpdate) (model.Fine, error)
}

type Service struct {
	up       Upstream
	sessions session.Store
	bus      *snapshot.Bus
	cache    *snapshot.Cache
	policy   policy.Policy
	ledger   ledger.Ledger
	enqueuer queue.Enqueuer
	account  config.Upstream
	ttl      time.Duration
	now      func() time.Time
	log      *zap.Logger

	mu      sync.Mutex
	sorters map[string]*query.Sorter

	tokenMu      sync.Mutex
	serviceToken string
}

func New(log *zap.Logger, cfg config.Config, up Upstream, sessions session.Store, enqueuer queue.Enqueuer) *Service {
	log = log.Named("service")
	bus := snapshot.NewBus()
	p := policy.New(cfg.Policy)
	return &Service{
		up:       up,
		sessions: sessions,
		bus:      bus,
		cache:    snapshot.NewCache(bus, cfg.SnapshotTTL, log),
		policy:   p,
		ledger:   ledger.New(p),
		enqueuer: enqueuer,
		account:  cfg.Upstream,
		ttl:      cfg.Session.TTL,
		now:      time.Now,
		log:      log,
		sorters:  make(map[string]*query.Sorter),
	}
}

func (s *Service) Policy() policy.Policy {
	return s.policy
}

func (s *Service) today() model.Date {
	return s.policy.Today(s.now())
}

func (s *Service) Login(ctx context.Context, req model.LoginRequest) (model.Session, error) {
	resp, err := s.up.Login(ctx, req)
	if err != nil {
		return model.Session{}, err
	}
	now := s.now()
	sess := model.Session{
		ID:        session.NewID(),
		Token:     resp.Token,
		Name:      resp.Name,
		Email:     resp.Email,
		Role:      resp.Role,
		CreatedAt: now,
	}
	if sess.Email == "" {
		sess.Email = req.Email
	}
	if s.ttl > 0 {
		sess.ExpiresAt = now.Add(s.ttl)
	}
	if err = s.sessions.Save(ctx, sess); err != nil {
		return model.Session{}, errors.Wrap(err, "login")
	}
	s.log.Info("signed in", zap.String("email", sess.Email))
	return sess, nil
}

func (s *Service) Logout(ctx context.Context, id string) error {
	s.dropSorters(id)
	return s.sessions.Delete(ctx, id)
}

func (s *Service) Session(ctx context.Context, id string) (model.Session, error) {
	if id == "" {
		return model.Session{}, errs.ErrNoSession
	}
	return s.sessions.Get(ctx, id)
}

func (s *Service) CleanupSessions(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx, s.now())
}

// upstreamErr signs the session out when the upstream token has expired.
func (s *Service) upstreamErr(ctx context.Context, sess model.Session, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, errs.ErrAuthExpired) && sess.ID != "" {
		s.dropSorters(sess.ID)
		if dErr := s.sessions.Delete(ctx, sess.ID); dErr != nil {
			s.log.Warn("drop expired session", zap.Error(dErr))
		}
	}
	return err
}

func (s *Service) books(ctx context.Context, token string) ([]model.Book, error) {
	return snapshot.Load(ctx, s.cache, snapshot.Books, func(ctx context.Context) ([]model.Book, error) {
		return s.up.ListBooks(ctx, token)
	})
}

func (s *Service) members(ctx context.Context, token string) ([]model.Member, error) {
	return snapshot.Load(ctx, s.cache, snapshot.Members, func(ctx context.Context) ([]model.Member, error) {
		return s.up.ListMembers(ctx, token)
	})
}

func (s *Service) lendings(ctx context.Context, token string) ([]model.Lending, error) {
	return snapshot.Load(ctx, s.cache, snapshot.Lendings, func(ctx context.Context) ([]model.Lending, error) {
		return s.up.ListLendings(ctx, token)
	})
}

func (s *Service) fines(ctx context.Context, token string) ([]model.Fine, error) {
	return snapshot.Load(ctx, s.cache, snapshot.Fines, func(ctx context.Context) ([]model.Fine, error) {
		return s.up.ListFines(ctx, token)
	})
}

// snapshot loads the four collections in parallel.
func (s *Service) snapshot(ctx context.Context, token string) (stats.Snapshot, error) {
	var snap stats.Snapshot
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Books, err = s.books(gCtx, token)
		return err
	})
	g.Go(func() (err error) {
		snap.Members, err = s.members(gCtx, token)
		return err
	})
	g.Go(func() (err error) {
		snap.Lendings, err = s.lendings(gCtx, token)
		return err
	})
	g.Go(func() (err error) {
		snap.Fines, err = s.fines(gCtx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		return stats.Snapshot{}, err
	}
	return snap, nil
}

func (s *Service) Dashboard(ctx context.Context, sess model.Session, limit int) (stats.Dashboard, error) {
	snap, err := s.snapshot(ctx, sess.Token)
	if err != nil {
		return stats.Dashboard{}, s.upstreamErr(ctx, sess, err)
	}
	return stats.BuildDashboard(snap, s.today().Time, limit), nil
}

func (s *Service) sorter(sessionID, screen string) *query.Sorter {
	key := sessionID + "/" + screen
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.sorters[key]
	if !ok {
		st = &query.Sorter{}
		s.sorters[key] = st
	}
	return st
}

func (s *Service) dropSorters(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.sorters {
		if strings.HasPrefix(key, sessionID+"/") {
			delete(s.sorters, key)
		}
	}
}
