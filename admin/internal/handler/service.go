package handler

import (
	"context"

	"github.com/Astemirdum/library-admin/admin/internal/ledger"
	"github.com/Astemirdum/library-admin/admin/internal/model"
	"github.com/Astemirdum/library-admin/admin/internal/service"
	"github.com/Astemirdum/library-admin/admin/internal/stats"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

var _ AdminService = (*service.Service)(nil)

type AdminService interface {
	Login(ctx context.Context, req model.LoginRequest) (model.Session, error)
	Logout(ctx context.Context, id string) error
	Session(ctx context.Context, id string) (model.Session, error)

	Dashboard(ctx context.Context, sess model.Session, limit int) (stats.Dashboard, error)

	ListBooks(ctx context.Context, sess model.Session, p service.BookParams) (service.List[model.Book], error)
	BookOptions(ctx context.Context, sess model.Session) (model.BookOptions, error)
	GetBook(ctx context.Context, sess model.Session, id model.ID) (model.Book, error)
	CreateBook(ctx context.Context, sess model.Session, req model.BookRequest) (model.Book, error)
	UpdateBook(ctx context.Context, sess model.Session, id model.ID, req model.BookRequest) (model.Book, error)
	DeleteBook(ctx context.Context, sess model.Session, id model.ID) error

	ListMembers(ctx context.Context, sess model.Session, p service.ListParams) (service.List[model.Member], error)
	CreateMember(ctx context.Context, sess model.Session, req model.MemberRequest) (model.Member, error)
	UpdateMember(ctx context.Context, sess model.Session, id model.ID, req model.MemberRequest) (model.Member, error)
	DeleteMember(ctx context.Context, sess model.Session, id model.ID) error

	ListLendings(ctx context.Context, sess model.Session, p service.LendingParams) (service.List[model.LendingView], error)
	Borrow(ctx context.Context, sess model.Session, req model.LendingRequest) (model.Lending, error)
	ReturnPreview(ctx context.Context, sess model.Session, id model.ID) (model.ReturnPreview, error)
	Return(ctx context.Context, sess model.Session, id model.ID, a ledger.Assessment) (ledger.Outcome, error)

	ListFines(ctx context.Context, sess model.Session, p service.FineParams) (service.List[model.FineView], error)
	FineSummary(ctx context.Context, sess model.Session) (stats.FineSummary, error)
	CreateFine(ctx context.Context, sess model.Session, req model.FineRequest) (model.Fine, error)
	PayFine(ctx context.Context, sess model.Session, id model.ID) (model.Fine, error)
}
