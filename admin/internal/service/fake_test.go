package service

import (
	"context"
	"sync"

	"github.com/Astemirdum/library-admin/admin/internal/errs"
	"github.com/Astemirdum/library-admin/admin/internal/model"
)

// fakeUpstream keeps the four collections in memory and counts list calls.
type fakeUpstream struct {
	mu sync.Mutex

	books    []model.Book
	members  []model.Member
	lendings []model.Lending
	fines    []model.Fine

	listCalls map[string]int
	created   []model.FineRequest
	returned  []model.ID
	updates   []model.FineUpdate
	logins    int

	// errors injected per operation
	listErr     error
	returnErr   error
	createFine  func(n int) error
	lendingErr  error
	loginToken  string
	staleTokens map[string]bool
}

func newFakeUpstream() *fakeUpstream {
	return &fakeUpstream{listCalls: make(map[string]int), loginToken: "svc-token", staleTokens: map[string]bool{}}
}

func (f *fakeUpstream) list(name, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls[name]++
	if f.staleTokens[token] {
		return errs.ErrAuthExpired
	}
	return f.listErr
}

func (f *fakeUpstream) Login(_ context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins++
	if req.Password == "wrong" {
		return model.LoginResponse{}, errs.Validation("", "invalid email or password")
	}
	return model.LoginResponse{Token: f.loginToken, Name: "Admin", Role: "admin"}, nil
}

func (f *fakeUpstream) ListBooks(_ context.Context, token string) ([]model.Book, error) {
	if err := f.list("books", token); err != nil {
		return nil, err
	}
	return append([]model.Book(nil), f.books...), nil
}

func (f *fakeUpstream) CreateBook(_ context.Context, _ string, req model.BookRequest) (model.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b := model.Book{ID: model.ID(len(f.books) + 1), Title: req.Title, Publisher: req.Publisher, Year: req.Year, Stock: req.Stock}
	f.books = append(f.books, b)
	return b, nil
}

func (f *fakeUpstream) UpdateBook(_ context.Context, _ string, id model.ID, req model.BookRequest) (model.Book, error) {
	return model.Book{ID: id, Title: req.Title}, nil
}

func (f *fakeUpstream) DeleteBook(context.Context, string, model.ID) error { return nil }

func (f *fakeUpstream) ListMembers(_ context.Context, token string) ([]model.Member, error) {
	if err := f.list("members", token); err != nil {
		return nil, err
	}
	return append([]model.Member(nil), f.members...), nil
}

func (f *fakeUpstream) CreateMember(_ context.Context, _ string, req model.MemberRequest) (model.Member, error) {
	return model.Member{ID: 99, Name: req.Name}, nil
}

func (f *fakeUpstream) UpdateMember(_ context.Context, _ string, id model.ID, req model.MemberRequest) (model.Member, error) {
	return model.Member{ID: id, Name: req.Name}, nil
}

func (f *fakeUpstream) DeleteMember(context.Context, string, model.ID) error { return nil }

func (f *fakeUpstream) ListLendings(_ context.Context, token string) ([]model.Lending, error) {
	if err := f.list("lendings", token); err != nil {
		return nil, err
	}
	return append([]model.Lending(nil), f.lendings...), nil
}

func (f *fakeUpstream) CreateLending(_ context.Context, _ string, req model.LendingRequest) (model.Lending, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lendingErr != nil {
		return model.Lending{}, f.lendingErr
	}
	l := model.Lending{
		ID:         model.ID(len(f.lendings) + 1),
		BookID:     req.BookID,
		MemberID:   req.MemberID,
		BorrowDate: req.BorrowDate,
		DueDate:    req.DueDate,
	}
	f.lendings = append(f.lendings, l)
	return l, nil
}

func (f *fakeUpstream) ReturnLending(_ context.Context, _ string, id model.ID, req model.ReturnRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.returnErr != nil {
		return f.returnErr
	}
	f.returned = append(f.returned, id)
	for i := range f.lendings {
		if f.lendings[i].ID == id {
			f.lendings[i].Returned = req.Returned
			f.lendings[i].ReturnedDate = req.ReturnedDate
		}
	}
	return nil
}

func (f *fakeUpstream) ListFines(_ context.Context, token string) ([]model.Fine, error) {
	if err := f.list("fines", token); err != nil {
		return nil, err
	}
	return append([]model.Fine(nil), f.fines...), nil
}

func (f *fakeUpstream) CreateFine(_ context.Context, token string, req model.FineRequest) (model.Fine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.staleTokens[token] {
		return model.Fine{}, errs.ErrAuthExpired
	}
	if f.createFine != nil {
		if err := f.createFine(len(f.created)); err != nil {
			f.created = append(f.created, model.FineRequest{})
			return model.Fine{}, err
		}
	}
	f.created = append(f.created, req)
	fine := model.Fine{
		ID:          model.ID(len(f.fines) + 1),
		MemberID:    req.MemberID,
		BookID:      req.BookID,
		Amount:      req.Amount,
		Type:        req.Type,
		Description: req.Description,
		Status:      model.FineUnpaid,
	}
	f.fines = append(f.fines, fine)
	return fine, nil
}

func (f *fakeUpstream) UpdateFine(_ context.Context, _ string, id model.ID, req model.FineUpdate) (model.Fine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, req)
	for i := range f.fines {
		if f.fines[i].ID == id {
			f.fines[i].Status = req.Status
			return f.fines[i], nil
		}
	}
	return model.Fine{}, errs.NotFound("fine", id)
}
