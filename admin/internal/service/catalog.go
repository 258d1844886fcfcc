package service

import (
	"context"

	"github.com/Astemirdum/library-admin/admin/internal/errs"
	"github.com/Astemirdum/library-admin/admin/internal/model"
	"github.com/Astemirdum/library-admin/admin/internal/snapshot"
	"github.com/Astemirdum/library-admin/pkg/query"
)

func (s *Service) ListBooks(ctx context.Context, sess model.Session, p BookParams) (List[model.Book], error) {
	books, err := s.books(ctx, sess.Token)
	if err != nil {
		return List[model.Book]{}, s.upstreamErr(ctx, sess, err)
	}
	books = query.Search(books, bookSearchFields, p.Search)
	books = query.FilterBy(books,
		query.Eq(bookYear, p.Year),
		query.Eq(bookPublisher, p.Publisher),
	)
	return list(s, sess.ID, screenBooks, books, bookSortKeys, p.ListParams)
}

func (s *Service) BookOptions(ctx context.Context, sess model.Session) (model.BookOptions, error) {
	books, err := s.books(ctx, sess.Token)
	if err != nil {
		return model.BookOptions{}, s.upstreamErr(ctx, sess, err)
	}
	return model.BookOptions{
		Years:      query.Distinct(books, bookYear),
		Publishers: query.Distinct(books, bookPublisher),
	}, nil
}

func (s *Service) GetBook(ctx context.Context, sess model.Session, id model.ID) (model.Book, error) {
	books, err := s.books(ctx, sess.Token)
	if err != nil {
		return model.Book{}, s.upstreamErr(ctx, sess, err)
	}
	for _, b := range books {
		if b.ID == id {
			return b, nil
		}
	}
	return model.Book{}, errs.NotFound("book", id)
}

func (s *Service) CreateBook(ctx context.Context, sess model.Session, req model.BookRequest) (model.Book, error) {
	book, err := s.up.CreateBook(ctx, sess.Token, req)
	if err != nil {
		return model.Book{}, s.upstreamErr(ctx, sess, err)
	}
	s.bus.Changed(snapshot.Books)
	return book, nil
}

func (s *Service) UpdateBook(ctx context.Context, sess model.Session, id model.ID, req model.BookRequest) (model.Book, error) {
	book, err := s.up.UpdateBook(ctx, sess.Token, id, req)
	if err != nil {
		return model.Book{}, s.upstreamErr(ctx, sess, err)
	}
	s.bus.Changed(snapshot.Books)
	return book, nil
}

func (s *Service) DeleteBook(ctx context.Context, sess model.Session, id model.ID) error {
	if err := s.up.DeleteBook(ctx, sess.Token, id); err != nil {
		return s.upstreamErr(ctx, sess, err)
	}
	s.bus.Changed(snapshot.Books)
	return nil
}

func (s *Service) ListMembers(ctx context.Context, sess model.Session, p ListParams) (List[model.Member], error) {
	members, err := s.members(ctx, sess.Token)
	if err != nil {
		return List[model.Member]{}, s.upstreamErr(ctx, sess, err)
	}
	members = query.Search(members, memberSearchFields, p.Search)
	return list(s, sess.ID, screenMembers, members, memberSortKeys, p)
}

func (s *Service) CreateMember(ctx context.Context, sess model.Session, req model.MemberRequest) (model.Member, error) {
	m, err := s.up.CreateMember(ctx, sess.Token, req)
	if err != nil {
		return model.Member{}, s.upstreamErr(ctx, sess, err)
	}
	s.bus.Changed(snapshot.Members)
	return m, nil
}

func (s *Service) UpdateMember(ctx context.Context, sess model.Session, id model.ID, req model.MemberRequest) (model.Member, error) {
	m, err := s.up.UpdateMember(ctx, sess.Token, id, req)
	if err != nil {
		return model.Member{}, s.upstreamErr(ctx, sess, err)
	}
	s.bus.Changed(snapshot.Members)
	return m, nil
}

func (s *Service) DeleteMember(ctx context.Context, sess model.Session, id model.ID) error {
	if err := s.up.DeleteMember(ctx, sess.Token, id); err != nil {
		return s.upstreamErr(ctx, sess, err)
	}
	s.bus.Changed(snapshot.Members)
	return nil
}
