// Package perpus is the client of the remote library REST API.
package perpus

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Astemirdum/library-admin/admin/config"
	"github.com/Astemirdum/library-admin/admin/internal/errs"
	"github.com/Astemirdum/library-admin/admin/internal/model"
	"github.com/Astemirdum/library-admin/pkg/circuit_breaker"
	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	loginPath         = "login"
	booksPath         = "buku"
	membersPath       = "member"
	memberDeletePath  = "anggota"
	lendingsPath      = "peminjaman"
	lendingReturnPath = "peminjaman/pengembalian"
	finesPath         = "denda"
)

type Service struct {
	log    *zap.Logger
	client *http.Client
	base   *url.URL
	cb     circuit_breaker.CircuitBreaker
}

func NewService(log *zap.Logger, cfg config.Upstream) (*Service, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "upstream base url")
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &Service{
		log:    log.Named("perpus"),
		client: &http.Client{Timeout: timeout},
		base:   base,
		cb:     circuit_breaker.New(100, time.Second, 0.2, 2, circuit_breaker.WithFailureFunc(errs.IsTransient)),
	}, nil
}

func (s *Service) CB() circuit_breaker.CircuitBreaker {
	return s.cb
}

func (s *Service) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	var resp model.LoginResponse
	if err := s.do(ctx, "", http.MethodPost, loginPath, req, &resp); err != nil {
		if errors.Is(err, errs.ErrAuthExpired) {
			return model.LoginResponse{}, errs.Validation("", "invalid email or password")
		}
		return model.LoginResponse{}, err
	}
	if resp.Token == "" {
		msg := resp.Message
		if msg == "" {
			msg = "login failed"
		}
		return model.LoginResponse{}, errs.Validation("", msg)
	}
	return resp, nil
}

func (s *Service) ListBooks(ctx context.Context, token string) ([]model.Book, error) {
	return list[model.Book](ctx, s, token, booksPath)
}

func (s *Service) CreateBook(ctx context.Context, token string, req model.BookRequest) (model.Book, error) {
	var book model.Book
	err := s.do(ctx, token, http.MethodPost, booksPath, req, &book)
	return book, err
}

func (s *Service) UpdateBook(ctx context.Context, token string, id model.ID, req model.BookRequest) (model.Book, error) {
	var book model.Book
	err := s.do(ctx, token, http.MethodPut, booksPath+"/"+id.String(), req, &book)
	return book, err
}

func (s *Service) DeleteBook(ctx context.Context, token string, id model.ID) error {
	return s.do(ctx, token, http.MethodDelete, booksPath+"/"+id.String(), nil, nil)
}

func (s *Service) ListMembers(ctx context.Context, token string) ([]model.Member, error) {
	return list[model.Member](ctx, s, token, membersPath)
}

func (s *Service) CreateMember(ctx context.Context, token string, req model.MemberRequest) (model.Member, error) {
	var m model.Member
	err := s.do(ctx, token, http.MethodPost, membersPath, req, &m)
	return m, err
}

func (s *Service) UpdateMember(ctx context.Context, token string, id model.ID, req model.MemberRequest) (model.Member, error) {
	var m model.Member
	err := s.do(ctx, token, http.MethodPut, membersPath+"/"+id.String(), req, &m)
	return m, err
}

// DeleteMember goes through the legacy "anggota" route; the API never moved it.
func (s *Service) DeleteMember(ctx context.Context, token string, id model.ID) error {
	return s.do(ctx, token, http.MethodDelete, memberDeletePath+"/"+id.String(), nil, nil)
}

func (s *Service) ListLendings(ctx context.Context, token string) ([]model.Lending, error) {
	return list[model.Lending](ctx, s, token, lendingsPath)
}

func (s *Service) CreateLending(ctx context.Context, token string, req model.LendingRequest) (model.Lending, error) {
	var l model.Lending
	err := s.do(ctx, token, http.MethodPost, lendingsPath, req, &l)
	return l, err
}

func (s *Service) ReturnLending(ctx context.Context, token string, id model.ID, req model.ReturnRequest) error {
	return s.do(ctx, token, http.MethodPut, lendingReturnPath+"/"+id.String(), req, nil)
}

func (s *Service) ListFines(ctx context.Context, token string) ([]model.Fine, error) {
	return list[model.Fine](ctx, s, token, finesPath)
}

func (s *Service) CreateFine(ctx context.Context, token string, req model.FineRequest) (model.Fine, error) {
	var f model.Fine
	err := s.do(ctx, token, http.MethodPost, finesPath, req, &f)
	return f, err
}

func (s *Service) UpdateFine(ctx context.Context, token string, id model.ID, req model.FineUpdate) (model.Fine, error) {
	var f model.Fine
	err := s.do(ctx, token, http.MethodPut, finesPath+"/"+id.String(), req, &f)
	return f, err
}

func list[T any](ctx context.Context, s *Service, token, path string) ([]T, error) {
	var items []T
	if err := s.do(ctx, token, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (s *Service) do(ctx context.Context, token, method, path string, in, out any) error {
	op := method + " " + path
	body := io.Reader(http.NoBody)
	if in != nil {
		b := bytes.NewBuffer(nil)
		if err := json.NewEncoder(b).Encode(in); err != nil {
			return errors.Wrap(err, op)
		}
		body = b
	}
	req, err := http.NewRequestWithContext(ctx, method, s.base.ResolveReference(&url.URL{Path: path}).String(), body)
	if err != nil {
		return errors.Wrap(err, op)
	}
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	if in != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSONCharsetUTF8)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	var callErr error
	if err := s.cb.Call(func() error {
		callErr = s.roundTrip(req, op, out)
		return callErr
	}); errors.Is(err, circuit_breaker.ErrOpenCB) {
		return &errs.TransientRequestError{Op: op, Status: http.StatusServiceUnavailable, Err: err}
	}
	if callErr != nil {
		s.log.Debug("upstream call failed", zap.String("op", op), zap.Error(callErr))
	}
	return callErr
}

func (s *Service) roundTrip(req *http.Request, op string, out any) error {
	resp, err := s.client.Do(req)
	if err != nil {
		return &errs.TransientRequestError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &errs.TransientRequestError{Op: op, Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return statusError(op, resp.StatusCode, data)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	payload, err := Normalize(data)
	if err != nil {
		return errors.Wrap(err, op)
	}
	return errors.Wrap(json.Unmarshal(payload, out), op)
}

// Normalize unwraps a {"data": ...} envelope. Anything else is returned as is.
func Normalize(data []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed, nil
	}
	var env map[string]jsoniter.RawMessage
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, errors.Wrap(err, "normalize")
	}
	if inner, ok := env["data"]; ok {
		return bytes.TrimSpace(inner), nil
	}
	return trimmed, nil
}

type errorBody struct {
	Message string              `json:"message"`
	Error   string              `json:"error"`
	Errors  map[string][]string `json:"errors"`
}

func upstreamMessage(code int, data []byte) (string, string) {
	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil {
		for field, msgs := range body.Errors {
			if len(msgs) > 0 {
				return field, msgs[0]
			}
		}
		if body.Message != "" {
			return "", body.Message
		}
		if body.Error != "" {
			return "", body.Error
		}
	}
	return "", http.StatusText(code)
}

func statusError(op string, code int, data []byte) error {
	field, msg := upstreamMessage(code, data)
	switch {
	case code == http.StatusUnauthorized:
		return errors.Wrap(errs.ErrAuthExpired, op)
	case code == http.StatusNotFound:
		return errors.Wrapf(errs.ErrNotFound, "%s: %s", op, msg)
	case code == http.StatusTooManyRequests, code >= http.StatusInternalServerError:
		return &errs.TransientRequestError{Op: op, Status: code, Err: errors.New(msg)}
	}
	return &errs.ValidationError{Field: field, Reason: msg}
}
