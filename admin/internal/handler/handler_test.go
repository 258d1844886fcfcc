package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Astemirdum/library-admin/admin/internal/errs"
	"github.com/Astemirdum/library-admin/admin/internal/handler"
	"github.com/Astemirdum/library-admin/admin/internal/ledger"
	"github.com/Astemirdum/library-admin/admin/internal/model"
	"github.com/Astemirdum/library-admin/admin/internal/service"
	"github.com/Astemirdum/library-admin/pkg/query"
	"github.com/golang/mock/gomock"
	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	service_mocks "github.com/Astemirdum/library-admin/admin/internal/handler/mocks"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var sess = model.Session{
	ID:        "8c1f7a52-4c0e-4bb2-9f57-1c2a3e0d9b11",
	Token:     "upstream-token",
	Name:      "Admin",
	Email:     "admin@perpus.id",
	ExpiresAt: time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC),
}

type response struct {
	expectedCode int
	expectedBody string
}

func newServer(t *testing.T) (*service_mocks.MockAdminService, *echo.Echo) {
	t.Helper()
	c := gomock.NewController(t)
	svc := service_mocks.NewMockAdminService(c)
	h := handler.New(svc, zap.NewNop())
	return svc, h.NewRouter()
}

func serve(e *echo.Echo, method, target, body string, signedIn bool) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if signedIn {
		r.Header.Set(echo.HeaderAuthorization, "Bearer "+sess.ID)
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)
	return w
}

func expectSession(svc *service_mocks.MockAdminService) {
	svc.EXPECT().Session(gomock.Any(), sess.ID).Return(sess, nil)
}

func TestHandler_Login(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockAdminService)

	tests := []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"email":"admin@perpus.id","password":"secret"}`,
			mockBehavior: func(r *service_mocks.MockAdminService) {
				r.EXPECT().
					Login(gomock.Any(), model.LoginRequest{Email: "admin@perpus.id", Password: "secret"}).
					Return(sess, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"sessionId":"8c1f7a52-4c0e-4bb2-9f57-1c2a3e0d9b11","user":{"id":"8c1f7a52-4c0e-4bb2-9f57-1c2a3e0d9b11","name":"Admin","email":"admin@perpus.id","role":"","createdAt":"0001-01-01T00:00:00Z","expiresAt":"2030-01-01T00:00:00Z"}}`,
			},
		},
		{
			name:         "err. invalid email",
			body:         `{"email":"admin","password":"secret"}`,
			mockBehavior: func(r *service_mocks.MockAdminService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
		{
			name: "err. wrong credentials",
			body: `{"email":"admin@perpus.id","password":"nope"}`,
			mockBehavior: func(r *service_mocks.MockAdminService) {
				r.EXPECT().
					Login(gomock.Any(), gomock.Any()).
					Return(model.Session{}, errs.Validation("", "invalid email or password"))
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"invalid email or password"}`,
			},
		},
		{
			name: "err. upstream down",
			body: `{"email":"admin@perpus.id","password":"secret"}`,
			mockBehavior: func(r *service_mocks.MockAdminService) {
				r.EXPECT().
					Login(gomock.Any(), gomock.Any()).
					Return(model.Session{}, &errs.TransientRequestError{Op: "POST login", Err: errors.New("connection refused")})
			},
			response: response{
				expectedCode: http.StatusBadGateway,
				expectedBody: `{"message":"POST login: connection refused"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, e := newServer(t)
			tt.mockBehavior(svc)

			w := serve(e, http.MethodPost, "/api/v1/login", tt.body, false)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
			if w.Code == http.StatusOK {
				require.Contains(t, w.Header().Get(echo.HeaderSetCookie), "admin_session="+sess.ID)
			}
		})
	}
}

func TestHandler_SessionRequired(t *testing.T) {
	t.Parallel()
	svc, e := newServer(t)

	w := serve(e, http.MethodGet, "/api/v1/dashboard", "", false)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, `{"message":"not signed in"}`, strings.Trim(w.Body.String(), "\n"))

	svc.EXPECT().Session(gomock.Any(), sess.ID).Return(model.Session{}, errs.ErrNoSession)
	w = serve(e, http.MethodGet, "/api/v1/dashboard", "", true)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	expectSession(svc)
	svc.EXPECT().Logout(gomock.Any(), sess.ID).Return(nil)
	w = serve(e, http.MethodPost, "/api/v1/logout", "", true)
	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestHandler_SessionCookie(t *testing.T) {
	t.Parallel()
	svc, e := newServer(t)
	expectSession(svc)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/me", http.NoBody)
	r.AddCookie(&http.Cookie{Name: "admin_session", Value: sess.ID})
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var got model.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, sess.Name, got.Name)
	require.Empty(t, got.Token)
}

func TestHandler_ListBooks(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockAdminService)

	tests := []struct {
		name         string
		target       string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:   "ok",
			target: "/api/v1/books?search=harry&tahun_terbit=2001&sort=judul&order=desc&page=2&size=5",
			mockBehavior: func(r *service_mocks.MockAdminService) {
				expectSession(r)
				r.EXPECT().
					ListBooks(gomock.Any(), sess, service.BookParams{
						ListParams: service.ListParams{Search: "harry", Sort: "judul", Order: "desc", Page: 2, Size: 5},
						Year:       "2001",
					}).
					Return(service.List[model.Book]{
						Page:  query.Page[model.Book]{Items: []model.Book{}, Page: 2, PageSize: 5},
						Sort:  "judul",
						Order: query.Desc,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"items":[],"page":2,"pageSize":5,"totalElements":0,"totalPages":0,"sort":"judul","order":"desc"}`,
			},
		},
		{
			name:   "err. bad page",
			target: "/api/v1/books?page=abc",
			mockBehavior: func(r *service_mocks.MockAdminService) {
				expectSession(r)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
		{
			name:   "err. session expired upstream",
			target: "/api/v1/books",
			mockBehavior: func(r *service_mocks.MockAdminService) {
				expectSession(r)
				r.EXPECT().
					ListBooks(gomock.Any(), sess, service.BookParams{}).
					Return(service.List[model.Book]{}, errors.Wrap(errs.ErrAuthExpired, "GET buku"))
			},
			response: response{
				expectedCode: http.StatusUnauthorized,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, e := newServer(t)
			tt.mockBehavior(svc)

			w := serve(e, http.MethodGet, tt.target, "", true)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_Return(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockAdminService)

	lateFine := model.FineRequest{MemberID: 1, BookID: 2, Amount: 3000, Type: model.FineLate, Description: "Keterlambatan pengembalian 3 hari"}
	damageFine := model.FineRequest{MemberID: 1, BookID: 2, Amount: 20000, Type: model.FineDamage, Description: "Sampul sobek"}
	assessment := ledger.Assessment{Condition: ledger.Damaged, Description: "Sampul sobek", Amount: 20000}

	tests := []struct {
		name         string
		target       string
		body         string
		mockBehavior mockBehavior
		wantCode     int
		wantStatus   ledger.Status
		wantMessage  string
	}{
		{
			name:   "ok",
			target: "/api/v1/lendings/7/return",
			body:   `{"condition":"damaged","deskripsi":"Sampul sobek","jumlah_denda":20000}`,
			mockBehavior: func(r *service_mocks.MockAdminService) {
				expectSession(r)
				r.EXPECT().Return(gomock.Any(), sess, model.ID(7), assessment).
					Return(ledger.Outcome{
						LendingID: 7,
						Requested: []model.FineRequest{lateFine, damageFine},
						Created:   []model.Fine{{ID: 1}, {ID: 2}},
					}, nil)
			},
			wantCode:   http.StatusOK,
			wantStatus: ledger.StatusReturnedWithFines,
		},
		{
			name:   "partial failure",
			target: "/api/v1/lendings/7/return",
			body:   `{"condition":"damaged","deskripsi":"Sampul sobek","jumlah_denda":20000}`,
			mockBehavior: func(r *service_mocks.MockAdminService) {
				expectSession(r)
				r.EXPECT().Return(gomock.Any(), sess, model.ID(7), assessment).
					Return(ledger.Outcome{
						LendingID: 7,
						Requested: []model.FineRequest{lateFine, damageFine},
						Created:   []model.Fine{{ID: 1}},
						Failed:    []ledger.FailedFine{{Request: damageFine, Reason: "boom"}},
					}, &errs.PartialFailureError{Failed: 1, Total: 2, Causes: []error{errors.New("boom")}})
			},
			wantCode:    http.StatusMultiStatus,
			wantStatus:  ledger.StatusPartialFailure,
			wantMessage: "returned, but 1 of 2 fines failed: boom",
		},
		{
			name:   "err. already returned",
			target: "/api/v1/lendings/7/return",
			body:   `{"condition":"good"}`,
			mockBehavior: func(r *service_mocks.MockAdminService) {
				expectSession(r)
				r.EXPECT().Return(gomock.Any(), sess, model.ID(7), ledger.Assessment{Condition: ledger.Good}).
					Return(ledger.Outcome{}, errs.Validation("id", "lending 7 is already returned"))
			},
			wantCode:    http.StatusBadRequest,
			wantMessage: "id: lending 7 is already returned",
		},
		{
			name:   "err. not found",
			target: "/api/v1/lendings/8/return",
			body:   `{"condition":"good"}`,
			mockBehavior: func(r *service_mocks.MockAdminService) {
				expectSession(r)
				r.EXPECT().Return(gomock.Any(), sess, model.ID(8), gomock.Any()).
					Return(ledger.Outcome{}, errs.NotFound("lending", model.ID(8)))
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:   "err. upstream unavailable",
			target: "/api/v1/lendings/7/return",
			body:   `{"condition":"good"}`,
			mockBehavior: func(r *service_mocks.MockAdminService) {
				expectSession(r)
				r.EXPECT().Return(gomock.Any(), sess, model.ID(7), gomock.Any()).
					Return(ledger.Outcome{}, &errs.TransientRequestError{Op: "PUT peminjaman", Status: http.StatusServiceUnavailable, Err: errors.New("open")})
			},
			wantCode: http.StatusServiceUnavailable,
		},
		{
			name:   "err. bad id",
			target: "/api/v1/lendings/abc/return",
			body:   `{"condition":"good"}`,
			mockBehavior: func(r *service_mocks.MockAdminService) {
				expectSession(r)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:   "err. unknown condition",
			target: "/api/v1/lendings/7/return",
			body:   `{"condition":"wet"}`,
			mockBehavior: func(r *service_mocks.MockAdminService) {
				expectSession(r)
			},
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, e := newServer(t)
			tt.mockBehavior(svc)

			w := serve(e, http.MethodPost, tt.target, tt.body, true)
			require.Equal(t, tt.wantCode, w.Code)

			var body struct {
				Status  ledger.Status `json:"status"`
				Message string        `json:"message"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			if tt.wantStatus != "" {
				require.Equal(t, tt.wantStatus, body.Status)
			}
			if tt.wantMessage != "" {
				require.Equal(t, tt.wantMessage, body.Message)
			}
		})
	}
}

func TestHandler_ListLendingsStatus(t *testing.T) {
	t.Parallel()
	svc, e := newServer(t)

	expectSession(svc)
	w := serve(e, http.MethodGet, "/api/v1/lendings?status=lost", "", true)
	require.Equal(t, http.StatusBadRequest, w.Code)

	expectSession(svc)
	svc.EXPECT().
		ListLendings(gomock.Any(), sess, service.LendingParams{Status: model.LendingOverdue}).
		Return(service.List[model.LendingView]{Page: query.Paginate([]model.LendingView{}, 1, 10)}, nil)
	w = serve(e, http.MethodGet, "/api/v1/lendings?status=overdue", "", true)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_CreateMember(t *testing.T) {
	t.Parallel()
	svc, e := newServer(t)

	expectSession(svc)
	w := serve(e, http.MethodPost, "/api/v1/members", `{"no_ktp":"12345","nama":"Budi","alamat":"Jl. Merdeka 1"}`, true)
	require.Equal(t, http.StatusBadRequest, w.Code)

	req := model.MemberRequest{NationalID: "3201234567890001", Name: "Budi", Address: "Jl. Merdeka 1", BirthDate: model.NewDate(1990, time.May, 17)}
	expectSession(svc)
	svc.EXPECT().CreateMember(gomock.Any(), sess, req).Return(model.Member{ID: 5, Name: "Budi"}, nil)
	w = serve(e, http.MethodPost, "/api/v1/members",
		`{"no_ktp":"3201234567890001","nama":"Budi","alamat":"Jl. Merdeka 1","tgl_lahir":"1990-05-17"}`, true)
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestHandler_PayFine(t *testing.T) {
	t.Parallel()
	svc, e := newServer(t)

	expectSession(svc)
	svc.EXPECT().PayFine(gomock.Any(), sess, model.ID(3)).
		Return(model.Fine{}, errs.Validationf("status", "fine %s is already paid", model.ID(3)))
	w := serve(e, http.MethodPost, "/api/v1/fines/3/pay", "", true)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, `{"message":"status: fine 3 is already paid"}`, strings.Trim(w.Body.String(), "\n"))

	expectSession(svc)
	svc.EXPECT().PayFine(gomock.Any(), sess, model.ID(4)).Return(model.Fine{ID: 4, Status: model.FinePaid}, nil)
	w = serve(e, http.MethodPost, "/api/v1/fines/4/pay", "", true)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_BorrowWithoutDates(t *testing.T) {
	t.Parallel()
	svc, e := newServer(t)

	expectSession(svc)
	svc.EXPECT().Borrow(gomock.Any(), sess, model.LendingRequest{BookID: 1, MemberID: 2}).
		Return(model.Lending{}, errs.Validation("tgl_pinjam", "borrow date is required"))
	w := serve(e, http.MethodPost, "/api/v1/lendings", `{"id_buku":1,"id_member":2}`, true)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, `{"message":"tgl_pinjam: borrow date is required"}`, strings.Trim(w.Body.String(), "\n"))
}
