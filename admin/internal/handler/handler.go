package handler

import (
	"net/http"

	"github.com/Astemirdum/library-admin/admin/internal/ledger"
	"github.com/Astemirdum/library-admin/admin/internal/model"
	"github.com/Astemirdum/library-admin/admin/internal/service"
	mw "github.com/Astemirdum/library-admin/pkg/middleware"
	"github.com/Astemirdum/library-admin/pkg/validate"
	_ "github.com/Astemirdum/library-admin/swagger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

type Handler struct {
	svc AdminService
	log *zap.Logger
}

func New(svc AdminService, log *zap.Logger) *Handler {
	return &Handler{
		svc: svc,
		log: log.Named("handler"),
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.HTTPErrorHandler = h.errorHandler(e.DefaultHTTPErrorHandler)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", mw.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()

	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(mw.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		mw.NewRateLimiter(apiRPS),
	)
	h.routes(api)
	return e
}

func (h *Handler) routes(api *echo.Group) {
	api.POST("/login", h.Login)

	api = api.Group("", h.sessionMW)
	api.POST("/logout", h.Logout)
	api.GET("/me", h.Me)

	api.GET("/dashboard", h.Dashboard)

	api.GET("/books", h.ListBooks)
	api.GET("/books/options", h.BookOptions)
	api.GET("/books/:id", h.GetBook)
	api.POST("/books", h.CreateBook)
	api.PUT("/books/:id", h.UpdateBook)
	api.DELETE("/books/:id", h.DeleteBook)

	api.GET("/members", h.ListMembers)
	api.POST("/members", h.CreateMember)
	api.PUT("/members/:id", h.UpdateMember)
	api.DELETE("/members/:id", h.DeleteMember)

	api.GET("/lendings", h.ListLendings)
	api.POST("/lendings", h.Borrow)
	api.GET("/lendings/:id/return-preview", h.ReturnPreview)
	api.POST("/lendings/:id/return", h.Return)

	api.GET("/fines", h.ListFines)
	api.GET("/fines/summary", h.FineSummary)
	api.POST("/fines", h.CreateFine)
	api.POST("/fines/:id/pay", h.PayFine)
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

type loginResponse struct {
	SessionID string        `json:"sessionId"`
	User      model.Session `json:"user"`
}

// Login godoc
// @Summary sign in against the library API
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "credentials"
// @Success 200 {object} loginResponse
// @Router /api/v1/login [post]
func (h *Handler) Login(c echo.Context) error {
	var req model.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	sess, err := h.svc.Login(c.Request().Context(), req)
	if err != nil {
		return err
	}
	c.SetCookie(sessionCookie(sess))
	return c.JSON(http.StatusOK, loginResponse{SessionID: sess.ID, User: sess})
}

func (h *Handler) Logout(c echo.Context) error {
	sess := currentSession(c)
	if err := h.svc.Logout(c.Request().Context(), sess.ID); err != nil {
		return err
	}
	c.SetCookie(expiredCookie())
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, currentSession(c))
}

func (h *Handler) Dashboard(c echo.Context) error {
	var limit int
	if err := echo.QueryParamsBinder(c).Int("limit", &limit).BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d, err := h.svc.Dashboard(c.Request().Context(), currentSession(c), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

func bindList(c echo.Context, p *service.ListParams) *echo.ValueBinder {
	return echo.QueryParamsBinder(c).
		String("search", &p.Search).
		String("sort", &p.Sort).
		String("order", &p.Order).
		Int("page", &p.Page).
		Int("size", &p.Size)
}

func pathID(c echo.Context) (model.ID, error) {
	id, err := model.ParseID(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return id, nil
}

// ListBooks godoc
// @Summary list books
// @Tags books
// @Produce json
// @Param search query string false "title, author, publisher or shelf"
// @Param tahun_terbit query string false "year"
// @Param penerbit query string false "publisher"
// @Param sort query string false "sort key"
// @Param order query string false "asc or desc"
// @Param page query int false "page, 1-indexed"
// @Param size query int false "page size"
// @Router /api/v1/books [get]
func (h *Handler) ListBooks(c echo.Context) error {
	var p service.BookParams
	if err := bindList(c, &p.ListParams).
		String("tahun_terbit", &p.Year).
		String("penerbit", &p.Publisher).
		BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	books, err := h.svc.ListBooks(c.Request().Context(), currentSession(c), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) BookOptions(c echo.Context) error {
	opts, err := h.svc.BookOptions(c.Request().Context(), currentSession(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, opts)
}

func (h *Handler) GetBook(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	book, err := h.svc.GetBook(c.Request().Context(), currentSession(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) CreateBook(c echo.Context) error {
	var req model.BookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	book, err := h.svc.CreateBook(c.Request().Context(), currentSession(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, book)
}

func (h *Handler) UpdateBook(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req model.BookRequest
	if err = c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err = c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	book, err := h.svc.UpdateBook(c.Request().Context(), currentSession(c), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) DeleteBook(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err = h.svc.DeleteBook(c.Request().Context(), currentSession(c), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListMembers(c echo.Context) error {
	var p service.ListParams
	if err := bindList(c, &p).BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	members, err := h.svc.ListMembers(c.Request().Context(), currentSession(c), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, members)
}

func (h *Handler) CreateMember(c echo.Context) error {
	var req model.MemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	m, err := h.svc.CreateMember(c.Request().Context(), currentSession(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *Handler) UpdateMember(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req model.MemberRequest
	if err = c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err = c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	m, err := h.svc.UpdateMember(c.Request().Context(), currentSession(c), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) DeleteMember(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err = h.svc.DeleteMember(c.Request().Context(), currentSession(c), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListLendings godoc
// @Summary list lendings with their status
// @Tags lendings
// @Produce json
// @Param search query string false "book, member or date"
// @Param status query string false "active, returned or overdue"
// @Router /api/v1/lendings [get]
func (h *Handler) ListLendings(c echo.Context) error {
	var (
		p      service.LendingParams
		status string
	)
	if err := bindList(c, &p.ListParams).String("status", &status).BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.Status = model.LendingStatus(status)
	switch p.Status {
	case "", model.LendingActive, model.LendingReturned, model.LendingOverdue:
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "unknown lending status "+status)
	}
	lendings, err := h.svc.ListLendings(c.Request().Context(), currentSession(c), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, lendings)
}

func (h *Handler) Borrow(c echo.Context) error {
	var req model.LendingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	lending, err := h.svc.Borrow(c.Request().Context(), currentSession(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, lending)
}

func (h *Handler) ReturnPreview(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	p, err := h.svc.ReturnPreview(c.Request().Context(), currentSession(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

type returnResponse struct {
	ledger.Outcome
	Status  ledger.Status `json:"status"`
	Total   model.Rupiah  `json:"total_denda"`
	Message string        `json:"message,omitempty"`
}

// Return godoc
// @Summary return a lending and record its fines
// @Tags lendings
// @Accept json
// @Produce json
// @Param id path int true "lending id"
// @Param request body ledger.Assessment true "book condition"
// @Success 200 {object} returnResponse
// @Success 207 {object} returnResponse "returned, some fines failed"
// @Router /api/v1/lendings/{id}/return [post]
func (h *Handler) Return(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var a ledger.Assessment
	if err = c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err = c.Validate(a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	out, err := h.svc.Return(c.Request().Context(), currentSession(c), id, a)
	resp := returnResponse{Outcome: out, Status: out.Status(), Total: out.TotalFines()}
	if isPartial(err) {
		resp.Message = err.Error()
		return c.JSON(http.StatusMultiStatus, resp)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) ListFines(c echo.Context) error {
	var (
		p      service.FineParams
		status string
	)
	if err := bindList(c, &p.ListParams).String("status", &status).BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.Status = model.FineStatus(status)
	fines, err := h.svc.ListFines(c.Request().Context(), currentSession(c), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fines)
}

func (h *Handler) FineSummary(c echo.Context) error {
	s, err := h.svc.FineSummary(c.Request().Context(), currentSession(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

func (h *Handler) CreateFine(c echo.Context) error {
	var req model.FineRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	fine, err := h.svc.CreateFine(c.Request().Context(), currentSession(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, fine)
}

func (h *Handler) PayFine(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	fine, err := h.svc.PayFine(c.Request().Context(), currentSession(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fine)
}
