package handler

import (
	"net/http"

	"github.com/Astemirdum/library-admin/admin/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func isPartial(err error) bool {
	var p *errs.PartialFailureError
	return errors.As(err, &p)
}

// httpError maps service errors onto status codes. Unknown errors become 500.
func httpError(err error) *echo.HTTPError {
	var (
		he *echo.HTTPError
		ve *errs.ValidationError
		te *errs.TransientRequestError
	)
	switch {
	case errors.As(err, &he):
		return he
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusBadRequest, ve.Error())
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrAuthExpired), errors.Is(err, errs.ErrNoSession):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.As(err, &te):
		if te.Status == http.StatusServiceUnavailable {
			return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func (h *Handler) errorHandler(next echo.HTTPErrorHandler) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		he := httpError(err)
		if he.Code >= http.StatusInternalServerError {
			h.log.Error("request failed", zap.String("uri", c.Request().RequestURI), zap.Error(err))
		}
		next(he, c)
	}
}
