package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shopcart/internal/service"
	"github.com/Skotchmaster/shopcart/internal/transport"
	"github.com/Skotchmaster/shopcart/pkg/logging"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_failed", "status", 400, "reason", "invalid body", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail(msgInvalidBody))
	}

	user, err := h.Svc.Register(ctx, service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		FullName: req.Fullname,
	})
	if err != nil {
		status, msg := failure(err, "")
		if status >= http.StatusInternalServerError {
			l.Error("register_failed", "status", status, "error", err)
		} else {
			l.Warn("register_failed", "status", status, "error", err)
		}
		return c.JSON(status, transport.Fail(msg))
	}

	l.Info("register_success", "user_id", user.ID)
	return c.JSON(http.StatusCreated, transport.OK("User registration successful", nil))
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "invalid body", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail(msgInvalidBody))
	}

	user, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		status, msg := failure(err, "")
		if status >= http.StatusInternalServerError {
			l.Error("login_failed", "status", status, "error", err)
		} else {
			l.Warn("login_failed", "status", status, "error", err)
		}
		return c.JSON(status, transport.Fail(msg))
	}

	l.Info("login_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, transport.OK("Login successful", transport.LoginData{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}))
}
