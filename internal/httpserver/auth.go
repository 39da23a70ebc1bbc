package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/senkudev/otaku_shop/internal/logging"
	"github.com/senkudev/otaku_shop/internal/service"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

// forgotPasswordMessage is identical whether or not the email exists.
const forgotPasswordMessage = "if the email is registered, a reset link has been sent"

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		FirstName   string `json:"first_name"`
		LastName    string `json:"last_name"`
		Phone       string `json:"phone"`
		AcceptTerms bool   `json:"accept_terms"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return respondFail(c, http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, service.RegisterInput{
		Email:         req.Email,
		Password:      req.Password,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Phone:         req.Phone,
		AcceptedTerms: req.AcceptTerms,
	})
	if err != nil {
		l.Warn("register_error", "error", err)
		return respondServiceError(c, err)
	}

	return respondMessageData(c, http.StatusCreated, "registered, please verify your email", user)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req struct {
		Email      string `json:"email"`
		Password   string `json:"password"`
		RememberMe bool   `json:"remember_me"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return respondFail(c, http.StatusBadRequest, "invalid body")
	}

	user, pair, err := h.Svc.Login(ctx, req.Email, req.Password, req.RememberMe)
	if err != nil {
		l.Warn("login_error", "error", err)
		return respondServiceError(c, err)
	}

	return respondData(c, http.StatusOK, echo.Map{
		"user":   user,
		"tokens": pair,
	})
}

func (h *AuthHTTP) FederatedLogin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.federated_login")

	var req struct {
		Provider    string `json:"provider"`
		AccessToken string `json:"access_token"`
	}
	if err := c.Bind(&req); err != nil || req.Provider == "" || req.AccessToken == "" {
		l.Warn("federated_login_error", "status", 400)
		return respondFail(c, http.StatusBadRequest, "provider and access_token required")
	}

	user, pair, err := h.Svc.FederatedLogin(ctx, req.Provider, req.AccessToken)
	if err != nil {
		l.Warn("federated_login_error", "error", err)
		return respondServiceError(c, err)
	}

	return respondData(c, http.StatusOK, echo.Map{
		"user":   user,
		"tokens": pair,
	})
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.refresh")

	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.Bind(&req); err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid body")
	}

	pair, err := h.Svc.Refresh(ctx, req.RefreshToken)
	if err != nil {
		l.Warn("refresh_error", "error", err)
		return respondServiceError(c, err)
	}

	return respondData(c, http.StatusOK, pair)
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	userID, err := userIDFromContext(c)
	if err != nil {
		return respondFail(c, http.StatusUnauthorized, "unauthorized")
	}

	if err := h.Svc.Logout(ctx, userID); err != nil {
		l.Error("logout_error", "error", err)
		return respondServiceError(c, err)
	}

	return respondMessage(c, http.StatusOK, "logged out")
}

func (h *AuthHTTP) ForgotPassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.forgot_password")

	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.ForgotPassword(ctx, req.Email); err != nil {
		l.Error("forgot_password_error", "error", err)
		return respondServiceError(c, err)
	}

	return respondMessage(c, http.StatusOK, forgotPasswordMessage)
}

func (h *AuthHTTP) ResetPassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.reset_password")

	var req struct {
		Token                string `json:"token"`
		Password             string `json:"password"`
		PasswordConfirmation string `json:"password_confirmation"`
	}
	if err := c.Bind(&req); err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.ResetPassword(ctx, req.Token, req.Password, req.PasswordConfirmation); err != nil {
		l.Warn("reset_password_error", "error", err)
		return respondServiceError(c, err)
	}

	return respondMessage(c, http.StatusOK, "password updated, please log in again")
}

// VerifyEmail serves both POST /auth/verify-email (token in body) and
// GET /auth/verify (token in query).
func (h *AuthHTTP) VerifyEmail(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.verify_email")

	token := c.QueryParam("token")
	if token == "" {
		var req struct {
			Token string `json:"token"`
		}
		if err := c.Bind(&req); err == nil {
			token = req.Token
		}
	}

	if err := h.Svc.VerifyEmail(ctx, token); err != nil {
		l.Warn("verify_email_error", "error", err)
		return respondServiceError(c, err)
	}

	return respondMessage(c, http.StatusOK, "email verified")
}
