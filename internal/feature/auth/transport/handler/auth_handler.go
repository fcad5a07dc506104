// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"courtside_auth/internal/feature/auth/domain"
	"courtside_auth/internal/feature/auth/transport/http/dto"
	"courtside_auth/internal/feature/auth/usecase"
)

// ClientCookie はブラウザを識別するCookie名です。セッションフラグはこの単位で分かれます。
const ClientCookie = "client_id"

const clientCookieMaxAge = 365 * 24 * 60 * 60

// AuthUsecase は認証フォームのユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	Login(ctx context.Context, clientID string, in usecase.LoginInput) (*usecase.Result, error)
	Register(ctx context.Context, clientID string, in usecase.RegisterInput) (*usecase.Result, error)
	Session(ctx context.Context, clientID string) (usecase.SessionStatus, error)
	Logout(ctx context.Context, clientID string) error
}

// AuthHandler はログイン・登録フォームのHTTPリクエストを処理します。
// JSONクライアントにはJSONを、HTMLフォームには303リダイレクトを返します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login はPOST /loginを処理します。
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBind(&req); err != nil {
		slog.Warn("login bind failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request", Code: "InvalidRequest"})
		return
	}
	clientID := h.clientID(c)

	res, err := h.auth.Login(c.Request.Context(), clientID.String(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		slog.Warn("login rejected", "code", domain.Code(err), "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		h.reject(c, err)
		return
	}
	slog.Info("user login successful", "user", res.User.Username, "remote_addr", c.ClientIP())
	h.succeed(c, res)
}

// Register はPOST /registerを処理します。
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBind(&req); err != nil {
		slog.Warn("register bind failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request", Code: "InvalidRequest"})
		return
	}
	clientID := h.clientID(c)

	res, err := h.auth.Register(c.Request.Context(), clientID.String(), usecase.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		slog.Warn("registration rejected", "code", domain.Code(err), "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		h.reject(c, err)
		return
	}
	slog.Info("user registration successful", "user", res.User.Username, "id", res.User.ID, "remote_addr", c.ClientIP())
	h.succeed(c, res)
}

// Session はGET /sessionを処理し、呼び出し元のセッションフラグを返します。
func (h *AuthHandler) Session(c *gin.Context) {
	clientID := h.clientID(c)
	status, err := h.auth.Session(c.Request.Context(), clientID.String())
	if err != nil {
		slog.Error("failed to read session flag", "error", err)
		h.reject(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, dto.SessionRes{
		ClientID:        clientID,
		IsAuthenticated: status.Authenticated,
		User:            status.Username,
	})
}

// Logout はPOST /logoutを処理し、呼び出し元のセッションフラグを削除します。
func (h *AuthHandler) Logout(c *gin.Context) {
	clientID := h.clientID(c)
	if err := h.auth.Logout(c.Request.Context(), clientID.String()); err != nil {
		slog.Error("failed to clear session flag", "error", err)
		h.reject(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// clientID は呼び出し元のclient_idを返します。無い場合や不正な場合は新しく発行します。
func (h *AuthHandler) clientID(c *gin.Context) openapi_types.UUID {
	if raw, err := c.Cookie(ClientCookie); err == nil {
		if id, err := uuid.Parse(raw); err == nil {
			return id
		}
	}
	id := uuid.New()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ClientCookie, id.String(), clientCookieMaxAge, "/", "", false, true)
	return id
}

func (h *AuthHandler) succeed(c *gin.Context, res *usecase.Result) {
	if isHTMLForm(c) {
		c.Redirect(http.StatusSeeOther, res.RedirectTo)
		return
	}
	c.JSON(http.StatusOK, dto.AuthRes{Message: "ok", Redirect: res.RedirectTo, User: res.User.Username})
}

func (h *AuthHandler) reject(c *gin.Context, err error) {
	c.JSON(statusFor(err), dto.ErrorRes{Error: domain.Message(err), Code: domain.Code(err)})
}

func isHTMLForm(c *gin.Context) bool {
	switch c.ContentType() {
	case gin.MIMEPOSTForm, gin.MIMEMultipartPOSTForm:
		return true
	}
	return false
}

// statusFor は拒否理由をHTTPステータスに対応付けます。
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrAllFieldsRequired),
		errors.Is(err, domain.ErrEmailNotValid),
		errors.Is(err, domain.ErrPasswordTooShort):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrEmailNotFound),
		errors.Is(err, domain.ErrPasswordMismatch):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUserCollectionUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
