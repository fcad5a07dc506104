package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"courtside_auth/internal/feature/auth/domain"
	"courtside_auth/internal/feature/auth/domain/entity"
	"courtside_auth/internal/feature/auth/transport/http/dto"
)

// UsersUsecase はクライアント側フォームにユーザーコレクションを公開します。
type UsersUsecase interface {
	ListUsers(ctx context.Context) ([]entity.User, error)
	CreateUser(ctx context.Context, user *entity.User) error
}

// UsersHandler は/usersを提供します。フォームはマウント時にここから取得し、ここを通して作成します。
type UsersHandler struct {
	users UsersUsecase
}

// NewUsersHandler はUsersHandlerの新しいインスタンスを生成します。
func NewUsersHandler(users UsersUsecase) *UsersHandler {
	return &UsersHandler{users: users}
}

// List はGET /usersを処理します。
func (h *UsersHandler) List(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		slog.Error("failed to list users", "error", err)
		c.JSON(http.StatusServiceUnavailable, dto.ErrorRes{
			Error: domain.Message(domain.ErrUserCollectionUnavailable),
			Code:  domain.Code(domain.ErrUserCollectionUnavailable),
		})
		return
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, users)
}

// Create はPOST /usersを処理します。パスワードはbcryptハッシュ済みである必要があります。
func (h *UsersHandler) Create(c *gin.Context) {
	var req dto.CreateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: domain.Message(domain.ErrAllFieldsRequired), Code: domain.Code(domain.ErrAllFieldsRequired)})
		return
	}
	if _, err := bcrypt.Cost([]byte(req.Password)); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "password must be a bcrypt hash", Code: "InvalidRequest"})
		return
	}

	user := &entity.User{ID: req.ID, Username: req.Username, Email: req.Email, Password: req.Password}
	if err := h.users.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			c.JSON(http.StatusConflict, dto.ErrorRes{Error: domain.Message(err), Code: domain.Code(err)})
			return
		}
		slog.Error("failed to create user", "error", err, "email", req.Email)
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: domain.Message(err), Code: domain.Code(err)})
		return
	}
	c.JSON(http.StatusCreated, user)
}
