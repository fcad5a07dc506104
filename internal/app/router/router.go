// Package router はHTTPルートとハンドラーを結び付けます。
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "courtside_auth/internal/feature/auth/transport/handler"
	platformhandler "courtside_auth/internal/platform/http/handler"
	"courtside_auth/internal/shared/ratelimiter"
)

// Handlers はルーターがマウントするハンドラーをまとめます。
type Handlers struct {
	Auth    *authhandler.AuthHandler
	Users   *authhandler.UsersHandler
	Health  *platformhandler.Health
	Limiter *ratelimiter.RateLimiter
}

// NewRouter はginエンジンを構築します。CORSはallowedOriginsが空でない場合のみ有効です。
// client_id Cookieをクロスオリジンで送れるよう、credentialsを許可します。
func NewRouter(h Handlers, allowedOrigins []string) *gin.Engine {
	r := gin.Default()

	if len(allowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     allowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// 導通確認用
	r.GET("/healthz", h.Health.Live)
	r.HEAD("/healthz", h.Health.Live)
	r.OPTIONS("/healthz", h.Health.Live)
	r.GET("/readyz", h.Health.Ready)

	// ユーザーコレクション（フォームのマウント時に取得）
	r.GET("/users", h.Users.List)

	// フォーム送信はクライアントIPごとにレート制限
	submit := r.Group("/")
	if h.Limiter != nil {
		submit.Use(h.Limiter.Middleware())
	}
	{
		submit.POST("/users", h.Users.Create)
		submit.POST("/login", h.Auth.Login)
		submit.POST("/register", h.Auth.Register)
	}

	r.GET("/session", h.Auth.Session)
	r.POST("/logout", h.Auth.Logout)

	return r
}
