package usecase

import (
	"context"

	"courtside_auth/internal/feature/auth/domain/entity"
)

// Result はフォーム送信の成功結果です。
type Result struct {
	User       *entity.User
	RedirectTo string
}

// SessionStatus はクライアントのセッションフラグの現在の内容です。
type SessionStatus struct {
	Authenticated bool
	Username      string
}

// authUsecase は複数クライアントのフォームを処理します。呼び出しごとに新しいフォームをマウントし
// （ブラウザがページ読み込みごとにコンポーネントをマウントするのと同じ）、
// セッションフラグを呼び出し元クライアントに限定します。
type authUsecase struct {
	users        UserDirectory
	store        KeyValueStore
	hasher       PasswordHasher
	redirectPath string
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserDirectory, store KeyValueStore, hasher PasswordHasher, redirectPath string) *authUsecase {
	return &authUsecase{
		users:        users,
		store:        store,
		hasher:       hasher,
		redirectPath: redirectPath,
	}
}

// Flags はclientIDのセッションフラグを返します。
func (u *authUsecase) Flags(clientID string) *SessionFlags {
	return NewSessionFlags(u.store, sessionNamespace(clientID))
}

func sessionNamespace(clientID string) string {
	if clientID == "" {
		return ""
	}
	return "session:" + clientID
}

// NewLoginForm はclientIDのセッションフラグに紐づく未マウントのログインフォームを生成します。
func (u *authUsecase) NewLoginForm(clientID string) *LoginForm {
	return NewLoginForm(u.users, u.Flags(clientID), u.hasher, u.redirectPath)
}

// NewRegisterForm はclientIDのセッションフラグに紐づく未マウントの登録フォームを生成します。
func (u *authUsecase) NewRegisterForm(clientID string) *RegisterForm {
	return NewRegisterForm(u.users, u.Flags(clientID), u.hasher, u.redirectPath)
}

// Login はログインフォームをマウントしてinを送信します。
// マウントの失敗は直接返さず、送信時の拒否理由として返ります。
func (u *authUsecase) Login(ctx context.Context, clientID string, in LoginInput) (*Result, error) {
	f := u.NewLoginForm(clientID)
	_ = f.Mount(ctx)

	user, err := f.Submit(ctx, in)
	if err != nil {
		return nil, err
	}
	return &Result{User: user, RedirectTo: f.RedirectTo()}, nil
}

// Register は登録フォームをマウントしてinを送信します。
func (u *authUsecase) Register(ctx context.Context, clientID string, in RegisterInput) (*Result, error) {
	f := u.NewRegisterForm(clientID)
	_ = f.Mount(ctx)

	user, err := f.Submit(ctx, in)
	if err != nil {
		return nil, err
	}
	return &Result{User: user, RedirectTo: f.RedirectTo()}, nil
}

// Session はclientIDのセッションフラグを読み取ります。
func (u *authUsecase) Session(ctx context.Context, clientID string) (SessionStatus, error) {
	flags := u.Flags(clientID)
	ok, err := flags.IsAuthenticated(ctx)
	if err != nil {
		return SessionStatus{}, err
	}
	if !ok {
		return SessionStatus{}, nil
	}
	name, err := flags.Username(ctx)
	if err != nil {
		return SessionStatus{}, err
	}
	return SessionStatus{Authenticated: true, Username: name}, nil
}

// Logout はclientIDのセッションフラグを削除します。
func (u *authUsecase) Logout(ctx context.Context, clientID string) error {
	return u.Flags(clientID).Clear(ctx)
}

// ListUsers はユーザーディレクトリが返す参照コレクションをそのまま返します。
func (u *authUsecase) ListUsers(ctx context.Context) ([]entity.User, error) {
	return u.users.GetUsers(ctx)
}

// CreateUser はクライアント側フォームから渡されたユーザーレコードを保存します。
// パスワードはハッシュ化済みである必要があり、重複はディレクトリ側で拒否されます。
func (u *authUsecase) CreateUser(ctx context.Context, user *entity.User) error {
	return u.users.CreateUser(ctx, user)
}
