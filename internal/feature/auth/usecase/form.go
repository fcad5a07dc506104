package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"courtside_auth/internal/feature/auth/domain"
	"courtside_auth/internal/feature/auth/domain/entity"
)

// FormState はログイン・登録フォームのUI状態です。
type FormState int

const (
	// StateIdle は入力と送信を受け付けます。
	StateIdle FormState = iota
	// StateSubmitting は同期バリデーション通過後の状態です。
	StateSubmitting
	// StateRedirected は終端状態です。セッションフラグは書き込み済みで、クライアントは遷移します。
	StateRedirected
)

func (s FormState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateRedirected:
		return "redirected"
	default:
		return fmt.Sprintf("FormState(%d)", int(s))
	}
}

// UserDirectory はフォームがユーザーを取得・作成する先です。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserDirectory interface {
	// GetUsers は参照ユーザーコレクションを保存順に返します。
	GetUsers(ctx context.Context) ([]entity.User, error)

	// CreateUser はパスワードがハッシュ化済みの新規ユーザーを永続化します。
	CreateUser(ctx context.Context, user *entity.User) error
}

// form はLoginFormとRegisterFormが共有する状態を保持します。
type form struct {
	users        UserDirectory
	flags        *SessionFlags
	hasher       PasswordHasher
	redirectPath string

	mu         sync.Mutex
	state      FormState
	inFlight   bool
	collection []entity.User
	loaded     bool
	loadErr    error
	lastErr    error
}

func (f *form) init(users UserDirectory, flags *SessionFlags, hasher PasswordHasher, redirectPath string) {
	f.users = users
	f.flags = flags
	f.hasher = hasher
	f.redirectPath = redirectPath
	f.loadErr = domain.ErrUserCollectionUnavailable
}

// Mount は参照ユーザーコレクションを取得します。失敗は記録され、
// 次の送信時に報告されます。フォームは引き続き使用できます。
func (f *form) Mount(ctx context.Context) error {
	users, err := f.users.GetUsers(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.collection = nil
		f.loaded = false
		f.loadErr = fmt.Errorf("%w: %w", domain.ErrUserCollectionUnavailable, err)
		f.lastErr = f.loadErr
		return f.loadErr
	}
	if users == nil {
		users = []entity.User{}
	}
	f.collection = users
	f.loaded = true
	f.loadErr = nil
	return nil
}

// State は現在の状態を返します。
func (f *form) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// LastError はインライン表示中のエラーを返します。無ければnilです。
func (f *form) LastError() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// RedirectTo はリダイレクト後は遷移先パスを、それ以前は""を返します。
func (f *form) RedirectTo() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateRedirected {
		return ""
	}
	return f.redirectPath
}

// begin はフォームを1回の送信のために確保します。
func (f *form) begin() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch {
	case f.state == StateRedirected:
		return ErrAlreadyRedirected
	case f.inFlight:
		return ErrSubmissionInProgress
	}
	f.inFlight = true
	f.lastErr = nil
	return nil
}

// snapshot は取得済みのコレクションを返します。未取得ならマウント時のエラーを返します。
func (f *form) snapshot() ([]entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.loaded {
		return nil, f.loadErr
	}
	return f.collection, nil
}

func (f *form) submitting() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = StateSubmitting
}

func (f *form) fail(err error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = StateIdle
	f.inFlight = false
	f.lastErr = err
	return err
}

func (f *form) redirected() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = StateRedirected
	f.inFlight = false
}

func (f *form) authenticate(ctx context.Context, user *entity.User) error {
	if err := f.flags.SetAuthenticated(ctx, user.Username); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSomethingWentWrong, err)
	}
	return nil
}

// LoginForm は認証情報を参照コレクションと照合し、セッションを認証済みにします。
type LoginForm struct {
	form
}

// NewLoginForm はIdle状態の未マウントのログインフォームを生成します。
func NewLoginForm(users UserDirectory, flags *SessionFlags, hasher PasswordHasher, redirectPath string) *LoginForm {
	f := &LoginForm{}
	f.init(users, flags, hasher, redirectPath)
	return f
}

// Submit はログイン処理を実行します。拒否された場合、フォームはIdleに戻りLastErrorが設定されます。
func (f *LoginForm) Submit(ctx context.Context, in LoginInput) (*entity.User, error) {
	if err := f.begin(); err != nil {
		return nil, err
	}
	users, loadErr := f.snapshot()
	if loadErr != nil {
		if err := requireFields(in.Email, in.Password); err != nil {
			return nil, f.fail(err)
		}
		return nil, f.fail(loadErr)
	}

	user, err := ValidateLogin(in, users, f.hasher)
	if err != nil {
		return nil, f.fail(err)
	}

	f.submitting()
	if err := f.authenticate(ctx, user); err != nil {
		return nil, f.fail(err)
	}
	f.redirected()
	return user, nil
}

// RegisterForm は新規アカウントを検証してユーザーディレクトリ経由で作成し、セッションを認証済みにします。
type RegisterForm struct {
	form
}

// NewRegisterForm はIdle状態の未マウントの登録フォームを生成します。
func NewRegisterForm(users UserDirectory, flags *SessionFlags, hasher PasswordHasher, redirectPath string) *RegisterForm {
	f := &RegisterForm{}
	f.init(users, flags, hasher, redirectPath)
	return f
}

// Submit は登録処理を実行します。拒否された場合、フォームはIdleに戻りLastErrorが設定されます。
func (f *RegisterForm) Submit(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if err := f.begin(); err != nil {
		return nil, err
	}
	// コレクションが無いとメール重複チェックができない
	users, loadErr := f.snapshot()
	if loadErr != nil {
		if err := requireFields(in.Username, in.Email, in.Password); err != nil {
			return nil, f.fail(err)
		}
		return nil, f.fail(loadErr)
	}

	user, err := ValidateRegistration(in, users, f.hasher)
	if err != nil {
		return nil, f.fail(err)
	}

	f.submitting()
	if err := f.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return nil, f.fail(err)
		}
		return nil, f.fail(fmt.Errorf("%w: %w", domain.ErrSomethingWentWrong, err))
	}
	if err := f.authenticate(ctx, user); err != nil {
		return nil, f.fail(err)
	}
	f.redirected()
	return user, nil
}
