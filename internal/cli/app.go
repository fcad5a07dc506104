// Package cli はログイン・登録フォームの対話型ターミナルクライアントauthcliを実装します。
// セッションフラグはローカルストアに保存され、ブラウザのストレージと同様に再起動後も残ります。
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"courtside_auth/internal/feature/auth/domain"
	"courtside_auth/internal/feature/auth/usecase"
)

// App はauthcliアプリケーションです。
type App struct {
	users        usecase.UserDirectory
	flags        *usecase.SessionFlags
	hasher       usecase.PasswordHasher
	redirectPath string

	reader *bufio.Reader
	out    io.Writer
	fd     int
}

// NewApp はinから読みoutへ書き込むAppを生成します。
func NewApp(users usecase.UserDirectory, flags *usecase.SessionFlags, hasher usecase.PasswordHasher, redirectPath string, in io.Reader, out io.Writer) *App {
	return &App{
		users:        users,
		flags:        flags,
		hasher:       hasher,
		redirectPath: redirectPath,
		reader:       bufio.NewReader(in),
		out:          out,
		fd:           int(os.Stdin.Fd()),
	}
}

func (a *App) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}

// showError はフォームのインライン表示と同じ形でエラーを出力します。
func (a *App) showError(err error) {
	a.printf("Error: %s\n", domain.Message(err))
}

// Login はログインフォームをマウントし、認証情報を入力させて送信します。
func (a *App) Login(ctx context.Context) error {
	form := usecase.NewLoginForm(a.users, a.flags, a.hasher, a.redirectPath)
	if err := form.Mount(ctx); err != nil {
		slog.Warn("failed to load users", "error", err)
		a.showError(err)
	}

	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	pw, err := GetPassword(a.reader, a.fd, a.out)
	if err != nil {
		return err
	}

	user, err := form.Submit(ctx, usecase.LoginInput{Email: email, Password: pw})
	if err != nil {
		a.showError(err)
		return err
	}
	a.printf("Welcome back, %s! Redirecting to %s\n", user.Username, form.RedirectTo())
	return nil
}

// Register は登録フォームをマウントし、新しいアカウント情報を入力させて送信します。
func (a *App) Register(ctx context.Context) error {
	form := usecase.NewRegisterForm(a.users, a.flags, a.hasher, a.redirectPath)
	if err := form.Mount(ctx); err != nil {
		slog.Warn("failed to load users", "error", err)
		a.showError(err)
	}

	username, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	pw, err := GetPassword(a.reader, a.fd, a.out)
	if err != nil {
		return err
	}

	user, err := form.Submit(ctx, usecase.RegisterInput{Username: username, Email: email, Password: pw})
	if err != nil {
		a.showError(err)
		return err
	}
	a.printf("Welcome, %s! Redirecting to %s\n", user.Username, form.RedirectTo())
	return nil
}

// Status はセッションフラグを表示します。
func (a *App) Status(ctx context.Context) error {
	ok, err := a.flags.IsAuthenticated(ctx)
	if err != nil {
		a.showError(err)
		return err
	}
	if !ok {
		a.printf("Not logged in\n")
		return nil
	}
	name, err := a.flags.Username(ctx)
	if err != nil {
		a.showError(err)
		return err
	}
	a.printf("Logged in as %s\n", name)
	return nil
}

// Logout はセッションフラグを削除します。
func (a *App) Logout(ctx context.Context) error {
	if err := a.flags.Clear(ctx); err != nil {
		a.showError(err)
		return err
	}
	a.printf("Logged out\n")
	return nil
}

// prompt は現在のセッションに応じたREPLのプロンプトを返します。
func (a *App) prompt(ctx context.Context) string {
	ok, err := a.flags.IsAuthenticated(ctx)
	if err != nil || !ok {
		return "authcli> "
	}
	name, _ := a.flags.Username(ctx)
	return fmt.Sprintf("authcli (%s)> ", name)
}

// Run はREPLを開始し、exitまたは入力終端までブロックします。
func (a *App) Run(ctx context.Context) error {
	return runREPL(ctx, a, a.reader, a.out)
}
