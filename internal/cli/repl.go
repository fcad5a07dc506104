package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface はREPLがコマンドを振り分ける先です。
type execIface interface {
	prompt(ctx context.Context) string
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Status(ctx context.Context) error
	Logout(ctx context.Context) error
}

const helpText = "Available commands: login, register, status, logout, help, exit"

// runREPL は1行ごとにコマンドを読み込んで実行します。コマンドのエラーは
// 各ハンドラーが表示済みなので、ループは継続します。
// "exit"・"quit"・入力終端でnilを返します。
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader, w io.Writer) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		if _, err := fmt.Fprint(w, a.prompt(ctx)); err != nil {
			return err
		}
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		eof := err != nil

		parts := strings.Fields(line)
		if len(parts) == 0 {
			if eof {
				_, _ = fmt.Fprintln(w)
				return nil
			}
			continue
		}

		switch parts[0] {
		case "help":
			_, _ = fmt.Fprintln(w, helpText)
		case "login":
			_ = a.Login(ctx)
		case "register":
			_ = a.Register(ctx)
		case "status":
			_ = a.Status(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "exit", "quit":
			_, _ = fmt.Fprintln(w, "Bye!")
			return nil
		default:
			_, _ = fmt.Fprintln(w, "Unknown command:", parts[0])
		}
		if eof {
			return nil
		}
	}
}
