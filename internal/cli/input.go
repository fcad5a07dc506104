package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// readPassword はterm.ReadPasswordのテスト用差し替えポイントです。
var readPassword = term.ReadPassword

// isTerminal はterm.IsTerminalのテスト用差し替えポイントです。
var isTerminal = term.IsTerminal

// GetSimpleText はwにプロンプトを出力し、readerから1行読み込みます。
// 末尾の改行は取り除きます。入力の途中でEOFになった場合は、
// 読み込めた部分を返します。
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword はwにプロンプトを出力し、fdが端末ならエコーなしでパスワードを読み込みます。
// 端末でない場合（パイプ入力）はreaderから1行読み込みます。
// 前後の空白はパスワードの一部として残します。
func GetPassword(reader *bufio.Reader, fd int, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, "Password: "); err != nil {
		return "", err
	}
	if !isTerminal(fd) {
		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
	pw, err := readPassword(fd)
	_, _ = fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}
