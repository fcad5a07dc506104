// Package seed はYAMLファイルから初期ユーザーコレクションを読み込みます。
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"courtside_auth/internal/feature/auth/domain"
	"courtside_auth/internal/feature/auth/domain/entity"
	"courtside_auth/internal/feature/auth/usecase"
)

// User はシードの1エントリです。PasswordとPasswordHashのどちらか一方だけを指定します。
type User struct {
	ID           string `yaml:"id"`
	Username     string `yaml:"username"`
	Email        string `yaml:"email"`
	Password     string `yaml:"password"`
	PasswordHash string `yaml:"passwordHash"`
}

// File はシードファイル全体です。
type File struct {
	Users []User `yaml:"users"`
}

// Hasher は平文のシードパスワードをハッシュ化します。
type Hasher interface {
	Hash(password string) (string, error)
}

// Parse はシードをデコードし、全エントリを検証します。
func Parse(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	for i, u := range f.Users {
		if u.Username == "" || u.Email == "" {
			return nil, fmt.Errorf("seed user %d: username and email are required", i)
		}
		if (u.Password == "") == (u.PasswordHash == "") {
			return nil, fmt.Errorf("seed user %d (%s): set exactly one of password and passwordHash", i, u.Email)
		}
	}
	return &f, nil
}

// LoadFile はpathのシードファイルを読み込んで解析します。
func LoadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()
	return Parse(fh)
}

// Apply はdirに存在しないシードユーザーをファイル順に作成し、作成数を返します。
// メールアドレスが既に存在するユーザーはスキップするので、起動のたびに実行できます。
func Apply(ctx context.Context, dir usecase.UserDirectory, hasher Hasher, f *File) (int, error) {
	existing, err := dir.GetUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list users: %w", err)
	}
	seen := make(map[string]struct{}, len(existing))
	for _, u := range existing {
		seen[u.Email] = struct{}{}
	}

	created := 0
	for _, su := range f.Users {
		if _, ok := seen[su.Email]; ok {
			continue
		}
		user, err := toEntity(su, hasher)
		if err != nil {
			return created, err
		}
		if err := dir.CreateUser(ctx, user); err != nil {
			if errors.Is(err, domain.ErrEmailAlreadyExists) {
				continue
			}
			return created, fmt.Errorf("failed to create seed user %s: %w", su.Email, err)
		}
		seen[su.Email] = struct{}{}
		created++
	}
	slog.Info("seed users applied", "created", created, "skipped", len(f.Users)-created)
	return created, nil
}

func toEntity(su User, hasher Hasher) (*entity.User, error) {
	hash := su.PasswordHash
	if hash == "" {
		h, err := hasher.Hash(su.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash seed password of %s: %w", su.Email, err)
		}
		hash = h
	}
	id := su.ID
	if id == "" {
		id = uuid.NewString()
	}
	return &entity.User{ID: id, Username: su.Username, Email: su.Email, Password: hash}, nil
}
