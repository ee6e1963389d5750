package blob

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalConfig configures the on-disk store.
type LocalConfig struct {
	Dir string `env:"MEMBERS_DATA_DIR" envDefault:"./data"`
}

// Local stores objects as files under a base directory.
type Local struct {
	dir string
}

// NewLocal creates the base directory when missing.
func NewLocal(cfg LocalConfig) (*Local, error) {
	if cfg.Dir == "" {
		return nil, ErrInvalidConfig
	}
	dir, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	return &Local{dir: dir}, nil
}

func (s *Local) Read(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, errors.Join(ErrReadFailed, err)
	}
	return data, nil
}

// Write goes through a temp file and rename so readers never see a torn object.
func (s *Local) Write(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Join(ErrWriteFailed, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Join(ErrWriteFailed, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	return nil
}

// resolve keeps every key inside the base directory.
func (s *Local) resolve(key string) (string, error) {
	if key == "" {
		return "", ErrInvalidKey
	}
	path := filepath.Join(s.dir, filepath.Clean("/"+key))
	if !strings.HasPrefix(path, s.dir+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrInvalidKey, key)
	}
	return path, nil
}
