package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/dmitrijs2005/smartmeet/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/smartmeet/internal/common"
	"github.com/dmitrijs2005/smartmeet/internal/dbx"
)

// Store persists the session across process restarts. Save writes the
// token and the serialized user together or not at all. Load returns an
// empty token when nothing is stored. Clear is idempotent.
type Store interface {
	Load(ctx context.Context) (token string, user []byte, err error)
	Save(ctx context.Context, token string, user []byte) error
	Clear(ctx context.Context) error
}

// SQLiteStore keeps the session in the metadata table of the local
// database.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Load(ctx context.Context) (string, []byte, error) {
	repo := metadata.NewSQLiteRepository(s.db)

	token, err := repo.Get(ctx, common.MetaKeyAccessToken)
	if err != nil {
		return "", nil, err
	}
	user, err := repo.Get(ctx, common.MetaKeyUser)
	if err != nil {
		return "", nil, err
	}
	return string(token), user, nil
}

func (s *SQLiteStore) Save(ctx context.Context, token string, user []byte) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.MetaKeyAccessToken, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, common.MetaKeyUser, user)
	})
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return metadata.NewSQLiteRepository(s.db).Delete(ctx, common.MetaKeyAccessToken, common.MetaKeyUser)
}

// FileStore keeps the session in a single JSON document. Writes go to a
// temporary file in the same directory which is then renamed over the
// target, so a crash never leaves half a session behind.
type FileStore struct {
	fs   afero.Fs
	path string
}

var _ Store = (*FileStore)(nil)

const sessionFileMode = 0o600

type fileSession struct {
	AccessToken string          `json:"access_token"`
	User        json.RawMessage `json:"user,omitempty"`
}

func NewFileStore(fs afero.Fs, path string) *FileStore {
	return &FileStore{fs: fs, path: path}
}

func (s *FileStore) Load(_ context.Context) (string, []byte, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("read session file: %w", err)
	}

	var fsess fileSession
	if err := json.Unmarshal(data, &fsess); err != nil {
		return "", nil, fmt.Errorf("decode session file: %w", err)
	}
	var user []byte
	if len(fsess.User) > 0 {
		user = []byte(fsess.User)
	}
	return fsess.AccessToken, user, nil
}

func (s *FileStore) Save(_ context.Context, token string, user []byte) error {
	fsess := fileSession{AccessToken: token}
	if len(user) > 0 {
		if !json.Valid(user) {
			return fmt.Errorf("encode session file: user record is not valid JSON")
		}
		fsess.User = user
	}
	data, err := json.MarshalIndent(fsess, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp, err := afero.TempFile(s.fs, dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	tmpName := tmp.Name()

	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if werr == nil {
		werr = cerr
	}
	if werr == nil {
		werr = s.fs.Chmod(tmpName, sessionFileMode)
	}
	if werr == nil {
		werr = s.fs.Rename(tmpName, s.path)
	}
	if werr != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("write session file: %w", werr)
	}
	return nil
}

func (s *FileStore) Clear(_ context.Context) error {
	err := s.fs.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
