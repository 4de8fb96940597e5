package profile

import (
	"context"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/menumap/pkg/constants"
	"github.com/agentstation/menumap/pkg/errors"
)

var _ Store = (*FileStore)(nil)

// FileStore keeps the profile in a YAML file.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the profile file.
func (s *FileStore) Load(ctx context.Context) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return Profile{}, errors.NewNotFoundError("profile", s.path)
	}
	if err != nil {
		return Profile{}, errors.NewStorageError("read", "file", err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, errors.WrapParse("yaml", s.path, err)
	}
	return p, nil
}

// Save writes the profile atomically through a temporary file.
func (s *FileStore) Save(ctx context.Context, p Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return errors.WrapParse("yaml", s.path, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.NewStorageError("write", "file", err)
	}

	tmp, err := os.CreateTemp(dir, ".profile-*.yaml")
	if err != nil {
		return errors.NewStorageError("write", "file", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.NewStorageError("write", "file", err)
	}
	if err := tmp.Chmod(constants.SecureFilePermissions); err != nil {
		_ = tmp.Close()
		return errors.NewStorageError("write", "file", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewStorageError("write", "file", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return errors.NewStorageError("write", "file", err)
	}
	return nil
}

// Remove deletes the profile file. A missing file is not an error.
func (s *FileStore) Remove(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.NewStorageError("remove", "file", err)
	}
	return nil
}
