//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package autosave periodically saves open files and keeps backups of them.
package autosave

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Saver writes every open file and returns the paths written.
type Saver interface {
	SaveAll() ([]string, error)
}

// An Autosaver saves on each tick and then rotates backups.
// Tick must be called from the goroutine that owns the Saver.
type Autosaver struct {
	fs      afero.Fs
	saver   Saver
	backups int
	logger  *zap.Logger
}

// New returns an Autosaver keeping backups generations of each file.
func New(fs afero.Fs, saver Saver, backups int, logger *zap.Logger) *Autosaver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Autosaver{fs: fs, saver: saver, backups: backups, logger: logger}
}

// Tick saves every file, then backs each one up.
func (a *Autosaver) Tick() error {
	saved, err := a.saver.SaveAll()
	errs := []error{err}
	for _, path := range saved {
		if err := Rotate(a.fs, path, a.backups); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		a.logger.Warn("autosave", zap.Error(err))
		return err
	}
	a.logger.Debug("autosaved", zap.Strings("files", saved))
	return nil
}

// BackupName returns the name of the nth backup of path: path.bak for
// the newest, then path.bak.1, path.bak.2 and so on.
func BackupName(path string, n int) string {
	if n == 0 {
		return path + ".bak"
	}
	return fmt.Sprintf("%s.bak.%d", path, n)
}

// Rotate shifts the backups of path back one generation, dropping the
// oldest, and copies path to path.bak. Nothing is kept when count is
// zero.
func Rotate(fsys afero.Fs, path string, count int) error {
	if count <= 0 {
		return nil
	}
	for n := count - 1; n > 0; n-- {
		from, to := BackupName(path, n-1), BackupName(path, n)
		if _, err := fsys.Stat(from); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := fsys.Remove(to); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("rotate %s: %w", to, err)
		}
		if err := fsys.Rename(from, to); err != nil {
			return fmt.Errorf("rotate %s: %w", from, err)
		}
	}
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("backup %s: %w", path, err)
	}
	if err := afero.WriteFile(fsys, BackupName(path, 0), data, 0o644); err != nil {
		return fmt.Errorf("backup %s: %w", path, err)
	}
	return nil
}
