package emit

import (
	"os"
	"path/filepath"

	"github.com/teranos/glenum/errors"
)

// StagedFile is content fully written and synced to a temporary file next
// to its destination, waiting for Commit.
type StagedFile struct {
	// Dest is the path the content replaces on commit.
	Dest string

	tmp    string
	backup string
}

// Stage writes content for dir/name to a synced temporary file in dir.
// The directory is created if needed. Nothing at the destination changes
// until Commit.
func Stage(dir, name string, content []byte) (*StagedFile, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create output directory")
	}

	dest := filepath.Join(dir, name)
	if info, err := os.Lstat(dest); err == nil && info.IsDir() {
		return nil, errors.Newf("cannot replace %s: it is a directory", dest)
	}

	tmp, err := os.CreateTemp(dir, "."+name+".tmp-*")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create temp file for %s", dest)
	}
	f := &StagedFile{Dest: dest, tmp: tmp.Name()}

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		f.Discard()
		return nil, errors.Wrapf(err, "failed to write %s", dest)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		f.Discard()
		return nil, errors.Wrapf(err, "failed to sync %s", dest)
	}
	if err := tmp.Close(); err != nil {
		f.Discard()
		return nil, errors.Wrapf(err, "failed to close %s", dest)
	}
	if err := os.Chmod(f.tmp, 0644); err != nil {
		f.Discard()
		return nil, errors.Wrapf(err, "failed to set permissions on %s", dest)
	}
	return f, nil
}

// Discard removes the temporary file. Safe to call after Commit.
func (f *StagedFile) Discard() {
	if f == nil || f.tmp == "" {
		return
	}
	os.Remove(f.tmp)
	f.tmp = ""
}

// Commit renames every staged file over its destination.
//
// Either all destinations are replaced or, on failure, the ones already
// replaced are restored from backups taken just before their rename and
// the remaining temporary files are removed.
func Commit(files []*StagedFile) error {
	var done []*StagedFile
	for i, f := range files {
		if err := f.commit(); err != nil {
			rollback(done)
			for _, rest := range files[i:] {
				rest.Discard()
			}
			return err
		}
		done = append(done, f)
	}
	for _, f := range done {
		if f.backup != "" {
			os.Remove(f.backup)
			f.backup = ""
		}
	}
	return nil
}

func (f *StagedFile) commit() error {
	if err := f.takeBackup(); err != nil {
		return err
	}
	if err := os.Rename(f.tmp, f.Dest); err != nil {
		if f.backup != "" {
			os.Remove(f.backup)
			f.backup = ""
		}
		return errors.Wrapf(err, "failed to replace %s", f.Dest)
	}
	f.tmp = ""
	return nil
}

// takeBackup copies an existing regular destination aside so a later
// failure in the batch can restore it.
func (f *StagedFile) takeBackup() error {
	info, err := os.Lstat(f.Dest)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "failed to stat %s", f.Dest)
	}
	if !info.Mode().IsRegular() {
		return errors.Newf("cannot replace %s: not a regular file", f.Dest)
	}

	old, err := os.ReadFile(f.Dest)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s for backup", f.Dest)
	}
	bak, err := os.CreateTemp(filepath.Dir(f.Dest), "."+filepath.Base(f.Dest)+".bak-*")
	if err != nil {
		return errors.Wrapf(err, "failed to back up %s", f.Dest)
	}
	if _, err := bak.Write(old); err != nil {
		bak.Close()
		os.Remove(bak.Name())
		return errors.Wrapf(err, "failed to back up %s", f.Dest)
	}
	if err := bak.Close(); err != nil {
		os.Remove(bak.Name())
		return errors.Wrapf(err, "failed to back up %s", f.Dest)
	}
	os.Chmod(bak.Name(), info.Mode().Perm())
	f.backup = bak.Name()
	return nil
}

// rollback restores committed files in reverse order. A file that did not
// exist before the batch is removed.
func rollback(done []*StagedFile) {
	for i := len(done) - 1; i >= 0; i-- {
		f := done[i]
		if f.backup == "" {
			os.Remove(f.Dest)
			continue
		}
		os.Rename(f.backup, f.Dest)
		f.backup = ""
	}
}

// WriteFile atomically replaces dir/name with content.
func WriteFile(dir, name string, content []byte) (string, error) {
	f, err := Stage(dir, name, content)
	if err != nil {
		return "", err
	}
	if err := Commit([]*StagedFile{f}); err != nil {
		return "", err
	}
	return f.Dest, nil
}

// FileName returns the output file name for a generator.
func FileName(basename string, gen Generator) string {
	return basename + "." + gen.FileExtension()
}
