package shader

import (
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// Storage reads raw shader files by logical name.
type Storage interface {
	ReadFile(name string) ([]byte, error)
}

// Locator is implemented by storages that can report where a logical name
// lives. It is only used for diagnostics.
type Locator interface {
	Locate(name string) string
}

// DirStorage reads sources relative to a base directory on disk.
type DirStorage struct {
	Base string
}

// ReadFile reads Base/name.
func (d DirStorage) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(d.Locate(name))
}

// Locate returns the on-disk path of name.
func (d DirStorage) Locate(name string) string {
	return filepath.Join(d.Base, filepath.FromSlash(name))
}

// FSStorage reads sources from an fs.FS, such as the embedded built-ins.
type FSStorage struct {
	FS fs.FS
}

// ReadFile reads name from the file system.
func (s FSStorage) ReadFile(name string) ([]byte, error) {
	return fs.ReadFile(s.FS, name)
}

// Load reads one source through st and applies the platform transform.
func Load(st Storage, ref Ref, platform string) (Source, error) {
	path := ref.Name
	if loc, ok := st.(Locator); ok {
		path = loc.Locate(ref.Name)
	}

	data, err := st.ReadFile(ref.Name)
	if err != nil {
		return Source{}, &LoadError{Name: ref.Name, Path: path, Err: err}
	}
	if !utf8.Valid(data) {
		return Source{}, &LoadError{Name: ref.Name, Path: path, Err: errInvalidUTF8}
	}

	return Source{
		Name: ref.Name,
		Kind: ref.Kind,
		Text: Transform(string(data), platform),
	}, nil
}
