package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/flavono123/shaper/internal/field"
	"github.com/flavono123/shaper/internal/projection"
)

const indexFile = "exports.json"

var (
	ErrDuplicateName = errors.New("an export with this name already exists for this format")
	ErrNotFound      = errors.New("export not found")
	ErrInvalidSchema = errors.New("schema has fields without a name")
)

// InvalidSchemaError lists the fields that block an export.
type InvalidSchemaError struct {
	Errors []field.ValidationError
}

func (e *InvalidSchemaError) Error() string {
	paths := make([]string, len(e.Errors))
	for i, ve := range e.Errors {
		paths[i] = ve.Path.String()
	}
	return fmt.Sprintf("%v: %s", ErrInvalidSchema, strings.Join(paths, ", "))
}

func (e *InvalidSchemaError) Unwrap() error {
	return ErrInvalidSchema
}

// exportIndex is the JSON file structure.
type exportIndex struct {
	Exports []Record `json:"exports"`
}

// Store writes rendered schemas into a directory and keeps an index of them.
type Store struct {
	dir  string
	data *exportIndex
	mu   sync.RWMutex
}

// NewStore creates the export directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "failed to create export dir %s", dir)
	}

	return &Store{
		dir:  dir,
		data: &exportIndex{Exports: []Record{}},
	}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Load reads the index from disk. A corrupted index is moved aside and
// the store starts empty; records whose file was removed by hand are
// dropped.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = &exportIndex{Exports: []Record{}}

	path := s.indexPath()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to read export index")
	}

	var index exportIndex
	if err := json.Unmarshal(data, &index); err != nil {
		backup := path + ".backup." + time.Now().Format("20060102150405")
		return errors.Wrap(os.Rename(path, backup), "failed to move corrupted export index aside")
	}

	for _, r := range index.Exports {
		if _, err := os.Stat(filepath.Join(s.dir, r.File)); err == nil {
			s.data.Exports = append(s.data.Exports, r)
		}
	}
	return nil
}

// Save writes the index through a temporary file so a crash never leaves
// it half written.
func (s *Store) Save() error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.data, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return errors.Wrap(err, "failed to encode export index")
	}

	tmp := s.indexPath() + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write export index")
	}
	return errors.Wrap(os.Rename(tmp, s.indexPath()), "failed to replace export index")
}

// Export renders the tree in the given format and writes it next to the
// index. Trees with unnamed fields are refused.
func (s *Store) Export(name string, tree *field.Tree, format projection.Format) (*Record, error) {
	if !field.NameValid(name) {
		return nil, errors.Wrap(field.ErrNameRequired, "export name")
	}
	if errs := tree.Validate(); len(errs) > 0 {
		return nil, &InvalidSchemaError{Errors: errs}
	}

	content, err := projection.Render(tree.Nodes(), format)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to render %s", format)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.taken(format, name, "") {
		return nil, ErrDuplicateName
	}

	now := time.Now()
	record := Record{
		ID:        uuid.New().String(),
		Name:      name,
		Format:    format,
		Fields:    countFields(tree),
		CreatedAt: now,
		UpdatedAt: now,
	}
	record.File = fmt.Sprintf("%s-%s.%s", slug(name), record.ID[:8], format.Ext())

	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if err := os.WriteFile(filepath.Join(s.dir, record.File), []byte(content), 0644); err != nil {
		return nil, errors.Wrapf(err, "failed to write %s", record.File)
	}

	s.data.Exports = append(s.data.Exports, record)
	return &record, nil
}

// ListAll returns every export, oldest first.
func (s *Store) ListAll() []Record {
	return s.list(func(Record) bool { return true })
}

func (s *Store) ListByFormat(format projection.Format) []Record {
	return s.list(func(r Record) bool { return r.Format == format })
}

func (s *Store) Get(id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.find(id)
	if i < 0 {
		return nil, errors.Wrap(ErrNotFound, id)
	}
	r := s.data.Exports[i]
	return &r, nil
}

// Read returns the rendered document of an export.
func (s *Store) Read(id string) (string, error) {
	r, err := s.Get(id)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(s.Path(r))
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s", r.File)
	}
	return string(data), nil
}

// Path returns the absolute file path of a record.
func (s *Store) Path(r *Record) string {
	return filepath.Join(s.dir, r.File)
}

// Delete forgets an export and removes its file.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.find(id)
	if i < 0 {
		return errors.Wrap(ErrNotFound, id)
	}
	file := s.data.Exports[i].File
	if err := os.Remove(filepath.Join(s.dir, file)); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to remove %s", file)
	}
	s.data.Exports = append(s.data.Exports[:i], s.data.Exports[i+1:]...)
	return nil
}

// Rename changes the display name. The file on disk keeps its name.
func (s *Store) Rename(id string, name string) (*Record, error) {
	if !field.NameValid(name) {
		return nil, errors.Wrap(field.ErrNameRequired, "export name")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.find(id)
	if i < 0 {
		return nil, errors.Wrap(ErrNotFound, id)
	}
	r := &s.data.Exports[i]
	if s.taken(r.Format, name, id) {
		return nil, ErrDuplicateName
	}
	r.Name = name
	r.UpdatedAt = time.Now()

	result := *r
	return &result, nil
}

func (s *Store) indexPath() string {
	return filepath.Join(s.dir, indexFile)
}

func (s *Store) list(keep func(Record) bool) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []Record{}
	for _, r := range s.data.Exports {
		if keep(r) {
			result = append(result, r)
		}
	}
	return result
}

func (s *Store) find(id string) int {
	for i, r := range s.data.Exports {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// taken reports whether another export of format already uses name.
func (s *Store) taken(format projection.Format, name, except string) bool {
	for _, r := range s.data.Exports {
		if r.Format == format && r.Name == name && r.ID != except {
			return true
		}
	}
	return false
}

func countFields(tree *field.Tree) int {
	n := 0
	tree.Walk(func(*field.Field, field.Path) bool {
		n++
		return true
	})
	return n
}

func slug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	if s := strings.Trim(b.String(), "-"); s != "" {
		return s
	}
	return "schema"
}
