package main

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/flavono123/shaper/internal/field"
	"github.com/flavono123/shaper/internal/projection"
	"github.com/flavono123/shaper/internal/store"
)

// EventTreeChanged is emitted to the frontend after every mutation with
// the new revision as payload.
const EventTreeChanged = "tree:changed"

var errExportDisabled = errors.New("export is disabled")

// FieldRow is one visible field, flattened in display order.
type FieldRow struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Path    []int  `json:"path"`
	Depth   int    `json:"depth"`
	Missing bool   `json:"missing"`
}

type Problem struct {
	ID      string `json:"id"`
	Path    string `json:"path"`
	Message string `json:"message"`
}

// App is bound to the frontend. Bound methods may be called from several
// goroutines, so every access to the tree goes through mu.
type App struct {
	ctx    context.Context
	mu     sync.Mutex
	tree   *field.Tree
	store  *store.Store
	logger logrus.FieldLogger
}

func NewApp(tree *field.Tree, exports *store.Store, logger logrus.FieldLogger) *App {
	a := &App{
		tree:   tree,
		store:  exports,
		logger: logger,
	}
	tree.OnChange(a.onChange)
	return a
}

// startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

func (a *App) shutdown(ctx context.Context) {
	if a.store == nil {
		return
	}
	if err := a.store.Save(); err != nil {
		a.logger.WithError(err).Warn("failed to save export index")
	}
}

func (a *App) onChange(c field.Change) {
	a.logger.WithFields(logrus.Fields{
		"op":       c.Op,
		"id":       c.ID,
		"path":     c.Path.String(),
		"revision": c.Revision,
	}).Debug("field tree changed")

	if a.ctx != nil {
		runtime.EventsEmit(a.ctx, EventTreeChanged, c.Revision)
	}
}

func (a *App) Types() []string {
	var result []string
	for _, t := range field.Types() {
		result = append(result, string(t))
	}
	return result
}

func (a *App) Formats() []string {
	var result []string
	for _, f := range projection.Formats() {
		result = append(result, string(f))
	}
	return result
}

func (a *App) Fields() []FieldRow {
	a.mu.Lock()
	defer a.mu.Unlock()

	rows := []FieldRow{}
	a.tree.Walk(func(f *field.Field, path field.Path) bool {
		rows = append(rows, FieldRow{
			ID:      string(f.ID),
			Name:    f.Name,
			Type:    string(f.Type),
			Path:    path.Clone(),
			Depth:   len(path) - 1,
			Missing: !field.NameValid(f.Name),
		})
		return true
	})
	return rows
}

// AddField appends under parent, or at the root for an empty parent.
func (a *App) AddField(parent []int) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	id, err := a.tree.AddField(parent)
	return string(id), err
}

func (a *App) RemoveField(path []int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.tree.RemoveField(path)
}

func (a *App) SetFieldName(path []int, name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.tree.SetFieldName(path, name)
}

func (a *App) SetFieldType(path []int, typ string) error {
	t, err := field.ParseType(typ)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	return a.tree.SetFieldType(path, t)
}

func (a *App) Preview(format string) (string, error) {
	f, err := projection.ParseFormat(format)
	if err != nil {
		return "", err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	return projection.Render(a.tree.Nodes(), f)
}

// Pointer locates a field inside the JSON Schema export.
func (a *App) Pointer(id string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return projection.Pointer(a.tree, field.ID(id))
}

func (a *App) Validate() []Problem {
	a.mu.Lock()
	defer a.mu.Unlock()

	problems := []Problem{}
	for _, e := range a.tree.Validate() {
		problems = append(problems, Problem{
			ID:      string(e.ID),
			Path:    e.Path.String(),
			Message: field.ErrNameRequired.Error(),
		})
	}
	return problems
}

// Export writes the schema and returns the written file path.
func (a *App) Export(name string, format string) (string, error) {
	if a.store == nil {
		return "", errExportDisabled
	}
	f, err := projection.ParseFormat(format)
	if err != nil {
		return "", err
	}

	a.mu.Lock()
	record, err := a.store.Export(name, a.tree, f)
	a.mu.Unlock()
	if err != nil {
		return "", err
	}
	if err := a.store.Save(); err != nil {
		return "", err
	}

	path := a.store.Path(record)
	a.logger.WithFields(logrus.Fields{"id": record.ID, "file": path}).Info("schema exported")
	return path, nil
}

func (a *App) ExportDir() string {
	if a.store == nil {
		return ""
	}
	return a.store.Dir()
}

// Exports lists previous exports, narrowed to one format unless format
// is empty.
func (a *App) Exports(format string) ([]store.Record, error) {
	if a.store == nil {
		return []store.Record{}, nil
	}
	if format == "" {
		return a.store.ListAll(), nil
	}
	f, err := projection.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return a.store.ListByFormat(f), nil
}

func (a *App) ReadExport(id string) (string, error) {
	if a.store == nil {
		return "", errExportDisabled
	}
	return a.store.Read(id)
}

func (a *App) RenameExport(id string, name string) (*store.Record, error) {
	if a.store == nil {
		return nil, errExportDisabled
	}
	record, err := a.store.Rename(id, name)
	if err != nil {
		return nil, err
	}
	return record, a.store.Save()
}

func (a *App) DeleteExport(id string) error {
	if a.store == nil {
		return errExportDisabled
	}
	if err := a.store.Delete(id); err != nil {
		return err
	}
	a.logger.WithField("id", id).Info("export deleted")
	return a.store.Save()
}
