package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/andareed/siftly-changepoints/changepoints"
	"github.com/andareed/siftly-changepoints/logging"
	tea "github.com/charmbracelet/bubbletea"
)

// --- Wire format ---

const sessionVersion = 1

// sessionDTO is what `w` writes and --restore reads. Rows are never stored:
// a restored session re-queries the service.
type sessionDTO struct {
	Version int                      `json:"version"`
	Project string                   `json:"project"`
	Page    int                      `json:"page"`
	Filters changepoints.FilterState `json:"filters"`
	SavedAt time.Time                `json:"savedAt"`
}

func sessionFromModel(m *model) sessionDTO {
	return sessionDTO{
		Version: sessionVersion,
		Project: m.ctrl.Project(),
		Page:    m.ctrl.Pagination().Page,
		Filters: m.ctrl.Filters(),
		SavedAt: now().UTC().Truncate(time.Second),
	}
}

// SaveSession writes the project, page and filters of m to path.
func SaveSession(m *model, path string) error {
	data, err := json.MarshalIndent(sessionFromModel(m), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// LoadSession reads a session written by SaveSession.
func LoadSession(path string) (sessionDTO, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return sessionDTO{}, err
	}
	var dto sessionDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return sessionDTO{}, fmt.Errorf("parse session %q: %w", path, err)
	}
	if dto.Version != sessionVersion {
		return sessionDTO{}, fmt.Errorf("session version %d not supported (want %d)", dto.Version, sessionVersion)
	}
	if dto.Page < 0 {
		dto.Page = 0
	}
	return dto, nil
}

// ExportRows writes the rows currently on screen, in display order, as CSV.
func ExportRows(m *model, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeRows(m, f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func writeRows(m *model, out io.Writer) error {
	w := csv.NewWriter(out)
	header := make([]string, 0, len(m.data.header)+3)
	for _, c := range m.data.header {
		header = append(header, c.Name)
	}
	header = append(header, "Build ID", "Task ID", "Selected")
	if err := w.Write(header); err != nil {
		return err
	}

	for _, idx := range m.data.filteredIndices {
		r := m.data.rows[idx]
		rec := make([]string, 0, len(header))
		for _, c := range m.data.header {
			rec = append(rec, r.Field(c.Field))
		}
		rec = append(rec, r.BuildID, r.TaskID, strconv.FormatBool(m.ctrl.IsSelected(idx)))
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (m *model) saveSession(path string) tea.Cmd {
	if err := SaveSession(m, path); err != nil {
		logging.Errorf("save session %q: %v", path, err)
		return m.notify("error", "Save failed: %v", err)
	}
	m.lastDir = filepath.Dir(path)
	logging.Infof("session saved to %s", path)
	return m.notify("success", "Session saved to %s", path)
}

func (m *model) exportRows(path string) tea.Cmd {
	if err := ExportRows(m, path); err != nil {
		logging.Errorf("export %q: %v", path, err)
		return m.notify("error", "Export failed: %v", err)
	}
	m.lastDir = filepath.Dir(path)
	return m.notify("success", "Exported %d rows to %s", len(m.data.filteredIndices), path)
}

func safeName(project string) string {
	name := strings.TrimSpace(project)
	if name == "" {
		return "changepoints"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ' ', ':':
			return '_'
		}
		return r
	}, name)
}

func defaultSessionName(project string) string {
	return safeName(project) + ".session.json"
}

func defaultExportName(project string, page int) string {
	return fmt.Sprintf("%s-page%d.csv", safeName(project), page)
}
