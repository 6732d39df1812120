package dialogs

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name, val, placeholder, lastDir, want string
	}{
		{name: "value wins", val: "a.json", placeholder: "b.json", want: "a.json"},
		{name: "blank uses placeholder", placeholder: "b.json", want: "b.json"},
		{name: "nothing", want: ""},
		{name: "bare name joins lastDir", val: "a.json", lastDir: "/tmp", want: filepath.Join("/tmp", "a.json")},
		{name: "relative dir kept", val: "out/a.json", lastDir: "/tmp", want: "out/a.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolvePath(tt.val, tt.placeholder, tt.lastDir))
		})
	}
}

func TestSaveDialog_Enter(t *testing.T) {
	d := NewSaveDialog("session.json", "")
	_, cmd := d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, SaveConfirmedMsg{Path: "session.json"}, cmd())
}

func TestExportDialog_Esc(t *testing.T) {
	d := NewExportDialog("page.csv", "")
	_, cmd := d.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, ExportCanceledMsg{}, cmd())
}
