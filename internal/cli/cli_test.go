package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/blueprint/pkg/errors"
	"github.com/matzehuels/blueprint/pkg/model"
	"github.com/matzehuels/blueprint/pkg/pipeline"
)

const cottageBrief = `id: cottage
entrance_side: S
massing:
  width: 10
  depth: 8
  floors: 2
rooms:
  - name: Living Room
    area: 24
    level: 0
  - name: Kitchen
    area: 12
    level: 0
  - name: Bedroom
    area: 14
    level: 1
  - name: Bathroom
    area: 6
    level: 1
`

// captureOutput redirects user-facing output to a buffer for one test.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

// runCLI executes the root command with an isolated cache directory.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	out := captureOutput(t)
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeBrief(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cottage.yaml")
	if err := os.WriteFile(path, []byte(cottageBrief), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"svg", []string{"svg"}},
		{"svg,pdf", []string{"svg", "pdf"}},
		{" svg , json ", []string{"svg", "json"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	paths, err := writeArtifacts(dir, map[string][]byte{
		"section-A-A.svg": []byte("<svg/>"),
		"plan-ground.svg": []byte("<svg>plan</svg>"),
		"elevation-N.svg": []byte("<svg/>"),
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "elevation-N.svg"),
		filepath.Join(dir, "plan-ground.svg"),
		filepath.Join(dir, "section-A-A.svg"),
	}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}
	data, err := os.ReadFile(filepath.Join(dir, "plan-ground.svg"))
	if err != nil || string(data) != "<svg>plan</svg>" {
		t.Errorf("plan-ground.svg = %q, %v", data, err)
	}
}

func TestWriteArtifactsRejectsTraversal(t *testing.T) {
	_, err := writeArtifacts("../escape", map[string][]byte{"a.svg": nil})
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("err = %v, want INVALID_PATH", err)
	}
}

func TestOutputDirs(t *testing.T) {
	single := outputDirs("out", []pipeline.Options{{BriefPath: "a/house.yaml"}})
	if single[0] != "out" {
		t.Errorf("single run dir = %q", single[0])
	}

	dirs := outputDirs("out", []pipeline.Options{
		{BriefPath: "a/house.yaml"},
		{BriefPath: "b/house.json"},
		{BriefPath: "c/villa.toml"},
	})
	want := []string{
		filepath.Join("out", "house"),
		filepath.Join("out", "house-2"),
		filepath.Join("out", "villa"),
	}
	if !reflect.DeepEqual(dirs, want) {
		t.Errorf("dirs = %v, want %v", dirs, want)
	}
}

func TestSelection(t *testing.T) {
	m := &model.Building{Floors: make([]model.Floor, 2)}
	files := map[string][]byte{
		"plan-ground.svg":      nil,
		"plan-first.svg":       nil,
		"elevation-S.svg":      nil,
		"elevation-N.svg":      nil,
		"section-A-A.svg":      nil,
		"section-B-B.pdf":      nil,
		"model.json":           nil,
		"adjacency-ground.dot": nil,
	}

	sel, err := newSelection(m, []string{"first_floor"}, []string{"south"}, []string{"bb"})
	if err != nil {
		t.Fatal(err)
	}
	got := sel.filter(files)
	for _, name := range []string{"plan-first.svg", "elevation-S.svg", "section-B-B.pdf", "model.json", "adjacency-ground.dot"} {
		if _, ok := got[name]; !ok {
			t.Errorf("%s should be kept", name)
		}
	}
	for _, name := range []string{"plan-ground.svg", "elevation-N.svg", "section-A-A.svg"} {
		if _, ok := got[name]; ok {
			t.Errorf("%s should be dropped", name)
		}
	}

	if all := (selection{}).filter(files); len(all) != len(files) {
		t.Errorf("empty selection kept %d of %d files", len(all), len(files))
	}
}

func TestSelectionErrors(t *testing.T) {
	m := &model.Building{Floors: make([]model.Floor, 1)}
	if _, err := newSelection(m, []string{"first"}, nil, nil); err == nil {
		t.Error("missing floor should fail")
	}
	if _, err := newSelection(m, nil, []string{"up"}, nil); !errors.Is(err, errors.ErrCodeInvalidFacade) {
		t.Errorf("facade err = %v", err)
	}
	if _, err := newSelection(m, nil, nil, []string{"C-C"}); !errors.Is(err, errors.ErrCodeInvalidSection) {
		t.Errorf("section err = %v", err)
	}
}

func TestDrawingItems(t *testing.T) {
	items := newDrawingItems(map[string][]byte{
		"section-A-A.svg":      make([]byte, 10),
		"plan-first.svg":       nil,
		"adjacency-ground.dot": nil,
		"elevation-E.svg":      nil,
		"plan-ground.svg":      nil,
		"model.json":           nil,
	})
	var names []string
	for _, it := range items {
		names = append(names, it.Name)
	}
	want := []string{"plan-first.svg", "plan-ground.svg", "elevation-E.svg", "section-A-A.svg", "adjacency-ground.dot"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("items = %v, want %v", names, want)
	}
	if items[3].Kind != "section" || items[3].View != "A-A" || items[3].Size != 10 {
		t.Errorf("section item = %+v", items[3])
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m DrawingListModel, keys ...string) DrawingListModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(DrawingListModel)
	}
	return m
}

func TestDrawingListModel(t *testing.T) {
	items := []DrawingItem{
		{Name: "plan-ground.svg", Kind: "plan", View: "ground"},
		{Name: "elevation-S.svg", Kind: "elevation", View: "S"},
		{Name: "section-A-A.svg", Kind: "section", View: "A-A"},
	}

	m := press(NewDrawingListModel("Drawings", items), "down", "enter")
	if len(m.Selected) != 1 || m.Selected[0].Name != "elevation-S.svg" {
		t.Errorf("cursor selection = %+v", m.Selected)
	}

	m = press(NewDrawingListModel("Drawings", items), " ", "down", "down", " ", "enter")
	if len(m.Selected) != 2 || m.Selected[0].Name != "plan-ground.svg" || m.Selected[1].Name != "section-A-A.svg" {
		t.Errorf("marked selection = %+v", m.Selected)
	}

	m = press(NewDrawingListModel("Drawings", items), "a")
	if len(m.Marked) != 3 {
		t.Errorf("a should mark all, marked %d", len(m.Marked))
	}
	m = press(m, "a")
	if len(m.Marked) != 0 {
		t.Errorf("a again should clear, marked %d", len(m.Marked))
	}

	m = press(NewDrawingListModel("Drawings", items), "down", "down", "down", "k")
	if m.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.Cursor)
	}
	if !strings.Contains(m.View(), "section-A-A.svg") {
		t.Error("view should list items")
	}
}

func TestFormatSize(t *testing.T) {
	tests := map[int]string{512: "512 B", 2048: "2.0 KB", 3 << 20: "3.0 MB"}
	for n, want := range tests {
		if got := formatSize(n); got != want {
			t.Errorf("formatSize(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestBuildAndDrawCommands(t *testing.T) {
	brief := writeBrief(t)
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "model.json")

	out, err := runCLI(t, "build", brief, "-o", modelPath)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(out, "cottage") {
		t.Errorf("build output = %q", out)
	}
	m, err := model.ImportJSON(modelPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Floors) != 2 {
		t.Errorf("floors = %d", len(m.Floors))
	}

	drawDir := filepath.Join(dir, "drawings")
	if _, err := runCLI(t, "draw", modelPath, "-o", drawDir, "--floor", "ground", "--facade", "S"); err != nil {
		t.Fatalf("draw: %v", err)
	}
	entries, err := os.ReadDir(drawDir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if want := []string{"elevation-S.svg", "plan-ground.svg"}; !reflect.DeepEqual(names, want) {
		t.Errorf("drawn files = %v, want %v", names, want)
	}
}

func TestRenderCommand(t *testing.T) {
	brief := writeBrief(t)
	out := filepath.Join(t.TempDir(), "out")
	if _, err := runCLI(t, "render", brief, "-f", "svg,json", "-o", out, "--theme", "blueprint"); err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, name := range []string{"plan-ground.svg", "plan-first.svg", "section-B-B.svg", "model.json", "report.json"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("missing %s", name)
		}
	}
}

func TestRenderCommandErrors(t *testing.T) {
	brief := writeBrief(t)
	if _, err := runCLI(t, "render", brief, "-f", "gif"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("format err = %v", err)
	}
	if _, err := runCLI(t, "render", brief, "--theme", "neon"); !errors.Is(err, errors.ErrCodeInvalidTheme) {
		t.Errorf("theme err = %v", err)
	}
	if _, err := runCLI(t, "render", filepath.Join(t.TempDir(), "none.yaml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing brief err = %v", err)
	}
}

func TestInspectJSON(t *testing.T) {
	brief := writeBrief(t)
	out, err := runCLI(t, "inspect", brief, "--json")
	if err != nil {
		t.Fatal(err)
	}
	var report pipeline.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if report.Validation.Metrics.Floors != 2 || !report.Validation.Valid {
		t.Errorf("validation = %+v", report.Validation)
	}
	if len(report.Compliance.Rooms) == 0 {
		t.Error("compliance report has no rooms")
	}
}

func TestInspectTables(t *testing.T) {
	brief := writeBrief(t)
	out, err := runCLI(t, "inspect", brief, "--rooms")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Design cottage", "ground", "first", "Bedroom"} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output missing %q", want)
		}
	}
}

func TestThemesCommand(t *testing.T) {
	out, err := runCLI(t, "themes")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "technical") || !strings.Contains(out, "default") {
		t.Errorf("themes output = %q", out)
	}

	out, err = runCLI(t, "themes", "--css", "technical")
	if err != nil || !strings.Contains(out, "{") {
		t.Errorf("css output = %q, %v", out, err)
	}
	if _, err := runCLI(t, "themes", "--css", "neon"); !errors.Is(err, errors.ErrCodeInvalidTheme) {
		t.Errorf("unknown theme err = %v", err)
	}
}

func TestCacheCommands(t *testing.T) {
	brief := writeBrief(t)
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	out := captureOutput(t)

	run := func(args ...string) {
		t.Helper()
		root := New(io.Discard, LogInfo).RootCommand()
		root.SetArgs(args)
		root.SetOut(out)
		root.SetErr(io.Discard)
		if err := root.Execute(); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}

	run("render", brief, "-o", filepath.Join(t.TempDir(), "out"))
	out.Reset()
	run("cache", "path")
	if got := strings.TrimSpace(out.String()); got != filepath.Join(cacheHome, appName) {
		t.Errorf("cache path = %q", got)
	}
	out.Reset()
	run("cache", "clear")
	if !strings.Contains(out.String(), "Cleared 2 cached entries") {
		t.Errorf("clear output = %q", out.String())
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := runCLI(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "blueprint") {
		t.Error("bash completion should mention the command name")
	}
}
