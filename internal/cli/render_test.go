package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
)

const testDocument = `{
  "nodes": [
    {"id": "start", "label": "Start", "kind": "ellipse"},
    {"id": "check", "label": "Valid?", "kind": "diamond"},
    {"id": "done", "label": "Done", "kind": "ellipse"}
  ],
  "edges": [
    {"from": "start", "to": "check"},
    {"from": "check", "to": "done", "label": "yes"}
  ]
}`

// writeTestDocument writes a small document file into a temp dir.
func writeTestDocument(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flow.json")
	if err := os.WriteFile(path, []byte(testDocument), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// runCommand executes the root command with the given args.
func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.Execute()
}

func TestRenderCommandSVG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	doc := writeTestDocument(t)
	out := filepath.Join(filepath.Dir(doc), "flow.svg")

	if err := runCommand(t, "render", doc, "-o", out); err != nil {
		t.Fatalf("render: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Error("output should contain an <svg> element")
	}
	if !bytes.Contains(data, []byte("Valid?")) {
		t.Error("output should contain the node labels")
	}
}

func TestRenderCommandMultipleFormats(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	doc := writeTestDocument(t)
	base := filepath.Join(filepath.Dir(doc), "out")

	if err := runCommand(t, "render", doc, "-f", "svg,json,dot", "-o", base); err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, ext := range []string{"svg", "json", "dot"} {
		path := base + "." + ext
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected output file %s: %v", path, err)
		}
	}

	dot, err := os.ReadFile(base + ".dot")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(dot, []byte("digraph G {")) {
		t.Error("dot output should start with the digraph header")
	}
}

func TestRenderCommandInvalidFormat(t *testing.T) {
	doc := writeTestDocument(t)
	if err := runCommand(t, "render", doc, "-f", "tiff"); err == nil {
		t.Error("render should reject unknown formats")
	}
}

func TestRenderCommandInvalidDocument(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"nodes":[{"id":"a"},{"id":"a"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := runCommand(t, "render", path); err == nil {
		t.Error("render should reject documents with duplicate node IDs")
	}
}

func TestLayoutCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	doc := writeTestDocument(t)

	if err := runCommand(t, "layout", doc); err != nil {
		t.Fatalf("layout: %v", err)
	}

	scenePath := filepath.Join(filepath.Dir(doc), "flow.scene.json")
	data, err := os.ReadFile(scenePath)
	if err != nil {
		t.Fatalf("read scene: %v", err)
	}

	var out struct {
		Type     string            `json:"type"`
		Version  int               `json:"version"`
		Elements []json.RawMessage `json:"elements"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("parse scene: %v", err)
	}
	if out.Type != "draftboard/scene" {
		t.Errorf("scene type = %q, want draftboard/scene", out.Type)
	}
	if len(out.Elements) == 0 {
		t.Error("scene should contain elements")
	}
}

func TestCacheClearCommand(t *testing.T) {
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	doc := writeTestDocument(t)

	// Populate the cache through a render run, then clear it.
	if err := runCommand(t, "render", doc); err != nil {
		t.Fatalf("render: %v", err)
	}
	if err := runCommand(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}

	var files int
	_ = filepath.Walk(filepath.Join(cacheHome, appName), func(path string, info os.FileInfo, err error) error {
		if err == nil && info != nil && !info.IsDir() {
			files++
		}
		return nil
	})
	if files != 0 {
		t.Errorf("cache dir still holds %d files after clear", files)
	}
}
