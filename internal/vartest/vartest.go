// Package vartest builds var archives and library trees for tests.
package vartest

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
)

// Meta returns a meta.json body declaring deps as dependencies.
func Meta(deps ...string) string {
	m := map[string]any{"creatorName": "tester", "licenseType": "CC BY"}
	if len(deps) > 0 {
		d := make(map[string]any, len(deps))
		for _, dep := range deps {
			d[dep] = map[string]any{"licenseType": "CC BY", "dependencies": map[string]any{}}
		}
		m["dependencies"] = d
	}
	b, _ := json.Marshal(m)
	return string(b)
}

// Archive returns the bytes of a zip archive holding files, keyed by entry
// name.
func Archive(t testing.TB, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("write entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}
	return buf.Bytes()
}

// Var returns the bytes of a var archive whose meta.json declares deps.
func Var(t testing.TB, deps ...string) []byte {
	t.Helper()
	return Archive(t, map[string]string{
		"meta.json":            Meta(deps...),
		"Custom/Atom/x.vaj":    "{}",
		"Saves/scene/foo.json": "{}",
	})
}

// WriteFile writes data to dir/rel, creating parent directories, and returns
// the full path.
func WriteFile(t testing.TB, dir, rel string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(p), err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

// WriteVar writes a var archive declaring deps to dir/rel.
func WriteVar(t testing.TB, dir, rel string, deps ...string) string {
	t.Helper()
	return WriteFile(t, dir, rel, Var(t, deps...))
}

// Preset returns a preset body referencing each ref as "<ref>:/Custom/...".
func Preset(refs ...string) string {
	var buf bytes.Buffer
	buf.WriteString("{\n  \"storables\" : [\n")
	for i, ref := range refs {
		if i > 0 {
			buf.WriteString(",\n")
		}
		buf.WriteString("    { \"id\" : \"hair\", \"url\" : \"" + ref + ":/Custom/Hair/Female/x.vam\" }")
	}
	buf.WriteString("\n  ]\n}\n")
	return buf.String()
}
