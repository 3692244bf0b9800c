package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lightfinesthour/VAM-Dependency-Scanner/internal/vartest"
	"github.com/lightfinesthour/VAM-Dependency-Scanner/pkg/errors"
)

type testRun struct {
	out, err bytes.Buffer
}

func (r *testRun) execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	c := New(&r.out, &r.err, LogInfo)
	return c.Execute(context.Background(), args)
}

// writeLibraries builds a VaM folder and a source folder:
//
//	main:   Alice.Hair.3 -> Bob.Skin.latest, Carol.Pose.2
//	        Dan.Look.1 (unused), Erin.Pose.1 (used by a preset)
//	source: Bob.Skin.1, Bob.Skin.4
func writeLibraries(t *testing.T) (vam, source string) {
	t.Helper()
	vam = t.TempDir()
	vartest.WriteVar(t, vam, "AddonPackages/Alice.Hair.3.var", "Bob.Skin.latest", "Carol.Pose.2")
	vartest.WriteVar(t, vam, "AddonPackages/Dan.Look.1.var")
	vartest.WriteVar(t, vam, "AddonPackages/Erin.Pose.1.var")
	vartest.WriteFile(t, vam, "Custom/Atom/Person/Pose/p.vap", []byte(vartest.Preset("Erin.Pose.1")))

	source = t.TempDir()
	vartest.WriteVar(t, source, "Bob.Skin.1.var")
	vartest.WriteVar(t, source, "deep/Bob.Skin.4.var")
	return vam, source
}

func TestScanUnused(t *testing.T) {
	vam, _ := writeLibraries(t)
	var run testRun
	if err := run.execute(t, "scan", "-p", vam); err != nil {
		t.Fatalf("scan error = %v\n%s", err, run.err.String())
	}

	out := run.out.String()
	if !strings.Contains(out, "2 vars are not used as a dependency:") {
		t.Errorf("missing unused heading:\n%s", out)
	}
	for _, want := range []string{"\tAlice.Hair.3", "\tDan.Look.1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Erin.Pose.1") {
		t.Errorf("preset-referenced package listed as unused:\n%s", out)
	}
}

func TestScanMissing(t *testing.T) {
	vam, source := writeLibraries(t)
	outFile := filepath.Join(t.TempDir(), "reports", "out.txt")
	jsonFile := filepath.Join(t.TempDir(), "report.json")

	var run testRun
	err := run.execute(t, "scan", "-p", vam, "-s", source, "-m", "--output="+outFile, "--json", jsonFile)
	if err != nil {
		t.Fatalf("scan error = %v\n%s", err, run.err.String())
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("output file: %v", err)
	}
	report := string(data)
	for _, want := range []string{
		"Found 1 missing references:",
		"  Missing: Carol.Pose.2",
		"  Required by:",
		"    - Alice.Hair.3",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("output file missing %q:\n%s", want, report)
		}
	}
	if strings.Contains(report, "not used as a dependency") {
		t.Errorf("--missing-only should skip the unused list:\n%s", report)
	}
	if !strings.Contains(run.out.String(), outFile) {
		t.Errorf("console should name the output file:\n%s", run.out.String())
	}

	var decoded struct {
		RunID    string `json:"run_id"`
		Resolved map[string]struct {
			Match string `json:"match"`
		} `json:"resolved"`
		Missing map[string]struct {
			Dependents []string `json:"dependents"`
		} `json:"missing"`
	}
	raw, err := os.ReadFile(jsonFile)
	if err != nil {
		t.Fatalf("json report: %v", err)
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.RunID == "" {
		t.Error("report should carry a run id")
	}
	if got := decoded.Resolved["Bob.Skin.latest"].Match; got != "Bob.Skin.4" {
		t.Errorf("Bob.Skin.latest matched %q, want Bob.Skin.4", got)
	}
	if got := decoded.Missing["Carol.Pose.2"].Dependents; len(got) != 1 || got[0] != "Alice.Hair.3" {
		t.Errorf("Carol.Pose.2 dependents = %v", got)
	}
}

func TestScanCopyFound(t *testing.T) {
	vam, source := writeLibraries(t)
	dest := filepath.Join(vam, "AddonPackages", "restored")

	for i := 0; i < 2; i++ {
		var run testRun
		if err := run.execute(t, "scan", "-p", vam, "-s", source, "-c", "-d", dest, "-m"); err != nil {
			t.Fatalf("run %d: scan error = %v\n%s", i, err, run.err.String())
		}
	}
	entries, err := os.ReadDir(dest)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "Bob.Skin.4.var" {
		t.Errorf("destination entries = %v, want only Bob.Skin.4.var", entries)
	}
}

func TestScanName(t *testing.T) {
	vam, _ := writeLibraries(t)
	var run testRun
	if err := run.execute(t, "scan", "-p", vam, "-n", "carol.pose.var"); err != nil {
		t.Fatalf("scan error = %v", err)
	}
	out := run.out.String()
	for _, want := range []string{
		"The following 1 iteration of 'carol.pose' has other vars that depend on it:",
		"Carol.Pose.2 ->",
		"\tAlice.Hair.3",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestScanNameSuggestions(t *testing.T) {
	vam, _ := writeLibraries(t)
	var run testRun
	if err := run.execute(t, "scan", "-p", vam, "-n", "Dn.Lk"); err != nil {
		t.Fatalf("scan error = %v", err)
	}
	out := run.out.String()
	if !strings.Contains(out, "No vars match 'Dn.Lk'") || !strings.Contains(out, "Did you mean: Dan.Look.1") {
		t.Errorf("expected a suggestion:\n%s", out)
	}
}

func TestScanInvalidConfig(t *testing.T) {
	vam, source := writeLibraries(t)
	tests := []struct {
		name string
		args []string
	}{
		{"missing path", []string{"scan", "-p", filepath.Join(vam, "nope")}},
		{"copy without dest", []string{"scan", "-p", vam, "-s", source, "-c"}},
		{"dest is source", []string{"scan", "-p", vam, "-s", source, "-c", "-d", source}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var run testRun
			err := run.execute(t, tt.args...)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error = %v, want INVALID_CONFIG", err)
			}
			if run.out.Len() != 0 {
				t.Errorf("nothing should be reported before validation:\n%s", run.out.String())
			}
		})
	}
}

func TestScanConfigFile(t *testing.T) {
	vam, source := writeLibraries(t)
	cfgFile := filepath.Join(t.TempDir(), "varscan.toml")
	body := "path = " + quote(vam) + "\nsource = " + quote(source) + "\nmissing_only = true\n"
	if err := os.WriteFile(cfgFile, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	var run testRun
	if err := run.execute(t, "--config", cfgFile, "scan"); err != nil {
		t.Fatalf("scan error = %v\n%s", err, run.err.String())
	}
	if !strings.Contains(run.out.String(), "Missing: Carol.Pose.2") {
		t.Errorf("config file settings not applied:\n%s", run.out.String())
	}

	// A flag set on the command line wins over the file.
	run = testRun{}
	if err := run.execute(t, "--config", cfgFile, "scan", "-p", filepath.Join(vam, "nope")); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("flag override error = %v, want INVALID_CONFIG", err)
	}
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
