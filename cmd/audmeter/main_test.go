// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ik5/audmeter/internal/audiotest"
)

func toneFile(t *testing.T, name string) string {
	t.Helper()

	const rate = 44100
	x := audiotest.Sine(rate, audiotest.Frames(rate, 4), 1000, audiotest.Amplitude(-20))
	return audiotest.TempWAV(t, name, rate, 16, audiotest.Replicate(2, x))
}

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()

	var out, errOut bytes.Buffer
	code = run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun_JSON(t *testing.T) {
	t.Parallel()

	a := toneFile(t, "a.wav")
	missing := filepath.Join(t.TempDir(), "gone.wav")

	code, stdout, stderr := runCLI(t, "-format", "json", "-log-level", "error", a, missing)
	if code != exitFileErrors {
		t.Errorf("exit code = %d, want %d; stderr: %s", code, exitFileErrors, stderr)
	}

	var records []map[string]any
	sc := bufio.NewScanner(strings.NewReader(stdout))
	for sc.Scan() {
		var rec map[string]any
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("line %q: %v", sc.Text(), err)
		}
		records = append(records, rec)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2:\n%s", len(records), stdout)
	}

	if records[0]["filename"] != "a.wav" || records[0]["status"] != "complete" {
		t.Errorf("first record = %v", records[0])
	}
	loud, _ := records[0]["loudness"].(map[string]any)
	if loud["lufs_i"] != -20.0 {
		t.Errorf("lufs_i = %v, want -20", loud["lufs_i"])
	}
	if records[1]["filename"] != "gone.wav" || records[1]["status"] != "error" || records[1]["error"] == nil {
		t.Errorf("second record = %v", records[1])
	}
}

func TestRun_Table(t *testing.T) {
	t.Parallel()

	a := toneFile(t, "a.wav")
	code, stdout, stderr := runCLI(t, "-log-level", "error", "-workers", "2", "-step", "0.1", a)
	if code != exitOK {
		t.Fatalf("exit code = %d; stderr: %s", code, stderr)
	}

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header and one row:\n%s", len(lines), stdout)
	}
	if !strings.HasPrefix(lines[0], "FILE") || !strings.Contains(lines[0], "LUFS-I") {
		t.Errorf("header = %q", lines[0])
	}
	for _, want := range []string{"a.wav", "WAV", "44,100 Hz", "16 bit", "00:04", "-20.0", "complete"} {
		if !strings.Contains(lines[1], want) {
			t.Errorf("row %q missing %q", lines[1], want)
		}
	}
}

func TestRun_SSEWithMetrics(t *testing.T) {
	t.Parallel()

	a := toneFile(t, "a.wav")
	metricsFile := filepath.Join(t.TempDir(), "audmeter.prom")

	code, stdout, stderr := runCLI(t, "-format", "sse", "-log-level", "error", "-metrics-file", metricsFile, a)
	if code != exitOK {
		t.Fatalf("exit code = %d; stderr: %s", code, stderr)
	}

	events := strings.Split(strings.TrimSpace(stdout), "\n\n")
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3:\n%s", len(events), stdout)
	}
	if !strings.Contains(events[2], `"type":"complete"`) {
		t.Errorf("last event = %s", events[2])
	}

	data, err := os.ReadFile(metricsFile)
	if err != nil {
		t.Fatalf("reading metrics: %v", err)
	}
	if !strings.Contains(string(data), `audmeter_files_total{status="complete"} 1`) {
		t.Errorf("metrics file missing file counter:\n%s", data)
	}
}

func TestRun_Config(t *testing.T) {
	t.Parallel()

	cfgPath := filepath.Join(t.TempDir(), "audmeter.yaml")
	if err := os.WriteFile(cfgPath, []byte("analysis:\n  filter_order: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if code, _, stderr := runCLI(t, "-config", cfgPath, toneFile(t, "a.wav")); code != exitUsage {
		t.Errorf("exit code = %d, want %d for an invalid configuration; stderr: %s", code, exitUsage, stderr)
	}
}

func TestRun_Usage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"no files", nil},
		{"unknown format", []string{"-format", "xml", "a.wav"}},
		{"unknown flag", []string{"-bogus", "a.wav"}},
		{"bad step", []string{"-step", "-1", "a.wav"}},
		{"bad log level", []string{"-log-level", "loud", "a.wav"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if code, _, _ := runCLI(t, tt.args...); code != exitUsage {
				t.Errorf("exit code = %d, want %d", code, exitUsage)
			}
		})
	}
}
