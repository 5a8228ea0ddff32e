package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromLookupDefaults(t *testing.T) {
	cfg, err := fromLookup(lookupFrom(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults %+v, got %+v", Default(), cfg)
	}
}

func TestFromLookupOverrides(t *testing.T) {
	cfg, err := fromLookup(lookupFrom(map[string]string{
		"HTTP_ADDR":         "127.0.0.1:9090",
		"SHUTDOWN_TIMEOUT":  "250ms",
		"MAX_INTERVALS":     "100",
		"OTEL_LOGS_ENABLED": "true",
		"OTEL_SERVICE_NAME": "simpson-test",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Config{
		Addr:            "127.0.0.1:9090",
		ShutdownTimeout: 250 * time.Millisecond,
		MaxIntervals:    100,
		OTelLogs:        true,
		ServiceName:     "simpson-test",
	}
	if cfg != want {
		t.Fatalf("expected %+v, got %+v", want, cfg)
	}
}

func TestFromLookupEmptyKeepsDefault(t *testing.T) {
	cfg, err := fromLookup(lookupFrom(map[string]string{"HTTP_ADDR": ""}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != DefaultAddr {
		t.Fatalf("expected %q, got %q", DefaultAddr, cfg.Addr)
	}
}

func TestFromLookupRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"SHUTDOWN_TIMEOUT":  "soon",
		"MAX_INTERVALS":     "-2",
		"OTEL_LOGS_ENABLED": "maybe",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			if _, err := fromLookup(lookupFrom(map[string]string{key: value})); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}
}

func TestLoadDotEnvIgnoresMissingFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("expected missing .env to be ignored, got %v", err)
	}
}

func TestLoadDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("SIMPSON_TEST_ADDR=:1111\nSIMPSON_TEST_NAME=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SIMPSON_TEST_ADDR", ":2222")
	t.Setenv("SIMPSON_TEST_NAME", "")
	os.Unsetenv("SIMPSON_TEST_NAME")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := os.Getenv("SIMPSON_TEST_ADDR"); got != ":2222" {
		t.Fatalf("expected process value to win, got %q", got)
	}
	if got := os.Getenv("SIMPSON_TEST_NAME"); got != "from-file" {
		t.Fatalf("expected value from file, got %q", got)
	}
}

func TestParseJobsAppliesDefaults(t *testing.T) {
	doc := []byte(`
jobs:
  - name: square
    a: 0
    b: 2
    n: 8
    expression: x^2
  - expression: sin(x)
    b: 3.14159265
`)

	jobs, err := ParseJobs(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}

	if jobs[0].Name != "square" || jobs[0].B != 2 || jobs[0].N != 8 {
		t.Fatalf("unexpected first job %+v", jobs[0])
	}

	second := jobs[1]
	if second.Name != "job 2" {
		t.Fatalf("expected generated name %q, got %q", "job 2", second.Name)
	}
	if second.A != 0 || second.N != 4 || second.Expression != "sin(x)" {
		t.Fatalf("expected defaults to fill omitted fields, got %+v", second)
	}

	p := second.Params()
	if p.B != 3.14159265 || p.N != 4 {
		t.Fatalf("unexpected params %+v", p)
	}
}

func TestParseJobsErrors(t *testing.T) {
	if _, err := ParseJobs([]byte("jobs: []\n")); !errors.Is(err, ErrNoJobs) {
		t.Fatalf("expected ErrNoJobs, got %v", err)
	}
	if _, err := ParseJobs([]byte("jobs:\n  - n: [1\n")); err == nil {
		t.Fatal("expected parse error for malformed YAML")
	}
	if _, err := ParseJobs([]byte("jobs:\n  - n: four\n")); err == nil {
		t.Fatal("expected decode error for non-integer n")
	}
}

func TestLoadJobs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.yaml")
	if err := os.WriteFile(path, []byte("jobs:\n  - expression: x\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	jobs, err := LoadJobs(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 1 || jobs[0].Expression != "x" {
		t.Fatalf("unexpected jobs %+v", jobs)
	}

	if _, err := LoadJobs(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
