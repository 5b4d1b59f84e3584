package main

import (
	"os"
	"path/filepath"
	"testing"
)

// resetFlags restores global flag state after each test.
func resetFlags(t *testing.T) {
	t.Helper()
	orig := struct{ url, key, fmt string }{flagURL, flagKey, flagFmt}
	t.Cleanup(func() {
		flagURL = orig.url
		flagKey = orig.key
		flagFmt = orig.fmt
	})
}

// isolate points HOME at an empty temp dir and clears the MOTIF_ variables.
func isolate(t *testing.T) string {
	t.Helper()
	resetFlags(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("MOTIF_URL", "")
	t.Setenv("MOTIF_API_KEY", "")
	flagURL = defaultURL
	flagKey = ""
	return home
}

func writeTestConfig(t *testing.T, home, content string) {
	t.Helper()
	dir := filepath.Join(home, ".motif")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestResolveConfigEnv(t *testing.T) {
	isolate(t)
	t.Setenv("MOTIF_URL", "http://env-server:9090")
	t.Setenv("MOTIF_API_KEY", "secret-key-from-env")

	resolveConfig()

	if flagURL != "http://env-server:9090" {
		t.Errorf("flagURL: got %q", flagURL)
	}
	if flagKey != "secret-key-from-env" {
		t.Errorf("flagKey: got %q", flagKey)
	}
}

func TestResolveConfigFlagTakesPrecedenceOverEnv(t *testing.T) {
	isolate(t)
	t.Setenv("MOTIF_URL", "http://env-server:9090")

	flagURL = "http://explicit-flag:1234"
	resolveConfig()

	if flagURL != "http://explicit-flag:1234" {
		t.Errorf("explicit flag should win; got %q", flagURL)
	}
}

func TestResolveConfigFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantURL string
		wantKey string
	}{
		{
			name:    "flat",
			content: "url: http://from-file:8080\napi_key: file-key\n",
			wantURL: "http://from-file:8080",
			wantKey: "file-key",
		},
		{
			name: "active profile",
			content: `
active_profile: staging
profiles:
  default:
    url: http://default:3040
    api_key: default-key
  staging:
    url: http://staging:4040
    api_key: staging-key
`,
			wantURL: "http://staging:4040",
			wantKey: "staging-key",
		},
		{
			name: "default profile",
			content: `
url: http://flat:1
profiles:
  default:
    url: http://default-profile:5050
`,
			wantURL: "http://default-profile:5050",
		},
		{
			name:    "invalid yaml is ignored",
			content: ":::not-yaml:::",
			wantURL: defaultURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := isolate(t)
			writeTestConfig(t, home, tt.content)

			resolveConfig()

			if flagURL != tt.wantURL {
				t.Errorf("flagURL: got %q, want %q", flagURL, tt.wantURL)
			}
			if flagKey != tt.wantKey {
				t.Errorf("flagKey: got %q, want %q", flagKey, tt.wantKey)
			}
		})
	}
}

func TestResolveConfigMissingFile(t *testing.T) {
	isolate(t)
	resolveConfig()

	if flagURL != defaultURL || flagKey != "" {
		t.Errorf("defaults changed: %q %q", flagURL, flagKey)
	}
}

func TestResolveConfigEnvNotOverriddenByFile(t *testing.T) {
	home := isolate(t)
	t.Setenv("MOTIF_API_KEY", "env-wins-key")
	writeTestConfig(t, home, "url: http://file:9000\napi_key: file-key\n")

	resolveConfig()

	if flagKey != "env-wins-key" {
		t.Errorf("flagKey should be env value; got %q", flagKey)
	}
	if flagURL != "http://file:9000" {
		t.Errorf("flagURL should come from the file; got %q", flagURL)
	}
}

func TestWriteConfigRoundTrip(t *testing.T) {
	isolate(t)

	path, err := writeConfig("http://written:1", "written-key")
	if err != nil {
		t.Fatalf("writeConfig: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("config mode = %v, want 0600", info.Mode().Perm())
	}

	resolveConfig()
	if flagURL != "http://written:1" || flagKey != "written-key" {
		t.Errorf("read back %q %q", flagURL, flagKey)
	}
}
