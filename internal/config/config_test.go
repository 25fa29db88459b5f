package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MatthewR-B/Chess-Honors-Project/internal/testutil"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	testutil.AssertNoError(t, cfg.finish())
	testutil.AssertEqual(t, cfg.ListenAddr, ":3000")
	testutil.AssertEqual(t, cfg.ArchivePath, filepath.Join("./data", "archive.sqlite"))
	testutil.AssertEqual(t, cfg.MatchInterval, time.Second)
}

func TestEnvOverrides(t *testing.T) {
	cfg := Default()
	cfg.applyEnv(envMap(map[string]string{
		"CHESS_LISTEN_ADDR":     ":9000",
		"CHESS_ALLOWED_ORIGINS": "http://a,http://b",
		"CHESS_DATA_DIR":        "/var/chess",
		"CHESS_MATCH_INTERVAL":  "250ms",
	}))
	testutil.AssertNoError(t, cfg.finish())
	testutil.AssertEqual(t, cfg.ListenAddr, ":9000")
	testutil.AssertEqual(t, cfg.Origins(), "http://a, http://b")
	testutil.AssertEqual(t, cfg.ArchivePath, filepath.Join("/var/chess", "archive.sqlite"))
	testutil.AssertEqual(t, cfg.MatchInterval, 250*time.Millisecond)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(path, []byte(`{"listen_addr": ":4000", "archive_path": "/tmp/a.sqlite"}`), 0o600)
	testutil.AssertNoError(t, err)

	cfg := Default()
	testutil.AssertNoError(t, readFile(path, &cfg))
	testutil.AssertNoError(t, cfg.finish())
	testutil.AssertEqual(t, cfg.ListenAddr, ":4000")
	testutil.AssertEqual(t, cfg.ArchivePath, "/tmp/a.sqlite")
}

func TestInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad interval", map[string]string{"CHESS_MATCH_INTERVAL": "soon"}},
		{"negative interval", map[string]string{"CHESS_MATCH_INTERVAL": "-1s"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			cfg.applyEnv(envMap(tc.env))
			err := cfg.finish()
			var invalid *InvalidConfig
			if !errors.As(err, &invalid) {
				t.Errorf("finish() = %v; want *InvalidConfig", err)
			}
		})
	}
}
