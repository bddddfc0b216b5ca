package ops

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"marketwire/internal/schema"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %+v", err)
	}
	return path
}

func TestLoadResolvesEverySection(t *testing.T) {
	path := writeConfig(t, `{
		"session": {
			"dataset": "GLBX.MDP3",
			"schemaVersion": 2,
			"kind": "definition",
			"symbols": ["ESZ3", "NQZ3"],
			"replayStartNs": 1700000000000000000,
			"queueSize": 256
		},
		"capture": {"path": "/var/lib/marketwire/session.mwc"},
		"replay": {"path": "old.mwc", "speed": 2.5},
		"chaos": {"seed": 42, "panicRate": 0.1, "maxDelayMs": 50},
		"store": {"host": "db.internal", "port": 5433, "user": "md", "database": "instruments"},
		"features": {"enableCapture": true, "enableStore": true}
	}`)

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %+v", err)
	}

	if loaded.Session.Dataset != "GLBX.MDP3" {
		t.Fatalf("dataset mismatch! should be GLBX.MDP3 but got %s", loaded.Session.Dataset)
	}
	if loaded.Session.SchemaVersion != schema.V2 {
		t.Fatalf("version mismatch! should be %d but got %d", schema.V2, loaded.Session.SchemaVersion)
	}
	if loaded.Session.Kind != schema.KindDefinition {
		t.Fatalf("kind mismatch! should be %v but got %v", schema.KindDefinition, loaded.Session.Kind)
	}
	if len(loaded.Session.Symbols) != 2 {
		t.Fatalf("symbol count mismatch! should be 2 but got %d", len(loaded.Session.Symbols))
	}
	if loaded.Capture.Path != "/var/lib/marketwire/session.mwc" {
		t.Fatalf("capture path mismatch! got %s", loaded.Capture.Path)
	}
	if loaded.Replay.Speed != 2.5 {
		t.Fatalf("replay speed mismatch! should be 2.5 but got %v", loaded.Replay.Speed)
	}
	if loaded.Chaos.Seed != 42 || loaded.Chaos.MaxDelay != 50*time.Millisecond {
		t.Fatalf("chaos config mismatch! got %+v", loaded.Chaos)
	}
	if loaded.Store.Host != "db.internal" || loaded.Store.Port != 5433 {
		t.Fatalf("store config mismatch! got %+v", loaded.Store)
	}
	if !loaded.Features.EnableCapture || !loaded.Features.EnableStore || loaded.Features.EnableChaos {
		t.Fatalf("feature flags mismatch! got %+v", loaded.Features)
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `{"session": {"dataset": "XNAS.ITCH"}}`)

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %+v", err)
	}
	if loaded.Session.SchemaVersion != schema.VersionUnknown {
		t.Fatalf("version mismatch! should be %d but got %d",
			schema.VersionUnknown, loaded.Session.SchemaVersion)
	}
	// An omitted kind defaults to the trades feed.
	if loaded.Session.Kind != schema.KindTrades {
		t.Fatalf("kind mismatch! should be %v but got %v", schema.KindTrades, loaded.Session.Kind)
	}
	if loaded.Features.EnableCapture || loaded.Features.EnableChaos || loaded.Features.EnableStore {
		t.Fatalf("feature flags should default off, got %+v", loaded.Features)
	}
}

func TestLoadRejections(t *testing.T) {
	testCases := []struct {
		desc string
		body string
	}{
		{"missing dataset", `{"session": {}}`},
		{"bad schema version", `{"session": {"dataset": "X", "schemaVersion": 9}}`},
		{"bad kind", `{"session": {"dataset": "X", "kind": "mbp-10"}}`},
		{"negative queue size", `{"session": {"dataset": "X", "queueSize": -1}}`},
		{"negative replay speed", `{"session": {"dataset": "X"}, "replay": {"speed": -1}}`},
		{"bad panic rate", `{"session": {"dataset": "X"}, "chaos": {"panicRate": 1.5}}`},
		{"negative chaos delay", `{"session": {"dataset": "X"}, "chaos": {"maxDelayMs": -1}}`},
		{"malformed json", `{`},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tc.body)); err == nil {
				t.Fatal("config should be rejected")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("missing file should be an error")
	}
}
