// Package ops loads and resolves the JSON runtime configuration.
package ops

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"marketwire/internal/chaos"
	"marketwire/internal/schema"
	"marketwire/pkg/conn"
)

// FileConfig mirrors the JSON config layout.
type FileConfig struct {
	Session  SessionConfig      `json:"session"`
	Capture  CaptureConfig      `json:"capture"`
	Replay   ReplayConfig       `json:"replay"`
	Chaos    ChaosConfig        `json:"chaos"`
	Store    StoreConfig        `json:"store"`
	Features FeatureFlagsConfig `json:"features"`
}

// SessionConfig describes the session to open.
type SessionConfig struct {
	Dataset       string   `json:"dataset"`
	SchemaVersion uint16   `json:"schemaVersion"`
	Kind          string   `json:"kind"`
	Symbols       []string `json:"symbols"`
	ReplayStartNs uint64   `json:"replayStartNs"`
	QueueSize     int      `json:"queueSize"`
}

// CaptureConfig describes where raw records get recorded.
type CaptureConfig struct {
	Path string `json:"path"`
}

// ReplayConfig describes a capture file to replay.
type ReplayConfig struct {
	Path  string  `json:"path"`
	Speed float64 `json:"speed"`
}

// ChaosConfig describes fault injection on the transport.
type ChaosConfig struct {
	Seed       int64   `json:"seed"`
	PanicRate  float64 `json:"panicRate"`
	MaxDelayMs int64   `json:"maxDelayMs"`
}

// StoreConfig carries the instrument-store connection settings.
type StoreConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Database string `json:"database"`
	SSLMode  string `json:"sslMode"`
}

// FeatureFlagsConfig captures optional runtime flags.
type FeatureFlagsConfig struct {
	EnableCapture *bool `json:"enableCapture"`
	EnableChaos   *bool `json:"enableChaos"`
	EnableStore   *bool `json:"enableStore"`
}

// FeatureFlags are resolved runtime flags.
type FeatureFlags struct {
	EnableCapture bool
	EnableChaos   bool
	EnableStore   bool
}

// SessionSpec is the resolved session definition.
type SessionSpec struct {
	Dataset       string
	SchemaVersion schema.Version
	Kind          schema.Kind
	Symbols       []string
	ReplayStartNs uint64
	QueueSize     int
}

// Loaded is the resolved configuration ready for use.
type Loaded struct {
	Session  SessionSpec
	Capture  CaptureConfig
	Replay   ReplayConfig
	Chaos    chaos.Config
	Store    conn.Option
	Features FeatureFlags
}

// Load reads a JSON config file and resolves every section.
func Load(path string) (Loaded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Loaded{}, err
	}
	var cfg FileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Loaded{}, err
	}

	session, err := resolveSession(cfg.Session)
	if err != nil {
		return Loaded{}, err
	}
	chaosCfg, err := resolveChaos(cfg.Chaos)
	if err != nil {
		return Loaded{}, err
	}
	if cfg.Replay.Speed < 0 {
		return Loaded{}, fmt.Errorf("replay speed must be >= 0")
	}

	return Loaded{
		Session:  session,
		Capture:  cfg.Capture,
		Replay:   cfg.Replay,
		Chaos:    chaosCfg,
		Store:    resolveStore(cfg.Store),
		Features: resolveFeatures(cfg.Features),
	}, nil
}

func resolveSession(cfg SessionConfig) (SessionSpec, error) {
	if cfg.Dataset == "" {
		return SessionSpec{}, fmt.Errorf("session dataset is empty")
	}

	version := schema.Version(cfg.SchemaVersion)
	switch version {
	case schema.VersionUnknown, schema.V1, schema.V2:
	default:
		return SessionSpec{}, fmt.Errorf("unsupported schema version: %d", cfg.SchemaVersion)
	}

	kind := schema.KindTrades
	if cfg.Kind != "" {
		parsed, err := schema.ParseKind(cfg.Kind)
		if err != nil {
			return SessionSpec{}, err
		}
		kind = parsed
	}

	if cfg.QueueSize < 0 {
		return SessionSpec{}, fmt.Errorf("session queueSize must be >= 0")
	}

	return SessionSpec{
		Dataset:       cfg.Dataset,
		SchemaVersion: version,
		Kind:          kind,
		Symbols:       cfg.Symbols,
		ReplayStartNs: cfg.ReplayStartNs,
		QueueSize:     cfg.QueueSize,
	}, nil
}

func resolveChaos(cfg ChaosConfig) (chaos.Config, error) {
	if cfg.MaxDelayMs < 0 {
		return chaos.Config{}, fmt.Errorf("chaos maxDelayMs must be >= 0")
	}
	resolved := chaos.Config{
		Seed:      cfg.Seed,
		PanicRate: cfg.PanicRate,
		MaxDelay:  time.Duration(cfg.MaxDelayMs) * time.Millisecond,
	}
	if err := resolved.Validate(); err != nil {
		return chaos.Config{}, err
	}
	return resolved, nil
}

func resolveStore(cfg StoreConfig) conn.Option {
	return conn.Option{
		Host:     cfg.Host,
		Port:     cfg.Port,
		User:     cfg.User,
		Password: cfg.Password,
		Database: cfg.Database,
		SSLMode:  cfg.SSLMode,
	}
}

func resolveFeatures(cfg FeatureFlagsConfig) FeatureFlags {
	var flags FeatureFlags
	if cfg.EnableCapture != nil {
		flags.EnableCapture = *cfg.EnableCapture
	}
	if cfg.EnableChaos != nil {
		flags.EnableChaos = *cfg.EnableChaos
	}
	if cfg.EnableStore != nil {
		flags.EnableStore = *cfg.EnableStore
	}
	return flags
}
