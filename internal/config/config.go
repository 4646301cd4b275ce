// Package config loads server settings from YAML with environment
// overrides.
package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/pixil98/go-errors"
	"gopkg.in/yaml.v3"
)

const (
	EnvConfigPath = "CRAFTVIVAL_CONFIG"
	EnvDSN        = "CRAFTVIVAL_DB_DSN"
	EnvListen     = "CRAFTVIVAL_LISTEN"

	DefaultPath = "configs/craftvival.yaml"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Inventory InventoryConfig `yaml:"inventory"`
	Recipes   RecipesConfig   `yaml:"recipes"`
	Archive   ArchiveConfig   `yaml:"archive"`
	Demo      DemoConfig      `yaml:"demo"`
}

type ServerConfig struct {
	Listen string `yaml:"listen"`
}

type StorageConfig struct {
	// Kind is "memory" or "postgres".
	Kind          string `yaml:"kind"`
	DSN           string `yaml:"dsn"`
	MigrationsDir string `yaml:"migrations_dir"`
}

type InventoryConfig struct {
	Size       int `yaml:"size"`
	StackLimit int `yaml:"stack_limit"`
}

type RecipesConfig struct {
	// Path is empty for the built-in book.
	Path string `yaml:"path"`
}

type ArchiveConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
	Prefix  string `yaml:"prefix"`
}

type DemoConfig struct {
	PlayerID string `yaml:"player_id"`
}

func Default() Config {
	return Config{
		Server:    ServerConfig{Listen: ":8080"},
		Storage:   StorageConfig{Kind: StoreMemory},
		Inventory: InventoryConfig{Size: 5, StackLimit: 5},
		Archive:   ArchiveConfig{Dir: "data/events", Prefix: "events"},
		Demo:      DemoConfig{PlayerID: "demo-player"},
	}
}

// Load reads the file named by CRAFTVIVAL_CONFIG, or DefaultPath. A missing
// file leaves the defaults in place. Environment overrides apply last.
func Load() (Config, error) {
	path := strings.TrimSpace(os.Getenv(EnvConfigPath))
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	cfg, err := LoadFile(path)
	if err != nil && !(stderrors.Is(err, fs.ErrNotExist) && !explicit) {
		return Config{}, err
	}
	if err != nil {
		cfg = Default()
	}
	cfg.applyEnv()
	return cfg, nil
}

func LoadFile(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) fillDefaults() {
	d := Default()
	if c.Server.Listen == "" {
		c.Server.Listen = d.Server.Listen
	}
	if c.Storage.Kind == "" {
		c.Storage.Kind = d.Storage.Kind
	}
	if c.Inventory.Size == 0 {
		c.Inventory.Size = d.Inventory.Size
	}
	if c.Inventory.StackLimit == 0 {
		c.Inventory.StackLimit = d.Inventory.StackLimit
	}
	if c.Archive.Dir == "" {
		c.Archive.Dir = d.Archive.Dir
	}
	if c.Archive.Prefix == "" {
		c.Archive.Prefix = d.Archive.Prefix
	}
}

func (c *Config) applyEnv() {
	if dsn := strings.TrimSpace(os.Getenv(EnvDSN)); dsn != "" {
		c.Storage.DSN = dsn
		c.Storage.Kind = StorePostgres
	}
	if listen := strings.TrimSpace(os.Getenv(EnvListen)); listen != "" {
		c.Server.Listen = listen
	}
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.Server.Listen == "" {
		el.Add(fmt.Errorf("server.listen is required"))
	}
	el.Add(c.Storage.Validate())
	el.Add(c.Inventory.Validate())
	if c.Archive.Enabled && c.Archive.Dir == "" {
		el.Add(fmt.Errorf("archive.dir is required when the archive is enabled"))
	}

	return el.Err()
}

func (c *StorageConfig) Validate() error {
	el := errors.NewErrorList()

	switch c.Kind {
	case StoreMemory:
	case StorePostgres:
		if c.DSN == "" {
			el.Add(fmt.Errorf("storage.dsn is required for postgres (or set %s)", EnvDSN))
		}
	default:
		el.Add(fmt.Errorf("storage.kind %q must be %q or %q", c.Kind, StoreMemory, StorePostgres))
	}

	return el.Err()
}

func (c *InventoryConfig) Validate() error {
	el := errors.NewErrorList()

	if c.Size <= 0 {
		el.Add(fmt.Errorf("inventory.size must be positive, got %d", c.Size))
	}
	if c.StackLimit <= 0 {
		el.Add(fmt.Errorf("inventory.stack_limit must be positive, got %d", c.StackLimit))
	}

	return el.Err()
}
