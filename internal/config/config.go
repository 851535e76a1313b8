package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		// dev | prod
		Env string `yaml:"app_env"`
	} `yaml:"app"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	// Paths define el layout en disco. Todos relativos a Root salvo
	// que vengan absolutos en el YAML.
	Paths struct {
		Root   string `yaml:"root"`
		Config string `yaml:"config"`
		Data   string `yaml:"data"`
		Tokens string `yaml:"tokens"`
		Logs   string `yaml:"logs"`
	} `yaml:"paths"`

	Cache struct {
		Driver string `yaml:"driver"` // "memory" | "redis"
		Redis  struct {
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
		Memory struct {
			DefaultTTL string `yaml:"default_ttl"`
		} `yaml:"memory"`
	} `yaml:"cache"`

	Refresher struct {
		Enabled  bool   `yaml:"enabled"`
		Interval string `yaml:"interval"`
	} `yaml:"refresher"`

	Tokens struct {
		// Ventana de validez del refresh token desde su emisión.
		RefreshTTL string `yaml:"refresh_ttl"`
	} `yaml:"tokens"`
}

// Load lee el YAML si existe y aplica overrides de entorno.
// Un archivo ausente no es error: quedan los defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.applyDefaults()

	if path != "" {
		b, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(b, cfg); err != nil {
				return nil, err
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults() // re-llenar lo que el YAML dejó vacío
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8090"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Paths.Root == "" {
		c.Paths.Root = "."
	}
	if c.Paths.Config == "" {
		c.Paths.Config = "config"
	}
	if c.Paths.Data == "" {
		c.Paths.Data = "data"
	}
	if c.Paths.Tokens == "" {
		c.Paths.Tokens = "tokens"
	}
	if c.Paths.Logs == "" {
		c.Paths.Logs = "logs"
	}
	if c.Cache.Driver == "" {
		c.Cache.Driver = "memory"
	}
	if c.Cache.Memory.DefaultTTL == "" {
		c.Cache.Memory.DefaultTTL = "5m"
	}
	if c.Refresher.Interval == "" {
		c.Refresher.Interval = "30s"
	}
	if c.Tokens.RefreshTTL == "" {
		c.Tokens.RefreshTTL = "168h" // 7 días
	}
}

func (c *Config) applyEnv() {
	if v := getenv("SYNCSCHWAB_ENV"); v != "" {
		c.App.Env = v
	}
	if v := getenv("SYNCSCHWAB_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := getenv("SYNCSCHWAB_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getenv("SYNCSCHWAB_ROOT"); v != "" {
		c.Paths.Root = v
	}
	if v := getenv("SYNCSCHWAB_CACHE_DRIVER"); v != "" {
		c.Cache.Driver = v
	}
	if v := getenv("SYNCSCHWAB_REDIS_HOST"); v != "" {
		c.Cache.Redis.Host = v
	}
	if v := getenv("SYNCSCHWAB_REDIS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Cache.Redis.Port = n
		}
	}
	if v := getenv("SYNCSCHWAB_REFRESH_INTERVAL"); v != "" {
		c.Refresher.Interval = v
	}
	if v := getenv("SYNCSCHWAB_REFRESHER_ENABLED"); v != "" {
		c.Refresher.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
}

func getenv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

// ─── Helpers de rutas (layout del proyecto) ───

func (c *Config) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(c.Paths.Root, dir)
}

func (c *Config) ConfigDir() string { return c.resolve(c.Paths.Config) }
func (c *Config) DataDir() string   { return c.resolve(c.Paths.Data) }
func (c *Config) TokensDir() string { return c.resolve(c.Paths.Tokens) }
func (c *Config) LogsDir() string   { return c.resolve(c.Paths.Logs) }

func (c *Config) ClientsFile() string  { return filepath.Join(c.ConfigDir(), "clients.json") }
func (c *Config) SettingsFile() string { return filepath.Join(c.ConfigDir(), "general_settings.json") }
func (c *Config) UIStateFile() string  { return filepath.Join(c.ConfigDir(), "ui_state.json") }

func (c *Config) GUIStatusFile() string    { return filepath.Join(c.ConfigDir(), "gui_status.json") }
func (c *Config) WorkerStatusFile() string { return filepath.Join(c.ConfigDir(), "worker_status.json") }

func (c *Config) AccountCacheFile() string { return filepath.Join(c.DataDir(), "account_cache.json") }

// TokensFile retorna la ruta al archivo de tokens de una cuenta.
// accountID es "main" o el id del cliente (slave_N).
func (c *Config) TokensFile(accountID string) string {
	return filepath.Join(c.TokensDir(), accountID+"_tokens.json")
}

// ClientHistoryFile retorna la ruta al historial de órdenes de un cliente.
func (c *Config) ClientHistoryFile(clientID string) string {
	return filepath.Join(c.DataDir(), "clients", clientID+"_history.json")
}

// EnsureDirs crea los directorios del layout si no existen.
func (c *Config) EnsureDirs() error {
	for _, d := range []string{c.ConfigDir(), c.DataDir(), c.TokensDir(), c.LogsDir(), filepath.Join(c.DataDir(), "clients")} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// RefreshTTL parsea la ventana de validez del refresh token.
func (c *Config) RefreshTTL() time.Duration {
	d, err := time.ParseDuration(c.Tokens.RefreshTTL)
	if err != nil || d <= 0 {
		return 168 * time.Hour
	}
	return d
}

// RefreshInterval parsea el intervalo del refresher de cache.
func (c *Config) RefreshInterval() time.Duration {
	d, err := time.ParseDuration(c.Refresher.Interval)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// MemoryTTL parsea el TTL por defecto del cache en memoria.
func (c *Config) MemoryTTL() time.Duration {
	d, err := time.ParseDuration(c.Cache.Memory.DefaultTTL)
	if err != nil || d <= 0 {
		return 5 * time.Minute
	}
	return d
}
