// Package config provides Viper-based configuration loading for the MUD server.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig holds top-level server settings.
type ServerConfig struct {
	// Name is the MUD name used in greetings and logs.
	Name string `mapstructure:"name"`
	// MaxPlayers caps simultaneous connections.
	MaxPlayers int `mapstructure:"max_players"`
	// Wizlock is the initial restrict level; 0 admits everyone.
	Wizlock int `mapstructure:"wizlock"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// TelnetConfig holds Telnet acceptor settings.
type TelnetConfig struct {
	// Host is the bind address for the Telnet listener.
	Host string `mapstructure:"host"`
	// Port is the TCP port for the Telnet listener.
	Port int `mapstructure:"port"`
	// WriteTimeout bounds a single socket write.
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// QueueSize is the number of output chunks buffered per connection.
	QueueSize int `mapstructure:"queue_size"`
}

// Addr returns the "host:port" listen address.
//
// Postcondition: Returns a non-empty string in "host:port" format.
func (t TelnetConfig) Addr() string {
	return fmt.Sprintf("%s:%d", t.Host, t.Port)
}

// WebsocketConfig holds the websocket listener settings.
type WebsocketConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	Path    string `mapstructure:"path"`
}

// Addr returns the "host:port" listen address.
func (w WebsocketConfig) Addr() string {
	return fmt.Sprintf("%s:%d", w.Host, w.Port)
}

// SSHConfig holds the ssh listener settings.
type SSHConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	// HostKeyPath is the PEM ed25519 host key; generated when missing.
	HostKeyPath string `mapstructure:"host_key_path"`
}

// Addr returns the "host:port" listen address.
func (s SSHConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// AdminConfig holds the admin gRPC and metrics listener settings.
type AdminConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	GRPCHost    string        `mapstructure:"grpc_host"`
	GRPCPort    int           `mapstructure:"grpc_port"`
	MetricsHost string        `mapstructure:"metrics_host"`
	MetricsPort int           `mapstructure:"metrics_port"`
	JWTSecret   string        `mapstructure:"jwt_secret"`
	TokenTTL    time.Duration `mapstructure:"token_ttl"`
}

// GRPCAddr returns the "host:port" gRPC address.
func (a AdminConfig) GRPCAddr() string {
	return fmt.Sprintf("%s:%d", a.GRPCHost, a.GRPCPort)
}

// MetricsAddr returns the "host:port" metrics address.
func (a AdminConfig) MetricsAddr() string {
	return fmt.Sprintf("%s:%d", a.MetricsHost, a.MetricsPort)
}

// StorageConfig selects the player store backend.
type StorageConfig struct {
	// Players is "postgres" or "bolt".
	Players string `mapstructure:"players"`
	// BoltPath is the bbolt file for boards, mail, bans and aliases (and
	// players with the bolt backend).
	BoltPath string `mapstructure:"bolt_path"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// GameConfig holds gameplay tunables.
type GameConfig struct {
	WorldDir    string `mapstructure:"world_dir"`
	TextDir     string `mapstructure:"text_dir"`
	ScriptsDir  string `mapstructure:"scripts_dir"`
	SocialsFile string `mapstructure:"socials_file"`

	MortalStartRoom   int32 `mapstructure:"mortal_start_room"`
	ImmortalStartRoom int32 `mapstructure:"immortal_start_room"`
	FrozenStartRoom   int32 `mapstructure:"frozen_start_room"`
	// VoidRoom holds players pulled out of the world for idling.
	VoidRoom int32 `mapstructure:"void_room"`

	// PulseInterval is the length of one game pulse.
	PulseInterval time.Duration `mapstructure:"pulse_interval"`
	// IdleVoidTicks moves an idle player to the void.
	IdleVoidTicks int `mapstructure:"idle_void_ticks"`
	// IdleRentTicks rents out an idle player.
	IdleRentTicks int `mapstructure:"idle_rent_ticks"`
	// IdleMaxLevel exempts players at or above it from idling.
	IdleMaxLevel int `mapstructure:"idle_max_level"`
	// AutosaveMinutes is the autosave interval; 0 disables autosave.
	AutosaveMinutes int `mapstructure:"autosave_minutes"`

	PageLength        int    `mapstructure:"page_length"`
	PageWidth         int    `mapstructure:"page_width"`
	TrackThroughDoors bool   `mapstructure:"track_through_doors"`
	PasswordScheme    string `mapstructure:"password_scheme"`
	MaxBadPasswords   int    `mapstructure:"max_bad_passwords"`
	MaxNameLength     int    `mapstructure:"max_name_length"`
	// Nameserver resolves client hostnames when set.
	Nameserver bool `mapstructure:"nameserver"`
}

// MessagingConfig holds the NATS channel bridge settings.
type MessagingConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Embedded starts an in-process NATS server.
	Embedded     bool   `mapstructure:"embedded"`
	EmbeddedPort int    `mapstructure:"embedded_port"`
	URL          string `mapstructure:"url"`
	// SubjectPrefix is prepended to channel subjects.
	SubjectPrefix string `mapstructure:"subject_prefix"`
	// Origin identifies this server in bridged messages.
	Origin string `mapstructure:"origin"`
}

// Config is the top-level application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Telnet    TelnetConfig    `mapstructure:"telnet"`
	Websocket WebsocketConfig `mapstructure:"websocket"`
	SSH       SSHConfig       `mapstructure:"ssh"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Game      GameConfig      `mapstructure:"game"`
	Messaging MessagingConfig `mapstructure:"messaging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string
	for _, err := range []error{
		validateServer(c.Server),
		validateStorage(c.Storage),
		validateTelnet(c.Telnet),
		validatePort("websocket.port", c.Websocket.Port, c.Websocket.Enabled),
		validatePort("ssh.port", c.SSH.Port, c.SSH.Enabled),
		validateAdmin(c.Admin),
		validateLogging(c.Logging),
		validateGame(c.Game),
		validateMessaging(c.Messaging),
	} {
		if err != nil {
			errs = append(errs, err.Error())
		}
	}
	if c.Storage.Players == "postgres" {
		if err := validateDatabase(c.Database); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func joinErrs(errs []string) error {
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validatePort(name string, port int, enabled bool) error {
	if enabled && (port < 1 || port > 65535) {
		return fmt.Errorf("%s must be 1-65535, got %d", name, port)
	}
	return nil
}

func validateServer(s ServerConfig) error {
	var errs []string
	if s.Name == "" {
		errs = append(errs, "server.name must not be empty")
	}
	if s.MaxPlayers < 1 {
		errs = append(errs, fmt.Sprintf("server.max_players must be >= 1, got %d", s.MaxPlayers))
	}
	if s.Wizlock < 0 {
		errs = append(errs, "server.wizlock must not be negative")
	}
	return joinErrs(errs)
}

func validateStorage(s StorageConfig) error {
	var errs []string
	if s.Players != "postgres" && s.Players != "bolt" {
		errs = append(errs, fmt.Sprintf("storage.players must be one of [postgres, bolt], got %q", s.Players))
	}
	if s.BoltPath == "" {
		errs = append(errs, "storage.bolt_path must not be empty")
	}
	return joinErrs(errs)
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "database.min_conns must not exceed database.max_conns")
	}
	return joinErrs(errs)
}

func validateTelnet(t TelnetConfig) error {
	var errs []string
	if t.Port < 1 || t.Port > 65535 {
		errs = append(errs, fmt.Sprintf("telnet.port must be 1-65535, got %d", t.Port))
	}
	if t.WriteTimeout < 0 {
		errs = append(errs, "telnet.write_timeout must not be negative")
	}
	if t.QueueSize < 1 {
		errs = append(errs, fmt.Sprintf("telnet.queue_size must be >= 1, got %d", t.QueueSize))
	}
	return joinErrs(errs)
}

func validateAdmin(a AdminConfig) error {
	if !a.Enabled {
		return nil
	}
	var errs []string
	if err := validatePort("admin.grpc_port", a.GRPCPort, true); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validatePort("admin.metrics_port", a.MetricsPort, true); err != nil {
		errs = append(errs, err.Error())
	}
	if len(a.JWTSecret) < 16 {
		errs = append(errs, "admin.jwt_secret must be at least 16 bytes")
	}
	if a.TokenTTL <= 0 {
		errs = append(errs, "admin.token_ttl must be positive")
	}
	return joinErrs(errs)
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.WorldDir == "" {
		errs = append(errs, "game.world_dir must not be empty")
	}
	if g.TextDir == "" {
		errs = append(errs, "game.text_dir must not be empty")
	}
	if g.PulseInterval <= 0 {
		errs = append(errs, "game.pulse_interval must be positive")
	}
	if g.IdleVoidTicks < 1 || g.IdleRentTicks < g.IdleVoidTicks {
		errs = append(errs, fmt.Sprintf("game idle limits must satisfy 1 <= idle_void_ticks (%d) <= idle_rent_ticks (%d)",
			g.IdleVoidTicks, g.IdleRentTicks))
	}
	if g.AutosaveMinutes < 0 {
		errs = append(errs, "game.autosave_minutes must not be negative")
	}
	if g.PageLength < 1 || g.PageWidth < 20 {
		errs = append(errs, fmt.Sprintf("game paging must satisfy page_length >= 1 and page_width >= 20, got %d/%d",
			g.PageLength, g.PageWidth))
	}
	validSchemes := map[string]bool{"pbkdf2": true, "bcrypt": true, "crypt": true}
	if !validSchemes[g.PasswordScheme] {
		errs = append(errs, fmt.Sprintf("game.password_scheme must be one of [pbkdf2, bcrypt, crypt], got %q", g.PasswordScheme))
	}
	if g.MaxBadPasswords < 1 {
		errs = append(errs, "game.max_bad_passwords must be >= 1")
	}
	if g.MaxNameLength < 2 {
		errs = append(errs, "game.max_name_length must be >= 2")
	}
	return joinErrs(errs)
}

func validateMessaging(m MessagingConfig) error {
	if !m.Enabled {
		return nil
	}
	var errs []string
	if !m.Embedded && m.URL == "" {
		errs = append(errs, "messaging.url must be set unless messaging.embedded")
	}
	if m.SubjectPrefix == "" {
		errs = append(errs, "messaging.subject_prefix must not be empty")
	}
	return joinErrs(errs)
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with CIRCLE_ prefix
	v.SetEnvPrefix("CIRCLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Viper instance holding only the default values.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.name", "CircleMUD")
	v.SetDefault("server.max_players", 300)
	v.SetDefault("server.wizlock", 0)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "circle")
	v.SetDefault("database.password", "circle")
	v.SetDefault("database.name", "circle")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")

	v.SetDefault("telnet.host", "0.0.0.0")
	v.SetDefault("telnet.port", 4000)
	v.SetDefault("telnet.write_timeout", "30s")
	v.SetDefault("telnet.queue_size", 64)

	v.SetDefault("websocket.enabled", false)
	v.SetDefault("websocket.host", "0.0.0.0")
	v.SetDefault("websocket.port", 4080)
	v.SetDefault("websocket.path", "/ws")

	v.SetDefault("ssh.enabled", false)
	v.SetDefault("ssh.host", "0.0.0.0")
	v.SetDefault("ssh.port", 4022)
	v.SetDefault("ssh.host_key_path", "data/ssh_host_ed25519")

	v.SetDefault("admin.enabled", false)
	v.SetDefault("admin.grpc_host", "127.0.0.1")
	v.SetDefault("admin.grpc_port", 50051)
	v.SetDefault("admin.metrics_host", "127.0.0.1")
	v.SetDefault("admin.metrics_port", 9100)
	v.SetDefault("admin.token_ttl", "1h")

	v.SetDefault("storage.players", "bolt")
	v.SetDefault("storage.bolt_path", "data/circle.db")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("game.world_dir", "content/world")
	v.SetDefault("game.text_dir", "content/text")
	v.SetDefault("game.scripts_dir", "content/scripts")
	v.SetDefault("game.socials_file", "content/socials.yaml")
	v.SetDefault("game.mortal_start_room", 3001)
	v.SetDefault("game.immortal_start_room", 1204)
	v.SetDefault("game.frozen_start_room", 1202)
	v.SetDefault("game.void_room", 0)
	v.SetDefault("game.pulse_interval", "100ms")
	v.SetDefault("game.idle_void_ticks", 8)
	v.SetDefault("game.idle_rent_ticks", 48)
	v.SetDefault("game.idle_max_level", 32)
	v.SetDefault("game.autosave_minutes", 5)
	v.SetDefault("game.page_length", 22)
	v.SetDefault("game.page_width", 80)
	v.SetDefault("game.track_through_doors", true)
	v.SetDefault("game.password_scheme", "pbkdf2")
	v.SetDefault("game.max_bad_passwords", 3)
	v.SetDefault("game.max_name_length", 20)
	v.SetDefault("game.nameserver", false)

	v.SetDefault("messaging.enabled", false)
	v.SetDefault("messaging.embedded", true)
	v.SetDefault("messaging.embedded_port", -1)
	v.SetDefault("messaging.subject_prefix", "circle.chan")
	v.SetDefault("messaging.origin", "circle")
}
