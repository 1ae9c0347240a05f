package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config configuración completa del servicio, cargada desde config.toml
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	SMTP     SMTPConfig     `toml:"smtp"`
	Reservas ReservasConfig `toml:"reservas"`
}

// ServerConfig parámetros del servidor HTTP
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig conexión a PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN construye el data source name para lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig destino y nivel del logger
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig exposición de métricas Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// SMTPConfig transporte de correo para notificaciones.
// El envío siempre es best-effort: un fallo de SMTP nunca afecta la operación.
type SMTPConfig struct {
	Enabled  bool   `toml:"enabled"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	From     string `toml:"from"`
}

// ReservasConfig reglas de negocio del sistema de reservas.
// Se pasa explícitamente a los componentes que la necesitan
// en lugar de leerse desde estado global.
type ReservasConfig struct {
	// Grilla de bloques horarios del día
	SlotIntervalMin int    `toml:"slot_interval_min"`
	DayStart        string `toml:"day_start"`
	DayEnd          string `toml:"day_end"`

	// Ventana mínima (horas) para cancelar una reserva APROBADA
	MinCancelWindowHours int `toml:"min_cancel_window_hours"`

	// Grupo de logística/aseo que prepara los espacios
	CleaningGroup       string `toml:"cleaning_group"`
	SendEmailToCleaning bool   `toml:"send_email_to_cleaning"`

	// Dominios de correo institucional permitidos
	InstitutionEmailDomains []string `toml:"institution_email_domains"`

	// Zona horaria institucional para bloques y reportes
	Timezone string `toml:"timezone"`

	// Flags declarados, sin uso en el núcleo todavía
	FeatureICSExport bool `toml:"feature_ics_export"`
	FeatureWaitlist  bool `toml:"feature_waitlist"`
}

// Load lee y valida la configuración desde un archivo TOML
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if cfg.Database.Host == "" || cfg.Database.DBName == "" {
		return nil, fmt.Errorf("config: database host and dbname are required")
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 300
	}
	if cfg.Logs.Level == "" {
		cfg.Logs.Level = "info"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "reservas-inacap"
	}
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = 587
	}
	if cfg.Reservas.SlotIntervalMin == 0 {
		cfg.Reservas.SlotIntervalMin = 30
	}
	if cfg.Reservas.DayStart == "" {
		cfg.Reservas.DayStart = "08:30"
	}
	if cfg.Reservas.DayEnd == "" {
		cfg.Reservas.DayEnd = "22:00"
	}
	if cfg.Reservas.MinCancelWindowHours == 0 {
		cfg.Reservas.MinCancelWindowHours = 2
	}
	if cfg.Reservas.CleaningGroup == "" {
		cfg.Reservas.CleaningGroup = "Aseo"
	}
	if len(cfg.Reservas.InstitutionEmailDomains) == 0 {
		cfg.Reservas.InstitutionEmailDomains = []string{"inacap.cl", "inacapmail.cl"}
	}
	if cfg.Reservas.Timezone == "" {
		cfg.Reservas.Timezone = "America/Santiago"
	}
}
