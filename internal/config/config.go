package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/Xenn-00/stufen-meister/internal/utils"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AppConfig struct {
	APP struct {
		Name     string `mapstructure:"NAME"`
		Port     string `mapstructure:"PORT"`
		State    string `mapstructure:"STATE"`
		LogLevel string `mapstructure:"LOG_LEVEL"`
		BaseURL  string `mapstructure:"BASE_URL"`
	}

	DATABASE struct {
		Postgres struct {
			DSN string `mapstructure:"DSN"`
		}
		Redis struct {
			Addr     string `mapstructure:"ADDR"`
			Password string `mapstructure:"PASSWORD"`
		}
	}

	APP_SECRET struct {
		Paseto struct {
			HexKey          string `mapstructure:"HEX_KEY"`
			TokenTTLMinutes int    `mapstructure:"TOKEN_TTL_MINUTES"`
		}
	}

	STORAGE struct {
		UploadDir   string `mapstructure:"UPLOAD_DIR"`
		MaxUploadMB int64  `mapstructure:"MAX_UPLOAD_MB"`
	}

	CACHE struct {
		TaskTTLSeconds int `mapstructure:"TASK_TTL_SECONDS"`
	}

	MAILER struct {
		RatePerSecond float64 `mapstructure:"RATE_PER_SECOND"`
		Burst         int     `mapstructure:"BURST"`
	}

	MAILTRAP struct {
		Sandbox struct {
			SandboxAPI    string `mapstructure:"SANDBOX_API"`
			SandboxURL    string `mapstructure:"SANDBOX_URL"`
			SandboxDomain string `mapstructure:"SANDBOX_DOMAIN"`
		}
		API struct {
			MailtrapTokenAPI string `mapstructure:"MAILTRAP_TOKEN_API"`
			MailtrapURL      string `mapstructure:"MAILTRAP_URL"`
			MailtrapDomain   string `mapstructure:"MAILTRAP_DOMAIN"`
		}
	}
}

// LoadConfig liest application.yaml aus dem Arbeitsverzeichnis. Werte aus der Umgebung
// (auch aus einer optionalen .env) überschreiben die Datei, z. B. DATABASE_POSTGRES_DSN.
func LoadConfig() *AppConfig {
	return loadConfig(viper.New(), ".")
}

func loadConfig(v *viper.Viper, path string) *AppConfig {
	if err := godotenv.Load(path + "/.env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg(".env konnte nicht gelesen werden")
	}

	v.SetConfigName("application")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Error().Err(err).Msg("Fehler beim Lesen der Konfigurationsdatei")
			return nil
		}
		log.Warn().Msg("application.yaml nicht gefunden, nur Umgebungsvariablen werden verwendet")
	}

	var config AppConfig
	if err := v.Unmarshal(&config); err != nil {
		log.Error().Err(err).Msg("Fehler beim Entpacken der Konfiguration")
		return nil
	}

	if config.DATABASE.Postgres.DSN == "" {
		log.Error().Msg("Datenbank-DSN ist nicht konfiguriert")
		return nil
	}

	if config.APP_SECRET.Paseto.HexKey == "" {
		log.Warn().Msg("Kein PASETO-Schlüssel konfiguriert, ein flüchtiger Schlüssel wird erzeugt")
		config.APP_SECRET.Paseto.HexKey = utils.GenerateSymmetricKey()
	}

	log.Info().Msg("Konfiguration geladen...")
	return &config
}

// setDefaults registriert jeden Schlüssel, damit AutomaticEnv ihn auch ohne YAML-Eintrag findet.
func setDefaults(v *viper.Viper) {
	v.SetDefault("APP.NAME", "stufen-meister")
	v.SetDefault("APP.PORT", "8080")
	v.SetDefault("APP.STATE", "dev")
	v.SetDefault("APP.LOG_LEVEL", "debug")
	v.SetDefault("APP.BASE_URL", "http://localhost:8080")
	v.SetDefault("DATABASE.Postgres.DSN", "")
	v.SetDefault("DATABASE.Redis.ADDR", "localhost:6379")
	v.SetDefault("DATABASE.Redis.PASSWORD", "")
	v.SetDefault("APP_SECRET.Paseto.HEX_KEY", "")
	v.SetDefault("APP_SECRET.Paseto.TOKEN_TTL_MINUTES", 60)
	v.SetDefault("STORAGE.UPLOAD_DIR", "./uploads")
	v.SetDefault("STORAGE.MAX_UPLOAD_MB", 16)
	v.SetDefault("CACHE.TASK_TTL_SECONDS", 300)
	v.SetDefault("MAILER.RATE_PER_SECOND", 2)
	v.SetDefault("MAILER.BURST", 5)
	v.SetDefault("MAILTRAP.Sandbox.SANDBOX_API", "")
	v.SetDefault("MAILTRAP.Sandbox.SANDBOX_URL", "")
	v.SetDefault("MAILTRAP.Sandbox.SANDBOX_DOMAIN", "")
	v.SetDefault("MAILTRAP.API.MAILTRAP_TOKEN_API", "")
	v.SetDefault("MAILTRAP.API.MAILTRAP_URL", "")
	v.SetDefault("MAILTRAP.API.MAILTRAP_DOMAIN", "")
}
