package core

import (
	"log"
	"net"
	"net/mail"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backends
const (
	StoreMemory   = "memory"
	StoreDatabase = "database"
)

// Email backends
const (
	EmailConsole  = "console"
	EmailSendgrid = "sendgrid"
	EmailSES      = "ses"
)

type (
	ServerConfig struct {
		Host            string
		Address         string
		DebugHost       string
		ShutdownTimeout time.Duration
		DisableReqLogs  bool
	}

	StoreConfig struct {
		Backend     string // StoreMemory | StoreDatabase
		FixturesDir string // optional seed data for the memory store
	}

	DatabaseConfig struct {
		Engine        string // postgres | sqlite
		Host          string
		Port          int
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
		Path          string // sqlite file (":memory:" allowed)
	}

	Config struct {
		Env              string
		Build            string
		AppName          string
		Debug            bool
		TestMode         bool
		WorkDir          string
		DefaultFromEmail mail.Address
		ReportRecipients []mail.Address
		EmailBackend     string // EmailConsole | EmailSendgrid | EmailSES; console in debug when unset
		RollbarToken     string
		SendgridAPIKey   string
		AWSRegion        string

		Server   ServerConfig
		Store    StoreConfig
		Database DatabaseConfig
	}
)

// Address returns the database "host:port".
func (c DatabaseConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func newViper() (*viper.Viper, string) {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("testMode", false)
	conf.SetDefault("build", "dev")
	conf.SetDefault("appName", "School Records")
	conf.SetDefault("defaultFromEmail", "noreply@localhost")
	conf.SetDefault("reportRecipients", "")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("sendgridApiKey", "")
	conf.SetDefault("emailBackend", "")
	conf.SetDefault("awsRegion", "us-east-1")

	conf.SetDefault("serverHost", "localhost")
	conf.SetDefault("serverAddress", ":8000")
	conf.SetDefault("serverDebugHost", ":4000")
	conf.SetDefault("serverShutdownTimeout", 5*time.Second)
	conf.SetDefault("serverDisableReqLogs", false)

	conf.SetDefault("storeBackend", StoreMemory)
	conf.SetDefault("storeFixturesDir", "")

	conf.SetDefault("dbEngine", "postgres")
	conf.SetDefault("dbHost", "localhost")
	conf.SetDefault("dbPort", 5432)
	conf.SetDefault("dbName", "schoolrecords")
	conf.SetDefault("dbUser", "")
	conf.SetDefault("dbPassword", "")
	conf.SetDefault("dbAdminUser", "postgres")
	conf.SetDefault("dbAdminPassword", "")
	conf.SetDefault("dbDisableTLS", true)
	conf.SetDefault("dbPath", "schoolrecords.db")

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()
	return conf, env
}

// NewConfig reads the application configuration from defaults, the optional
// config/.env.<env> file and <ENV>_* environment variables.
func NewConfig() *Config {
	conf, env := newViper()

	from, err := mail.ParseAddress(conf.GetString("defaultFromEmail"))
	if err != nil {
		log.Fatalf("config.defaultFromEmail: %v", err)
	}
	recipients, err := ParseAddressList(conf.GetString("reportRecipients"))
	if err != nil {
		log.Fatalf("config.reportRecipients: %v", err)
	}

	return &Config{
		Env:              env,
		Build:            conf.GetString("build"),
		AppName:          conf.GetString("appName"),
		Debug:            conf.GetBool("debug"),
		TestMode:         conf.GetBool("testMode"),
		WorkDir:          Getwd(),
		DefaultFromEmail: *from,
		ReportRecipients: recipients,
		EmailBackend:     strings.ToLower(conf.GetString("emailBackend")),
		RollbarToken:     conf.GetString("rollbarToken"),
		SendgridAPIKey:   conf.GetString("sendgridApiKey"),
		AWSRegion:        conf.GetString("awsRegion"),
		Server: ServerConfig{
			Host:            conf.GetString("serverHost"),
			Address:         conf.GetString("serverAddress"),
			DebugHost:       conf.GetString("serverDebugHost"),
			ShutdownTimeout: conf.GetDuration("serverShutdownTimeout"),
			DisableReqLogs:  conf.GetBool("serverDisableReqLogs"),
		},
		Store: StoreConfig{
			Backend:     strings.ToLower(conf.GetString("storeBackend")),
			FixturesDir: conf.GetString("storeFixturesDir"),
		},
		Database: DatabaseConfig{
			Engine:        strings.ToLower(conf.GetString("dbEngine")),
			Host:          conf.GetString("dbHost"),
			Port:          conf.GetInt("dbPort"),
			Name:          conf.GetString("dbName"),
			User:          conf.GetString("dbUser"),
			Password:      conf.GetString("dbPassword"),
			AdminUser:     conf.GetString("dbAdminUser"),
			AdminPassword: conf.GetString("dbAdminPassword"),
			DisableTLS:    conf.GetBool("dbDisableTLS"),
			Path:          conf.GetString("dbPath"),
		},
	}
}
