package config

import (
	"os"
	"path"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type SmtpConfig struct {
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
	From     string `yaml:"from" json:"from"`
}

type LoggerConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig    `yaml:"system" json:"system"`
	Web      WebConfig    `yaml:"web" json:"web"`
	Database DBConfig     `yaml:"database" json:"database"`
	Smtp     SmtpConfig   `yaml:"smtp" json:"smtp"`
	Logger   LoggerConfig `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "CyberSmarter",
		Location: "Africa/Nairobi",
		Workdir:  "/var/cybersmarter",
		Debug:    true,
	},
	Web: WebConfig{
		Host: "0.0.0.0",
		Port: 1816,
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "cybersmarter",
		User:     "postgres",
		Passwd:   "",
		MaxConn:  100,
		IdleConn: 10,
	},
	Smtp: SmtpConfig{
		Host: "smtp.gmail.com",
		Port: 587,
	},
	Logger: LoggerConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/cybersmarter/cybersmarter.log",
	},
}

func setEnvValue(name string, f func(v string)) {
	if value := os.Getenv(name); value != "" {
		f(value)
	}
}

func setEnvInt(name string, f func(v int)) {
	if value := os.Getenv(name); value != "" {
		f(cast.ToInt(value))
	}
}

func setEnvBool(name string, f func(v bool)) {
	if value := os.Getenv(name); value != "" {
		f(cast.ToBool(value))
	}
}

// LoadConfig reads the YAML config file when present and applies
// CYBERSMARTER_* environment overrides on top of the defaults.
func LoadConfig(cfile string) *AppConfig {
	defaults := *DefaultAppConfig
	cfg := &defaults
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			// Unmarshal on top of the defaults so omitted fields keep them
			if err := yaml.Unmarshal(data, cfg); err != nil {
				reset := *DefaultAppConfig
				cfg = &reset
			}
		}
	}

	setEnvValue("CYBERSMARTER_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvBool("CYBERSMARTER_SYSTEM_DEBUG", func(v bool) { cfg.System.Debug = v })

	setEnvValue("CYBERSMARTER_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvInt("CYBERSMARTER_WEB_PORT", func(v int) { cfg.Web.Port = v })

	setEnvValue("CYBERSMARTER_DB_TYPE", func(v string) { cfg.Database.Type = v })
	setEnvValue("CYBERSMARTER_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvInt("CYBERSMARTER_DB_PORT", func(v int) { cfg.Database.Port = v })
	setEnvValue("CYBERSMARTER_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("CYBERSMARTER_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("CYBERSMARTER_DB_PWD", func(v string) { cfg.Database.Passwd = v })
	setEnvBool("CYBERSMARTER_DB_DEBUG", func(v bool) { cfg.Database.Debug = v })

	setEnvValue("EMAIL_HOST", func(v string) { cfg.Smtp.Host = v })
	setEnvInt("EMAIL_PORT", func(v int) { cfg.Smtp.Port = v })
	setEnvValue("EMAIL_USER", func(v string) { cfg.Smtp.Username = v })
	setEnvValue("EMAIL_PASSWORD", func(v string) { cfg.Smtp.Password = v })
	setEnvValue("EMAIL_FROM", func(v string) { cfg.Smtp.From = v })

	setEnvValue("CYBERSMARTER_LOGGER_MODE", func(v string) { cfg.Logger.Mode = v })
	setEnvBool("CYBERSMARTER_LOGGER_FILE_ENABLE", func(v bool) { cfg.Logger.FileEnable = v })

	if cfg.Logger.Filename == "" {
		cfg.Logger.Filename = path.Join(cfg.System.Workdir, "cybersmarter.log")
	}

	return cfg
}
