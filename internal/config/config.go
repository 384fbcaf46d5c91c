package config

import (
	"path/filepath"

	"github.com/olusolaa/forge-deploy-automator/internal/log"
)

type Config struct {
	Settings SettingsConfig `mapstructure:"settings"`
	Project  ProjectConfig  `mapstructure:"project"`
	Tools    ToolsConfig    `mapstructure:"tools"`
}

type SettingsConfig struct {
	LogLevel     log.Level  `mapstructure:"log_level"`
	LogFormat    log.Format `mapstructure:"log_format"`
	ReporterType string     `mapstructure:"reporter" validate:"oneof=text json"`
	NoColor      bool       `mapstructure:"no_color"`
}

type ProjectConfig struct {
	// Root is the deployed application directory the pipeline operates on.
	// Empty means the current working directory, resolved once in Resolve.
	Root      string `mapstructure:"root"`
	PHPBinary string `mapstructure:"php_binary" validate:"required"`

	DeployUser string `mapstructure:"deploy_user" validate:"required"`
	// WebUser, when empty, is detected once at startup from WebUserCandidates
	// and threaded as plain data into the steps that need it.
	WebUser           string   `mapstructure:"web_user"`
	WebUserCandidates []string `mapstructure:"web_user_candidates" validate:"min=1"`

	EnvFile      string   `mapstructure:"env_file" validate:"required"`
	PublicDir    string   `mapstructure:"public_dir" validate:"required"`
	WritableDirs []string `mapstructure:"writable_dirs" validate:"min=1"`
}

type ToolsConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	DirPrefix      string `mapstructure:"dir_prefix" validate:"required"`
	AdminerURL     string `mapstructure:"adminer_url" validate:"required,url"`
	FileManagerURL string `mapstructure:"file_manager_url" validate:"required,url"`
	FallbackUser   string `mapstructure:"fallback_user" validate:"required"`
}

func (p ProjectConfig) EnvFilePath() string {
	return filepath.Join(p.Root, p.EnvFile)
}

func (p ProjectConfig) PublicPath() string {
	return filepath.Join(p.Root, p.PublicDir)
}

func DefaultConfig() *Config {
	return &Config{
		Settings: SettingsConfig{
			LogLevel:     log.LevelInfo,
			LogFormat:    log.FormatText,
			ReporterType: "text",
			NoColor:      false,
		},
		Project: ProjectConfig{
			PHPBinary:         "php",
			DeployUser:        "forge",
			WebUserCandidates: []string{"www-data", "nginx", "apache"},
			EnvFile:           ".env",
			PublicDir:         "public",
			WritableDirs:      []string{"storage", "bootstrap/cache"},
		},
		Tools: ToolsConfig{
			Enabled:        true,
			DirPrefix:      "forge-tools-",
			AdminerURL:     "https://www.adminer.org/latest.php",
			FileManagerURL: "https://raw.githubusercontent.com/prasathmani/tinyfilemanager/master/tinyfilemanager.php",
			FallbackUser:   "forge_admin",
		},
	}
}
