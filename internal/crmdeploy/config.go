package crmdeploy

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultSystemdDir     = "/etc/systemd/system"
	defaultNginxAvailable = "/etc/nginx/sites-available"
	defaultNginxEnabled   = "/etc/nginx/sites-enabled"
)

// Config describes one application deployment. Loaded from deploy.yml in the
// project directory; keys not present keep their defaults.
type Config struct {
	Project      string   `yaml:"project"`
	ProjectDir   string   `yaml:"project_dir"`
	Python       string   `yaml:"python"`
	VenvDir      string   `yaml:"venv"`
	Requirements string   `yaml:"requirements"`
	Domain       string   `yaml:"domain"`
	AdminEmail   string   `yaml:"admin_email"`
	User         string   `yaml:"user"`
	Group        string   `yaml:"group"`
	Workers      int      `yaml:"workers"`
	SocketPath   string   `yaml:"socket_path"`
	ASGI         bool     `yaml:"asgi"`
	ASGIHost     string   `yaml:"asgi_host"`
	ASGIPort     int      `yaml:"asgi_port"`
	StaticRoot   string   `yaml:"static_root"`
	MediaRoot    string   `yaml:"media_root"`
	Fixtures     []string `yaml:"fixtures"`
	BackupDir    string   `yaml:"backup_dir"`
	DatabaseURL  string   `yaml:"database_url"`
	WSGIModule   string   `yaml:"wsgi_module"`
	ASGIModule   string   `yaml:"asgi_module"`
}

// DefaultConfig returns the baseline configuration before deploy.yml and the
// project .env are applied.
func DefaultConfig() Config {
	return Config{
		Project:      "crm",
		Python:       "python3",
		Requirements: "requirements.txt",
		User:         "www-data",
		Group:        "www-data",
		Workers:      3,
		ASGI:         true,
		ASGIHost:     "127.0.0.1",
		ASGIPort:     8001,
	}
}

// LoadConfig reads deploy.yml at path (empty path means ./deploy.yml, which
// may be absent) and fills in derived defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if path == "" {
		path = "deploy.yml"
	}

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file is fine; defaults plus .env carry the run.
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if cfg.ProjectDir == "" {
		if dir := filepath.Dir(path); explicit && dir != "." {
			cfg.ProjectDir = dir
		} else if wd, err := os.Getwd(); err == nil {
			cfg.ProjectDir = wd
		} else {
			cfg.ProjectDir = "."
		}
	}
	cfg.ProjectDir, _ = filepath.Abs(cfg.ProjectDir)

	if err := cfg.hydrateFromDotEnv(); err != nil {
		return Config{}, err
	}
	cfg.applyDerived()
	return cfg, nil
}

// hydrateFromDotEnv fills values the config file left empty from the
// project's .env, the same file the application itself reads.
func (c *Config) hydrateFromDotEnv() error {
	path := filepath.Join(c.ProjectDir, ".env")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if c.Domain == "" {
		c.Domain = vars["DOMAIN"]
	}
	if c.AdminEmail == "" {
		c.AdminEmail = vars["ADMIN_EMAIL"]
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = vars["DATABASE_URL"]
	}
	return nil
}

func (c *Config) applyDerived() {
	if c.VenvDir == "" {
		c.VenvDir = filepath.Join(c.ProjectDir, "venv")
	}
	if c.SocketPath == "" {
		c.SocketPath = fmt.Sprintf("/run/%s/gunicorn.sock", c.Project)
	}
	if c.StaticRoot == "" {
		c.StaticRoot = filepath.Join(c.ProjectDir, "staticfiles")
	}
	if c.MediaRoot == "" {
		c.MediaRoot = filepath.Join(c.ProjectDir, "media")
	}
	if c.BackupDir == "" {
		c.BackupDir = filepath.Join(c.ProjectDir, "backups")
	}
	if c.WSGIModule == "" {
		c.WSGIModule = c.Project + ".wsgi:application"
	}
	if c.ASGIModule == "" {
		c.ASGIModule = c.Project + ".asgi:application"
	}
}

// Validate checks the fields a full deploy needs.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Project) == "" {
		return errors.New("project name must not be empty")
	}
	if strings.TrimSpace(c.Domain) == "" {
		return errors.New("domain is required (deploy.yml or DOMAIN in .env)")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", c.Workers)
	}
	return nil
}

// StagingDir is where rendered files land before installation, so a run
// without root (or `crmdeploy render`) still produces inspectable output.
func (c Config) StagingDir() string {
	return filepath.Join(c.ProjectDir, "deploy")
}

func (c Config) SystemdStagingDir() string {
	return filepath.Join(c.StagingDir(), "systemd")
}

func (c Config) NginxStagingDir() string {
	return filepath.Join(c.StagingDir(), "nginx")
}

// UnitFile pairs an installed unit name with the template that renders it.
type UnitFile struct {
	Name     string
	Template string
}

// UnitFiles lists the units this deployment generates, in activation order.
func (c Config) UnitFiles() []UnitFile {
	units := []UnitFile{
		{Name: c.Project + "-gunicorn.socket", Template: "systemd/gunicorn.socket"},
		{Name: c.Project + "-gunicorn.service", Template: "systemd/gunicorn.service"},
	}
	if c.ASGI {
		units = append(units, UnitFile{Name: c.Project + "-daphne.service", Template: "systemd/daphne.service"})
	}
	return units
}

// VhostName is the nginx site file name under sites-available.
func (c Config) VhostName() string {
	return c.Domain + ".conf"
}

func (c Config) RenderData() RenderData {
	return RenderData{
		Project:    c.Project,
		Domain:     c.Domain,
		ProjectDir: c.ProjectDir,
		VenvDir:    c.VenvDir,
		SocketPath: c.SocketPath,
		User:       c.User,
		Group:      c.Group,
		Workers:    c.Workers,
		StaticRoot: c.StaticRoot,
		MediaRoot:  c.MediaRoot,
		ASGI:       c.ASGI,
		ASGIHost:   c.ASGIHost,
		ASGIPort:   c.ASGIPort,
		WSGIModule: c.WSGIModule,
		ASGIModule: c.ASGIModule,
	}
}

// SystemdDir returns where unit files are installed. Overridable so tests
// and unprivileged runs never touch /etc.
func SystemdDir() string {
	if v := strings.TrimSpace(os.Getenv("CRMDEPLOY_SYSTEMD_DIR")); v != "" {
		return v
	}
	return defaultSystemdDir
}

func NginxAvailableDir() string {
	if v := strings.TrimSpace(os.Getenv("CRMDEPLOY_NGINX_AVAILABLE")); v != "" {
		return v
	}
	return defaultNginxAvailable
}

func NginxEnabledDir() string {
	if v := strings.TrimSpace(os.Getenv("CRMDEPLOY_NGINX_ENABLED")); v != "" {
		return v
	}
	return defaultNginxEnabled
}
