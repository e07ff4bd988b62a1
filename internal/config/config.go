package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type DisplayCfg struct {
	Width              int     `yaml:"width"`
	Height             int     `yaml:"height"`
	Fullscreen         bool    `yaml:"fullscreen"`
	FPS                int     `yaml:"fps"`
	DisplayDuration    float64 `yaml:"display_duration"`    // seconds per card
	TransitionDuration float64 `yaml:"transition_duration"` // crossfade seconds
}

type APICfg struct {
	TimeoutS        int `yaml:"timeout"`
	RefreshInterval int `yaml:"refresh_interval"` // seconds
}

type WeatherCfg struct {
	Enabled         bool    `yaml:"enabled"`
	APIKey          string  `yaml:"api_key"`
	Latitude        float64 `yaml:"latitude"`
	Longitude       float64 `yaml:"longitude"`
	RefreshInterval int     `yaml:"refresh_interval"` // seconds
}

type DatabaseCfg struct {
	Path          string `yaml:"path"`
	RetentionDays int    `yaml:"retention_days"`
}

type WebCfg struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// EventKindCfg configures one kind of show (fireworks or parades):
// a shared duration and per-park lists of HH:MM start times.
type EventKindCfg struct {
	Enabled  bool                `yaml:"enabled"`
	Duration int                 `yaml:"duration"` // seconds
	Schedule map[string][]string `yaml:"schedule"` // park key -> times
}

type EventsCfg struct {
	Fireworks EventKindCfg `yaml:"fireworks"`
	Parades   EventKindCfg `yaml:"parades"`
}

type LoggingCfg struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type Config struct {
	Display  DisplayCfg        `yaml:"display"`
	API      APICfg            `yaml:"api"`
	Weather  WeatherCfg        `yaml:"weather"`
	Database DatabaseCfg       `yaml:"database"`
	Web      WebCfg            `yaml:"web"`
	Events   EventsCfg         `yaml:"events"`
	Videos   map[string]string `yaml:"videos"` // "<park-slug>_<kind>" -> frame dir
	Assets   string            `yaml:"assets"` // image library root
	Logging  LoggingCfg        `yaml:"logging"`
}

// Default returns the configuration used when config.yaml is absent or
// leaves fields unset.
func Default() *Config {
	return &Config{
		Display: DisplayCfg{
			Width: 800, Height: 480, FPS: 30,
			DisplayDuration: 8.0, TransitionDuration: 0.5,
		},
		API:      APICfg{TimeoutS: 10, RefreshInterval: 300},
		Weather:  WeatherCfg{Latitude: 28.3772, Longitude: -81.5707, RefreshInterval: 1800},
		Database: DatabaseCfg{Path: "data/waittimes.db", RetentionDays: 30},
		Web:      WebCfg{Addr: ":8080"},
		Assets:   "assets/images",
	}
}

// Load reads path and overlays it on Default. A missing file is not an
// error; malformed YAML is.
func Load(path string) (*Config, error) {
	c := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}
	c.fillDefaults()
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

func (c *Config) fillDefaults() {
	d := Default()
	if c.Display.Width <= 0 {
		c.Display.Width = d.Display.Width
	}
	if c.Display.Height <= 0 {
		c.Display.Height = d.Display.Height
	}
	if c.Display.FPS <= 0 {
		c.Display.FPS = d.Display.FPS
	}
	if c.Display.DisplayDuration <= 0 {
		c.Display.DisplayDuration = d.Display.DisplayDuration
	}
	if c.Display.TransitionDuration <= 0 {
		c.Display.TransitionDuration = d.Display.TransitionDuration
	}
	if c.API.TimeoutS <= 0 {
		c.API.TimeoutS = d.API.TimeoutS
	}
	if c.API.RefreshInterval <= 0 {
		c.API.RefreshInterval = d.API.RefreshInterval
	}
	if c.Weather.RefreshInterval <= 0 {
		c.Weather.RefreshInterval = d.Weather.RefreshInterval
	}
	if c.Weather.Latitude == 0 && c.Weather.Longitude == 0 {
		c.Weather.Latitude = d.Weather.Latitude
		c.Weather.Longitude = d.Weather.Longitude
	}
	if c.Database.Path == "" {
		c.Database.Path = d.Database.Path
	}
	if c.Database.RetentionDays <= 0 {
		c.Database.RetentionDays = d.Database.RetentionDays
	}
	if c.Web.Addr == "" {
		c.Web.Addr = d.Web.Addr
	}
	if c.Assets == "" {
		c.Assets = d.Assets
	}
}
