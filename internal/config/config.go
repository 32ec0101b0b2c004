// Package config resolves run settings from flags, environment and config file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/naveenspark/tilegrab/internal/places"
	"github.com/naveenspark/tilegrab/pkg/client"
	"github.com/naveenspark/tilegrab/pkg/domain"
)

// Keys, shared by flags, env vars (TILEGRAB_OUTPUT_DIR, ...) and the config file.
const (
	KeyAPIKey    = "api-key"
	KeyAPIURL    = "api-url"
	KeyOutputDir = "output-dir"
	KeyMapType   = "map-type"
	KeyLanguage  = "language"
	KeyRegion    = "region"
	KeyPolicy    = "policy"
	KeyTimeout   = "timeout"
	KeyLat       = "lat"
	KeyLon       = "lon"
	KeyZoom      = "zoom"
	KeyPlace     = "place"
	KeyOpen      = "open"
	KeyCopy      = "copy"
)

// EnvPrefix prefixes every environment variable.
const EnvPrefix = "TILEGRAB"

// DefaultOutputDir is where tiles are written unless configured otherwise.
const DefaultOutputDir = "tiles"

// Config is the resolved configuration for one run.
// Lat, Lon and Zoom are nil when not supplied; the caller prompts for them.
type Config struct {
	APIKey    string
	APIURL    string
	OutputDir string
	Session   domain.SessionRequest
	Policy    domain.Policy
	Timeout   time.Duration
	Lat       *float64
	Lon       *float64
	Zoom      *int
	Place     string
	Open      bool
	Copy      bool
}

// Complete reports whether every input needed for a run is present.
func (c Config) Complete() bool {
	return c.APIKey != "" && c.Lat != nil && c.Lon != nil && c.Zoom != nil
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	sr := domain.DefaultSessionRequest()
	v.SetDefault(KeyAPIURL, client.DefaultBaseURL)
	v.SetDefault(KeyOutputDir, DefaultOutputDir)
	v.SetDefault(KeyMapType, sr.MapType)
	v.SetDefault(KeyLanguage, sr.Language)
	v.SetDefault(KeyRegion, sr.Region)
	v.SetDefault(KeyPolicy, string(domain.PolicyNone))
	v.SetDefault(KeyTimeout, time.Duration(0))
}

// InitConfig wires env vars and reads the config file into v.
// With an empty cfgFile it looks for ~/.tilegrab.yaml and ignores its absence.
func InitConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return fmt.Errorf("config.InitConfig: find home dir: %w", err)
		}
		v.AddConfigPath(home)
		v.SetConfigName(".tilegrab")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("config.InitConfig: read %s: %w", v.ConfigFileUsed(), err)
	}
	return nil
}

// Load builds a Config from v.
func Load(v *viper.Viper) (Config, error) {
	policy, err := domain.ParsePolicy(v.GetString(KeyPolicy))
	if err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	timeout, err := cast.ToDurationE(v.Get(KeyTimeout))
	if err != nil {
		return Config{}, fmt.Errorf("config.Load: %s: %w", KeyTimeout, err)
	}
	if timeout < 0 {
		return Config{}, fmt.Errorf("config.Load: %s must not be negative", KeyTimeout)
	}

	c := Config{
		APIKey:    strings.TrimSpace(v.GetString(KeyAPIKey)),
		APIURL:    strings.TrimRight(v.GetString(KeyAPIURL), "/"),
		OutputDir: v.GetString(KeyOutputDir),
		Session: domain.SessionRequest{
			MapType:  v.GetString(KeyMapType),
			Language: v.GetString(KeyLanguage),
			Region:   v.GetString(KeyRegion),
		},
		Policy:  policy,
		Timeout: timeout,
		Place:   v.GetString(KeyPlace),
		Open:    v.GetBool(KeyOpen),
		Copy:    v.GetBool(KeyCopy),
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}

	if c.Place != "" {
		p, err := places.Lookup(c.Place)
		if err != nil {
			return Config{}, fmt.Errorf("config.Load: %w", err)
		}
		lat, lon := p.Location.Lat, p.Location.Lon
		c.Lat, c.Lon = &lat, &lon
	}
	if v.IsSet(KeyLat) {
		lat, err := cast.ToFloat64E(v.Get(KeyLat))
		if err != nil {
			return Config{}, fmt.Errorf("config.Load: %s: %w", KeyLat, err)
		}
		c.Lat = &lat
	}
	if v.IsSet(KeyLon) {
		lon, err := cast.ToFloat64E(v.Get(KeyLon))
		if err != nil {
			return Config{}, fmt.Errorf("config.Load: %s: %w", KeyLon, err)
		}
		c.Lon = &lon
	}
	if v.IsSet(KeyZoom) {
		zoom, err := cast.ToIntE(v.Get(KeyZoom))
		if err != nil {
			return Config{}, fmt.Errorf("config.Load: %s: %w", KeyZoom, err)
		}
		c.Zoom = &zoom
	}
	return c, nil
}
