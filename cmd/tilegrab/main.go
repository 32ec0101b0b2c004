package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/naveenspark/tilegrab/internal/browser"
	"github.com/naveenspark/tilegrab/internal/config"
	"github.com/naveenspark/tilegrab/internal/fetch"
	"github.com/naveenspark/tilegrab/internal/grab"
	"github.com/naveenspark/tilegrab/internal/places"
	"github.com/naveenspark/tilegrab/internal/status"
	"github.com/naveenspark/tilegrab/internal/tui"
	"github.com/naveenspark/tilegrab/pkg/client"
	"github.com/naveenspark/tilegrab/pkg/domain"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(defaultEnv()).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// env holds the process-facing side effects so tests can replace them.
type env struct {
	interactive func() bool
	prompt      func(tui.Defaults) (tui.Values, error)
	copyText    func(string) error
	open        func(string) error
	newID       func() string
}

func defaultEnv() env {
	return env{
		interactive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
		},
		prompt: func(d tui.Defaults) (tui.Values, error) {
			return tui.Prompt(d)
		},
		copyText: clipboard.WriteAll,
		open:     browser.Open,
		newID:    uuid.NewString,
	}
}

func newRootCmd(e env) *cobra.Command {
	v := viper.New()
	config.SetDefaults(v)
	var cfgFile string

	root := &cobra.Command{
		Use:           "tilegrab",
		Short:         "download one satellite map tile for a latitude/longitude",
		Long:          banner(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.InitConfig(v, cfgFile); err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return runGrab(cmd.Context(), cmd.OutOrStdout(), e, cfg)
		},
	}

	fs := root.Flags()
	fs.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.tilegrab.yaml)")
	fs.Float64(config.KeyLat, 0, "latitude in degrees")
	fs.Float64(config.KeyLon, 0, "longitude in degrees")
	fs.IntP(config.KeyZoom, "z", 0, "zoom level, e.g. 16")
	fs.StringP(config.KeyPlace, "p", "", "named place instead of --lat/--lon (see `tilegrab places`)")
	fs.String(config.KeyAPIKey, "", "Google Maps Platform API key")
	fs.String(config.KeyAPIURL, client.DefaultBaseURL, "Map Tiles API base URL")
	fs.StringP(config.KeyOutputDir, "o", config.DefaultOutputDir, "directory tiles are written to")
	fs.String(config.KeyMapType, domain.MapTypeSatellite, "session map type: roadmap, satellite or terrain")
	fs.String(config.KeyLanguage, "en-US", "session language (IETF tag)")
	fs.String(config.KeyRegion, "US", "session region (CLDR code)")
	fs.String(config.KeyPolicy, string(domain.PolicyNone), "out-of-range tile policy: none, reject, clamp or wrap")
	fs.Duration(config.KeyTimeout, 0, "per-request timeout (0 waits indefinitely)")
	fs.Bool(config.KeyOpen, false, "open the tile with the default image viewer")
	fs.Bool(config.KeyCopy, false, "copy the tile path to the clipboard")
	if err := v.BindPFlags(fs); err != nil {
		panic(err) // flags are static
	}

	root.AddCommand(newPlacesCmd(), newVersionCmd())
	return root
}

func newPlacesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "places",
		Short: "list named places usable with --place",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			printPlaces(cmd.OutOrStdout(), places.All())
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "tilegrab "+version) //nolint:errcheck
		},
	}
}

// missingInputs names the inputs cfg lacks, as flags.
func missingInputs(cfg config.Config) []string {
	var missing []string
	if cfg.Lat == nil {
		missing = append(missing, "--"+config.KeyLat)
	}
	if cfg.Lon == nil {
		missing = append(missing, "--"+config.KeyLon)
	}
	if cfg.Zoom == nil {
		missing = append(missing, "--"+config.KeyZoom)
	}
	if cfg.APIKey == "" {
		missing = append(missing, "--"+config.KeyAPIKey)
	}
	return missing
}

// resolveInputs fills missing inputs from the interactive form.
func resolveInputs(e env, cfg config.Config) (config.Config, error) {
	if cfg.Complete() {
		return cfg, nil
	}
	if !e.interactive() {
		return cfg, fmt.Errorf("missing %s (no terminal to prompt on)", strings.Join(missingInputs(cfg), ", "))
	}

	d := tui.Defaults{APIKey: cfg.APIKey}
	if cfg.Lat != nil {
		d.Lat = strconv.FormatFloat(*cfg.Lat, 'f', -1, 64)
	}
	if cfg.Lon != nil {
		d.Lon = strconv.FormatFloat(*cfg.Lon, 'f', -1, 64)
	}
	if cfg.Zoom != nil {
		d.Zoom = strconv.Itoa(*cfg.Zoom)
	}
	vals, err := e.prompt(d)
	if err != nil {
		return cfg, err
	}
	cfg.Lat, cfg.Lon, cfg.Zoom = &vals.Lat, &vals.Lon, &vals.Zoom
	cfg.APIKey = vals.APIKey
	return cfg, nil
}

func runGrab(ctx context.Context, out io.Writer, e env, cfg config.Config) error {
	cfg, err := resolveInputs(e, cfg)
	if err != nil {
		if errors.Is(err, tui.ErrCancelled) {
			fmt.Fprintln(out, "cancelled.") //nolint:errcheck
			return nil
		}
		return err
	}

	requestID := e.newID()
	c := client.New(cfg.APIURL, cfg.APIKey,
		client.WithTimeout(cfg.Timeout),
		client.WithRequestID(requestID),
	)
	report := status.NewPrinter(out)
	report.Info("request %s", requestID)

	runner := grab.New(c, fetch.New(c, cfg.OutputDir), report)
	res, err := runner.Run(ctx, grab.Params{
		Location: domain.LatLon{Lat: *cfg.Lat, Lon: *cfg.Lon},
		Zoom:     *cfg.Zoom,
		Session:  cfg.Session,
		Policy:   cfg.Policy,
	})
	if err != nil {
		return err
	}

	if cfg.Copy {
		if err := e.copyText(res.Path); err != nil {
			report.Fail("copy to clipboard: %v", err)
		} else {
			report.OK("path copied to clipboard")
		}
	}
	if cfg.Open {
		if err := e.open(res.Path); err != nil {
			report.Fail("open %s: %v", res.Path, err)
		}
	}
	return nil
}
