package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/bot-settings/internal/application"
	"github.com/eugenenazirov/bot-settings/internal/config"
	"github.com/eugenenazirov/bot-settings/internal/logging"
)

var (
	signalNotify = signal.Notify
	newLogger    = logging.New
	// baseHTTPClient carries outgoing API requests; nil uses the default transport.
	baseHTTPClient *http.Client
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type showOutput struct {
	Settings config.Settings `yaml:"settings"`
	Missing  []string        `yaml:"missing"`
}

func run(args []string, stdout io.Writer) error {
	kingpinApp := kingpin.New("settings", "Resolves the bot credentials from an optional local settings file")
	settingsFile := kingpinApp.Flag("settings", "Path to the local settings file (YAML or JSON)").Default(config.DefaultSettingsFile).String()
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").Default("info").String()

	showCmd := kingpinApp.Command("show", "Print the resolved settings").Default()
	reveal := showCmd.Flag("reveal", "Print secrets unmasked").Bool()

	verifyCmd := kingpinApp.Command("verify", "Check the credentials against the Twitter API")
	timeout := verifyCmd.Flag("timeout", "Request timeout").Default("10s").Duration()
	rateLimitRPS := verifyCmd.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("1").Float64()
	rateLimitBurst := verifyCmd.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("1").Int()

	command, err := kingpinApp.Parse(args)
	if err != nil {
		return fmt.Errorf("parse arguments: %w", err)
	}

	logger, err := newLogger(*logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := notifyContext(context.Background())
	defer stop()

	app, err := application.New(ctx, application.Options{
		SettingsFile:   *settingsFile,
		RateLimitRPS:   *rateLimitRPS,
		RateLimitBurst: *rateLimitBurst,
		RequestTimeout: *timeout,
		HTTPClient:     baseHTTPClient,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	switch command {
	case verifyCmd.FullCommand():
		account, err := app.Verify(ctx)
		if err != nil {
			return err
		}
		return writeYAML(stdout, account)
	default:
		settings := app.Settings()
		out := showOutput{Settings: settings.Redacted(), Missing: settings.Missing()}
		if *reveal {
			out.Settings = settings
		}
		return writeYAML(stdout, out)
	}
}

// notifyContext cancels the returned context on SIGINT or SIGTERM.
func notifyContext(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-quit:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(quit)
		cancel()
	}
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return enc.Close()
}
