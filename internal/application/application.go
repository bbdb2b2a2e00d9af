package application

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dghubble/oauth1"
	"go.uber.org/zap"

	"github.com/eugenenazirov/bot-settings/internal/config"
	"github.com/eugenenazirov/bot-settings/internal/oauth"
	"github.com/eugenenazirov/bot-settings/internal/twitter"
)

const defaultRequestTimeout = 10 * time.Second

// Options controls how the application is assembled.
type Options struct {
	SettingsFile   string
	RateLimitRPS   float64
	RateLimitBurst int
	RequestTimeout time.Duration
	// HTTPClient, when set, is the base client the OAuth1 transport sends through.
	HTTPClient *http.Client
}

type verifier interface {
	Verify(ctx context.Context) (twitter.Account, error)
}

// App encapsulates the resolved settings and the clients built from them.
type App struct {
	settings config.Settings
	client   *http.Client
	verifier verifier
	logger   *zap.Logger
	timeout  time.Duration
}

// New resolves settings and initializes dependencies. Settings resolution
// never fails; missing credentials are logged and left as config.Undefined.
func New(ctx context.Context, opts Options, logger *zap.Logger) (*App, error) {
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	settings := config.Load(opts.SettingsFile, logger)
	if missing := settings.Missing(); len(missing) > 0 {
		logger.Debug("settings left undefined", zap.Strings("names", missing))
	}

	if opts.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth1.HTTPClient, opts.HTTPClient)
	}
	client := oauth.NewClient(ctx, settings, oauth.WithRateLimit(opts.RateLimitRPS, opts.RateLimitBurst))

	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &App{
		settings: settings,
		client:   client,
		verifier: twitter.NewVerifier(client),
		logger:   logger,
		timeout:  timeout,
	}, nil
}

// Settings returns the settings resolved at startup.
func (a *App) Settings() config.Settings {
	return a.settings
}

// HTTPClient returns the OAuth1-signing client.
func (a *App) HTTPClient() *http.Client {
	return a.client
}

// Verify checks the credentials against the API within the request timeout.
func (a *App) Verify(ctx context.Context) (twitter.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	account, err := a.verifier.Verify(ctx)
	if err != nil {
		a.logger.Warn("credential verification failed", zap.Error(err))
		return twitter.Account{}, err
	}
	a.logger.Info("credentials verified", zap.String("screen_name", account.ScreenName))
	return account, nil
}
