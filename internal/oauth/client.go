package oauth

import (
	"context"
	"net/http"

	"github.com/dghubble/oauth1"

	"github.com/eugenenazirov/bot-settings/internal/config"
)

// Option configures NewClient.
type Option func(*clientConfig)

type clientConfig struct {
	rps   float64
	burst int
}

// WithRateLimit throttles outgoing requests to rps with the given burst.
// Non-positive values disable throttling.
func WithRateLimit(rps float64, burst int) Option {
	return func(cfg *clientConfig) {
		cfg.rps = rps
		cfg.burst = burst
	}
}

// NewClient returns an HTTP client that authorises every request with the
// consumer and access credentials from s. A base *http.Client stored in ctx
// under oauth1.HTTPClient is used for the underlying transport.
func NewClient(ctx context.Context, s config.Settings, opts ...Option) *http.Client {
	var cfg clientConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	consumer := oauth1.NewConfig(s.ConsumerKey, s.ConsumerSecret)
	token := oauth1.NewToken(s.AccessToken, s.AccessSecret)
	client := consumer.Client(ctx, token)

	if limiter := newTokenBucketLimiter(cfg.rps, cfg.burst); limiter != nil {
		client.Transport = &limitedTransport{
			next:    client.Transport,
			limiter: limiter,
		}
	}
	return client
}
