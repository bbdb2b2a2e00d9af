package twitter

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	gotwitter "github.com/dghubble/go-twitter/twitter"
)

// ErrNoAccount indicates the API accepted the request but returned no user.
var ErrNoAccount = errors.New("verify credentials returned no account")

// Account identifies the user the credentials belong to.
type Account struct {
	ID         int64  `yaml:"id"`
	ScreenName string `yaml:"screen_name"`
}

// Verifier calls account/verify_credentials with an OAuth1-signed client.
type Verifier struct {
	httpClient *http.Client
}

// NewVerifier wraps an already-authorising HTTP client.
func NewVerifier(httpClient *http.Client) *Verifier {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Verifier{httpClient: httpClient}
}

// Verify returns the account the credentials authenticate as.
func (v *Verifier) Verify(ctx context.Context) (Account, error) {
	client := gotwitter.NewClient(v.withContext(ctx))

	user, resp, err := client.Accounts.VerifyCredentials(&gotwitter.AccountVerifyParams{
		SkipStatus:   gotwitter.Bool(true),
		IncludeEmail: gotwitter.Bool(false),
	})
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return Account{}, fmt.Errorf("verify credentials: %w", err)
	}
	if resp != nil && (resp.StatusCode < 200 || resp.StatusCode > 299) {
		return Account{}, fmt.Errorf("verify credentials: unexpected status %s", resp.Status)
	}
	if user == nil || user.ScreenName == "" {
		return Account{}, ErrNoAccount
	}

	return Account{ID: user.ID, ScreenName: user.ScreenName}, nil
}

// withContext returns a shallow copy of the client whose requests carry ctx,
// since go-twitter builds requests without one.
func (v *Verifier) withContext(ctx context.Context) *http.Client {
	next := v.httpClient.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	clone := *v.httpClient
	clone.Transport = contextTransport{ctx: ctx, next: next}
	return &clone
}

type contextTransport struct {
	ctx  context.Context
	next http.RoundTripper
}

func (t contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.next.RoundTrip(req.WithContext(t.ctx))
}
