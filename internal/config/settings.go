package config

import "strings"

// Undefined is the value of every setting not supplied by the override source.
const Undefined = "undefined"

// Recognised setting names as they appear in the override source.
const (
	KeyAccessToken    = "ACCESS_TOKEN"
	KeyAccessSecret   = "ACCESS_SECRET"
	KeyConsumerKey    = "CONSUMER_KEY"
	KeyConsumerSecret = "CONSUMER_SECRET"
)

const redactedKeep = 4

// Settings holds the resolved credentials. Every field is always populated,
// either from the override source or with Undefined.
type Settings struct {
	AccessToken    string `yaml:"ACCESS_TOKEN"`
	AccessSecret   string `yaml:"ACCESS_SECRET"`
	ConsumerKey    string `yaml:"CONSUMER_KEY"`
	ConsumerSecret string `yaml:"CONSUMER_SECRET"`
}

// Names returns the recognised setting names in a stable order.
func Names() []string {
	return []string{KeyAccessToken, KeyAccessSecret, KeyConsumerKey, KeyConsumerSecret}
}

// Defaults returns Settings with every value set to Undefined.
func Defaults() Settings {
	return Settings{
		AccessToken:    Undefined,
		AccessSecret:   Undefined,
		ConsumerKey:    Undefined,
		ConsumerSecret: Undefined,
	}
}

// Get returns the value of the named setting.
func (s Settings) Get(name string) (string, bool) {
	switch name {
	case KeyAccessToken:
		return s.AccessToken, true
	case KeyAccessSecret:
		return s.AccessSecret, true
	case KeyConsumerKey:
		return s.ConsumerKey, true
	case KeyConsumerSecret:
		return s.ConsumerSecret, true
	}
	return "", false
}

// Map returns the settings keyed by name.
func (s Settings) Map() map[string]string {
	out := make(map[string]string, 4)
	for _, name := range Names() {
		out[name], _ = s.Get(name)
	}
	return out
}

// Missing lists the settings that still hold the Undefined sentinel.
func (s Settings) Missing() []string {
	var missing []string
	for _, name := range Names() {
		if v, _ := s.Get(name); v == Undefined {
			missing = append(missing, name)
		}
	}
	return missing
}

// Redacted returns a copy safe for display: secrets are masked entirely and
// identifiers keep only their trailing characters.
func (s Settings) Redacted() Settings {
	return Settings{
		AccessToken:    maskTail(s.AccessToken),
		AccessSecret:   maskAll(s.AccessSecret),
		ConsumerKey:    maskTail(s.ConsumerKey),
		ConsumerSecret: maskAll(s.ConsumerSecret),
	}
}

func maskAll(v string) string {
	if v == Undefined || v == "" {
		return v
	}
	return strings.Repeat("*", 8)
}

func maskTail(v string) string {
	runes := []rune(v)
	if v == Undefined || len(runes) <= redactedKeep {
		return maskAll(v)
	}
	return strings.Repeat("*", 8) + string(runes[len(runes)-redactedKeep:])
}
