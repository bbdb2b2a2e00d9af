package config

import (
	"errors"
	"io/fs"

	"go.uber.org/zap"
)

// Loader resolves Settings from an optional override file.
type Loader struct {
	logger *zap.Logger
	read   func(path string) (MapSource, error)
}

// NewLoader creates a Loader that reports a missing override source on logger.
// A nil logger discards the diagnostic.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		logger: logger,
		read:   ReadFile,
	}
}

// Load reads the override file at path, or DefaultSettingsFile when path is
// empty, and resolves every setting. It never fails: when the file cannot be
// read or parsed a single warning is logged and all settings fall back to
// Undefined.
func (l *Loader) Load(path string) Settings {
	if path == "" {
		path = DefaultSettingsFile
	}

	src, err := l.read(path)
	if err != nil {
		l.logger.Warn("no local settings file found",
			zap.String("path", path),
			zap.Bool("exists", !errors.Is(err, fs.ErrNotExist)),
			zap.Error(err),
		)
		return Resolve(nil)
	}
	return Resolve(src)
}

// Load is shorthand for NewLoader(logger).Load(path).
func Load(path string, logger *zap.Logger) Settings {
	return NewLoader(logger).Load(path)
}

// Resolve takes each setting from src when defined there and Undefined
// otherwise. A nil src resolves to Defaults.
func Resolve(src Source) Settings {
	if src == nil {
		return Defaults()
	}
	pick := func(name string) string {
		if v, ok := src.Lookup(name); ok {
			return v
		}
		return Undefined
	}
	return Settings{
		AccessToken:    pick(KeyAccessToken),
		AccessSecret:   pick(KeyAccessSecret),
		ConsumerKey:    pick(KeyConsumerKey),
		ConsumerSecret: pick(KeyConsumerSecret),
	}
}
