// Package config resolves the bot credentials from an optional local settings
// file, falling back to the "undefined" sentinel for every setting the file
// does not supply. The resolved Settings value is built once at startup and
// handed to the components that need it.
package config
