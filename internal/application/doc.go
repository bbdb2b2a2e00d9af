// Package application provides application initialization and dependency wiring.
// It resolves the settings once, builds the OAuth1 client and the credential
// verifier from them, and keeps the main package focused on CLI parsing.
package application
