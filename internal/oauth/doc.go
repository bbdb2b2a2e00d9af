// Package oauth builds HTTP clients that sign requests with OAuth1 using the
// resolved bot credentials, optionally throttled by a token bucket.
package oauth
