// Package twitter checks the resolved credentials against the Twitter API.
package twitter
