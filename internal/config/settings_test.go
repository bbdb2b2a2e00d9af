package config

import (
	"slices"
	"testing"
	"unicode/utf8"
)

func TestSettingsMissing(t *testing.T) {
	s := Defaults()
	if got := s.Missing(); !slices.Equal(got, Names()) {
		t.Fatalf("expected all names missing, got %v", got)
	}

	s.ConsumerKey = "key"
	if got, want := s.Missing(), []string{KeyAccessToken, KeyAccessSecret, KeyConsumerSecret}; !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSettingsGetUnknown(t *testing.T) {
	if _, ok := Defaults().Get("OTHER"); ok {
		t.Fatalf("expected unknown name to be reported")
	}
}

func TestSettingsMap(t *testing.T) {
	m := Settings{AccessToken: "a", AccessSecret: "b", ConsumerKey: "c", ConsumerSecret: "d"}.Map()
	if len(m) != 4 || m[KeyAccessToken] != "a" || m[KeyConsumerSecret] != "d" {
		t.Fatalf("unexpected map %v", m)
	}
}

func TestSettingsRedacted(t *testing.T) {
	s := Settings{
		AccessToken:    "1234567890-abcdef",
		AccessSecret:   "very-secret",
		ConsumerKey:    "abc",
		ConsumerSecret: Undefined,
	}

	got := s.Redacted()

	if got.AccessToken != "********cdef" {
		t.Fatalf("unexpected redacted token %q", got.AccessToken)
	}
	if got.AccessSecret != "********" {
		t.Fatalf("expected secret fully masked, got %q", got.AccessSecret)
	}
	if got.ConsumerKey != "********" {
		t.Fatalf("expected short key fully masked, got %q", got.ConsumerKey)
	}
	if got.ConsumerSecret != Undefined {
		t.Fatalf("expected sentinel left visible, got %q", got.ConsumerSecret)
	}
}

func TestSettingsRedactedMultiByte(t *testing.T) {
	s := Defaults()
	s.AccessToken = "токен-ключ"

	got := s.Redacted().AccessToken
	if got != "********ключ" {
		t.Fatalf("expected last four runes kept, got %q", got)
	}
	if !utf8.ValidString(got) {
		t.Fatalf("expected valid UTF-8, got %q", got)
	}
}
