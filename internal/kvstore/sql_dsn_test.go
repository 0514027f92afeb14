package kvstore

import (
	"net/url"
	"testing"
)

func TestLibSQLDSN(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		token     string
		wantToken string
		wantQuery map[string]string
	}{
		{name: "no token", url: "libsql://db.example.turso.io"},
		{
			name:      "token with reserved characters",
			url:       "libsql://db.example.turso.io",
			token:     "a+b/c=&d",
			wantToken: "a+b/c=&d",
		},
		{
			name:      "existing query kept",
			url:       "https://db.example.turso.io?tls=1",
			token:     "tok",
			wantToken: "tok",
			wantQuery: map[string]string{"tls": "1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn, err := libsqlDSN(tt.url, tt.token)
			if err != nil {
				t.Fatalf("libsqlDSN: %v", err)
			}
			if tt.token == "" {
				if dsn != tt.url {
					t.Fatalf("dsn = %q, want %q", dsn, tt.url)
				}
				return
			}
			parsed, err := url.Parse(dsn)
			if err != nil {
				t.Fatalf("parse dsn %q: %v", dsn, err)
			}
			query := parsed.Query()
			if got := query.Get("authToken"); got != tt.wantToken {
				t.Fatalf("authToken = %q, want %q (dsn %q)", got, tt.wantToken, dsn)
			}
			if len(query["authToken"]) != 1 {
				t.Fatalf("expected one authToken parameter in %q", dsn)
			}
			for key, want := range tt.wantQuery {
				if got := query.Get(key); got != want {
					t.Fatalf("%s = %q, want %q", key, got, want)
				}
			}
		})
	}

	if _, err := libsqlDSN("  ", "tok"); err == nil {
		t.Fatal("expected error for empty url")
	}
}
