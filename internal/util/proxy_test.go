package util

import (
	"net/http"
	"testing"
)

func requestFor(t *testing.T, rawURL string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	return req
}

func TestNewProxyFuncExplicitProxies(t *testing.T) {
	proxy := NewProxyFunc("http://proxy.internal:3128", "http://sproxy.internal:3128", "")

	got, err := proxy(requestFor(t, "https://api.tavily.com/search"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.Host != "sproxy.internal:3128" {
		t.Errorf("https request proxied via %v, want sproxy.internal:3128", got)
	}

	got, err = proxy(requestFor(t, "http://newsdata.io/api/1/news"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.Host != "proxy.internal:3128" {
		t.Errorf("http request proxied via %v, want proxy.internal:3128", got)
	}
}

func TestNewProxyFuncNoProxyBypass(t *testing.T) {
	proxy := NewProxyFunc("http://proxy.internal:3128", "", "localhost, .corp.example")

	tests := []struct {
		rawURL string
		direct bool
	}{
		{"http://localhost:11434/api/generate", true},
		{"http://ollama.corp.example/api/generate", true},
		{"http://corp.example/x", true},
		{"http://notlocalhost.example/x", false},
		{"http://api.serper.dev/search", false},
	}

	for _, tt := range tests {
		got, err := proxy(requestFor(t, tt.rawURL))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.rawURL, err)
		}
		if tt.direct && got != nil {
			t.Errorf("%s should bypass the proxy, got %v", tt.rawURL, got)
		}
		if !tt.direct && got == nil {
			t.Errorf("%s should be proxied", tt.rawURL)
		}
	}
}
