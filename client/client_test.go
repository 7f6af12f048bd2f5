package main

import (
	"testing"
)

func TestSplitResponse(t *testing.T) {
	headers, body, ok := splitResponse([]byte("HTTP/1.0 200 OK\r\nContent-Type: text/plain\r\n\r\npayload"))
	if !ok {
		t.Fatal("valid response not split")
	}
	if string(headers) != "HTTP/1.0 200 OK\r\nContent-Type: text/plain" {
		t.Errorf("unexpected headers: %q", headers)
	}
	if string(body) != "payload" {
		t.Errorf("unexpected body: %q", body)
	}

	// The body may itself contain the separator; only the first one splits.
	_, body, ok = splitResponse([]byte("HTTP/1.0 200 OK\r\n\r\na\r\n\r\nb"))
	if !ok || string(body) != "a\r\n\r\nb" {
		t.Errorf("split at wrong separator: %q %v", body, ok)
	}

	if _, _, ok := splitResponse([]byte("HTTP/1.0 200 OK\r\nContent-Type: text/plain\r\n")); ok {
		t.Errorf("response without separator should not split")
	}
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"HTTP/1.0 200 OK", "200"},
		{"HTTP/1.0 429 Too Many Requests", "429"},
		{"HTTP/1.0", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := statusCode(tt.line); got != tt.want {
			t.Errorf("statusCode(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestHeaderValue(t *testing.T) {
	headers := []string{
		"HTTP/1.0 200 OK",
		"Date: Mon, 24 Aug 2026 00:00:00 GMT",
		"content-type: Image/PNG",
		"Content-Length: 4",
	}
	if got := headerValue(headers, "Content-Type"); got != "image/png" {
		t.Errorf("headerValue(Content-Type) = %q, want %q", got, "image/png")
	}
	if got := headerValue(headers, "Content-Length"); got != "4" {
		t.Errorf("headerValue(Content-Length) = %q, want %q", got, "4")
	}
	if got := headerValue(headers, "Server"); got != "" {
		t.Errorf("headerValue(Server) = %q, want empty", got)
	}
}

func TestSaveExtension(t *testing.T) {
	if got := saveExtension("image/png"); got != ".png" {
		t.Errorf("saveExtension(image/png) = %q", got)
	}
	if got := saveExtension("application/pdf; charset=binary"); got != ".pdf" {
		t.Errorf("saveExtension with parameters = %q", got)
	}
	if got := saveExtension("text/html"); got != "" {
		t.Errorf("saveExtension(text/html) = %q, want empty", got)
	}
}

func TestSaveName(t *testing.T) {
	tests := []struct {
		urlPath string
		ext     string
		want    string
	}{
		{"/photos/cat.png", ".png", "cat.png"},
		{"/photos/cat", ".png", "cat.png"},
		{"/CAT.PNG", ".png", "CAT.PNG"},
		{"/docs/report/", ".pdf", "report.pdf"},
		{"/", ".png", "index.png"},
	}
	for _, tt := range tests {
		if got := saveName(tt.urlPath, tt.ext); got != tt.want {
			t.Errorf("saveName(%q, %q) = %q, want %q", tt.urlPath, tt.ext, got, tt.want)
		}
	}
}
