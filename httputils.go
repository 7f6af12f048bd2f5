package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"
)

// SERVER_NAME is the fixed identification string sent in every response.
const SERVER_NAME = "GopherHTTP/1.0"

// mimeTypes maps file extensions to their corresponding Content-Type header.
var mimeTypes = map[string]string{
	".html": "text/html; charset=utf-8",
	".htm":  "text/html; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".js":   "application/javascript; charset=utf-8",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
	".pdf":  "application/pdf",
	".txt":  "text/plain; charset=utf-8",
	".json": "application/json; charset=utf-8",
	".xml":  "application/xml; charset=utf-8",
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
}

// guessMime returns the Content-Type for a filesystem path, falling back
// to a generic binary type for unknown extensions.
func guessMime(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if mime, ok := mimeTypes[ext]; ok {
		return mime
	}
	return "application/octet-stream"
}

// httpDateNow formats the current time as an RFC 1123 HTTP-date in GMT.
func httpDateNow() string {
	return time.Now().UTC().Format(http.TimeFormat)
}

// splitHeadersBody splits a raw buffer at the first CRLF-CRLF. If the
// separator is absent the whole buffer is treated as headers.
func splitHeadersBody(raw []byte) (headers, body []byte) {
	sep := []byte("\r\n\r\n")
	if idx := bytes.Index(raw, sep); idx != -1 {
		return raw[:idx], raw[idx+len(sep):]
	}
	return raw, nil
}

// parseRequestLine splits a request line into exactly three
// whitespace-delimited tokens. Any other token count is malformed.
func parseRequestLine(line string) (method, target, version string, ok bool) {
	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) != 3 {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}

// targetPath extracts the decoded URL path from a request target:
// fragment and query are dropped, percent-escapes decoded, and a leading
// slash enforced.
func targetPath(target string) string {
	p := target
	if i := strings.Index(p, "#"); i != -1 {
		p = p[:i]
	}
	if i := strings.Index(p, "?"); i != -1 {
		p = p[:i]
	}
	if dec, err := url.PathUnescape(p); err == nil {
		p = dec
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// respond assembles a complete HTTP/1.0 response: status line, standard
// headers, blank line, body. Every response closes the connection.
func respond(code int, reason string, body []byte, mime string) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "HTTP/1.0 %d %s\r\n", code, reason)
	fmt.Fprintf(&b, "Date: %s\r\n", httpDateNow())
	fmt.Fprintf(&b, "Server: %s\r\n", SERVER_NAME)
	fmt.Fprintf(&b, "Content-Type: %s\r\n", mime)
	fmt.Fprintf(&b, "Content-Length: %d\r\n", len(body))
	b.WriteString("Connection: close\r\n\r\n")
	b.Write(body)
	return b.Bytes()
}

// errorResponse builds the standard HTML error page for a status code.
func errorResponse(code int, reason string) []byte {
	body := fmt.Sprintf("<html><body><h1>%d %s</h1></body></html>", code, reason)
	return respond(code, reason, []byte(body), "text/html; charset=utf-8")
}
