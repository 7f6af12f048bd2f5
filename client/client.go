// Command client issues a single HTTP/1.0 GET against the file server,
// prints the status line, and either shows the body or saves it to disk
// depending on the Content-Type.
package main

import (
	"bytes"
	"fmt"
	"io"
	"net"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// saveTypes lists the binary content types the client persists to disk,
// with the extension to fall back to when the URL path lacks one.
var saveTypes = map[string]string{
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
	"image/gif":       ".gif",
	"application/pdf": ".pdf",
}

func main() {
	if len(os.Args) != 5 {
		fmt.Println("Usage: ./client <server_host> <server_port> <url_path> <directory>")
		os.Exit(1)
	}
	host, port, urlPath, outdir := os.Args[1], os.Args[2], os.Args[3], os.Args[4]

	raw, err := fetch(host, port, urlPath)
	if err != nil {
		fmt.Printf("[client] request failed: %v\n", err)
		os.Exit(1)
	}

	headerBytes, body, ok := splitResponse(raw)
	if !ok {
		fmt.Println("[client] invalid response (no headers/body separator)")
		os.Exit(1)
	}

	headers := strings.Split(string(headerBytes), "\r\n")
	statusLine := "HTTP/1.0 000 Unknown"
	if len(headers) > 0 && headers[0] != "" {
		statusLine = headers[0]
	}
	fmt.Printf("[client] %s\n", statusLine)

	if statusCode(statusLine) != "200" {
		fmt.Println(string(body))
		return
	}

	contentType := headerValue(headers, "Content-Type")
	switch {
	case strings.HasPrefix(contentType, "text/"):
		fmt.Println(string(body))
	case saveExtension(contentType) != "":
		name := saveName(urlPath, saveExtension(contentType))
		if err := saveBody(outdir, name, body); err != nil {
			fmt.Printf("[client] save failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("[client] saved %s -> %s\n", contentType, filepath.Join(outdir, name))
	default:
		fmt.Println("[client] unknown or unsupported content-type; dumping first 200 bytes:")
		if len(body) > 200 {
			body = body[:200]
		}
		fmt.Printf("%q\n", body)
	}
}

// fetch sends one GET and reads until the server closes the connection.
func fetch(host, port, urlPath string) ([]byte, error) {
	conn, err := net.Dial("tcp", net.JoinHostPort(host, port))
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	req := fmt.Sprintf("GET %s HTTP/1.0\r\nHost: %s\r\nConnection: close\r\n\r\n", urlPath, host)
	if _, err := conn.Write([]byte(req)); err != nil {
		return nil, err
	}
	return io.ReadAll(conn)
}

// splitResponse separates headers from body at the first CRLF-CRLF.
func splitResponse(raw []byte) (headers, body []byte, ok bool) {
	sep := []byte("\r\n\r\n")
	idx := bytes.Index(raw, sep)
	if idx == -1 {
		return nil, nil, false
	}
	return raw[:idx], raw[idx+len(sep):], true
}

func statusCode(statusLine string) string {
	parts := strings.Fields(statusLine)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

func headerValue(headers []string, name string) string {
	prefix := strings.ToLower(name) + ":"
	for _, h := range headers[1:] {
		if strings.HasPrefix(strings.ToLower(h), prefix) {
			return strings.ToLower(strings.TrimSpace(h[len(prefix):]))
		}
	}
	return ""
}

func saveExtension(contentType string) string {
	for prefix, ext := range saveTypes {
		if strings.HasPrefix(contentType, prefix) {
			return ext
		}
	}
	return ""
}

// saveName derives the output filename from the URL path, appending the
// content type's extension when the path does not already carry it.
func saveName(urlPath, ext string) string {
	name := path.Base(strings.TrimRight(urlPath, "/"))
	if name == "" || name == "." || name == "/" {
		name = "index" + ext
	}
	if !strings.HasSuffix(strings.ToLower(name), ext) {
		name += ext
	}
	return name
}

func saveBody(outdir, name string, body []byte) error {
	if err := os.MkdirAll(outdir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outdir, name), body, 0644)
}
