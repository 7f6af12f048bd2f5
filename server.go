package main

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// --- Configuration ---

const (
	// DEFAULT_HOST is the interface the listener binds by default.
	DEFAULT_HOST = "0.0.0.0"

	// DEFAULT_PORT is the listen port when none is given.
	DEFAULT_PORT = 8080

	// MAX_CLIENTS caps the number of concurrently running handlers.
	MAX_CLIENTS = 10

	// RATE_LIMIT is the maximum requests admitted per client per window.
	RATE_LIMIT = 5

	// RATE_WINDOW is the sliding window the rate limiter evaluates.
	RATE_WINDOW = 1 * time.Second

	// READ_TIMEOUT bounds how long a connection may take to deliver its
	// request headers.
	READ_TIMEOUT = 5 * time.Second

	// TEMPLATE_PATH is the default location of the listing template.
	TEMPLATE_PATH = "templates/dir_listing.html"

	// MAX_HEADER_BYTES caps how much a connection may send while looking
	// for the blank line ending the headers.
	MAX_HEADER_BYTES = 64 * 1024
)

// config carries the immutable server settings. Zero values fall back to
// the defaults above so tests only set what they care about.
type config struct {
	Root         string
	Host         string
	Port         int
	RateLimit    int
	RateWindow   time.Duration
	ReadTimeout  time.Duration
	MaxClients   int
	TemplatePath string
}

func (c *config) applyDefaults() {
	if c.Host == "" {
		c.Host = DEFAULT_HOST
	}
	if c.RateLimit <= 0 {
		c.RateLimit = RATE_LIMIT
	}
	if c.RateWindow <= 0 {
		c.RateWindow = RATE_WINDOW
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = READ_TIMEOUT
	}
	if c.MaxClients <= 0 {
		c.MaxClients = MAX_CLIENTS
	}
	if c.TemplatePath == "" {
		c.TemplatePath = TEMPLATE_PATH
	}
}

// --- Server ---

// server owns the listener and the two pieces of state shared by all
// connection handlers: the rate limiter and the visit counters.
type server struct {
	cfg       config
	root      string // canonical content root
	template  string
	listener  net.Listener
	semaphore chan struct{}
	limiter   *rateLimiter
	counts    *countTable
}

// newServer canonicalizes the content root, loads the listing template,
// and binds the listener. The returned server is not yet accepting.
func newServer(cfg config) (*server, error) {
	cfg.applyDefaults()

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, err
	}
	root, err = filepath.EvalSymlinks(root)
	if err != nil {
		return nil, fmt.Errorf("content root %s: %w", cfg.Root, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content root %s is not a directory", root)
	}

	listener, err := net.Listen("tcp", net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)))
	if err != nil {
		return nil, err
	}

	return &server{
		cfg:       cfg,
		root:      root,
		template:  loadTemplate(cfg.TemplatePath),
		listener:  listener,
		semaphore: make(chan struct{}, cfg.MaxClients),
		limiter:   newRateLimiter(cfg.RateLimit, cfg.RateWindow),
		counts:    newCountTable(),
	}, nil
}

// Addr returns the bound listen address.
func (s *server) Addr() net.Addr {
	return s.listener.Addr()
}

// Start runs the accept loop in the background.
func (s *server) Start() {
	go s.Serve()
}

// Stop closes the listener, ending the accept loop.
func (s *server) Stop() {
	s.listener.Close()
}

// Serve runs the accept loop until the listener is closed. Each accepted
// connection takes a semaphore slot before its handler goroutine starts,
// so at most MaxClients handlers run at once.
func (s *server) Serve() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			log.Printf("Error accepting connection: %v", err)
			continue // Don't crash the server
		}

		s.semaphore <- struct{}{} // Acquire a slot. Blocks if channel is full.

		go s.handleConnection(conn)
	}
}

// --- Connection Handling ---

// handleConnection drives one connection end to end: read the headers,
// parse the request line, check the rate limit, resolve the path, serve
// the file or listing, write the response, close. Every exit path
// releases the semaphore slot and closes the socket; a panic anywhere in
// the pipeline becomes a 500 instead of taking the listener down.
func (s *server) handleConnection(conn net.Conn) {
	defer conn.Close()
	defer func() {
		<-s.semaphore // Release the slot
	}()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Panic serving %s: %v", conn.RemoteAddr(), r)
			s.write(conn, errorResponse(500, "Internal Server Error"))
		}
	}()

	// One fixed deadline for the whole header read.
	conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))

	raw := s.readHeaders(conn)
	if len(raw) == 0 {
		// Peer connected and went away without sending anything.
		return
	}

	headers, _ := splitHeadersBody(raw)
	lines := strings.Split(string(headers), "\r\n")
	method, target, _, ok := parseRequestLine(lines[0])
	if !ok {
		s.write(conn, errorResponse(400, "Bad Request"))
		return
	}

	log.Printf("Received: %s %s", method, target)

	if method != "GET" {
		s.write(conn, errorResponse(405, "Method Not Allowed"))
		return
	}

	if !s.limiter.Admit(clientKey(conn), time.Now()) {
		s.write(conn, errorResponse(429, "Too Many Requests"))
		return
	}

	fsPath, isDir, ok := resolvePath(s.root, target)
	if !ok {
		// Escapes and missing files are deliberately the same answer.
		s.write(conn, errorResponse(404, "Not Found"))
		return
	}

	s.write(conn, s.serveTarget(target, fsPath, isDir))
}

// readHeaders accumulates bounded chunks from the socket until the blank
// line terminating the headers, the peer closing, the read deadline, or
// the header size cap. Whatever arrived is returned; the parser decides
// if it is usable.
func (s *server) readHeaders(conn net.Conn) []byte {
	var data []byte
	buf := make([]byte, 4096)
	for len(data) < MAX_HEADER_BYTES && !bytes.Contains(data, []byte("\r\n\r\n")) {
		n, err := conn.Read(buf)
		data = append(data, buf[:n]...)
		if err != nil {
			break
		}
	}
	return data
}

// serveTarget produces the response for a resolved target: a rendered listing
// for directories, the raw bytes for files. The visit counter is bumped
// only once the body has actually been produced.
func (s *server) serveTarget(target, fsPath string, isDir bool) []byte {
	key := requestKey(target, isDir)

	if isDir {
		body, ok := s.directoryListing(key, fsPath)
		if !ok {
			return errorResponse(404, "Not Found")
		}
		s.counts.Increment(key)
		return respond(200, "OK", body, "text/html; charset=utf-8")
	}

	data, err := os.ReadFile(fsPath)
	if err != nil {
		return errorResponse(404, "Not Found")
	}
	s.counts.Increment(key)
	return respond(200, "OK", data, guessMime(fsPath))
}

// write sends a fully assembled response. The write carries the same
// fixed timeout as the read, so a peer that never drains its side cannot
// pin a handler (and its semaphore slot) forever. HTTP/1.0 is fire and
// forget: a failed write is logged and the connection simply closes.
func (s *server) write(conn net.Conn, resp []byte) {
	conn.SetWriteDeadline(time.Now().Add(s.cfg.ReadTimeout))
	if _, err := conn.Write(resp); err != nil {
		log.Printf("Error writing response to %s: %v", conn.RemoteAddr(), err)
	}
}

// clientKey derives the rate-limit key from the peer address: the bare
// IP, so every connection from one client shares a window.
func clientKey(conn net.Conn) string {
	addr := conn.RemoteAddr().String()
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
