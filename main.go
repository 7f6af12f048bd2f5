package main

import (
	"flag"
	"fmt"
	"log"
	"os"
)

func main() {
	host := flag.String("host", DEFAULT_HOST, "interface to bind")
	port := flag.Int("port", DEFAULT_PORT, "port to listen on")
	template := flag.String("template", TEMPLATE_PATH, "directory listing template")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Println("Usage: ./file-server [flags] <directory>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	s, err := newServer(config{
		Root:         flag.Arg(0),
		Host:         *host,
		Port:         *port,
		TemplatePath: *template,
	})
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
	defer s.Stop()

	log.Printf("Serving '%s' on http://%s", s.root, s.Addr())
	s.Serve()
}
