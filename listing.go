package main

import (
	"fmt"
	"html"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// listingFallback mirrors templates/dir_listing.html and is used when the
// template file cannot be read at startup.
const listingFallback = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Index of {{path}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
ul { list-style: none; padding-left: 0; }
li { padding: 2px 0; }
li.dir a { font-weight: bold; }
</style>
</head>
<body>
<h1>Index of {{path}}</h1>
<ul>
{{items}}
</ul>
</body>
</html>
`

// loadTemplate reads the listing template, falling back to the built-in
// copy so listings still render without the file.
func loadTemplate(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Listing template %s unavailable (%v), using built-in", path, err)
		return listingFallback
	}
	return string(data)
}

// directoryListing renders the HTML listing for a resolved directory.
// reqPath is the normalized request path (trailing slash); fsDir the
// resolved filesystem directory. ok is false if enumeration fails, which
// the handler reports as not found.
func (s *server) directoryListing(reqPath, fsDir string) (body []byte, ok bool) {
	entries, err := os.ReadDir(fsDir)
	if err != nil {
		return nil, false
	}

	if !strings.HasSuffix(reqPath, "/") {
		reqPath += "/"
	}

	var items []string
	if fsDir != s.root {
		items = append(items, fmt.Sprintf(`<li class="dir"><a href="%s">..</a></li>`,
			html.EscapeString(parentPath(reqPath))))
	}

	for _, entry := range entries {
		name := entry.Name()
		href := reqPath + name
		// Follow symlinks when classifying, like the directory walk a
		// browser would do through these links.
		info, err := os.Stat(filepath.Join(fsDir, name))
		isDir := err == nil && info.IsDir()
		if isDir {
			href += "/"
			items = append(items, fmt.Sprintf(`<li class="dir"><a href="%s">%s/</a> (%d)</li>`,
				html.EscapeString(href), html.EscapeString(name), s.counts.Get(href)))
		} else {
			items = append(items, fmt.Sprintf(`<li class="file"><a href="%s">%s</a> (%d)</li>`,
				html.EscapeString(href), html.EscapeString(name), s.counts.Get(href)))
		}
	}

	page := strings.ReplaceAll(s.template, "{{path}}", html.EscapeString(reqPath))
	page = strings.ReplaceAll(page, "{{items}}", strings.Join(items, "\n"))
	return []byte(page), true
}

// parentPath computes the normalized parent of a directory request path:
// "/a/b/" -> "/a/", "/a/" -> "/".
func parentPath(reqPath string) string {
	trimmed := strings.TrimRight(reqPath, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx <= 0 {
		return "/"
	}
	return trimmed[:idx+1]
}
