// Package publish writes the roster as a small tree of pages: an index with
// the ordered member list and tag groups, plus one page per member. Pages are
// markdown, or HTML rendered from that markdown.
package publish

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"clubroster/internal/store"
)

type WriteOptions struct {
	Title     string
	Overwrite bool
	// HTML writes .html pages rendered from the markdown instead of .md files.
	HTML bool
}

type WriteResult struct {
	Written []string `json:"written"`
}

func WriteRoster(snap store.Snapshot, toDir string, opt WriteOptions) (WriteResult, error) {
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)

	membersDir := filepath.Join(toDir, "members")
	if err := os.MkdirAll(membersDir, 0o755); err != nil {
		return WriteResult{}, err
	}

	ext := ".md"
	if opt.HTML {
		ext = ".html"
	}
	page := func(title, md string) ([]byte, error) {
		if !opt.HTML {
			return []byte(md), nil
		}
		s, err := RenderPageHTML(title, md)
		return []byte(s), err
	}

	title := strings.TrimSpace(opt.Title)
	if title == "" {
		title = "Club roster"
	}
	indexPath := filepath.Join(toDir, "index"+ext)
	index, err := page(title, RenderRosterIndexMarkdown(snap, RenderOptions{Title: title, LinkExt: ext}))
	if err != nil {
		return WriteResult{}, err
	}
	if err := writeFile(indexPath, index, opt.Overwrite); err != nil {
		return WriteResult{}, err
	}

	// Stop on first error.
	written := []string{indexPath}
	for _, m := range snap.Members {
		md, err := RenderMemberMarkdown(snap, m.ID)
		if err != nil {
			return WriteResult{}, err
		}
		b, err := page(m.Name, md)
		if err != nil {
			return WriteResult{}, err
		}
		p := filepath.Join(membersDir, memberFileName(m.ID, ext))
		if err := writeFile(p, b, opt.Overwrite); err != nil {
			return WriteResult{}, err
		}
		written = append(written, p)
	}

	return WriteResult{Written: written}, nil
}

// memberFileName maps an id to a file name inside the members directory.
// Distinct ids give distinct names.
func memberFileName(id, ext string) string {
	name := url.PathEscape(id)
	switch name {
	case "":
		name = "%"
	case ".", "..":
		name = strings.ReplaceAll(name, ".", "%2E")
	}
	return name + ext
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
