package publish

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"time"

	"clubroster/internal/avatar"
	"clubroster/internal/model"
	"clubroster/internal/store"
)

type RenderOptions struct {
	// Title heads the roster index; empty uses "Club roster".
	Title string
	// LinkExt is the extension of linked member pages (".md" when empty).
	LinkExt string
}

func RenderMemberMarkdown(snap store.Snapshot, memberID string) (string, error) {
	m, ok := snap.Member(strings.TrimSpace(memberID))
	if !ok {
		return "", fmt.Errorf("member not found: %s", memberID)
	}

	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + strings.TrimSpace(m.Name))
	writeLn("")
	if isLinkable(m.Avatar) {
		writeLn("![" + linkText(m.Name) + "](" + linkDest(strings.TrimSpace(m.Avatar)) + ")")
		writeLn("")
	}

	writeLn("## Meta")
	writeLn("")
	writeLn("- ID: " + m.ID)
	writeLn(fmt.Sprintf("- Position: %d", snap.MemberIndex(m.ID)+1))
	for _, g := range store.GroupTags(m.Tags) {
		if len(g.Tags) == 0 {
			continue
		}
		names := make([]string, 0, len(g.Tags))
		for _, t := range g.Tags {
			names = append(names, strings.TrimSpace(t.Name))
		}
		writeLn("- " + g.Category.Label() + ": " + strings.Join(names, ", "))
	}
	if !isLinkable(m.Avatar) {
		writeLn("- Avatar: " + avatar.Summary(m.Avatar))
	}
	if !m.IsEditable {
		writeLn("- Read-only: true")
	}
	if !m.CreatedAt.IsZero() {
		writeLn("- Created: " + m.CreatedAt.UTC().Format(time.RFC3339))
	}

	intro := strings.TrimSpace(m.Introduction)
	if intro != "" {
		writeLn("")
		writeLn("## Introduction")
		writeLn("")
		writeLn(intro)
	}

	return buf.String(), nil
}

// isLinkable reports whether an avatar can be referenced from markdown as-is.
// Embedded data URLs are summarized instead of inlined.
func isLinkable(ref string) bool {
	ref = strings.TrimSpace(ref)
	return avatar.IsReference(ref) && avatar.MediaType(ref) == ""
}

func RenderRosterIndexMarkdown(snap store.Snapshot, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	title := strings.TrimSpace(opt.Title)
	if title == "" {
		title = "Club roster"
	}
	writeLn("# " + title)
	writeLn("")

	writeLn("## Members")
	writeLn("")
	if len(snap.Members) == 0 {
		writeLn("(none)")
	}
	ext := opt.LinkExt
	if ext == "" {
		ext = ".md"
	}
	for _, m := range snap.Members {
		renderMemberLine(&buf, m, ext)
	}

	writeLn("")
	writeLn("## Tags")
	for _, g := range store.GroupTags(snap.Tags) {
		writeLn("")
		writeLn("### " + g.Category.Label())
		writeLn("")
		if len(g.Tags) == 0 {
			writeLn("(none)")
			continue
		}
		for _, t := range g.Tags {
			fmt.Fprintf(&buf, "- %s (%d)\n", strings.TrimSpace(t.Name), countTagged(snap.Members, t.ID))
		}
	}

	return buf.String()
}

func renderMemberLine(buf *bytes.Buffer, m model.Member, ext string) {
	tags := make([]string, 0, len(m.Tags))
	for _, t := range m.Tags {
		tags = append(tags, strings.TrimSpace(t.Name))
	}
	suffix := ""
	if len(tags) > 0 {
		suffix = " (" + strings.Join(tags, ", ") + ")"
	}
	href := "members/" + url.PathEscape(memberFileName(m.ID, ext))
	fmt.Fprintf(buf, "- [%s](%s)%s\n", linkText(m.Name), linkDest(href), suffix)
}

var (
	linkTextEscaper = strings.NewReplacer(`\`, `\\`, `[`, `\[`, `]`, `\]`, "\n", " ", "\r", " ")
	linkDestEscaper = strings.NewReplacer(`\`, `\\`, `<`, `\<`, `>`, `\>`, "\n", "%0A", "\r", "%0D")
)

// linkText escapes a name for use between the brackets of a link or image.
func linkText(s string) string { return linkTextEscaper.Replace(strings.TrimSpace(s)) }

// linkDest wraps a URL in angle brackets so spaces and parentheses stay inside it.
func linkDest(s string) string { return "<" + linkDestEscaper.Replace(s) + ">" }

func countTagged(members []model.Member, tagID string) int {
	n := 0
	for _, m := range members {
		if m.HasTag(tagID) {
			n++
		}
	}
	return n
}
