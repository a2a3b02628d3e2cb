// ABOUTME: Writes the conversation as a standalone HTML transcript
// ABOUTME: Message bodies go through the markdown renderer so links open in a new tab

package main

import (
	"fmt"
	"html"
	"io"
	"os"
	"strings"

	"github.com/2389/coursechat/internal/conversation"
	"github.com/2389/coursechat/internal/course"
	"github.com/2389/coursechat/internal/render"
)

const transcriptHead = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>coursechat transcript</title></head>
<body>
`

// exportTranscript writes st to path, replacing any existing file.
func exportTranscript(path string, st conversation.State) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating transcript: %w", err)
	}
	if err := writeTranscript(f, st, render.NewRenderer()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeTranscript(w io.Writer, st conversation.State, r *render.Renderer) error {
	var b strings.Builder
	b.WriteString(transcriptHead)

	for _, m := range st.Messages() {
		fmt.Fprintf(&b, "<div class=\"message %s %s\">\n", m.Role, m.Kind)
		if m.Role == conversation.RoleUser {
			fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(m.Content))
		} else {
			body, err := r.HTML(m.Content + courseList(m.Courses))
			if err != nil {
				return fmt.Errorf("rendering message %s: %w", m.ID, err)
			}
			b.WriteString(body)
		}
		b.WriteString("</div>\n")
	}

	b.WriteString("</body>\n</html>\n")
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing transcript: %w", err)
	}
	return nil
}

// courseList renders course cards as a markdown bullet list.
func courseList(courses []course.Course) string {
	if len(courses) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n\n")
	for _, c := range course.Cards(courses) {
		title := c.Title
		if c.BookURL != "" {
			title = "[" + c.Title + "](" + c.BookURL + ")"
		}
		b.WriteString("- " + join(title, join(c.Subtitle, join(c.Price, c.Places))) + "\n")
	}
	return b.String()
}
