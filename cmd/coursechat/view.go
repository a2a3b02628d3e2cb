// ABOUTME: Terminal rendering of conversation snapshots
// ABOUTME: Prints each message once, with course cards and a pending indicator

package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"github.com/2389/coursechat/internal/conversation"
	"github.com/2389/coursechat/internal/course"
	"github.com/2389/coursechat/internal/render"
)

var (
	assistantLabel = color.New(color.FgCyan, color.Bold)
	errorLabel     = color.New(color.FgRed)
	cardTitle      = color.New(color.Bold)
	dim            = color.New(color.Faint)
)

// view prints snapshots arriving from both the store subscription and the
// input loop. Rendering the same snapshot twice prints nothing new.
type view struct {
	mu       sync.Mutex
	out      io.Writer
	printed  map[string]bool
	answered map[string]bool
	waiting  string
}

func newView(out io.Writer) *view {
	return &view{
		out:      out,
		printed:  make(map[string]bool),
		answered: make(map[string]bool),
	}
}

func (v *view) render(st conversation.State) {
	v.mu.Lock()
	defer v.mu.Unlock()

	var lastUser string
	for _, m := range st.Messages() {
		if m.Role == conversation.RoleUser {
			lastUser = m.ID
			v.printed[m.ID] = true
			continue
		}
		if lastUser != "" {
			v.answered[lastUser] = true
		}
		if v.printed[m.ID] {
			continue
		}
		v.printed[m.ID] = true
		v.message(m)
	}

	if st.Pending() && lastUser != "" && !v.answered[lastUser] && v.waiting != lastUser {
		v.waiting = lastUser
		dim.Fprintln(v.out, "  thinking...")
	}
}

func (v *view) message(m conversation.Message) {
	if m.IsError() {
		errorLabel.Fprintf(v.out, "assistant: %s\n", m.Content)
		return
	}
	assistantLabel.Fprint(v.out, "assistant: ")
	fmt.Fprintln(v.out, render.Plain(m.Content))
	if m.HasCourses() {
		v.writeCourses(m.Courses)
	}
	fmt.Fprintln(v.out)
}

func (v *view) courses(courses []course.Course) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(courses) == 0 {
		fmt.Fprintln(v.out, "No courses found.")
		return
	}
	v.writeCourses(courses)
}

func (v *view) writeCourses(courses []course.Course) {
	pages := course.Pages(courses, course.DefaultPageSize)
	for i, page := range pages {
		if len(pages) > 1 {
			dim.Fprintf(v.out, "  -- %d/%d --\n", i+1, len(pages))
		}
		for _, c := range course.Cards(page) {
			cardTitle.Fprintf(v.out, "  * %s\n", c.Title)
			for _, line := range []string{c.Subtitle, c.Schedule, join(c.Price, c.Places), c.BookURL} {
				if line != "" {
					fmt.Fprintf(v.out, "    %s\n", line)
				}
			}
		}
	}
}

func (v *view) printf(format string, args ...any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.out, format, args...)
}

func (v *view) println(args ...any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintln(v.out, args...)
}

func (v *view) prompt() {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprint(v.out, "> ")
}

func (v *view) errorf(format string, args ...any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	errorLabel.Fprintf(v.out, "[error] "+format+"\n", args...)
}

func (v *view) hint(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	dim.Fprintln(v.out, msg)
}

func join(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " · " + b
	}
}
