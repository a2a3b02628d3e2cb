// ABOUTME: Rewrites bare URLs in assistant replies into labelled markdown links
// ABOUTME: Institute and webshop URLs get friendly labels, others show their host

package render

import (
	"net/url"
	"regexp"
	"strings"
)

const (
	webshopHost   = "servuswebshop.oesterreichinstitut.com"
	instituteHost = "oesterreichinstitut.com"
)

var (
	// mdLinkOrURL matches an existing markdown link (kept as is) or a bare URL.
	mdLinkOrURL = regexp.MustCompile(`\[[^\]]*\]\([^)\s]*\)|https?://[^\s<>()\[\]]+`)
	// bulletLink matches "- Title: https://..." lines.
	bulletLink = regexp.MustCompile(`(?m)^-\s+([^\n:]+?):\s+(https?://\S+)$`)
	mdLink     = regexp.MustCompile(`\[([^\]]*)\]\(([^)\s]*)\)`)
)

// LinkLabel returns the display text used for a bare URL.
func LinkLabel(rawURL string) string {
	if label, ok := instituteLabel(rawURL); ok {
		return label
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return rawURL
	}
	return u.Hostname()
}

func instituteLabel(rawURL string) (string, bool) {
	switch {
	case strings.Contains(rawURL, webshopHost):
		switch {
		case strings.Contains(rawURL, "/courses/"):
			return "German courses", true
		case strings.Contains(rawURL, "/checkout/"):
			return "book your course", true
		default:
			return "OEI Course Portal", true
		}
	case strings.Contains(rawURL, instituteHost):
		if strings.Contains(rawURL, "/german-courses/") {
			return "German courses", true
		}
		return "OEI Website", true
	}
	return "", false
}

// AutoLink turns "- Title: URL" bullets and bare URLs into markdown links.
// Links that are already markdown are left untouched.
func AutoLink(text string) string {
	if text == "" {
		return ""
	}

	text = bulletLink.ReplaceAllStringFunc(text, func(line string) string {
		m := bulletLink.FindStringSubmatch(line)
		title, link := strings.TrimSpace(m[1]), m[2]
		if label, ok := instituteLabel(link); ok {
			title = label
		}
		return "- [" + title + "](" + link + ")"
	})

	return mdLinkOrURL.ReplaceAllStringFunc(text, func(match string) string {
		if strings.HasPrefix(match, "[") {
			return match
		}
		link, trailing := splitTrailingPunct(match)
		return "[" + LinkLabel(link) + "](" + link + ")" + trailing
	})
}

// splitTrailingPunct keeps sentence punctuation out of a matched URL.
func splitTrailingPunct(s string) (string, string) {
	end := len(s)
	for end > 0 && strings.ContainsRune(".,;:!?'\"", rune(s[end-1])) {
		end--
	}
	return s[:end], s[end:]
}

// Plain renders a reply for a terminal: links become "label (url)" and bold
// markers are dropped.
func Plain(content string) string {
	s := AutoLink(content)
	s = mdLink.ReplaceAllStringFunc(s, func(match string) string {
		m := mdLink.FindStringSubmatch(match)
		label, link := m[1], m[2]
		if label == "" || label == link {
			return link
		}
		return label + " (" + link + ")"
	})
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	return s
}
