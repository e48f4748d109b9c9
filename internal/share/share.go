// Package share builds links for posting an anime to social networks.
package share

import (
	"fmt"
	"net/url"
)

// Target is one place a link can be shared to
type Target struct {
	Name string
	URL  string
}

// Text is the message that accompanies a shared link
func Text(title string) string {
	return fmt.Sprintf("Check out %s!", title)
}

// Targets returns the share links for title and link, in menu order
func Targets(title, link string) []Target {
	text := Text(title)
	return []Target{
		{
			Name: "X (Twitter)",
			URL: "https://twitter.com/intent/tweet?text=" + url.QueryEscape(text) +
				"&url=" + url.QueryEscape(link),
		},
		{
			Name: "Facebook",
			URL:  "https://www.facebook.com/sharer/sharer.php?u=" + url.QueryEscape(link),
		},
		{
			Name: "WhatsApp",
			URL:  "https://wa.me/?text=" + url.QueryEscape(text+" "+link),
		},
	}
}
