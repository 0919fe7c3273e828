package mailparse

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// bareURL matches http(s) URLs written out in plain text.
var bareURL = regexp.MustCompile(`(?i)\bhttps?://[^\s<>"'()\[\]{}]+`)

// trailingPunct is stripped from bare URLs; it usually ends the sentence.
const trailingPunct = ".,;:!?"

// HTMLLinks returns the absolute http(s) targets of <a> and <area> elements
// in document order. Relative links are resolved against <base href> when
// the document declares one and dropped otherwise.
func HTMLLinks(body string) []string {
	if strings.TrimSpace(body) == "" {
		return nil
	}

	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return nil
	}

	var (
		base  *url.URL
		links []string
	)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "base":
				if base == nil {
					if u, err := url.Parse(getAttr(n, "href")); err == nil && u.IsAbs() {
						base = u
					}
				}
			case "a", "area":
				if link := resolve(base, getAttr(n, "href")); link != "" {
					links = append(links, link)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return links
}

// TextLinks returns the http(s) URLs written out in text, in order.
func TextLinks(text string) []string {
	matches := bareURL.FindAllString(text, -1)
	links := make([]string, 0, len(matches))
	for _, m := range matches {
		m = strings.TrimRight(m, trailingPunct)
		if m != "" {
			links = append(links, m)
		}
	}
	return links
}

// resolve returns href as an absolute http(s) URL, or "" when it is not one.
func resolve(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if !u.IsAbs() {
		if base == nil {
			return ""
		}
		u = base.ResolveReference(u)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u.String()
	default:
		return ""
	}
}

// getAttr returns the value of the named attribute.
func getAttr(n *html.Node, name string) string {
	for _, attr := range n.Attr {
		if attr.Key == name {
			return attr.Val
		}
	}
	return ""
}

// mergeLinks concatenates link lists, keeping the first occurrence of each URL.
func mergeLinks(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var merged []string
	for _, list := range lists {
		for _, link := range list {
			if _, ok := seen[link]; ok {
				continue
			}
			seen[link] = struct{}{}
			merged = append(merged, link)
		}
	}
	return merged
}
