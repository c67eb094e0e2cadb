package linkmeta

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// docMeta holds the raw values pulled out of one HTML document.
type docMeta struct {
	ogTitle       string
	ogDescription string
	ogImage       string
	ogSiteName    string

	twitterTitle       string
	twitterDescription string
	twitterImage       string

	metaTitle       string
	metaDescription string

	titleElement string
}

// parseDocument walks an HTML document and collects every metadata source
// we know how to rank. Invalid HTML parses best-effort: x/net/html never
// fails on real-world tag soup.
func parseDocument(body string) docMeta {
	var m docMeta

	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return m
	}

	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				property := getAttr(n, "property")
				name := getAttr(n, "name")
				content := strings.TrimSpace(getAttr(n, "content"))
				if content == "" {
					break
				}

				switch property {
				case "og:title":
					setFirst(&m.ogTitle, content)
				case "og:description":
					setFirst(&m.ogDescription, content)
				case "og:image":
					setFirst(&m.ogImage, content)
				case "og:site_name":
					setFirst(&m.ogSiteName, content)
				}

				switch name {
				case "twitter:title":
					setFirst(&m.twitterTitle, content)
				case "twitter:description":
					setFirst(&m.twitterDescription, content)
				case "twitter:image":
					setFirst(&m.twitterImage, content)
				case "title":
					setFirst(&m.metaTitle, content)
				case "description":
					setFirst(&m.metaDescription, content)
				}

			case "title":
				if m.titleElement == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					m.titleElement = strings.TrimSpace(n.FirstChild.Data)
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)

	return m
}

// title returns the best title: OpenGraph, then Twitter card, then a
// generic title meta tag, then the document title element.
func (m docMeta) title() string {
	return firstNonEmpty(m.ogTitle, m.twitterTitle, m.metaTitle, m.titleElement)
}

func (m docMeta) description() string {
	return firstNonEmpty(m.ogDescription, m.twitterDescription, m.metaDescription)
}

// image returns the best image URL resolved against the page URL, since
// OpenGraph image values are sometimes relative.
func (m docMeta) image(pageURL string) string {
	img := firstNonEmpty(m.ogImage, m.twitterImage)
	if img == "" {
		return ""
	}
	return resolveURL(img, pageURL)
}

func (m docMeta) siteName() string {
	return m.ogSiteName
}

func setFirst(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// resolveURL resolves ref against base, returning ref unchanged when
// either side fails to parse.
func resolveURL(ref, base string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

// Domain extracts the display domain of a URL: the hostname with any
// leading "www." removed.
func Domain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(parsed.Hostname(), "www.")
}

// FaviconURL returns the conventional favicon location for a domain.
func FaviconURL(domain string) string {
	return "https://" + domain + "/favicon.ico"
}

// isSupported reports whether rawURL is a fetchable HTTP or HTTPS URL.
func isSupported(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(parsed.Scheme)
	return scheme == "http" || scheme == "https"
}
