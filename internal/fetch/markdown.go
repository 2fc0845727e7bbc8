package fetch

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	html2md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/mackee/go-readability"
)

var blankRunPattern = regexp.MustCompile(`\n{3,}`)

// ToMarkdown converts an HTML document to markdown.
// Noise known for the page's platform is stripped first. Readability isolates the article
// body; html-to-markdown converts the whole page when readability finds nothing; plain
// goquery text is the last resort.
func ToMarkdown(html, pageURL string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	platform := DetectPlatform(pageURL)
	if stripped, err := StripNoise(html, PlatformNoiseSelectors(platform)); err == nil {
		html = stripped
	}

	article, err := readability.Extract(html, readability.DefaultOptions())
	if err == nil && article.Root != nil {
		if md := CleanMarkdown(readability.ToMarkdown(article.Root)); md != "" {
			return md, nil
		}
	}

	domain := ""
	if u, perr := url.Parse(pageURL); perr == nil {
		domain = u.Host
	}
	converter := html2md.NewConverter(domain, true, &html2md.Options{})
	md, err := converter.ConvertString(html)
	if err == nil {
		if md = CleanMarkdown(md); md != "" {
			return md, nil
		}
	}

	text, terr := ExtractMainText(html, PlatformContentSelectors(platform))
	if terr != nil {
		return "", fmt.Errorf("markdown conversion failed: %w", terr)
	}
	return text, nil
}

// CleanMarkdown normalizes line endings, strips trailing spaces and collapses blank runs.
func CleanMarkdown(md string) string {
	md = strings.ReplaceAll(md, "\r\n", "\n")
	md = strings.ReplaceAll(md, "\r", "\n")

	lines := strings.Split(md, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	md = strings.Join(lines, "\n")
	md = blankRunPattern.ReplaceAllString(md, "\n\n")

	return strings.TrimSpace(md)
}
