package scraper

import (
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"

	"github.com/ziadkadry99/newsboard/internal/news"
)

var (
	articleRe = regexp.MustCompile(`\.ghtml(?:$|\?)`)
	dateRe    = regexp.MustCompile(`(\d{4})[-/](\d{2})[-/](\d{2})`)

	textPolicy = bluemonday.StrictPolicy()
)

// Selectors used against the portal markup.
const (
	wrapperSelector = ".wrapper.theme-jornalismo"
	anchorSelector  = "a.post__link"
	titleSelector   = "h2.post__title"
	featuredClass   = "first"

	subtitleSelector = "h2.content-head__subtitle"
	publishedTimeSel = "time[itemprop='datePublished']"
)

// subtitleFallbacks are tried in order when the subtitle heading is missing.
var subtitleFallbacks = []string{
	"meta[property='og:description']",
	".content-head__subtitle",
	"meta[name='description']",
}

// dateFallbacks are meta tags carrying the publication time.
var dateFallbacks = []string{
	"meta[itemprop='datePublished']",
	"meta[property='article:published_time']",
	"meta[name='article:published_time']",
}

// IsArticle reports whether href points at an article page.
func IsArticle(href string) bool {
	if href == "" {
		return false
	}
	return articleRe.MatchString(href)
}

// NormalizeDate extracts the first YYYY-MM-DD (or YYYY/MM/DD) in raw and
// returns it as YYYY/MM/DD, or "" when there is none.
func NormalizeDate(raw string) string {
	if raw == "" {
		return ""
	}
	m := dateRe.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return m[1] + "/" + m[2] + "/" + m[3]
}

// WrapperSelector returns the CSS selector for the cards of a column.
func WrapperSelector(columnID string) string {
	return "#" + columnID + " " + wrapperSelector
}

// ExtractCards parses the portal home page loaded from pageURL and returns
// one item per distinct (href, title) article link found in the column.
// Relative links are resolved against pageURL. limit truncates the wrapper
// list before filtering: zero means no limit and a negative value drops that
// many wrappers from the end.
func ExtractCards(page, pageURL, columnID string, limit int) ([]news.Item, error) {
	base, err := url.Parse(strings.TrimSpace(pageURL))
	if err != nil {
		return nil, fmt.Errorf("parsing page url: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parsing home page: %w", err)
	}

	if doc.Find("#" + columnID).Length() == 0 {
		return nil, fmt.Errorf("column #%s not found", columnID)
	}
	wrappers := doc.Find(WrapperSelector(columnID))
	if wrappers.Length() == 0 {
		return nil, fmt.Errorf("no cards found in column #%s", columnID)
	}
	if n := truncatedLen(wrappers.Length(), limit); n < wrappers.Length() {
		wrappers = wrappers.Slice(0, n)
	}

	type key struct{ href, title string }
	seen := make(map[key]bool)
	items := []news.Item{}

	wrappers.Each(func(_ int, w *goquery.Selection) {
		anchor := w.Find(anchorSelector).First()
		if anchor.Length() == 0 {
			return
		}

		href := resolveHref(base, anchor.AttrOr("href", ""))
		if !IsArticle(href) {
			return
		}

		title := cleanText(anchor.AttrOr("title", ""))
		if title == "" {
			title = cleanText(w.Find(titleSelector).First().Text())
		}

		k := key{href, title}
		if seen[k] {
			return
		}
		seen[k] = true
		items = append(items, news.Item{
			Title:    title,
			Href:     href,
			Featured: w.HasClass(featuredClass),
		})
	})

	return items, nil
}

// truncatedLen returns how many of n wrappers a limit keeps.
func truncatedLen(n, limit int) int {
	switch {
	case limit > 0:
		return min(n, limit)
	case limit < 0:
		return max(n+limit, 0)
	default:
		return n
	}
}

// resolveHref returns href as an absolute URL, or "" when it cannot be parsed.
func resolveHref(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(u).String()
}

// ExtractArticle returns the subtitle and normalized publication date of an
// article page. Missing values are returned empty.
func ExtractArticle(page string) (subtitle, createdAt string, err error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", "", fmt.Errorf("parsing article: %w", err)
	}
	return articleSubtitle(doc), articleDate(doc), nil
}

func articleSubtitle(doc *goquery.Document) string {
	if s := cleanText(doc.Find(subtitleSelector).First().Text()); s != "" {
		return s
	}
	for _, sel := range subtitleFallbacks {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		var s string
		if strings.HasPrefix(sel, "meta") {
			s = cleanText(node.AttrOr("content", ""))
		} else {
			s = cleanText(node.Text())
		}
		if s != "" {
			return s
		}
	}
	return ""
}

func articleDate(doc *goquery.Document) string {
	if t := doc.Find(publishedTimeSel).First(); t.Length() > 0 {
		raw := firstNonEmpty(t.AttrOr("datetime", ""), t.AttrOr("content", ""), t.Text())
		if d := NormalizeDate(strings.TrimSpace(raw)); d != "" {
			return d
		}
	}
	for _, sel := range dateFallbacks {
		raw := strings.TrimSpace(doc.Find(sel).First().AttrOr("content", ""))
		if d := NormalizeDate(raw); d != "" {
			return d
		}
	}
	return ""
}

// cleanText strips markup and collapses whitespace.
func cleanText(s string) string {
	s = html.UnescapeString(textPolicy.Sanitize(s))
	return strings.Join(strings.Fields(s), " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
