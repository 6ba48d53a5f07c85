package board

import (
	"strings"

	"github.com/ziadkadry99/newsboard/internal/news"
)

const (
	featuredBadge = "FEATURADO"
	defaultBadge  = "Card"
	untitled      = "(sem título)"
	noDate        = "—"

	linkTarget = "_blank"
	linkRel    = "noopener noreferrer"
)

// Card is the rendered form of one news item.
type Card struct {
	Badge     string `json:"badge"`
	Featured  bool   `json:"featured"`
	Title     string `json:"title"`
	Href      string `json:"href"`
	Target    string `json:"target"`
	Rel       string `json:"rel"`
	Subtitle  string `json:"subtitle,omitempty"`
	Date      string `json:"date"`
	Source    string `json:"source"`
	HasSource bool   `json:"has_source"`
}

// RenderCard maps an item to its card. An empty subtitle leaves the card
// without a subtitle element at all.
func RenderCard(item news.Item) Card {
	c := Card{
		Badge:    defaultBadge,
		Featured: item.Featured,
		Title:    item.Title,
		Href:     item.Href,
		Target:   linkTarget,
		Rel:      linkRel,
		Subtitle: item.Subtitle,
		Date:     formatDate(item.CreatedAt),
	}
	if item.Featured {
		c.Badge = featuredBadge
	}
	if c.Title == "" {
		c.Title = untitled
	}
	c.Source, c.HasSource = news.SourceHost(item.Href)
	return c
}

func formatDate(s string) string {
	if strings.TrimSpace(s) == "" {
		return noDate
	}
	return s
}
