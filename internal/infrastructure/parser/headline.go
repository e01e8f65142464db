package parser

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/kwonth211/podcastify/internal/config"
	"github.com/kwonth211/podcastify/internal/domain"
	"github.com/kwonth211/podcastify/internal/ports"
)

const defaultMaxHeadlines = 5

// HeadlineParser extracts the day's top article links from a rendered
// section page. Matching is by class marker tokens; the class attribute is
// normalized to a whitespace-split token set before membership tests, so
// "SECTION_HEADLINE2" never matches "_SECTION_HEADLINE".
type HeadlineParser struct {
	site   config.SiteConfig
	logger *slog.Logger
}

var _ ports.HeadlineExtractor = (*HeadlineParser)(nil)

// NewHeadlineParser wires the section markup description.
func NewHeadlineParser(site config.SiteConfig, logger *slog.Logger) *HeadlineParser {
	return &HeadlineParser{site: site, logger: logger}
}

// Extract parses rendered HTML and returns a bounded, deduplicated headline
// set in document order. Parse failures and empty input yield an empty set
// with a logged warning; the caller decides whether that is fatal.
func (p *HeadlineParser) Extract(html string) domain.HeadlineSet {
	if strings.TrimSpace(html) == "" {
		p.warn("empty document, no headlines extracted")
		return domain.HeadlineSet{}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		p.warn("cannot parse document", "error", err)
		return domain.HeadlineSet{}
	}

	elements := doc.Find("[class]").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		tokens := classTokens(sel)
		return tokens[p.site.PrimaryMarker] && tokens[p.site.SecondaryMarker]
	})

	if elements.Length() == 0 {
		elements = doc.Find("." + p.site.PrimaryMarker).FilterFunction(func(_ int, sel *goquery.Selection) bool {
			return classTokens(sel)[p.site.SecondaryMarker]
		})
	}

	p.debug("found headline elements", "count", elements.Length())

	maxCount := p.site.MaxHeadlines
	if maxCount <= 0 {
		maxCount = defaultMaxHeadlines
	}

	var set domain.HeadlineSet
	seen := map[string]struct{}{}

	elements.EachWithBreak(func(_ int, el *goquery.Selection) bool {
		link := el.Find("a[href]").First()
		if link.Length() == 0 {
			return true
		}

		href, _ := link.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			return true
		}

		title := strings.TrimSpace(link.Text())
		if title == "" {
			attr, _ := link.Attr("title")
			title = strings.TrimSpace(attr)
		}

		articleURL := p.normalizeURL(href)
		if !strings.Contains(articleURL, p.site.ArticleToken) {
			return true
		}
		if _, ok := seen[articleURL]; ok {
			return true
		}

		seen[articleURL] = struct{}{}
		set.Headlines = append(set.Headlines, domain.Headline{URL: articleURL, Title: title})
		p.debug("accepted headline", "title", title, "url", articleURL)

		return len(set.Headlines) < maxCount
	})

	if set.Empty() {
		p.warn("no headline links matched", "elements", elements.Length())
	}

	return set
}

// normalizeURL rebases root-relative and bare hrefs onto the site origin
// and strips any fragment.
func (p *HeadlineParser) normalizeURL(href string) string {
	origin := strings.TrimSuffix(p.site.Origin, "/")
	if strings.HasPrefix(href, "/") {
		href = origin + href
	} else if !strings.HasPrefix(href, "http") {
		href = origin + "/" + href
	}

	if idx := strings.Index(href, "#"); idx >= 0 {
		href = href[:idx]
	}

	return href
}

func classTokens(sel *goquery.Selection) map[string]bool {
	attr, _ := sel.Attr("class")
	tokens := map[string]bool{}
	for _, tok := range strings.Fields(attr) {
		tokens[tok] = true
	}
	return tokens
}

func (p *HeadlineParser) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}

func (p *HeadlineParser) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
