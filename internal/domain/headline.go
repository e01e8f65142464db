package domain

// Headline is one (URL, title) pair extracted from the listing page.
// URL is absolute with any fragment stripped; Title may be empty when the
// source anchor carries neither text nor a title attribute.
type Headline struct {
	URL   string
	Title string
}

// HeadlineSet is an ordered, URL-deduplicated collection bounded by the
// configured maximum. Order is document order; the first N entries are
// "today's headlines".
type HeadlineSet struct {
	Headlines []Headline
}

// URLs returns the set's URLs in insertion order.
func (s HeadlineSet) URLs() []string {
	urls := make([]string, 0, len(s.Headlines))
	for _, h := range s.Headlines {
		urls = append(urls, h.URL)
	}
	return urls
}

// Titles returns the set's titles in insertion order.
func (s HeadlineSet) Titles() []string {
	titles := make([]string, 0, len(s.Headlines))
	for _, h := range s.Headlines {
		titles = append(titles, h.Title)
	}
	return titles
}

// Empty reports whether no headlines were collected.
func (s HeadlineSet) Empty() bool {
	return len(s.Headlines) == 0
}

// Message is a composed promotional payload. Heading is only set for the
// push channel; the social channel renders everything into Body.
type Message struct {
	Heading string
	Body    string
}

// MergeOutcome describes what the URL store did with a merge request.
type MergeOutcome string

const (
	MergeWritten MergeOutcome = "written"
	MergeSkipped MergeOutcome = "skipped"
)
