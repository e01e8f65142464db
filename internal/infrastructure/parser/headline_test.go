package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/kwonth211/podcastify/internal/config"
)

func testSite() config.SiteConfig {
	return config.SiteConfig{
		SectionURL:      "https://news.naver.com/section/101",
		Origin:          "https://news.naver.com",
		PrimaryMarker:   "sa_item",
		SecondaryMarker: "_SECTION_HEADLINE",
		ArticleToken:    "article",
		MaxHeadlines:    5,
	}
}

func headlineItem(href, title string) string {
	return fmt.Sprintf(`<li class="sa_item _SECTION_HEADLINE"><a href=%q>%s</a></li>`, href, title)
}

func TestExtractBoundedInDocumentOrder(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString("<ul>")
	for i := 0; i < 8; i++ {
		b.WriteString(headlineItem(fmt.Sprintf("/mnews/article/001/%04d", i), fmt.Sprintf("기사 %d", i)))
	}
	b.WriteString("</ul>")

	p := NewHeadlineParser(testSite(), nil)
	set := p.Extract(b.String())

	if len(set.Headlines) != 5 {
		t.Fatalf("expected 5 headlines, got %d", len(set.Headlines))
	}
	for i, h := range set.Headlines {
		want := fmt.Sprintf("https://news.naver.com/mnews/article/001/%04d", i)
		if h.URL != want {
			t.Fatalf("headline %d: expected %s, got %s", i, want, h.URL)
		}
	}
}

func TestExtractTokenSetMatching(t *testing.T) {
	t.Parallel()

	// Superstring class tokens must not match the markers.
	html := `<ul>
	  <li class="sa_item2 _SECTION_HEADLINE2"><a href="/mnews/article/001/1111">가짜</a></li>
	  <li class="sa_item _SECTION_HEADLINE is_blind"><a href="/mnews/article/001/2222">진짜</a></li>
	</ul>`

	p := NewHeadlineParser(testSite(), nil)
	set := p.Extract(html)

	if len(set.Headlines) != 1 {
		t.Fatalf("expected 1 headline, got %d", len(set.Headlines))
	}
	if set.Headlines[0].Title != "진짜" {
		t.Fatalf("unexpected title: %s", set.Headlines[0].Title)
	}
}

func TestExtractNormalizesHrefs(t *testing.T) {
	t.Parallel()

	html := `<div>` +
		headlineItem("/mnews/article/001/0001#comments", "루트 상대") +
		headlineItem("mnews/article/001/0002", "베어 경로") +
		headlineItem("https://news.naver.com/mnews/article/001/0003", "절대") +
		`</div>`

	p := NewHeadlineParser(testSite(), nil)
	set := p.Extract(html)

	want := []string{
		"https://news.naver.com/mnews/article/001/0001",
		"https://news.naver.com/mnews/article/001/0002",
		"https://news.naver.com/mnews/article/001/0003",
	}
	if len(set.Headlines) != len(want) {
		t.Fatalf("expected %d headlines, got %d", len(want), len(set.Headlines))
	}
	for i, h := range set.Headlines {
		if h.URL != want[i] {
			t.Fatalf("headline %d: expected %s, got %s", i, want[i], h.URL)
		}
	}
}

func TestExtractDeduplicatesAndFilters(t *testing.T) {
	t.Parallel()

	html := `<div>` +
		headlineItem("/mnews/article/001/0001", "첫 기사") +
		headlineItem("/mnews/article/001/0001#photo", "중복") +
		headlineItem("/section/101", "기사 아님") +
		headlineItem("/mnews/article/001/0002", "둘째 기사") +
		`</div>`

	p := NewHeadlineParser(testSite(), nil)
	set := p.Extract(html)

	if len(set.Headlines) != 2 {
		t.Fatalf("expected 2 headlines, got %d", len(set.Headlines))
	}
	if set.Headlines[0].Title != "첫 기사" || set.Headlines[1].Title != "둘째 기사" {
		t.Fatalf("unexpected titles: %v", set.Titles())
	}
}

func TestExtractSkipsLinklessWithoutConsumingBudget(t *testing.T) {
	t.Parallel()

	site := testSite()
	site.MaxHeadlines = 2

	html := `<div>
	  <li class="sa_item _SECTION_HEADLINE"><span>링크 없음</span></li>
	  <li class="sa_item _SECTION_HEADLINE"><a href="">빈 링크</a></li>` +
		headlineItem("/mnews/article/001/0001", "하나") +
		headlineItem("/mnews/article/001/0002", "둘") +
		`</div>`

	p := NewHeadlineParser(site, nil)
	set := p.Extract(html)

	if len(set.Headlines) != 2 {
		t.Fatalf("expected 2 headlines, got %d", len(set.Headlines))
	}
}

func TestExtractTitleFallsBackToAttr(t *testing.T) {
	t.Parallel()

	html := `<li class="sa_item _SECTION_HEADLINE">
	  <a href="/mnews/article/001/0001" title="속성 제목"><img src="thumb.jpg"></a>
	</li>`

	p := NewHeadlineParser(testSite(), nil)
	set := p.Extract(html)

	if len(set.Headlines) != 1 {
		t.Fatalf("expected 1 headline, got %d", len(set.Headlines))
	}
	if set.Headlines[0].Title != "속성 제목" {
		t.Fatalf("unexpected title: %s", set.Headlines[0].Title)
	}
}

func TestExtractEmptyDocument(t *testing.T) {
	t.Parallel()

	p := NewHeadlineParser(testSite(), nil)

	if set := p.Extract(""); !set.Empty() {
		t.Fatalf("expected empty set for empty input")
	}
	if set := p.Extract("<html><body><p>no headlines here</p></body></html>"); !set.Empty() {
		t.Fatalf("expected empty set for unmatched document")
	}
}
