// Package compose renders character-budgeted promotional messages from
// topic lists. Both channels are pure functions of (date, topics,
// templates); all limits count runes, not bytes, since the content is
// Korean.
package compose

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kwonth211/podcastify/internal/domain"
)

const (
	// SocialLimit is the hard character limit of a social post.
	SocialLimit = 280

	safetyMargin     = 10
	socialTopicLimit = 35
	socialTopicCut   = 32
	socialMaxTopics  = 3

	pushTopicLimit = 20
	pushTopicCut   = 17
	pushMaxTopics  = 3

	ellipsis = "..."
)

var weekdaysKo = [...]string{"일", "월", "화", "수", "목", "금", "토"}

// Templates carries the fixed promotional pieces shared by both channels.
type Templates struct {
	SiteURL  string
	Hashtags string
}

// SocialPost renders the daily social message. The header and footer are
// never truncated; topic lines are fitted greedily into the remaining
// budget, truncating long topics and stopping at the first overflow. With
// no topics a fixed template is selected by day of month. The result never
// exceeds SocialLimit runes.
func SocialPost(now time.Time, topics []string, tpl Templates) domain.Message {
	date := koreanDate(now)
	weekday := weekdaysKo[int(now.Weekday())]

	var message string
	if len(topics) > 0 {
		header := fmt.Sprintf("🎙️ %s(%s) 뉴스 팟캐스트\n\n", date, weekday)
		footer := fmt.Sprintf("\n🔗 %s\n\n%s", tpl.SiteURL, tpl.Hashtags)

		available := SocialLimit - runeLen(header) - runeLen(footer) - safetyMargin

		var lines []string
		used := 0
		for _, topic := range headTopics(topics, socialMaxTopics) {
			if runeLen(topic) > socialTopicLimit {
				topic = truncateRunes(topic, socialTopicCut) + ellipsis
			}
			line := "• " + topic + "\n"
			if used+runeLen(line) > available {
				break
			}
			lines = append(lines, line)
			used += runeLen(line)
		}

		message = header + strings.Join(lines, "") + footer
	} else {
		fallbacks := []string{
			fmt.Sprintf("🎙️ %s(%s) 데일리 뉴스가 도착했습니다!\n\n오늘의 주요 뉴스를 팟캐스트로 들어보세요.", date, weekday),
			fmt.Sprintf("☀️ 좋은 아침이에요! %s(%s) 뉴스 팟캐스트가 준비됐습니다.\n\n출근길에 가볍게 들어보세요 🎧", date, weekday),
			fmt.Sprintf("📰 %s(%s) 오늘의 뉴스 브리핑!\n\n주요 뉴스를 팟캐스트로 만나보세요.", date, weekday),
		}
		message = fallbacks[now.Day()%len(fallbacks)]
		message += fmt.Sprintf("\n\n🔗 %s\n\n%s", tpl.SiteURL, tpl.Hashtags)
	}

	// Safety net for template text that overshoots on its own.
	if runeLen(message) > SocialLimit {
		message = truncateRunes(message, SocialLimit-3) + ellipsis
	}

	return domain.Message{Body: message}
}

// PushNotification renders the short heading/body pair for the push
// channel. The heading is topic-independent; the body holds at most three
// bulleted topic lines, each capped at 20 runes.
func PushNotification(now time.Time, topics []string) domain.Message {
	heading := fmt.Sprintf("%s 뉴스가 도착했어요", koreanDate(now))

	if len(topics) == 0 {
		return domain.Message{Heading: heading, Body: "오늘의 뉴스 팟캐스트를 들어보세요"}
	}

	var lines []string
	for _, topic := range headTopics(topics, pushMaxTopics) {
		if runeLen(topic) > pushTopicLimit {
			topic = truncateRunes(topic, pushTopicCut) + ellipsis
		}
		lines = append(lines, "• "+topic)
	}

	return domain.Message{Heading: heading, Body: strings.Join(lines, "\n")}
}

func koreanDate(t time.Time) string {
	return fmt.Sprintf("%d월 %d일", int(t.Month()), t.Day())
}

func headTopics(topics []string, n int) []string {
	if len(topics) > n {
		return topics[:n]
	}
	return topics
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
