package chat

import (
	"fmt"
	"strings"

	"github.com/aristath/finchat/internal/clients/ragservice"
	"github.com/aristath/finchat/internal/modules/news"
)

// EmptyNewsMessage is returned when the news store has nothing to show.
const EmptyNewsMessage = "No news available at the moment."

// RAGUnavailableMessage is the soft failure shown when the delegated
// retrieval/generation service cannot be reached.
const RAGUnavailableMessage = "Sorry, I could not reach the research service right now. Please try again in a moment."

// FormatNews renders stored items as a chat message, newest first.
func FormatNews(items []news.Item) string {
	if len(items) == 0 {
		return EmptyNewsMessage
	}

	var b strings.Builder
	b.WriteString("Latest news:")
	for _, item := range items {
		b.WriteString(fmt.Sprintf("\n- %s: %s", item.Title, item.Summary))
	}
	return b.String()
}

// FormatAnswer renders a generated answer with its supporting snippets.
// Without snippets the answer stands alone.
func FormatAnswer(answer *ragservice.Answer) string {
	if len(answer.Snippets) == 0 {
		return answer.Answer
	}

	var b strings.Builder
	b.WriteString(answer.Answer)
	b.WriteString("\n\nSources:")
	for _, s := range answer.Snippets {
		b.WriteString(fmt.Sprintf("\n- %s: %s (%s)", s.Title, s.Summary, s.Source))
	}
	return b.String()
}
