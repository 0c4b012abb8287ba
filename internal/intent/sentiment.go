package intent

import (
	"strings"

	"github.com/printdesk/printdesk/internal/domain"
)

// Keyword lists for coarse sentiment flags. Matching is substring based
// over the lowercased message, which is enough to steer the LLM's tone.
var (
	urgentWords   = []string{"urgent", "asap", "immediately", "right away", "emergency", "rush"}
	confusedWords = []string{"confused", "don't understand", "dont understand", "what do you mean", "unclear", "lost"}
	positiveWords = []string{"thanks", "thank you", "great", "awesome", "perfect", "appreciate"}
	negativeWords = []string{"angry", "frustrated", "terrible", "awful", "unacceptable", "disappointed", "wrong"}
)

// DetectSentiment scans a message for tone signals. Flags are independent;
// a message can be urgent and negative at once.
func DetectSentiment(text string) domain.Sentiment {
	lower := strings.ToLower(text)
	return domain.Sentiment{
		IsUrgent:   containsAny(lower, urgentWords),
		IsConfused: containsAny(lower, confusedWords),
		IsPositive: containsAny(lower, positiveWords),
		IsNegative: containsAny(lower, negativeWords),
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
