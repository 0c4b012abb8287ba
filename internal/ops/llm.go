package ops

import (
	"context"

	"github.com/printdesk/printdesk/internal/domain"
)

// LLMClient answers free-text questions no structured rule claimed. The
// openai adapter implements it.
type LLMClient interface {
	Query(ctx context.Context, text string, convCtx domain.ConversationContext, sentiment domain.Sentiment) domain.Result
}

// RegisterLLMOps wires the fallback language-model operation into the
// registry.
func RegisterLLMOps(r *Registry, llm LLMClient) {
	r.Register(Descriptor{
		Name:        "general_query",
		Description: "Answer a free-text question with the language model",
		Required:    []string{"text"},
		Run: func(ctx context.Context, p Params) domain.Result {
			return llm.Query(ctx, p.Str("text"), contextParam(p, "context"), sentimentParam(p, "sentiment"))
		},
	})
}
