package llm

import "context"

type Message struct {
	Role    string
	Content string
}

// Client is the boundary to the completion/analysis collaborator.
// Complete turns a role-tagged chat history (plus an optional user-context
// string) into the next assistant reply. Analyze turns an assessment answer
// map into a narrative result. Neither retries; failures surface to the
// caller as-is.
type Client interface {
	Complete(ctx context.Context, history []Message, userContext string) (string, error)
	Analyze(ctx context.Context, kind string, answers map[string]int) (string, error)
}
