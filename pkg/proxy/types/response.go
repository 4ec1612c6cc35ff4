package types

// RoleAssistant is the role of the fallback message.
const RoleAssistant = "assistant"

// ChatCompletion is the subset of an OpenAI-style chat completion the
// client reads: choices[0].message.content. Provider successes decode into
// it, and the fallback reply is built from it so both render the same way.
type ChatCompletion struct {
	Choices []Choice `json:"choices"`
}

// Choice is one completion choice.
type Choice struct {
	Message Message `json:"message"`
}

// Message is an assistant message inside a Choice.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// NewFallbackResponse returns the single-choice assistant completion sent
// with 200 when the provider answers 402 or 429.
func NewFallbackResponse(content string) *ChatCompletion {
	return &ChatCompletion{
		Choices: []Choice{
			{Message: Message{Role: RoleAssistant, Content: content}},
		},
	}
}

// Content returns the first choice's message content, or "" if there is none.
func (r *ChatCompletion) Content() string {
	if r == nil || len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}
