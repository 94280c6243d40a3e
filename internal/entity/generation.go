package entity

// Wire types for the OpenAI-compatible generation backend. Two call shapes
// are supported; the shape is fixed at connector construction.

// ResponsesRequest is the primary "responses" call shape.
type ResponsesRequest struct {
	Model       string           `json:"model"`
	Input       string           `json:"input"`
	Reasoning   *ReasoningParams `json:"reasoning,omitempty"`
	Temperature float64          `json:"temperature"`
}

type ReasoningParams struct {
	Effort string `json:"effort"`
}

type ResponsesResponse struct {
	// OutputText is populated by backends that aggregate the output
	// server-side; otherwise the text lives in Output message parts.
	OutputText string                `json:"output_text,omitempty"`
	Output     []ResponsesOutputItem `json:"output,omitempty"`
}

type ResponsesOutputItem struct {
	Type    string                 `json:"type"`
	Content []ResponsesContentPart `json:"content,omitempty"`
}

type ResponsesContentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ChatCompletionRequest is the fallback "chat completion" call shape.
type ChatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionResponse struct {
	Choices []ChatCompletionChoice `json:"choices"`
}

type ChatCompletionChoice struct {
	Message ChatMessage `json:"message"`
}
