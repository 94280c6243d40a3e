package entity

// ChatRequest is one conversation turn posted by a presentation shell.
type ChatRequest struct {
	UserInput string            `json:"user_input"`
	State     ConversationState `json:"state"`
}

// ChatResponse returns the assistant messages for a turn plus the updated
// state the shell must send back on the next turn.
type ChatResponse struct {
	OK                bool              `json:"ok"`
	AssistantMessages []string          `json:"assistant_messages"`
	State             ConversationState `json:"state"`
}

// SettingsResponse is the admin view of the persisted settings.
type SettingsResponse struct {
	APIKey          string `json:"api_key"`
	TechnicalChecks string `json:"technical_checks"`
	BlocksCount     int    `json:"blocks_count"`
}

// SaveSettingsRequest overwrites the persisted settings wholesale.
type SaveSettingsRequest struct {
	APIKey          string `json:"api_key"`
	TechnicalChecks string `json:"technical_checks"`
}

// UploadBlocksResponse reports how many catalog rows were accepted.
type UploadBlocksResponse struct {
	OK   bool `json:"ok"`
	Rows int  `json:"rows"`
}

// ExportProposalRequest asks for a proposal text rendered as a downloadable
// file in the given format.
type ExportProposalRequest struct {
	Content string       `json:"content"`
	Format  ResultFormat `json:"format"`
}

// OKResponse is the generic success envelope.
type OKResponse struct {
	OK bool `json:"ok"`
}
