package entity

// Phase is one state of the three-stage conversation state machine.
type Phase string

const (
	PhaseClarification    Phase = "clarification"
	PhaseFunctionalDesign Phase = "functional_design"
	PhaseBlockProposal    Phase = "block_proposal"
)

// Valid reports whether p is one of the defined phases.
func (p Phase) Valid() bool {
	switch p {
	case PhaseClarification, PhaseFunctionalDesign, PhaseBlockProposal:
		return true
	}
	return false
}

// Next returns the phase that follows p. Transitions are strictly
// forward-moving; block_proposal is absorbing.
func (p Phase) Next() Phase {
	switch p {
	case PhaseClarification:
		return PhaseFunctionalDesign
	case PhaseFunctionalDesign:
		return PhaseBlockProposal
	default:
		return PhaseBlockProposal
	}
}

// ConversationState is the per-session conversation context. BaseRequest is
// set once from the first user message and never changes afterwards;
// RequirementMessages is append-only.
type ConversationState struct {
	Phase               Phase    `json:"phase"`
	BaseRequest         string   `json:"base_request"`
	RequirementMessages []string `json:"requirement_messages"`
}

// Settings is the operator-configured record persisted by the settings store.
type Settings struct {
	APIKey          string `json:"api_key"`
	TechnicalChecks string `json:"technical_checks"`
}

// CatalogBlock is one named reusable capability from the uploaded CSV
// catalog. Blocks with an empty name are kept in the catalog but excluded
// from prompt rendering.
type CatalogBlock struct {
	BlockName                string `json:"block_name"`
	FunctionalityDescription string `json:"functionality_description"`
}

// ClarificationResult is the structured payload the generation backend is
// asked to return during the clarification phase. It is transient and never
// persisted.
type ClarificationResult struct {
	Complete         bool   `json:"complete"`
	AssistantMessage string `json:"assistant_message"`
}

// AdvanceRequest carries everything the conversation engine needs for one
// turn. State is passed by value; the engine returns the updated copy.
type AdvanceRequest struct {
	Credential      string
	UserInput       string
	TechnicalChecks string
	Catalog         []CatalogBlock
	State           ConversationState
}

// AdvanceResult is the outcome of one conversation turn. On generation
// failure the engine still returns a result whose State has the user input
// appended to the requirement history, so a failed turn counts as consumed.
type AdvanceResult struct {
	Messages []string
	State    ConversationState
}

// ResultFormat selects the export format for a finished proposal.
type ResultFormat string

const (
	FormatMarkdown ResultFormat = "md"
	FormatPDF      ResultFormat = "pdf"
	FormatDOCX     ResultFormat = "docx"
)
