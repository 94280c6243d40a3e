package conversation

import (
	"fmt"
	"strings"

	"github.com/rverdelli/PlatformVA/internal/entity"
)

// Per-phase sampling temperatures.
const (
	clarificationTemperature    = 0.2
	functionalDesignTemperature = 0.25
	blockProposalTemperature    = 0.3
)

// clarificationFollowUp is appended after every clarification answer,
// inviting the user to add detail before the functional design turn.
const clarificationFollowUp = "Please share any additional details now (optional). Then I will produce the functional design in the next response."

// clarificationFallbackMessage substitutes a malformed clarification payload.
const clarificationFallbackMessage = "Some technical checks are still unclear. " +
	"Please provide missing details about architecture, integrations, security, data constraints, and non-functional requirements."

const (
	noChecksMarker  = "(none provided)"
	noHistoryMarker = "(none)"
	noBlocksMarker  = "(No blocks available in CSV.)"
)

const clarificationPromptTemplate = `You are a requirements-clarification assistant.
Language for output: English.

Technical checks provided by admin:
---
%s
---

User requirement and clarifications so far:
---
%s
---

Main requirement (first user request):
---
%s
---

Task:
1) Evaluate the requirement against the technical checks.
2) If checks are missing, explicitly list which checks are not passed and ask targeted follow-up questions.
3) If checks are complete, confirm all checks are covered and say we'll move to functional design.

Return ONLY valid JSON:
{
  "complete": true or false,
  "assistant_message": "..."
}`

const functionalDesignPromptTemplate = `You are a functional solution architect.
Language for output: English.

Base requirement:
---
%s
---

Requirement details:
---
%s
---

Produce a functional system design with:
1) Ordered functional capabilities
2) Logical execution flow
3) Main data/integration touchpoints
4) Assumptions

End with: "If this design looks good, reply CONFIRMED. Otherwise, provide requested changes."`

const blockProposalPromptTemplate = `You are a solution design assistant.
Language for output: English.

Base requirement:
---
%s
---

Refined requirement context:
---
%s
---

User feedback on functional design (or CONFIRMED):
---
%s
---

Available blocks from CSV:
---
%s
---

Create a proposal with these sections:
1) Final interpreted requirement
2) Recommended blocks from catalog (only relevant ones)
3) Suggested implementation sequence
4) Missing capabilities not covered by listed blocks
5) Optional extra blocks/capabilities to add

If user requested design changes, incorporate them before selecting blocks.`

func clarificationPrompt(technicalChecks, baseRequest string, requirementMessages []string) string {
	checks := technicalChecks
	if checks == "" {
		checks = noChecksMarker
	}

	history := noHistoryMarker
	if len(requirementMessages) > 0 {
		history = strings.Join(requirementMessages, "\n")
	}

	return fmt.Sprintf(clarificationPromptTemplate, checks, history, baseRequest)
}

func functionalDesignPrompt(baseRequest string, requirementMessages []string) string {
	return fmt.Sprintf(functionalDesignPromptTemplate, baseRequest, strings.Join(requirementMessages, "\n"))
}

func blockProposalPrompt(baseRequest string, requirementMessages []string, designFeedback string, blocks []entity.CatalogBlock) string {
	return fmt.Sprintf(blockProposalPromptTemplate,
		baseRequest,
		strings.Join(requirementMessages, "\n"),
		designFeedback,
		renderCatalog(blocks),
	)
}

// renderCatalog flattens the catalog into "- name: description" lines.
// Blocks with an empty name carry no grounding value and are skipped.
func renderCatalog(blocks []entity.CatalogBlock) string {
	var lines []string
	for _, block := range blocks {
		name := strings.TrimSpace(block.BlockName)
		if name == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", name, strings.TrimSpace(block.FunctionalityDescription)))
	}

	if len(lines) == 0 {
		return noBlocksMarker
	}

	return strings.Join(lines, "\n")
}
