package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/rverdelli/PlatformVA/internal/config"
	"github.com/rverdelli/PlatformVA/internal/entity"
	"go.uber.org/zap"
)

// Usecase is the conversation engine: given a session state and one user
// message, it selects the phase prompt, delegates generation and computes the
// next state. It holds no state of its own; the shells own session storage.
type Usecase struct {
	generator      GenerationConnector
	gateOnComplete bool
	logger         *zap.Logger
}

func NewUsecase(generator GenerationConnector, cfg config.ChatConfig, logger *zap.Logger) *Usecase {
	return &Usecase{
		generator:      generator,
		gateOnComplete: cfg.GateOnComplete,
		logger:         logger,
	}
}

// Advance processes one conversation turn. The user input is appended to the
// requirement history before the generation call, so on generation failure
// the returned result still carries the post-append state alongside the
// error: a failed turn has consumed the message.
func (uc *Usecase) Advance(ctx context.Context, req *entity.AdvanceRequest) (*entity.AdvanceResult, error) {
	input := strings.TrimSpace(req.UserInput)
	if input == "" {
		return nil, entity.ErrEmptyInput
	}

	state := req.State
	if state.Phase == "" {
		state.Phase = entity.PhaseClarification
	}
	if !state.Phase.Valid() {
		return nil, fmt.Errorf("%w: %q", entity.ErrInvalidPhase, state.Phase)
	}

	if state.BaseRequest == "" {
		state.BaseRequest = input
	}
	state.RequirementMessages = appendMessage(state.RequirementMessages, input)

	ctxzap.Info(ctx, "advancing conversation",
		zap.String("phase", string(state.Phase)),
		zap.Int("history_length", len(state.RequirementMessages)),
	)

	switch state.Phase {
	case entity.PhaseClarification:
		return uc.clarify(ctx, req, state)
	case entity.PhaseFunctionalDesign:
		return uc.design(ctx, req, state)
	default:
		return uc.propose(ctx, req, state, input)
	}
}

func (uc *Usecase) clarify(ctx context.Context, req *entity.AdvanceRequest, state entity.ConversationState) (*entity.AdvanceResult, error) {
	prompt := clarificationPrompt(req.TechnicalChecks, state.BaseRequest, state.RequirementMessages)

	raw, err := uc.generator.Generate(ctx, req.Credential, prompt, clarificationTemperature)
	if err != nil {
		return &entity.AdvanceResult{State: state}, &entity.GenerationError{Err: err}
	}

	result := parseClarification(ctx, raw)

	if !uc.gateOnComplete || result.Complete {
		state.Phase = entity.PhaseFunctionalDesign
	}

	return &entity.AdvanceResult{
		Messages: []string{result.AssistantMessage, clarificationFollowUp},
		State:    state,
	}, nil
}

func (uc *Usecase) design(ctx context.Context, req *entity.AdvanceRequest, state entity.ConversationState) (*entity.AdvanceResult, error) {
	prompt := functionalDesignPrompt(state.BaseRequest, state.RequirementMessages)

	text, err := uc.generator.Generate(ctx, req.Credential, prompt, functionalDesignTemperature)
	if err != nil {
		return &entity.AdvanceResult{State: state}, &entity.GenerationError{Err: err}
	}

	state.Phase = entity.PhaseBlockProposal

	return &entity.AdvanceResult{
		Messages: []string{text},
		State:    state,
	}, nil
}

func (uc *Usecase) propose(ctx context.Context, req *entity.AdvanceRequest, state entity.ConversationState, feedback string) (*entity.AdvanceResult, error) {
	prompt := blockProposalPrompt(state.BaseRequest, state.RequirementMessages, feedback, req.Catalog)

	text, err := uc.generator.Generate(ctx, req.Credential, prompt, blockProposalTemperature)
	if err != nil {
		return &entity.AdvanceResult{State: state}, &entity.GenerationError{Err: err}
	}

	// block_proposal is absorbing: every further turn refines the proposal.
	return &entity.AdvanceResult{
		Messages: []string{text},
		State:    state,
	}, nil
}

// parseClarification parses the backend payload strictly. A malformed payload
// never raises past this point; the engine substitutes the deterministic
// fallback and reports complete=false.
func parseClarification(ctx context.Context, raw string) entity.ClarificationResult {
	var result entity.ClarificationResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		ctxzap.Warn(ctx, "clarification payload is not valid JSON, using fallback answer",
			zap.Error(err),
		)
		return entity.ClarificationResult{
			Complete:         false,
			AssistantMessage: clarificationFallbackMessage,
		}
	}

	result.AssistantMessage = strings.TrimSpace(result.AssistantMessage)

	return result
}

// appendMessage copies before appending so the caller's slice is never
// aliased; state values stay independent across turns.
func appendMessage(messages []string, msg string) []string {
	out := make([]string, len(messages), len(messages)+1)
	copy(out, messages)
	return append(out, msg)
}
