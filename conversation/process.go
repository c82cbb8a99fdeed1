package conversation

import "context"

const (
	// FallbackText is recorded as the assistant turn when the backend fails,
	// so the conversation stays consistent after a failed generation.
	FallbackText = "Sorry, I encountered an error while processing your request. Please try again."

	// ImageAttachedMarker notes in the history that an image was part of a turn.
	ImageAttachedMarker = "(Image attached)"
)

// Backend is the generation capability. Implementations must be safe for
// concurrent use across chats.
type Backend interface {
	Generate(ctx context.Context, blocks []Block) (string, error)
}

// Input is the external request for one generation cycle. The caller
// increments the report counter before building the input when the turn
// carries an image; text-only follow-ups reuse the current value.
type Input struct {
	Question string
	Image    *Image
	Language string
	ReportID *int
}

// TurnOutcome reports what one Process call produced. Err is set when the
// backend failed; Text then carries the fallback shown to the user.
type TurnOutcome struct {
	Text string
	Err  error
}

// Process runs one turn: assemble the prompt, invoke the backend exactly
// once, fold the exchange into history. A backend failure never propagates
// as a fault; the fallback text becomes the permanent assistant turn and the
// error is reported through the outcome.
func Process(ctx context.Context, state State, in Input, systemTemplate string, backend Backend) (State, TurnOutcome) {
	blocks := BuildPrompt(
		systemTemplate,
		PromptParams{Language: in.Language, ReportID: in.ReportID},
		state.History,
		in.Question,
		in.Image,
	)

	var outcome TurnOutcome
	text, err := backend.Generate(ctx, blocks)
	if err != nil {
		outcome.Err = err
		text = FallbackText
	}
	outcome.Text = text

	userEntry := in.Question
	if in.Image != nil {
		if in.Question != "" {
			userEntry = in.Question + "\n" + ImageAttachedMarker
		} else {
			userEntry = ImageAttachedMarker
		}
	}

	history := make([]Turn, 0, len(state.History)+2)
	history = append(history, state.History...)
	history = append(history,
		Turn{Role: RoleUser, Content: userEntry},
		Turn{Role: RoleModel, Content: text},
	)

	next := state
	next.History = history
	if in.Language != "" {
		next.Language = in.Language
	}

	return next, outcome
}
