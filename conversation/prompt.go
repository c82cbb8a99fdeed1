package conversation

import (
	"fmt"
	"strings"
)

// ReportIDPlaceholder is the slot in the system template that receives the
// zero-padded report number.
const ReportIDPlaceholder = "{report_id}"

// PromptParams are the named template slots for one turn's system block.
// A nil ReportID leaves the placeholder literally in the template.
type PromptParams struct {
	Language string
	ReportID *int
}

type (
	// Block is one role-tagged message handed to the generation backend.
	Block struct {
		Role  Role
		Parts []Part
	}

	// Part is one piece of a content block: text, or inline media when
	// MimeType is set.
	Part struct {
		Text     string
		Data     []byte
		MimeType string
	}

	// Image pairs raw attachment bytes with their MIME type.
	Image struct {
		Data     []byte
		MimeType string
	}
)

// BuildPrompt assembles the payload for one backend invocation: the system
// block, the prior history in original order, then the new user block. An
// empty question with no image still yields a user block.
func BuildPrompt(systemTemplate string, params PromptParams, history []Turn, question string, image *Image) []Block {
	system := systemTemplate
	if params.ReportID != nil {
		system = strings.ReplaceAll(system, ReportIDPlaceholder, fmt.Sprintf("%02d", *params.ReportID))
	}

	language := params.Language
	if language == "" {
		language = DefaultLanguage
	}
	system = fmt.Sprintf("IMPORTANT: You must provide your answer in %s.\n\n%s", language, system)

	blocks := make([]Block, 0, len(history)+2)
	blocks = append(blocks, Block{
		Role:  RoleSystem,
		Parts: []Part{{Text: system}},
	})

	for _, turn := range history {
		blocks = append(blocks, Block{
			Role:  turn.Role,
			Parts: []Part{{Text: turn.Content}},
		})
	}

	userParts := []Part{{Text: question}}
	if image != nil {
		userParts = append(userParts, Part{
			Data:     image.Data,
			MimeType: image.MimeType,
		})
	}
	blocks = append(blocks, Block{
		Role:  RoleUser,
		Parts: userParts,
	})

	return blocks
}
