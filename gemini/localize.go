package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/thankscarbon/rida/conversation"
)

// pairSeparator joins two templates into one translation request.
const pairSeparator = "|||"

// Translate renders the template in the target language. On any failure the
// source text is returned unchanged so the UI never goes silent.
func (c *Client) Translate(ctx context.Context, text, language string) string {
	prompt := fmt.Sprintf(
		"You are a translation assistant. Translate the following text to %s. "+
			"Preserve any placeholder in curly braces. Do not add any extra text or explanations.\n\nText to translate:\n%s",
		language, text)

	translated, err := c.generateText(ctx, prompt)
	if err != nil {
		log.Err(err).
			Str("language", language).
			Msg("Failed to translate template, falling back to source text")
		return text
	}

	return strings.TrimSpace(translated)
}

// TranslatePair translates two templates in one call. When the response does
// not come back in the expected two-part shape, both source texts are
// returned unchanged.
func (c *Client) TranslatePair(ctx context.Context, first, second, language string) (string, string) {
	prompt := fmt.Sprintf(`You are a translation assistant. Translate the following text to %s.
The text contains two parts separated by '%s'.
Preserve the '%s' separator in your output.
Preserve any placeholder in curly braces.
Do not add any extra text or explanations.

Text to translate:
%s%s%s`, language, pairSeparator, pairSeparator, first, pairSeparator, second)

	translated, err := c.generateText(ctx, prompt)
	if err != nil {
		log.Err(err).
			Str("language", language).
			Msg("Failed to translate templates, falling back to source text")
		return first, second
	}

	a, b, ok := splitPair(translated)
	if !ok {
		log.Warn().
			Str("language", language).
			Str("response", translated).
			Msg("Could not parse translated templates, falling back to source text")
		return first, second
	}

	return a, b
}

// SupportsLanguage probes whether the model can answer in the given language.
func (c *Client) SupportsLanguage(ctx context.Context, language string) bool {
	prompt := fmt.Sprintf("Can you generate text in the language '%s'? Please answer with only 'yes' or 'no'.", language)

	answer, err := c.generateText(ctx, prompt)
	if err != nil {
		log.Err(err).
			Str("language", language).
			Msg("Language support probe failed")
		return false
	}

	return strings.Contains(strings.ToLower(answer), "yes")
}

func (c *Client) generateText(ctx context.Context, prompt string) (string, error) {
	return c.Generate(ctx, []conversation.Block{
		{
			Role:  conversation.RoleUser,
			Parts: []conversation.Part{{Text: prompt}},
		},
	})
}

func splitPair(s string) (string, string, bool) {
	parts := strings.Split(s, pairSeparator)
	if len(parts) != 2 {
		return "", "", false
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}
