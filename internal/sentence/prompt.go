package sentence

import (
	"fmt"
	"strings"
)

// DefaultLanguage is the language register sentences are generated in.
const DefaultLanguage = "Turkish"

// maxExistingInPrompt caps how many already-accepted sentences are repeated
// back to the model to keep prompts bounded.
const maxExistingInPrompt = 20

// BuildPrompt creates the sentence-generation prompt. The prompt constrains
// the model to return exactly count sentences containing word verbatim, as a
// bare JSON array of strings.
func BuildPrompt(word string, count int, context, language string, existing []string) string {
	if language == "" {
		language = DefaultLanguage
	}

	contextInstruction := ""
	if context != "" {
		contextInstruction = fmt.Sprintf("The sentences should be related to %s domain.", context)
	}

	existingInstruction := ""
	if len(existing) > 0 {
		if len(existing) > maxExistingInPrompt {
			existing = existing[len(existing)-maxExistingInPrompt:]
		}
		var sb strings.Builder
		for _, s := range existing {
			sb.WriteString("- ")
			sb.WriteString(s)
			sb.WriteString("\n")
		}
		existingInstruction = fmt.Sprintf("\nIMPORTANT: Do NOT repeat or paraphrase these existing sentences:\n%s", sb.String())
	}

	return fmt.Sprintf(`You are a %[1]s language expert creating training sentences for a Text-to-Speech system.

Generate exactly %[2]d natural %[1]s sentences that include the term "%[3]s".

CRITICAL REQUIREMENTS:
- Use the EXACT term "%[3]s" as written - preserve the EXACT capitalization and spelling
- The term may be a single word or a phrase - include it as a complete unit
- Each sentence should be 8-20 words long
- Use the term "%[3]s" in different grammatical contexts
- Sentences should be natural and conversational
- Suitable for voice synthesis (clear pronunciation contexts)
- Include the term at different positions in the sentences
- Vary sentence structures (statements, commands, questions if appropriate)
%[4]s
%[5]s

IMPORTANT: Return ONLY a valid JSON array of strings. No explanations, no markdown, just the JSON array.

Example format:
["First sentence here.", "Second sentence here.", "Third sentence here."]`,
		language, count, word, contextInstruction, existingInstruction)
}

// BuildSinglePrompt creates the prompt for regenerating one sentence that
// must differ from all existing ones. The model answers with plain text, not
// JSON.
func BuildSinglePrompt(word, language string, existing []string) string {
	if language == "" {
		language = DefaultLanguage
	}

	var sb strings.Builder
	for _, s := range existing {
		sb.WriteString("- ")
		sb.WriteString(s)
		sb.WriteString("\n")
	}

	return fmt.Sprintf(`Generate ONE new %[1]s sentence containing the term "%[2]s".

CRITICAL: Use the EXACT term "%[2]s" as written - preserve the EXACT capitalization and spelling.
The term may be a phrase - include it as a complete unit.

The sentence should be:
- 8-20 words long
- Natural and conversational
- Different from these existing sentences:
%[3]s
Return ONLY the sentence text, nothing else.`, language, word, sb.String())
}
