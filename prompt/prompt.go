// Package prompt builds the context a participant sees before replying.
package prompt

import (
	"strings"

	"github.com/sat8bit/roundtable/llm"
	"github.com/sat8bit/roundtable/message"
	"github.com/sat8bit/roundtable/persona"
)

// Preamble explains the multi-agent chat convention to every participant.
var Preamble = strings.TrimSpace(`
This is a chat conversation between multiple chat agents with different setup prompts, generated by an application given user input.
The purpose is for training, simulations, test content generation, entertainment, etc.
Each participant's message begins with their name in all caps followed by "` + message.Delimiter + `".
Your character will be defined with the [CHARACTER SETUP] prompt. Each character only sees their own setup prompt.
Please respond only as this character. Try to respond in character as best you can.
The human user will be named "HOST", and system messages will be named "SYSTEM".`)

// FormatInstruction closes every context and restates the reply format.
const FormatInstruction = "Respond only as your given character, in the format:\n" +
	"CHARACTER NAME" + message.Delimiter + "Their response to the conversation at this point"

const setupPrefix = "[CHARACTER SETUP]: "

// Compose returns the ordered context for p: preamble, setup prompt, the
// history, the addressed message and the format instruction. The history
// entry carrying addressed's ID, if any, is left out of the history part so
// the addressed message always comes last. addressed may be nil.
//
// Compose has no side effects and depends on nothing but its arguments.
func Compose(p *persona.Persona, history []message.Message, addressed *message.Message) []llm.Message {
	out := make([]llm.Message, 0, len(history)+4)

	out = append(out, llm.Message{Role: message.RoleSystem, Content: Preamble})
	if p.SetupPrompt != "" {
		out = append(out, llm.Message{Role: message.RoleSystem, Content: setupPrefix + p.SetupPrompt})
	}

	for _, m := range history {
		if addressed != nil && m.ID == addressed.ID {
			continue
		}
		out = append(out, entry(m))
	}
	if addressed != nil {
		out = append(out, entry(*addressed))
	}

	out = append(out, llm.Message{Role: message.RoleSystem, Content: FormatInstruction})
	return out
}

func entry(m message.Message) llm.Message {
	return llm.Message{Role: m.Role, Content: m.Prefixed()}
}
