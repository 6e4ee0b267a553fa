// Package message defines the entries of a conversation history.
package message

import (
	"strings"

	"github.com/google/uuid"
	"github.com/sat8bit/roundtable/persona"
)

// Delimiter separates the speaker's name from the content in the chat
// convention every participant is asked to follow.
const Delimiter = ">>"

// Message is one immutable entry of a conversation. Seq is its position in
// the history and is the only ordering the conversation relies on.
type Message struct {
	ID      uuid.UUID
	Seq     int
	Role    Role
	Speaker *persona.Persona
	Content string

	// Unparsed marks an assistant reply that did not follow the NAME>>content form.
	Unparsed bool
}

// New builds an entry that is not part of any history yet.
func New(role Role, speaker *persona.Persona, content string) Message {
	return Message{
		ID:      uuid.New(),
		Seq:     -1,
		Role:    role,
		Speaker: speaker,
		Content: content,
	}
}

func (m Message) SpeakerName() string {
	if m.Speaker == nil {
		return ""
	}
	return m.Speaker.Name
}

func (m Message) SpeakerColor() string {
	if m.Speaker == nil {
		return ""
	}
	return m.Speaker.Color
}

// Prefixed renders the content the way participants see it: the speaker's
// name in upper case, the delimiter, then the content.
func (m Message) Prefixed() string {
	return strings.ToUpper(m.SpeakerName()) + Delimiter + m.Content
}

// IsHostOriginated reports whether the entry was written by the host, either
// as Host or as System.
func (m Message) IsHostOriginated() bool {
	return m.Speaker.IsPseudo()
}
