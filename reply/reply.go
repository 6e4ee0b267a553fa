// Package reply parses what a participant's completion came back with.
//
// A well formed reply follows the chat convention
//
//	NAME>>reply text
//
// and anything else is kept verbatim and reported as Unparsed.
package reply

import (
	"strings"

	"github.com/sat8bit/roundtable/message"
)

type Status int

const (
	Unparsed Status = iota
	Parsed
)

func (s Status) String() string {
	if s == Parsed {
		return "parsed"
	}
	return "unparsed"
}

type Result struct {
	// Speaker is the name written before the delimiter, trimmed. Empty when Unparsed.
	Speaker string
	Content string
	Status  Status
}

// Parse splits raw at the first delimiter. It never fails and never drops
// text: without a delimiter the whole input is the content.
func Parse(raw string) Result {
	name, content, found := strings.Cut(raw, message.Delimiter)
	if !found {
		return Result{Content: raw, Status: Unparsed}
	}
	return Result{
		Speaker: strings.TrimSpace(name),
		Content: content,
		Status:  Parsed,
	}
}

// SpokeAs reports whether the reply claims to come from name. Unparsed
// replies claim nobody and always match.
func (r Result) SpokeAs(name string) bool {
	if r.Status != Parsed {
		return true
	}
	return strings.EqualFold(r.Speaker, name)
}
