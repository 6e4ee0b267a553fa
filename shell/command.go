// Package shell is the host's console: it reads lines, turns them into
// commands and runs them against the orchestrator.
package shell

import "strings"

type Kind int

const (
	KindEmpty Kind = iota
	// KindSay is a plain line, sent as a host message.
	KindSay
	KindTo
	KindSystem
	KindTokens
	KindAdd
	KindTalk
	KindWho
	KindState
	KindHelp
	KindQuit
	KindUnknown
)

type Command struct {
	Kind Kind
	// Arg is the trimmed text after the command word, or the whole line for KindSay.
	Arg string
}

var commands = map[string]Kind{
	"/to":     KindTo,
	"/system": KindSystem,
	"/tokens": KindTokens,
	"/add":    KindAdd,
	"/talk":   KindTalk,
	"/who":    KindWho,
	"/state":  KindState,
	"/help":   KindHelp,
	"/quit":   KindQuit,
	"/exit":   KindQuit,
}

// Parse reads one console line. Lines starting with a slash are commands,
// matched without regard to case.
func Parse(line string) Command {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{Kind: KindEmpty}
	}
	if !strings.HasPrefix(line, "/") {
		return Command{Kind: KindSay, Arg: line}
	}

	word, rest, _ := strings.Cut(line, " ")
	kind, ok := commands[strings.ToLower(word)]
	if !ok {
		return Command{Kind: KindUnknown, Arg: word}
	}
	return Command{Kind: kind, Arg: strings.TrimSpace(rest)}
}

const usage = `commands:
  <text>                 send text to the current addressee
  /to all|audience|NAME  choose who replies to the next messages
  /system on|off         send the next messages as system instead of host
  /tokens N              set the reply token limit
  /add FILE              enroll the participants of a roster file
  /talk NAME             ask NAME to speak without a new message
  /who                   list participants
  /state                 show the session state
  /quit                  leave`
