package shell

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		description string
		line        string
		want        Command
	}{
		{"Should ignore a blank line", "   ", Command{Kind: KindEmpty}},
		{"Should send plain text", "  hello there ", Command{Kind: KindSay, Arg: "hello there"}},
		{"Should read an addressee", "/to Captain Nemo", Command{Kind: KindTo, Arg: "Captain Nemo"}},
		{"Should match commands without case", "/SYSTEM on", Command{Kind: KindSystem, Arg: "on"}},
		{"Should read a token limit", "/tokens  512", Command{Kind: KindTokens, Arg: "512"}},
		{"Should read a roster path", "/add crew.yaml", Command{Kind: KindAdd, Arg: "crew.yaml"}},
		{"Should read a nudge", "/talk Bob", Command{Kind: KindTalk, Arg: "Bob"}},
		{"Should read bare commands", "/who", Command{Kind: KindWho}},
		{"Should alias exit", "/exit", Command{Kind: KindQuit}},
		{"Should flag unknown commands", "/dance now", Command{Kind: KindUnknown, Arg: "/dance"}},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			require.Equal(t, tt.want, Parse(tt.line))
		})
	}
}
