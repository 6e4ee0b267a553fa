package conversation

import "strings"

type addresseeKind int

const (
	audience addresseeKind = iota
	all
	named
)

// Addressee selects who replies to a host message. The zero value is Audience.
type Addressee struct {
	kind addresseeKind
	name string
}

// Audience records the message without asking anyone to reply.
func Audience() Addressee { return Addressee{kind: audience} }

// All asks every participant to reply, in registration order.
func All() Addressee { return Addressee{kind: all} }

// To asks exactly one participant to reply.
func To(name string) Addressee { return Addressee{kind: named, name: name} }

// ParseAddressee reads console input. "audience" and "all" are matched
// without regard to case, anything else is a participant name. Blank input
// means Audience.
func ParseAddressee(s string) Addressee {
	s = strings.TrimSpace(s)
	switch {
	case s == "", strings.EqualFold(s, "audience"):
		return Audience()
	case strings.EqualFold(s, "all"):
		return All()
	}
	return To(s)
}

func (a Addressee) IsAudience() bool { return a.kind == audience }
func (a Addressee) IsAll() bool      { return a.kind == all }

// Name is the addressed participant, empty unless built with To.
func (a Addressee) Name() string { return a.name }

func (a Addressee) String() string {
	switch a.kind {
	case all:
		return "all"
	case named:
		return a.name
	}
	return "audience"
}
