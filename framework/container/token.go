package container

import "strconv"

// Token identifies a registration in a Container.
//
// There are three kinds of token:
//   - Name, an opaque string compared by value
//   - *Symbol, an opaque marker compared by identity
//   - *Class, a constructible class compared by identity
//
// Callers are responsible for keeping tokens unique.
type Token interface {
	String() string
	isToken()
}

// Name is a string token. Two Names with the same text are the same token.
//
//	const ConfigToken container.Name = "cfg"
type Name string

func (n Name) String() string { return strconv.Quote(string(n)) }
func (Name) isToken()          {}

// Symbol is a unique token. Every call to NewSymbol returns a distinct token,
// even when the descriptions match.
type Symbol struct {
	desc string
}

// NewSymbol creates a unique token. desc is used for messages only.
//
//	var APIToken = container.NewSymbol("Api")
func NewSymbol(desc string) *Symbol {
	return &Symbol{desc: desc}
}

// Description returns the text given to NewSymbol.
func (s *Symbol) Description() string { return s.desc }

func (s *Symbol) String() string {
	if s == nil {
		return "Symbol(<nil>)"
	}
	return "Symbol(" + s.desc + ")"
}

func (*Symbol) isToken() {}
