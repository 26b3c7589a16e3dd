package examples2pdf

// State is the classification of the most recently processed source line.
type State int

// Parser states.
const (
	StateNone State = iota
	StateSection
	StateSubsection
	StateDefinition
	StateText
	StateExample
	StateCode
)

var stateNames = [...]string{
	StateNone:       "none",
	StateSection:    "section",
	StateSubsection: "subsection",
	StateDefinition: "definition",
	StateText:       "text",
	StateExample:    "example",
	StateCode:       "code",
}

// String returns the lowercase state name.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// States lists every state, in declaration order.
func States() []State {
	return []State{StateNone, StateSection, StateSubsection, StateDefinition, StateText, StateExample, StateCode}
}
