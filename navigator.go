package quizbot

// NavigatorState carries the persistent position within a quiz session.
// It is owned by the session layer and mutated only through Advance.
type NavigatorState struct {
	CurrentIndex int `json:"current_index"`
}

// Navigator provides index-wrapped access over a frozen question bank.
type Navigator struct {
	bank *QuestionBank
}

// NewNavigator creates a navigator over the given bank and freezes it.
// The bank must be non-empty.
func NewNavigator(bank *QuestionBank) (*Navigator, error) {
	if bank == nil || bank.Size() == 0 {
		return nil, ErrEmptyBank
	}
	bank.Freeze()
	return &Navigator{bank: bank}, nil
}

// Size returns the number of questions in the underlying bank.
func (n *Navigator) Size() int {
	return n.bank.Size()
}

// QuestionAt returns the question at the given index, wrapping
// out-of-range values instead of failing. Negative indices wrap with
// mathematical modulo, so the effective index is always in [0, size).
func (n *Navigator) QuestionAt(index int) Question {
	return n.bank.Question(mod(index, n.bank.Size()))
}

// Advance moves one step forward (+1) or backward (-1) from the given
// state, wrapping at both ends. It is a pure function: the input state is
// not modified.
func (n *Navigator) Advance(direction int, state NavigatorState) NavigatorState {
	return NavigatorState{
		CurrentIndex: mod(state.CurrentIndex+direction, n.bank.Size()),
	}
}

// mod is mathematical modulo: the result always lies in [0, b) for b > 0,
// unlike Go's truncating % operator.
func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
