package quiz

// Answer is the committed answer for one question.
type Answer struct {
	QuestionID string `json:"question_id"`
	Value      string `json:"answer"`
}

// Ledger records at most one answer per question in first-commit order.
// It is a value: Commit returns a new ledger and leaves the receiver intact.
type Ledger struct {
	entries []Answer
	index   map[string]int
}

// Commit upserts the answer for a question. An existing entry keeps its
// position.
func (l Ledger) Commit(questionID, value string) Ledger {
	entries := make([]Answer, len(l.entries), len(l.entries)+1)
	copy(entries, l.entries)
	index := make(map[string]int, len(l.index)+1)
	for id, pos := range l.index {
		index[id] = pos
	}
	answer := Answer{QuestionID: questionID, Value: value}
	if pos, ok := index[questionID]; ok {
		entries[pos] = answer
	} else {
		index[questionID] = len(entries)
		entries = append(entries, answer)
	}
	return Ledger{entries: entries, index: index}
}

// Get returns the answer recorded for a question.
func (l Ledger) Get(questionID string) (Answer, bool) {
	pos, ok := l.index[questionID]
	if !ok {
		return Answer{}, false
	}
	return l.entries[pos], true
}

// All returns the answers in first-commit order.
func (l Ledger) All() []Answer {
	return append([]Answer(nil), l.entries...)
}

// Len returns the number of answered questions.
func (l Ledger) Len() int {
	return len(l.entries)
}
