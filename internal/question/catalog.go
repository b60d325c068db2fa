package question

// Catalog is a validated bank: the tag vocabulary plus typed questions in
// bank order.
type Catalog struct {
	Tags      []string
	Questions []Question
}

// Lookup returns the question with the given id.
func (c Catalog) Lookup(id string) (Question, bool) {
	for _, q := range c.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// MatchesTags reports whether the question's tag set is a superset of tags.
func MatchesTags(q Question, tags []string) bool {
	for _, tag := range tags {
		if !q.HasTag(tag) {
			return false
		}
	}
	return true
}

// FilterByTags returns the questions carrying every requested tag, keeping
// input order. An empty tag list matches everything.
func FilterByTags(questions []Question, tags []string) []Question {
	out := make([]Question, 0, len(questions))
	for _, q := range questions {
		if MatchesTags(q, tags) {
			out = append(out, q)
		}
	}
	return out
}

// NormalizeTags trims and de-duplicates a requested tag list.
func NormalizeTags(tags []string) []string {
	return dedupeStrings(normalizeStringSlice(tags))
}
