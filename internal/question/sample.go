package question

import (
	_ "embed"
)

//go:embed sample/questions.yml
var sampleBank []byte

// SampleBank returns the raw YAML of the bundled sample bank.
func SampleBank() []byte {
	return append([]byte(nil), sampleBank...)
}

// SampleCatalog parses the bundled sample bank.
func SampleCatalog() (Catalog, error) {
	return ParseBank(sampleBank, "questions.yml")
}
