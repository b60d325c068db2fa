package question

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadBank reads, parses, and validates a question bank file.
func LoadBank(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read question bank: %w", err)
	}
	return ParseBank(data, path)
}

// ParseBank parses bank bytes using the file extension to pick the format.
func ParseBank(data []byte, path string) (Catalog, error) {
	bank, err := parseBank(data, path)
	if err != nil {
		return Catalog{}, err
	}
	return NormalizeBank(bank)
}

func parseBank(data []byte, path string) (Bank, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".json" {
		return parseJSONBank(data)
	}
	return parseYAMLBank(data)
}

func parseJSONBank(data []byte) (Bank, error) {
	var bank Bank
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&bank); err != nil {
		return Bank{}, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Bank{}, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return Bank{}, fmt.Errorf("parse json: %w", err)
	}
	return bank, nil
}

func parseYAMLBank(data []byte) (Bank, error) {
	var bank Bank
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&bank); err != nil {
		return Bank{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Bank{}, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return Bank{}, fmt.Errorf("parse yaml: %w", err)
	}
	return bank, nil
}

// MarshalBank renders a catalog back to YAML bank form.
func MarshalBank(catalog Catalog) ([]byte, error) {
	bank := Bank{Version: 1, Tags: append([]string(nil), catalog.Tags...)}
	for _, q := range catalog.Questions {
		bank.Questions = append(bank.Questions, q.Record())
	}
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(bank); err != nil {
		return nil, fmt.Errorf("encode bank: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("encode bank: %w", err)
	}
	return buf.Bytes(), nil
}
