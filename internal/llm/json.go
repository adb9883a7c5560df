package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var fencedBlockRe = regexp.MustCompile("```(?:json|JSON)?\\s*([\\s\\S]*?)```")

// ExtractJSON returns the first JSON value in text, looking at the raw text,
// then markdown code fences, then a bracket-balanced scan. open picks which
// bracket the scan looks for first ('{' or '[').
func ExtractJSON(text string, open byte) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", ErrEmptyResponse
	}
	if json.Valid([]byte(trimmed)) {
		return trimmed, nil
	}

	for _, m := range fencedBlockRe.FindAllStringSubmatch(trimmed, -1) {
		candidate := strings.TrimSpace(m[1])
		if json.Valid([]byte(candidate)) {
			return candidate, nil
		}
	}

	order := []byte{'{', '['}
	if open == '[' {
		order = []byte{'[', '{'}
	}
	for _, o := range order {
		if candidate, ok := scanBalanced(trimmed, o); ok {
			return candidate, nil
		}
	}
	return "", ErrNoJSON
}

// scanBalanced finds the first balanced, valid JSON value starting with open.
func scanBalanced(s string, open byte) (string, bool) {
	closing := byte('}')
	if open == '[' {
		closing = ']'
	}

	for i := 0; i < len(s); i++ {
		if s[i] != open {
			continue
		}
		depth := 0
		inString := false
		escaped := false
	scan:
		for j := i; j < len(s); j++ {
			c := s[j]
			switch {
			case escaped:
				escaped = false
			case c == '\\' && inString:
				escaped = true
			case c == '"':
				inString = !inString
			case inString:
			case c == open:
				depth++
			case c == closing:
				depth--
				if depth == 0 {
					candidate := s[i : j+1]
					if json.Valid([]byte(candidate)) {
						return candidate, true
					}
					break scan
				}
			}
		}
	}
	return "", false
}

// Decode extracts JSON from a model response, validates it against schema
// and unmarshals it into out.
func Decode(text string, schema *Schema, out any) error {
	open := byte('{')
	if schema != nil && schema.Kind == KindArray {
		open = '['
	}
	raw, err := ExtractJSON(text, open)
	if err != nil {
		return err
	}

	if schema != nil {
		var generic any
		if err := json.Unmarshal([]byte(raw), &generic); err != nil {
			return fmt.Errorf("llm: parse response: %w", err)
		}
		if err := schema.Validate(generic); err != nil {
			return fmt.Errorf("llm: response does not match schema: %w", err)
		}
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("llm: decode response: %w", err)
	}
	return nil
}

// DecodeItems extracts a JSON array from a model response and returns its
// entries undecoded. Entries are not validated; callers check each one so a
// bad entry does not discard the rest.
func DecodeItems(text string) ([]json.RawMessage, error) {
	raw, err := ExtractJSON(text, '[')
	if err != nil {
		return nil, err
	}
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("llm: response is not an array: %w", err)
	}
	return items, nil
}

// DecodeItem validates one array entry against schema and unmarshals it into out.
func DecodeItem(item json.RawMessage, schema *Schema, out any) error {
	var generic any
	if err := json.Unmarshal(item, &generic); err != nil {
		return fmt.Errorf("llm: parse item: %w", err)
	}
	if err := schema.Validate(generic); err != nil {
		return fmt.Errorf("llm: item does not match schema: %w", err)
	}
	return json.Unmarshal(item, out)
}
