package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// CorrectAnswer is the answer key of a question. The backend sends it as a
// scalar index, a scalar string or an array of either; all forms decode to an
// ordered list of string values.
type CorrectAnswer struct {
	Values []string
}

// NewCorrectAnswer builds an answer key from string values.
func NewCorrectAnswer(values ...string) CorrectAnswer {
	return CorrectAnswer{Values: append([]string(nil), values...)}
}

// IndexAnswer builds an answer key from option indices.
func IndexAnswer(indices ...int) CorrectAnswer {
	values := make([]string, len(indices))
	for i, idx := range indices {
		values[i] = strconv.Itoa(idx)
	}
	return CorrectAnswer{Values: values}
}

func (c CorrectAnswer) IsZero() bool {
	return len(c.Values) == 0
}

// Index returns the single option index of a choice question.
func (c CorrectAnswer) Index() (int, bool) {
	if len(c.Values) == 0 {
		return 0, false
	}
	idx, err := strconv.Atoi(strings.TrimSpace(c.Values[0]))
	if err != nil {
		return 0, false
	}
	return idx, true
}

// Indices returns every value that parses as an option index.
func (c CorrectAnswer) Indices() []int {
	indices := make([]int, 0, len(c.Values))
	for _, v := range c.Values {
		idx, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			continue
		}
		indices = append(indices, idx)
	}
	return indices
}

// Alternatives splits every value on '|' and returns the non-empty parts.
func (c CorrectAnswer) Alternatives() []string {
	var out []string
	for _, v := range c.Values {
		for _, part := range strings.Split(v, "|") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			out = append(out, part)
		}
	}
	return out
}

// At returns the value aligned with gap i.
func (c CorrectAnswer) At(i int) (string, bool) {
	if i < 0 || i >= len(c.Values) {
		return "", false
	}
	return c.Values[i], true
}

func (c CorrectAnswer) MarshalJSON() ([]byte, error) {
	switch len(c.Values) {
	case 0:
		return []byte("null"), nil
	case 1:
		return json.Marshal(c.Values[0])
	default:
		return json.Marshal(c.Values)
	}
}

func (c *CorrectAnswer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		c.Values = nil
		return nil
	}

	if data[0] == '[' {
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("invalid correct_answer array: %w", err)
		}
		values := make([]string, 0, len(raw))
		for _, item := range raw {
			v, err := scalarString(item)
			if err != nil {
				return err
			}
			values = append(values, v)
		}
		c.Values = values
		return nil
	}

	v, err := scalarString(data)
	if err != nil {
		return err
	}
	c.Values = []string{v}
	return nil
}

func scalarString(data json.RawMessage) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return "", fmt.Errorf("invalid correct_answer value: %w", err)
	}

	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	case bool:
		return strconv.FormatBool(t), nil
	default:
		return "", fmt.Errorf("unsupported correct_answer value: %s", string(data))
	}
}
