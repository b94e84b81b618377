package staffing

import (
	"encoding/json"
	"fmt"
	"strings"
)

// maxDecodeRounds bounds string->JSON parsing of stored answers. Upstream writers
// occasionally serialize an already-serialized value, so one extra round is tolerated.
const maxDecodeRounds = 2

// Answer is the closed set of shapes a questionnaire answer can take once decoded
type Answer interface {
	isAnswer()
}

// SkillListAnswer is a list answer, e.g. a multi-select question.
// Items holds each entry as decoded: a string or an object with value/label.
type SkillListAnswer struct {
	Items []any
}

// FreeTextAnswer is a plain text answer
type FreeTextAnswer struct {
	Text string
}

// StructuredAnswer is an object answer, e.g. {"selected": [...], "other_text": "..."}
// or an availability descriptor
type StructuredAnswer struct {
	Fields map[string]any
}

// UnrecognizedAnswer covers malformed, over-encoded and scalar answers
type UnrecognizedAnswer struct{}

func (SkillListAnswer) isAnswer()    {}
func (FreeTextAnswer) isAnswer()     {}
func (StructuredAnswer) isAnswer()   {}
func (UnrecognizedAnswer) isAnswer() {}

// DecodeAnswer decodes a stored answer with at most two rounds of string->JSON parsing.
// A round runs while the value is a string holding valid JSON, so scalars such as
// true or 5 decode to non-string values. Text that is not JSON and does not look like
// an attempt at it is returned as-is. It returns false when a round meets malformed
// JSON or when the value is still an encoded string after the last round.
func DecodeAnswer(raw []byte) (any, bool) {
	var value any = string(raw)

	for round := 0; round < maxDecodeRounds; round++ {
		s, isString := value.(string)
		if !isString {
			return value, true
		}
		if !json.Valid([]byte(s)) {
			if looksEncoded(s) {
				return nil, false
			}
			return value, true
		}

		var next any
		if err := json.Unmarshal([]byte(s), &next); err != nil {
			return nil, false
		}
		value = next
	}

	if s, isString := value.(string); isString && (looksEncoded(s) || json.Valid([]byte(s))) {
		return nil, false
	}
	return value, true
}

// ParseAnswer decodes a stored answer and classifies it
func ParseAnswer(raw []byte) Answer {
	value, ok := DecodeAnswer(raw)
	if !ok {
		return UnrecognizedAnswer{}
	}
	return classify(value)
}

func classify(value any) Answer {
	switch v := value.(type) {
	case []any:
		return SkillListAnswer{Items: v}
	case string:
		return FreeTextAnswer{Text: v}
	case map[string]any:
		return StructuredAnswer{Fields: v}
	default:
		return UnrecognizedAnswer{}
	}
}

func looksEncoded(s string) bool {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return false
	}
	switch trimmed[0] {
	case '{', '[', '"':
		return true
	}
	return false
}

// Accepted key names for structured skill answers, in lookup order
var (
	selectedKeys     = []string{"selected", "skills", "value"}
	otherTextKeys    = []string{"other_text", "otherText", "other", "custom", "custom_skill", "customSkill"}
	otherCheckedKeys = []string{"other_checked", "otherChecked"}
)

// ExtractSkills returns the normalized skill tokens carried by an answer.
// Structured answers are de-duplicated; list answers keep every non-empty entry.
func ExtractSkills(answer Answer) []string {
	switch a := answer.(type) {
	case SkillListAnswer:
		skills := make([]string, 0, len(a.Items))
		for _, item := range a.Items {
			if token := Normalize(flattenEntry(item)); token != "" {
				skills = append(skills, token)
			}
		}
		return skills

	case FreeTextAnswer:
		if token := Normalize(a.Text); token != "" {
			return []string{token}
		}
		return []string{}

	case StructuredAnswer:
		var raw []string
		if selected, ok := firstList(a.Fields, selectedKeys); ok {
			for _, item := range selected {
				raw = append(raw, flattenEntry(item))
			}
		}
		if other, ok := otherSkill(a.Fields); ok {
			raw = append(raw, other)
		}
		return normalizeUnique(raw)

	default:
		return []string{}
	}
}

// otherSkill returns the free-text "other" skill of a structured answer. An explicit
// other_checked flag gates it; without the flag any non-empty text counts.
func otherSkill(fields map[string]any) (string, bool) {
	text := ""
	for _, key := range otherTextKeys {
		if s, ok := fields[key].(string); ok && strings.TrimSpace(s) != "" {
			text = s
			break
		}
	}

	for _, key := range otherCheckedKeys {
		if v, present := fields[key]; present {
			checked, _ := v.(bool)
			return text, checked && text != ""
		}
	}

	return text, text != ""
}

func firstList(fields map[string]any, keys []string) ([]any, bool) {
	for _, key := range keys {
		if list, ok := fields[key].([]any); ok {
			return list, true
		}
	}
	return nil, false
}

// flattenEntry turns a list entry into text: strings as-is, objects via value then label
func flattenEntry(item any) string {
	switch v := item.(type) {
	case string:
		return v
	case map[string]any:
		for _, key := range []string{"value", "label"} {
			switch inner := v[key].(type) {
			case string:
				if inner != "" {
					return inner
				}
			case float64, bool:
				return fmt.Sprint(inner)
			}
		}
	}
	return ""
}

func normalizeUnique(values []string) []string {
	seen := make(map[string]bool, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		token := Normalize(v)
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true
		result = append(result, token)
	}
	return result
}

// AvailabilityDescriptor is the availability a member reported. Raw keeps the answer
// verbatim; Days and Notes are a tolerant projection and may be empty.
type AvailabilityDescriptor struct {
	Days  []string       `json:"days"`
	Notes string         `json:"notes"`
	Raw   map[string]any `json:"raw,omitempty"`
}

// IsAvailabilityRequirement reports whether a requirement asks about availability
func IsAvailabilityRequirement(title, requirementType string) bool {
	haystack := strings.ToLower(title + " " + requirementType)
	return strings.Contains(haystack, "availability") || strings.Contains(haystack, "schedule")
}

// ExtractAvailability returns the descriptor carried by an object-shaped answer, or nil
func ExtractAvailability(answer Answer) *AvailabilityDescriptor {
	structured, ok := answer.(StructuredAnswer)
	if !ok {
		return nil
	}

	descriptor := &AvailabilityDescriptor{
		Days: []string{},
		Raw:  structured.Fields,
	}
	if days, ok := structured.Fields["days"].([]any); ok {
		for _, d := range days {
			if s, ok := d.(string); ok && strings.TrimSpace(s) != "" {
				descriptor.Days = append(descriptor.Days, strings.TrimSpace(s))
			}
		}
	}
	if notes, ok := structured.Fields["notes"].(string); ok {
		descriptor.Notes = notes
	}

	return descriptor
}
