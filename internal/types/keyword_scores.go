package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// KeywordScores maps a lowercase keyword phrase to its weighted score.
// Iteration order is first-insertion order; overwriting an existing phrase
// replaces its score but keeps its position.
type KeywordScores struct {
	keys   []string
	scores map[string]float64
}

// NewKeywordScores creates an empty score map.
func NewKeywordScores() *KeywordScores {
	return &KeywordScores{scores: make(map[string]float64)}
}

// Set records the score for a phrase, overwriting any previous value.
func (k *KeywordScores) Set(phrase string, score float64) {
	if k.scores == nil {
		k.scores = make(map[string]float64)
	}
	if _, exists := k.scores[phrase]; !exists {
		k.keys = append(k.keys, phrase)
	}
	k.scores[phrase] = score
}

// Get returns the score for a phrase and whether it is present.
func (k *KeywordScores) Get(phrase string) (float64, bool) {
	if k == nil {
		return 0, false
	}
	score, ok := k.scores[phrase]
	return score, ok
}

// Score returns the score for a phrase, or zero when absent.
func (k *KeywordScores) Score(phrase string) float64 {
	score, _ := k.Get(phrase)
	return score
}

// Keys returns the phrases in insertion order.
func (k *KeywordScores) Keys() []string {
	if k == nil {
		return nil
	}
	out := make([]string, len(k.keys))
	copy(out, k.keys)
	return out
}

// Len returns the number of scored phrases.
func (k *KeywordScores) Len() int {
	if k == nil {
		return 0
	}
	return len(k.keys)
}

// MarshalJSON encodes the scores as a JSON object in insertion order.
func (k *KeywordScores) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range k.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(k.scores[key])
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, preserving the key order of the document.
func (k *KeywordScores) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("keyword scores: expected JSON object")
	}

	k.keys = nil
	k.scores = make(map[string]float64)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("keyword scores: expected string key")
		}
		var score float64
		if err := dec.Decode(&score); err != nil {
			return fmt.Errorf("keyword scores: invalid score for %q: %w", key, err)
		}
		k.Set(key, score)
	}
	_, err = dec.Token()
	return err
}
