package record

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/finbench/pixiu-adapters/engine/dataset"
)

// Variant identifies the raw row shape a dataset serves.
type Variant string

const (
	// VariantHeadline covers FinBen classification rows that already carry
	// id, query, choices and a gold index.
	VariantHeadline Variant = "headline"
	// VariantSentiment covers Financial PhraseBank rows carrying a raw
	// sentence and a sentiment label.
	VariantSentiment Variant = "sentiment"
)

const (
	defaultHeadlineLabelType = "financial classification"
	sentimentLabelType       = "sentiment"
	defaultSentimentLabel    = "neutral"

	// sentimentQueryTemplate wraps the raw sentence verbatim and ends in the
	// literal answer cue the task templates expect.
	sentimentQueryTemplate = "Analyze the sentiment of this statement extracted from a financial " +
		"news article. Provide your answer as either negative, positive or neutral. Text: %s Answer:"
)

// SentimentChoices is the fixed label vocabulary for sentiment rows. The
// order is significant: it is displayed as-is and preserved in generated
// artifacts.
var SentimentChoices = []string{"negative", "neutral", "positive"}

// MalformedRowError reports a raw row that violates the active variant's
// parsing contract, carrying the offending row's index.
type MalformedRowError struct {
	Index  int
	Reason string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("malformed row %d: %s", e.Index, e.Reason)
}

// DetectVariant classifies a raw row. A row is the sentiment variant iff it
// contains a "text" key, or a "sentence" key together with an "answer" key;
// everything else is parsed as a headline row. A row with only "sentence" and
// no "answer" deliberately falls through to headline parsing and fails there
// as a malformed-row error rather than being silently guessed at.
func DetectVariant(row dataset.Row) Variant {
	if _, ok := row["text"]; ok {
		return VariantSentiment
	}
	_, hasSentence := row["sentence"]
	_, hasAnswer := row["answer"]
	if hasSentence && hasAnswer {
		return VariantSentiment
	}
	return VariantHeadline
}

// Normalize converts one raw row at positional index idx into a canonical
// Record, dispatching on the detected variant.
func Normalize(row dataset.Row, idx int, datasetName, split string) (*Record, error) {
	var (
		rec *Record
		err error
	)
	switch DetectVariant(row) {
	case VariantSentiment:
		rec = normalizeSentiment(row, idx, datasetName, split)
	default:
		rec, err = normalizeHeadline(row, idx, datasetName, split)
		if err != nil {
			return nil, err
		}
	}
	if err := rec.Validate(); err != nil {
		return nil, &MalformedRowError{Index: idx, Reason: err.Error()}
	}
	return rec, nil
}

// normalizeHeadline parses FinBen classification rows. Every field the
// contract requires must be present; a gold index outside the choice list is
// rejected explicitly.
func normalizeHeadline(row dataset.Row, idx int, datasetName, split string) (*Record, error) {
	id, ok := stringField(row, "id")
	if !ok {
		return nil, &MalformedRowError{Index: idx, Reason: `missing required field "id"`}
	}
	query, ok := stringField(row, "query")
	if !ok {
		return nil, &MalformedRowError{Index: idx, Reason: `missing required field "query"`}
	}
	choices, ok := stringSliceField(row, "choices")
	if !ok {
		return nil, &MalformedRowError{Index: idx, Reason: `missing required field "choices"`}
	}
	gold, ok := intField(row, "gold")
	if !ok {
		return nil, &MalformedRowError{Index: idx, Reason: `missing required field "gold"`}
	}
	if gold < 0 || gold >= len(choices) {
		return nil, &MalformedRowError{
			Index:  idx,
			Reason: fmt.Sprintf("gold index %d out of range for %d choices", gold, len(choices)),
		}
	}
	labelType, ok := stringField(row, "label_type")
	if !ok {
		labelType = defaultHeadlineLabelType
	}
	return &Record{
		ID:            id,
		Query:         query,
		Choices:       choices,
		CorrectChoice: choices[gold],
		LabelType:     labelType,
		Dataset:       datasetName,
		Split:         split,
	}, nil
}

// normalizeSentiment parses Financial PhraseBank rows. Missing fields fall
// back to documented defaults; unknown labels default to "neutral" rather
// than being rejected.
func normalizeSentiment(row dataset.Row, idx int, datasetName, split string) *Record {
	label, ok := stringField(row, "answer")
	if !ok {
		label = defaultSentimentLabel
	}
	text, ok := stringField(row, "text")
	if !ok {
		if text, ok = stringField(row, "sentence"); !ok {
			text = ""
		}
	}
	id, ok := stringField(row, "id")
	if !ok {
		id = fmt.Sprintf("fpb%06d", idx)
	}

	choices := make([]string, len(SentimentChoices))
	copy(choices, SentimentChoices)

	correct := defaultSentimentLabel
	for _, choice := range choices {
		if label == choice {
			correct = label
			break
		}
	}

	return &Record{
		ID:            id,
		Query:         fmt.Sprintf(sentimentQueryTemplate, text),
		Choices:       choices,
		CorrectChoice: correct,
		LabelType:     sentimentLabelType,
		Dataset:       datasetName,
		Split:         split,
	}
}

func stringField(row dataset.Row, key string) (string, bool) {
	v, ok := row[key]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func stringSliceField(row dataset.Row, key string) ([]string, bool) {
	v, ok := row[key]
	if !ok || v == nil {
		return nil, false
	}
	switch vals := v.(type) {
	case []string:
		return vals, true
	case []any:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

// intField accepts the numeric shapes JSON decoding can produce for an index.
func intField(row dataset.Row, key string) (int, bool) {
	v, ok := row[key]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
