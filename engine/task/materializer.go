package task

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/otiai10/copy"

	"github.com/finbench/pixiu-adapters/engine/record"
	"github.com/finbench/pixiu-adapters/pkg/logger"
)

const (
	descriptorFile = "task.yaml"
	solutionFile   = "solution.sh"
	testScriptFile = "tests/test_outputs.py"
	itemFile       = "tests/data/item.json"

	difficulty = "medium"

	prefixFPB       = "pixiu-fpb"
	prefixHeadlines = "pixiu-headlines"
)

// placeholderTokens is the full substitution vocabulary. After generation no
// occurrence of any of these may remain in a substituted file.
var placeholderTokens = []string{
	"{pixiu_id}",
	"{label_type}",
	"{choices_inline}",
	"{difficulty}",
	"{expected_label}",
	"{allowed_choices}",
}

// Materializer turns normalized records into task directories by copying a
// static template tree and substituting placeholder tokens.
type Materializer struct {
	TemplateDir string
	OutputRoot  string
}

// itemPayload is the generated JSON artifact describing one sample. Field
// order here fixes the key order in tests/data/item.json.
type itemPayload struct {
	ID        string   `json:"id"`
	LabelType string   `json:"label_type"`
	Query     string   `json:"query"`
	Choices   []string `json:"choices"`
	Dataset   string   `json:"dataset"`
	Split     string   `json:"split"`
}

// NewMaterializer creates a materializer writing under outputRoot using the
// template tree at templateDir.
func NewMaterializer(templateDir, outputRoot string) *Materializer {
	return &Materializer{TemplateDir: templateDir, OutputRoot: outputRoot}
}

// TaskID derives the task directory name for a record: the dataset-sniffed
// prefix joined with the lowercased record id.
func TaskID(rec *record.Record) string {
	prefix := prefixHeadlines
	if strings.Contains(strings.ToLower(rec.Dataset), "fpb") {
		prefix = prefixFPB
	}
	return prefix + "-" + strings.ToLower(rec.ID)
}

// Generate materializes one task directory for the record and returns its
// task id. An existing directory of the same name is removed first; a failure
// mid-generation removes the partially-written directory before propagating
// so no corrupt artifact is left behind.
func (m *Materializer) Generate(ctx context.Context, rec *record.Record) (string, error) {
	taskID := TaskID(rec)
	outDir := filepath.Join(m.OutputRoot, taskID)

	if err := os.RemoveAll(outDir); err != nil {
		return "", fmt.Errorf("failed to remove existing task directory %s: %w", outDir, err)
	}
	if err := copy.Copy(m.TemplateDir, outDir); err != nil {
		return "", fmt.Errorf("failed to copy template into %s: %w", outDir, err)
	}
	if err := m.fill(outDir, rec); err != nil {
		if rmErr := os.RemoveAll(outDir); rmErr != nil {
			logger.FromContext(ctx).Warn("failed to clean up partial task directory",
				"dir", outDir, "error", rmErr)
		}
		return "", fmt.Errorf("failed to generate task %s: %w", taskID, err)
	}
	return taskID, nil
}

func (m *Materializer) fill(outDir string, rec *record.Record) error {
	if err := writeItemFile(outDir, rec); err != nil {
		return err
	}
	if err := substituteDescriptor(outDir, rec); err != nil {
		return err
	}
	if err := substituteSolution(outDir, rec); err != nil {
		return err
	}
	return substituteTestScript(outDir, rec)
}

// writeItemFile writes the record's public fields to tests/data/item.json.
// Non-ASCII characters are kept literal and the document is indented with two
// spaces. The file is a generated artifact and is never substituted into.
func writeItemFile(outDir string, rec *record.Record) error {
	dataDir := filepath.Dir(filepath.Join(outDir, itemFile))
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	payload := itemPayload{
		ID:        rec.ID,
		LabelType: rec.LabelType,
		Query:     rec.Query,
		Choices:   rec.Choices,
		Dataset:   rec.Dataset,
		Split:     rec.Split,
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("failed to encode item payload: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, itemFile), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write item file: %w", err)
	}
	return nil
}

// substituteDescriptor fills the YAML task descriptor and verifies it still
// parses after substitution.
func substituteDescriptor(outDir string, rec *record.Record) error {
	path := filepath.Join(outDir, descriptorFile)
	if err := substituteFile(path, map[string]string{
		"{pixiu_id}":       rec.ID,
		"{label_type}":     rec.LabelType,
		"{choices_inline}": strings.Join(rec.Choices, ", "),
		"{difficulty}":     difficulty,
	}); err != nil {
		return err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to re-read descriptor: %w", err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return fmt.Errorf("substituted descriptor is not valid YAML: %w", err)
	}
	return nil
}

func substituteSolution(outDir string, rec *record.Record) error {
	return substituteFile(filepath.Join(outDir, solutionFile), map[string]string{
		"{expected_label}": rec.CorrectChoice,
	})
}

// substituteTestScript fills the test script. {expected_label} is inserted
// bare: the template carries its own quote characters around the token.
func substituteTestScript(outDir string, rec *record.Record) error {
	allowed, err := encodeJSONInline(rec.Choices)
	if err != nil {
		return err
	}
	return substituteFile(filepath.Join(outDir, testScriptFile), map[string]string{
		"{expected_label}":  rec.CorrectChoice,
		"{allowed_choices}": allowed,
		"{pixiu_id}":        rec.ID,
		"{label_type}":      rec.LabelType,
	})
}

// substituteFile performs whole-content literal replacement of the given
// tokens, then verifies no token from the full vocabulary survived. The
// original file mode (e.g. an executable solution script) is preserved.
func substituteFile(path string, replacements map[string]string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("missing template file %s: %w", filepath.Base(path), err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read template file %s: %w", filepath.Base(path), err)
	}
	content := string(raw)
	for token, value := range replacements {
		content = strings.ReplaceAll(content, token, value)
	}
	for _, token := range placeholderTokens {
		if strings.Contains(content, token) {
			return fmt.Errorf("unresolved placeholder %s in %s", token, filepath.Base(path))
		}
	}
	if err := os.WriteFile(path, []byte(content), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// encodeJSONInline renders v as single-line JSON without HTML escaping, so
// non-ASCII choice labels survive verbatim.
func encodeJSONInline(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("failed to encode value: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
