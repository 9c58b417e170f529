package translator

import (
	"context"
	"errors"
	"testing"

	"ai-datachat-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedLLM returns canned responses in order.
type scriptedLLM struct {
	responses []string
	errs      []error
	calls     int
	prompts   []string
}

func (s *scriptedLLM) Generate(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	s.prompts = append(s.prompts, prompt)
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	return "", errors.New("no scripted response")
}

func (s *scriptedLLM) ListModels(context.Context) ([]string, error) { return nil, nil }
func (s *scriptedLLM) Available(context.Context) bool               { return true }

func TestSanitizeStripsFences(t *testing.T) {
	out := Sanitize("```python\ndf['age'].mean()\n```")
	assert.Equal(t, "df['age'].mean()", out)
}

func TestSanitizeRejectsReActTrace(t *testing.T) {
	raw := "Thought: I should count the rows\nAction: python\nObservation: 5\nFinal Answer: 5"
	assert.Equal(t, "", Sanitize(raw))
}

func TestSanitizeSalvagesMarkerTail(t *testing.T) {
	raw := "Thought: need the head\nAction Input: df.head()"
	assert.Equal(t, "df.head()", Sanitize(raw))
}

func TestSanitizeSkipsNarration(t *testing.T) {
	raw := "Here is the code you need:\ndf['salary'].sum()"
	assert.Equal(t, "df['salary'].sum()", Sanitize(raw))
}

func TestSanitizeSkipsCommentsAndImports(t *testing.T) {
	raw := "# sum the column\nimport pandas as pd\ndf['salary'].sum()"
	assert.Equal(t, "df['salary'].sum()", Sanitize(raw))
}

func TestValidateRules(t *testing.T) {
	assert.NoError(t, Validate("df['age'].mean()"))
	assert.NoError(t, Validate("df[df['name'].str.lower() == 'jane']"))

	assert.Error(t, Validate("1 + 1"))
	assert.Error(t, Validate("pd.DataFrame({'a': [1]})"))
	assert.Error(t, Validate("df = df.head()"))
	assert.Error(t, Validate("df['a'].apply(lambda x: {})"))
	assert.Error(t, Validate("df.__class__"))
	assert.Error(t, Validate("import os; df.head()"))
}

func TestValidateAllowsComparisonToFrame(t *testing.T) {
	assert.NoError(t, Validate("(df['a'] == 1).sum()"))
}

func TestRepairWrapsComparisonAggregate(t *testing.T) {
	got := Repair("df['gender'] == 'male'.sum()")
	assert.Equal(t, "(df['gender'] == 'male').sum()", got)
}

func TestRepairLeavesWrappedAlone(t *testing.T) {
	in := "(df['gender'] == 'male').sum()"
	assert.Equal(t, in, Repair(in))
}

func TestRepairLeavesPlainFilterAlone(t *testing.T) {
	in := "df[df['name'].str.lower() == 'jane doe']"
	assert.Equal(t, in, Repair(in))
}

func TestTranslateHappyPath(t *testing.T) {
	model := &scriptedLLM{responses: []string{"df['age'].mean()"}}
	tr := NewTranslator(model)

	code, err := tr.Translate(context.Background(), "average age", []string{"name", "age"}, "")
	require.NoError(t, err)
	assert.Equal(t, "df['age'].mean()", code)
	assert.Equal(t, 1, model.calls)
}

func TestTranslateRetriesOnEmptyThenSucceeds(t *testing.T) {
	model := &scriptedLLM{responses: []string{
		"Thought: hmm\nFinal Answer: 42",
		"len(df)",
	}}
	tr := NewTranslator(model)

	code, err := tr.Translate(context.Background(), "how many rows", []string{"a"}, "")
	require.NoError(t, err)
	assert.Equal(t, "len(df)", code)
	require.Equal(t, 2, model.calls)
	assert.Contains(t, model.prompts[1], "Code only:")
}

func TestTranslateFailsWhenRetryAlsoEmpty(t *testing.T) {
	model := &scriptedLLM{responses: []string{"I cannot help with that.", "Sorry."}}
	tr := NewTranslator(model)

	_, err := tr.Translate(context.Background(), "anything", []string{"a"}, "")
	require.Error(t, err)
	assert.Equal(t, 2, model.calls)
}

func TestTranslateRepairsBeforeValidation(t *testing.T) {
	model := &scriptedLLM{responses: []string{"df['gender'] == 'male'.sum()"}}
	tr := NewTranslator(model)

	code, err := tr.Translate(context.Background(), "count males", []string{"gender"}, "")
	require.NoError(t, err)
	assert.Equal(t, "(df['gender'] == 'male').sum()", code)
}

func TestTranslateRejectsForbiddenCode(t *testing.T) {
	model := &scriptedLLM{responses: []string{"df = df.head()"}}
	tr := NewTranslator(model)

	_, err := tr.Translate(context.Background(), "show data", []string{"a"}, "")
	require.Error(t, err)
}

func TestTranslatePropagatesProviderError(t *testing.T) {
	model := &scriptedLLM{errs: []error{errors.New("connection refused")}}
	tr := NewTranslator(model)

	_, err := tr.Translate(context.Background(), "q", []string{"a"}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestBuildPromptContainsColumnsAndContext(t *testing.T) {
	p := BuildPrompt("average age", []string{"name", "age"}, "Relevant Dataset Information:\n1. Column: age")
	assert.Contains(t, p, "name, age")
	assert.Contains(t, p, "average age")
	assert.Contains(t, p, "Relevant Dataset Information:")
	assert.Contains(t, p, "value_counts().to_frame(name='Count')")
}
