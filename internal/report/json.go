// # internal/report/json.go
package report

import (
	"encoding/json"

	"docgen/internal/analysis"
)

// JSONGenerator renders a ProjectAnalysis as indented JSON, the full
// joined model without any markdown-side trimming.
type JSONGenerator struct {
	analysis *analysis.ProjectAnalysis
}

func NewJSONGenerator(pa *analysis.ProjectAnalysis) *JSONGenerator {
	return &JSONGenerator{analysis: pa}
}

func (j *JSONGenerator) Generate() (string, error) {
	data, err := json.MarshalIndent(j.analysis, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
