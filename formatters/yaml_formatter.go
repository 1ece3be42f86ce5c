package formatters

import (
	"gopkg.in/yaml.v3"

	"github.com/faturalab/fatura/api"
)

// YAMLFormatter handles YAML formatting. Like JSON it carries the full
// nested document.
type YAMLFormatter struct{}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// Format serializes the invoice as YAML.
func (f *YAMLFormatter) Format(inv api.Invoice) ([]byte, error) {
	return yaml.Marshal(inv)
}
