package app

import (
	"fmt"
	"os"

	"github.com/cursorcult/uno/internal/domain/defs"
	"github.com/cursorcult/uno/internal/domain/rule"
	"github.com/cursorcult/uno/internal/domain/schema"
)

// CheckResult carries a validated document together with its evaluation.
type CheckResult struct {
	Doc    *defs.Document
	Report *rule.Report
}

// Validate reads and validates the defs document at path without
// evaluating it.
func Validate(path string) (*defs.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := schema.Decode(data)
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Check validates the document at path and applies the conformance rule.
// Evaluation never runs against a document that failed validation.
func Check(path string, opts rule.Options) (*CheckResult, error) {
	doc, err := Validate(path)
	if err != nil {
		return nil, err
	}
	report, err := rule.Evaluate(doc, opts)
	if err != nil {
		return nil, err
	}
	return &CheckResult{Doc: doc, Report: report}, nil
}
