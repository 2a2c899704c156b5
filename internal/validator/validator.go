package validator

import (
	"fmt"

	"gstbill/internal/domain"
)

// Report holds the failed checks of one validation run.
type Report struct {
	Errors   []Result `json:"errors"`
	Warnings []Result `json:"warnings"`
}

// Valid reports whether no error-severity check failed.
func (r *Report) Valid() bool {
	return len(r.Errors) == 0
}

// Err returns the first blocking failure wrapped around its domain error, or nil.
func (r *Report) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	first := r.Errors[0]
	return fmt.Errorf("%w: %s", first.Err, first.FieldPath)
}

// Validate runs all checks against inv and collects the failures.
func Validate(inv *domain.InvoiceData) *Report {
	report := &Report{Errors: []Result{}, Warnings: []Result{}}
	for _, check := range Checks() {
		for _, res := range check.Run(inv) {
			if res.Passed {
				continue
			}
			if res.Severity == SeverityError {
				report.Errors = append(report.Errors, res)
			} else {
				report.Warnings = append(report.Warnings, res)
			}
		}
	}
	return report
}
