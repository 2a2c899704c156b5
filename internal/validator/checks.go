// Package validator runs named checks over a draft invoice. Error-severity
// failures block issuing the invoice; warnings are reported alongside totals.
package validator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gstbill/internal/domain"
)

var (
	gstinPattern = regexp.MustCompile(`^[0-9A-Z]{15}$`)
	// strictGSTINPattern is the structural layout: state code, PAN, entity, Z, checksum.
	strictGSTINPattern = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	hsnPattern         = regexp.MustCompile(`^\d{4,8}$`)
)

// DateLayout is the only accepted invoice date format.
const DateLayout = "2006-01-02"

// Severity of a failed check.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Result is the outcome of one check against one field.
type Result struct {
	RuleKey   string   `json:"ruleKey"`
	FieldPath string   `json:"fieldPath"`
	Passed    bool     `json:"passed"`
	Severity  Severity `json:"severity"`
	Message   string   `json:"message"`
	// Err is the domain error reported when an error-severity check fails.
	Err error `json:"-"`
}

// Check is a single named rule.
type Check struct {
	Key      string
	Name     string
	Severity Severity
	Err      error
	validate func(*domain.InvoiceData) []Result
}

// Run evaluates the check and stamps key and severity on each result.
func (c *Check) Run(inv *domain.InvoiceData) []Result {
	results := c.validate(inv)
	for i := range results {
		results[i].RuleKey = c.Key
		results[i].Severity = c.Severity
		if !results[i].Passed {
			results[i].Err = c.Err
		}
	}
	return results
}

// GSTINFormat reports whether s is 15 uppercase alphanumerics.
func GSTINFormat(s string) bool {
	return gstinPattern.MatchString(s)
}

func pass(fieldPath, msg string) Result {
	return Result{Passed: true, FieldPath: fieldPath, Message: msg}
}

func fail(fieldPath, msg string) Result {
	return Result{Passed: false, FieldPath: fieldPath, Message: msg}
}

func regexCheck(fieldPath, value, ruleName string, re *regexp.Regexp) Result {
	if value == "" {
		return pass(fieldPath, fmt.Sprintf("%s: field is empty, skipping format check", ruleName))
	}
	if !re.MatchString(value) {
		return fail(fieldPath, fmt.Sprintf("%s: %s does not match expected format", ruleName, fieldPath))
	}
	return pass(fieldPath, fmt.Sprintf("%s: %s matches expected format", ruleName, fieldPath))
}

func stateCodeCheck(fieldPath, value, ruleName string) Result {
	if value == "" {
		return pass(fieldPath, fmt.Sprintf("%s: field is empty, skipping state code check", ruleName))
	}
	if len(value) == 2 {
		if code, err := strconv.Atoi(value); err == nil && code >= 1 && code <= 38 {
			return pass(fieldPath, fmt.Sprintf("%s: %s is a valid state code", ruleName, fieldPath))
		}
	}
	return fail(fieldPath, fmt.Sprintf("%s: %s is not a valid 2-digit state code (01-38)", ruleName, fieldPath))
}

// Checks returns every built-in check in evaluation order.
func Checks() []*Check {
	return []*Check{
		{
			Key: "req.customer", Name: "Required: Customer", Severity: SeverityError, Err: domain.ErrMissingCustomer,
			validate: func(d *domain.InvoiceData) []Result {
				var out []Result
				for _, f := range []struct{ path, value string }{
					{"customer.name", d.Customer.Name},
					{"customer.gstin", d.Customer.GSTIN},
				} {
					if strings.TrimSpace(f.value) == "" {
						out = append(out, fail(f.path, fmt.Sprintf("Required: Customer: %s is missing", f.path)))
					} else {
						out = append(out, pass(f.path, fmt.Sprintf("Required: Customer: %s is present", f.path)))
					}
				}
				return out
			},
		},
		{
			Key: "fmt.customer.gstin", Name: "Format: Customer GSTIN", Severity: SeverityError, Err: domain.ErrInvalidGSTIN,
			validate: func(d *domain.InvoiceData) []Result {
				return []Result{regexCheck("customer.gstin", d.Customer.GSTIN, "Format: Customer GSTIN", gstinPattern)}
			},
		},
		{
			Key: "fmt.invoice.date", Name: "Format: Invoice Date", Severity: SeverityError, Err: domain.ErrInvalidDate,
			validate: func(d *domain.InvoiceData) []Result {
				if _, err := time.Parse(DateLayout, d.Date); err != nil {
					return []Result{fail("date", fmt.Sprintf("Format: Invoice Date: %q is not YYYY-MM-DD", d.Date))}
				}
				return []Result{pass("date", "Format: Invoice Date: date is valid")}
			},
		},
		{
			Key: "items.unit", Name: "Items: Unit", Severity: SeverityError, Err: domain.ErrInvalidItem,
			validate: func(d *domain.InvoiceData) []Result {
				var out []Result
				for i, it := range d.Items {
					fp := fmt.Sprintf("items[%d].unit", i)
					if !it.Unit.Valid() {
						out = append(out, fail(fp, fmt.Sprintf("Items: Unit: %s %q is not one of PCS, KGS, LTR", fp, it.Unit)))
						continue
					}
					out = append(out, pass(fp, fmt.Sprintf("Items: Unit: %s is valid", fp)))
				}
				return out
			},
		},
		{
			Key: "items.non_negative", Name: "Items: Non-negative", Severity: SeverityError, Err: domain.ErrNegativeAmount,
			validate: func(d *domain.InvoiceData) []Result {
				var out []Result
				for i, it := range d.Items {
					fp := fmt.Sprintf("items[%d]", i)
					if it.Quantity < 0 || it.Rate < 0 {
						out = append(out, fail(fp, fmt.Sprintf("Items: Non-negative: %s has a negative quantity or rate", fp)))
						continue
					}
					out = append(out, pass(fp, fmt.Sprintf("Items: Non-negative: %s is non-negative", fp)))
				}
				return out
			},
		},
		{
			Key: "items.billable", Name: "Items: Billable", Severity: SeverityError, Err: domain.ErrNoBillableItems,
			validate: func(d *domain.InvoiceData) []Result {
				for _, it := range d.Items {
					if it.Amount != 0 {
						return []Result{pass("items", "Items: Billable: at least one item has an amount")}
					}
				}
				return []Result{fail("items", "Items: Billable: no item has a non-zero amount")}
			},
		},
		{
			Key: "fmt.items.hsn", Name: "Format: HSN Code", Severity: SeverityWarning,
			validate: func(d *domain.InvoiceData) []Result {
				out := make([]Result, 0, len(d.Items))
				for i, it := range d.Items {
					fp := fmt.Sprintf("items[%d].hsnCode", i)
					out = append(out, regexCheck(fp, it.HSNCode, "Format: HSN Code", hsnPattern))
				}
				return out
			},
		},
		{
			Key: "fmt.customer.gstin_structure", Name: "Format: Customer GSTIN Structure", Severity: SeverityWarning,
			validate: func(d *domain.InvoiceData) []Result {
				if !gstinPattern.MatchString(d.Customer.GSTIN) {
					return nil
				}
				return []Result{regexCheck("customer.gstin", d.Customer.GSTIN, "Format: Customer GSTIN Structure", strictGSTINPattern)}
			},
		},
		{
			Key: "fmt.customer.state_code", Name: "Format: Customer State Code", Severity: SeverityWarning,
			validate: func(d *domain.InvoiceData) []Result {
				return []Result{stateCodeCheck("customer.stateCode", d.Customer.StateCode, "Format: Customer State Code")}
			},
		},
		{
			Key: "xf.customer.gstin_state", Name: "Cross-field: Customer GSTIN-State Match", Severity: SeverityWarning,
			validate: func(d *domain.InvoiceData) []Result {
				return []Result{gstinStateCheck(d.Customer.GSTIN, d.Customer.StateCode)}
			},
		},
	}
}

// gstinStateCheck compares the GSTIN's leading state code with the declared one.
func gstinStateCheck(gstin, stateCode string) Result {
	const name = "Cross-field: Customer GSTIN-State Match"
	if len(gstin) < 2 || stateCode == "" {
		return pass("customer.stateCode", name+": GSTIN or state code missing, skipping")
	}
	if gstin[:2] != stateCode {
		return fail("customer.stateCode", fmt.Sprintf("%s: GSTIN prefix %s does not match state code %s", name, gstin[:2], stateCode))
	}
	return pass("customer.stateCode", name+": GSTIN prefix matches state code")
}
