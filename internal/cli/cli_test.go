package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstbill/internal/app"
	"gstbill/internal/cli"
	"gstbill/internal/config"
	"gstbill/internal/domain"
	"gstbill/internal/gst"
	"gstbill/internal/register"
)

// sharedApp returns a factory handing every command the same in-memory app.
func sharedApp(t *testing.T) cli.AppFactory {
	t.Helper()
	t.Setenv("GSTBILL_STORAGE_DRIVER", "memory")
	t.Setenv("GSTBILL_SEQUENCE_COUNTER", "none")
	t.Setenv("GSTBILL_LOG_LEVEL", "error")

	cfg, err := config.Load()
	require.NoError(t, err)
	a, err := app.New(context.Background(), cfg)
	require.NoError(t, err)
	return func(context.Context, *config.Config) (*app.App, error) { return a, nil }
}

func run(t *testing.T, factory cli.AppFactory, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmd(factory)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestWords(t *testing.T) {
	factory := sharedApp(t)

	out, err := run(t, factory, "", "words", "1234567")
	require.NoError(t, err)
	assert.Equal(t, "TWELVE LAKH THIRTY FOUR THOUSAND FIVE HUNDRED SIXTY SEVEN ONLY\n", out)

	_, err = run(t, factory, "", "words", "lots")
	assert.ErrorContains(t, err, "invalid amount")

	_, err = run(t, factory, "", "words", "99999999999")
	assert.ErrorIs(t, err, domain.ErrAmountOutOfRange)
}

func TestTotals(t *testing.T) {
	factory := sharedApp(t)

	out, err := run(t, factory, "", "totals", "--state", "tamil nadu", "--item", "10:100", "--item", "2:50")
	require.NoError(t, err)
	var totals gst.Totals
	require.NoError(t, json.Unmarshal([]byte(out), &totals))
	assert.Equal(t, domain.IntraState, totals.Jurisdiction)
	assert.Equal(t, 1100.0, totals.TotalTaxableValue)
	assert.Equal(t, 27.5, totals.CGST)
	assert.Equal(t, 27.5, totals.SGST)
	assert.Equal(t, 1155.0, totals.TotalAmount)
	assert.Equal(t, "ONE THOUSAND ONE HUNDRED FIFTY FIVE ONLY", totals.AmountInWords)

	out, err = run(t, factory, "", "totals", "--state", "KARNATAKA", "--item", "1:1000")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &totals))
	assert.Equal(t, domain.InterState, totals.Jurisdiction)
	assert.Equal(t, 50.0, totals.IGST)
}

func TestTotals_BadInput(t *testing.T) {
	factory := sharedApp(t)

	_, err := run(t, factory, "", "totals", "--state", "KERALA", "--item", "10x100")
	assert.ErrorContains(t, err, "quantity:rate")

	_, err = run(t, factory, "", "totals", "--state", "KERALA", "--item=-1:100")
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)

	_, err = run(t, factory, "", "totals", "--item", "1:1")
	assert.ErrorContains(t, err, "state")
}

const bundleJSON = `{
  "customers": [
    {"gstin": "33AEIPA9533Q1Z5", "name": "Sri Murugan Traders", "address": "Madurai", "state": "TAMIL NADU", "stateCode": "33"}
  ],
  "invoices": [
    {
      "id": "legacy-1",
      "invoiceNumber": "INV041",
      "date": "2025-02-01",
      "customer": {"gstin": "33AEIPA9533Q1Z5", "name": "Sri Murugan Traders", "state": "TAMIL NADU"},
      "items": [{"id": "1", "description": "COIR PITH", "quantity": 4, "unit": "PCS", "rate": 250, "amount": 1}],
      "cgst": 25, "sgst": 25, "totalTaxableValue": 1000, "totalAmount": 1050,
      "amountInWords": "ONE THOUSAND FIFTY ONLY"
    }
  ]
}`

func TestImportExportRegister(t *testing.T) {
	factory := sharedApp(t)
	dir := t.TempDir()

	in := filepath.Join(dir, "in.json")
	require.NoError(t, os.WriteFile(in, []byte(bundleJSON), 0o600))

	out, err := run(t, factory, "", "import", "--in", in)
	require.NoError(t, err)
	assert.Contains(t, out, `"invoicesReplaced": true`)

	out, err = run(t, factory, "", "next-number")
	require.NoError(t, err)
	assert.Equal(t, "INV042\n", out)

	exported := filepath.Join(dir, "out.json")
	_, err = run(t, factory, "", "export", "--out", exported)
	require.NoError(t, err)
	data, err := os.ReadFile(exported)
	require.NoError(t, err)
	var bundle domain.TransferBundle
	require.NoError(t, json.Unmarshal(data, &bundle))
	require.Len(t, bundle.Invoices, 1)
	assert.Equal(t, 1000.0, bundle.Invoices[0].Items[0].Amount, "item amounts are recalculated on import")

	out, err = run(t, factory, "", "register")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, string(register.BOM)))
	assert.Contains(t, out, "INV041")

	_, err = run(t, factory, "", "register", "--format", "pdf")
	assert.ErrorContains(t, err, "unknown format")
}

func TestImport_FromStdinRejectsGarbage(t *testing.T) {
	factory := sharedApp(t)

	_, err := run(t, factory, "not json", "import")
	assert.ErrorIs(t, err, domain.ErrInvalidBundle)
}
