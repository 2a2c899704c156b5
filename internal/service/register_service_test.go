package service_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gstbill/internal/register"
	"gstbill/internal/service"
	"gstbill/mocks"
)

func TestRegisterService_WriteCSV(t *testing.T) {
	store := seedStore(t)
	svc := service.NewRegisterService(newInvoiceService(store, nil))

	var buf bytes.Buffer
	require.NoError(t, svc.WriteCSV(context.Background(), &buf, service.ListInvoicesInput{Query: "bharath"}))

	require.True(t, bytes.HasPrefix(buf.Bytes(), register.BOM))
	rows, err := csv.NewReader(bytes.NewReader(buf.Bytes()[len(register.BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Invoice Number", rows[0][0])
	assert.Equal(t, "INV002", rows[1][0])
	assert.Equal(t, "Inter-State", rows[1][7])
}

func TestRegisterService_WriteXLSX(t *testing.T) {
	store := seedStore(t)
	svc := service.NewRegisterService(newInvoiceService(store, nil))

	var buf bytes.Buffer
	require.NoError(t, svc.WriteXLSX(context.Background(), &buf, service.ListInvoicesInput{}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows(register.RegisterSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestRegisterService_ListError(t *testing.T) {
	invoices := new(mocks.MockInvoiceService)
	invoices.On("List", mock.Anything, service.ListInvoicesInput{}).Return(nil, errors.New("db down"))
	svc := service.NewRegisterService(invoices)

	var buf bytes.Buffer
	err := svc.WriteCSV(context.Background(), &buf, service.ListInvoicesInput{})
	assert.ErrorContains(t, err, "db down")
	assert.Zero(t, buf.Len(), "nothing is written before the list succeeds")
}
