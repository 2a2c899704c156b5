package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstbill/internal/domain"
	"gstbill/internal/repository/memory"
	"gstbill/internal/service"
	"gstbill/mocks"
)

func TestCustomerService_SaveNormalizes(t *testing.T) {
	ctx := context.Background()
	svc := service.NewCustomerService(memory.NewStore())

	saved, err := svc.Save(ctx, &domain.CustomerDetails{
		GSTIN: " 33aeipa9533q1z5 ",
		Name:  " Sri Murugan Traders ",
		State: "tamil nadu",
	})
	require.NoError(t, err)
	assert.Equal(t, "33AEIPA9533Q1Z5", saved.GSTIN)
	assert.Equal(t, "Sri Murugan Traders", saved.Name)
	assert.Equal(t, "TAMIL NADU", saved.State)

	got, err := svc.Get(ctx, "33aeipa9533q1z5")
	require.NoError(t, err)
	assert.Equal(t, saved, got)
}

func TestCustomerService_SaveValidation(t *testing.T) {
	svc := service.NewCustomerService(memory.NewStore())

	_, err := svc.Save(context.Background(), &domain.CustomerDetails{GSTIN: "33AEIPA9533Q1Z5"})
	assert.ErrorIs(t, err, domain.ErrMissingCustomer)

	_, err = svc.Save(context.Background(), &domain.CustomerDetails{GSTIN: "33-AEIPA", Name: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidGSTIN)
}

func TestCustomerService_SaveRepoError(t *testing.T) {
	store := mocks.NewMockStore()
	svc := service.NewCustomerService(store)
	store.CustomerRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.CustomerDetails")).Return(errors.New("db down"))

	saved, err := svc.Save(context.Background(), &domain.CustomerDetails{GSTIN: "33AEIPA9533Q1Z5", Name: "X"})

	assert.Nil(t, saved)
	assert.ErrorContains(t, err, "db down")
	store.CustomerRepo.AssertExpectations(t)
}

func TestCustomerService_List(t *testing.T) {
	ctx := context.Background()
	svc := service.NewCustomerService(memory.NewStore())
	for _, c := range []domain.CustomerDetails{
		{GSTIN: "33AEIPA9533Q1Z5", Name: "Sri Murugan Traders"},
		{GSTIN: "29AAACB1234C1Z5", Name: "Bharath Agro"},
	} {
		c := c
		_, err := svc.Save(ctx, &c)
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byName, err := svc.List(ctx, "MURUGAN")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "33AEIPA9533Q1Z5", byName[0].GSTIN)

	byGSTIN, err := svc.List(ctx, "29aaa")
	require.NoError(t, err)
	require.Len(t, byGSTIN, 1)
	assert.Equal(t, "Bharath Agro", byGSTIN[0].Name)

	none, err := svc.List(ctx, "zzz")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCustomerService_Delete(t *testing.T) {
	ctx := context.Background()
	svc := service.NewCustomerService(memory.NewStore())
	_, err := svc.Save(ctx, &domain.CustomerDetails{GSTIN: "33AEIPA9533Q1Z5", Name: "X"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "33aeipa9533q1z5"))
	_, err = svc.Get(ctx, "33AEIPA9533Q1Z5")
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}
