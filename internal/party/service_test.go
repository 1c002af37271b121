package party

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbooks-dev/openbooks/internal/model"
	"github.com/openbooks-dev/openbooks/internal/store/memory"
)

func TestCreateValidation(t *testing.T) {
	svc := NewService(memory.New())

	_, err := svc.Create(model.Party{Name: " ", Kind: model.PartyCustomer})
	require.Error(t, err)

	_, err = svc.Create(model.Party{Name: "Globex", Kind: "friend"})
	require.Error(t, err)

	_, err = svc.Create(model.Party{Name: "Globex", Kind: model.PartyCustomer, CreditTermDays: -5})
	require.Error(t, err)

	p, err := svc.Create(model.Party{Name: "Globex", Kind: model.PartyCustomer, CreditTermDays: 30})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
}

func TestKindFilters(t *testing.T) {
	svc := NewService(memory.New())

	_, err := svc.Create(model.Party{Name: "Globex", Kind: model.PartyCustomer})
	require.NoError(t, err)
	_, err = svc.Create(model.Party{Name: "Initech", Kind: model.PartyVendor})
	require.NoError(t, err)

	customers, err := svc.Customers()
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "Globex", customers[0].Name)

	vendors, err := svc.Vendors()
	require.NoError(t, err)
	require.Len(t, vendors, 1)
	assert.Equal(t, "Initech", vendors[0].Name)
}

func TestNameForDeletedParty(t *testing.T) {
	svc := NewService(memory.New())

	p, err := svc.Create(model.Party{Name: "Globex", Kind: model.PartyCustomer})
	require.NoError(t, err)
	assert.Equal(t, "Globex", svc.NameFor(p.ID))

	require.NoError(t, svc.Delete(p.ID))
	assert.Equal(t, "Party removed", svc.NameFor(p.ID))
}
