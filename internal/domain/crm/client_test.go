package crm

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	owner := uuid.New()

	c, err := NewClient(owner, "Thandi", "Nkosi")
	require.NoError(t, err)
	assert.Equal(t, "Thandi Nkosi", c.FullName())
	assert.Equal(t, ClientStatusActive, c.Status)
	assert.Equal(t, owner, c.CreatedBy)
	assert.True(t, c.MonthlyIncome.IsZero())

	_, err = NewClient(owner, "", "Nkosi")
	assert.Error(t, err)

	_, err = NewClient(uuid.Nil, "Thandi", "Nkosi")
	assert.Error(t, err)
}

func TestClientSetContact(t *testing.T) {
	c, err := NewClient(uuid.New(), "Thandi", "Nkosi")
	require.NoError(t, err)

	require.NoError(t, c.SetContact("Thandi@Example.com", "+27 82 000 0000"))
	assert.Equal(t, "thandi@example.com", c.Email)

	assert.Error(t, c.SetContact("not-an-email", ""))

	// Empty contact details are allowed
	require.NoError(t, c.SetContact("", ""))
	assert.Empty(t, c.Email)
}

func TestClientFinancialProfile(t *testing.T) {
	c, err := NewClient(uuid.New(), "Thandi", "Nkosi")
	require.NoError(t, err)

	income := decimal.RequireFromString("45000.50")
	require.NoError(t, c.SetFinancialProfile("Acme Holdings", "Engineer", income))
	assert.True(t, c.MonthlyIncome.Equal(income))

	assert.Error(t, c.SetFinancialProfile("Acme", "Engineer", decimal.RequireFromString("-1")))
}

func TestClientArchive(t *testing.T) {
	c, err := NewClient(uuid.New(), "Thandi", "Nkosi")
	require.NoError(t, err)

	assert.False(t, c.IsArchived())
	require.NoError(t, c.Archive())
	assert.True(t, c.IsArchived())
	assert.Error(t, c.Archive())
}

func TestNewDocument(t *testing.T) {
	clientID := uuid.New()
	uploader := uuid.New()

	d, err := NewDocument(clientID, uploader, "policy.pdf", "application/pdf", 1024)
	require.NoError(t, err)
	assert.Equal(t, clientID, d.ClientID)
	assert.Contains(t, d.StorageKey, clientID.String())
	assert.Contains(t, d.StorageKey, "policy.pdf")

	_, err = NewDocument(clientID, uploader, "", "application/pdf", 1024)
	assert.Error(t, err)

	_, err = NewDocument(clientID, uploader, "big.bin", "application/octet-stream", MaxDocumentSize+1)
	assert.Error(t, err)

	_, err = NewDocument(clientID, uploader, "empty.txt", "text/plain", 0)
	assert.Error(t, err)
}
