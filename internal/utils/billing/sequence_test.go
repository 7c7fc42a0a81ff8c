package billing_test

import (
	"testing"

	"github.com/praxisbill/lpm_backend/internal/apperrors"
	"github.com/praxisbill/lpm_backend/internal/utils/billing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func noneTaken(string) (bool, error) { return false, nil }

func takenSet(numbers ...string) func(string) (bool, error) {
	set := make(map[string]bool, len(numbers))
	for _, n := range numbers {
		set[n] = true
	}
	return func(candidate string) (bool, error) {
		return set[candidate], nil
	}
}

func TestNextInvoiceNumber_NilProposalNumber(t *testing.T) {
	got, err := billing.NextInvoiceNumber(nil, 0, noneTaken)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = billing.NextInvoiceNumber(strPtr(""), 0, noneTaken)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNextInvoiceNumber_RewritesPropPrefix(t *testing.T) {
	got, err := billing.NextInvoiceNumber(strPtr("PROP-2026-014"), 0, noneTaken)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "INV-2026-014-1", *got)
}

func TestNextInvoiceNumber_PlainBaseUsedAsIs(t *testing.T) {
	got, err := billing.NextInvoiceNumber(strPtr("RETAINER-7"), 2, noneTaken)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "RETAINER-7-3", *got)
}

func TestNextInvoiceNumber_SuffixIsCountPlusOne(t *testing.T) {
	got, err := billing.NextInvoiceNumber(strPtr("PROP-9"), 4, noneTaken)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "INV-9-5", *got)
}

func TestNextInvoiceNumber_IncrementsPastCollisions(t *testing.T) {
	taken := takenSet("INV-9-1", "INV-9-2")

	got, err := billing.NextInvoiceNumber(strPtr("PROP-9"), 0, taken)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "INV-9-3", *got)
}

func TestNextInvoiceNumber_SequentialGenerationIsUnique(t *testing.T) {
	issued := map[string]bool{}
	taken := func(candidate string) (bool, error) { return issued[candidate], nil }

	for i := 0; i < 5; i++ {
		got, err := billing.NextInvoiceNumber(strPtr("PROP-1"), i, taken)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.False(t, issued[*got], "number %s issued twice", *got)
		issued[*got] = true
	}
	assert.Len(t, issued, 5)
}

func TestNextInvoiceNumber_ExhaustedProbes(t *testing.T) {
	everythingTaken := func(string) (bool, error) { return true, nil }

	got, err := billing.NextInvoiceNumber(strPtr("PROP-1"), 0, everythingTaken)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateInvoiceNumber)
	assert.Nil(t, got)
}

func TestNextInvoiceNumber_TakenCheckErrorPropagates(t *testing.T) {
	checkErr := assert.AnError
	failing := func(string) (bool, error) { return false, checkErr }

	got, err := billing.NextInvoiceNumber(strPtr("PROP-1"), 0, failing)

	require.Error(t, err)
	assert.ErrorIs(t, err, checkErr)
	assert.Nil(t, got)
}
