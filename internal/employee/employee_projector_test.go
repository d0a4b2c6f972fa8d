package employee

import (
	"testing"

	"github.com/aswanthpvtk/employee-Task-Backend/internal/section"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []section.Section {
	return []section.Section{
		{
			ID:   "sec-personal",
			Name: "personal",
			Fields: []section.FieldDefinition{
				{Name: "pan", Type: section.FieldTypeText},
				{Name: "bloodGroup", Type: section.FieldTypeSelect, Options: []string{"A+", "O+"}},
			},
		},
		{
			ID:   "sec-banking",
			Name: "Banking",
			Fields: []section.FieldDefinition{
				{Name: "accountNumber", Type: section.FieldTypeText},
				{Name: "IFSC", Type: section.FieldTypeText},
				{Name: "currency", Type: section.FieldTypeText, DefaultValue: "INR"},
			},
		},
		{ID: "sec-empty", Name: "notes"},
	}
}

func TestProjectSections(t *testing.T) {
	t.Run("one snapshot per section", func(t *testing.T) {
		snaps := projectSections(testCatalog(), nil, nil)

		require.Len(t, snaps, 3)
		assert.Equal(t, "sec-banking", snaps[1].SectionID)
		assert.Equal(t, "Banking", snaps[1].SectionName)
		assert.Len(t, snaps[1].Fields, 3)
		assert.Empty(t, snaps[2].Fields)

		v, ok := snaps[0].Get("pan")
		assert.True(t, ok)
		assert.Equal(t, "", v)
	})

	t.Run("personal info wins over payment info", func(t *testing.T) {
		personal := map[string]any{"pan": "ABCDE1234F", "accountNumber": "from-personal"}
		payment := map[string]any{"accountNumber": "from-payment", "IFSC": "HDFC0001"}

		snaps := projectSections(testCatalog(), personal, payment)

		pan, _ := snaps[0].Get("pan")
		acct, _ := snaps[1].Get("accountNumber")
		ifsc, _ := snaps[1].Get("IFSC")
		assert.Equal(t, "ABCDE1234F", pan)
		assert.Equal(t, "from-personal", acct)
		assert.Equal(t, "HDFC0001", ifsc)
	})

	t.Run("empty string falls through", func(t *testing.T) {
		personal := map[string]any{"accountNumber": ""}
		payment := map[string]any{"accountNumber": "12345"}

		snaps := projectSections(testCatalog(), personal, payment)

		acct, _ := snaps[1].Get("accountNumber")
		assert.Equal(t, "12345", acct)
	})

	t.Run("default value when absent", func(t *testing.T) {
		snaps := projectSections(testCatalog(), nil, map[string]any{"currency": nil})

		currency, _ := snaps[1].Get("currency")
		assert.Equal(t, "INR", currency)
	})

	t.Run("non string values kept", func(t *testing.T) {
		snaps := projectSections(testCatalog(), map[string]any{"pan": 0.0}, nil)

		pan, _ := snaps[0].Get("pan")
		assert.Equal(t, 0.0, pan)
	})

	t.Run("empty catalog", func(t *testing.T) {
		snaps := projectSections(nil, map[string]any{"pan": "X"}, nil)

		assert.NotNil(t, snaps)
		assert.Empty(t, snaps)
	})
}

func TestSectionSnapshot_Set(t *testing.T) {
	snap := SectionSnapshot{SectionName: "Banking"}

	snap.Set("IFSC", "X")
	snap.Set("IFSC", "Y")
	snap.Set("bankName", "HDFC")

	require.Len(t, snap.Fields, 2)
	v, _ := snap.Get("IFSC")
	assert.Equal(t, "Y", v)

	_, ok := snap.Get("missing")
	assert.False(t, ok)
}
