package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStay(t *testing.T) {
	nights, err := ParseStay("2025-10-05", "2025-10-08")
	require.NoError(t, err)
	assert.Equal(t, 3, nights)

	// spans a month boundary
	nights, err = ParseStay("2025-10-30", " 2025-11-02 ")
	require.NoError(t, err)
	assert.Equal(t, 3, nights)

	_, err = ParseStay("2025-10-05", "2025-10-05")
	assert.ErrorContains(t, err, "must be after")

	_, err = ParseStay("05/10/2025", "2025-10-08")
	assert.ErrorContains(t, err, "check-in")

	_, err = ParseStay("2025-10-05", "")
	assert.ErrorContains(t, err, "check-out")
}

func TestCalculateStayTotal(t *testing.T) {
	assert.Equal(t, int64(26997), CalculateStayTotal(8999, 3))
	assert.Equal(t, int64(0), CalculateStayTotal(8999, -1))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "delhi-agra", Slugify("Delhi & Agra"))
	assert.Equal(t, "kashmir-delight", Slugify("  Kashmir Delight "))
	assert.Equal(t, "first-time-international-destinations", Slugify("First Time International Destinations!"))
	assert.Equal(t, "", Slugify("&&"))
}
