package csvexport

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/subscription-dashboard/internal/models"
)

func TestMarshal(t *testing.T) {
	subs := []models.Subscription{
		{
			ID:        "a",
			Email:     "alice@example.com",
			Password:  "secret1",
			StartDate: time.Date(2025, 1, 2, 9, 30, 0, 0, time.UTC),
			EndDate:   time.Date(2025, 2, 2, 9, 30, 0, 0, time.UTC),
			Status:    models.StatusActive,
		},
		{
			ID:        "b",
			Email:     "bob@example.com",
			Password:  "secret2",
			StartDate: time.Date(2024, 12, 24, 18, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, 1, 24, 18, 0, 0, 0, time.UTC),
			Status:    models.StatusExpired,
		},
	}

	out, err := Marshal(subs)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	require.Len(t, lines, 3, "header plus one line per record")

	assert.Equal(t, "Email,Password,Start Date,End Date,Status", lines[0])
	assert.Equal(t, "alice@example.com,secret1,\"Jan 02, 2025 09:30\",\"Feb 02, 2025 09:30\",active", lines[1])
	assert.Equal(t, "bob@example.com,secret2,\"Dec 24, 2024 18:00\",\"Jan 24, 2025 18:00\",expired", lines[2])
}

func TestMarshalQuotesEmbeddedCommas(t *testing.T) {
	subs := []models.Subscription{
		{
			Email:     "eve@example.com",
			Password:  "pass,with,commas",
			StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			Status:    models.StatusActive,
		},
	}

	out, err := Marshal(subs)
	require.NoError(t, err)

	assert.Contains(t, string(out), `"pass,with,commas"`)
}

func TestMarshalEmpty(t *testing.T) {
	out, err := Marshal(nil)
	require.NoError(t, err)

	assert.Equal(t, "Email,Password,Start Date,End Date,Status\n", string(out))
}

func TestFilename(t *testing.T) {
	now := time.Date(2025, 7, 9, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "subscriptions_2025-07-09.csv", Filename(now))
}
