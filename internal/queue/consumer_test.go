package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleMessageAppendsAuditLine(t *testing.T) {
	t.Chdir(t.TempDir())

	ev := ReservationEvent{
		Action:        ActionConfirmed,
		ReservationID: 17,
		ClientID:      4,
		RoomID:        102,
		DateIn:        "2024-06-01",
		DateOut:       "2024-06-05",
		ActorUserID:   1,
		ActorRole:     "ADMIN",
		OccurredAt:    "2024-05-20T10:00:00Z",
	}
	body, err := json.Marshal(ev)
	require.NoError(t, err)
	require.NoError(t, handleMessage(body))

	data, err := os.ReadFile(filepath.Join("logs", "reservation.log"))
	require.NoError(t, err)
	line := string(data)
	assert.Contains(t, line, "Reservation confirmed")
	assert.Contains(t, line, "reservation_id=17")
	assert.Contains(t, line, "room_id=102")
	assert.Contains(t, line, "stay=2024-06-01..2024-06-05")

	// a second message appends, never truncates
	ev.Action = ActionCancelled
	body, err = json.Marshal(ev)
	require.NoError(t, err)
	require.NoError(t, handleMessage(body))
	data, err = os.ReadFile(filepath.Join("logs", "reservation.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Reservation confirmed")
	assert.Contains(t, string(data), "Reservation cancelled")
}

func TestHandleMessageRejectsGarbage(t *testing.T) {
	t.Chdir(t.TempDir())
	assert.Error(t, handleMessage([]byte("{not json")))
}
