package amqp

import (
	"testing"

	"github.com/stretchr/testify/require"

	"billtrack/internal/core"
)

func TestAlertMessageRoundtrip(t *testing.T) {
	msg := NewAlertMessage(core.Alert{
		TransactionID: "tx-1",
		Tier:          core.TierOverdue,
		Title:         "Conta vencida",
		Body:          "Internet (R$ 99,90) venceu há 2 dia(s).",
		Severity:      core.SeverityError,
	})
	require.False(t, msg.Timestamp.IsZero())

	data, err := msg.ToJSON()
	require.NoError(t, err)

	got, err := AlertMessageFromJSON(data)
	require.NoError(t, err)
	require.Equal(t, "tx-1", got.TransactionID)
	require.Equal(t, "overdue", got.Tier)
	require.Equal(t, "error", got.Severity)
	require.Equal(t, msg.Body, got.Body)
}

func TestAlertMessageFromJSONInvalid(t *testing.T) {
	_, err := AlertMessageFromJSON([]byte("{not json"))
	require.Error(t, err)
}
