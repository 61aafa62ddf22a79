package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIsDeterministic(t *testing.T) {
	builder := NewReferenceBuilder("easypark@bank", "EasyParking", "INR")
	sessionID := uuid.MustParse("a3bb189e-8bf9-3888-9912-ace4e6543002")
	amount := 100.0

	first, err := builder.Build(sessionID, &amount)
	require.NoError(t, err)
	second, err := builder.Build(sessionID, &amount)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "upi://pay?")
	assert.Contains(t, first, "am=100.00")
	assert.Contains(t, first, "cu=INR")
	assert.Contains(t, first, "pa=easypark%40bank")
	assert.Contains(t, first, sessionID.String())
}

func TestBuildRejectsOpenSession(t *testing.T) {
	builder := NewReferenceBuilder("easypark@bank", "EasyParking", "INR")

	_, err := builder.Build(uuid.New(), nil)
	assert.ErrorIs(t, err, ErrSessionOpen)
}
