package redis

import (
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestHelpersWithoutClient(t *testing.T) {
	require.Nil(t, GetClient())

	// Writes are no-ops and reads report a miss until Init has run
	require.NoError(t, Set("plan:test", "{}", 0))

	_, err := Get("plan:test")
	require.ErrorIs(t, err, goredis.Nil)

	require.NoError(t, Delete("plan:test"))
	require.NoError(t, Close())
}
