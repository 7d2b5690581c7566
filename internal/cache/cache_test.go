package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

type cachedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func TestAsideFetchesOnMissAndServesFromCache(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedUser) func() error {
		return func() error {
			fetches++
			*dest = cachedUser{ID: 1, Username: "writer"}
			return nil
		}
	}

	var got cachedUser
	err := Aside(ctx, UserSubjectKey("user_1"), &got, UserTTL, fetch(&got))
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "writer", got.Username)

	var again cachedUser
	err = Aside(ctx, UserSubjectKey("user_1"), &again, UserTTL, fetch(&again))
	require.NoError(t, err)
	assert.Equal(t, 1, fetches, "second read must come from cache")
	assert.Equal(t, got, again)
}

func TestInvalidateUserSubject(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, UserSubjectKey("user_1"), cachedUser{ID: 1}, UserTTL))

	InvalidateUserSubject(ctx, "user_1")

	var got cachedUser
	found, err := GetJSON(ctx, UserSubjectKey("user_1"), &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSetJSONExpires(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PostCommentsKey(7), []string{"a"}, CommentsTTL))

	mr.FastForward(CommentsTTL + time.Second)

	var got []string
	found, err := GetJSON(ctx, PostCommentsKey(7), &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestHelpersAreNilSafeWithoutRedis(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	var got cachedUser
	found, err := GetJSON(ctx, "any", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, "any", got, time.Minute))

	err = Aside(ctx, "any", &got, time.Minute, func() error {
		got = cachedUser{ID: 9}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, uint(9), got.ID)
}
