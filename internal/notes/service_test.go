package notes

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestServicePostThenListNewestFirst(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.FixedZone("JST", 9*60*60))
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	ctx := context.Background()

	first, err := svc.Post(ctx, "first", "203.0.113.1")
	require.NoError(t, err)
	second, err := svc.Post(ctx, "second", "203.0.113.2")
	require.NoError(t, err)

	require.NotEmpty(t, second.ID)
	require.NotEqual(t, first.ID, second.ID)
	require.Equal(t, "2024-05-01T00:02:00.000000+00:00", second.Date)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "second", list[0].Content)
	require.Equal(t, "first", list[1].Content)

	parsed, err := ParseDate(list[0].Date)
	require.NoError(t, err)
	_, offset := parsed.Zone()
	require.Equal(t, 0, offset)
}

func TestServiceGetAndDelete(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	n, err := svc.Post(ctx, "hello", "198.51.100.7")
	require.NoError(t, err)

	got, err := svc.Get(ctx, n.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "hello", got.Content)
	require.Equal(t, "198.51.100.7", got.IP)

	require.NoError(t, svc.Delete(ctx, n.ID))
	got, err = svc.Get(ctx, n.ID)
	require.NoError(t, err)
	require.Nil(t, got)

	// deleting a missing id is not an error
	require.NoError(t, svc.Delete(ctx, "does-not-exist"))
}
