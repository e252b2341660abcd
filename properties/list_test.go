package properties_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shuzaifak/Property-Sync-Owner/backend/backendfake"
	apperrors "github.com/shuzaifak/Property-Sync-Owner/internal/errors"
	"github.com/shuzaifak/Property-Sync-Owner/properties"
)

func seeded(t *testing.T) (*backendfake.Fake, []properties.Record) {
	t.Helper()
	api := backendfake.New()
	recs := []properties.Record{
		api.AddProperty(properties.Record{Title: "A", Address: "1", Price: ptr(10)}),
		api.AddProperty(properties.Record{Title: "B", Address: "2", Price: ptr(20)}),
		api.AddProperty(properties.Record{Title: "C", Address: "3", Price: ptr(30)}),
	}
	return api, recs
}

func TestList_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("loaded", func(t *testing.T) {
		api, recs := seeded(t)
		l := properties.NewList()
		require.Equal(t, properties.ListLoading, l.State())
		require.NoError(t, l.Load(ctx, api))
		require.Equal(t, properties.ListLoaded, l.State())
		require.Equal(t, recs, l.Records())
	})

	t.Run("empty", func(t *testing.T) {
		l := properties.NewList()
		require.NoError(t, l.Load(ctx, backendfake.New()))
		require.Equal(t, properties.ListLoaded, l.State())
		require.Empty(t, l.Records())
	})

	t.Run("invalid data format", func(t *testing.T) {
		api := backendfake.New()
		api.Fail(backendfake.OpList, apperrors.Wrapf(apperrors.ErrDataShape, "not an array"))
		l := properties.NewList()
		require.ErrorIs(t, l.Load(ctx, api), apperrors.ErrDataShape)
		require.Equal(t, properties.ListLoadFailed, l.State())
		require.Equal(t, properties.MsgInvalidDataFormat, l.LoadError())
	})

	t.Run("cancelled", func(t *testing.T) {
		api, _ := seeded(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		l := properties.NewList()
		require.ErrorIs(t, l.Load(cctx, api), context.Canceled)
		require.Equal(t, properties.ListLoading, l.State())
	})
}

func TestList_DeleteFlow(t *testing.T) {
	ctx := context.Background()

	t.Run("confirm removes exactly the target without refetching", func(t *testing.T) {
		api, recs := seeded(t)
		l := properties.NewList()
		require.NoError(t, l.Load(ctx, api))

		require.True(t, l.RequestDelete(recs[1].ID))
		pending, ok := l.Pending()
		require.True(t, ok)
		require.Equal(t, "B", pending.Title)

		require.NoError(t, l.ConfirmDelete(ctx, api))
		require.Equal(t, []properties.Record{recs[0], recs[2]}, l.Records())
		require.Equal(t, []string{recs[1].ID}, api.Deleted)
		require.Equal(t, 1, api.CallCount(backendfake.OpList))
		_, ok = l.Pending()
		require.False(t, ok)
	})

	t.Run("cancel makes no call", func(t *testing.T) {
		api, recs := seeded(t)
		l := properties.NewList()
		require.NoError(t, l.Load(ctx, api))
		require.True(t, l.RequestDelete(recs[0].ID))
		l.CancelDelete()

		_, ok := l.Pending()
		require.False(t, ok)
		require.Zero(t, api.CallCount(backendfake.OpDelete))
		require.Len(t, l.Records(), 3)
	})

	t.Run("failure keeps cache and target", func(t *testing.T) {
		api, recs := seeded(t)
		l := properties.NewList()
		require.NoError(t, l.Load(ctx, api))
		api.FailWithMessage(backendfake.OpDelete, 403, "Not your property")
		require.True(t, l.RequestDelete(recs[2].ID))

		require.ErrorIs(t, l.ConfirmDelete(ctx, api), apperrors.ErrNetwork)
		require.Len(t, l.Records(), 3)
		pending, ok := l.Pending()
		require.True(t, ok)
		require.Equal(t, recs[2].ID, pending.ID)
		require.Equal(t, "Not your property", l.DeleteError())
	})

	t.Run("unknown id is not a target", func(t *testing.T) {
		api, _ := seeded(t)
		l := properties.NewList()
		require.NoError(t, l.Load(ctx, api))
		require.False(t, l.RequestDelete("nope"))
		require.ErrorIs(t, l.ConfirmDelete(ctx, api), apperrors.ErrNotFound)
	})
}
