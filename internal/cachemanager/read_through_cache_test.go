package cachemanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/homespun/homespun/internal/mocks"
	"github.com/homespun/homespun/internal/sessions/domain"
)

type projectInput struct {
	ProjectID string
}

func loader(calls *int) func(context.Context, projectInput) (domain.EntityLookup, error) {
	return func(_ context.Context, in projectInput) (domain.EntityLookup, error) {
		*calls++
		return domain.EntityLookup{"e-" + in.ProjectID: {ID: "e-" + in.ProjectID, ProjectID: in.ProjectID}}, nil
	}
}

func TestReadThroughCache_SkipCache(t *testing.T) {
	managerMock := mocks.NewMockCacheManager[string, domain.EntityLookup](t)
	calls := 0
	rtc := NewReadThroughCache[string, domain.EntityLookup, projectInput](managerMock, loader(&calls), true)

	got, err := rtc.Get(context.Background(), "entity-info:p1", projectInput{"p1"}, time.Minute)
	require.NoError(t, err)
	require.Contains(t, got, "e-p1")

	_, err = rtc.GetWithRefresh(context.Background(), "entity-info:p1", projectInput{"p1"}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, 2, calls)

	require.NoError(t, rtc.Invalidate(context.Background()), "invalidate is a no-op without a cache")
}

func TestReadThroughCache_Get_Hit(t *testing.T) {
	cached := domain.EntityLookup{"e1": {ID: "e1"}}
	managerMock := mocks.NewMockCacheManager[string, domain.EntityLookup](t)
	managerMock.EXPECT().Get(mock.Anything, "entity-info:p1").Return(cached, true)

	calls := 0
	rtc := NewReadThroughCache[string, domain.EntityLookup, projectInput](managerMock, loader(&calls), false)

	got, err := rtc.Get(context.Background(), "entity-info:p1", projectInput{"p1"}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, cached, got)
	require.Zero(t, calls)
}

func TestReadThroughCache_Get_MissStores(t *testing.T) {
	managerMock := mocks.NewMockCacheManager[string, domain.EntityLookup](t)
	managerMock.EXPECT().Get(mock.Anything, "entity-info:p1").Return(nil, false)
	managerMock.EXPECT().Set(mock.Anything, "entity-info:p1",
		domain.EntityLookup{"e-p1": {ID: "e-p1", ProjectID: "p1"}}, time.Minute).Return()

	calls := 0
	rtc := NewReadThroughCache[string, domain.EntityLookup, projectInput](managerMock, loader(&calls), false)

	got, err := rtc.Get(context.Background(), "entity-info:p1", projectInput{"p1"}, time.Minute)
	require.NoError(t, err)
	require.Contains(t, got, "e-p1")
	require.Equal(t, 1, calls)
}

func TestReadThroughCache_Get_LoadErrorNotCached(t *testing.T) {
	managerMock := mocks.NewMockCacheManager[string, domain.EntityLookup](t)
	managerMock.EXPECT().Get(mock.Anything, "entity-info:p1").Return(nil, false)

	rtc := NewReadThroughCache[string, domain.EntityLookup, projectInput](
		managerMock,
		func(context.Context, projectInput) (domain.EntityLookup, error) {
			return nil, errors.New("store unavailable")
		},
		false,
	)

	_, err := rtc.Get(context.Background(), "entity-info:p1", projectInput{"p1"}, time.Minute)
	require.EqualError(t, err, "store unavailable")
	managerMock.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReadThroughCache_GetWithRefresh(t *testing.T) {
	managerMock := mocks.NewMockCacheManager[string, domain.EntityLookup](t)
	managerMock.EXPECT().GetWithRefresh(mock.Anything, "entity-info:p1", time.Minute).Return(nil, false).Once()
	managerMock.EXPECT().Set(mock.Anything, "entity-info:p1", mock.Anything, time.Minute).Return()
	managerMock.EXPECT().GetWithRefresh(mock.Anything, "entity-info:p1", time.Minute).
		Return(domain.EntityLookup{"cached": {}}, true).Once()

	calls := 0
	rtc := NewReadThroughCache[string, domain.EntityLookup, projectInput](managerMock, loader(&calls), false)

	first, err := rtc.GetWithRefresh(context.Background(), "entity-info:p1", projectInput{"p1"}, time.Minute)
	require.NoError(t, err)
	require.Contains(t, first, "e-p1")

	second, err := rtc.GetWithRefresh(context.Background(), "entity-info:p1", projectInput{"p1"}, time.Minute)
	require.NoError(t, err)
	require.Contains(t, second, "cached")
	require.Equal(t, 1, calls)
}

func TestReadThroughCache_Invalidate(t *testing.T) {
	managerMock := mocks.NewMockCacheManager[string, domain.EntityLookup](t)
	managerMock.EXPECT().Flush(mock.Anything).Return(nil)

	calls := 0
	rtc := NewReadThroughCache[string, domain.EntityLookup, projectInput](managerMock, loader(&calls), false)
	require.NoError(t, rtc.Invalidate(context.Background()))
}

func TestReadThroughCache_WithInMemoryManager(t *testing.T) {
	cache := NewInMemoryCacheManager[string, domain.EntityLookup]("entity-info", DefaultExpiration, DefaultCleanupInterval)
	calls := 0
	rtc := NewReadThroughCache[string, domain.EntityLookup, projectInput](cache, loader(&calls), false)

	ctx := context.Background()
	for range 3 {
		_, err := rtc.Get(ctx, "entity-info:p1", projectInput{"p1"}, time.Minute)
		require.NoError(t, err)
	}
	require.Equal(t, 1, calls)

	require.NoError(t, rtc.Invalidate(ctx))
	_, err := rtc.Get(ctx, "entity-info:p1", projectInput{"p1"}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, 2, calls)
}
