package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"grafeio-data/internal/domain"
)

// Writes through the service must drop the cached dashboard snapshot so
// the next dashboard read reflects them.
func TestCitizenWrites_DropDashboardCache(t *testing.T) {
	kv := newFakeKV()
	svc := NewCitizenService(&fakeCitizensRepo{citizens: map[string]*domain.Citizen{}}, kv, zap.NewNop())

	seed := func() { kv.data[dashboardCacheKey] = `{"totals":{}}` }

	seed()
	_, err := svc.CreateCitizen(context.Background(), "u1", &domain.Citizen{Surname: "ΠΑΠΑΔΟΠΟΥΛΟΥ", Name: "ΜΑΡΙΑ"})
	require.NoError(t, err)
	assert.NotContains(t, kv.data, dashboardCacheKey, "create invalidates the dashboard cache")

	seed()
	err = svc.UpdateCitizen(context.Background(), "c1", &domain.Citizen{Surname: "ΠΑΠΑΔΟΠΟΥΛΟΥ", Name: "ΜΑΡΙΑ"})
	require.NoError(t, err)
	assert.NotContains(t, kv.data, dashboardCacheKey, "update invalidates the dashboard cache")

	seed()
	err = svc.DeleteCitizen(context.Background(), "c1")
	require.NoError(t, err)
	assert.NotContains(t, kv.data, dashboardCacheKey, "delete invalidates the dashboard cache")
}

// A rejected write must leave the cache alone.
func TestCitizenWrites_InvalidInputKeepsCache(t *testing.T) {
	kv := newFakeKV()
	svc := NewCitizenService(&fakeCitizensRepo{citizens: map[string]*domain.Citizen{}}, kv, zap.NewNop())

	kv.data[dashboardCacheKey] = `{"totals":{}}`
	_, err := svc.CreateCitizen(context.Background(), "u1", &domain.Citizen{Name: "ΜΑΡΙΑ"})
	require.Error(t, err)
	assert.Contains(t, kv.data, dashboardCacheKey)
}
