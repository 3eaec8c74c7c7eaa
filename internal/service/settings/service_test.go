package settings

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SchedulingService/internal/service/settings/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

type fakeSettingsRepo struct {
	stored map[string]domain.OwnerSettings
}

func (f *fakeSettingsRepo) Get(_ context.Context, ownerID string) (*domain.OwnerSettings, error) {
	s, ok := f.stored[ownerID]
	if !ok {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	return &s, nil
}

func (f *fakeSettingsRepo) Upsert(_ context.Context, s *domain.OwnerSettings) (*domain.OwnerSettings, error) {
	f.stored[s.OwnerID] = *s
	return s, nil
}

func defaults() domain.OwnerSettings {
	return domain.OwnerSettings{
		Timezone:                      domain.DefaultTimezone,
		DefaultSessionDurationMinutes: domain.DefaultSessionDurationMinutes,
		DefaultBufferMinutes:          domain.DefaultBufferMinutes,
		MinLeadTimeMinutes:            domain.DefaultMinLeadTimeMinutes,
		CancellationDeadlineHours:     domain.DefaultCancellationDeadlineHours,
	}
}

func newTestService() (*Service, *fakeSettingsRepo) {
	repo := &fakeSettingsRepo{stored: make(map[string]domain.OwnerSettings)}
	return NewService(repo, defaults(), logger.NewNop()), repo
}

func TestGet_FallsBackToDefaults(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Get(context.Background(), "owner")
	require.NoError(t, err)

	assert.True(t, resp.IsDefault)
	assert.Equal(t, "owner", resp.OwnerID)
	assert.Equal(t, "UTC", resp.Timezone)
	assert.Equal(t, 120, resp.MinLeadTimeMinutes)
	assert.Nil(t, resp.UpdatedAt)
}

func TestUpdate_PartialChanges(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	pct := decimal.NewFromInt(50)
	resp, err := svc.Update(ctx, &models.UpdateSettingsRequest{
		UserID:               "owner",
		OwnerID:              "owner",
		Timezone:             ptr.Ptr("Australia/Sydney"),
		PartialRefundPercent: &pct,
	})
	require.NoError(t, err)
	assert.False(t, resp.IsDefault)
	assert.Equal(t, "Australia/Sydney", resp.Timezone)
	assert.Equal(t, 60, resp.DefaultSessionDurationMinutes)

	stored := repo.stored["owner"]
	require.NotNil(t, stored.PartialRefundPercent)
	assert.True(t, stored.PartialRefundPercent.Equal(pct))

	resolved, err := svc.Resolve(ctx, "owner")
	require.NoError(t, err)
	assert.True(t, resolved.CancellationPolicy().HasPartialTier())

	_, err = svc.Update(ctx, &models.UpdateSettingsRequest{UserID: "owner", OwnerID: "owner", ClearPartialRefund: true})
	require.NoError(t, err)
	assert.Nil(t, repo.stored["owner"].PartialRefundPercent)
}

func TestUpdate_Validation(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	cases := map[string]*models.UpdateSettingsRequest{
		"bad timezone":      {Timezone: ptr.Ptr("Moon/Base")},
		"short session":     {DefaultSessionDurationMinutes: ptr.Ptr(1)},
		"negative buffer":   {DefaultBufferMinutes: ptr.Ptr(-1)},
		"huge lead time":    {MinLeadTimeMinutes: ptr.Ptr(domain.MaxMinLeadTimeMinutes + 1)},
		"negative deadline": {CancellationDeadlineHours: ptr.Ptr(-2)},
		"percent over 100":  {PartialRefundPercent: ptr.Ptr(decimal.NewFromInt(101))},
	}

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			req.UserID, req.OwnerID = "owner", "owner"
			_, err := svc.Update(ctx, req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Empty(t, repo.stored)

	_, err := svc.Update(ctx, &models.UpdateSettingsRequest{UserID: "other", OwnerID: "owner"})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
