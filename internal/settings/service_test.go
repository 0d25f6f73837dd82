package settings_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_back_end/internal/settings"
	"storefront_back_end/internal/settings/settingstest"
)

type mode int

const (
	modeA mode = 1
	modeB mode = 2
)

type sampleSettings struct {
	ClientID   string
	UseSandbox bool
	Mode       mode
	Fee        decimal.Decimal
	Retries    int
	hidden     string
}

func (sampleSettings) SettingPrefix() string { return "SampleSettings" }

func TestGetByKey_FallsBackToGlobal(t *testing.T) {
	svc, _, _ := settingstest.NewService(
		settings.Setting{Name: "samplesettings.clientid", Value: "global", StoreID: 0},
		settings.Setting{Name: "samplesettings.clientid", Value: "store-2", StoreID: 2},
	)
	ctx := context.Background()

	v, err := svc.GetByKey(ctx, "SampleSettings.ClientId", 2, true)
	require.NoError(t, err)
	assert.Equal(t, "store-2", v)

	v, err = svc.GetByKey(ctx, "samplesettings.clientid", 3, true)
	require.NoError(t, err)
	assert.Equal(t, "global", v)

	_, err = svc.GetByKey(ctx, "samplesettings.clientid", 3, false)
	assert.ErrorIs(t, err, settings.ErrNotFound)
}

func TestSettingExists_NoFallback(t *testing.T) {
	svc, _, _ := settingstest.NewService(
		settings.Setting{Name: "samplesettings.clientid", Value: "global", StoreID: 0},
	)
	ctx := context.Background()

	ok, err := svc.SettingExists(ctx, "samplesettings.clientid", 0)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.SettingExists(ctx, "samplesettings.clientid", 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoadSetting_DecodesAllKinds(t *testing.T) {
	svc, _, _ := settingstest.NewService(
		settings.Setting{Name: "samplesettings.clientid", Value: "abc", StoreID: 0},
		settings.Setting{Name: "samplesettings.usesandbox", Value: "true", StoreID: 0},
		settings.Setting{Name: "samplesettings.mode", Value: "2", StoreID: 1},
		settings.Setting{Name: "samplesettings.fee", Value: "1.50", StoreID: 0},
	)

	s := sampleSettings{Retries: 3}
	require.NoError(t, svc.LoadSetting(context.Background(), &s, 1))

	assert.Equal(t, "abc", s.ClientID)
	assert.True(t, s.UseSandbox)
	assert.Equal(t, modeB, s.Mode)
	assert.True(t, decimal.RequireFromString("1.5").Equal(s.Fee))
	assert.Equal(t, 3, s.Retries, "missing keys keep their default")
}

func TestLoadSetting_InvalidValue(t *testing.T) {
	svc, _, _ := settingstest.NewService(
		settings.Setting{Name: "samplesettings.usesandbox", Value: "maybe", StoreID: 0},
	)
	err := svc.LoadSetting(context.Background(), &sampleSettings{}, 0)
	assert.Error(t, err)
}

func TestLoadSetting_RequiresPointer(t *testing.T) {
	svc, _, _ := settingstest.NewService()
	err := svc.LoadSetting(context.Background(), sampleSettings{}, 0)
	assert.Error(t, err)
}

func TestSaveSetting_WritesEveryFieldAndClearsOnce(t *testing.T) {
	svc, repo, cache := settingstest.NewService()
	s := &sampleSettings{ClientID: "id", UseSandbox: true, Mode: modeA, Fee: decimal.RequireFromString("2.25"), Retries: 4}

	require.NoError(t, svc.SaveSetting(context.Background(), s, 0))

	assert.Equal(t, 5, repo.Upserts)
	assert.Equal(t, 1, cache.Clears)
	v, ok := repo.Value("samplesettings.fee", 0)
	require.True(t, ok)
	assert.Equal(t, "2.25", v)
	v, _ = repo.Value("samplesettings.mode", 0)
	assert.Equal(t, "1", v)
}

func TestFields_SkipsUnexported(t *testing.T) {
	assert.Equal(t,
		[]string{"ClientID", "UseSandbox", "Mode", "Fee", "Retries"},
		settings.Fields(&sampleSettings{}))
}

func TestCacheIsUsedUntilCleared(t *testing.T) {
	svc, _, cache := settingstest.NewService(
		settings.Setting{Name: "samplesettings.clientid", Value: "v1", StoreID: 0},
	)
	ctx := context.Background()

	_, err := svc.GetByKey(ctx, "samplesettings.clientid", 0, false)
	require.NoError(t, err)

	require.NoError(t, svc.SetSetting(ctx, "samplesettings.clientid", "v2", 0, false))
	v, err := svc.GetByKey(ctx, "samplesettings.clientid", 0, false)
	require.NoError(t, err)
	assert.Equal(t, "v1", v, "stale value served until the cache is cleared")
	assert.Equal(t, 1, cache.Loads)

	require.NoError(t, svc.ClearCache(ctx))
	v, err = svc.GetByKey(ctx, "samplesettings.clientid", 0, false)
	require.NoError(t, err)
	assert.Equal(t, "v2", v)
}

func TestDeleteSettings_RemovesAllStores(t *testing.T) {
	svc, repo, _ := settingstest.NewService(
		settings.Setting{Name: "samplesettings.clientid", Value: "g", StoreID: 0},
		settings.Setting{Name: "samplesettings.clientid", Value: "s", StoreID: 4},
		settings.Setting{Name: "othersettings.clientid", Value: "keep", StoreID: 0},
	)

	require.NoError(t, svc.DeleteSettings(context.Background(), &sampleSettings{}))

	_, ok := repo.Value("samplesettings.clientid", 0)
	assert.False(t, ok)
	_, ok = repo.Value("samplesettings.clientid", 4)
	assert.False(t, ok)
	_, ok = repo.Value("othersettings.clientid", 0)
	assert.True(t, ok)
}

func TestApplyScoped_GlobalScopeSavesEverything(t *testing.T) {
	svc, repo, cache := settingstest.NewService()
	s := &sampleSettings{ClientID: "global-id"}

	require.NoError(t, svc.ApplyScoped(context.Background(), s, 0, nil))

	assert.Equal(t, 5, repo.Upserts)
	assert.Equal(t, 0, repo.Deletes)
	assert.Equal(t, 1, cache.Clears)
	v, _ := repo.Value("samplesettings.clientid", 0)
	assert.Equal(t, "global-id", v)
}

func TestApplyScoped_StoreScopeRespectsOverrides(t *testing.T) {
	svc, repo, cache := settingstest.NewService(
		settings.Setting{Name: "samplesettings.clientid", Value: "global", StoreID: 0},
		settings.Setting{Name: "samplesettings.usesandbox", Value: "false", StoreID: 0},
		settings.Setting{Name: "samplesettings.usesandbox", Value: "true", StoreID: 2},
	)
	ctx := context.Background()
	s := &sampleSettings{ClientID: "store-id", UseSandbox: true}

	err := svc.ApplyScoped(ctx, s, 2, map[string]bool{"ClientID": true})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Clears)

	v, ok := repo.Value("samplesettings.clientid", 2)
	require.True(t, ok)
	assert.Equal(t, "store-id", v)

	// every field without an override must fall back to the global value
	for _, name := range settings.Fields(s) {
		if name == "ClientID" {
			continue
		}
		exists, err := svc.SettingFieldExists(ctx, s, name, 2)
		require.NoError(t, err)
		assert.False(t, exists, name)
	}

	v, _ = repo.Value("samplesettings.clientid", 0)
	assert.Equal(t, "global", v, "global value untouched")
}

func TestApplyScoped_BestEffort(t *testing.T) {
	svc, repo, cache := settingstest.NewService()
	boom := errors.New("boom")
	repo.FailOn = map[string]error{settings.CacheKey("samplesettings.usesandbox", 0): boom}

	err := svc.ApplyScoped(context.Background(), &sampleSettings{ClientID: "x"}, 0, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, 4, repo.Upserts, "other fields still saved")
	assert.Equal(t, 1, cache.Clears)
}

func TestOverrideFlags(t *testing.T) {
	svc, _, _ := settingstest.NewService(
		settings.Setting{Name: "samplesettings.fee", Value: "1", StoreID: 3},
	)
	ctx := context.Background()

	flags, err := svc.OverrideFlags(ctx, &sampleSettings{}, 3)
	require.NoError(t, err)
	assert.True(t, flags["Fee"])
	assert.False(t, flags["ClientID"])

	flags, err = svc.OverrideFlags(ctx, &sampleSettings{}, 0)
	require.NoError(t, err)
	assert.False(t, flags["Fee"])
}
