package localization

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	rows map[string]string
	err  error
}

func (m *memRepo) All(ctx context.Context) (map[string]string, error) { return m.rows, m.err }
func (m *memRepo) Upsert(ctx context.Context, name, value string) error {
	if m.err != nil {
		return m.err
	}
	m.rows[name] = value
	return nil
}
func (m *memRepo) Delete(ctx context.Context, name string) error {
	delete(m.rows, name)
	return nil
}

func TestGetResource(t *testing.T) {
	repo := &memRepo{rows: map[string]string{"plugins.shipping.canadapost.fields.api": "API key"}}
	svc := NewService(repo)
	ctx := context.Background()

	assert.Equal(t, "API key", svc.GetResource(ctx, "Plugins.Shipping.CanadaPost.Fields.Api"))
	assert.Equal(t, "Wrong card number", svc.GetResource(ctx, "Payment.CardNumber.Wrong"))
	assert.Equal(t, "Unknown.Key", svc.GetResource(ctx, "Unknown.Key"))
}

func TestAddAndDeleteResource(t *testing.T) {
	repo := &memRepo{rows: map[string]string{}}
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.AddOrUpdatePluginLocaleResource(ctx, "Plugins.X.Title", "Title"))
	assert.Equal(t, "Title", repo.rows["plugins.x.title"])
	assert.Equal(t, "Title", svc.GetResource(ctx, "plugins.x.title"))

	require.NoError(t, svc.DeletePluginLocaleResource(ctx, "Plugins.X.Title"))
	assert.Empty(t, repo.rows)
	assert.Equal(t, "Plugins.X.Title", svc.GetResource(ctx, "Plugins.X.Title"))
}

func TestAddResource_RepositoryError(t *testing.T) {
	svc := NewService(&memRepo{rows: map[string]string{}, err: errors.New("scylla down")})
	ctx := context.Background()

	assert.Error(t, svc.AddOrUpdatePluginLocaleResource(ctx, "Plugins.X.Title", "Title"))
	assert.Equal(t, "Plugins.X.Title", svc.GetResource(ctx, "Plugins.X.Title"))
}

func TestNilRepository(t *testing.T) {
	svc := NewService(nil)
	ctx := context.Background()

	require.NoError(t, svc.AddOrUpdatePluginLocaleResource(ctx, "a", "b"))
	assert.Equal(t, "b", svc.GetResource(ctx, "A"))
}

func TestGetResource_ReloadsWrittenByOtherInstance(t *testing.T) {
	repo := &memRepo{rows: map[string]string{}}
	ctx := context.Background()
	clock := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	writer := NewService(repo)
	reader := NewService(repo)
	reader.now = func() time.Time { return clock }

	assert.Equal(t, "Plugins.X.Title", reader.GetResource(ctx, "Plugins.X.Title"))
	require.NoError(t, writer.AddOrUpdatePluginLocaleResource(ctx, "Plugins.X.Title", "Title"))

	clock = clock.Add(DefaultRefresh)
	assert.Equal(t, "Title", reader.GetResource(ctx, "Plugins.X.Title"))

	require.NoError(t, writer.DeletePluginLocaleResource(ctx, "Plugins.X.Title"))
	clock = clock.Add(DefaultRefresh)
	assert.Equal(t, "Plugins.X.Title", reader.GetResource(ctx, "Plugins.X.Title"))
}
