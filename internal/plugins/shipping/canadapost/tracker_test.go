package canadapost

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_IsMatch(t *testing.T) {
	tracker := &Tracker{}

	assert.True(t, tracker.IsMatch("1371134583769923"))
	assert.True(t, tracker.IsMatch(" 1371134583769923 "))
	assert.True(t, tracker.IsMatch("RP123456789CA"))
	assert.True(t, tracker.IsMatch("rp123456789ca"))
	assert.False(t, tracker.IsMatch("137113458376992"))
	assert.False(t, tracker.IsMatch("1Z999AA10123456784"))
	assert.False(t, tracker.IsMatch(""))
}

func TestTracker_GetURL(t *testing.T) {
	tracker := &Tracker{}
	assert.Equal(t,
		"https://www.canadapost-postescanada.ca/track-reperage/en#/search?searchFor=1371134583769923",
		tracker.GetURL("1371134583769923"))
	assert.Equal(t,
		"https://www.canadapost-postescanada.ca/track-reperage/en#/search?searchFor=EE123456789CA",
		tracker.GetURL(" ee123456789ca "))
}

func TestTracker_GetShipmentEvents(t *testing.T) {
	f := newFixture(t, defaultCurrencies, defaultMeasures)
	f.client.EXPECT().
		GetTrackingDetail(gomock.Any(), "1371134583769923", "user:secret", true).
		Return(&TrackingDetail{
			PIN: "1371134583769923",
			SignificantEvents: []TrackingEvent{
				{Date: "2026-10-15", Time: "14:02:11", Description: "Item delivered", Site: "OTTAWA", Province: "ON"},
				{Date: "2026-10-14", Time: "08:30:00", Description: "Item processed", Site: "MONTREAL"},
			},
		}, nil)

	tracker := f.method.ShipmentTracker()
	events, err := tracker.GetShipmentEvents(context.Background(), 0, "1371134583769923")
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "Item delivered", events[0].EventName)
	assert.Equal(t, "OTTAWA, ON", events[0].Location)
	assert.Equal(t, "CA", events[0].CountryCode)
	assert.Equal(t, time.Date(2026, 10, 15, 14, 2, 11, 0, time.UTC), events[0].Date)
	assert.Equal(t, "MONTREAL", events[1].Location)
}

func TestTracker_GetShipmentEvents_NormalizesNumber(t *testing.T) {
	f := newFixture(t, defaultCurrencies, defaultMeasures)
	f.client.EXPECT().
		GetTrackingDetail(gomock.Any(), "EE123456789CA", gomock.Any(), gomock.Any()).
		Return(&TrackingDetail{PIN: "EE123456789CA"}, nil)

	events, err := f.method.ShipmentTracker().GetShipmentEvents(context.Background(), 0, " ee123456789ca")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestTracker_GetShipmentEvents_Error(t *testing.T) {
	f := newFixture(t, defaultCurrencies, defaultMeasures)
	boom := errors.New("timeout")
	f.client.EXPECT().
		GetTrackingDetail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, boom)

	_, err := f.method.ShipmentTracker().GetShipmentEvents(context.Background(), 0, "1371134583769923")
	assert.ErrorIs(t, err, boom)
}
