package relation

import (
	"math"
	"reflect"
	"testing"

	"planner.opentransit.org/internal/models"
)

const metersPerDegree = 111194.92664455873

func squareArea(id string, center models.Position, sideMeters float64) *models.Area {
	halfLat := sideMeters / 2 / metersPerDegree
	halfLng := halfLat / math.Cos(center.Lat*math.Pi/180)
	ring := []models.Position{
		{Lat: center.Lat - halfLat, Lng: center.Lng - halfLng},
		{Lat: center.Lat - halfLat, Lng: center.Lng + halfLng},
		{Lat: center.Lat + halfLat, Lng: center.Lng + halfLng},
		{Lat: center.Lat + halfLat, Lng: center.Lng - halfLng},
		{Lat: center.Lat - halfLat, Lng: center.Lng - halfLng},
	}
	return &models.Area{ID: id, Latlngs: [][]models.Position{ring}}
}

func TestDestinationsInArea(t *testing.T) {
	center := models.Position{Lat: 45.0, Lng: 9.0}
	area := squareArea("area_1", center, 1000)

	inside := &models.Destination{ID: 1, Lat: center.Lat, Lng: center.Lng}
	outside := &models.Destination{ID: 2, Lat: center.Lat + 1, Lng: center.Lng}
	corner := area.Ring()[0]
	onBoundary := &models.Destination{ID: 3, Lat: corner.Lat, Lng: corner.Lng}

	got := DestinationsInArea(area, []*models.Destination{inside, outside, onBoundary})
	want := []int{1, 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected destinations %v in area (boundary inclusive), got %v", want, got)
	}

	t.Run("undrawn area contains nothing", func(t *testing.T) {
		empty := &models.Area{ID: "area_2"}
		if got := DestinationsInArea(empty, []*models.Destination{inside}); len(got) != 0 {
			t.Errorf("Expected no destinations in an undrawn area, got %v", got)
		}
	})
}

func TestDestinationsNearStop(t *testing.T) {
	stop := &models.Stop{ID: 1, Lat: 45.0, Lng: 9.0}
	near := &models.Destination{ID: 1, Lat: 45.0 + 200/metersPerDegree, Lng: 9.0}
	far := &models.Destination{ID: 2, Lat: 45.0 + 400/metersPerDegree, Lng: 9.0}

	got := DestinationsNearStop(stop, []*models.Destination{near, far}, ProximityThresholdMeters)
	if !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("Expected only destination 1 within %dm, got %v", ProximityThresholdMeters, got)
	}
}

func TestUpdateAll(t *testing.T) {
	center := models.Position{Lat: 45.0, Lng: 9.0}
	area := squareArea("area_1", center, 1000)
	area.DestinationIDs = []int{99}

	stop := &models.Stop{ID: 1, Lat: center.Lat, Lng: center.Lng, NearbyDestinationIDs: []int{99}}
	dest := &models.Destination{ID: 5, Lat: center.Lat, Lng: center.Lng}

	UpdateAll([]*models.Stop{stop}, []*models.Area{area}, []*models.Destination{dest})

	if !reflect.DeepEqual(area.DestinationIDs, []int{5}) {
		t.Errorf("Expected area containment list replaced with [5], got %v", area.DestinationIDs)
	}
	if !reflect.DeepEqual(stop.NearbyDestinationIDs, []int{5}) {
		t.Errorf("Expected stop proximity list replaced with [5], got %v", stop.NearbyDestinationIDs)
	}
}
