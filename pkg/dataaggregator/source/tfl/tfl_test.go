package tfl

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/travigo/journeyresolver/pkg/ctdf"
	"github.com/travigo/journeyresolver/pkg/dataaggregator/source"

	_ "time/tzdata"
)

const journeyResultsFixture = `{
  "journeys": [
    {
      "startDateTime": "2026-10-17T09:00:00",
      "arrivalDateTime": "2026-10-17T09:20:00",
      "duration": 20,
      "legs": [
        {
          "duration": 5,
          "instruction": {"summary": "Walk to Canary Wharf"},
          "departureTime": "2026-10-17T09:00:00",
          "arrivalTime": "2026-10-17T09:05:00",
          "departurePoint": {"commonName": "Start", "lat": 51.5, "lon": -0.02},
          "arrivalPoint": {"naptanId": "940GZZLUCYF", "commonName": "Canary Wharf Underground Station", "lat": 51.503, "lon": -0.018},
          "mode": {"id": "walking"},
          "distance": 350.0,
          "routeOptions": []
        },
        {
          "duration": 15,
          "instruction": {"summary": "Jubilee line to Bond Street"},
          "departureTime": "2026-10-17T09:05:00",
          "arrivalTime": "2026-10-17T09:20:00",
          "departurePoint": {"naptanId": "940GZZLUCYF", "commonName": "Canary Wharf Underground Station", "lat": 51.503, "lon": -0.018,
            "additionalProperties": [{"category": "Direction", "key": "crs", "value": "CWX"}]},
          "arrivalPoint": {"naptanId": "940GZZLUBND", "stationNaptan": "HUBBDS", "commonName": "Bond Street Underground Station", "lat": 51.514, "lon": -0.149},
          "mode": {"id": "tube"},
          "routeOptions": [{"name": "Jubilee", "lineIdentifier": {"id": "jubilee"}}]
        }
      ]
    }
  ]
}`

func newTestSource(t *testing.T, handler http.HandlerFunc) Source {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	london, _ := time.LoadLocation("Europe/London")

	return New("test-key", server.URL, 5*time.Second, london)
}

func TestPlanJourney(t *testing.T) {
	var requestedPath string
	s := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		if r.URL.Query().Get("app_key") != "test-key" {
			t.Errorf("app_key not sent")
		}
		if r.Header.Get("User-Agent") == "" {
			t.Errorf("user agent not sent")
		}
		w.Write([]byte(journeyResultsFixture))
	})

	itineraries, err := s.PlanJourney(context.Background(), "51.500000,-0.020000", "51.514000,-0.149000", nil)
	if err != nil {
		t.Fatalf("PlanJourney() error = %v", err)
	}

	if requestedPath != "/Journey/JourneyResults/51.500000,-0.020000/to/51.514000,-0.149000" {
		t.Errorf("requested path = %q", requestedPath)
	}
	if len(itineraries) != 1 {
		t.Fatalf("got %d itineraries, want 1", len(itineraries))
	}

	itinerary := itineraries[0]
	if itinerary.Duration != 20*time.Minute {
		t.Errorf("duration = %v, want 20m", itinerary.Duration)
	}
	if itinerary.StartDateTime.Location().String() != "Europe/London" {
		t.Errorf("start time location = %v", itinerary.StartDateTime.Location())
	}
	if len(itinerary.Legs) != 2 {
		t.Fatalf("got %d legs, want 2", len(itinerary.Legs))
	}

	walk := itinerary.Legs[0]
	if walk.Mode != ctdf.TransportModeWalking || walk.DistanceMeters == nil || *walk.DistanceMeters != 350 {
		t.Errorf("walking leg = %+v", walk)
	}

	tube := itinerary.Legs[1]
	if tube.Mode != ctdf.TransportModeTube {
		t.Errorf("mode = %q, want tube", tube.Mode)
	}
	if tube.LineID != "jubilee" {
		t.Errorf("line = %q, want jubilee", tube.LineID)
	}
	if tube.ArrivalPoint.ParentID != "HUBBDS" {
		t.Errorf("arrival parent = %q, want HUBBDS", tube.ArrivalPoint.ParentID)
	}
	if tube.DeparturePoint.Properties["crs"] != "CWX" {
		t.Errorf("departure properties = %v", tube.DeparturePoint.Properties)
	}
}

func TestPlanJourneyDisambiguation(t *testing.T) {
	s := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMultipleChoices)
		w.Write([]byte(`{"toLocationDisambiguation": {}}`))
	})

	itineraries, err := s.PlanJourney(context.Background(), "a", "b", nil)
	if err != nil {
		t.Fatalf("PlanJourney() error = %v", err)
	}
	if len(itineraries) != 0 {
		t.Errorf("got %d itineraries, want none", len(itineraries))
	}
}

func TestPlanJourneyProviderError(t *testing.T) {
	s := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := s.PlanJourney(context.Background(), "a", "b", nil)

	var providerError *ctdf.ProviderError
	if !errors.As(err, &providerError) {
		t.Fatalf("error = %v, want ProviderError", err)
	}
	if providerError.Provider != ProviderName {
		t.Errorf("provider = %q", providerError.Provider)
	}
}

func TestStopArrivals(t *testing.T) {
	var requestedPath string
	s := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Write([]byte(`[
			{"naptanId": "940GZZLUCYF", "lineId": "jubilee", "platformName": "Westbound - Platform 1",
			 "destinationName": "Stanmore Underground Station", "timeToStation": 120, "expectedArrival": "2026-10-17T08:02:00Z"},
			{"naptanId": "940GZZLUBND", "lineId": "central", "towards": "Ealing Broadway", "timeToStation": 60,
			 "expectedArrival": "2026-10-17T08:01:00Z"}
		]`))
	})

	arrivals, err := s.StopArrivals(context.Background(), []string{"940GZZLUCYF", "940GZZLUBND"})
	if err != nil {
		t.Fatalf("StopArrivals() error = %v", err)
	}

	if requestedPath != "/StopPoint/940GZZLUCYF,940GZZLUBND/Arrivals" {
		t.Errorf("requested path = %q", requestedPath)
	}
	if len(arrivals) != 2 {
		t.Fatalf("got %d arrivals, want 2", len(arrivals))
	}
	if arrivals[0].DestinationName != "Stanmore" {
		t.Errorf("destination = %q, want Stanmore", arrivals[0].DestinationName)
	}
	if arrivals[0].SecondsToArrival != 120 || arrivals[0].Platform != "Westbound - Platform 1" {
		t.Errorf("arrival = %+v", arrivals[0])
	}
	if arrivals[1].DestinationName != "Ealing Broadway" {
		t.Errorf("towards fallback = %q, want Ealing Broadway", arrivals[1].DestinationName)
	}
	if arrivals[1].StopID != "940GZZLUBND" || arrivals[1].LineID != "central" {
		t.Errorf("identifiers = %q %q", arrivals[1].StopID, arrivals[1].LineID)
	}
}

func TestStopArrivalsNoStops(t *testing.T) {
	s := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	arrivals, err := s.StopArrivals(context.Background(), nil)
	if err != nil || arrivals != nil {
		t.Errorf("StopArrivals(nil) = %v, %v", arrivals, err)
	}
}

func TestLineArrivals(t *testing.T) {
	var requestedPath string
	s := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Write([]byte(`[{"naptanId": "940GZZLUCYF", "lineId": "jubilee", "destinationName": "Stratford Underground Station", "timeToStation": 30}]`))
	})

	arrivals, err := s.LineArrivals(context.Background(), "jubilee", "940GZZLUCYF")
	if err != nil {
		t.Fatalf("LineArrivals() error = %v", err)
	}
	if requestedPath != "/Line/jubilee/Arrivals/940GZZLUCYF" {
		t.Errorf("requested path = %q", requestedPath)
	}
	if len(arrivals) != 1 || arrivals[0].DestinationName != "Stratford" {
		t.Errorf("arrivals = %+v", arrivals)
	}
}

func TestStopPointLookup(t *testing.T) {
	s := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/StopPoint/Search/Oxford Circus" {
			t.Errorf("requested path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"total": 1, "matches": [{"id": "HUBOXC", "name": "Oxford Circus", "lat": 51.515, "lon": -0.141}]}`))
	})

	endpoint, err := s.Lookup(context.Background(), ctdf.LocationQuery{Name: "Oxford Circus"})
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if endpoint.DisplayName != "Oxford Circus" || endpoint.SourceStationID != "HUBOXC" {
		t.Errorf("endpoint = %+v", endpoint)
	}
	if endpoint.Coordinates.Latitude != 51.515 {
		t.Errorf("latitude = %v", endpoint.Coordinates.Latitude)
	}
}

func TestStopPointLookupNoMatches(t *testing.T) {
	s := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total": 0, "matches": []}`))
	})

	_, err := s.Lookup(context.Background(), ctdf.LocationQuery{Name: "Atlantis"})
	if !errors.Is(err, NoStopPointMatchError) {
		t.Errorf("error = %v, want NoStopPointMatchError", err)
	}

	_, err = s.Lookup(context.Background(), ctdf.LocationQuery{UseCurrentLocation: true})
	if !errors.Is(err, source.UnsupportedSourceError) {
		t.Errorf("error = %v, want UnsupportedSourceError", err)
	}
}
