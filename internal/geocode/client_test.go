package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/btrdirectory/surveyor/pkg/developments"
	"github.com/btrdirectory/surveyor/pkg/errors"
)

func TestLookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/postcodes/M12NH" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": 200,
			"result": {
				"postcode": "M1 2NH",
				"latitude": 53.4774,
				"longitude": -2.2306,
				"region": "North West",
				"country": "England",
				"admin_district": "Manchester"
			}
		}`))
	}))
	defer server.Close()

	client := New(WithBaseURL(server.URL))
	geo, err := client.Lookup(context.Background(), "M1 2NH")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	if !geo.Valid {
		t.Fatal("lookup should be valid")
	}
	if geo.Postcode != "M1 2NH" {
		t.Errorf("postcode = %q", geo.Postcode)
	}
	if geo.Region != developments.RegionNorthWest {
		t.Errorf("region = %v", geo.Region)
	}
	if geo.Latitude == nil || *geo.Latitude != 53.4774 {
		t.Errorf("latitude = %v", geo.Latitude)
	}
	if geo.AdminDistrict != "Manchester" {
		t.Errorf("admin district = %q", geo.AdminDistrict)
	}
}

func TestLookupONSYorkshireSpelling(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"status": 200,
			"result": {
				"postcode": "LS1 4AP",
				"region": "Yorkshire and the Humber",
				"country": "England"
			}
		}`))
	}))
	defer server.Close()

	geo, err := New(WithBaseURL(server.URL)).Lookup(context.Background(), "LS1 4AP")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if geo.Region != developments.RegionYorkshire {
		t.Errorf("region = %q, want directory spelling of Yorkshire", geo.Region)
	}
}

func TestLookupUnknownPostcode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status":404,"error":"Postcode not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	geo, err := New(WithBaseURL(server.URL)).Lookup(context.Background(), "ZZ99 9ZZ")
	if err != nil {
		t.Fatalf("unknown postcode must not error: %v", err)
	}
	if geo.Valid {
		t.Error("unknown postcode should be invalid")
	}
}

func TestLookupEmptyPostcode(t *testing.T) {
	geo, err := New().Lookup(context.Background(), "  ")
	if err != nil {
		t.Fatalf("empty postcode must not error: %v", err)
	}
	if geo.Valid {
		t.Error("empty postcode should be invalid")
	}
}

func TestLookupServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := New(WithBaseURL(server.URL)).Lookup(context.Background(), "M1 2NH")
	if err == nil {
		t.Fatal("server error should surface")
	}
	if !errors.IsServiceUnavailable(err) {
		t.Errorf("err = %v, want service unavailable", err)
	}
}
