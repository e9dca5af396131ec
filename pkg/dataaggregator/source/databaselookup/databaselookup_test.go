package databaselookup

import (
	"reflect"
	"testing"
)

func TestStopProperties(t *testing.T) {
	properties := stopProperties(&stop{
		PrimaryIdentifier: "GB:ATCO:9100KNGX",
		PrimaryName:       "London Kings Cross",
		OtherIdentifiers: map[string]string{
			"Crs":      "kgx",
			"Tiploc":   "KNGX",
			"AtcoCode": "9100KNGX",
			"Other":    "ignored",
		},
	})

	expected := map[string]string{
		"crs":    "KGX",
		"tiploc": "KNGX",
		"atco":   "9100KNGX",
		"name":   "London Kings Cross",
	}

	if !reflect.DeepEqual(properties, expected) {
		t.Errorf("stopProperties() = %v, want %v", properties, expected)
	}
}
