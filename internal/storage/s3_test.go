package storage

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestReportObjectName(t *testing.T) {
	id := uuid.MustParse("6f1c2d3e-4b5a-4c7d-8e9f-0a1b2c3d4e5f")
	got := ReportObjectName("2024-03-01", id)
	expected := "reports/2024-03-01-6f1c2d3e-4b5a-4c7d-8e9f-0a1b2c3d4e5f.xlsx"
	if got != expected {
		t.Fatalf("expected %s, got %s", expected, got)
	}
}

func TestValidateObjectName(t *testing.T) {
	cases := []struct {
		name  string
		valid bool
	}{
		{"reports/2024-03-01-abc.xlsx", true},
		{"", false},
		{"photos/doctor.jpg", false},
		{"reports/../secrets", false},
	}
	for _, tc := range cases {
		err := validateObjectName(tc.name)
		if (err == nil) != tc.valid {
			t.Fatalf("validateObjectName(%q) expected valid=%v, got err %v", tc.name, tc.valid, err)
		}
		if err != nil && !errors.Is(err, ErrInvalidObjectName) {
			t.Fatalf("validateObjectName(%q) expected ErrInvalidObjectName, got %v", tc.name, err)
		}
	}
}
