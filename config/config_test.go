package config

import (
	"reflect"
	"testing"
	"time"
)

func TestParseLocation(t *testing.T) {
	cases := []struct {
		value  string
		offset int
	}{
		{"", 0},
		{"UTC", 0},
		{"UTC-06:00", -6 * 3600},
		{"UTC+05:30", 5*3600 + 30*60},
		{" UTC-03:00 ", -3 * 3600},
	}

	ref := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for _, tc := range cases {
		loc, err := ParseLocation(tc.value)
		if err != nil {
			t.Fatalf("ParseLocation(%q) error: %v", tc.value, err)
		}
		if _, offset := ref.In(loc).Zone(); offset != tc.offset {
			t.Fatalf("ParseLocation(%q) expected offset %d, got %d", tc.value, tc.offset, offset)
		}
	}
}

func TestParseLocation_Invalid(t *testing.T) {
	for _, value := range []string{"UTC-6", "UTC+25:00", "Mars/Olympus_Mons"} {
		if _, err := ParseLocation(value); err == nil {
			t.Fatalf("ParseLocation(%q) expected error", value)
		}
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("CLINIC_TIMEZONE", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("BOOKING_LOCK_WAIT", "")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if cfg.Clinic.Timezone != "UTC-06:00" {
		t.Fatalf("expected default timezone UTC-06:00, got %q", cfg.Clinic.Timezone)
	}
	if cfg.Clinic.BookingLockMax != 2*time.Second {
		t.Fatalf("expected default lock wait 2s, got %s", cfg.Clinic.BookingLockMax)
	}
	expected := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.HTTP.AllowedOrigins, expected) {
		t.Fatalf("expected origins %v, got %v", expected, cfg.HTTP.AllowedOrigins)
	}
}

func TestNewConfig_RejectsBadTimezone(t *testing.T) {
	t.Setenv("CLINIC_TIMEZONE", "UTC-6")
	if _, err := NewConfig(); err == nil {
		t.Fatal("expected error for malformed timezone")
	}
}
