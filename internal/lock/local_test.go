package lock

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestLocalLocker_SecondObtainTimesOut(t *testing.T) {
	l := NewLocalLocker(30 * time.Millisecond)
	ctx := context.Background()

	first, err := l.Obtain(ctx, "booking:1:2024-03-01")
	if err != nil {
		t.Fatalf("first Obtain error: %v", err)
	}

	if _, err := l.Obtain(ctx, "booking:1:2024-03-01"); !errors.Is(err, ErrNotObtained) {
		t.Fatalf("expected ErrNotObtained, got %v", err)
	}

	if err := first.Release(ctx); err != nil {
		t.Fatalf("Release error: %v", err)
	}

	second, err := l.Obtain(ctx, "booking:1:2024-03-01")
	if err != nil {
		t.Fatalf("expected lock after release, got %v", err)
	}
	_ = second.Release(ctx)
}

func TestLocalLocker_KeysAreIndependent(t *testing.T) {
	l := NewLocalLocker(30 * time.Millisecond)
	ctx := context.Background()

	a, err := l.Obtain(ctx, "booking:1:2024-03-01")
	if err != nil {
		t.Fatalf("Obtain a error: %v", err)
	}
	b, err := l.Obtain(ctx, "booking:2:2024-03-01")
	if err != nil {
		t.Fatalf("expected a different doctor to lock independently, got %v", err)
	}
	_ = a.Release(ctx)
	_ = b.Release(ctx)

	if len(l.slots) != 0 {
		t.Fatalf("expected slots to be cleaned up, got %d", len(l.slots))
	}
}

func TestLocalLocker_ReleaseIsIdempotent(t *testing.T) {
	l := NewLocalLocker(30 * time.Millisecond)
	ctx := context.Background()

	lk, err := l.Obtain(ctx, "k")
	if err != nil {
		t.Fatalf("Obtain error: %v", err)
	}
	_ = lk.Release(ctx)
	_ = lk.Release(ctx)

	again, err := l.Obtain(ctx, "k")
	if err != nil {
		t.Fatalf("expected lock after double release, got %v", err)
	}
	_ = again.Release(ctx)
}

func TestLocalLocker_HonoursCancelledContext(t *testing.T) {
	l := NewLocalLocker(time.Second)
	held, err := l.Obtain(context.Background(), "k")
	if err != nil {
		t.Fatalf("Obtain error: %v", err)
	}
	defer held.Release(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	if _, err := l.Obtain(ctx, "k"); !errors.Is(err, ErrNotObtained) {
		t.Fatalf("expected ErrNotObtained, got %v", err)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Fatal("expected Obtain to return as soon as the context is cancelled")
	}
}

func TestLocalLocker_MutualExclusion(t *testing.T) {
	l := NewLocalLocker(2 * time.Second)
	ctx := context.Background()

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lk, err := l.Obtain(ctx, "k")
			if err != nil {
				t.Errorf("Obtain error: %v", err)
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			_ = lk.Release(ctx)
		}()
	}
	wg.Wait()

	if maxInside != 1 {
		t.Fatalf("expected at most one holder at a time, got %d", maxInside)
	}
}

func TestBookingKey(t *testing.T) {
	loc := time.FixedZone("UTC-06:00", -6*60*60)
	// 03:00Z on the 2nd is still the 1st in the clinic.
	start := time.Date(2024, 3, 2, 3, 0, 0, 0, time.UTC)

	if got := BookingKey(7, start, loc); got != "booking:7:2024-03-01" {
		t.Fatalf("expected booking:7:2024-03-01, got %s", got)
	}
}

func TestBookingKeys_CoversEveryTouchedDay(t *testing.T) {
	loc := time.FixedZone("UTC-06:00", -6*60*60)
	at := func(day, hour, min int) time.Time { return time.Date(2024, 3, day, hour, min, 0, 0, loc) }

	cases := []struct {
		name       string
		start, end time.Time
		expected   []string
	}{
		{"same day", at(1, 9, 0), at(1, 9, 30), []string{"booking:7:2024-03-01"}},
		{"ends at midnight", at(1, 23, 30), at(2, 0, 0), []string{"booking:7:2024-03-01"}},
		{"crosses midnight", at(1, 23, 30), at(2, 0, 30), []string{"booking:7:2024-03-01", "booking:7:2024-03-02"}},
		{"starts at midnight", at(2, 0, 0), at(2, 0, 30), []string{"booking:7:2024-03-02"}},
	}
	for _, tc := range cases {
		got := BookingKeys(7, tc.start, tc.end, loc)
		if strings.Join(got, ",") != strings.Join(tc.expected, ",") {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.expected, got)
		}
	}
}

func TestObtainAll_ReleasesHeldOnFailure(t *testing.T) {
	l := NewLocalLocker(30 * time.Millisecond)
	ctx := context.Background()

	blocker, err := l.Obtain(ctx, "booking:7:2024-03-02")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ObtainAll(ctx, l, []string{"booking:7:2024-03-02", "booking:7:2024-03-01"}); !errors.Is(err, ErrNotObtained) {
		t.Fatalf("expected ErrNotObtained, got %v", err)
	}

	// the first day must have been released after the second failed
	day1, err := l.Obtain(ctx, "booking:7:2024-03-01")
	if err != nil {
		t.Fatalf("expected first day to be free, got %v", err)
	}
	_ = day1.Release(ctx)
	_ = blocker.Release(ctx)

	all, err := ObtainAll(ctx, l, []string{"booking:7:2024-03-01", "booking:7:2024-03-02"})
	if err != nil {
		t.Fatalf("ObtainAll error: %v", err)
	}
	if err := all.Release(ctx); err != nil {
		t.Fatalf("Release error: %v", err)
	}
	if lk, err := l.Obtain(ctx, "booking:7:2024-03-02"); err != nil {
		t.Fatalf("expected second day free after release, got %v", err)
	} else {
		_ = lk.Release(ctx)
	}
}
