package lock

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"
)

var ErrNotObtained = errors.New("блокировка не получена")

type Lock interface {
	Release(ctx context.Context) error
}

// Locker serializes work on a key across concurrent requests.
type Locker interface {
	Obtain(ctx context.Context, key string) (Lock, error)
}

// BookingKey buckets a booking by doctor and a civil day in the clinic timezone.
func BookingKey(doctorID int64, day time.Time, loc *time.Location) string {
	return fmt.Sprintf("booking:%d:%s", doctorID, day.In(loc).Format("2006-01-02"))
}

// BookingKeys returns one key per clinic day touched by [start, end), in
// ascending order. A booking across midnight locks both days.
func BookingKeys(doctorID int64, start, end time.Time, loc *time.Location) []string {
	first := start.In(loc)
	last := first
	if end.After(start) {
		last = end.Add(-time.Nanosecond).In(loc)
	}

	lastDay := time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, loc)
	var keys []string
	for day := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, loc); !day.After(lastDay); day = day.AddDate(0, 0, 1) {
		keys = append(keys, BookingKey(doctorID, day, loc))
	}
	return keys
}

type multiLock []Lock

// Release frees the locks in reverse order and joins their errors.
func (m multiLock) Release(ctx context.Context) error {
	var errs []error
	for i := len(m) - 1; i >= 0; i-- {
		if err := m[i].Release(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ObtainAll takes every key in sorted order so two callers with overlapping
// key sets cannot deadlock. On failure the locks already held are released.
func ObtainAll(ctx context.Context, locker Locker, keys []string) (Lock, error) {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)

	held := make(multiLock, 0, len(sorted))
	for _, key := range sorted {
		lk, err := locker.Obtain(ctx, key)
		if err != nil {
			releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			_ = held.Release(releaseCtx)
			cancel()
			return nil, err
		}
		held = append(held, lk)
	}
	return held, nil
}
