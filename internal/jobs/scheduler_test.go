package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
)

type countingPurger struct {
	calls atomic.Int32
	err   error
}

func (p *countingPurger) PurgeExpired(ctx context.Context) (int64, error) {
	p.calls.Add(1)
	return 3, p.err
}

func TestPurgeSessionsCallsStore(t *testing.T) {
	purger := &countingPurger{}
	s := NewScheduler(purger, "0 */30 * * * *", zerolog.Nop())

	s.PurgeSessions()
	purger.err = errors.New("store down")
	s.PurgeSessions()

	if got := purger.calls.Load(); got != 2 {
		t.Fatalf("PurgeExpired calls = %d, want 2", got)
	}
}

func TestStartRejectsInvalidSchedule(t *testing.T) {
	s := NewScheduler(&countingPurger{}, "every now and then", zerolog.Nop())
	if err := s.Start(); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
}

func TestStartAndStop(t *testing.T) {
	s := NewScheduler(&countingPurger{}, "0 */30 * * * *", zerolog.Nop())
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	<-s.Stop().Done()
}

func TestEmptyScheduleDisablesPurge(t *testing.T) {
	s := NewScheduler(&countingPurger{}, "", zerolog.Nop())
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	<-s.Stop().Done()
}
