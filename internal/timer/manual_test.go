package timer

import (
	"testing"
	"time"

	"github.com/hammamikhairi/voicemode/internal/domain"
)

func TestManualFiresInDeadlineOrder(t *testing.T) {
	m := NewManual()
	m.Schedule(domain.Timer{Kind: domain.TimerDwell, Delay: 300 * time.Millisecond})
	m.Schedule(domain.Timer{Kind: domain.TimerReveal, Delay: 100 * time.Millisecond})
	m.Schedule(domain.Timer{Kind: domain.TimerCommit, Delay: 100 * time.Millisecond})

	var got []domain.TimerKind
	m.Advance(time.Second, func(tm domain.Timer) { got = append(got, tm.Kind) })

	want := []domain.TimerKind{domain.TimerReveal, domain.TimerCommit, domain.TimerDwell}
	if len(got) != len(want) {
		t.Fatalf("expected %d fired, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("fire %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	if m.Now() != time.Second {
		t.Fatalf("expected clock at 1s, got %s", m.Now())
	}
}

func TestManualChainsTimersScheduledWhileFiring(t *testing.T) {
	m := NewManual()
	m.Schedule(domain.Timer{Kind: domain.TimerReveal, Delay: 300 * time.Millisecond})

	fired := 0
	fire := func(domain.Timer) {
		fired++
		m.Schedule(domain.Timer{Kind: domain.TimerReveal, Delay: 300 * time.Millisecond})
	}

	m.Advance(1000*time.Millisecond, fire)
	if fired != 3 {
		t.Fatalf("expected 3 chained fires in 1s, got %d", fired)
	}
	if m.Pending() != 1 {
		t.Fatalf("expected the 4th tick pending, got %d", m.Pending())
	}
}
