package pacing

import (
	"testing"
	"time"

	"github.com/Jamyw7g/wingif/pkg/cancellation"
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		fps     int
		wantErr bool
	}{
		{0, true},
		{-5, true},
		{1, false},
		{5, false},
		{255, false},
		{256, true},
	}

	for _, tt := range tests {
		_, err := New(tt.fps)
		if (err != nil) != tt.wantErr {
			t.Errorf("New(%d): error = %v, wantErr %v", tt.fps, err, tt.wantErr)
		}
	}
}

func TestPacer_Interval(t *testing.T) {
	tests := []struct {
		fps  int
		want time.Duration
	}{
		{1, time.Second},
		{5, 200 * time.Millisecond},
		{10, 100 * time.Millisecond},
		{25, 40 * time.Millisecond},
	}

	for _, tt := range tests {
		p, err := New(tt.fps)
		if err != nil {
			t.Fatalf("New(%d): %v", tt.fps, err)
		}
		if p.Interval() != tt.want {
			t.Errorf("fps %d: expected interval %v, got %v", tt.fps, tt.want, p.Interval())
		}
	}
}

func TestPacer_Timestamp(t *testing.T) {
	p, err := New(5)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		got := p.Timestamp(i+1) - p.Timestamp(i)
		if got != 200*time.Millisecond {
			t.Errorf("frame %d: expected 200ms step, got %v", i, got)
		}
	}
	if p.Timestamp(9) != 1800*time.Millisecond {
		t.Errorf("expected frame 9 at 1.8s, got %v", p.Timestamp(9))
	}
}

func TestPacer_WaitSleepsResidual(t *testing.T) {
	p, err := New(20) // 50ms
	if err != nil {
		t.Fatal(err)
	}
	tok := cancellation.New()

	start := time.Now()
	if p.Wait(start, tok) {
		t.Fatal("expected no cancellation")
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("returned after %v, expected at least one interval", elapsed)
	}
}

func TestPacer_WaitSubtractsElapsed(t *testing.T) {
	p, err := New(10) // 100ms
	if err != nil {
		t.Fatal(err)
	}
	base := time.Now()
	p.now = func() time.Time { return base.Add(80 * time.Millisecond) }
	tok := cancellation.New()

	begin := time.Now()
	p.Wait(base, tok)
	if elapsed := time.Since(begin); elapsed > 80*time.Millisecond {
		t.Errorf("waited %v, expected about 20ms residual", elapsed)
	}
}

func TestPacer_WaitOverrunStillPolls(t *testing.T) {
	p, err := New(10)
	if err != nil {
		t.Fatal(err)
	}
	base := time.Now()
	p.now = func() time.Time { return base.Add(time.Second) }

	tok := cancellation.New()
	if p.Wait(base, tok) {
		t.Error("expected no cancellation")
	}

	// Overran the interval but the settle poll still observes a fire
	tok.Fire()
	if !p.Wait(base, tok) {
		t.Error("expected settle poll to observe cancellation")
	}
}

func TestPacer_WaitReturnsOnFire(t *testing.T) {
	p, err := New(1) // 1s interval
	if err != nil {
		t.Fatal(err)
	}
	tok := cancellation.New()

	go func() {
		time.Sleep(20 * time.Millisecond)
		tok.Fire()
	}()

	start := time.Now()
	if !p.Wait(start, tok) {
		t.Fatal("expected cancellation")
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("cancellation took %v, expected prompt return", elapsed)
	}
}
