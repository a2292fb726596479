package transcript

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"mouthpiece/speech"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, nil))

type stubEngine struct {
	mu       sync.Mutex
	blocking bool
	speakErr error
	spoke    []string
	rate     int
	volume   float64
}

func (e *stubEngine) SetVoice(id string) error { return nil }

func (e *stubEngine) SetRate(wpm int) error {
	e.rate = wpm
	return nil
}

func (e *stubEngine) SetVolume(vol float64) error {
	e.volume = vol
	return nil
}

func (e *stubEngine) Speak(text string, keepGoing func() bool) error {
	e.mu.Lock()
	e.spoke = append(e.spoke, text)
	e.mu.Unlock()
	if e.blocking {
		for keepGoing() {
			time.Sleep(time.Millisecond)
		}
		return nil
	}
	return e.speakErr
}

func (e *stubEngine) Stop() {}

// engineRecorder tracks every handle a manager's factory minted. The
// factory runs on session goroutines, hence the lock.
type engineRecorder struct {
	mu      sync.Mutex
	engines []*stubEngine
	make    func() *stubEngine
}

func (r *engineRecorder) factory() (speech.Engine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.make()
	r.engines = append(r.engines, e)
	return e, nil
}

func (r *engineRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.engines)
}

func (r *engineRecorder) last() *stubEngine {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.engines) == 0 {
		return nil
	}
	return r.engines[len(r.engines)-1]
}

func (r *engineRecorder) waitCount(t *testing.T, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if r.count() >= n {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("expected %d engine handles, got %d", n, r.count())
}

func newTestManager(make func() *stubEngine) (*Manager, *engineRecorder) {
	rec := &engineRecorder{make: make}
	return NewManager(testLogger, rec.factory), rec
}

func settle(t *testing.T, m *Manager) error {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		done, err := m.Poll()
		if done {
			return err
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("session never settled")
	return nil
}

func TestSubmitWhitespaceIsNoop(t *testing.T) {
	m, rec := newTestManager(func() *stubEngine { return &stubEngine{} })
	for _, input := range []string{"", "   ", "\n\t  \n"} {
		if _, ok := m.Submit(input); ok {
			t.Errorf("Submit(%q) should be a no-op", input)
		}
	}
	if m.Count() != 0 {
		t.Errorf("history should be empty, has %d entries", m.Count())
	}
	if rec.count() != 0 {
		t.Errorf("no speech should have started, got %d engines", rec.count())
	}
}

func TestSubmitAssignsSequentialIDs(t *testing.T) {
	m, _ := newTestManager(func() *stubEngine { return &stubEngine{} })
	m.AutoSpeak = false
	first, ok := m.Submit("Hello")
	if !ok || first.ID != 1 {
		t.Fatalf("first message should get id 1, got %+v", first)
	}
	second, _ := m.Submit("World")
	if second.ID != 2 {
		t.Errorf("second message should get id 2, got %d", second.ID)
	}
	m.Delete(second.ID)
	third, _ := m.Submit("again")
	if third.ID != 3 {
		t.Errorf("ids are monotonic, never reused; got %d", third.ID)
	}
}

func TestSpeakCancelsPreviousFirst(t *testing.T) {
	var calls atomic.Int32
	var first atomic.Pointer[speech.Session]
	var firstCancelledAtSecondStart atomic.Bool
	factory := func() (speech.Engine, error) {
		if calls.Add(1) == 2 {
			if s := first.Load(); s != nil {
				firstCancelledAtSecondStart.Store(s.Cancelled())
			}
		}
		return &stubEngine{blocking: true}, nil
	}
	m := NewManager(testLogger, factory)
	s1 := m.Speak("Hello")
	first.Store(s1)
	time.Sleep(10 * time.Millisecond)
	s2 := m.Speak("World")
	if s1 == s2 {
		t.Fatal("expected a fresh session per speak request")
	}
	if !s1.Cancelled() {
		t.Error("previous session must be cancelled when a new one starts")
	}
	if !s1.Wait(time.Second) {
		t.Fatal("cancelled session did not settle")
	}
	if err := s1.Err(); err != nil {
		t.Errorf("cancellation must not register as failure: %v", err)
	}
	s2.Cancel()
	if !s2.Wait(time.Second) {
		t.Fatal("second session did not settle")
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 engine handles, got %d", calls.Load())
	}
	if !firstCancelledAtSecondStart.Load() {
		t.Error("cancel signal must precede the new session's engine construction")
	}
}

func TestAutoSpeakScenario(t *testing.T) {
	m, rec := newTestManager(func() *stubEngine { return &stubEngine{blocking: true} })
	m.Submit("Hello")
	m.Submit("World")
	rec.waitCount(t, 2)
	m.Stop()
	if err := settle(t, m); err != nil {
		t.Errorf("unexpected failure: %v", err)
	}
	msgs := m.Messages()
	if len(msgs) != 2 || msgs[0].Text != "Hello" || msgs[1].Text != "World" {
		t.Errorf("unexpected history: %+v", msgs)
	}
	if msgs[0].ID != 1 || msgs[1].ID != 2 {
		t.Errorf("unexpected ids: %d, %d", msgs[0].ID, msgs[1].ID)
	}
}

func TestStopSettlesSession(t *testing.T) {
	m, _ := newTestManager(func() *stubEngine { return &stubEngine{blocking: true} })
	m.Speak("long utterance")
	if !m.Speaking() {
		t.Fatal("expected a running session")
	}
	m.Stop()
	done, err := m.Poll()
	if !done {
		t.Error("Poll should report done after Stop")
	}
	if err != nil {
		t.Errorf("stop must not surface a failure: %v", err)
	}
}

func TestPollSurfacesFailureOnce(t *testing.T) {
	boom := errors.New("synthesis failed")
	m, _ := newTestManager(func() *stubEngine { return &stubEngine{speakErr: boom} })
	s := m.Speak("Hello")
	if !s.Wait(time.Second) {
		t.Fatal("session did not settle")
	}
	done, err := m.Poll()
	if !done {
		t.Fatal("Poll should report done")
	}
	if !errors.Is(err, boom) {
		t.Errorf("Poll should surface the captured failure, got %v", err)
	}
	// the failure is surfaced exactly once
	done, err = m.Poll()
	if !done || err != nil {
		t.Errorf("second Poll should be clean, got done=%v err=%v", done, err)
	}
}

func TestPollWhileRunning(t *testing.T) {
	m, _ := newTestManager(func() *stubEngine { return &stubEngine{blocking: true} })
	m.Speak("Hello")
	done, err := m.Poll()
	if done || err != nil {
		t.Errorf("Poll on a running session should be (false, nil), got (%v, %v)", done, err)
	}
	m.Stop()
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	m, _ := newTestManager(func() *stubEngine { return &stubEngine{blocking: true} })
	m.AutoSpeak = false
	m.Submit("one")
	m.Submit("two")
	m.Submit("three")
	s := m.Speak("unrelated utterance")
	if !m.Delete(2) {
		t.Fatal("Delete(2) should remove a message")
	}
	msgs := m.Messages()
	if len(msgs) != 2 || msgs[0].ID != 1 || msgs[1].ID != 3 {
		t.Errorf("unexpected history after delete: %+v", msgs)
	}
	if m.Delete(2) {
		t.Error("Delete of a missing id should report false")
	}
	if !s.Running() {
		t.Error("delete must not touch the in-progress session")
	}
	m.Stop()
}

var exportLineRE = regexp.MustCompile(`^\[(\d{3,}) (\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})\] (.+)$`)

func TestExportRoundTrip(t *testing.T) {
	m, _ := newTestManager(func() *stubEngine { return &stubEngine{} })
	m.AutoSpeak = false
	inputs := []string{"Hello", "second line", "третья запись"}
	for _, text := range inputs {
		m.Submit(text)
	}
	var buf bytes.Buffer
	if err := m.Export(&buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	lines := bytes.Split(bytes.TrimRight(buf.Bytes(), "\n"), []byte("\n"))
	if len(lines) != len(inputs) {
		t.Fatalf("got %d lines, expected %d", len(lines), len(inputs))
	}
	msgs := m.Messages()
	for i, line := range lines {
		parts := exportLineRE.FindStringSubmatch(string(line))
		if parts == nil {
			t.Fatalf("line %d does not match export format: %q", i, line)
		}
		if parts[1] != fmt.Sprintf("%03d", msgs[i].ID) {
			t.Errorf("line %d id = %s; expected %03d", i, parts[1], msgs[i].ID)
		}
		if parts[2] != msgs[i].CreatedAt.Format("2006-01-02 15:04:05") {
			t.Errorf("line %d timestamp = %s", i, parts[2])
		}
		if parts[3] != msgs[i].Text {
			t.Errorf("line %d text = %q; expected %q", i, parts[3], msgs[i].Text)
		}
	}
}

func TestRatePassthroughAtBounds(t *testing.T) {
	m, rec := newTestManager(func() *stubEngine { return &stubEngine{} })
	for _, rate := range []int{RateMin, RateMax} {
		m.Rate = rate
		s := m.Speak("check")
		if !s.Wait(time.Second) {
			t.Fatal("session did not settle")
		}
		if got := rec.last().rate; got != rate {
			t.Errorf("rate %d must pass through unmodified, engine got %d", rate, got)
		}
	}
}

func TestClampRate(t *testing.T) {
	cases := map[int]int{
		RateMin: RateMin,
		RateMax: RateMax,
		79:      RateMin,
		300:     RateMax,
		180:     180,
	}
	for in, expected := range cases {
		if got := ClampRate(in); got != expected {
			t.Errorf("ClampRate(%d) = %d; expected %d", in, got, expected)
		}
	}
}

func TestVolumeFromPercent(t *testing.T) {
	cases := map[int]float64{
		0:   0.0,
		100: 1.0,
		50:  0.5,
		-5:  0.0,
		150: 1.0,
	}
	for in, expected := range cases {
		if got := VolumeFromPercent(in); got != expected {
			t.Errorf("VolumeFromPercent(%d) = %f; expected %f", in, got, expected)
		}
	}
}
