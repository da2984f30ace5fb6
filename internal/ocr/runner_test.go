package ocr

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

// stubEngine recognizes instantly with mode-tagged output, failing the modes
// listed in failModes.
type stubEngine struct {
	failModes map[Mode]bool
	delay     time.Duration
}

func (s *stubEngine) Recognize(ctx context.Context, imageBytes []byte, mode Mode) (string, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if s.failModes[mode] {
		return "", errors.New("recognition failed")
	}
	return fmt.Sprintf("text-%s", mode), nil
}

func (s *stubEngine) Version() (string, error) {
	return "stub", nil
}

func newTestPool(t *testing.T, workers int) *WorkerPool {
	t.Helper()
	pool := NewWorkerPool(workers)
	pool.Start()
	t.Cleanup(pool.Close)
	return pool
}

func TestRunPasses_DeterministicOrder(t *testing.T) {
	runner := NewRunner(&stubEngine{}, newTestPool(t, 4), time.Second)

	// Concurrent execution must still slot results by mode index.
	for i := 0; i < 10; i++ {
		passes := runner.RunPasses(context.Background(), []byte("img"), PANModes)
		if len(passes) != len(PANModes) {
			t.Fatalf("Expected %d passes, got %d", len(PANModes), len(passes))
		}
		for j, mode := range PANModes {
			if passes[j].Mode != mode {
				t.Fatalf("Expected pass %d to carry mode %s, got %s", j, mode, passes[j].Mode)
			}
			expected := fmt.Sprintf("text-%s", mode)
			if passes[j].Text != expected {
				t.Fatalf("Expected pass %d text %q, got %q", j, expected, passes[j].Text)
			}
		}
	}
}

func TestRunPasses_FailedPassDegrades(t *testing.T) {
	engine := &stubEngine{failModes: map[Mode]bool{ModeSingleBlock: true}}
	runner := NewRunner(engine, newTestPool(t, 2), time.Second)

	passes := runner.RunPasses(context.Background(), []byte("img"), AadhaarModes)

	if passes[1].Err == nil {
		t.Error("Expected failing mode to carry its error")
	}
	corpus := BuildCorpus(passes)
	expected := "text-general_block\ntext-sparse_text"
	if corpus != expected {
		t.Errorf("Expected corpus %q, got %q", expected, corpus)
	}
}

func TestRunPasses_TimeoutDegradesPass(t *testing.T) {
	engine := &stubEngine{delay: 200 * time.Millisecond}
	runner := NewRunner(engine, newTestPool(t, 2), 10*time.Millisecond)

	passes := runner.RunPasses(context.Background(), []byte("img"), []Mode{ModeGeneralBlock})

	if passes[0].Err == nil {
		t.Error("Expected timed-out pass to carry an error")
	}
	if corpus := BuildCorpus(passes); corpus != "" {
		t.Errorf("Expected empty corpus after timeout, got %q", corpus)
	}
}

func TestWorkerPool_RunsSubmittedJobs(t *testing.T) {
	pool := newTestPool(t, 2)

	done := make(chan int, 8)
	for i := 0; i < 8; i++ {
		i := i
		pool.Submit(func() { done <- i })
	}

	seen := make(map[int]bool)
	for i := 0; i < 8; i++ {
		select {
		case v := <-done:
			seen[v] = true
		case <-time.After(time.Second):
			t.Fatal("Timed out waiting for jobs")
		}
	}
	if len(seen) != 8 {
		t.Errorf("Expected all 8 jobs to run, got %d", len(seen))
	}
}
