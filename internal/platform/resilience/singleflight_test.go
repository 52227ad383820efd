package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_CollapsesConcurrentCalls(t *testing.T) {
	var g SingleFlight
	var executions int32
	var shared int32

	const callers = 16
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(callers)

	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			<-start
			val, err, wasShared := g.Do("balance:Arsenal", func() (any, error) {
				atomic.AddInt32(&executions, 1)
				time.Sleep(20 * time.Millisecond)
				return "report", nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
			}
			if val != "report" {
				t.Errorf("unexpected value: %v", val)
			}
			if wasShared {
				atomic.AddInt32(&shared, 1)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&executions); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
	if got := atomic.LoadInt32(&shared); got != callers-1 {
		t.Fatalf("expected %d shared results, got %d", callers-1, got)
	}
}

func TestSingleFlight_IndependentKeys(t *testing.T) {
	var g SingleFlight

	val, err, shared := g.Do("a", func() (any, error) { return 1, nil })
	if err != nil || shared || val != 1 {
		t.Fatalf("unexpected result for key a: %v %v %v", val, err, shared)
	}

	val, err, shared = g.Do("b", func() (any, error) { return 2, nil })
	if err != nil || shared || val != 2 {
		t.Fatalf("unexpected result for key b: %v %v %v", val, err, shared)
	}
}
