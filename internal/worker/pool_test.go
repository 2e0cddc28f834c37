package worker

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"
)

// companyJob stands in for a ReportJob: it "writes" one report per company
type companyJob struct {
	index   int
	company string
	fail    bool
	work    time.Duration
	onStart func()
	onDone  func()
}

func (j *companyJob) Execute(ctx context.Context) Result {
	res := &ReportResult{Index: j.index, Entry: BatchEntry{CompanyName: j.company}}
	if j.onStart != nil {
		j.onStart()
	}
	if j.onDone != nil {
		defer j.onDone()
	}
	select {
	case <-time.After(j.work):
	case <-ctx.Done():
		res.Error = ctx.Err()
		return res
	}
	if j.fail {
		res.Error = errors.New("no data for " + j.company)
		return res
	}
	res.Files.ReportPath = "reports/" + j.company + "_report.md"
	return res
}

func companies(names ...string) []*companyJob {
	jobs := make([]*companyJob, len(names))
	for i, name := range names {
		jobs[i] = &companyJob{index: i, company: name}
	}
	return jobs
}

func TestNewPool_WorkerFloor(t *testing.T) {
	for in, want := range map[int]int{5: 5, 0: 1, -3: 1} {
		if got := NewPool(context.Background(), in).workers; got != want {
			t.Errorf("NewPool(%d): expected %d workers, got %d", in, want, got)
		}
	}
}

func TestPool_ReportsEveryCompany(t *testing.T) {
	pool := NewPool(context.Background(), 3)
	pool.Start()

	names := []string{"acme", "bolt", "cog", "dyna", "echo", "flux", "grid"}
	for _, job := range companies(names...) {
		if !pool.Submit(job) {
			t.Fatalf("submit %s rejected", job.company)
		}
	}

	results := pool.Wait()
	if len(results) != len(names) {
		t.Fatalf("expected %d results, got %d", len(names), len(results))
	}

	var got []string
	for _, r := range results {
		rr := r.(*ReportResult)
		if rr.Error != nil {
			t.Errorf("%s: unexpected error %v", rr.Entry.CompanyName, rr.Error)
		}
		if rr.Files.ReportPath != "reports/"+rr.Entry.CompanyName+"_report.md" {
			t.Errorf("%s: unexpected report path %q", rr.Entry.CompanyName, rr.Files.ReportPath)
		}
		got = append(got, rr.Entry.CompanyName)
	}
	sort.Strings(got)
	for i, name := range names {
		if got[i] != name {
			t.Errorf("expected %s at %d, got %s", name, i, got[i])
		}
	}
}

func TestPool_ConcurrencyBound(t *testing.T) {
	const workers = 4
	pool := NewPool(context.Background(), workers)
	pool.Start()

	var mu sync.Mutex
	running, peak := 0, 0
	for i := 0; i < 24; i++ {
		pool.Submit(&companyJob{
			index: i,
			work:  5 * time.Millisecond,
			onStart: func() {
				mu.Lock()
				running++
				if running > peak {
					peak = running
				}
				mu.Unlock()
			},
			onDone: func() {
				mu.Lock()
				running--
				mu.Unlock()
			},
		})
	}

	if n := len(pool.Wait()); n != 24 {
		t.Errorf("expected 24 results, got %d", n)
	}
	if peak > workers {
		t.Errorf("peak concurrency %d exceeded %d workers", peak, workers)
	}
}

func TestPool_FailedCompanyDoesNotStopBatch(t *testing.T) {
	pool := NewPool(context.Background(), 2)
	pool.Start()

	jobs := companies("acme", "bolt", "cog")
	jobs[1].fail = true
	for _, job := range jobs {
		pool.Submit(job)
	}

	failed := map[string]bool{}
	count := 0
	for r := range resultsAfterClose(pool) {
		count++
		if r.GetError() != nil {
			failed[r.(*ReportResult).Entry.CompanyName] = true
		}
	}
	if count != 3 {
		t.Fatalf("expected 3 results, got %d", count)
	}
	if len(failed) != 1 || !failed["bolt"] {
		t.Errorf("expected only bolt to fail, got %v", failed)
	}
}

// resultsAfterClose drains through Results instead of Wait
func resultsAfterClose(p *Pool) <-chan Result {
	p.Close()
	return p.Results()
}

func TestPool_ParentCancelStopsBatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := NewPool(ctx, 1)
	pool.Start()

	started := make(chan struct{})
	pool.Submit(&companyJob{company: "acme", work: time.Minute, onStart: func() { close(started) }})
	<-started
	cancel()

	if pool.Submit(&companyJob{company: "bolt"}) {
		t.Error("expected Submit to reject work after the batch context is cancelled")
	}
	pool.Shutdown()
}

func TestPool_SubmitAfterShutdown(t *testing.T) {
	pool := NewPool(context.Background(), 2)
	pool.Start()
	pool.Shutdown()

	done := make(chan bool)
	go func() { done <- pool.Submit(&companyJob{company: "late"}) }()

	select {
	case accepted := <-done:
		if accepted {
			t.Error("expected Submit to return false after shutdown")
		}
	case <-time.After(time.Second):
		t.Fatal("Submit after shutdown blocked")
	}
}

func TestPool_ShutdownCancelsInFlightReport(t *testing.T) {
	pool := NewPool(context.Background(), 1)
	pool.Start()

	started := make(chan struct{})
	pool.Submit(&companyJob{company: "slow", work: time.Minute, onStart: func() { close(started) }})
	<-started

	finished := make(chan struct{})
	go func() {
		pool.Shutdown()
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Shutdown did not cancel the running report")
	}

	for range pool.Results() {
	}
}
