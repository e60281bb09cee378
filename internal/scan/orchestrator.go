package scan

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	"github.com/classdex/classdex/internal/extract"
	"github.com/classdex/classdex/internal/index"
)

// DefaultConcurrency caps the number of simultaneously in-flight
// extractions. Unbounded fan-out exhausts file handles and memory on
// large workspaces.
const DefaultConcurrency = 30

// Orchestrator owns the scan pipeline: discovery, bounded-concurrency
// extraction, aggregation, deduplication and snapshot publication. At
// most one scan runs at a time; a request to start while one is running
// is a no-op.
type Orchestrator struct {
	discovery   *Discovery
	registry    *extract.Registry
	store       *index.Store
	notifier    Notifier
	concurrency int

	running atomic.Bool
}

// NewOrchestrator wires a scan pipeline. A nil notifier gets NoOpNotifier;
// a non-positive concurrency gets DefaultConcurrency.
func NewOrchestrator(discovery *Discovery, registry *extract.Registry, store *index.Store, notifier Notifier, concurrency int) *Orchestrator {
	if notifier == nil {
		notifier = NoOpNotifier{}
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Orchestrator{
		discovery:   discovery,
		registry:    registry,
		store:       store,
		notifier:    notifier,
		concurrency: concurrency,
	}
}

// Store returns the snapshot store the orchestrator publishes into.
func (o *Orchestrator) Store() *index.Store {
	return o.store
}

// Running reports whether a scan is currently in flight.
func (o *Orchestrator) Running() bool {
	return o.running.Load()
}

// RunScan executes one full scan and returns its stats. Calling it while
// a scan is already running returns (nil, nil) immediately without
// queueing a second run. Only a structural failure of the pipeline itself
// returns an error; per-file extraction failures are recorded in the
// returned stats and never abort the scan.
func (o *Orchestrator) RunScan(ctx context.Context) (*Stats, error) {
	if !o.running.CompareAndSwap(false, true) {
		return nil, nil
	}
	// Release on every exit path, including panics out of the body.
	defer o.running.Store(false)

	scanID := uuid.NewString()
	start := time.Now()
	o.notifier.Started()

	files, err := o.discovery.FindParseableDocuments()
	if err != nil {
		err = fmt.Errorf("discovery failed: %w", err)
		o.notifier.Failed(err)
		return nil, err
	}
	if len(files) == 0 {
		log.Printf("scan %s: no parseable documents found", scanID)
		o.notifier.Idle()
		return &Stats{ScanID: scanID, Duration: time.Since(start)}, nil
	}

	// A scan in flight cannot be cancelled; honor the context only up to
	// the point the fan-out starts.
	if err := ctx.Err(); err != nil {
		o.notifier.Failed(err)
		return nil, err
	}

	defs, failures, err := o.extractAll(files)
	if err != nil {
		err = fmt.Errorf("scan %s: %w", scanID, err)
		o.notifier.Failed(err)
		return nil, err
	}

	snapshot := index.NewSnapshot(defs)
	o.store.Publish(snapshot)

	stats := Stats{
		ScanID:            scanID,
		FilesDiscovered:   len(files),
		DefinitionsFound:  len(defs),
		UniqueDefinitions: snapshot.Len(),
		Failures:          failures,
		Duration:          time.Since(start),
	}
	log.Printf("scan %s: %d files, %d definitions (%d unique), %d failed, took %v",
		scanID, stats.FilesDiscovered, stats.DefinitionsFound,
		stats.UniqueDefinitions, len(stats.Failures), stats.Duration)
	o.notifier.Finished(stats)
	return &stats, nil
}

// extractAll fans extraction out over the file set with a hard cap on
// in-flight work. A panic escaping the fan-out is a structural failure
// and is converted into the returned error; per-file failures are
// collected and returned alongside the definitions.
func (o *Orchestrator) extractAll(files []string) (defs []index.Definition, failures []FileFailure, err error) {
	defer func() {
		if r := recover(); r != nil {
			defs, failures = nil, nil
			err = fmt.Errorf("extraction fan-out failed: %v", r)
		}
	}()

	total := len(files)
	var mu sync.Mutex
	completed := 0

	p := pool.New().WithMaxGoroutines(o.concurrency)
	for _, file := range files {
		p.Go(func() {
			fileDefs, fileErr := o.extractOne(file)

			mu.Lock()
			defer mu.Unlock()
			if fileErr != nil {
				log.Printf("warning: %v", fileErr)
				failures = append(failures, FileFailure{Path: file, Err: fileErr})
			} else {
				defs = append(defs, fileDefs...)
			}
			completed++
			o.notifier.Progress(completed, total, percentOf(completed, total))
		})
	}
	p.Wait()

	return defs, failures, nil
}

// extractOne reads and extracts a single file. A hung read stalls its
// pool slot until it returns; extraction is I/O-bound and short, so no
// per-file timeout is applied.
func (o *Orchestrator) extractOne(file string) ([]index.Definition, error) {
	extractor, ok := o.registry.Resolve(file)
	if !ok {
		// Discovery pre-filters on the registry, so this only happens when
		// a format is unregistered between discovery and extraction.
		return nil, &extract.ParseError{Path: file, Err: fmt.Errorf("unsupported format")}
	}

	content, err := os.ReadFile(file)
	if err != nil {
		return nil, &extract.ParseError{Path: file, Err: err}
	}

	return extractor.Extract(file, content)
}

// percentOf returns completed/total as a percentage rounded to two
// decimals.
func percentOf(completed, total int) float64 {
	if total == 0 {
		return 100
	}
	return math.Round(float64(completed)/float64(total)*10000) / 100
}
