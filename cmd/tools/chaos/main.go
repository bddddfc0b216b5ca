// Command chaos soaks the client against a replayed capture with injected
// foreign failures. Each run opens a fresh handle; a run ends at end of
// stream or at the first intercepted fault. The exit report shows how many
// runs survived and what the fault isolation cost.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"

	"marketwire/internal/capture"
	"marketwire/internal/chaos"
	"marketwire/internal/client"
	"marketwire/internal/obs"
	"marketwire/pkg/exception"
)

func main() {
	file := flag.String("file", "", "capture file to replay")
	runs := flag.Int("runs", 10, "number of sessions to soak")
	seed := flag.Int64("seed", 0, "RNG seed (0=now)")
	panicRate := flag.Float64("panic-rate", 0.01, "catastrophic failure probability per call [0-1]")
	maxDelay := flag.Duration("max-delay", 0, "max injected delay per call")
	flag.Parse()

	if *file == "" {
		log.Fatalf("no capture file: pass -file")
	}
	if *runs <= 0 {
		log.Fatalf("runs must be > 0")
	}

	metrics := obs.NewMetrics()
	completed, faulted := 0, 0
	for i := 0; i < *runs; i++ {
		runSeed := *seed
		if runSeed != 0 {
			runSeed += int64(i)
		}
		fault, err := soak(*file, chaos.Config{
			Seed:      runSeed,
			PanicRate: *panicRate,
			MaxDelay:  *maxDelay,
		}, metrics)
		if err != nil {
			log.Fatalf("run %d failed: %v", i, err)
		}
		if fault {
			faulted++
		} else {
			completed++
		}
	}

	snap := metrics.Snapshot()
	records := uint64(0)
	for _, count := range snap.RecordCounts {
		records += count
	}
	log.Printf("soak done: runs=%d completed=%d faulted=%d records=%d decode_errors=%d",
		*runs, completed, faulted, records, snap.DecodeErrors)
	if snap.Faults != uint64(faulted) {
		log.Fatalf("fault accounting mismatch: metrics=%d runs=%d", snap.Faults, faulted)
	}
}

// soak replays the capture through one handle. It reports whether the run
// ended in an intercepted fault.
func soak(path string, cfg chaos.Config, metrics *obs.Metrics) (bool, error) {
	inner, err := capture.NewTransport(capture.TransportConfig{Path: path})
	if err != nil {
		return false, err
	}
	transport, err := chaos.Wrap(inner, cfg)
	if err != nil {
		return false, err
	}

	handle, err := client.Open(client.Config{
		Transport: transport,
		Dataset:   "CHAOS",
		Metrics:   metrics,
	})
	if err != nil {
		// Open itself crosses the boundary, so it can absorb the fault.
		if errors.Is(err, exception.ErrForeignCallFailure) {
			return true, nil
		}
		return false, err
	}
	defer handle.Close()

	for {
		_, err := handle.NextRecord(context.Background())
		if err == nil {
			continue
		}
		if err == io.EOF {
			return false, nil
		}
		if errors.Is(err, exception.ErrForeignCallFailure) {
			return true, nil
		}
		return false, err
	}
}
