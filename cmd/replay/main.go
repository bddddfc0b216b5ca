package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"

	pyroscope "github.com/grafana/pyroscope-go"
	"github.com/yanun0323/pkg/sys"

	"marketwire/internal/capture"
	"marketwire/internal/chaos"
	"marketwire/internal/client"
	"marketwire/internal/native"
	"marketwire/internal/obs"
	"marketwire/internal/ops"
	"marketwire/internal/schema"
	"marketwire/internal/store"
	"marketwire/internal/symbolmap"
	"marketwire/pkg/conn"
)

func main() {
	file := flag.String("file", "", "capture file to replay")
	configPath := flag.String("config", "", "JSON config file (optional)")
	speed := flag.Float64("speed", 0, "replay speed (1=real-time, 0=no pacing)")
	quiet := flag.Bool("quiet", false, "suppress per-record output")
	profile := flag.Bool("profile", false, "start the pyroscope profiler")
	profileAddr := flag.String("profile-addr", "http://localhost:4040", "pyroscope server address")
	flag.Parse()

	var loaded ops.Loaded
	if *configPath != "" {
		cfg, err := ops.Load(*configPath)
		if err != nil {
			log.Fatalf("config load failed: %v", err)
		}
		loaded = cfg
	}

	path := *file
	if path == "" {
		path = loaded.Replay.Path
	}
	if path == "" {
		log.Fatalf("no capture file: pass -file or set replay.path in the config")
	}
	pace := *speed
	if pace == 0 {
		pace = loaded.Replay.Speed
	}

	if *profile {
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: "marketwire/replay",
			ServerAddress:   *profileAddr,
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocObjects,
				pyroscope.ProfileAllocSpace,
			},
		})
		if err != nil {
			log.Fatalf("pyroscope start failed: %v", err)
		}
		defer func() {
			_ = profiler.Stop()
		}()
	}

	transport, err := buildTransport(path, pace, loaded)
	if err != nil {
		log.Fatalf("transport init failed: %v", err)
	}

	metrics := obs.NewMetrics()
	handle, err := client.Open(client.Config{
		Transport: transport,
		Dataset:   datasetOf(loaded),
		Version:   loaded.Session.SchemaVersion,
		Metrics:   metrics,
		QueueSize: loaded.Session.QueueSize,
	})
	if err != nil {
		log.Fatalf("open failed: %v", err)
	}
	defer handle.Close()

	instruments, cleanup, err := buildStore(loaded)
	if err != nil {
		log.Fatalf("store init failed: %v", err)
	}
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-sys.Shutdown()
		cancel()
	}()

	if err := run(ctx, handle, instruments, loaded, *quiet); err != nil {
		log.Fatalf("replay failed: %v", err)
	}
	printSnapshot(metrics.Snapshot())
}

func buildTransport(path string, speed float64, loaded ops.Loaded) (native.Transport, error) {
	transport, err := capture.NewTransport(capture.TransportConfig{Path: path, Speed: speed})
	if err != nil {
		return nil, err
	}
	if !loaded.Features.EnableChaos {
		return transport, nil
	}
	return chaos.Wrap(transport, loaded.Chaos)
}

// The capture header names the dataset; the client only needs a non-empty
// hint before Start fills in metadata.
func datasetOf(loaded ops.Loaded) string {
	if loaded.Session.Dataset != "" {
		return loaded.Session.Dataset
	}
	return "CAPTURE"
}

func buildStore(loaded ops.Loaded) (*store.Instruments, func(), error) {
	if !loaded.Features.EnableStore {
		return nil, func() {}, nil
	}
	pg, err := conn.New(loaded.Store)
	if err != nil {
		return nil, nil, err
	}
	instruments, err := store.NewInstruments(pg)
	if err != nil {
		_ = pg.Close()
		return nil, nil, err
	}
	return instruments, func() { _ = pg.Close() }, nil
}

func run(ctx context.Context, handle *client.Handle, instruments *store.Instruments, loaded ops.Loaded, quiet bool) error {
	pit := symbolmap.NewPitMap()
	dataset := handle.Metadata().Dataset

	var index int
	for {
		rec, err := handle.NextRecord(ctx)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		index++
		pit.OnRecord(rec)
		if !quiet {
			printRecord(index, rec, pit)
		}

		if instruments != nil {
			if def, ok := rec.(schema.InstrumentDef); ok {
				if err := instruments.Upsert(ctx, dataset, def); err != nil {
					return err
				}
			}
		}
	}
}

func printRecord(index int, rec schema.Record, pit *symbolmap.PitMap) {
	hdr := rec.Header()
	symbol, _ := pit.Get(hdr.InstrumentID)

	switch r := rec.(type) {
	case schema.Trade:
		fmt.Printf("%06d trade inst=%d sym=%s px=%s sz=%d side=%s ts=%d\n",
			index, hdr.InstrumentID, symbol, r.Price, r.Size, r.Side, hdr.TsEvent)
	case schema.Ohlcv:
		fmt.Printf("%06d ohlcv inst=%d sym=%s o=%s h=%s l=%s c=%s v=%d\n",
			index, hdr.InstrumentID, symbol, r.Open, r.High, r.Low, r.Close, r.Volume)
	case schema.InstrumentDef:
		fmt.Printf("%06d def inst=%d raw=%s class=%s exch=%s\n",
			index, hdr.InstrumentID, r.RawSymbol, r.InstrumentClass, r.Exchange)
	case schema.SymbolMapping:
		fmt.Printf("%06d map inst=%d %s -> %s [%d, %d)\n",
			index, hdr.InstrumentID, r.STypeInSymbol, r.STypeOutSymbol, r.StartTs, r.EndTs)
	case schema.Status:
		fmt.Printf("%06d status inst=%d action=%s reason=%s trading=%s\n",
			index, hdr.InstrumentID, r.Action, r.Reason, r.IsTrading)
	case schema.ErrorMsg:
		fmt.Printf("%06d error %s\n", index, r.Err)
	case schema.SystemMsg:
		fmt.Printf("%06d system %s\n", index, r.Msg)
	default:
		fmt.Printf("%06d rtype=%#x inst=%d len=%d\n", index, hdr.RType, hdr.InstrumentID, hdr.ByteLen())
	}
}

func printSnapshot(snap obs.Snapshot) {
	fmt.Printf("decoded: errors=%d faults=%d faulted_calls=%d cancelled=%d\n",
		snap.DecodeErrors, snap.Faults, snap.FaultedCalls, snap.Cancelled)
	for rtype, count := range snap.RecordCounts {
		fmt.Printf("  rtype %#x: %d\n", rtype, count)
	}
	lat := snap.DecodeLatency
	if lat.Count > 0 {
		fmt.Printf("decode latency: count=%d min=%s avg=%s max=%s\n",
			lat.Count, lat.Min, lat.Avg, lat.Max)
	}
}
