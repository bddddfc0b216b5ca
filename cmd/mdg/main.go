// Command mdg writes a synthetic capture file: one instrument definition and
// symbol mapping per symbol, followed by round-robin trades. The output
// replays through cmd/replay like a recorded session.
package main

import (
	"flag"
	"log"
	"strings"
	"time"

	"marketwire/internal/capture"
	"marketwire/internal/codec"
	"marketwire/internal/mdg"
	"marketwire/internal/schema"
)

func main() {
	out := flag.String("out", "testdata/synthetic.mwc", "output capture file")
	dataset := flag.String("dataset", "SIM", "dataset name for the capture header")
	symbols := flag.String("symbols", "ESZ3,NQZ3", "comma-separated symbols")
	ticks := flag.Int("ticks", 100, "number of trades to generate")
	basePrice := flag.Float64("base-price", 100, "base trade price")
	baseSize := flag.Uint("base-size", 1, "trade size")
	interval := flag.Duration("interval", time.Millisecond, "event-time spacing between trades")
	version := flag.Uint("schema-version", uint(schema.V2), "wire schema version (1 or 2)")
	flag.Parse()

	if *ticks <= 0 {
		log.Fatalf("ticks must be > 0")
	}
	ver := schema.Version(*version)
	if ver != schema.V1 && ver != schema.V2 {
		log.Fatalf("unsupported schema version: %d", *version)
	}

	generator, err := mdg.NewGenerator(mdg.Config{
		Symbols:    strings.Split(*symbols, ","),
		BasePrice:  schema.Price(*basePrice * schema.PriceScale),
		BaseSize:   uint32(*baseSize),
		StartNs:    uint64(time.Now().UTC().UnixNano()),
		IntervalNs: uint64(*interval),
	})
	if err != nil {
		log.Fatalf("generator init failed: %v", err)
	}

	writer, err := capture.Create(*out, capture.FileHeader{
		SchemaVersion: ver,
		Dataset:       *dataset,
	})
	if err != nil {
		log.Fatalf("capture init failed: %v", err)
	}

	encoder := codec.NewEncoder(nil)
	appended := 0
	appendRecord := func(rec schema.Record) {
		raw, err := encoder.Encode(rec, ver)
		if err != nil {
			log.Fatalf("encode failed: %v", err)
		}
		if err := writer.Append(raw); err != nil {
			log.Fatalf("append failed: %v", err)
		}
		appended++
	}

	for _, rec := range generator.Bootstrap() {
		appendRecord(rec)
	}
	for i := 0; i < *ticks; i++ {
		appendRecord(generator.Next())
	}

	if err := writer.Close(); err != nil {
		log.Fatalf("capture close failed: %v", err)
	}
	log.Printf("wrote %d records to %s", appended, *out)
}
