package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/kamstrup/intmap"
	"github.com/plus3/genvec"
)

// packHandle folds a handle into a single integer key for the live-value
// table: position in the upper half, generation in the lower.
func packHandle(h genvec.Handle[uint32]) uint64 {
	return uint64(h.Index())<<32 | uint64(h.Generation())
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	initial := flag.Int("values", 10000, "The initial number of values to push.")
	removeChance := flag.Int("remove-chance", 40, "Percent chance a churn step removes instead of pushes.")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Seed for the operation stream.")
	flag.Parse()

	log.Println("Starting generational vector stress test...")
	log.Printf("Seed: %d\n", *seed)
	rng := rand.New(rand.NewSource(*seed))

	// 1. Setup the vector, the expected-value table and the handle pools
	vec := genvec.New[int64]()
	expected := intmap.New[uint64, int64](*initial * 2)
	var live []genvec.Handle[uint32]
	var dead []genvec.Handle[uint32]

	// 2. Populate with initial values
	log.Printf("Populating vector with %d values...\n", *initial)
	var nextValue int64
	for i := 0; i < *initial; i++ {
		h := vec.Push(nextValue)
		expected.Put(packHandle(h), nextValue)
		live = append(live, h)
		nextValue++
	}
	log.Println("Population complete.")

	report := &Report{
		Duration:      *duration,
		InitialValues: *initial,
		RemoveChance:  *removeChance,
		Seed:          *seed,
		BatchTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	// 3. Run the churn loop
	log.Printf("Running churn for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			batchStart := time.Now()
			for step := 0; step < 1000; step++ {
				churn(vec, expected, &live, &dead, rng, removeChance, &nextValue, report)
			}
			verify(vec, expected, live, dead, rng, report)
			report.BatchTime.Samples = append(report.BatchTime.Samples, time.Since(batchStart))
			report.Batches++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.FinalLive = vec.Len()
	report.FinalFree = vec.NumFree()
	report.FinalCap = vec.Cap()
	report.BatchTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	// 4. Drain and cross-check the survivor count
	drained := 0
	for range vec.Drain() {
		drained++
	}
	if drained != expected.Len() {
		log.Fatalf("drain yielded %d values, expected-value table holds %d", drained, expected.Len())
	}
	log.Println("Churn finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}

// churn performs one random push or remove and keeps the bookkeeping
// tables in sync with the vector.
func churn(
	vec *genvec.Vector[int64],
	expected *intmap.Map[uint64, int64],
	live *[]genvec.Handle[uint32],
	dead *[]genvec.Handle[uint32],
	rng *rand.Rand,
	removeChance *int,
	nextValue *int64,
	report *Report,
) {
	if len(*live) > 0 && rng.Intn(100) < *removeChance {
		i := rng.Intn(len(*live))
		h := (*live)[i]
		(*live)[i] = (*live)[len(*live)-1]
		*live = (*live)[:len(*live)-1]

		if res := vec.Remove(h); res != genvec.RemoveOK {
			log.Fatalf("remove of live handle %v returned %v", h, res)
		}
		expected.Del(packHandle(h))
		*dead = append(*dead, h)
		if len(*dead) > 4096 {
			*dead = (*dead)[1:]
		}
		report.Removes++
		return
	}

	h := vec.Push(*nextValue)
	expected.Put(packHandle(h), *nextValue)
	*live = append(*live, h)
	*nextValue++
	report.Pushes++
}

// verify spot-checks the invariants after every batch: live handles
// resolve to their recorded values, dead handles stay dead, and the
// counters line up.
func verify(
	vec *genvec.Vector[int64],
	expected *intmap.Map[uint64, int64],
	live []genvec.Handle[uint32],
	dead []genvec.Handle[uint32],
	rng *rand.Rand,
	report *Report,
) {
	if vec.Len() != len(live) || vec.Len() != expected.Len() {
		log.Fatalf("live count mismatch: vector %d, handle pool %d, table %d",
			vec.Len(), len(live), expected.Len())
	}
	if vec.Len()+vec.NumFree() > vec.Cap() {
		log.Fatalf("slot accounting broken: %d live + %d free exceeds capacity %d",
			vec.Len(), vec.NumFree(), vec.Cap())
	}

	for i := 0; i < 100 && len(live) > 0; i++ {
		h := live[rng.Intn(len(live))]
		want, _ := expected.Get(packHandle(h))
		got, ok := vec.Get(h)
		if !ok {
			log.Fatalf("live handle %v did not resolve", h)
		}
		if got != want {
			log.Fatalf("handle %v resolved to %d, want %d", h, got, want)
		}
		report.Lookups++
	}

	for i := 0; i < 100 && len(dead) > 0; i++ {
		h := dead[rng.Intn(len(dead))]
		if _, ok := vec.Get(h); ok {
			log.Fatalf("dead handle %v resolved", h)
		}
		if res := vec.Remove(h); res == genvec.RemoveOK {
			log.Fatalf("dead handle %v removed a value", h)
		}
		report.StaleProbes++
	}
}
