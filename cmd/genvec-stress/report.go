package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"
)

type Report struct {
	// Configuration
	Duration      time.Duration
	InitialValues int
	RemoveChance  int
	Seed          int64

	// Results
	Pushes      int64
	Removes     int64
	Lookups     int64
	StaleProbes int64
	Batches     int64
	TotalTime   time.Duration
	FinalLive   int
	FinalFree   int
	FinalCap    int
	BatchTime   Stats

	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Generational Vector Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Initial Values:** {{.InitialValues}}
- **Remove Chance:** {{.RemoveChance}}%
- **Seed:** {{.Seed}}

## Operation Counts
- **Pushes:** {{.Pushes}}
- **Removes:** {{.Removes}}
- **Verified Lookups:** {{.Lookups}}
- **Stale-Handle Probes:** {{.StaleProbes}}

## Performance Results
- **Total Batches:** {{.Batches}}
- **Total Test Time:** {{.TotalTime}}
- **Batch Time (1000 ops + verify):**
  - **Avg:** {{.BatchTime.Avg}}
  - **Min:** {{.BatchTime.Min}}
  - **Max:** {{.BatchTime.Max}}

## Final Vector State
- **Live:** {{.FinalLive}}
- **Free Slots:** {{.FinalFree}}
- **Capacity:** {{.FinalCap}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	if err := tmpl.Execute(w, r); err != nil {
		return fmt.Errorf("execute report template: %w", err)
	}
	return nil
}
