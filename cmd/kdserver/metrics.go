package main

import (
	"log"
	"runtime"
	"time"
)

// RuntimeMetrics holds memory, goroutine and index statistics
type RuntimeMetrics struct {
	Goroutines   int     `json:"goroutines"`
	AllocMB      float64 `json:"alloc_mb"`       // currently allocated heap
	TotalAllocMB float64 `json:"total_alloc_mb"` // cumulative allocated (includes freed)
	SysMB        float64 `json:"sys_mb"`         // total memory from OS
	HeapObjects  uint64  `json:"heap_objects"`
	NumGC        uint32  `json:"num_gc"`
	IndexPoints  int     `json:"index_points"`
}

// collectMetrics reads runtime statistics and the number of indexed points
func (s *Server) collectMetrics() RuntimeMetrics {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return RuntimeMetrics{
		Goroutines:   runtime.NumGoroutine(),
		AllocMB:      float64(m.Alloc) / 1024 / 1024,
		TotalAllocMB: float64(m.TotalAlloc) / 1024 / 1024,
		SysMB:        float64(m.Sys) / 1024 / 1024,
		HeapObjects:  m.HeapObjects,
		NumGC:        m.NumGC,
		IndexPoints:  s.index.Len(),
	}
}

// startMetricsLogger logs metrics every interval until stop is closed
func (s *Server) startMetricsLogger(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m := s.collectMetrics()
				log.Printf("[metrics] points=%d goroutines=%d alloc=%.2fMB sys=%.2fMB gc_cycles=%d",
					m.IndexPoints, m.Goroutines, m.AllocMB, m.SysMB, m.NumGC)
			case <-stop:
				return
			}
		}
	}()
}
