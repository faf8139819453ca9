// Command trackerbench runs a synthetic touch workload against a Tracker
// and exposes a Prometheus /metrics endpoint and an optional pprof endpoint.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	pmet "github.com/IvanBrykalov/usagetracker/metrics/prom"
	"github.com/IvanBrykalov/usagetracker/tracker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// ---- Flags ----
	var (
		promoteCapacity = flag.Uint("promote_cap", 10_000, "top-K capacity")
		promoteThresh   = flag.Uint("promote_thresh", 1_000, "promotion threshold (top-N)")
		removeThresh    = flag.Float64("remove_thresh", 0.01, "hysteresis band")
		decayM          = flag.Float64("decay_m", 0.9, "decay multiplier")
		decayC          = flag.Float64("decay_c", 0.1, "decay increment")

		workers  = flag.Int("workers", runtime.GOMAXPROCS(0), "number of independent tracker+worker pairs")
		duration = flag.Duration("duration", 10*time.Second, "benchmark duration")
		epoch    = flag.Duration("epoch", 10*time.Millisecond, "wall-clock time between Progress() calls")

		keys  = flag.Int("keys", 1_000_000, "keyspace size per worker")
		zipfS = flag.Float64("zipf_s", 1.1, "Zipf s > 1 (skew)")
		zipfV = flag.Float64("zipf_v", 1.0, "Zipf v")
		seed  = flag.Int64("seed", time.Now().UnixNano(), "random seed")

		pprofAddr   = flag.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
		metricsAddr = flag.String("http", ":8080", "serve Prometheus metrics at addr")
	)
	flag.Parse()

	// ---- pprof server (on DefaultServeMux) ----
	if *pprofAddr != "" {
		go func() {
			log.Printf("pprof: serving at %s", *pprofAddr)
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	// ---- Prometheus metrics (on DefaultServeMux) ----
	metrics := pmet.New(nil, "tracker", "bench", nil)
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Printf("metrics: serving at %s", *metricsAddr)
		log.Println(http.ListenAndServe(*metricsAddr, nil))
	}()

	var promotions, demotions, touches uint64

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(*workers)
	for w := 0; w < *workers; w++ {
		go func(id int) {
			defer wg.Done()

			tr, err := tracker.New(tracker.Options{
				PromoteCapacity: uint32(*promoteCapacity),
				PromoteThresh:   uint32(*promoteThresh),
				RemoveThresh:    *removeThresh,
				Decay:           tracker.Decay{M: *decayM, C: *decayC},
				PromoteFunc:     func(uint64, any) { atomic.AddUint64(&promotions, 1) },
				DemoteFunc:      func(uint64, any) { atomic.AddUint64(&demotions, 1) },
				Metrics:         metrics,
			})
			if err != nil {
				log.Fatalf("worker %d: %v", id, err)
			}
			defer tr.Close()

			// rand.Rand is not goroutine-safe; each worker gets its own.
			localR := rand.New(rand.NewSource(*seed + int64(id)*9973))
			localZipf := rand.NewZipf(localR, *zipfS, *zipfV, uint64(*keys-1))

			ticker := time.NewTicker(*epoch)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					tr.Progress()
				default:
					tr.Touch(localZipf.Uint64())
					atomic.AddUint64(&touches, 1)
				}
			}
		}(w)
	}
	wg.Wait()
	elapsed := time.Since(start)

	touchesN := atomic.LoadUint64(&touches)
	fmt.Printf("workers=%d promote_cap=%d promote_thresh=%d dur=%v seed=%d\n",
		*workers, *promoteCapacity, *promoteThresh, elapsed, *seed)
	fmt.Printf("touches=%d (%.0f touches/s)\n", touchesN, float64(touchesN)/elapsed.Seconds())
	fmt.Printf("promotions=%d  demotions=%d\n",
		atomic.LoadUint64(&promotions), atomic.LoadUint64(&demotions))
}
