// slotprobe fires N concurrent orders at one collection slot and reports
// how many were booked. With max orders per slot M, a correct server books
// exactly min(N, M) of them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CafeOrderService/internal/client"
	"github.com/m04kA/SMC-CafeOrderService/pkg/logger"
)

const (
	outcomeBooked      = "booked"
	outcomeUnavailable = "slot_unavailable"
	outcomeValidation  = "validation"
	outcomeInFlight    = "in_flight"
	outcomeRateLimited = "rate_limited"
	outcomeFailed      = "booking_failed"
	outcomeUnexpected  = "unexpected"
)

type result struct {
	outcome string
	latency time.Duration
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "service base URL")
	date := flag.String("date", "", "pickup date YYYY-MM-DD (default: first available date)")
	tod := flag.String("time", "", "pickup time HH:MM (default: first selectable slot)")
	n := flag.Int("n", 10, "number of concurrent orders")
	timeout := flag.Duration("timeout", 10*time.Second, "per-request timeout")
	flag.Parse()

	log := logger.NewWithWriter(os.Stderr, "info")

	if *n <= 0 {
		log.Error("-n must be positive")
		os.Exit(2)
	}

	ctx := context.Background()
	probe := client.New(*baseURL, "slotprobe", "")

	slotDate, slotTime, err := pickSlot(ctx, probe, *date, *tod)
	if err != nil {
		log.Error("Failed to pick a slot: %v", err)
		os.Exit(1)
	}
	fmt.Printf("Target slot: %s %s, concurrent orders: %d\n", slotDate, slotTime, *n)

	results := run(ctx, *baseURL, slotDate, slotTime, *n, *timeout)
	report(results)
}

// pickSlot выбирает первый доступный слот, если дата или время не заданы
func pickSlot(ctx context.Context, c *client.Client, date, tod string) (string, string, error) {
	if date == "" {
		dates, err := c.GetAvailableDates(ctx)
		if err != nil {
			return "", "", err
		}
		for _, d := range dates {
			if d.IsSelectable {
				date = d.Date
				break
			}
		}
		if date == "" {
			return "", "", errors.New("no selectable dates")
		}
	}

	if tod != "" {
		return date, tod, nil
	}

	slots, err := c.GetAvailableSlots(ctx, date)
	if err != nil {
		return "", "", err
	}
	for _, s := range slots.Slots {
		if s.IsSelectable {
			return date, s.Time, nil
		}
	}
	return "", "", fmt.Errorf("no selectable slots on %s", date)
}

func run(ctx context.Context, baseURL, date, tod string, n int, timeout time.Duration) []result {
	results := make([]result, n)
	start := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			// У каждого клиента свой пользователь, чтобы не упереться в лимит запросов
			userID := "probe-" + uuid.NewString()
			c := client.New(baseURL, userID, userID+"@probe.local")

			reqCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			<-start
			begin := time.Now()
			_, err := c.PlaceOrder(reqCtx, &client.PlaceOrderRequest{
				PickupDate: date,
				PickupTime: tod,
				Items:      []client.Item{{Name: "Flat white", Price: 3.4, Quantity: 1}},
			})
			results[i] = result{outcome: classify(err), latency: time.Since(begin)}
		}(i)
	}

	close(start)
	wg.Wait()
	return results
}

func classify(err error) string {
	switch {
	case err == nil:
		return outcomeBooked
	case errors.Is(err, client.ErrSlotUnavailable):
		return outcomeUnavailable
	case errors.Is(err, client.ErrValidation):
		return outcomeValidation
	case errors.Is(err, client.ErrOrderInFlight):
		return outcomeInFlight
	case errors.Is(err, client.ErrRateLimited):
		return outcomeRateLimited
	case errors.Is(err, client.ErrBookingFailed):
		return outcomeFailed
	default:
		return outcomeUnexpected
	}
}

func report(results []result) {
	counts := make(map[string]int)
	latencies := make([]time.Duration, 0, len(results))
	for _, r := range results {
		counts[r.outcome]++
		latencies = append(latencies, r.latency)
	}

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	outcomes := make([]string, 0, len(counts))
	for o := range counts {
		outcomes = append(outcomes, o)
	}
	sort.Strings(outcomes)

	fmt.Println("Outcomes:")
	for _, o := range outcomes {
		fmt.Printf("  %-18s %d\n", o, counts[o])
	}
	fmt.Printf("Latency p50=%v p95=%v max=%v\n",
		percentile(latencies, 0.50), percentile(latencies, 0.95), latencies[len(latencies)-1])
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(float64(len(sorted)-1) * p)
	return sorted[idx]
}
