package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"freight-matching-service/internal/domain"
	"freight-matching-service/internal/platform/obs"
)

// PairingMode selects which route/truck pairs a batch considers.
type PairingMode string

const (
	// PairingIndexAligned pairs routes[i] with trucks[i] only.
	PairingIndexAligned PairingMode = "index_aligned"
	// PairingCrossProduct tries every route with every truck.
	PairingCrossProduct PairingMode = "cross_product"
)

// ParsePairingMode accepts the configuration spelling of a pairing mode.
// An empty string selects PairingIndexAligned.
func ParsePairingMode(s string) (PairingMode, error) {
	switch m := PairingMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return PairingIndexAligned, nil
	case PairingIndexAligned, PairingCrossProduct:
		return m, nil
	default:
		return "", fmt.Errorf("parse pairing mode %q: %w", s, ErrUnsupportedPairing)
	}
}

// BatchResult maps order ids to their chosen result. Orders without an id are
// keyed by -(index+1) so they never collide with stored ids.
type BatchResult map[int]ProcessingResult

type candidate struct {
	route domain.Route
	truck domain.Truck
}

func (p *OrderProcessor) candidates(routes []domain.Route, trucks []domain.Truck) []candidate {
	var out []candidate
	if p.pairing == PairingCrossProduct {
		out = make([]candidate, 0, len(routes)*len(trucks))
		for _, r := range routes {
			for _, t := range trucks {
				out = append(out, candidate{route: r, truck: t})
			}
		}
		return out
	}

	n := min(len(routes), len(trucks))
	out = make([]candidate, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, candidate{route: routes[i], truck: trucks[i]})
	}
	return out
}

// ProcessOrderBatch picks, for every order, the valid candidate with the best
// efficiency score. When no candidate is valid the order is reported against
// (routes[0], trucks[0]); with no routes or trucks it gets a no-resources failure.
// Orders are evaluated concurrently; candidate selection per order is sequential.
func (p *OrderProcessor) ProcessOrderBatch(
	ctx context.Context,
	orders []domain.Order,
	routes []domain.Route,
	trucks []domain.Truck,
) (_ BatchResult, err error) {
	batchID := uuid.NewString()
	defer obs.Time(ctx, p.log, "matching.ProcessOrderBatch batch_id="+batchID)(&err)

	if p.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.callTimeout)
		defer cancel()
	}

	start := time.Now()
	pairs := p.candidates(routes, trucks)
	results := make([]ProcessingResult, len(orders))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, order := range orders {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = p.bestMatch(gctx, order, pairs, routes, trucks)
			return gctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("process order batch %s: %w", batchID, err)
	}

	out := make(BatchResult, len(orders))
	valid := 0
	for i, o := range orders {
		key := o.OrderID
		if key == 0 {
			key = -(i + 1)
		}
		out[key] = results[i]
		if results[i].IsValid {
			valid++
		}
	}

	p.recorder.RecordBatch(len(orders), time.Since(start))
	p.log.Infof("batch_id=%s orders=%d candidates=%d matched=%d pairing=%s",
		batchID, len(orders), len(pairs), valid, p.pairing)

	return out, nil
}

func (p *OrderProcessor) bestMatch(
	ctx context.Context,
	order domain.Order,
	pairs []candidate,
	routes []domain.Route,
	trucks []domain.Truck,
) ProcessingResult {
	var (
		best      ProcessingResult
		bestScore float64
		found     bool
	)

	for _, c := range pairs {
		if ctx.Err() != nil {
			break
		}
		res := p.ValidateOrderForRoute(order, c.route, c.truck)
		if !res.IsValid {
			continue
		}
		// Ties keep the earlier candidate.
		if score := EfficiencyScore(res.Metrics); !found || score > bestScore {
			best, bestScore, found = res, score, true
		}
	}

	if found {
		return best
	}

	if len(routes) == 0 || len(trucks) == 0 {
		return ProcessingResult{
			IsValid: false,
			Errors: []ValidationError{
				newValidationError(MissingDataDetail{Reason: "no_resources"}, "%s", ErrNoResources.Error()),
			},
			Metrics: map[string]float64{},
		}
	}

	return p.ValidateOrderForRoute(order, routes[0], trucks[0])
}
