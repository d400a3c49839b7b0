// Command loadgen measures end-to-end marketplace throughput: it creates
// seller/buyer account pairs, then drives a mixed workload through both
// gateways and reports per-run latency and aggregate operation rate.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/ankurvarma7/online-marketplace/internal/domain"
	"github.com/ankurvarma7/online-marketplace/internal/protocol"
	"github.com/ankurvarma7/online-marketplace/internal/transport"
)

func envAddr(key, fallback string) string {
	if addr := os.Getenv(key); addr != "" {
		return addr
	}
	return fallback
}

type runner struct {
	sellerAddr string
	buyerAddr  string
	itemCount  int
}

type credentials struct {
	sellerSession uuid.UUID
	buyerSession  uuid.UUID
	sellerID      uuid.UUID
}

func main() {
	runs := pflag.Int("runs", 10, "number of concurrent runs")
	items := pflag.Int("items", 10, "items registered per run")
	pflag.Parse()

	r := &runner{
		sellerAddr: envAddr("SELLER_SERVER_ADDR", "127.0.0.1:8082"),
		buyerAddr:  envAddr("BUYER_SERVER_ADDR", "127.0.0.1:8083"),
		itemCount:  *items,
	}

	ctx := context.Background()
	start := time.Now()
	durations := make([]time.Duration, *runs)
	opCounts := make([]int, *runs)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < *runs; i++ {
		i := i
		g.Go(func() error {
			d, ops, err := r.singleRun(ctx, i)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			durations[i] = d
			opCounts[i] = ops
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "loadgen failed: %v\n", err)
		os.Exit(1)
	}
	wall := time.Since(start)

	totalOps := 0
	var totalDur time.Duration
	for i := range durations {
		totalOps += opCounts[i]
		totalDur += durations[i]
		fmt.Printf("run %2d: %4d ops in %v\n", i, opCounts[i], durations[i])
	}
	fmt.Printf("\n%d runs, %d ops total, wall time %v\n", *runs, totalOps, wall)
	fmt.Printf("avg run duration: %v\n", totalDur/time.Duration(len(durations)))
	fmt.Printf("throughput: %.1f ops/sec\n", float64(totalOps)/wall.Seconds())
}

func (r *runner) singleRun(ctx context.Context, run int) (time.Duration, int, error) {
	creds, err := r.setupAccounts(ctx, run)
	if err != nil {
		return 0, 0, err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(run)))
	start := time.Now()
	ops := 0

	// Seller side: register items, then list them back.
	itemIDs := make([]uuid.UUID, 0, r.itemCount)
	for i := 0; i < r.itemCount; i++ {
		resp, err := r.seller(ctx, protocol.SellerRegisterItem, protocol.RegisterItemRequest{
			SessionID: creds.sellerSession,
			Name:      fmt.Sprintf("item_%d_%d", run, i),
			Category:  rng.Int31n(10) + 1,
			Keywords:  []string{"load", fmt.Sprintf("kw%d", i%5)},
			Condition: domain.ConditionNew,
			SalePrice: float64(rng.Intn(10000)) / 100,
			Quantity:  int32(rng.Intn(50) + 10),
		})
		if err != nil {
			return 0, 0, err
		}
		var created protocol.ItemRegisteredPayload
		if err := resp.Decode(&created); err != nil {
			return 0, 0, err
		}
		itemIDs = append(itemIDs, created.ItemID)
		ops++
	}
	if _, err := r.seller(ctx, protocol.SellerDisplayItems,
		protocol.SessionIDRequest{SessionID: creds.sellerSession}); err != nil {
		return 0, 0, err
	}
	ops++

	// Buyer side: search, inspect, cart churn, feedback, ratings.
	for i := 0; i < r.itemCount; i++ {
		if _, err := r.buyer(ctx, protocol.BuyerSearchItems, protocol.BuyerSearchRequest{
			SessionID: creds.buyerSession,
			Keywords:  []string{"load"},
		}); err != nil {
			return 0, 0, err
		}
		ops++

		itemID := itemIDs[rng.Intn(len(itemIDs))]
		if _, err := r.buyer(ctx, protocol.BuyerGetItem, protocol.BuyerItemRequest{
			SessionID: creds.buyerSession, ItemID: itemID,
		}); err != nil {
			return 0, 0, err
		}
		ops++

		if _, err := r.buyer(ctx, protocol.BuyerAddItemToCart, protocol.BuyerCartLineRequest{
			SessionID: creds.buyerSession, ItemID: itemID, Quantity: 1,
		}); err != nil {
			return 0, 0, err
		}
		ops++

		if _, err := r.buyer(ctx, protocol.BuyerProvideFeedback, protocol.ProvideFeedbackRequest{
			SessionID: creds.buyerSession, ItemID: itemID, ThumbsUp: rng.Intn(2) == 0,
		}); err != nil {
			return 0, 0, err
		}
		ops++
	}
	if _, err := r.buyer(ctx, protocol.BuyerGetSellerRating, protocol.BuyerSellerRatingRequest{
		SessionID: creds.buyerSession, SellerID: creds.sellerID,
	}); err != nil {
		return 0, 0, err
	}
	ops++
	if _, err := r.buyer(ctx, protocol.BuyerDisplayCart,
		protocol.SessionIDRequest{SessionID: creds.buyerSession}); err != nil {
		return 0, 0, err
	}
	ops++
	if _, err := r.buyer(ctx, protocol.BuyerClearCart,
		protocol.SessionIDRequest{SessionID: creds.buyerSession}); err != nil {
		return 0, 0, err
	}
	ops++

	return time.Since(start), ops, nil
}

func (r *runner) setupAccounts(ctx context.Context, run int) (*credentials, error) {
	stamp := time.Now().UnixNano()
	sellerName := fmt.Sprintf("seller_%d_%d", run, stamp)
	buyerName := fmt.Sprintf("buyer_%d_%d", run, stamp)
	const password = "password"

	resp, err := r.seller(ctx, protocol.SellerCreateAccount,
		protocol.CredentialsRequest{Name: sellerName, Password: password})
	if err != nil {
		return nil, fmt.Errorf("create seller: %w", err)
	}
	var sellerCreated protocol.AccountCreatedPayload
	if err := resp.Decode(&sellerCreated); err != nil {
		return nil, err
	}

	resp, err = r.seller(ctx, protocol.SellerLogin,
		protocol.CredentialsRequest{Name: sellerName, Password: password})
	if err != nil {
		return nil, fmt.Errorf("seller login: %w", err)
	}
	var sellerLogin protocol.LoggedInPayload
	if err := resp.Decode(&sellerLogin); err != nil {
		return nil, err
	}

	if _, err = r.buyer(ctx, protocol.BuyerCreateAccount,
		protocol.CredentialsRequest{Name: buyerName, Password: password}); err != nil {
		return nil, fmt.Errorf("create buyer: %w", err)
	}

	resp, err = r.buyer(ctx, protocol.BuyerLogin,
		protocol.CredentialsRequest{Name: buyerName, Password: password})
	if err != nil {
		return nil, fmt.Errorf("buyer login: %w", err)
	}
	var buyerLogin protocol.LoggedInPayload
	if err := resp.Decode(&buyerLogin); err != nil {
		return nil, err
	}

	return &credentials{
		sellerSession: sellerLogin.SessionID,
		buyerSession:  buyerLogin.SessionID,
		sellerID:      sellerCreated.AccountID,
	}, nil
}

func (r *runner) seller(ctx context.Context, op protocol.MessageType, payload any) (*protocol.Message, error) {
	return call(ctx, r.sellerAddr, op, payload)
}

func (r *runner) buyer(ctx context.Context, op protocol.MessageType, payload any) (*protocol.Message, error) {
	return call(ctx, r.buyerAddr, op, payload)
}

func call(ctx context.Context, addr string, op protocol.MessageType, payload any) (*protocol.Message, error) {
	req, err := protocol.NewMessage(op, payload)
	if err != nil {
		return nil, err
	}
	resp, err := transport.Call(ctx, addr, req)
	if err != nil {
		return nil, err
	}
	if resp.Type == protocol.TypeError {
		return nil, fmt.Errorf("%s: %s", op, resp.ErrorText())
	}
	return resp, nil
}
