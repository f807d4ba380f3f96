package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
)

type fakeUserLister struct {
	ids []string
	err error
}

func (f *fakeUserLister) GetAllUserIDs() ([]string, error) {
	return f.ids, f.err
}

type savedSnapshot struct {
	userID     string
	totalValue float64
}

type fakeSnapshotStore struct {
	saved []savedSnapshot
}

func (f *fakeSnapshotStore) SaveSnapshot(userID string, totalValue, totalInvested, profit, profitPercentage float64) error {
	f.saved = append(f.saved, savedSnapshot{userID: userID, totalValue: totalValue})
	return nil
}

func validTokenSource(t *testing.T) *TokenSource {
	t.Helper()
	return NewTokenSource(func(ctx context.Context) (string, error) {
		return signedToken(t, time.Now().Add(time.Hour)), nil
	})
}

func TestSnapshotServiceRun(t *testing.T) {
	store := &fakeStore{holdings: []models.PortfolioHolding{
		{ID: "1", UserID: "u1", Symbol: "BTC", CoinID: "bitcoin", Amount: 1, AvgPrice: 20000},
		{ID: "2", UserID: "u2", Symbol: "ETH", CoinID: "ethereum", Amount: 2, AvgPrice: 2000},
	}}
	prices := &fakePrices{batch: models.SimplePrices{
		"bitcoin":  {"usd": 30000},
		"ethereum": {"usd": 2500},
	}}
	portfolio := NewPortfolioService(store, prices)
	snapshots := &fakeSnapshotStore{}
	users := &fakeUserLister{ids: []string{"u1", "u2"}}

	svc := NewSnapshotService(users, portfolio, snapshots, validTokenSource(t))

	if err := svc.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(snapshots.saved) != 2 {
		t.Fatalf("se guardaron %d snapshots, want 2", len(snapshots.saved))
	}
	for _, snap := range snapshots.saved {
		switch snap.userID {
		case "u1":
			if !almostEqual(snap.totalValue, 30000) {
				t.Errorf("u1 totalValue = %f, want 30000", snap.totalValue)
			}
		case "u2":
			if !almostEqual(snap.totalValue, 5000) {
				t.Errorf("u2 totalValue = %f, want 5000", snap.totalValue)
			}
		default:
			t.Errorf("snapshot para usuario inesperado %q", snap.userID)
		}
	}
}

func TestSnapshotServiceRunWithoutCredential(t *testing.T) {
	// Sin credencial el job no debe tocar el almacén
	tokens := NewTokenSource(func(ctx context.Context) (string, error) {
		return "", errors.New("proveedor caído")
	})
	snapshots := &fakeSnapshotStore{}
	users := &fakeUserLister{ids: []string{"u1"}}
	portfolio := NewPortfolioService(&fakeStore{}, &fakePrices{})

	svc := NewSnapshotService(users, portfolio, snapshots, tokens)

	err := svc.Run(context.Background())
	if !errors.Is(err, ErrNoToken) {
		t.Fatalf("Run() error = %v, want ErrNoToken", err)
	}
	if len(snapshots.saved) != 0 {
		t.Errorf("se guardaron snapshots sin credencial vigente")
	}
}
