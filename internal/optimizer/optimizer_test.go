package optimizer

import (
	"math/rand"
	"testing"

	"courierdispatch/internal/domain"
)

func mustCoord(t *testing.T, lat, lon string) domain.Coord {
	t.Helper()
	c, err := domain.ParseCoord(lat, lon)
	if err != nil {
		t.Fatalf("ParseCoord: %v", err)
	}
	return c
}

func TestOptimizeEmptyIsNoOp(t *testing.T) {
	depot := mustCoord(t, "0.0", "0.0")
	deliveries := []domain.Delivery{}

	oldCrow, newCrow := Optimize(depot, deliveries, rand.New(rand.NewSource(1)))
	if oldCrow != 0 || newCrow != 0 {
		t.Fatalf("Optimize(empty) = (%f, %f), want (0, 0)", oldCrow, newCrow)
	}
}

func TestOptimizeSingletonIsNoOp(t *testing.T) {
	depot := mustCoord(t, "0.0", "0.0")
	dest := mustCoord(t, "1.0", "1.0")
	deliveries := []domain.Delivery{{Item: "only", Location: dest}}

	oldCrow, newCrow := Optimize(depot, deliveries, rand.New(rand.NewSource(1)))
	if oldCrow != newCrow {
		t.Fatalf("Optimize(singleton): old=%f new=%f, want equal", oldCrow, newCrow)
	}
	if deliveries[0].Item != "only" {
		t.Fatalf("singleton delivery reordered unexpectedly: %v", deliveries)
	}
}

func TestOptimizeNeverWorsensResult(t *testing.T) {
	depot := mustCoord(t, "0.0", "0.0")
	deliveries := []domain.Delivery{
		{Item: "far", Location: mustCoord(t, "10.0", "10.0")},
		{Item: "near", Location: mustCoord(t, "0.1", "0.1")},
		{Item: "mid", Location: mustCoord(t, "5.0", "5.0")},
		{Item: "side", Location: mustCoord(t, "5.0", "-5.0")},
	}

	oldCrow, newCrow := Optimize(depot, deliveries, rand.New(rand.NewSource(42)))
	if newCrow > oldCrow {
		t.Fatalf("Optimize worsened tour: old=%f new=%f", oldCrow, newCrow)
	}

	items := make(map[string]bool, len(deliveries))
	for _, d := range deliveries {
		items[d.Item] = true
	}
	for _, want := range []string{"far", "near", "mid", "side"} {
		if !items[want] {
			t.Errorf("delivery %q missing after optimize: %v", want, deliveries)
		}
	}
}

func TestOptimizeDeterministicForFixedSeed(t *testing.T) {
	depot := mustCoord(t, "0.0", "0.0")
	build := func() []domain.Delivery {
		return []domain.Delivery{
			{Item: "a", Location: mustCoord(t, "10.0", "10.0")},
			{Item: "b", Location: mustCoord(t, "0.1", "0.1")},
			{Item: "c", Location: mustCoord(t, "5.0", "5.0")},
		}
	}

	d1 := build()
	_, cost1 := Optimize(depot, d1, rand.New(rand.NewSource(7)))

	d2 := build()
	_, cost2 := Optimize(depot, d2, rand.New(rand.NewSource(7)))

	if cost1 != cost2 {
		t.Fatalf("costs differ across identical seeds: %f vs %f", cost1, cost2)
	}
	for i := range d1 {
		if d1[i].Item != d2[i].Item {
			t.Fatalf("order differs across identical seeds at %d: %q vs %q", i, d1[i].Item, d2[i].Item)
		}
	}
}
