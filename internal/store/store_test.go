package store

import (
	"testing"
	"time"

	"rughaven_back_end/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_ProductLookup(t *testing.T) {
	s := New()
	p := models.Product{ID: primitive.NewObjectID(), Name: "Jaipur Medallion Rug", Price: 18999}
	s.UpsertProduct(p)

	got, ok := s.ProductByID(p.ID.Hex())
	if !ok || got.Name != p.Name {
		t.Fatalf("lookup failed: %v %v", got, ok)
	}

	if _, ok := s.ProductByID(primitive.NewObjectID().Hex()); ok {
		t.Fatal("unknown id should report not found")
	}
}

func TestStore_UpsertReplacesInPlace(t *testing.T) {
	s := New()
	p := models.Product{ID: primitive.NewObjectID(), Name: "Nordic Lines Rug", Price: 7499}
	s.UpsertProduct(p)

	p.Price = 6999
	s.UpsertProduct(p)

	if got := s.Products(); len(got) != 1 || got[0].Price != 6999 {
		t.Fatalf("upsert should replace, got %+v", got)
	}

	s.RemoveProduct(p.ID.Hex())
	if got := s.Products(); len(got) != 0 {
		t.Fatalf("remove failed, got %+v", got)
	}
}

func TestStore_OrderLookupAndObserver(t *testing.T) {
	s := New()

	events := make(chan Event, 4)
	s.Subscribe(func(ev Event) { events <- ev })

	o := models.Order{ID: primitive.NewObjectID(), Status: "placed", CreatedAt: time.Now()}
	s.UpsertOrder(o)

	got, ok := s.OrderByID(o.ID.Hex())
	if !ok || got.Status != "placed" {
		t.Fatalf("order lookup failed: %v %v", got, ok)
	}
	if _, ok := s.OrderByID("missing"); ok {
		t.Fatal("missing order should report not found")
	}

	select {
	case ev := <-events:
		if ev.Kind != "order" || ev.ID != o.ID.Hex() {
			t.Fatalf("unexpected event %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("observer not notified")
	}
}
