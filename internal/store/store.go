package store

import (
	"context"
	"log"
	"sync"
	"time"

	"rughaven_back_end/internal/database"
	"rughaven_back_end/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Event tells observers what changed in the snapshot.
type Event struct {
	Kind string // "product" or "order"
	ID   string
}

// Observer receives change events. Callbacks must not block.
type Observer func(Event)

// ShopStore is the in-memory source of truth for the catalog and the
// session's orders. It is loaded once at startup and kept fresh by Mongo
// change streams; pages only ever read the snapshot.
type ShopStore struct {
	mu        sync.RWMutex
	products  []models.Product
	orders    map[string]models.Order
	observers []Observer
}

// Shop is the process-wide store instance.
var Shop = New()

func New() *ShopStore {
	return &ShopStore{orders: make(map[string]models.Order)}
}

// Subscribe registers an observer for snapshot changes.
func (s *ShopStore) Subscribe(obs Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, obs)
}

func (s *ShopStore) notify(ev Event) {
	s.mu.RLock()
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.RUnlock()

	for _, obs := range observers {
		obs(ev)
	}
}

// Products returns a copy of the current catalog snapshot.
func (s *ShopStore) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// ProductByID looks up a product in the snapshot.
func (s *ShopStore) ProductByID(id string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID.Hex() == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// OrderByID looks up an order in the snapshot.
func (s *ShopStore) OrderByID(id string) (models.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	return o, ok
}

// SetProducts replaces the whole catalog snapshot.
func (s *ShopStore) SetProducts(products []models.Product) {
	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
	s.notify(Event{Kind: "product"})
}

// UpsertProduct inserts or replaces one product.
func (s *ShopStore) UpsertProduct(p models.Product) {
	s.mu.Lock()
	replaced := false
	for i := range s.products {
		if s.products[i].ID == p.ID {
			s.products[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		s.products = append(s.products, p)
	}
	s.mu.Unlock()
	s.notify(Event{Kind: "product", ID: p.ID.Hex()})
}

// RemoveProduct drops a product from the snapshot.
func (s *ShopStore) RemoveProduct(id string) {
	s.mu.Lock()
	kept := s.products[:0]
	for _, p := range s.products {
		if p.ID.Hex() != id {
			kept = append(kept, p)
		}
	}
	s.products = kept
	s.mu.Unlock()
	s.notify(Event{Kind: "product", ID: id})
}

// UpsertOrder inserts or replaces one order.
func (s *ShopStore) UpsertOrder(o models.Order) {
	s.mu.Lock()
	s.orders[o.ID.Hex()] = o
	s.mu.Unlock()
	s.notify(Event{Kind: "order", ID: o.ID.Hex()})
}

// Load fetches the initial snapshot from MongoDB.
func (s *ShopStore) Load(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	cursor, err := database.MongoProductsDB.Collection("products").Find(ctx, bson.M{"is_active": true})
	if err != nil {
		return err
	}
	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return err
	}

	orderCursor, err := database.MongoOrdersDB.Collection("orders").
		Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return err
	}
	var orders []models.Order
	if err := orderCursor.All(ctx, &orders); err != nil {
		return err
	}

	s.mu.Lock()
	s.products = products
	for _, o := range orders {
		s.orders[o.ID.Hex()] = o
	}
	s.mu.Unlock()

	log.Printf("✅ Shop store loaded: %d products, %d orders", len(products), len(orders))
	return nil
}

// Watch tails the products and orders change streams and keeps the
// snapshot fresh. Runs until ctx is cancelled; a dropped stream is logged
// and retried.
func (s *ShopStore) Watch(ctx context.Context) {
	go s.watchCollection(ctx, "products")
	go s.watchCollection(ctx, "orders")
}

func (s *ShopStore) watchCollection(ctx context.Context, name string) {
	for {
		if ctx.Err() != nil {
			return
		}

		var err error
		switch name {
		case "products":
			err = s.tailProducts(ctx)
		case "orders":
			err = s.tailOrders(ctx)
		}
		if err != nil && ctx.Err() == nil {
			log.Printf("⚠️ Change stream %s dropped: %v (retrying)", name, err)
			time.Sleep(3 * time.Second)
		}
	}
}

func (s *ShopStore) tailProducts(ctx context.Context) error {
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	stream, err := database.MongoProductsDB.Collection("products").Watch(ctx, bson.A{}, opts)
	if err != nil {
		return err
	}
	defer stream.Close(ctx)

	for stream.Next(ctx) {
		var change struct {
			OperationType string         `bson:"operationType"`
			FullDocument  models.Product `bson:"fullDocument"`
		}
		if err := stream.Decode(&change); err != nil {
			continue
		}
		switch change.OperationType {
		case "insert", "update", "replace":
			s.UpsertProduct(change.FullDocument)
		case "delete":
			// full document is unavailable on delete; reload the catalog
			if err := s.Load(ctx); err != nil {
				log.Println("⚠️ Catalog reload after delete failed:", err)
			}
		}
	}
	return stream.Err()
}

func (s *ShopStore) tailOrders(ctx context.Context) error {
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	stream, err := database.MongoOrdersDB.Collection("orders").Watch(ctx, bson.A{}, opts)
	if err != nil {
		return err
	}
	defer stream.Close(ctx)

	for stream.Next(ctx) {
		var change struct {
			OperationType string       `bson:"operationType"`
			FullDocument  models.Order `bson:"fullDocument"`
		}
		if err := stream.Decode(&change); err != nil {
			continue
		}
		switch change.OperationType {
		case "insert", "update", "replace":
			s.UpsertOrder(change.FullDocument)
		}
	}
	return stream.Err()
}
