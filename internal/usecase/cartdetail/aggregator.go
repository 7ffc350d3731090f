package cartdetail

import (
	"context"
	"sync"

	"storefront-core/internal/domain/cart"
	"storefront-core/internal/domain/catalog"
	"storefront-core/internal/pkg/broadcast"
	"storefront-core/internal/usecase/cartstore"
	"storefront-core/internal/usecase/catalogcache"
)

// Catalog is what the aggregator needs from the catalog cache.
type Catalog interface {
	CatalogView
	RecordsByGroup(groupID int) []catalog.Record
	Subscribe() *catalogcache.Subscription
}

type Aggregator struct {
	store   *cartstore.Store
	catalog Catalog
}

func NewAggregator(store *cartstore.Store, catalog Catalog) *Aggregator {
	return &Aggregator{store: store, catalog: catalog}
}

func (a *Aggregator) Rows(ownerKey string) []Row {
	return Build(a.store.Get(ownerKey), a.catalog)
}

// Listing returns the group's records with the owner's in-cart amounts.
func (a *Aggregator) Listing(ownerKey string, groupID int) []ListingRow {
	return annotate(a.catalog.RecordsByGroup(groupID), a.store.Get(ownerKey))
}

func (a *Aggregator) Badge(ownerKey string) cart.Summary {
	return a.store.Get(ownerKey).Summary()
}

// RowStream emits freshly built rows after every cart replace or catalog change.
// A slow reader only sees the newest rows.
type RowStream struct {
	out      *broadcast.Mailbox[struct{}, []Row]
	cartSub  *cartstore.Subscription
	catSub   *catalogcache.Subscription
	catalog  CatalogView
	mu       sync.Mutex
	current  cart.Cart
	haveCart bool
	wg       sync.WaitGroup
	once     sync.Once
}

// Subscribe starts a stream whose first value reflects the current cart.
func (a *Aggregator) Subscribe(ownerKey string) *RowStream {
	st := &RowStream{
		out:     broadcast.NewMailbox[struct{}, []Row](),
		cartSub: a.store.Subscribe(ownerKey),
		catSub:  a.catalog.Subscribe(),
		catalog: a.catalog,
	}

	st.wg.Add(2)
	go st.pumpCart()
	go st.pumpCatalog()
	go func() {
		st.wg.Wait()
		st.out.Close()
	}()
	return st
}

func (st *RowStream) pumpCart() {
	defer st.wg.Done()
	defer st.catSub.Close()
	for {
		c, ok := st.cartSub.Next(context.Background())
		if !ok {
			return
		}
		st.mu.Lock()
		st.current, st.haveCart = c, true
		st.out.Push(struct{}{}, Build(c, st.catalog))
		st.mu.Unlock()
	}
}

func (st *RowStream) pumpCatalog() {
	defer st.wg.Done()
	for {
		if _, ok := st.catSub.Next(context.Background()); !ok {
			return
		}
		st.mu.Lock()
		if st.haveCart {
			st.out.Push(struct{}{}, Build(st.current, st.catalog))
		}
		st.mu.Unlock()
	}
}

// Next blocks for the next rows. It returns false once the stream is closed
// or the cart store has shut down.
func (st *RowStream) Next(ctx context.Context) ([]Row, bool) {
	return st.out.Pop(ctx)
}

func (st *RowStream) Close() {
	st.once.Do(func() {
		st.cartSub.Close()
		st.catSub.Close()
		st.out.Close()
	})
}
