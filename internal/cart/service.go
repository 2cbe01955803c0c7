package cart

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fracki1010/edu-cart-app/internal/domain"
	"github.com/fracki1010/edu-cart-app/internal/session"
)

// Snapshot is the published cart state views render from. On failure Err is
// set and Cart stays at its last known value. FailedMerges lists product
// names whose guest items could not be migrated on login; the items
// themselves are gone.
type Snapshot struct {
	Cart         domain.Cart
	Err          string
	FailedMerges []string
}

// Service exposes fetch/add/update/remove/clear uniformly and dispatches to
// the local or remote store depending solely on session state. Overlapping
// in-flight operations are not serialized or fenced.
type Service struct {
	sessions session.Source
	local    Store
	remote   Store
	log      *zap.Logger

	mu        sync.Mutex
	snap      Snapshot
	listeners []func(Snapshot)
}

func NewService(sessions session.Source, local, remote Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		sessions: sessions,
		local:    local,
		remote:   remote,
		log:      log,
	}
}

// Snapshot returns the last published state.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Subscribe registers a listener notified after every published change.
func (s *Service) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Service) publish(cart domain.Cart, failedMerges []string) {
	s.mu.Lock()
	s.snap = Snapshot{Cart: cart, FailedMerges: failedMerges}
	listeners := s.listeners
	snap := s.snap
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(snap)
	}
}

func (s *Service) publishError(err error) {
	s.mu.Lock()
	s.snap.Err = err.Error()
	listeners := s.listeners
	snap := s.snap
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(snap)
	}
}

// Fetch publishes the current cart. Guests read local storage with no
// network call. Authenticated sessions first migrate any pending guest
// items into the server cart, then take the server's answer as truth.
func (s *Service) Fetch(ctx context.Context) (domain.Cart, error) {
	sess := s.sessions.Current()

	if !sess.Authenticated() {
		cart, err := s.local.Get(ctx)
		if err != nil {
			s.publishError(err)
			return domain.Cart{}, err
		}
		s.publish(cart, nil)
		return cart, nil
	}

	failed := s.migrateGuestItems(ctx)

	cart, err := s.remote.Get(ctx)
	if err != nil {
		s.publishError(err)
		return domain.Cart{}, err
	}
	if sess.User != nil {
		cart.UserID = sess.User.ID
	}
	s.publish(cart, failed)
	return cart, nil
}

// migrateGuestItems pushes every guest line item to the server cart, all
// requests in flight at once. Failures are logged and collected but never
// abort the siblings, and the guest snapshot is deleted afterwards even if
// some merges failed: guest data is irrecoverable past this point.
func (s *Service) migrateGuestItems(ctx context.Context) []string {
	guest, err := s.local.Get(ctx)
	if err != nil {
		s.log.Warn("failed to read guest cart before migration", zap.Error(err))
		return nil
	}
	if guest.IsEmpty() {
		return nil
	}

	s.log.Info("migrating guest cart to server", zap.Int("items", len(guest.Items)))

	var (
		mu     sync.Mutex
		failed []string
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, item := range guest.Items {
		g.Go(func() error {
			if addErr := s.remote.AddItem(gctx, item); addErr != nil {
				s.log.Warn("failed to migrate guest item",
					zap.Int64("product_id", item.ProductID),
					zap.String("name", item.Name),
					zap.Error(addErr))
				mu.Lock()
				failed = append(failed, item.Name)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if clearErr := s.local.Clear(ctx); clearErr != nil {
		s.log.Warn("failed to clear guest cart after migration", zap.Error(clearErr))
	}
	return failed
}

// AddItem puts quantity units of product into the active cart. Guest mode
// mutates local storage synchronously; server mode sends the add and then
// resyncs with a full fetch. Nothing is updated speculatively on failure.
func (s *Service) AddItem(ctx context.Context, product domain.Product, quantity int) error {
	item := domain.LineItem{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  quantity,
		ImageURL:  product.ImageURL,
	}

	if !s.sessions.Current().Authenticated() {
		if err := s.local.AddItem(ctx, item); err != nil {
			s.publishError(err)
			return err
		}
		return s.republishLocal(ctx)
	}

	if err := s.remote.AddItem(ctx, item); err != nil {
		s.publishError(err)
		return err
	}
	_, err := s.Fetch(ctx)
	return err
}

// UpdateItem replaces a line item's quantity. No minimum-quantity floor is
// enforced at this layer; the server decides what quantity zero means.
func (s *Service) UpdateItem(ctx context.Context, productID int64, quantity int) error {
	if !s.sessions.Current().Authenticated() {
		if err := s.local.UpdateQuantity(ctx, productID, quantity); err != nil {
			s.publishError(err)
			return err
		}
		return s.republishLocal(ctx)
	}

	if err := s.remote.UpdateQuantity(ctx, productID, quantity); err != nil {
		s.publishError(err)
		return err
	}
	_, err := s.Fetch(ctx)
	return err
}

func (s *Service) RemoveItem(ctx context.Context, productID int64) error {
	if !s.sessions.Current().Authenticated() {
		if err := s.local.RemoveItem(ctx, productID); err != nil {
			s.publishError(err)
			return err
		}
		return s.republishLocal(ctx)
	}

	if err := s.remote.RemoveItem(ctx, productID); err != nil {
		s.publishError(err)
		return err
	}
	_, err := s.Fetch(ctx)
	return err
}

// EmptyCart drops the guest snapshot for guests. For authenticated sessions
// it only publishes an empty cart: the server cart is cleared by order
// placement, not by this call.
func (s *Service) EmptyCart(ctx context.Context) error {
	sess := s.sessions.Current()

	if !sess.Authenticated() {
		if err := s.local.Clear(ctx); err != nil {
			s.publishError(err)
			return err
		}
		s.publish(domain.Cart{}, nil)
		return nil
	}

	empty := domain.Cart{}
	if sess.User != nil {
		empty.UserID = sess.User.ID
	}
	s.publish(empty, nil)
	return nil
}

func (s *Service) republishLocal(ctx context.Context) error {
	cart, err := s.local.Get(ctx)
	if err != nil {
		s.publishError(err)
		return err
	}
	s.publish(cart, nil)
	return nil
}
