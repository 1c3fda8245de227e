package reconciler

import (
	"context"
	"errors"
	"log"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/masterskaya/storefront/internal/client"
	"github.com/masterskaya/storefront/internal/domain"
	"github.com/masterskaya/storefront/internal/notify"
	"github.com/masterskaya/storefront/internal/view"
)

// CartClient is the slice of the storefront client the reconciler needs.
type CartClient interface {
	Summary(ctx context.Context) (domain.CartSnapshot, error)
	UpdateQuantity(ctx context.Context, lineID int64, quantity int) error
	RemoveLine(ctx context.Context, lineID int64) error
	AddItem(ctx context.Context, productID int64, quantity int) error
}

const (
	msgAdded      = "Товар добавлен в корзину"
	msgAddFailed  = "Произошла ошибка при добавлении изделия в корзину"
	msgUpdateFail = "Произошла ошибка при обновлении корзины"
	msgRemoveFail = "Произошла ошибка при удалении изделия из корзины"
)

// Reconciler keeps the page's cart regions in sync with server state. Each
// refresh replaces the rendered badge, preview lines and catalog icons
// wholesale from one snapshot.
type Reconciler struct {
	client CartClient
	page   *view.Page
	notify notify.Notifier

	sfg singleflight.Group // collapses overlapping refreshes

	mu      sync.Mutex // serializes view mutation, the UI-thread analog
	seq     uint64
	applied uint64
}

func New(c CartClient, page *view.Page, n notify.Notifier) *Reconciler {
	if n == nil {
		n = notify.Discard{}
	}
	return &Reconciler{client: c, page: page, notify: n}
}

// Refresh fetches the cart snapshot and redraws the badge, preview panel and
// catalog icons. A failed fetch is logged and leaves the view untouched;
// staleness is preferred over partial updates. Responses superseded by a
// newer applied one are discarded.
func (r *Reconciler) Refresh(ctx context.Context) error {
	r.mu.Lock()
	r.seq++
	seq := r.seq
	r.mu.Unlock()

	v, err, _ := r.sfg.Do("summary", func() (interface{}, error) {
		return r.client.Summary(ctx)
	})
	if err != nil {
		log.Printf("cart refresh failed: %v", err)
		return err
	}

	snap := v.(domain.CartSnapshot)

	r.mu.Lock()
	defer r.mu.Unlock()
	if seq < r.applied {
		log.Printf("discarding superseded cart snapshot (seq %d < %d)", seq, r.applied)
		return nil
	}
	r.applied = seq
	r.renderBadge(snap)
	r.renderPreview(snap)
	r.renderCatalogIcons(snap.Items)
	return nil
}

// RenderBadge shows the badge with the snapshot's item count, hiding it
// entirely for an empty cart.
func (r *Reconciler) RenderBadge(snap domain.CartSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderBadge(snap)
}

func (r *Reconciler) renderBadge(snap domain.CartSnapshot) {
	r.page.Badge = view.Badge{
		Count:   snap.ItemCount,
		Visible: snap.ItemCount > 0,
	}
}

// RenderPreview replaces the preview panel's line rows with the snapshot's
// items and updates both total displays. Old rows are dropped wholesale, so
// stale controls never outlive a refresh.
func (r *Reconciler) RenderPreview(snap domain.CartSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderPreview(snap)
}

func (r *Reconciler) renderPreview(snap domain.CartSnapshot) {
	total := snap.Total.Display()
	r.page.Preview.Total = total
	r.page.TotalBadge = total

	if snap.Empty() {
		r.page.Preview.ShowPlaceholder = true
		r.page.Preview.Lines = nil
		return
	}

	r.page.Preview.ShowPlaceholder = false
	lines := make([]view.Line, 0, len(snap.Items))
	for _, item := range snap.Items {
		lines = append(lines, view.NewLine(item))
	}
	r.page.Preview.Lines = lines
}

// RenderCatalogIcons resets every tracked catalog icon to the not-in-cart
// state, then flips the ones present in items. Reset-then-apply over the
// tracked set keeps the pass bounded and idempotent.
func (r *Reconciler) RenderCatalogIcons(items []domain.CartLine) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderCatalogIcons(items)
}

func (r *Reconciler) renderCatalogIcons(items []domain.CartLine) {
	for _, id := range r.page.CatalogProductIDs() {
		icon, _ := r.page.CatalogIcon(id)
		icon.Glyph = view.GlyphCartNotIn
		icon.QuantityText = "0"
		icon.QuantityVisible = false
	}
	for _, item := range items {
		icon, ok := r.page.CatalogIcon(item.ProductID)
		if !ok {
			log.Printf("no catalog icon tracked for product %d", item.ProductID)
			continue
		}
		icon.Glyph = view.GlyphCartIn
		icon.QuantityText = strconv.Itoa(item.Quantity)
		icon.QuantityVisible = true
	}
}

// ChangeQuantity adjusts a line by delta, reading the currently displayed
// quantity as the base. A result of zero or less removes the line instead of
// updating it.
func (r *Reconciler) ChangeQuantity(ctx context.Context, lineID int64, delta int) error {
	r.mu.Lock()
	current, ok := r.page.LineQuantity(lineID)
	r.mu.Unlock()
	if !ok {
		log.Printf("no rendered cart line %d, ignoring quantity change", lineID)
		return nil
	}

	newQuantity := current + delta
	if newQuantity <= 0 {
		return r.RemoveLine(ctx, lineID)
	}

	if err := r.client.UpdateQuantity(ctx, lineID, newQuantity); err != nil {
		r.reportMutationError(err, msgUpdateFail)
		return err
	}
	return r.Refresh(ctx)
}

// RemoveLine deletes one line from the cart.
func (r *Reconciler) RemoveLine(ctx context.Context, lineID int64) error {
	if err := r.client.RemoveLine(ctx, lineID); err != nil {
		r.reportMutationError(err, msgRemoveFail)
		return err
	}
	return r.Refresh(ctx)
}

// AddItem puts a product into the cart. A missing anti-forgery token aborts
// before any network call, logged only.
func (r *Reconciler) AddItem(ctx context.Context, productID int64, quantity int) error {
	if quantity <= 0 {
		quantity = 1
	}

	err := r.client.AddItem(ctx, productID, quantity)
	if errors.Is(err, client.ErrTokenMissing) {
		log.Printf("add to cart aborted for product %d: %v", productID, err)
		return err
	}
	if err != nil {
		r.reportMutationError(err, msgAddFailed)
		return err
	}

	r.notify.Show(msgAdded, notify.SeveritySuccess)
	return r.Refresh(ctx)
}

func (r *Reconciler) reportMutationError(err error, fallback string) {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		r.notify.Show(apiErr.Message, notify.SeverityError)
		return
	}
	log.Printf("cart mutation failed: %v", err)
	r.notify.Show(fallback, notify.SeverityError)
}
