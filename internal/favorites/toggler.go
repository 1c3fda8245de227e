package favorites

import (
	"context"
	"errors"
	"log"

	"github.com/masterskaya/storefront/internal/client"
	"github.com/masterskaya/storefront/internal/domain"
	"github.com/masterskaya/storefront/internal/notify"
	"github.com/masterskaya/storefront/internal/view"
)

// FavoriteClient is the slice of the storefront client the toggler needs.
type FavoriteClient interface {
	ToggleFavorite(ctx context.Context, productID int64) (domain.FavoriteStatus, error)
	CheckFavorite(ctx context.Context, productID int64) (domain.FavoriteStatus, error)
}

// Navigator performs a full-page navigation, e.g. to the login page.
type Navigator func(location string)

const (
	msgFavAdded   = "Товар добавлен в избранное"
	msgFavRemoved = "Товар удален из избранного"
	msgGeneric    = "Произошла ошибка"
	msgRequest    = "Произошла ошибка при обработке запроса"
)

// Toggler manages the two-state favorite icons. It shares nothing with the
// cart reconciler beyond the notification convention.
type Toggler struct {
	client   FavoriteClient
	page     *view.Page
	notify   notify.Notifier
	navigate Navigator
}

func NewToggler(c FavoriteClient, page *view.Page, n notify.Notifier, nav Navigator) *Toggler {
	if n == nil {
		n = notify.Discard{}
	}
	if nav == nil {
		nav = func(location string) {
			log.Printf("navigation requested to %s but no navigator configured", location)
		}
	}
	return &Toggler{client: c, page: page, notify: n, navigate: nav}
}

// CheckStatus re-fetches the favorite state of one product and updates its
// icon. Failures are silent: the icon keeps its current state.
func (t *Toggler) CheckStatus(ctx context.Context, productID int64) {
	status, err := t.client.CheckFavorite(ctx, productID)
	if err != nil {
		log.Printf("favorite check failed for product %d: %v", productID, err)
		return
	}
	t.setIcon(productID, status.IsFavorite)
}

// CheckAll runs one check per tracked favorite icon, the page-ready pass.
// No batching: one request per icon.
func (t *Toggler) CheckAll(ctx context.Context) {
	for _, id := range t.page.FavoriteProductIDs() {
		t.CheckStatus(ctx, id)
	}
}

// Toggle flips the favorite state of a product. An authentication-required
// outcome navigates away without touching the icon.
func (t *Toggler) Toggle(ctx context.Context, productID int64) error {
	status, err := t.client.ToggleFavorite(ctx, productID)

	var authErr *client.AuthRequiredError
	if errors.As(err, &authErr) {
		t.navigate(authErr.Location)
		return err
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = msgGeneric
		}
		t.notify.Show(msg, notify.SeverityError)
		return err
	}
	if err != nil {
		log.Printf("favorite toggle failed for product %d: %v", productID, err)
		t.notify.Show(msgRequest, notify.SeverityError)
		return err
	}

	t.setIcon(productID, status.IsFavorite)
	if status.IsFavorite {
		t.notify.Show(msgFavAdded, notify.SeveritySuccess)
	} else {
		t.notify.Show(msgFavRemoved, notify.SeverityInfo)
	}
	return nil
}

func (t *Toggler) setIcon(productID int64, favorite bool) {
	icon, ok := t.page.FavoriteIcon(productID)
	if !ok {
		log.Printf("no favorite icon tracked for product %d", productID)
		return
	}
	if favorite {
		icon.Glyph = view.GlyphHeartFilled
	} else {
		icon.Glyph = view.GlyphHeartEmpty
	}
}
