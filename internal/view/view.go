package view

import (
	"github.com/masterskaya/storefront/internal/domain"
)

// Glyph classes from the storefront markup.
const (
	GlyphCartNotIn   = "bi-cart-plus"
	GlyphCartIn      = "bi-cart-check-fill"
	GlyphHeartEmpty  = "bi-heart"
	GlyphHeartFilled = "bi-heart-fill text-danger"
)

// Badge is the header cart counter.
type Badge struct {
	Count   int
	Visible bool
}

// Line is one rendered preview row. Quantity is the displayed value the
// stepper controls read before issuing a mutation.
type Line struct {
	LineID    int64
	ProductID int64
	Name      string
	Quantity  int
	Subtotal  string
	HTML      string
}

// Preview is the cart dropdown panel.
type Preview struct {
	ShowPlaceholder bool
	Lines           []Line
	Total           string
}

// CatalogIcon is the per-product cart indicator on catalog pages.
type CatalogIcon struct {
	Glyph           string
	QuantityText    string
	QuantityVisible bool
}

// FavoriteIcon is the per-product heart toggle.
type FavoriteIcon struct {
	Glyph string
}

// Page is the explicit view-model the reconciler patches in place of an
// ambient document. The tracked product id sets bound the reset scope of
// icon refreshes. Page itself is not safe for concurrent use; callers
// serialize access the way a UI thread would.
type Page struct {
	Badge      Badge
	Preview    Preview
	TotalBadge string

	catalog   map[int64]*CatalogIcon
	catalogID []int64
	favorite  map[int64]*FavoriteIcon
	favID     []int64
}

// NewPage tracks the given catalog and favorite icons, all in their initial
// not-in-cart / not-favorite state.
func NewPage(catalogIDs, favoriteIDs []int64) *Page {
	p := &Page{
		catalog:  make(map[int64]*CatalogIcon, len(catalogIDs)),
		favorite: make(map[int64]*FavoriteIcon, len(favoriteIDs)),
	}
	p.Preview.ShowPlaceholder = true
	for _, id := range catalogIDs {
		if _, ok := p.catalog[id]; ok {
			continue
		}
		p.catalog[id] = &CatalogIcon{Glyph: GlyphCartNotIn, QuantityText: "0"}
		p.catalogID = append(p.catalogID, id)
	}
	for _, id := range favoriteIDs {
		if _, ok := p.favorite[id]; ok {
			continue
		}
		p.favorite[id] = &FavoriteIcon{Glyph: GlyphHeartEmpty}
		p.favID = append(p.favID, id)
	}
	return p
}

func (p *Page) CatalogIcon(productID int64) (*CatalogIcon, bool) {
	icon, ok := p.catalog[productID]
	return icon, ok
}

func (p *Page) CatalogProductIDs() []int64 {
	return p.catalogID
}

func (p *Page) FavoriteIcon(productID int64) (*FavoriteIcon, bool) {
	icon, ok := p.favorite[productID]
	return icon, ok
}

func (p *Page) FavoriteProductIDs() []int64 {
	return p.favID
}

// LineQuantity reads the displayed quantity of a rendered line.
func (p *Page) LineQuantity(lineID int64) (int, bool) {
	for _, l := range p.Preview.Lines {
		if l.LineID == lineID {
			return l.Quantity, true
		}
	}
	return 0, false
}

// NewLine builds the view row for one cart line, including its markup
// fragment.
func NewLine(cl domain.CartLine) Line {
	l := Line{
		LineID:    cl.ID,
		ProductID: cl.ProductID,
		Name:      cl.Name,
		Quantity:  cl.Quantity,
		Subtotal:  cl.Subtotal.Display(),
	}
	l.HTML = lineFragment(l, cl.Image)
	return l
}
