package domain

// FavoriteStatus is never cached client-side; it is re-fetched whenever the
// icon state needs validating.
type FavoriteStatus struct {
	IsFavorite bool `json:"is_favorite"`
}
