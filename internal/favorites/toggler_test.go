package favorites

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masterskaya/storefront/internal/client"
	"github.com/masterskaya/storefront/internal/domain"
	"github.com/masterskaya/storefront/internal/notify"
	"github.com/masterskaya/storefront/internal/view"
)

type mockFavClient struct {
	m sync.Mutex

	status    domain.FavoriteStatus
	toggleErr error
	checkErr  error

	toggled []int64
	checked []int64
}

func (c *mockFavClient) ToggleFavorite(_ context.Context, productID int64) (domain.FavoriteStatus, error) {
	c.m.Lock()
	defer c.m.Unlock()
	if c.toggleErr != nil {
		return domain.FavoriteStatus{}, c.toggleErr
	}
	c.toggled = append(c.toggled, productID)
	return c.status, nil
}

func (c *mockFavClient) CheckFavorite(_ context.Context, productID int64) (domain.FavoriteStatus, error) {
	c.m.Lock()
	defer c.m.Unlock()
	if c.checkErr != nil {
		return domain.FavoriteStatus{}, c.checkErr
	}
	c.checked = append(c.checked, productID)
	return c.status, nil
}

type mockNotifier struct {
	messages []string
	levels   []notify.Severity
}

func (n *mockNotifier) Show(message string, severity notify.Severity) {
	n.messages = append(n.messages, message)
	n.levels = append(n.levels, severity)
}

func TestToggle_AddsFavorite(t *testing.T) {
	mock := &mockFavClient{status: domain.FavoriteStatus{IsFavorite: true}}
	page := view.NewPage(nil, []int64{3})
	notifier := &mockNotifier{}
	sut := NewToggler(mock, page, notifier, nil)

	require.NoError(t, sut.Toggle(context.Background(), 3))

	icon, _ := page.FavoriteIcon(3)
	assert.Equal(t, view.GlyphHeartFilled, icon.Glyph)
	require.Len(t, notifier.messages, 1)
	assert.Equal(t, "Товар добавлен в избранное", notifier.messages[0])
	assert.Equal(t, notify.SeveritySuccess, notifier.levels[0])
}

func TestToggle_RemovesFavorite(t *testing.T) {
	mock := &mockFavClient{status: domain.FavoriteStatus{IsFavorite: false}}
	page := view.NewPage(nil, []int64{3})
	icon, _ := page.FavoriteIcon(3)
	icon.Glyph = view.GlyphHeartFilled

	notifier := &mockNotifier{}
	sut := NewToggler(mock, page, notifier, nil)

	require.NoError(t, sut.Toggle(context.Background(), 3))

	assert.Equal(t, view.GlyphHeartEmpty, icon.Glyph)
	require.Len(t, notifier.messages, 1)
	assert.Equal(t, "Товар удален из избранного", notifier.messages[0])
	assert.Equal(t, notify.SeverityInfo, notifier.levels[0])
}

func TestToggle_AuthRequiredNavigatesWithoutTouchingIcon(t *testing.T) {
	mock := &mockFavClient{toggleErr: &client.AuthRequiredError{Location: "/login"}}
	page := view.NewPage(nil, []int64{3})
	notifier := &mockNotifier{}

	var navigated string
	sut := NewToggler(mock, page, notifier, func(location string) {
		navigated = location
	})

	err := sut.Toggle(context.Background(), 3)
	require.Error(t, err)

	assert.Equal(t, "/login", navigated)
	icon, _ := page.FavoriteIcon(3)
	assert.Equal(t, view.GlyphHeartEmpty, icon.Glyph)
	assert.Empty(t, notifier.messages)
}

func TestToggle_ApplicationFailureShowsMessage(t *testing.T) {
	mock := &mockFavClient{toggleErr: &client.APIError{Message: "Товар недоступен"}}
	notifier := &mockNotifier{}
	sut := NewToggler(mock, view.NewPage(nil, []int64{3}), notifier, nil)

	require.Error(t, sut.Toggle(context.Background(), 3))

	require.Len(t, notifier.messages, 1)
	assert.Equal(t, "Товар недоступен", notifier.messages[0])
	assert.Equal(t, notify.SeverityError, notifier.levels[0])
}

func TestToggle_TransportFailureShowsFallback(t *testing.T) {
	mock := &mockFavClient{toggleErr: context.DeadlineExceeded}
	notifier := &mockNotifier{}
	sut := NewToggler(mock, view.NewPage(nil, []int64{3}), notifier, nil)

	require.Error(t, sut.Toggle(context.Background(), 3))

	require.Len(t, notifier.messages, 1)
	assert.Equal(t, "Произошла ошибка при обработке запроса", notifier.messages[0])
}

func TestCheckStatus_UpdatesIcon(t *testing.T) {
	mock := &mockFavClient{status: domain.FavoriteStatus{IsFavorite: true}}
	page := view.NewPage(nil, []int64{3})
	sut := NewToggler(mock, page, nil, nil)

	sut.CheckStatus(context.Background(), 3)

	icon, _ := page.FavoriteIcon(3)
	assert.Equal(t, view.GlyphHeartFilled, icon.Glyph)
}

func TestCheckStatus_FailureIsSilent(t *testing.T) {
	mock := &mockFavClient{checkErr: context.DeadlineExceeded}
	page := view.NewPage(nil, []int64{3})
	icon, _ := page.FavoriteIcon(3)
	icon.Glyph = view.GlyphHeartFilled

	notifier := &mockNotifier{}
	sut := NewToggler(mock, page, notifier, nil)

	sut.CheckStatus(context.Background(), 3)

	assert.Equal(t, view.GlyphHeartFilled, icon.Glyph)
	assert.Empty(t, notifier.messages)
}

func TestCheckAll_OneRequestPerTrackedIcon(t *testing.T) {
	mock := &mockFavClient{}
	page := view.NewPage(nil, []int64{3, 5, 9})
	sut := NewToggler(mock, page, nil, nil)

	sut.CheckAll(context.Background())

	assert.Equal(t, []int64{3, 5, 9}, mock.checked)
}
