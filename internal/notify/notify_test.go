package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCenter_StacksBanners(t *testing.T) {
	sut := NewCenter(time.Hour)
	defer sut.Close()

	sut.Show("Товар добавлен в корзину", SeveritySuccess)
	sut.Show("Произошла ошибка", SeverityError)

	banners := sut.Active()
	require.Len(t, banners, 2)
	assert.Equal(t, "Товар добавлен в корзину", banners[0].Message)
	assert.Equal(t, SeveritySuccess, banners[0].Severity)
	assert.Equal(t, "Произошла ошибка", banners[1].Message)
	assert.Equal(t, SeverityError, banners[1].Severity)
	assert.NotEqual(t, banners[0].ID, banners[1].ID)
}

func TestCenter_AutoDismiss(t *testing.T) {
	sut := NewCenter(20 * time.Millisecond)
	defer sut.Close()

	sut.Show("мимолетное", SeverityInfo)
	require.Len(t, sut.Active(), 1)

	assert.Eventually(t, func() bool {
		return len(sut.Active()) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestCenter_CloseClearsEverything(t *testing.T) {
	sut := NewCenter(time.Hour)
	sut.Show("один", SeverityInfo)
	sut.Show("два", SeverityInfo)

	sut.Close()
	assert.Empty(t, sut.Active())
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "success", SeveritySuccess.String())
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "error", SeverityError.String())
}
