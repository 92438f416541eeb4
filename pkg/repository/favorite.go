package repository

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"brewfinder.dev/BrewFinder/pkg/model"
)

var (
	ErrDuplicateFavorite = errors.New("brewery already saved")
	ErrFavoriteNotFound  = errors.New("favorite not found")
)

// FavoriteStore is the persistence contract for the favorites table.
type FavoriteStore interface {
	ListFavorites(ctx context.Context) ([]*model.Favorite, error)
	FindFavoriteByBreweryID(ctx context.Context, breweryID string) (*model.Favorite, error)
	AddFavorite(ctx context.Context, favorite model.Favorite) (*model.Favorite, error)
	UpdateFavoriteNote(ctx context.Context, breweryID string, note *string) (time.Time, error)
	DeleteFavorite(ctx context.Context, breweryID string) error
}

// ListFavorites returns every favorite ordered by brewery name.
func (r *Repository) ListFavorites(ctx context.Context) ([]*model.Favorite, error) {
	var favorites []*model.Favorite

	if result := r.DB.WithContext(ctx).Order("name").Find(&favorites); result.Error != nil {
		r.Logger.Error("error listing favorites", zap.Error(result.Error))

		return nil, result.Error
	}

	return favorites, nil
}

func (r *Repository) FindFavoriteByBreweryID(ctx context.Context, breweryID string) (*model.Favorite, error) {
	favorite := &model.Favorite{}

	result := r.DB.WithContext(ctx).Where("brewery_id = ?", breweryID).First(favorite)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrFavoriteNotFound
		}

		return nil, result.Error
	}

	return favorite, nil
}

// AddFavorite stamps both timestamps server-side and inserts the record. A
// concurrent insert for the same brewery id loses against the unique index
// and comes back as ErrDuplicateFavorite.
func (r *Repository) AddFavorite(ctx context.Context, favorite model.Favorite) (*model.Favorite, error) {
	now := time.Now().UTC()
	favorite.CreatedUtc = now
	favorite.UpdatedUtc = now

	if result := r.DB.WithContext(ctx).Create(&favorite); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateFavorite
		}

		r.Logger.Error("error adding favorite", zap.String("brewery_id", favorite.BreweryID), zap.Error(result.Error))

		return nil, result.Error
	}

	return &favorite, nil
}

// UpdateFavoriteNote sets the note (nil clears it) and refreshes the update
// timestamp, returning the new timestamp.
func (r *Repository) UpdateFavoriteNote(ctx context.Context, breweryID string, note *string) (time.Time, error) {
	now := time.Now().UTC()

	result := r.DB.WithContext(ctx).Model(&model.Favorite{}).
		Where("brewery_id = ?", breweryID).
		Updates(map[string]interface{}{"note": note, "updated_utc": now})
	if result.Error != nil {
		return time.Time{}, result.Error
	}

	if result.RowsAffected == 0 {
		return time.Time{}, ErrFavoriteNotFound
	}

	return now, nil
}

func (r *Repository) DeleteFavorite(ctx context.Context, breweryID string) error {
	result := r.DB.WithContext(ctx).Where("brewery_id = ?", breweryID).Delete(&model.Favorite{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}

	return nil
}
