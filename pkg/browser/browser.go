// Package browser holds the client-side state of the two-view favorites
// browser: a search view over the public directory and a favorites view over
// the server. Every user action is a reducer-style method on Browser; state
// only changes through them.
package browser

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"brewfinder.dev/BrewFinder/pkg/client"
	"brewfinder.dev/BrewFinder/pkg/integrations"
	"brewfinder.dev/BrewFinder/pkg/model"
)

// API is the slice of the server client the browser drives.
type API interface {
	GetFavorites(ctx context.Context) ([]model.Favorite, error)
	CreateFavorite(ctx context.Context, brewery model.Brewery, note *string) (*model.Favorite, error)
	UpdateNote(ctx context.Context, breweryID string, note *string) (*client.NoteResult, error)
	DeleteFavorite(ctx context.Context, breweryID string) error
}

// AlertFunc receives mutation failures, the equivalent of the blocking alert
// in a browser client. Search failures go to the inline SearchError instead.
type AlertFunc func(message string)

var perPageChoices = []int{10, 20, 50}

type control int

const (
	controlSearch control = iota
	controlSave
	controlEdit
	controlDelete
)

type Browser struct {
	api       API
	directory integrations.Directory
	alert     AlertFunc
	logger    *zap.Logger

	city      string
	page      int
	perPage   int
	results   []model.Brewery
	searchErr string

	favorites []model.Favorite

	busy map[control]bool
}

func New(api API, directory integrations.Directory, alert AlertFunc, logger *zap.Logger) *Browser {
	if alert == nil {
		alert = func(string) {}
	}

	return &Browser{
		api:       api,
		directory: directory,
		alert:     alert,
		logger:    logger,
		page:      1,
		perPage:   perPageChoices[0],
		busy:      map[control]bool{},
	}
}

// Start loads the favorites list once, as the page mount did.
func (b *Browser) Start(ctx context.Context) {
	if err := b.reloadFavorites(ctx); err != nil {
		b.alert(fmt.Sprintf("could not load favorites: %v", err))
	}
}

// Search queries the directory for the given city from page 1.
func (b *Browser) Search(ctx context.Context, city string) {
	b.city = city
	b.page = 1
	b.runSearch(ctx)
}

// SetPerPage switches the page size and, when a city is set, repeats the
// search. Sizes outside the selector's choices are ignored.
func (b *Browser) SetPerPage(ctx context.Context, perPage int) {
	valid := false

	for _, choice := range perPageChoices {
		if perPage == choice {
			valid = true

			break
		}
	}

	if !valid {
		return
	}

	b.perPage = perPage

	if b.city != "" {
		b.runSearch(ctx)
	}
}

// NextPage steps forward unless the last page looked like the final one.
func (b *Browser) NextPage(ctx context.Context) {
	if b.MaybeLastPage() {
		return
	}

	b.page++
	b.runSearch(ctx)
}

// PrevPage steps back, floored at page 1.
func (b *Browser) PrevPage(ctx context.Context) {
	if b.page <= 1 {
		return
	}

	b.page--
	b.runSearch(ctx)
}

// MaybeLastPage reports whether the last search returned fewer rows than the
// page size. The directory does not report a total count, so a full page only
// means "maybe more"; this is a documented approximation, not an exact signal.
func (b *Browser) MaybeLastPage() bool {
	return len(b.results) < b.perPage
}

// IsSaved reports whether a brewery is already in the favorites list; the
// save control is disabled for those.
func (b *Browser) IsSaved(breweryID string) bool {
	for _, favorite := range b.favorites {
		if favorite.BreweryID == breweryID {
			return true
		}
	}

	return false
}

// Save favorites the search result at index with an optional note, then
// reloads the full favorites list. Already-saved rows and in-flight saves
// are no-ops.
func (b *Browser) Save(ctx context.Context, index int, note *string) {
	if b.busy[controlSave] {
		return
	}

	if index < 0 || index >= len(b.results) {
		b.alert(fmt.Sprintf("no search result %d", index))

		return
	}

	brewery := b.results[index]
	if b.IsSaved(brewery.ID) {
		return
	}

	b.busy[controlSave] = true
	defer delete(b.busy, controlSave)

	if _, err := b.api.CreateFavorite(ctx, brewery, note); err != nil {
		b.alert(fmt.Sprintf("could not save %s: %v", brewery.Name, err))

		return
	}

	if err := b.reloadFavorites(ctx); err != nil {
		b.alert(fmt.Sprintf("could not reload favorites: %v", err))
	}
}

// EditNote replaces the note of a saved favorite (nil clears it) and reloads
// the list.
func (b *Browser) EditNote(ctx context.Context, breweryID string, note *string) {
	if b.busy[controlEdit] {
		return
	}

	b.busy[controlEdit] = true
	defer delete(b.busy, controlEdit)

	if _, err := b.api.UpdateNote(ctx, breweryID, note); err != nil {
		b.alert(fmt.Sprintf("could not update note for %s: %v", breweryID, err))

		return
	}

	if err := b.reloadFavorites(ctx); err != nil {
		b.alert(fmt.Sprintf("could not reload favorites: %v", err))
	}
}

// Delete removes a favorite and drops it from local state without a reload.
func (b *Browser) Delete(ctx context.Context, breweryID string) {
	if b.busy[controlDelete] {
		return
	}

	b.busy[controlDelete] = true
	defer delete(b.busy, controlDelete)

	if err := b.api.DeleteFavorite(ctx, breweryID); err != nil {
		b.alert(fmt.Sprintf("could not delete %s: %v", breweryID, err))

		return
	}

	remaining := b.favorites[:0]

	for _, favorite := range b.favorites {
		if favorite.BreweryID != breweryID {
			remaining = append(remaining, favorite)
		}
	}

	b.favorites = remaining
}

func (b *Browser) City() string { return b.city }

func (b *Browser) Page() int { return b.page }

func (b *Browser) PerPage() int { return b.perPage }

func (b *Browser) Results() []model.Brewery { return b.results }

// SearchError is the inline banner text; empty when the last search worked.
func (b *Browser) SearchError() string { return b.searchErr }

func (b *Browser) Favorites() []model.Favorite { return b.favorites }

func (b *Browser) runSearch(ctx context.Context) {
	if b.busy[controlSearch] {
		return
	}

	b.busy[controlSearch] = true
	defer delete(b.busy, controlSearch)

	results, err := b.directory.SearchBreweries(ctx, b.city, b.page, b.perPage)
	if err != nil {
		// Keep the previous results on screen, as the page did.
		b.searchErr = err.Error()
		b.logger.Warn("search failed", zap.String("city", b.city), zap.Error(err))

		return
	}

	b.results = results
	b.searchErr = ""
}

func (b *Browser) reloadFavorites(ctx context.Context) error {
	favorites, err := b.api.GetFavorites(ctx)
	if err != nil {
		return err
	}

	b.favorites = favorites

	return nil
}
