package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"brewfinder.dev/BrewFinder/pkg/model"
	"brewfinder.dev/BrewFinder/pkg/repository"
)

var ErrInvalidInput = errors.New("bad request")

// FavoritesServer exposes the favorites store over REST. Conflict and
// not-found semantics come from the store; the server only translates them
// to status codes.
type FavoritesServer struct {
	logger *zap.Logger
	store  repository.FavoriteStore
}

func NewFavoritesServer(store repository.FavoriteStore, logger *zap.Logger) *FavoritesServer {
	return &FavoritesServer{store: store, logger: logger}
}

func (s *FavoritesServer) RegisterRoutes(router gin.IRouter) {
	api := router.Group("/api")
	api.GET("/healthz", s.Health)
	api.GET("/favorites", s.List)
	api.POST("/favorites", s.Create)
	api.PUT("/favorites/:breweryId/note", s.UpdateNote)
	api.DELETE("/favorites/:breweryId", s.Delete)
}

type createFavoriteRequest struct {
	BreweryID   string  `json:"breweryId"`
	Name        string  `json:"name"`
	BreweryType *string `json:"breweryType"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	WebsiteURL  *string `json:"websiteUrl"`
	Note        *string `json:"note"`
}

type updateNoteRequest struct {
	Note *string `json:"note"`
}

type updateNoteResponse struct {
	Note       *string   `json:"note"`
	UpdatedUtc time.Time `json:"updatedUtc"`
}

func (s *FavoritesServer) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *FavoritesServer) List(c *gin.Context) {
	favorites, err := s.store.ListFavorites(c.Request.Context())
	if err != nil {
		s.logger.Error("error listing favorites", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list favorites"})

		return
	}

	if favorites == nil {
		favorites = []*model.Favorite{}
	}

	c.JSON(http.StatusOK, favorites)
}

func (s *FavoritesServer) Create(c *gin.Context) {
	var request createFavoriteRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%v: %v", ErrInvalidInput, err)})

		return
	}

	favorite := model.Favorite{
		BreweryID:   strings.TrimSpace(request.BreweryID),
		Name:        strings.TrimSpace(request.Name),
		BreweryType: request.BreweryType,
		City:        request.City,
		State:       request.State,
		WebsiteURL:  request.WebsiteURL,
		Note:        request.Note,
	}

	var errs error
	if favorite.BreweryID == "" {
		multierr.AppendInto(&errs, errors.New("breweryId is required"))
	}

	if favorite.Name == "" {
		multierr.AppendInto(&errs, errors.New("name is required"))
	}

	if errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errs.Error()})

		return
	}

	created, err := s.store.AddFavorite(c.Request.Context(), favorite)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateFavorite) {
			c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("brewery %s already saved", favorite.BreweryID)})

			return
		}

		s.logger.Error("error creating favorite", zap.String("brewery_id", favorite.BreweryID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save favorite"})

		return
	}

	c.JSON(http.StatusCreated, created)
}

func (s *FavoritesServer) UpdateNote(c *gin.Context) {
	breweryID := c.Param("breweryId")

	var request updateNoteRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%v: %v", ErrInvalidInput, err)})

		return
	}

	updatedUtc, err := s.store.UpdateFavoriteNote(c.Request.Context(), breweryID, request.Note)
	if err != nil {
		if errors.Is(err, repository.ErrFavoriteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("brewery %s is not saved", breweryID)})

			return
		}

		s.logger.Error("error updating note", zap.String("brewery_id", breweryID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update note"})

		return
	}

	c.JSON(http.StatusOK, updateNoteResponse{Note: request.Note, UpdatedUtc: updatedUtc})
}

func (s *FavoritesServer) Delete(c *gin.Context) {
	breweryID := c.Param("breweryId")

	err := s.store.DeleteFavorite(c.Request.Context(), breweryID)
	if err != nil {
		if errors.Is(err, repository.ErrFavoriteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("brewery %s is not saved", breweryID)})

			return
		}

		s.logger.Error("error deleting favorite", zap.String("brewery_id", breweryID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete favorite"})

		return
	}

	c.Status(http.StatusNoContent)
}
