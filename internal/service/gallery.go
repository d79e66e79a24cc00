// Package service orchestrates the remote source, the local store, and the
// cache policy into reconciled outcomes for the UI.
package service

import (
	"context"
	"log/slog"

	"github.com/irisfoto/iris/internal/cache"
	"github.com/irisfoto/iris/internal/domain"
)

const (
	// CollectionsPerPage is the fixed page size for the featured strip.
	CollectionsPerPage = 7
	// PhotosPerPage is the fixed page size for curated photos and search.
	PhotosPerPage = 30
)

// GalleryService answers the three domain queries — featured collections,
// curated images, search — reconciling live responses against the local
// cache. Every query returns an Outcome; failures never escape as panics or
// unclassified errors.
type GalleryService struct {
	source      domain.PhotoSource
	images      domain.ImageStore
	collections domain.CollectionStore
	logger      *slog.Logger
}

// NewGalleryService creates a new gallery service.
func NewGalleryService(source domain.PhotoSource, images domain.ImageStore, collections domain.CollectionStore, logger *slog.Logger) *GalleryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GalleryService{
		source:      source,
		images:      images,
		collections: collections,
		logger:      logger,
	}
}

// FeaturedCollections fetches the featured collections, refreshing the cache
// on success and falling back to TTL-valid cached rows on failure.
func (s *GalleryService) FeaturedCollections(ctx context.Context) domain.Outcome[domain.FeaturedCollection] {
	collections, err := s.source.FeaturedCollections(ctx, 1, CollectionsPerPage)
	if err == nil {
		if storeErr := s.collections.PutCollections(collections); storeErr != nil {
			s.logger.Error("failed to cache collections", "error", storeErr)
		}
		s.logger.Info("loaded featured collections", "count", len(collections))
		return domain.FreshOutcome(collections)
	}

	s.logger.Error("failed to load featured collections", "error", err)

	cached := s.validCachedCollections()
	if len(cached) > 0 {
		s.logger.Info("serving cached collections", "count", len(cached))
		return domain.StaleOutcome(cached, err)
	}
	return domain.UnavailableOutcome[domain.FeaturedCollection](err)
}

// CuratedImages fetches one page of the curated feed. Only a page-1 fetch
// refreshes the cache, and only a page-1 failure consults it: the cache holds
// the page-1 snapshot and nothing else.
func (s *GalleryService) CuratedImages(ctx context.Context, page int) domain.Outcome[domain.CuratedImage] {
	images, err := s.source.CuratedPhotos(ctx, page, PhotosPerPage)
	if err == nil {
		if page == 1 {
			if storeErr := s.images.PutImages(images); storeErr != nil {
				s.logger.Error("failed to cache curated images", "error", storeErr)
			}
		}
		s.logger.Info("loaded curated images", "count", len(images), "page", page)
		return domain.FreshOutcome(images)
	}

	s.logger.Error("failed to load curated images", "error", err, "page", page)

	if page == 1 {
		cached := s.validCachedImages()
		if len(cached) > 0 {
			s.logger.Info("serving cached curated images", "count", len(cached))
			return domain.StaleOutcome(cached, err)
		}
	}
	return domain.UnavailableOutcome[domain.CuratedImage](err)
}

// SearchImages fetches one page of search results. Search results are never
// persisted and a search failure never substitutes cached content.
func (s *GalleryService) SearchImages(ctx context.Context, query string, page int) domain.Outcome[domain.CuratedImage] {
	images, err := s.source.SearchPhotos(ctx, query, page, PhotosPerPage, domain.SearchOptions{})
	if err != nil {
		s.logger.Error("search failed", "error", err, "query", query, "page", page)
		return domain.UnavailableOutcome[domain.CuratedImage](err)
	}
	s.logger.Info("search complete", "query", query, "results", len(images), "page", page)
	return domain.FreshOutcome(images)
}

// Photo looks up a single photo by id.
func (s *GalleryService) Photo(ctx context.Context, id string) (*domain.CuratedImage, error) {
	return s.source.Photo(ctx, id)
}

// ClearCache purges rows older than the TTL cutoff, then unconditionally
// deletes all curated-image and featured-collection rows.
func (s *GalleryService) ClearCache() error {
	s.cleanExpired()

	if err := s.images.DeleteAllImages(); err != nil {
		return err
	}
	return s.collections.DeleteAllCollections()
}

// CleanExpired removes TTL-expired rows without touching fresh ones. Safe to
// call at startup.
func (s *GalleryService) CleanExpired() {
	s.cleanExpired()
}

func (s *GalleryService) cleanExpired() {
	cutoff := cache.ExpirationCutoff()

	if n, err := s.images.DeleteImagesOlderThan(cutoff); err != nil {
		s.logger.Error("failed to clean expired curated images", "error", err)
	} else if n > 0 {
		s.logger.Info("cleaned expired curated images", "count", n)
	}

	if n, err := s.collections.DeleteCollectionsOlderThan(cutoff); err != nil {
		s.logger.Error("failed to clean expired collections", "error", err)
	} else if n > 0 {
		s.logger.Info("cleaned expired collections", "count", n)
	}
}

// CachedCuratedImages returns the cached page-1 snapshot regardless of age.
// Best effort: any store fault yields an empty list.
func (s *GalleryService) CachedCuratedImages() []domain.CuratedImage {
	images, _, err := s.images.Images(PhotosPerPage)
	if err != nil {
		s.logger.Error("failed to read cached curated images", "error", err)
		return nil
	}
	return images
}

// CachedFeaturedCollections returns cached collections regardless of age.
// Best effort: any store fault yields an empty list.
func (s *GalleryService) CachedFeaturedCollections() []domain.FeaturedCollection {
	collections, _, err := s.collections.Collections(CollectionsPerPage)
	if err != nil {
		s.logger.Error("failed to read cached collections", "error", err)
		return nil
	}
	return collections
}

// validCachedImages returns cached images only when the representative row
// is still TTL-valid. Store faults are swallowed: no cache is just no cache.
func (s *GalleryService) validCachedImages() []domain.CuratedImage {
	images, newest, err := s.images.Images(PhotosPerPage)
	if err != nil {
		s.logger.Error("cache read failed for curated images", "error", err)
		return nil
	}
	if len(images) == 0 {
		return nil
	}
	if !cache.IsValid(newest) {
		s.logger.Debug("curated image cache expired", "status", cache.Status(newest))
		return nil
	}
	s.logger.Debug("using cached curated images", "status", cache.Status(newest))
	return images
}

// validCachedCollections is the collection counterpart of validCachedImages.
func (s *GalleryService) validCachedCollections() []domain.FeaturedCollection {
	collections, newest, err := s.collections.Collections(CollectionsPerPage)
	if err != nil {
		s.logger.Error("cache read failed for collections", "error", err)
		return nil
	}
	if len(collections) == 0 {
		return nil
	}
	if !cache.IsValid(newest) {
		s.logger.Debug("collection cache expired", "status", cache.Status(newest))
		return nil
	}
	s.logger.Debug("using cached collections", "status", cache.Status(newest))
	return collections
}
