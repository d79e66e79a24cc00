// Package store persists API results and bookmarks in a local BoltDB file.
// Each entity kind lives in its own bucket keyed by id; rows are whole-record
// JSON values replaced on conflict, never partially updated.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/irisfoto/iris/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketImages      = []byte("curated_images")
	bucketCollections = []byte("featured_collections")
	bucketBookmarks   = []byte("bookmarks")
)

// Store implements domain.ImageStore, domain.CollectionStore, and
// domain.BookmarkStore on BoltDB.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the database file under dir and ensures the
// buckets exist.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "iris.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketImages, bucketCollections, bucketBookmarks} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// === Curated images ===

// Images returns up to limit cached curated images, newest first, along with
// the newest row's createdAt timestamp for freshness checks. limit <= 0
// means no limit.
func (s *Store) Images(limit int) ([]domain.CuratedImage, int64, error) {
	var records []imageRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketImages).ForEach(func(_, v []byte) error {
			var rec imageRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		return nil, 0, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt > records[j].CreatedAt
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	images := make([]domain.CuratedImage, len(records))
	for i, rec := range records {
		images[i] = rec.toDomain()
	}
	var newest int64
	if len(records) > 0 {
		newest = records[0].CreatedAt
	}
	return images, newest, nil
}

// PutImages bulk-inserts a batch of curated images with replace-on-conflict
// semantics. All rows share one transaction and one createdAt timestamp.
func (s *Store) PutImages(images []domain.CuratedImage) error {
	now := time.Now().UnixMilli()
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketImages)
		for _, img := range images {
			data, err := json.Marshal(newImageRecord(img, now))
			if err != nil {
				return err
			}
			if err := b.Put([]byte(img.ID), data); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) DeleteAllImages() error {
	return s.clearBucket(bucketImages)
}

// DeleteImagesOlderThan removes rows with createdAt before cutoff and
// returns how many were removed.
func (s *Store) DeleteImagesOlderThan(cutoff int64) (int, error) {
	return s.deleteOlderThan(bucketImages, cutoff, func(v []byte) (int64, error) {
		var rec imageRecord
		if err := json.Unmarshal(v, &rec); err != nil {
			return 0, err
		}
		return rec.CreatedAt, nil
	})
}

// === Featured collections ===

// Collections returns up to limit cached featured collections, newest
// first, with the newest row's createdAt.
func (s *Store) Collections(limit int) ([]domain.FeaturedCollection, int64, error) {
	var records []collectionRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketCollections).ForEach(func(_, v []byte) error {
			var rec collectionRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		return nil, 0, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt > records[j].CreatedAt
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	collections := make([]domain.FeaturedCollection, len(records))
	for i, rec := range records {
		collections[i] = rec.toDomain()
	}
	var newest int64
	if len(records) > 0 {
		newest = records[0].CreatedAt
	}
	return collections, newest, nil
}

// PutCollections bulk-inserts collections with replace-on-conflict
// semantics.
func (s *Store) PutCollections(collections []domain.FeaturedCollection) error {
	now := time.Now().UnixMilli()
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketCollections)
		for _, col := range collections {
			data, err := json.Marshal(newCollectionRecord(col, now))
			if err != nil {
				return err
			}
			if err := b.Put([]byte(col.ID), data); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) DeleteAllCollections() error {
	return s.clearBucket(bucketCollections)
}

// DeleteCollectionsOlderThan removes rows with createdAt before cutoff and
// returns how many were removed.
func (s *Store) DeleteCollectionsOlderThan(cutoff int64) (int, error) {
	return s.deleteOlderThan(bucketCollections, cutoff, func(v []byte) (int64, error) {
		var rec collectionRecord
		if err := json.Unmarshal(v, &rec); err != nil {
			return 0, err
		}
		return rec.CreatedAt, nil
	})
}

// === Bookmarks ===

// Bookmarks returns all bookmarked images, newest first by bookmark time.
func (s *Store) Bookmarks() ([]domain.CuratedImage, error) {
	var records []bookmarkRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketBookmarks).ForEach(func(_, v []byte) error {
			var rec bookmarkRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].BookmarkedAt > records[j].BookmarkedAt
	})

	images := make([]domain.CuratedImage, len(records))
	for i, rec := range records {
		images[i] = rec.toDomain()
	}
	return images, nil
}

// Bookmark returns the bookmarked image with the given id, or nil when it is
// not bookmarked.
func (s *Store) Bookmark(id string) (*domain.CuratedImage, error) {
	var img *domain.CuratedImage
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketBookmarks).Get([]byte(id))
		if v == nil {
			return nil
		}
		var rec bookmarkRecord
		if err := json.Unmarshal(v, &rec); err != nil {
			return err
		}
		d := rec.toDomain()
		img = &d
		return nil
	})
	return img, err
}

// IsBookmarked reports whether an image id has a bookmark row.
func (s *Store) IsBookmarked(id string) (bool, error) {
	var exists bool
	err := s.db.View(func(tx *bolt.Tx) error {
		exists = tx.Bucket(bucketBookmarks).Get([]byte(id)) != nil
		return nil
	})
	return exists, err
}

// PutBookmark inserts a bookmark row, replacing any existing row for the
// same image id.
func (s *Store) PutBookmark(img domain.CuratedImage) error {
	data, err := json.Marshal(newBookmarkRecord(img))
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketBookmarks).Put([]byte(img.ID), data)
	})
}

func (s *Store) DeleteBookmark(id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketBookmarks).Delete([]byte(id))
	})
}

func (s *Store) DeleteAllBookmarks() error {
	return s.clearBucket(bucketBookmarks)
}

// === Generic helpers ===

func (s *Store) clearBucket(bucket []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) deleteOlderThan(bucket []byte, cutoff int64, createdAt func([]byte) (int64, error)) (int, error) {
	deleted := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			ts, err := createdAt(v)
			if err != nil {
				return err
			}
			if ts < cutoff {
				if err := c.Delete(); err != nil {
					return err
				}
				deleted++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
