package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"lifeline-cli/internal/model"
)

// Photos are copied into <workspace>/photos/<event-id>/ and referenced by a
// path relative to that directory. Local files stand in for object storage.

func (s Store) PhotosDir() string {
	return filepath.Join(s.Dir, "photos")
}

// AttachPhoto copies srcPath into the workspace and records a photo row at
// the end of the event's photo order.
func (s Store) AttachPhoto(db *DB, eventID, srcPath, caption string) (model.Photo, error) {
	if _, ok := db.EventByID(eventID); !ok {
		return model.Photo{}, fmt.Errorf("event not found: %s", eventID)
	}
	src, err := os.Open(srcPath)
	if err != nil {
		return model.Photo{}, err
	}
	defer src.Close()

	id, err := NewPhotoID(db)
	if err != nil {
		return model.Photo{}, err
	}
	rel := filepath.Join(eventID, id+strings.ToLower(filepath.Ext(srcPath)))
	dstPath := filepath.Join(s.PhotosDir(), rel)
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return model.Photo{}, err
	}
	dst, err := os.Create(dstPath)
	if err != nil {
		return model.Photo{}, err
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(dstPath)
		return model.Photo{}, err
	}
	if err := dst.Close(); err != nil {
		return model.Photo{}, err
	}

	maxOrder := -1
	for _, p := range db.PhotosForEvent(eventID) {
		if p.Order > maxOrder {
			maxOrder = p.Order
		}
	}
	photo := model.Photo{
		ID:        id,
		EventID:   eventID,
		Path:      rel,
		Caption:   strings.TrimSpace(caption),
		Order:     maxOrder + 1,
		CreatedAt: now(),
	}
	db.Photos = append(db.Photos, photo)
	return photo, nil
}

// RemovePhoto deletes the photo row and its file (best-effort on the file).
func (s Store) RemovePhoto(db *DB, photoID string) error {
	for i := range db.Photos {
		if db.Photos[i].ID != photoID {
			continue
		}
		rel := db.Photos[i].Path
		db.Photos = append(db.Photos[:i], db.Photos[i+1:]...)
		_ = os.Remove(filepath.Join(s.PhotosDir(), rel))
		return nil
	}
	return fmt.Errorf("photo not found: %s", photoID)
}
