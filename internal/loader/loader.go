// Package loader decodes image assets once and serves them by key.
package loader

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/tilecity/internal/render"
)

// Loader caches decoded images under caller-chosen keys. LoadImage may be
// called from several goroutines during preload.
type Loader struct {
	resources render.ResourceLoader
	log       logrus.FieldLogger

	mu     sync.RWMutex
	images map[string]render.Image
}

// New creates a loader backed by the given resource loader.
func New(resources render.ResourceLoader, log logrus.FieldLogger) *Loader {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Loader{
		resources: resources,
		log:       log.WithField("component", "loader"),
		images:    make(map[string]render.Image),
	}
}

// LoadImage decodes the image at path and stores it under key. It resolves
// to the key once the image is available.
func (l *Loader) LoadImage(ctx context.Context, key, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("failed to load image %s: %w", key, err)
	}

	if _, ok := l.GetImage(key); ok {
		return key, nil
	}

	img, err := l.resources.LoadImage(path)
	if err != nil {
		return "", fmt.Errorf("failed to load image %s from %s: %w", key, path, err)
	}

	l.mu.Lock()
	l.images[key] = img
	l.mu.Unlock()

	w, h := img.Size()
	l.log.WithFields(logrus.Fields{"key": key, "path": path}).Debugf("Loaded image %dx%d", w, h)
	return key, nil
}

// GetImage returns the decoded image for key.
func (l *Loader) GetImage(key string) (render.Image, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	img, ok := l.images[key]
	return img, ok
}
