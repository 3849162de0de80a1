package loader

import (
	"context"
	"errors"
	"image"
	"testing"

	"chosenoffset.com/tilecity/internal/render/rendertest"
)

func TestLoadImage(t *testing.T) {
	res := rendertest.NewResourceLoader()
	res.Sizes["tiles.png"] = image.Pt(512, 128)

	l := New(res, nil)
	key, err := l.LoadImage(context.Background(), "tiles", "tiles.png")
	if err != nil {
		t.Fatalf("Failed to load image: %v", err)
	}
	if key != "tiles" {
		t.Errorf("Expected key 'tiles', got '%s'", key)
	}

	img, ok := l.GetImage("tiles")
	if !ok {
		t.Fatal("Expected image to be available after load")
	}
	if w, h := img.Size(); w != 512 || h != 128 {
		t.Errorf("Expected 512x128 image, got %dx%d", w, h)
	}
}

func TestLoadImageCachesByKey(t *testing.T) {
	res := rendertest.NewResourceLoader()
	res.Sizes["tiles.png"] = image.Pt(64, 64)

	l := New(res, nil)
	for i := 0; i < 3; i++ {
		if _, err := l.LoadImage(context.Background(), "tiles", "tiles.png"); err != nil {
			t.Fatalf("Failed to load image: %v", err)
		}
	}
	if len(res.Calls) != 1 {
		t.Errorf("Expected 1 decode, got %d", len(res.Calls))
	}
}

func TestLoadImageMissingFile(t *testing.T) {
	l := New(rendertest.NewResourceLoader(), nil)

	if _, err := l.LoadImage(context.Background(), "tiles", "missing.png"); err == nil {
		t.Fatal("Expected error for missing image")
	}
	if _, ok := l.GetImage("tiles"); ok {
		t.Error("Expected no image stored after failed load")
	}
}

func TestLoadImageCancelled(t *testing.T) {
	res := rendertest.NewResourceLoader()
	res.Sizes["tiles.png"] = image.Pt(64, 64)
	l := New(res, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.LoadImage(ctx, "tiles", "tiles.png")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if len(res.Calls) != 0 {
		t.Errorf("Expected no decode after cancellation, got %d", len(res.Calls))
	}
}

func TestGetImageUnknownKey(t *testing.T) {
	l := New(rendertest.NewResourceLoader(), nil)
	if _, ok := l.GetImage("nope"); ok {
		t.Error("Expected unknown key to be absent")
	}
}
