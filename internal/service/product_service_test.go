package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"hallever/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// fakeImageStore records uploads and deletes; deletes can be made to fail,
// which must stay invisible to callers.
type fakeImageStore struct {
	mu        sync.Mutex
	uploads   int
	deleted   []string
	uploadErr error
	deleteErr error
}

func (f *fakeImageStore) UploadImage(ctx context.Context, r io.Reader, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploads++
	return fmt.Sprintf("https://store.example.com/media/img-%d.jpg", f.uploads), nil
}

func (f *fakeImageStore) UploadFile(ctx context.Context, r io.Reader, contentType string) (string, error) {
	return f.UploadImage(ctx, r, contentType)
}

func (f *fakeImageStore) Delete(ctx context.Context, rawURL string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, rawURL)
	// deleteErr simulates a cleanup failure; it is swallowed by contract.
}

func TestCreateWithImagesAppendsUploadedURLs(t *testing.T) {
	store := newMockProductStore()
	images := &fakeImageStore{}
	svc := NewProductService(store, images, zap.NewNop())

	product := &domain.Product{
		Name:   "Fairy Light",
		Price:  499,
		Images: []string{"https://store.example.com/media/existing.jpg"},
	}
	files := []Upload{
		{Reader: strings.NewReader("a"), ContentType: "image/jpeg"},
		{Reader: strings.NewReader("b"), ContentType: "image/jpeg"},
	}

	created, err := svc.CreateWithImages(context.Background(), product, files)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(created.Images) != 3 {
		t.Fatalf("expected retained + 2 uploaded images, got %v", created.Images)
	}
	if created.Images[0] != "https://store.example.com/media/existing.jpg" {
		t.Errorf("expected retained image first, got %v", created.Images)
	}
}

func TestCreateWithImagesFailsWhenUploadFails(t *testing.T) {
	store := newMockProductStore()
	images := &fakeImageStore{uploadErr: errors.New("bucket unavailable")}
	svc := NewProductService(store, images, zap.NewNop())

	_, err := svc.CreateWithImages(context.Background(), &domain.Product{Name: "x", Price: 1},
		[]Upload{{Reader: strings.NewReader("a"), ContentType: "image/jpeg"}})
	if err == nil {
		t.Fatal("expected upload failure to fail the create")
	}
	if len(store.docs) != 0 {
		t.Error("expected no record stored after a failed upload")
	}
}

func TestUpdateWithImagesDeletesRemovedOnesBestEffort(t *testing.T) {
	store := newMockProductStore()
	images := &fakeImageStore{deleteErr: errors.New("already gone")}
	svc := NewProductService(store, images, zap.NewNop())
	ctx := context.Background()

	created, err := svc.CreateWithImages(ctx, &domain.Product{Name: "x", Price: 1}, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	retained := []string{"https://store.example.com/media/keep.jpg"}
	removed := []string{"https://store.example.com/media/old.jpg"}
	err = svc.UpdateWithImages(ctx, created.ID, bson.M{"price": 2.0}, retained,
		[]Upload{{Reader: strings.NewReader("new"), ContentType: "image/jpeg"}}, removed)
	if err != nil {
		t.Fatalf("expected update to succeed despite cleanup failure, got %v", err)
	}

	if len(images.deleted) != 1 || images.deleted[0] != removed[0] {
		t.Errorf("expected a delete attempt for the removed image, got %v", images.deleted)
	}

	fields := store.updates[created.ID]
	imgs, ok := fields["images"].([]string)
	if !ok {
		t.Fatalf("expected images field in the update, got %v", fields)
	}
	if len(imgs) != 2 || imgs[0] != retained[0] {
		t.Errorf("expected retained + uploaded image list, got %v", imgs)
	}
}

func TestDeleteWithImagesCleansUpStorage(t *testing.T) {
	store := newMockProductStore()
	images := &fakeImageStore{}
	svc := NewProductService(store, images, zap.NewNop())
	ctx := context.Background()

	created, err := svc.CreateWithImages(ctx, &domain.Product{Name: "x", Price: 1},
		[]Upload{{Reader: strings.NewReader("a"), ContentType: "image/jpeg"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.DeleteWithImages(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(store.docs) != 0 {
		t.Error("expected record removed")
	}
	if len(images.deleted) != 1 {
		t.Errorf("expected the stored image deleted, got %v", images.deleted)
	}
}
