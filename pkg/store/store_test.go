package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/ggframe/pkg/errors"
	"github.com/matzehuels/ggframe/pkg/layout"
)

func TestMemoryPutGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	defer s.Close(ctx)

	r := &layout.Report{Figure: "mpg"}
	id, err := s.Put(ctx, r)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("id %q is not a UUID", id)
	}
	if r.ID != id || r.Created.IsZero() {
		t.Errorf("Put did not fill in the report: %+v", r)
	}

	got, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Figure != "mpg" {
		t.Errorf("Figure = %q, want mpg", got.Figure)
	}
}

func TestMemoryKeepsGivenID(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	id := uuid.NewString()
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	got, _ := s.Put(ctx, &layout.Report{ID: id, Created: created})
	if got != id {
		t.Errorf("Put() = %s, want %s", got, id)
	}
	r, _ := s.Get(ctx, id)
	if !r.Created.Equal(created) {
		t.Errorf("Created = %v, want %v", r.Created, created)
	}
}

func TestMemoryGetErrors(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	tests := []struct {
		id   string
		code errors.Code
	}{
		{uuid.NewString(), errors.ErrCodeNotFound},
		{"../etc/passwd", errors.ErrCodeInvalidInput},
		{"", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		_, err := s.Get(ctx, tt.id)
		if got := errors.GetCode(err); got != tt.code {
			t.Errorf("Get(%q) code = %s, want %s", tt.id, got, tt.code)
		}
	}
}

func TestMemoryConcurrent(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := s.Put(ctx, &layout.Report{})
			if err != nil {
				t.Error(err)
				return
			}
			if _, err := s.Get(ctx, id); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
	if s.Len() != 50 {
		t.Errorf("Len() = %d, want 50", s.Len())
	}
}

func TestNewMongoStoreUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := NewMongoStore(ctx, "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=500", "", 0)
	if !errors.Is(err, errors.ErrCodeNetwork) {
		t.Errorf("NewMongoStore error = %v, want NETWORK_ERROR", err)
	}
}
