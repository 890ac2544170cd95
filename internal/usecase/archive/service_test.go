package archive

import (
	"context"
	stdErrors "errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/johnquangdev/meeting-scribe/errors"
)

type memStore struct {
	objects map[string][]byte
	failPut bool
}

func (m *memStore) Put(ctx context.Context, name, contentType string, data []byte) error {
	if m.failPut {
		return stdErrors.New("disk full")
	}
	m.objects[name] = data
	return nil
}

func (m *memStore) List(ctx context.Context, prefix string) ([]string, error) {
	var out []string
	for k := range m.objects {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *memStore) URL(ctx context.Context, name string, expiry time.Duration) (string, error) {
	return "mem://" + name, nil
}

func (m *memStore) Location() string { return "mem" }

func TestService_StoreListURL(t *testing.T) {
	store := &memStore{objects: map[string][]byte{}}
	svc := NewService(store, 0, nil)
	svc.now = func() time.Time { return time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC) }

	name := svc.ObjectName(PrefixSummaries, "/tmp/out/weekly.json")
	if name != "summaries/2024/03/09/weekly.json" {
		t.Fatalf("object name = %q", name)
	}
	if _, err := svc.Store(context.Background(), name, "application/json", []byte("{}")); err != nil {
		t.Fatal(err)
	}

	files, err := svc.List(context.Background(), PrefixSummaries)
	if err != nil || len(files) != 1 || files[0] != name {
		t.Fatalf("files = %v, err = %v", files, err)
	}
	url, err := svc.URL(context.Background(), name)
	if err != nil || url != "mem://"+name {
		t.Fatalf("url = %q, err = %v", url, err)
	}
}

func TestService_Disabled(t *testing.T) {
	svc := NewService(nil, time.Hour, nil)
	_, err := svc.Store(context.Background(), "a", "text/plain", nil)
	var appErr errors.AppError
	if !stdErrors.As(err, &appErr) || appErr.Code != errors.ErrorCode_CONFIGURATION {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestService_StoreFailure(t *testing.T) {
	svc := NewService(&memStore{objects: map[string][]byte{}, failPut: true}, time.Hour, nil)
	_, err := svc.Store(context.Background(), "a", "text/plain", []byte("x"))
	var appErr errors.AppError
	if !stdErrors.As(err, &appErr) || appErr.Code != errors.ErrorCode_INTEGRATION_STORAGE_FAILED {
		t.Fatalf("expected storage error, got %v", err)
	}
}
