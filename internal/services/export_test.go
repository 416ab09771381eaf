package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/foxxcyber/itemdesk/internal/config"
	"github.com/foxxcyber/itemdesk/internal/models"
)

type pagedLister struct {
	items []*models.Item
	calls [][2]int
	err   error
}

func (l *pagedLister) List(ctx context.Context, skip, limit int) (*models.ItemPage, error) {
	l.calls = append(l.calls, [2]int{skip, limit})
	if l.err != nil {
		return nil, l.err
	}
	page := &models.ItemPage{Items: []*models.Item{}, Total: len(l.items), Skip: skip, Limit: limit}
	for i := skip; i < len(l.items) && i < skip+limit; i++ {
		page.Items = append(page.Items, l.items[i])
	}
	return page, nil
}

type memoryUploader struct {
	key         string
	body        []byte
	contentType string
}

func (u *memoryUploader) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (*UploadResult, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	u.key, u.body, u.contentType = key, data, contentType
	return &UploadResult{Bucket: "test", Key: key, Size: int64(len(data))}, nil
}

func makeItems(n int) []*models.Item {
	items := make([]*models.Item, n)
	for i := range items {
		items[i] = &models.Item{ID: i + 1, Name: "item", Price: 1, IsActive: true}
	}
	return items
}

func fixedExporter(t *testing.T, lister ItemLister, uploader SnapshotUploader, tmpl string) *Exporter {
	t.Helper()
	e, err := NewExporter(lister, uploader, tmpl)
	if err != nil {
		t.Fatal(err)
	}
	e.now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC) }
	return e
}

func TestExporter_CollectWalksAllPages(t *testing.T) {
	lister := &pagedLister{items: makeItems(250)}
	e := fixedExporter(t, lister, &memoryUploader{}, config.DefaultExportKeyTemplate)

	snap, err := e.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if snap.Total != 250 || len(snap.Items) != 250 {
		t.Errorf("total=%d items=%d", snap.Total, len(snap.Items))
	}
	want := [][2]int{{0, 100}, {100, 100}, {200, 100}}
	if len(lister.calls) != len(want) {
		t.Fatalf("calls = %v", lister.calls)
	}
	for i := range want {
		if lister.calls[i] != want[i] {
			t.Errorf("call %d = %v, want %v", i, lister.calls[i], want[i])
		}
	}
}

func TestExporter_CollectEmpty(t *testing.T) {
	lister := &pagedLister{}
	e := fixedExporter(t, lister, &memoryUploader{}, config.DefaultExportKeyTemplate)

	snap, err := e.Collect(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Items) != 0 || snap.Items == nil || len(lister.calls) != 1 {
		t.Errorf("unexpected snapshot %+v after %d calls", snap, len(lister.calls))
	}
}

func TestExporter_ObjectKey(t *testing.T) {
	e := fixedExporter(t, &pagedLister{}, &memoryUploader{}, "backups/{date}/items-{timestamp}-{total}.json")

	key := e.ObjectKey(&Snapshot{ExportedAt: e.now(), Total: 42})
	if key != "backups/2024-03-09/items-20240309T140507Z-42.json" {
		t.Errorf("key = %q", key)
	}
}

func TestExporter_Export(t *testing.T) {
	uploader := &memoryUploader{}
	e := fixedExporter(t, &pagedLister{items: makeItems(3)}, uploader, config.DefaultExportKeyTemplate)

	res, err := e.Export(context.Background())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if res.Key != "exports/items-20240309T140507Z.json" || res.Items != 3 || res.Size != int64(len(uploader.body)) {
		t.Errorf("unexpected result: %+v", res)
	}
	if uploader.contentType != "application/json" {
		t.Errorf("content type = %q", uploader.contentType)
	}

	var snap Snapshot
	if err := json.Unmarshal(uploader.body, &snap); err != nil {
		t.Fatalf("uploaded body is not a snapshot: %v", err)
	}
	if snap.Total != 3 || len(snap.Items) != 3 || !snap.ExportedAt.Equal(e.now()) {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
}

func TestExporter_ListFailure(t *testing.T) {
	uploader := &memoryUploader{}
	e := fixedExporter(t, &pagedLister{err: errors.New("boom")}, uploader, config.DefaultExportKeyTemplate)

	if _, err := e.Export(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if uploader.key != "" {
		t.Error("nothing should be uploaded")
	}
}

func TestNewExporter_EmptyTemplate(t *testing.T) {
	if _, err := NewExporter(&pagedLister{}, &memoryUploader{}, ""); !errors.Is(err, ErrEmptyKeyTemplate) {
		t.Errorf("err = %v", err)
	}
}

func TestNewExporter_UnclosedTag(t *testing.T) {
	lister := &pagedLister{items: makeItems(1)}
	if _, err := NewExporter(lister, &memoryUploader{}, "exports/items-{timestamp.json"); err == nil {
		t.Fatal("expected an error for an unclosed tag")
	}
	if len(lister.calls) != 0 {
		t.Error("nothing should be listed")
	}
}
