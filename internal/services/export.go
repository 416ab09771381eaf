package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/valyala/fasttemplate"

	"github.com/foxxcyber/itemdesk/internal/models"
)

const (
	exportPageSize = 100

	KeyTemplateTimestamp = "timestamp"
	KeyTemplateDate      = "date"
	KeyTemplateTotal     = "total"
)

var ErrEmptyKeyTemplate = errors.New("export key template is empty")

// ItemLister pages through the item collection
type ItemLister interface {
	List(ctx context.Context, skip, limit int) (*models.ItemPage, error)
}

// SnapshotUploader stores a finished snapshot
type SnapshotUploader interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (*UploadResult, error)
}

// Snapshot is the document written by an export
type Snapshot struct {
	ExportedAt time.Time      `json:"exported_at"`
	Total      int            `json:"total"`
	Items      []*models.Item `json:"items"`
}

// ExportResult describes an uploaded snapshot
type ExportResult struct {
	Key   string
	Items int
	Size  int64
}

// Exporter copies the whole item collection into object storage
type Exporter struct {
	lister   ItemLister
	uploader SnapshotUploader
	template *fasttemplate.Template
	now      func() time.Time
}

// NewExporter creates an exporter; keyTemplate uses {timestamp}, {date} and {total}
func NewExporter(lister ItemLister, uploader SnapshotUploader, keyTemplate string) (*Exporter, error) {
	if keyTemplate == "" {
		return nil, ErrEmptyKeyTemplate
	}
	t, err := fasttemplate.NewTemplate(keyTemplate, "{", "}")
	if err != nil {
		return nil, fmt.Errorf("invalid export key template %q: %w", keyTemplate, err)
	}
	return &Exporter{
		lister:   lister,
		uploader: uploader,
		template: t,
		now:      time.Now,
	}, nil
}

// Collect reads every page until the reported total is reached or a page comes back empty
func (e *Exporter) Collect(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{ExportedAt: e.now().UTC(), Items: []*models.Item{}}

	for skip := 0; ; skip += exportPageSize {
		page, err := e.lister.List(ctx, skip, exportPageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to list items at offset %d: %w", skip, err)
		}
		snap.Total = page.Total
		snap.Items = append(snap.Items, page.Items...)

		if len(page.Items) == 0 || len(snap.Items) >= page.Total {
			break
		}
	}

	return snap, nil
}

// ObjectKey renders the key template for snap
func (e *Exporter) ObjectKey(snap *Snapshot) string {
	return e.template.ExecuteString(map[string]interface{}{
		KeyTemplateTimestamp: snap.ExportedAt.Format("20060102T150405Z"),
		KeyTemplateDate:      snap.ExportedAt.Format("2006-01-02"),
		KeyTemplateTotal:     strconv.Itoa(snap.Total),
	})
}

// Export collects the collection and uploads it as JSON
func (e *Exporter) Export(ctx context.Context) (*ExportResult, error) {
	snap, err := e.Collect(ctx)
	if err != nil {
		return nil, err
	}

	body, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	key := e.ObjectKey(snap)
	info, err := e.uploader.Upload(ctx, key, bytes.NewReader(body), int64(len(body)), "application/json")
	if err != nil {
		return nil, err
	}

	return &ExportResult{
		Key:   info.Key,
		Items: len(snap.Items),
		Size:  info.Size,
	}, nil
}
