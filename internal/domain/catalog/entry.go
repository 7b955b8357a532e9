// Package catalog defines the experiment catalog: one row per archived
// record, carrying the summary fields the listing and lookup APIs serve.
package catalog

import (
	"context"
	"time"

	"github.com/flarelab/combust/pkg/types/common"
	"github.com/flarelab/combust/pkg/types/respecth"
)

// Entry is one catalog row. ObjectKey locates the raw XML in object storage;
// Checksum is the SHA-256 of the document and doubles as a dedup key.
type Entry struct {
	ID             common.ID `json:"id"`
	FileAuthor     string    `json:"file_author"`
	FileDOI        string    `json:"file_doi,omitempty"`
	ExperimentType string    `json:"experiment_type"`
	Reactor        string    `json:"reactor"`
	DataGroups     int       `json:"data_groups"`
	DataPoints     int       `json:"data_points"`
	ObjectKey      string    `json:"object_key"`
	Checksum       string    `json:"checksum"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewEntry builds a catalog entry from a decoded record.
func NewEntry(rec *respecth.ExperimentRecord, objectKey, checksum string) *Entry {
	now := time.Now().UTC()
	entry := &Entry{
		ID:        common.NewID(),
		ObjectKey: objectKey,
		Checksum:  checksum,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if rec == nil {
		return entry
	}

	entry.FileAuthor = rec.Metadata.Author
	entry.FileDOI = rec.Metadata.DOI
	entry.ExperimentType = rec.ExperimentType
	entry.Reactor = rec.Apparatus.Kind
	entry.DataGroups = len(rec.DataGroups)
	entry.DataPoints = rec.NumDataPoints()
	return entry
}

// Repository is the persistence contract for catalog entries.
type Repository interface {
	Save(ctx context.Context, entry *Entry) error
	GetByID(ctx context.Context, id common.ID) (*Entry, error)
	GetByChecksum(ctx context.Context, checksum string) (*Entry, error)
	List(ctx context.Context, page common.Pagination) ([]Entry, int64, error)
	Delete(ctx context.Context, id common.ID) error
}
