// Package experiment provides the application-level service tying the record
// codec to the catalog, archive, and cache. It is the interface between
// HTTP/CLI handlers and domain logic.
package experiment

import (
	"context"
	"strings"
	"time"

	"github.com/flarelab/combust/internal/domain/catalog"
	"github.com/flarelab/combust/internal/domain/record"
	"github.com/flarelab/combust/internal/infrastructure/monitoring/logging"
	"github.com/flarelab/combust/internal/infrastructure/monitoring/prometheus"
	"github.com/flarelab/combust/pkg/errors"
	"github.com/flarelab/combust/pkg/types/common"
	"github.com/flarelab/combust/pkg/types/respecth"
)

// Service defines the application operations over experiment records.
type Service interface {
	// Validate runs the structural check without decoding.
	Validate(ctx context.Context, document []byte) (*ValidationResult, error)
	// Import validates, decodes, archives, and catalogues a document.
	Import(ctx context.Context, document []byte) (*ImportResult, error)
	// Get returns a catalogued record, decoding from the archive on a cache
	// miss.
	Get(ctx context.Context, id string) (*RecordDetail, error)
	// List returns one catalog page, newest first.
	List(ctx context.Context, page common.Pagination) (*ListResult, error)
	// Export gates a draft on the completeness policy and encodes it.
	Export(ctx context.Context, draft *respecth.DraftRecord) (*ExportResult, error)
	// Delete removes a record from the catalog, archive, and cache.
	Delete(ctx context.Context, id string) error
}

// ValidationResult reports the outcome of a structural check.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// ImportResult is the outcome of one import.
type ImportResult struct {
	Entry    *catalog.Entry             `json:"entry"`
	Record   *respecth.ExperimentRecord `json:"record"`
	Warnings []string                   `json:"warnings,omitempty"`
	// Duplicate is true when the exact document was already catalogued; the
	// existing entry is returned and nothing is re-archived.
	Duplicate bool `json:"duplicate"`
}

// RecordDetail pairs a catalog entry with its decoded record.
type RecordDetail struct {
	Entry    *catalog.Entry             `json:"entry"`
	Record   *respecth.ExperimentRecord `json:"record"`
	Warnings []string                   `json:"warnings,omitempty"`
}

// ListResult is one page of the catalog.
type ListResult struct {
	Entries    []catalog.Entry `json:"entries"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

// ExportResult is the outcome of one draft export.
type ExportResult struct {
	Document  []byte   `json:"document"`
	ObjectKey string   `json:"object_key"`
	Warnings  []string `json:"warnings,omitempty"`
}

// decoder and encoder narrow the codec dependency for testability.
type decoder interface {
	Decode(data []byte) (*respecth.ExperimentRecord, []string, error)
}

type encoder interface {
	Encode(draft *respecth.DraftRecord) ([]byte, error)
}

// archive narrows the object-storage dependency.
type archive interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Remove(ctx context.Context, key string) error
}

// recordCache narrows the decoded-record cache dependency.
type recordCache interface {
	Get(ctx context.Context, checksum string) (*respecth.ExperimentRecord, bool, error)
	Put(ctx context.Context, checksum string, rec *respecth.ExperimentRecord) error
	Invalidate(ctx context.Context, checksum string) error
}

// checksumFunc derives the document digest used for dedup and cache keys.
type checksumFunc func(data []byte) string

// Deps carries the service's constructor dependencies.
type Deps struct {
	Decoder  decoder
	Encoder  encoder
	Catalog  catalog.Repository
	Archive  archive
	Cache    recordCache
	Checksum checksumFunc
	Metrics  *prometheus.AppMetrics
	Logger   logging.Logger
}

type service struct {
	dec      decoder
	enc      encoder
	repo     catalog.Repository
	archive  archive
	cache    recordCache
	checksum checksumFunc
	metrics  *prometheus.AppMetrics
	log      logging.Logger
}

// NewService wires the experiment service. Decoder, Encoder, Catalog,
// Archive, Cache, and Checksum are required; Metrics and Logger may be nil.
func NewService(deps Deps) Service {
	log := deps.Logger
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &service{
		dec:      deps.Decoder,
		enc:      deps.Encoder,
		repo:     deps.Catalog,
		archive:  deps.Archive,
		cache:    deps.Cache,
		checksum: deps.Checksum,
		metrics:  deps.Metrics,
		log:      log.Named("experiment"),
	}
}

func (s *service) Validate(_ context.Context, document []byte) (*ValidationResult, error) {
	valid, errs := record.Validate(document)
	if s.metrics != nil {
		prometheus.RecordValidation(s.metrics, valid)
	}
	return &ValidationResult{Valid: valid, Errors: errs}, nil
}

func (s *service) Import(ctx context.Context, document []byte) (*ImportResult, error) {
	if len(document) == 0 {
		return nil, errors.InvalidParam("document must not be empty")
	}

	if valid, errs := record.Validate(document); !valid {
		if s.metrics != nil {
			prometheus.RecordValidation(s.metrics, false)
		}
		return nil, errors.New(errors.CodeStructureInvalid, "document failed structural validation").
			WithDetail(joinErrors(errs))
	}

	checksum := s.checksum(document)

	// Identical documents are catalogued once.
	if existing, err := s.repo.GetByChecksum(ctx, checksum); err == nil {
		s.log.Info("duplicate document, returning existing entry",
			logging.String("checksum", checksum),
			logging.String("id", existing.ID.String()))
		rec, warnings, err := s.recordFor(ctx, existing, checksum)
		if err != nil {
			return nil, err
		}
		return &ImportResult{Entry: existing, Record: rec, Warnings: warnings, Duplicate: true}, nil
	} else if !errors.IsCode(err, errors.CodeRecordNotFound) {
		return nil, err
	}

	start := time.Now()
	rec, warnings, err := s.dec.Decode(document)
	if s.metrics != nil {
		prometheus.RecordDecode(s.metrics, err == nil, len(warnings), time.Since(start))
	}
	if err != nil {
		return nil, err
	}

	objectKey := "records/" + checksum + ".xml"
	if err := s.archive.Put(ctx, objectKey, document); err != nil {
		return nil, err
	}

	entry := catalog.NewEntry(rec, objectKey, checksum)
	if err := s.repo.Save(ctx, entry); err != nil {
		return nil, err
	}

	if err := s.cache.Put(ctx, checksum, rec); err != nil {
		s.log.Warn("failed to cache decoded record", logging.Err(err))
	}

	s.log.Info("imported record",
		logging.String("id", entry.ID.String()),
		logging.String("experiment_type", entry.ExperimentType),
		logging.Int("data_points", entry.DataPoints),
		logging.Int("warnings", len(warnings)))

	return &ImportResult{Entry: entry, Record: rec, Warnings: warnings}, nil
}

func (s *service) Get(ctx context.Context, id string) (*RecordDetail, error) {
	entry, err := s.repo.GetByID(ctx, common.ID(id))
	if err != nil {
		return nil, err
	}
	rec, warnings, err := s.recordFor(ctx, entry, entry.Checksum)
	if err != nil {
		return nil, err
	}
	return &RecordDetail{Entry: entry, Record: rec, Warnings: warnings}, nil
}

// recordFor returns the decoded record for a catalog entry, consulting the
// cache before re-decoding from the archive.
func (s *service) recordFor(ctx context.Context, entry *catalog.Entry, checksum string) (*respecth.ExperimentRecord, []string, error) {
	rec, hit, err := s.cache.Get(ctx, checksum)
	if err != nil {
		s.log.Warn("record cache lookup failed", logging.Err(err))
	}
	if s.metrics != nil {
		prometheus.RecordCacheAccess(s.metrics, "record", hit)
	}
	if hit {
		return rec, nil, nil
	}

	document, err := s.archive.Get(ctx, entry.ObjectKey)
	if err != nil {
		return nil, nil, err
	}
	rec, warnings, err := s.dec.Decode(document)
	if err != nil {
		return nil, nil, err
	}
	if err := s.cache.Put(ctx, checksum, rec); err != nil {
		s.log.Warn("failed to cache decoded record", logging.Err(err))
	}
	return rec, warnings, nil
}

func (s *service) List(ctx context.Context, page common.Pagination) (*ListResult, error) {
	page.Normalize()
	entries, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / page.PageSize
	if int(total)%page.PageSize > 0 {
		totalPages++
	}
	return &ListResult{
		Entries:    entries,
		Total:      total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *service) Export(ctx context.Context, draft *respecth.DraftRecord) (*ExportResult, error) {
	missing, warnings := record.CheckDraft(draft)
	if len(missing) > 0 {
		return nil, errors.New(errors.CodeDraftIncomplete, "draft is not complete enough to export").
			WithDetail(joinErrors(missing))
	}

	start := time.Now()
	document, err := s.enc.Encode(draft)
	if s.metrics != nil {
		prometheus.RecordEncode(s.metrics, err == nil, time.Since(start))
	}
	if err != nil {
		return nil, err
	}

	objectKey := "exports/" + s.checksum(document) + ".xml"
	if err := s.archive.Put(ctx, objectKey, document); err != nil {
		return nil, err
	}

	s.log.Info("exported draft",
		logging.String("object_key", objectKey),
		logging.Int("bytes", len(document)),
		logging.Int("warnings", len(warnings)))

	return &ExportResult{Document: document, ObjectKey: objectKey, Warnings: warnings}, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	entry, err := s.repo.GetByID(ctx, common.ID(id))
	if err != nil {
		return err
	}
	if err := s.archive.Remove(ctx, entry.ObjectKey); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, entry.ID); err != nil {
		return err
	}
	if err := s.cache.Invalidate(ctx, entry.Checksum); err != nil {
		s.log.Warn("failed to invalidate record cache", logging.Err(err))
	}
	s.log.Info("deleted record", logging.String("id", id))
	return nil
}

func joinErrors(errs []string) string {
	return strings.Join(errs, "; ")
}
