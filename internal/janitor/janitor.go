package janitor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"storefront/internal/filestore"
	"storefront/internal/kafka/producer"
	"storefront/internal/lib/logger/sl"
	"storefront/internal/models"
)

// CleanupJob asks for the files of a deleted product to be removed.
type CleanupJob struct {
	ProductID uuid.UUID `json:"product_id"`
	Keys      []string  `json:"keys"`
}

type Store interface {
	Remove(ctx context.Context, key string) error
	Key(url string) (string, bool)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ImageReferencer
type ImageReferencer interface {
	ReferencedImages(ctx context.Context) ([]models.ImageDerivativeSet, error)
}

// Janitor removes derivative files no product references any more.
type Janitor struct {
	log     *slog.Logger
	store   Store
	catalog ImageReferencer
}

func New(log *slog.Logger, store Store, catalog ImageReferencer) *Janitor {
	return &Janitor{
		log:     log,
		store:   store,
		catalog: catalog,
	}
}

// Keys maps the derivative paths of set to store keys. The original is
// left out since the pipeline already removed it. Paths the store does
// not serve are skipped.
func (j *Janitor) Keys(set models.ImageDerivativeSet) []string {
	paths := set.DerivativePaths()

	keys := make([]string, 0, len(paths))
	for _, p := range paths {
		key, ok := j.store.Key(p)
		if !ok {
			j.log.Debug("path is not served by the file store", slog.String("path", p))
			continue
		}
		keys = append(keys, key)
	}

	return keys
}

// referenced returns the keys of every derivative a stored product points at.
func (j *Janitor) referenced(ctx context.Context) (map[string]struct{}, error) {
	sets, err := j.catalog.ReferencedImages(ctx)
	if err != nil {
		return nil, err
	}

	keys := make(map[string]struct{})
	for _, set := range sets {
		for _, key := range j.Keys(set) {
			keys[key] = struct{}{}
		}
	}

	return keys, nil
}

// Unreferenced drops the keys some stored product still points at.
func (j *Janitor) Unreferenced(ctx context.Context, keys []string) ([]string, error) {
	const op = "janitor.Unreferenced"

	if len(keys) == 0 {
		return nil, nil
	}

	referenced, err := j.referenced(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	free := make([]string, 0, len(keys))
	for _, key := range keys {
		if _, ok := referenced[key]; ok {
			j.log.Debug("key still referenced, keeping it", slog.String("key", key))
			continue
		}
		free = append(free, key)
	}

	return free, nil
}

// Purge removes keys from the store. Missing files count as removed.
func (j *Janitor) Purge(ctx context.Context, keys []string) (int, error) {
	const op = "janitor.Purge"

	var (
		removed int
		errs    []error
	)

	for _, key := range keys {
		err := j.store.Remove(ctx, key)
		switch {
		case err == nil:
			removed++
		case errors.Is(err, filestore.ErrNotFound):
		default:
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}

	if len(errs) > 0 {
		return removed, fmt.Errorf("%s: %w", op, errors.Join(errs...))
	}

	return removed, nil
}

// purgeUnreferenced removes the keys of a deleted product that no other
// product shares.
func (j *Janitor) purgeUnreferenced(ctx context.Context, keys []string) (int, error) {
	free, err := j.Unreferenced(ctx, keys)
	if err != nil {
		return 0, err
	}

	return j.Purge(ctx, free)
}

// HandleMessage is the kafka consumer callback for CleanupJob messages.
// References are checked when the job runs, so a product saved in the
// meantime keeps its files.
func (j *Janitor) HandleMessage(ctx context.Context, message []byte) error {
	const op = "janitor.HandleMessage"

	var job CleanupJob
	if err := json.Unmarshal(message, &job); err != nil {
		return fmt.Errorf("%s: decode job: %w", op, err)
	}

	log := j.log.With(slog.String("op", op), slog.String("product_id", job.ProductID.String()))

	removed, err := j.purgeUnreferenced(ctx, job.Keys)
	if err != nil {
		log.Warn("derivative cleanup incomplete", slog.Int("removed", removed), sl.Err(err))
		return nil
	}

	log.Info("derivatives removed", slog.Int("removed", removed))

	return nil
}

// Schedule removes the files of a deleted product right away.
func (j *Janitor) Schedule(ctx context.Context, productID uuid.UUID, set models.ImageDerivativeSet) error {
	const op = "janitor.Schedule"

	removed, err := j.purgeUnreferenced(ctx, j.Keys(set))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	j.log.Info("derivatives removed",
		slog.String("product_id", productID.String()),
		slog.Int("removed", removed),
	)

	return nil
}

// QueueScheduler hands cleanup to the kafka consumer side.
type QueueScheduler struct {
	janitor  *Janitor
	producer producer.ProducerIface
}

func NewQueueScheduler(janitor *Janitor, producer producer.ProducerIface) *QueueScheduler {
	return &QueueScheduler{
		janitor:  janitor,
		producer: producer,
	}
}

func (s *QueueScheduler) Schedule(ctx context.Context, productID uuid.UUID, set models.ImageDerivativeSet) error {
	const op = "janitor.QueueScheduler.Schedule"

	keys := s.janitor.Keys(set)
	if len(keys) == 0 {
		return nil
	}

	message, err := json.Marshal(CleanupJob{ProductID: productID, Keys: keys})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.producer.SendMessage(ctx, []byte(productID.String()), message); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
