package janitor_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/filestore"
	"storefront/internal/filestore/local"
	"storefront/internal/janitor"
	janitormocks "storefront/internal/janitor/mocks"
	"storefront/internal/kafka/producer/mocks"
	"storefront/internal/models"
)

func newStore(t *testing.T, keys ...string) (*local.Store, string) {
	t.Helper()

	dir := t.TempDir()
	store, err := local.New(dir, "/images/")
	require.NoError(t, err)

	for _, key := range keys {
		_, err := store.Put(context.Background(), key, strings.NewReader("x"), "image/webp")
		require.NoError(t, err)
	}

	return store, dir
}

func age(t *testing.T, dir string, d time.Duration, keys ...string) {
	t.Helper()

	old := time.Now().Add(-d)
	for _, key := range keys {
		require.NoError(t, os.Chtimes(filepath.Join(dir, key), old, old))
	}
}

func listKeys(t *testing.T, store *local.Store) []string {
	t.Helper()

	objects, err := store.List(context.Background())
	require.NoError(t, err)

	keys := make([]string, 0, len(objects))
	for _, o := range objects {
		keys = append(keys, o.Key)
	}
	sort.Strings(keys)

	return keys
}

var set = models.ImageDerivativeSet{
	Original: "/images/product_1_orig.png",
	Primary:  "/images/product_1.webp",
	Sizes: map[string]string{
		"small":  "/images/product_1_200.webp",
		"medium": "/images/product_1_400.webp",
		"large":  "/images/product_1_800.webp",
	},
}

var setKeys = []string{
	"product_1.webp",
	"product_1_200.webp",
	"product_1_400.webp",
	"product_1_800.webp",
}

// referencer is the catalog after the deleted product is gone.
type referencer []models.ImageDerivativeSet

func (r referencer) ReferencedImages(context.Context) ([]models.ImageDerivativeSet, error) {
	return r, nil
}

// memStore lists whatever a shared bucket holds, nested keys included.
type memStore struct {
	mu      sync.Mutex
	objects map[string]filestore.Object
}

func newMemStore(modTime time.Time, keys ...string) *memStore {
	s := &memStore{objects: make(map[string]filestore.Object, len(keys))}
	for _, key := range keys {
		s.objects[key] = filestore.Object{Key: key, Size: 1, ModTime: modTime}
	}
	return s
}

func (s *memStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[key]; !ok {
		return filestore.ErrNotFound
	}
	delete(s.objects, key)
	return nil
}

func (s *memStore) Key(url string) (string, bool) {
	return filestore.Prefix("/images/").Key(url)
}

func (s *memStore) List(context.Context) ([]filestore.Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	objects := make([]filestore.Object, 0, len(s.objects))
	for _, o := range s.objects {
		objects = append(objects, o)
	}
	return objects, nil
}

func (s *memStore) keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.objects))
	for key := range s.objects {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(bytes.NewBuffer(nil), nil))
}

func TestScheduleRemovesEveryDerivative(t *testing.T) {
	store, _ := newStore(t, append(setKeys, "product_2.webp")...)
	j := janitor.New(discard(), store, referencer(nil))

	// the original was already removed by the pipeline
	require.NoError(t, j.Schedule(context.Background(), uuid.New(), set))

	require.Equal(t, []string{"product_2.webp"}, listKeys(t, store))
}

func TestScheduleKeepsSharedUpload(t *testing.T) {
	store, _ := newStore(t, setKeys...)

	// two products were saved from the same upload, the other one remains
	j := janitor.New(discard(), store, referencer{set})

	require.NoError(t, j.Schedule(context.Background(), uuid.New(), set))
	require.Equal(t, setKeys, listKeys(t, store))
}

func TestScheduleKeepsPartiallySharedFiles(t *testing.T) {
	store, _ := newStore(t, setKeys...)

	// the remaining product reuses only the primary as its default image
	other := models.ImageDerivativeSet{
		Primary: set.Primary,
		Sizes: map[string]string{
			"small":  set.Primary,
			"medium": set.Primary,
			"large":  set.Primary,
		},
	}
	j := janitor.New(discard(), store, referencer{other})

	require.NoError(t, j.Schedule(context.Background(), uuid.New(), set))
	require.Equal(t, []string{"product_1.webp"}, listKeys(t, store))
}

func TestScheduleCatalogError(t *testing.T) {
	store, _ := newStore(t, setKeys...)

	catalog := janitormocks.NewImageReferencer(t)
	catalog.On("ReferencedImages", mock.Anything).Return(nil, errors.New("db down")).Once()

	j := janitor.New(discard(), store, catalog)

	err := j.Schedule(context.Background(), uuid.New(), set)
	require.ErrorContains(t, err, "db down")
	require.Equal(t, setKeys, listKeys(t, store))
}

func TestKeysSkipsForeignPaths(t *testing.T) {
	store, _ := newStore(t)
	j := janitor.New(discard(), store, referencer(nil))

	keys := j.Keys(models.ImageDerivativeSet{
		Primary: "https://cdn.example.com/product_1.webp",
		Sizes:   map[string]string{"small": "/images/product_1_200.webp"},
	})

	require.Equal(t, []string{"product_1_200.webp"}, keys)
}

func TestKeysLeaveOutOriginal(t *testing.T) {
	store, _ := newStore(t)
	j := janitor.New(discard(), store, referencer(nil))

	keys := j.Keys(set)
	sort.Strings(keys)

	require.Equal(t, setKeys, keys)
}

func TestHandleMessage(t *testing.T) {
	store, _ := newStore(t, setKeys...)
	j := janitor.New(discard(), store, referencer(nil))

	message, err := json.Marshal(janitor.CleanupJob{ProductID: uuid.New(), Keys: setKeys})
	require.NoError(t, err)

	require.NoError(t, j.HandleMessage(context.Background(), message))
	require.Empty(t, listKeys(t, store))

	// replays find nothing left and still succeed
	require.NoError(t, j.HandleMessage(context.Background(), message))

	require.Error(t, j.HandleMessage(context.Background(), []byte("{")))
}

func TestHandleMessageKeepsSharedUpload(t *testing.T) {
	store, _ := newStore(t, setKeys...)
	j := janitor.New(discard(), store, referencer{set})

	message, err := json.Marshal(janitor.CleanupJob{ProductID: uuid.New(), Keys: setKeys})
	require.NoError(t, err)

	require.NoError(t, j.HandleMessage(context.Background(), message))
	require.Equal(t, setKeys, listKeys(t, store))
}

func TestHandleMessageCatalogError(t *testing.T) {
	store, _ := newStore(t, setKeys...)

	catalog := janitormocks.NewImageReferencer(t)
	catalog.On("ReferencedImages", mock.Anything).Return(nil, errors.New("db down")).Once()

	j := janitor.New(discard(), store, catalog)

	message, err := json.Marshal(janitor.CleanupJob{ProductID: uuid.New(), Keys: setKeys})
	require.NoError(t, err)

	// the sweeper picks the files up later
	require.NoError(t, j.HandleMessage(context.Background(), message))
	require.Equal(t, setKeys, listKeys(t, store))
}

func TestQueueScheduler(t *testing.T) {
	store, _ := newStore(t, setKeys...)
	j := janitor.New(discard(), store, referencer(nil))
	productID := uuid.New()

	producerMock := mocks.NewProducerIface(t)
	producerMock.On("SendMessage", mock.Anything, []byte(productID.String()), mock.MatchedBy(func(message []byte) bool {
		var job janitor.CleanupJob
		if err := json.Unmarshal(message, &job); err != nil {
			return false
		}
		sort.Strings(job.Keys)
		return job.ProductID == productID && strings.Join(job.Keys, ",") == strings.Join(setKeys, ",")
	})).Return(nil).Once()

	s := janitor.NewQueueScheduler(j, producerMock)
	require.NoError(t, s.Schedule(context.Background(), productID, set))

	// files stay until the consumer handles the job
	require.Len(t, listKeys(t, store), len(setKeys))
}

func TestQueueSchedulerSendError(t *testing.T) {
	store, _ := newStore(t)
	j := janitor.New(discard(), store, referencer(nil))

	producerMock := mocks.NewProducerIface(t)
	producerMock.On("SendMessage", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	err := janitor.NewQueueScheduler(j, producerMock).Schedule(context.Background(), uuid.New(), set)
	require.ErrorContains(t, err, "broker down")
}

func TestQueueSchedulerNothingToClean(t *testing.T) {
	store, _ := newStore(t)
	j := janitor.New(discard(), store, referencer(nil))

	producerMock := mocks.NewProducerIface(t)

	err := janitor.NewQueueScheduler(j, producerMock).Schedule(context.Background(), uuid.New(), models.ImageDerivativeSet{})
	require.NoError(t, err)
}

func TestSweep(t *testing.T) {
	store, dir := newStore(t, append(setKeys, "product_2.webp", "product_3_orig.png", "product_4.webp")...)
	age(t, dir, 2*time.Hour, append(setKeys, "product_2.webp", "product_3_orig.png")...)

	catalog := janitormocks.NewImageReferencer(t)
	catalog.On("ReferencedImages", mock.Anything).Return([]models.ImageDerivativeSet{set}, nil).Once()

	s := janitor.NewSweeper(janitor.New(discard(), store, catalog), store, "product", time.Hour)

	removed, err := s.Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, removed)

	// referenced files and the fresh upload survive
	want := append([]string{"product_4.webp"}, setKeys...)
	sort.Strings(want)
	require.Equal(t, want, listKeys(t, store))
}

func TestSweepLeavesForeignObjects(t *testing.T) {
	foreign := []string{
		"backups/db.sql",
		"backups/product_1.webp",
		"notes.txt",
		"banner_1.webp",
		"product_logo.png",
		"product_1_thumb.webp",
	}

	store := newMemStore(time.Now().Add(-48*time.Hour), append(foreign, "product_2.webp", "product_2_400.webp")...)

	s := janitor.NewSweeper(janitor.New(discard(), store, referencer(nil)), store, "product", time.Hour)

	removed, err := s.Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, removed)

	sort.Strings(foreign)
	require.Equal(t, foreign, store.keys())
}

func TestSweepCatalogError(t *testing.T) {
	store, _ := newStore(t, "product_2.webp")

	catalog := janitormocks.NewImageReferencer(t)
	catalog.On("ReferencedImages", mock.Anything).Return(nil, errors.New("db down")).Once()

	s := janitor.NewSweeper(janitor.New(discard(), store, catalog), store, "product", 0)

	_, err := s.Sweep(context.Background())
	require.ErrorContains(t, err, "db down")
	require.Equal(t, []string{"product_2.webp"}, listKeys(t, store))
}

func TestSweeperStart(t *testing.T) {
	store, _ := newStore(t)
	s := janitor.NewSweeper(janitor.New(discard(), store, referencer(nil)), store, "product", time.Hour)

	c, err := s.Start(context.Background(), "")
	require.NoError(t, err)
	require.Nil(t, c)

	_, err = s.Start(context.Background(), "not a schedule")
	require.Error(t, err)

	c, err = s.Start(context.Background(), "@daily")
	require.NoError(t, err)
	require.Len(t, c.Entries(), 1)
	<-c.Stop().Done()
}
