package bot

import (
	"context"
	"errors"
	"sync"
	"testing"

	"filmapp/internal/films"
	"filmapp/internal/models"
	"filmapp/internal/store"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	chatId int
	text   string
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sentMessage
}

func (f *fakeSender) SendMessage(ctx context.Context, chatId int, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMessage{chatId: chatId, text: text})
	return nil
}

func (f *fakeSender) last() sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[len(f.sent)-1]
}

type failingStore struct {
	*store.MemoryStore
	loadErr error
	saveErr error
}

func (s *failingStore) Load(ctx context.Context, sessionID string, kind store.Kind) (*string, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.MemoryStore.Load(ctx, sessionID, kind)
}

func (s *failingStore) Save(ctx context.Context, sessionID string, kind store.Kind, blob string) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	return s.MemoryStore.Save(ctx, sessionID, kind, blob)
}

type resources struct {
	handler *Handler
	store   *store.MemoryStore
	sender  *fakeSender
	ctx     context.Context
}

func initResources(t *testing.T) *resources {
	t.Helper()
	logger, _ := logtest.NewNullLogger()
	snapshots := store.NewMemoryStore()
	sender := &fakeSender{}

	return &resources{
		handler: NewHandler(snapshots, sender, logger),
		store:   snapshots,
		sender:  sender,
		ctx:     context.Background(),
	}
}

func update(chatID int, text string) *models.Update {
	return &models.Update{
		UpdateId: 1,
		Message: models.Message{
			Text: text,
			Chat: models.Chat{Id: chatID},
			From: models.User{Id: chatID},
		},
	}
}

func (r *resources) send(chatID int, text string) string {
	r.handler.ProcessMessage(r.ctx, update(chatID, text))
	return r.sender.last().text
}

func (r *resources) favourites(t *testing.T, chatID string) []models.Film {
	t.Helper()
	blob, err := r.store.Load(r.ctx, chatID, store.KindFavourites)
	require.NoError(t, err)
	require.NotNil(t, blob)
	favs, err := films.Decode(*blob)
	require.NoError(t, err)
	return favs
}

func TestFilmsListsDefaultCatalog(t *testing.T) {
	r := initResources(t)

	reply := r.send(10, "/films")
	assert.Contains(t, reply, "1. Batman")
	assert.Contains(t, reply, "2. Iron man 3")
	assert.Contains(t, reply, "3. Doctor Strange in the Multiverse of Madness")
	assert.NotContains(t, reply, "⭐")
	assert.Equal(t, 10, r.sender.last().chatId)

	catalog, err := r.store.Load(r.ctx, "10", store.KindCatalog)
	require.NoError(t, err)
	require.NotNil(t, catalog)
	decoded, err := films.Decode(*catalog)
	require.NoError(t, err)
	assert.Equal(t, films.DefaultCatalog(), decoded)
	assert.Empty(t, r.favourites(t, "10"))
}

func TestLikePersistsAcrossEvents(t *testing.T) {
	r := initResources(t)

	reply := r.send(10, "/like 1")
	assert.Contains(t, reply, "Added <b>Batman</b>")
	assert.Equal(t, []models.Film{films.DefaultCatalog()[0]}, r.favourites(t, "10"))

	reply = r.send(10, "/like 1")
	assert.Contains(t, reply, "already in your favourites")
	assert.Len(t, r.favourites(t, "10"), 1)

	reply = r.send(10, "/favourites")
	assert.Contains(t, reply, "1. Batman")

	reply = r.send(10, "/films")
	assert.Contains(t, reply, "<b>1. Batman</b> ⭐")
}

func TestUnlike(t *testing.T) {
	r := initResources(t)
	r.send(10, "/like 2")
	r.send(10, "/like 3")

	reply := r.send(10, "/unlike 2")
	assert.Contains(t, reply, "Removed <b>Iron man 3</b>")
	assert.Equal(t, []models.Film{films.DefaultCatalog()[2]}, r.favourites(t, "10"))

	reply = r.send(10, "/unlike 2")
	assert.Contains(t, reply, "not in your favourites")
	assert.Len(t, r.favourites(t, "10"), 1)
}

func TestUnlikeFilmMissingFromCatalog(t *testing.T) {
	r := initResources(t)
	favs, err := films.Encode([]models.Film{{ID: 77, Title: "Gone"}})
	require.NoError(t, err)
	require.NoError(t, r.store.Save(r.ctx, "10", store.KindFavourites, favs))

	reply := r.send(10, "/unlike 77")
	assert.Contains(t, reply, "Removed <b>Gone</b>")
	assert.Empty(t, r.favourites(t, "10"))
}

func TestChatsAreIsolated(t *testing.T) {
	r := initResources(t)
	r.send(10, "/like 1")
	r.send(20, "/like 2")

	assert.Equal(t, 1, r.favourites(t, "10")[0].ID)
	assert.Equal(t, 2, r.favourites(t, "20")[0].ID)
}

func TestCommandArgumentErrors(t *testing.T) {
	r := initResources(t)

	cases := map[string]string{
		"/like":       "Please provide a film id",
		"/like abc":   "Film id must be a number",
		"/unlike":     "Please provide a film id",
		"/like 404":   "No film with id 404",
		"/watch 1":    "Unknown command",
		"/start":      "Welcome to Film App",
		"/HELP":       "Welcome to Film App",
		"/films@bot":  "<b>Films:</b>",
		"/favourites": "no favourite films yet",
	}

	for text, want := range cases {
		t.Run(text, func(t *testing.T) {
			assert.Contains(t, r.send(10, text), want)
		})
	}
}

func TestCorruptSnapshotFallsBackToDefaults(t *testing.T) {
	r := initResources(t)
	require.NoError(t, r.store.Save(r.ctx, "10", store.KindCatalog, "not valid encoded text"))
	require.NoError(t, r.store.Save(r.ctx, "10", store.KindFavourites, `[{"id":`))

	reply := r.send(10, "/films")
	assert.Contains(t, reply, "1. Batman")
	assert.Empty(t, r.favourites(t, "10"))
}

func TestReset(t *testing.T) {
	r := initResources(t)
	r.send(10, "/like 1")

	reply := r.send(10, "/reset")
	assert.Contains(t, reply, "reset")

	blob, err := r.store.Load(r.ctx, "10", store.KindFavourites)
	require.NoError(t, err)
	assert.Nil(t, blob)
}

func TestEmptyMessageIsIgnored(t *testing.T) {
	r := initResources(t)
	r.handler.ProcessMessage(r.ctx, update(10, ""))
	assert.Empty(t, r.sender.sent)
}

func TestStoreFailures(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	snapshots := &failingStore{MemoryStore: store.NewMemoryStore(), loadErr: errors.New("redis down")}
	sender := &fakeSender{}
	h := NewHandler(snapshots, sender, logger)

	h.ProcessMessage(context.Background(), update(10, "/films"))
	assert.Contains(t, sender.last().text, "1. Batman")
	assert.NotEmpty(t, hook.AllEntries())

	snapshots.loadErr = nil
	snapshots.saveErr = errors.New("redis down")
	h.ProcessMessage(context.Background(), update(10, "/like 1"))
	assert.Contains(t, sender.last().text, "Added <b>Batman</b>")
	assert.Contains(t, sender.last().text, "may not be saved")
}

func TestConcurrentEventsForOneChat(t *testing.T) {
	r := initResources(t)

	var wg sync.WaitGroup
	for _, id := range []string{"1", "2", "3"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			r.handler.ProcessMessage(r.ctx, update(10, "/like "+id))
		}(id)
	}
	wg.Wait()

	assert.Len(t, r.favourites(t, "10"), 3)
	assert.Empty(t, r.handler.locks.locks)
}
