package fetcher_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petalhealth/content-service/internal/fetcher"
	"github.com/petalhealth/content-service/internal/logger"
	"github.com/petalhealth/content-service/internal/models"
)

func newClient(t *testing.T, handler http.HandlerFunc) *fetcher.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	urls := map[models.Resource]string{
		models.ResourceTopics: srv.URL + "/topics.json",
	}
	return fetcher.New(urls, 0, logger.NewNop())
}

func TestRecords_Success(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/topics.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"a","title":"Topic A","body":"..."},
			{"id":"b","title":"Topic B","body":"..."}
		]`))
	})

	topics, err := fetcher.Records[models.Topic](context.Background(), client, models.ResourceTopics)
	require.NoError(t, err)
	require.Len(t, topics, 2)
	assert.Equal(t, "a", topics[0].ID)
	assert.Equal(t, "Topic B", topics[1].Title)
}

func TestRecords_DropsInvalidRecords(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		// Second record has no title, third is not even an object.
		_, _ = w.Write([]byte(`[
			{"id":"a","title":"Topic A","body":"..."},
			{"id":"b","body":"..."},
			42,
			{"id":"c","title":"Topic C","body":"..."}
		]`))
	})

	topics, err := fetcher.Records[models.Topic](context.Background(), client, models.ResourceTopics)
	require.NoError(t, err)
	require.Len(t, topics, 2)
	assert.Equal(t, "a", topics[0].ID)
	assert.Equal(t, "c", topics[1].ID)
}

func TestRecords_HTTPStatusError(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	topics, err := fetcher.Records[models.Topic](context.Background(), client, models.ResourceTopics)
	require.Error(t, err)
	assert.Empty(t, topics)

	fe, ok := fetcher.AsError(err)
	require.True(t, ok)
	assert.Equal(t, fetcher.KindHTTPStatus, fe.Kind)
	assert.Equal(t, http.StatusInternalServerError, fe.StatusCode)
	assert.Equal(t, "HTTP 500", fe.Message)
}

func TestRecords_ParseError(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"a",`))
	})

	_, err := fetcher.Records[models.Topic](context.Background(), client, models.ResourceTopics)
	require.Error(t, err)

	fe, ok := fetcher.AsError(err)
	require.True(t, ok)
	assert.Equal(t, fetcher.KindParse, fe.Kind)
}

func TestRecords_SchemaErrorForNonArray(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"topics":[]}`))
	})

	_, err := fetcher.Records[models.Topic](context.Background(), client, models.ResourceTopics)
	require.Error(t, err)

	fe, ok := fetcher.AsError(err)
	require.True(t, ok)
	assert.Equal(t, fetcher.KindSchema, fe.Kind)
}

func TestRecords_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	urls := map[models.Resource]string{models.ResourceTopics: srv.URL}
	client := fetcher.New(urls, 0, logger.NewNop())
	srv.Close()

	_, err := fetcher.Records[models.Topic](context.Background(), client, models.ResourceTopics)
	require.Error(t, err)

	fe, ok := fetcher.AsError(err)
	require.True(t, ok)
	assert.Equal(t, fetcher.KindNetwork, fe.Kind)
}

func TestRecords_UnconfiguredResource(t *testing.T) {
	client := fetcher.New(map[models.Resource]string{}, 0, logger.NewNop())

	_, err := fetcher.Records[models.Question](context.Background(), client, models.ResourceQuestions)
	require.Error(t, err)
	_, ok := fetcher.AsError(err)
	assert.False(t, ok, "missing endpoint is a configuration error, not a fetch error")
}

func TestLastURLs(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := fetcher.Records[models.Topic](context.Background(), client, models.ResourceTopics)
	require.NoError(t, err)

	last := client.LastURLs()
	require.Contains(t, last, models.ResourceTopics)
	assert.Contains(t, last[models.ResourceTopics], "/topics.json")
}
