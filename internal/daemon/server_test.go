package daemon

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"filesync/internal/db"
	"filesync/internal/model"
	"filesync/internal/repository"
	"filesync/internal/syncer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type nopSyncer struct{}

func (nopSyncer) Sync() ([]model.Action, error) { return nil, nil }

func newTestServer(t *testing.T) *Server {
	t.Helper()

	require.NoError(t, db.Init(filepath.Join(t.TempDir(), "test.db")))

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := repository.NewActionRepository()
	require.NoError(t, repo.SaveAll([]model.Action{
		{RunID: "run-1", Cycle: 1, Op: model.OpCopy, Kind: model.KindFile, Path: "a.txt", Bytes: 5, AppliedAt: base},
		{RunID: "run-1", Cycle: 2, Op: model.OpRemove, Kind: model.KindFile, Path: "b.txt", AppliedAt: base.Add(time.Minute)},
		{RunID: "run-1", Cycle: 3, Op: model.OpCopy, Kind: model.KindFolder, Path: "sub", Bytes: 9, AppliedAt: base.Add(2 * time.Minute)},
	}))

	loop := syncer.NewLoop(nopSyncer{}, zap.NewNop(), syncer.LoopOptions{
		Source:  "/src",
		Replica: "/dst",
	})

	return NewServer(loop, zap.NewNop(), 0)
}

func TestHandleStatus(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Run   model.LoopSnapshot `json:"run"`
		Total repository.Stats   `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "/src", body.Run.Source)
	assert.Equal(t, "/dst", body.Run.Replica)
	assert.NotEmpty(t, body.Run.RunID)
	assert.Equal(t, int64(3), body.Total.Total)
	assert.Equal(t, int64(2), body.Total.Copied)
}

func TestHandleHistory(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var actions []model.Action
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &actions))
	require.Len(t, actions, 3)
	assert.Equal(t, "sub", actions[0].Path, "newest first")
}

func TestHandleHistoryLimit(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/history?n=1", nil)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var actions []model.Action
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &actions))
	assert.Len(t, actions, 1)
}

func TestHandleHistoryByRun(t *testing.T) {
	s := newTestServer(t)

	repo := repository.NewActionRepository()
	require.NoError(t, repo.SaveAll([]model.Action{
		{RunID: "run-2", Cycle: 1, Op: model.OpCopy, Kind: model.KindFile, Path: "z.txt", Bytes: 1,
			AppliedAt: time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)},
	}))

	req := httptest.NewRequest(http.MethodGet, "/history?run=run-1", nil)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var actions []model.Action
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &actions))
	require.Len(t, actions, 3, "only the requested run comes back")
	assert.Equal(t, "a.txt", actions[0].Path, "run history is in applied order")
}

func TestHandleHistoryBadLimit(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/history?n=nope", nil)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var actions []model.Action
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &actions))
	assert.Len(t, actions, 3, "an unparseable limit falls back to the default")
}

func TestHandleStop(t *testing.T) {
	s := newTestServer(t)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/stop", nil)
		rec := httptest.NewRecorder()
		s.echo.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	select {
	case <-s.StopCh():
	default:
		t.Fatal("stop request did not signal the stop channel")
	}
}
