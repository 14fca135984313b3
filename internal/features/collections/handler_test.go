package collections

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/xyz-asif/datejar/internal/jar"
)

// fakeRemote is a slice-backed jar.Remote. failItems makes per-item idea
// writes fail so cascade behavior can be observed.
type fakeRemote struct {
	ideas     []jar.Idea
	cols      []jar.Collection
	next      int
	failItems bool
}

func (f *fakeRemote) ListIdeas(ctx context.Context) ([]jar.Idea, error) {
	return append([]jar.Idea(nil), f.ideas...), nil
}

func (f *fakeRemote) CreateIdea(ctx context.Context, idea jar.Idea) (jar.Idea, error) {
	f.next++
	idea.ID = jar.ConfirmedID(fmt.Sprintf("srv-%d", f.next))
	f.ideas = append([]jar.Idea{idea}, f.ideas...)
	return idea, nil
}

func (f *fakeRemote) UpdateIdea(ctx context.Context, id string, patch jar.IdeaPatch) error {
	if f.failItems {
		return errors.New("item write refused")
	}
	for i := range f.ideas {
		if f.ideas[i].ID.String() == id {
			patch.Apply(&f.ideas[i])
			return nil
		}
	}
	return jar.ErrIdeaNotFound
}

func (f *fakeRemote) DeleteIdea(ctx context.Context, id string) error {
	if f.failItems {
		return errors.New("item write refused")
	}
	for i := range f.ideas {
		if f.ideas[i].ID.String() == id {
			f.ideas = append(f.ideas[:i], f.ideas[i+1:]...)
			return nil
		}
	}
	return jar.ErrIdeaNotFound
}

func (f *fakeRemote) ListCollections(ctx context.Context) ([]jar.Collection, error) {
	return append([]jar.Collection(nil), f.cols...), nil
}

func (f *fakeRemote) CreateCollection(ctx context.Context, name string) (jar.Collection, error) {
	f.next++
	col := jar.Collection{ID: fmt.Sprintf("col-%d", f.next), Name: name}
	f.cols = append(f.cols, col)
	return col, nil
}

func (f *fakeRemote) RenameCollection(ctx context.Context, id, newName string) error {
	for i := range f.cols {
		if f.cols[i].ID == id {
			f.cols[i].Name = newName
			return nil
		}
	}
	return jar.ErrCollectionNotFound
}

func (f *fakeRemote) DeleteCollection(ctx context.Context, id string) error {
	for i := range f.cols {
		if f.cols[i].ID == id {
			f.cols = append(f.cols[:i], f.cols[i+1:]...)
			return nil
		}
	}
	return jar.ErrCollectionNotFound
}

type fakeSnapshot struct {
	saved []jar.Idea
}

func (s *fakeSnapshot) SaveIdeas(ideas []jar.Idea) error { return nil }
func (s *fakeSnapshot) LoadIdeas() ([]jar.Idea, error)  { return s.saved, nil }

func newTestRouter(t *testing.T, remote *fakeRemote) (*gin.Engine, *jar.Controller) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := jar.New(remote, &fakeSnapshot{}, nil)
	require.NoError(t, ctrl.Load(context.Background()))

	handler := NewHandler(ctrl)
	r := gin.New()
	r.GET("/collections", handler.List)
	r.POST("/collections", handler.Create)
	r.PUT("/collections/:id", handler.Rename)
	r.DELETE("/collections/:id", handler.Delete)
	return r, ctrl
}

func putJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestListSeedsDefaults(t *testing.T) {
	r, _ := newTestRouter(t, &fakeRemote{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/collections", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)

	var body struct {
		Data struct {
			Collections []jar.Collection `json:"collections"`
			Offline     bool             `json:"offline"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data.Collections, len(jar.DefaultCollections))
	require.False(t, body.Data.Offline)
}

func TestCreateDuplicateName(t *testing.T) {
	r, _ := newTestRouter(t, &fakeRemote{})

	data, _ := json.Marshal(CreateCollectionRequest{Name: jar.DefaultCollection})
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/collections", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, 409, w.Code)
}

func TestRenameRewritesIdeas(t *testing.T) {
	remote := &fakeRemote{}
	r, ctrl := newTestRouter(t, remote)

	ctrl.CreateIdea(context.Background(), jar.Idea{Title: "Kino", Type: "Aktivitäten"})

	var target jar.Collection
	for _, col := range ctrl.Collections() {
		if col.Name == "Aktivitäten" {
			target = col
		}
	}
	require.NotEmpty(t, target.ID)

	w := putJSON(r, "/collections/"+target.ID, RenameCollectionRequest{Name: "Abende"})
	require.Equal(t, 200, w.Code)

	for _, idea := range ctrl.Ideas() {
		require.Equal(t, "Abende", idea.Type)
	}
	require.False(t, ctrl.Offline())
}

func TestDeleteLastCollectionRejected(t *testing.T) {
	remote := &fakeRemote{}
	r, ctrl := newTestRouter(t, remote)

	cols := ctrl.Collections()
	for _, col := range cols[:len(cols)-1] {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/collections/"+col.ID, nil)
		r.ServeHTTP(w, req)
		require.Equal(t, 200, w.Code)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/collections/"+cols[len(cols)-1].ID, nil)
	r.ServeHTTP(w, req)
	require.Equal(t, 409, w.Code)
}

func TestDeletePartialFailureStillSucceedsLocally(t *testing.T) {
	remote := &fakeRemote{}
	r, ctrl := newTestRouter(t, remote)

	idea := ctrl.CreateIdea(context.Background(), jar.Idea{Title: "Kino", Type: "Aktivitäten"})
	require.False(t, idea.ID.Pending())
	remote.failItems = true

	var target jar.Collection
	for _, col := range ctrl.Collections() {
		if col.Name == "Aktivitäten" {
			target = col
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/collections/"+target.ID, nil)
	r.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)

	var body struct {
		Data struct {
			Offline bool   `json:"offline"`
			Warning string `json:"warning"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.True(t, body.Data.Offline)
	require.NotEmpty(t, body.Data.Warning)

	// The collection and its ideas are gone locally despite the remote failure.
	require.Empty(t, ctrl.Ideas())
	require.Len(t, ctrl.Collections(), len(jar.DefaultCollections)-1)
}
