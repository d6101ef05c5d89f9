// ABOUTME: Tests for the Qdrant HTTP index against a stub server
// ABOUTME: Covers collection lifecycle, schema mismatch, search decoding, and scroll-delete
package index

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
)

// newTestIndex points a QdrantIndex at a stub server.
func newTestIndex(t *testing.T, handler http.Handler) (*QdrantIndex, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	hostPort := strings.TrimPrefix(srv.URL, "http://")
	host, portStr, err := net.SplitHostPort(hostPort)
	if err != nil {
		t.Fatalf("splitting host:port: %v", err)
	}
	port, _ := strconv.Atoi(portStr)

	idx, err := NewQdrantIndex(host, port, "textbook_content", 4)
	if err != nil {
		t.Fatalf("NewQdrantIndex() error = %v", err)
	}
	return idx, srv
}

func collectionOKHandler(dim int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"result":{"config":{"params":{"vectors":{"size":%d,"distance":"Cosine"}}}}}`, dim)
	}
}

func TestNewQdrantIndex_CreatesMissingCollection(t *testing.T) {
	created := false
	mux := http.NewServeMux()
	mux.HandleFunc("/collections/textbook_content", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			if created {
				collectionOKHandler(4)(w, r)
				return
			}
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPut:
			var body struct {
				Vectors struct {
					Size     int    `json:"size"`
					Distance string `json:"distance"`
				} `json:"vectors"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("decoding create body: %v", err)
			}
			if body.Vectors.Size != 4 || body.Vectors.Distance != "Cosine" {
				t.Errorf("create body = %+v, want size 4 distance Cosine", body.Vectors)
			}
			created = true
			fmt.Fprint(w, `{"result":true}`)
		}
	})

	newTestIndex(t, mux)
	if !created {
		t.Error("collection was not created")
	}
}

func TestNewQdrantIndex_SchemaMismatch(t *testing.T) {
	srv := httptest.NewServer(collectionOKHandler(384))
	defer srv.Close()

	hostPort := strings.TrimPrefix(srv.URL, "http://")
	host, portStr, _ := net.SplitHostPort(hostPort)
	port, _ := strconv.Atoi(portStr)

	_, err := NewQdrantIndex(host, port, "textbook_content", 4)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error = %v, want ConfigError", err)
	}
	if cfgErr.GotDim != 384 || cfgErr.WantDim != 4 {
		t.Errorf("ConfigError dims = got %d want %d", cfgErr.GotDim, cfgErr.WantDim)
	}
}

func TestNewQdrantIndex_Unreachable(t *testing.T) {
	// Grab a free port and close the listener so nothing is listening
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listening: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	_, err = NewQdrantIndex("127.0.0.1", port, "textbook_content", 4)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
}

func TestQdrantIndex_Search(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/collections/textbook_content", collectionOKHandler(4))
	mux.HandleFunc("/collections/textbook_content/points/search", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Vector      []float64 `json:"vector"`
			Limit       int       `json:"limit"`
			WithPayload bool      `json:"with_payload"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding search body: %v", err)
		}
		if body.Limit != 2 || !body.WithPayload {
			t.Errorf("search body = %+v, want limit 2 with_payload true", body)
		}
		fmt.Fprint(w, `{"result":[
			{"id":"a","score":0.91,"payload":{"chapter_id":"ch1","text":"alpha","title":"Intro","chunk_index":0,"total_chunks":2}},
			{"id":"b","score":0.45,"payload":{"chapter_id":"ch2","text":"beta","title":"Robotics","chunk_index":1,"total_chunks":3}}
		]}`)
	})

	idx, _ := newTestIndex(t, mux)

	results, err := idx.Search([]float64{1, 0, 0, 0}, 2)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].ID != "a" || results[0].Score != 0.91 {
		t.Errorf("first hit = %+v", results[0])
	}
	if results[0].Payload.ChapterID != "ch1" || results[0].Payload.Title != "Intro" {
		t.Errorf("first payload = %+v", results[0].Payload)
	}
}

func TestQdrantIndex_DeleteByChapter_Paginates(t *testing.T) {
	scrolls := 0
	deleted := 0

	mux := http.NewServeMux()
	mux.HandleFunc("/collections/textbook_content", collectionOKHandler(4))
	mux.HandleFunc("/collections/textbook_content/points/scroll", func(w http.ResponseWriter, r *http.Request) {
		scrolls++
		switch scrolls {
		case 1:
			fmt.Fprint(w, `{"result":{"points":[{"id":"a"},{"id":"b"}]}}`)
		case 2:
			fmt.Fprint(w, `{"result":{"points":[{"id":"c"}]}}`)
		default:
			fmt.Fprint(w, `{"result":{"points":[]}}`)
		}
	})
	mux.HandleFunc("/collections/textbook_content/points/delete", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Points []string `json:"points"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding delete body: %v", err)
		}
		deleted += len(body.Points)
		fmt.Fprint(w, `{"result":true}`)
	})

	idx, _ := newTestIndex(t, mux)

	removed, err := idx.DeleteByChapter("ch1")
	if err != nil {
		t.Fatalf("DeleteByChapter() error = %v", err)
	}
	if removed != 3 {
		t.Errorf("removed = %d, want 3", removed)
	}
	if deleted != 3 {
		t.Errorf("server saw %d deletes, want 3", deleted)
	}
	if scrolls != 3 {
		t.Errorf("scroll calls = %d, want 3", scrolls)
	}
}

func TestOpen_FallsBackToMemory(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listening: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	idx, err := Open("127.0.0.1", port, "textbook_content", 4)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, ok := idx.(*MemoryIndex); !ok {
		t.Errorf("Open() returned %T, want *MemoryIndex fallback", idx)
	}
}
