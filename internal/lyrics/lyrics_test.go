package lyrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseSynced(t *testing.T) {
	in := "[00:12.50] First line\n[00:15.00]   \nnot a lyric\n[01:02.25]Second line\n"
	got := ParseSynced(in)
	if len(got) != 2 {
		t.Fatalf("ParseSynced() returned %d lines, want 2: %+v", len(got), got)
	}
	if got[0].Time != 12.5 || got[0].Text != "First line" {
		t.Fatalf("line 0 = %+v", got[0])
	}
	if got[1].Time != 62.25 || got[1].Text != "Second line" {
		t.Fatalf("line 1 = %+v", got[1])
	}
	if ParseSynced("") != nil {
		t.Fatal("expected nil for empty input")
	}
}

func TestActiveLine(t *testing.T) {
	lines := []Line{{Time: 10}, {Time: 20}, {Time: 30}}
	cases := map[float64]int{0: -1, 10: 0, 19.9: 0, 20: 1, 99: 2}
	for at, want := range cases {
		if got := ActiveLine(lines, at); got != want {
			t.Errorf("ActiveLine(%v) = %d, want %d", at, got, want)
		}
	}
}

func TestFetchSendsQueryAndParses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("artist_name") != "Nina Simone" || q.Get("track_name") != "Sinnerman" ||
			q.Get("album_name") != "Pastel Blues" || q.Get("duration") != "622" {
			t.Errorf("unexpected query %v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"plainLyrics":"Oh sinnerman","syncedLyrics":"[00:01.00]Oh sinnerman"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	res, err := c.Fetch(context.Background(), Query{
		Artist: "Nina Simone", Title: "Sinnerman", Album: "Pastel Blues", Duration: 621.6,
	})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(res.Synced) != 1 || res.Plain != "Oh sinnerman" {
		t.Fatalf("Fetch() = %+v", res)
	}
}

func TestFetchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Fetch(context.Background(), Query{Title: "x"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Fetch() error = %v, want ErrNotFound", err)
	}
}

func TestFetchNetworkFailureIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second).Fetch(context.Background(), Query{Title: "x"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Fetch() error = %v, want ErrNotFound", err)
	}
}

func TestFetchEmptyBodyIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL, time.Second).Fetch(context.Background(), Query{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Fetch() error = %v, want ErrNotFound", err)
	}
}

func TestTrackerSupersedes(t *testing.T) {
	var tr Tracker
	a := tr.Begin("/a.mp3")
	b := tr.Begin("/b.mp3")
	if tr.Current(a) {
		t.Fatal("stale ticket reported current")
	}
	if !tr.Current(b) {
		t.Fatal("latest ticket not current")
	}
	again := tr.Begin("/a.mp3")
	if tr.Current(a) || !tr.Current(again) {
		t.Fatal("replaying the same path must not revive an old ticket")
	}
}
