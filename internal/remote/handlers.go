package remote

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/olivier-w/crossroads/internal/library"
	"github.com/olivier-w/crossroads/internal/smart"
)

type songView struct {
	Path     string  `json:"path"`
	Title    string  `json:"title"`
	Artist   string  `json:"artist"`
	Album    string  `json:"album"`
	Duration float64 `json:"duration"`
}

func viewOf(s library.Song) songView {
	return songView{Path: s.Path, Title: s.Title, Artist: s.Artist, Album: s.Album, Duration: s.Duration}
}

func viewsOf(songs []library.Song) []songView {
	out := make([]songView, len(songs))
	for i, s := range songs {
		out[i] = viewOf(s)
	}
	return out
}

type statusView struct {
	State    string    `json:"state"`
	Song     *songView `json:"song,omitempty"`
	Index    int       `json:"index"`
	QueueLen int       `json:"queue_len"`
	Elapsed  float64   `json:"elapsed"`
	Duration float64   `json:"duration"`
	Volume   float64   `json:"volume"`
	Shuffle  bool      `json:"shuffle"`
	Repeat   string    `json:"repeat"`
}

func (s *Server) statusView() statusView {
	st := s.deps.Player.Status()
	v := statusView{
		State:    st.State.String(),
		Index:    st.Index,
		QueueLen: st.QueueLen,
		Elapsed:  st.Elapsed,
		Duration: st.Duration,
		Volume:   st.Volume,
		Shuffle:  st.Shuffle,
		Repeat:   st.Repeat.String(),
	}
	if st.Loaded {
		song := viewOf(st.Song)
		v.Song = &song
	}
	return v
}

func (s *Server) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.statusView())
}

// transport runs a controller action and replies with the new status.
func (s *Server) transport(action func(Transport)) gin.HandlerFunc {
	return func(c *gin.Context) {
		action(s.deps.Player)
		c.JSON(http.StatusOK, s.statusView())
	}
}

type rankedView struct {
	songView
	Count int `json:"count"`
}

func (s *Server) getTopSongs(c *gin.Context) {
	w, ok := parseWindow(c)
	if !ok {
		return
	}
	in := s.input()
	top := smart.TopSongs(in.Stats.PlayHistory, in.Catalog, w, s.deps.Now(), smart.TopSongsLimit)
	out := make([]rankedView, len(top))
	for i, r := range top {
		out[i] = rankedView{songView: viewOf(r.Song), Count: r.Count}
	}
	c.JSON(http.StatusOK, gin.H{"window": string(w), "songs": out})
}

func (s *Server) getDashboard(c *gin.Context) {
	w, ok := parseWindow(c)
	if !ok {
		return
	}
	d := smart.BuildDashboard(s.input(), w, s.deps.Now())
	c.JSON(http.StatusOK, gin.H{
		"window":        string(d.Window),
		"label":         d.Window.Label(),
		"plays":         d.Plays,
		"unique_tracks": d.UniqueTracks,
		"total_hours":   d.TotalHours(),
	})
}

type playlistView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Songs int    `json:"songs"`
}

func (s *Server) getPlaylists(c *gin.Context) {
	var out []playlistView
	if s.deps.Playlists != nil {
		for _, p := range s.deps.Playlists.List() {
			out = append(out, playlistView{ID: p.ID, Name: p.Name, Kind: "user", Songs: len(p.Songs)})
		}
	}
	in := s.input()
	for _, k := range smart.Kinds() {
		out = append(out, playlistView{ID: string(k), Name: k.Name(), Kind: "smart", Songs: len(smart.Evaluate(k, in))})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getSmart(c *gin.Context) {
	kind, err := smart.ParseKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"kind": string(kind), "name": kind.Name(), "songs": viewsOf(smart.Evaluate(kind, s.input()))})
}
