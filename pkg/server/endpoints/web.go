package endpoints

import (
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/ppa-angola/portal-pedagogico/pkg/library"
	"github.com/ppa-angola/portal-pedagogico/pkg/server"
)

// RegisterWebEndpoints registers the /api catch-all, the local library
// file server and the single page application. It must run after every
// other registration since its routes are prefixes.
func RegisterWebEndpoints(s *server.Server) {
	s.Router.PathPrefix("/api/").HandlerFunc(handleUnknownAPI)

	if local, ok := s.Library.(*library.Local); ok {
		s.Router.PathPrefix("/biblioteca/").Handler(
			http.StripPrefix("/biblioteca/", http.FileServer(http.Dir(local.Root()))),
		)
	}

	if s.Config != nil && s.Config.StaticDir != "" {
		s.Router.PathPrefix("/").Handler(spaHandler{staticPath: s.Config.StaticDir, indexPath: "index.html"})
	}
}

func handleUnknownAPI(w http.ResponseWriter, r *http.Request) {
	respondWithError(w, http.StatusNotFound, fmt.Sprintf("API endpoint not found: %s %s", r.Method, r.URL.RequestURI()))
}

func noCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
}

// spaHandler serves files from staticPath and falls back to the index for
// client-side routes.
type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p := filepath.Join(h.staticPath, filepath.FromSlash(path.Clean("/"+r.URL.Path)))

	fi, err := os.Stat(p)
	if err == nil && !fi.IsDir() && filepath.Base(p) != h.indexPath {
		http.ServeFile(w, r, p)
		return
	}
	if err != nil && !os.IsNotExist(err) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	index := filepath.Join(h.staticPath, h.indexPath)
	f, err := os.Open(index)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		http.NotFound(w, r)
		return
	}

	noCache(w)
	http.ServeContent(w, r, h.indexPath, st.ModTime(), f)
}
