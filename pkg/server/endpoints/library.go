package endpoints

import (
	"encoding/base64"
	"errors"
	"net/http"
	"path"

	"github.com/ppa-angola/portal-pedagogico/pkg/audit"
	"github.com/ppa-angola/portal-pedagogico/pkg/library"
	"github.com/ppa-angola/portal-pedagogico/pkg/logger"
	"github.com/ppa-angola/portal-pedagogico/pkg/server"
)

const (
	msgInvalidPath    = "Caminho inválido"
	msgFileNotFound   = "Arquivo não encontrado"
	msgFolderExists   = "Pasta já existe"
	msgExtractFailed  = "Erro ao extrair texto do documento"
	msgUploadFailed   = "Erro ao enviar arquivo"
	msgMissingFile    = "Nenhum arquivo enviado"
	maxUploadBytes    = 100 << 20
	uploadMemoryBytes = 32 << 20
)

// RegisterLibraryEndpoints registers the document library routes
func RegisterLibraryEndpoints(s *server.Server) {
	log := s.Log.With("component", "library")
	lib := s.Library

	s.Router.Handle("/api/library/files", s.Protected(handleLibraryTree(lib, log))).Methods("GET")
	s.Router.Handle("/api/library/view/{filepath:.+}", s.Protected(handleLibraryView(lib, log))).Methods("GET")
	s.Router.Handle("/api/library/extract-text/{filepath:.+}", s.Protected(handleLibraryExtract(lib, log))).Methods("GET")

	s.Router.Handle("/api/admin/library/upload", s.AdminOnly(handleLibraryUpload(lib, log))).Methods("POST")
	s.Router.Handle("/api/admin/library/file", s.AdminOnly(handleLibraryDelete(lib, log))).Methods("DELETE")
	s.Router.Handle("/api/admin/library/folder", s.AdminOnly(handleLibraryMkdir(lib, log))).Methods("POST")
}

// respondLibraryError maps storage errors to the client messages.
func respondLibraryError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, library.ErrInvalidPath):
		respondWithError(w, http.StatusBadRequest, msgInvalidPath)
	case errors.Is(err, library.ErrNotFound):
		respondWithError(w, http.StatusNotFound, msgFileNotFound)
	case errors.Is(err, library.ErrExists):
		respondWithError(w, http.StatusBadRequest, msgFolderExists)
	default:
		respondWithError(w, http.StatusInternalServerError, fallback)
	}
}

func handleLibraryTree(lib library.Storage, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tree, err := lib.Tree(r.Context())
		if err != nil {
			log.Error("failed to list library", "error", err)
			respondWithError(w, http.StatusInternalServerError, msgInternal)
			return
		}
		if tree == nil {
			tree = []library.Entry{}
		}
		respondWithJSON(w, http.StatusOK, tree)
	}
}

func readLibraryFile(r *http.Request, lib library.Storage) (string, []byte, error) {
	raw, err := pathVar(r, "filepath")
	if err != nil {
		return "", nil, library.ErrInvalidPath
	}
	p, err := library.Clean(raw)
	if err != nil {
		return "", nil, err
	}
	data, err := lib.Read(r.Context(), p)
	return p, data, err
}

func handleLibraryView(lib library.Storage, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, data, err := readLibraryFile(r, lib)
		if err != nil {
			if !errors.Is(err, library.ErrNotFound) && !errors.Is(err, library.ErrInvalidPath) {
				log.Error("failed to read library file", "path", p, "error", err)
			}
			respondLibraryError(w, err, msgInternal)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]string{"base64": base64.StdEncoding.EncodeToString(data)})
	}
}

func handleLibraryExtract(lib library.Storage, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, data, err := readLibraryFile(r, lib)
		if err != nil {
			respondLibraryError(w, err, msgExtractFailed)
			return
		}
		text, err := library.ExtractText(path.Base(p), data)
		if err != nil {
			log.Error("failed to extract text", "path", p, "error", err)
			respondWithError(w, http.StatusInternalServerError, msgExtractFailed)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]string{"text": text})
	}
}

func auditLibrary(r *http.Request, op, p string, err error) {
	event := audit.LibraryEvent{
		UserID:    caller(r).UserID,
		ClientIP:  clientIP(r),
		Path:      p,
		Operation: op,
		Success:   err == nil,
	}
	if err != nil {
		event.ErrorMessage = err.Error()
	}
	audit.Log(event)
}

func handleLibraryUpload(lib library.Storage, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(uploadMemoryBytes); err != nil {
			respondWithError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, msgMissingFile)
			return
		}
		defer file.Close()

		saved, err := lib.Save(r.Context(), r.FormValue("folder"), header.Filename, file)
		auditLibrary(r, "upload", path.Join("/", r.FormValue("folder"), header.Filename), err)
		if err != nil {
			if !errors.Is(err, library.ErrInvalidPath) {
				log.Error("failed to save upload", "name", header.Filename, "error", err)
			}
			respondLibraryError(w, err, msgUploadFailed)
			return
		}
		log.Info("library file uploaded", "path", saved, "size", header.Size)
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true, "path": saved})
	}
}

func handleLibraryDelete(lib library.Storage, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Filepath string `json:"filepath"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		p, err := library.Clean(req.Filepath)
		if err == nil {
			err = lib.Remove(r.Context(), p)
		}
		auditLibrary(r, "delete", req.Filepath, err)
		if err != nil {
			respondLibraryError(w, err, msgInternal)
			return
		}
		log.Info("library entry removed", "path", p)
		respondSuccess(w)
	}
}

func handleLibraryMkdir(lib library.Storage, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Folderpath string `json:"folderpath"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		p, err := library.Clean(req.Folderpath)
		if err == nil {
			err = lib.Mkdir(r.Context(), p)
		}
		auditLibrary(r, "mkdir", req.Folderpath, err)
		if err != nil {
			respondLibraryError(w, err, msgInternal)
			return
		}
		log.Info("library folder created", "path", p)
		respondSuccess(w)
	}
}
