package server

import (
	"io"
	"net/http"

	"github.com/matzehuels/creativeforge/pkg/buildinfo"
	"github.com/matzehuels/creativeforge/pkg/compliance"
	"github.com/matzehuels/creativeforge/pkg/errors"
	"github.com/matzehuels/creativeforge/pkg/format"
	"github.com/matzehuels/creativeforge/pkg/pipeline"
	"github.com/matzehuels/creativeforge/pkg/scene"
)

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "healthy", Service: ServiceName, Version: buildinfo.Version})
}

type formatsResponse struct {
	Formats []format.Format `json:"formats"`
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, formatsResponse{Formats: s.runner.Registry.All()})
}

// validateRequest accepts the scene under "scene" or, for editor clients,
// "canvasState".
type validateRequest struct {
	Scene       *scene.Scene           `json:"scene"`
	CanvasState *scene.Scene           `json:"canvasState"`
	Guidelines  *compliance.Guidelines `json:"guidelines"`
}

type validateResponse struct {
	Success    bool              `json:"success"`
	Compliance compliance.Report `json:"compliance"`
	SceneHash  string            `json:"sceneHash"`
	Cached     bool              `json:"cached"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	sc := req.Scene
	if sc == nil {
		sc = req.CanvasState
	}
	if sc == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "request needs a scene"))
		return
	}

	res, err := s.runner.Evaluate(r.Context(), *sc, s.guidelines(req.Guidelines))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, validateResponse{
		Success:    true,
		Compliance: res.Report,
		SceneHash:  res.SceneHash,
		Cached:     res.CacheHit,
	})
}

type adaptRequest struct {
	Scene *scene.Scene `json:"scene"`
	// Formats are registry keys; empty selects every format.
	Formats    []string               `json:"formats"`
	Guidelines *compliance.Guidelines `json:"guidelines"`
}

type adaptResponse struct {
	Success  bool               `json:"success"`
	Variants []pipeline.Variant `json:"variants"`
}

func (s *Server) handleAdapt(w http.ResponseWriter, r *http.Request) {
	var req adaptRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Scene == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "request needs a scene"))
		return
	}

	variants, err := s.runner.Export(r.Context(), *req.Scene, pipeline.Options{
		Formats:    req.Formats,
		Guidelines: s.guidelines(req.Guidelines),
		Logger:     s.logger,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, adaptResponse{Success: true, Variants: variants})
}

type uploadResponse struct {
	Success   bool   `json:"success"`
	SourceRef string `json:"sourceRef"`
	Filename  string `json:"filename"`
	pipeline.ImageInfo
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if s.opts.Ingestor == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeUnsupported, "image uploads are disabled"))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(s.opts.MaxUploadBytes); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed upload"))
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "no image provided"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, s.opts.MaxUploadBytes+1))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read upload"))
		return
	}
	if int64(len(data)) > s.opts.MaxUploadBytes {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "image exceeds %d bytes", s.opts.MaxUploadBytes))
		return
	}

	info, err := pipeline.DescribeImage(data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ref, err := s.opts.Ingestor.Ingest(r.Context(), header.Filename, data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("image uploaded", "filename", header.Filename, "ref", ref, "size", info.Size)
	writeJSON(w, http.StatusOK, uploadResponse{
		Success:   true,
		SourceRef: ref,
		Filename:  header.Filename,
		ImageInfo: info,
	})
}

// guidelines returns g, or the server defaults when the request has none.
func (s *Server) guidelines(g *compliance.Guidelines) compliance.Guidelines {
	if g == nil {
		return s.opts.Guidelines
	}
	return *g
}
