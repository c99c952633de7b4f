package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/stickervault/stickervault-server/internal/http/response"
	"github.com/stickervault/stickervault-server/internal/upload"
)

// uploadForm carries the non-file fields of the upload request.
type uploadForm struct {
	SeriesID string `json:"series_id" validate:"omitempty,max=64,printascii"`
}

// handleUpload ingests a sticker batch: a JSON manifest under the
// "record" field plus the PNG files under "files". Validation failures
// accumulate and come back as one 400 with newline-joined messages.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Memory cap for multipart parsing; larger parts spill to disk.
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		response.BadRequest(w, "malformed multipart request", s.logger)
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	form := uploadForm{SeriesID: r.FormValue("series_id")}
	if err := s.validator.Validate(form); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	seriesID := form.SeriesID
	if seriesID == "" {
		seriesID = uuid.NewString()
	}

	manifest := []byte(r.FormValue("record"))
	if len(manifest) == 0 {
		response.BadRequest(w, "record: manifest is required", s.logger)
		return
	}

	records, err := upload.ParseManifest(manifest, s.manifestMax)
	if err != nil {
		var validationErr *upload.ValidationError
		if errors.As(err, &validationErr) {
			response.BadRequest(w, validationErr.Error(), s.logger)
			return
		}
		response.HandleError(w, err, s.logger)
		return
	}

	files, err := s.readUploadFiles(r)
	if err != nil {
		response.InternalError(w, "failed to read uploaded files", s.logger)
		return
	}

	if err := upload.ValidateFiles(files, records, s.uploadLimits); err != nil {
		var validationErr *upload.ValidationError
		if errors.As(err, &validationErr) {
			response.BadRequest(w, validationErr.Error(), s.logger)
			return
		}
		response.HandleError(w, err, s.logger)
		return
	}

	if err := s.stickerService.IngestBatch(r.Context(), seriesID, records, files); err != nil {
		s.logger.Error("Batch ingestion failed", "error", err, "series_id", seriesID)
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, map[string]string{"series_id": seriesID}, s.logger)
}

// readUploadFiles drains the "files" parts into memory. Per-file size
// limits are enforced later by upload.ValidateFiles.
func (s *Server) readUploadFiles(r *http.Request) ([]upload.File, error) {
	headers := r.MultipartForm.File["files"]
	files := make([]upload.File, 0, len(headers))

	for _, fh := range headers {
		part, err := fh.Open()
		if err != nil {
			return nil, err
		}

		// Read at most one byte past the limit so oversize files are
		// flagged without buffering arbitrary amounts.
		data, err := io.ReadAll(io.LimitReader(part, s.uploadLimits.MaxFileBytes+1))
		_ = part.Close()
		if err != nil {
			return nil, err
		}

		files = append(files, upload.File{
			Name:        fh.Filename,
			Size:        int64(len(data)),
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	return files, nil
}
