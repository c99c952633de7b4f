package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	"github.com/stickervault/stickervault-server/internal/domain"
	"github.com/stickervault/stickervault-server/internal/http/response"
	"github.com/stickervault/stickervault-server/internal/store"
)

func (s *Server) registerStickerRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listStickers",
		Method:      http.MethodGet,
		Path:        "/stickers",
		Summary:     "List stickers",
		Description: "Returns stickers, optionally filtered by series and sticker id. A stickerId filter matching exactly one row yields a single object instead of an array.",
		Tags:        []string{"Stickers"},
	}, s.handleListStickers)

	// The image route itself uses chi directly for streaming; registered
	// in setupRoutes.
}

// === DTOs ===

// ListStickersInput contains filters for listing stickers.
type ListStickersInput struct {
	SeriesID  string `query:"seriesId" doc:"Filter by series ID"`
	StickerID string `query:"stickerId" doc:"Filter by sticker ID"`
}

// StickerResponse contains sticker data in API responses.
type StickerResponse struct {
	StickerID string    `json:"sticker_id" doc:"Content address (SHA-256 of the image bytes)"`
	Path      string    `json:"path" doc:"Storage path or URL of the image"`
	SeriesID  string    `json:"series_id" doc:"Owning series ID"`
	Tags      []string  `json:"tags,omitempty" doc:"Tag names attached to this sticker"`
	CreatedAt time.Time `json:"created_at" doc:"Ingestion time"`
}

// ListStickersOutput wraps the list stickers response for Huma.
// Body is a single StickerResponse or a slice depending on the filter.
type ListStickersOutput struct {
	Body any
}

// === Handlers ===

func (s *Server) handleListStickers(ctx context.Context, input *ListStickersInput) (*ListStickersOutput, error) {
	stickers, err := s.stickerService.GetStickers(ctx, store.StickerFilter{
		SeriesID:  input.SeriesID,
		StickerID: input.StickerID,
	})
	if err != nil {
		return nil, err
	}

	if input.StickerID != "" && len(stickers) == 1 {
		single, err := s.stickerResponse(ctx, stickers[0], true)
		if err != nil {
			return nil, err
		}
		return &ListStickersOutput{Body: single}, nil
	}

	resp := make([]StickerResponse, len(stickers))
	for i, st := range stickers {
		r, err := s.stickerResponse(ctx, st, false)
		if err != nil {
			return nil, err
		}
		resp[i] = r
	}

	return &ListStickersOutput{Body: resp}, nil
}

// stickerResponse builds the API shape for a sticker, fetching tags
// only when the caller asked for a single sticker.
func (s *Server) stickerResponse(ctx context.Context, st *domain.Sticker, withTags bool) (StickerResponse, error) {
	resp := StickerResponse{
		StickerID: st.ID,
		Path:      st.Path,
		SeriesID:  st.SeriesID,
		CreatedAt: st.CreatedAt,
	}

	if withTags {
		tags, err := s.stickerService.GetTagsForSticker(ctx, st.ID)
		if err != nil {
			return StickerResponse{}, err
		}
		names := make([]string, len(tags))
		for i, t := range tags {
			names[i] = t.Name
		}
		resp.Tags = names
	}

	return resp, nil
}

// handleServeSticker streams the PNG bytes for a sticker. The sticker
// id doubles as a strong ETag since content addressing makes the bytes
// immutable for a given id.
func (s *Server) handleServeSticker(w http.ResponseWriter, r *http.Request) {
	seriesID := chi.URLParam(r, "seriesID")
	stickerID := chi.URLParam(r, "stickerID")

	if seriesID == "" || stickerID == "" {
		response.BadRequest(w, "series and sticker ids are required", s.logger)
		return
	}

	etag := `"` + stickerID + `"`

	if match := r.Header.Get("If-None-Match"); match != "" {
		if match == "*" || strings.Trim(match, `"`) == stickerID {
			w.Header().Set("ETag", etag)
			w.Header().Set("Cache-Control", stickerCacheControl)
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	data, err := s.stickerService.FetchImage(r.Context(), seriesID, stickerID)
	if err != nil {
		// No caching headers on misses: a cached 404 would mask the
		// sticker once it is ingested.
		response.HandleError(w, err, s.logger)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", stickerCacheControl)
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}
