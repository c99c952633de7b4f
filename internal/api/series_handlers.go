package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerSeriesRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listSeries",
		Method:      http.MethodGet,
		Path:        "/series",
		Summary:     "List series",
		Description: "Returns all sticker series",
		Tags:        []string{"Series"},
	}, s.handleListSeries)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSeries",
		Method:      http.MethodGet,
		Path:        "/series/{id}",
		Summary:     "Get series",
		Description: "Returns a series by ID",
		Tags:        []string{"Series"},
	}, s.handleGetSeries)
}

// === DTOs ===

// SeriesResponse contains series data in API responses.
type SeriesResponse struct {
	ID        string    `json:"id" doc:"Series ID"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
}

// ListSeriesResponse contains a list of series.
type ListSeriesResponse struct {
	Series []SeriesResponse `json:"series" doc:"List of series"`
}

// ListSeriesOutput wraps the list series response for Huma.
type ListSeriesOutput struct {
	Body ListSeriesResponse
}

// GetSeriesInput contains parameters for getting a series.
type GetSeriesInput struct {
	ID string `path:"id" doc:"Series ID"`
}

// SeriesOutput wraps the series response for Huma.
type SeriesOutput struct {
	Body SeriesResponse
}

// === Handlers ===

func (s *Server) handleListSeries(ctx context.Context, _ *struct{}) (*ListSeriesOutput, error) {
	series, err := s.seriesService.ListSeries(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]SeriesResponse, len(series))
	for i, sr := range series {
		resp[i] = SeriesResponse{
			ID:        sr.ID,
			CreatedAt: sr.CreatedAt,
		}
	}

	return &ListSeriesOutput{Body: ListSeriesResponse{Series: resp}}, nil
}

func (s *Server) handleGetSeries(ctx context.Context, input *GetSeriesInput) (*SeriesOutput, error) {
	sr, err := s.seriesService.GetSeries(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &SeriesOutput{
		Body: SeriesResponse{
			ID:        sr.ID,
			CreatedAt: sr.CreatedAt,
		},
	}, nil
}
