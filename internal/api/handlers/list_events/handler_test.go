package list_events

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/service/events"
	"github.com/m04kA/SMC-StudioService/pkg/logger"
)

type fakeService struct {
	events []events.EventResponse
	err    error
}

func (f *fakeService) List(_ context.Context) ([]events.EventResponse, error) {
	return f.events, f.err
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name     string
		svc      *fakeService
		wantCode int
		wantBody string
	}{
		{
			name: "ok",
			svc: &fakeService{events: []events.EventResponse{{
				ID:        "7c0e1a52-6f4c-4d7b-9d43-0b7d6f1d2a11",
				Title:     "Full Moon Circle",
				StartDate: "2026-03-03T14:00:00Z",
				When:      "Mar 3, 2026, 9:00 AM",
			}}},
			wantCode: http.StatusOK,
			wantBody: `[{"id":"7c0e1a52-6f4c-4d7b-9d43-0b7d6f1d2a11","title":"Full Moon Circle","startDate":"2026-03-03T14:00:00Z","when":"Mar 3, 2026, 9:00 AM"}]`,
		},
		{
			name:     "empty",
			svc:      &fakeService{events: []events.EventResponse{}},
			wantCode: http.StatusOK,
			wantBody: `[]`,
		},
		{
			name:     "service error",
			svc:      &fakeService{err: errors.New("boom")},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(tt.svc, logger.NewNop())
			rec := httptest.NewRecorder()

			h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/events", nil))

			require.Equal(t, tt.wantCode, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
