package search

import (
	"context"

	"stayfinder/internal/backend"
	"stayfinder/internal/domain"
)

// RoomSearcher issues the availability query against the booking service.
type RoomSearcher interface {
	SearchFreeRooms(ctx context.Context, token string, req backend.SearchRequest) ([]domain.RoomCandidate, error)
}

// Enricher augments candidates with auxiliary data after the primary query.
type Enricher interface {
	Enrich(ctx context.Context, session *domain.Session, candidates []domain.RoomCandidate) []domain.RoomCandidate
}
