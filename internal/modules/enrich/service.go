package enrich

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"stayfinder/internal/domain"
)

const defaultWorkers = 8

type Service struct {
	images  ImageSource
	workers int
	logger  *logrus.Logger
}

func NewService(images ImageSource, workers int, logger *logrus.Logger) *Service {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Service{images: images, workers: workers, logger: logger}
}

// Enrich fetches image URLs for every candidate concurrently and returns
// the full set in input order, only after each dispatched lookup reached a
// terminal state. A failed or cancelled lookup leaves that candidate's
// image list empty; it never fails the batch and never blocks the join.
func (s *Service) Enrich(ctx context.Context, session *domain.Session, candidates []domain.RoomCandidate) []domain.RoomCandidate {
	out := make([]domain.RoomCandidate, len(candidates))
	copy(out, candidates)
	if len(out) == 0 {
		return out
	}

	workers := s.workers
	if workers > len(out) {
		workers = len(out)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	// Barrier keyed by dispatch count: one Done per candidate, success or
	// not. Each worker writes only its own slot, so no further locking.
	wg.Add(len(out))
	var softFailures atomic.Int64

	for w := 0; w < workers; w++ {
		go func() {
			for i := range jobs {
				s.fetchInto(ctx, out, i, &softFailures)
				wg.Done()
			}
		}()
	}

	for i := range out {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	s.logger.WithFields(logrus.Fields{
		"user_id":       session.UserID,
		"candidates":    len(out),
		"soft_failures": softFailures.Load(),
	}).Info("enrichment joined")

	return out
}

func (s *Service) fetchInto(ctx context.Context, out []domain.RoomCandidate, i int, softFailures *atomic.Int64) {
	out[i].ImageURLs = []string{}

	if err := ctx.Err(); err != nil {
		softFailures.Add(1)
		return
	}

	urls, err := s.images.HotelImages(ctx, out[i].HotelID)
	if err != nil {
		softFailures.Add(1)
		s.logger.WithFields(logrus.Fields{
			"hotel_id": out[i].HotelID,
			"room_id":  out[i].RoomID,
		}).WithError(err).Warn("image lookup failed, continuing without images")
		return
	}
	out[i].ImageURLs = urls
}
