package enrich

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayfinder/internal/domain"
)

// fakeImageSource resolves per-hotel fixtures with optional injected delay
// and failure, counting dispatches and terminal completions so tests can
// check the join barrier.
type fakeImageSource struct {
	urls       map[int64][]string
	fail       map[int64]error
	delay      map[int64]time.Duration
	dispatched atomic.Int64
	terminal   atomic.Int64
}

func (f *fakeImageSource) HotelImages(ctx context.Context, hotelID int64) ([]string, error) {
	f.dispatched.Add(1)
	defer f.terminal.Add(1)

	if d, ok := f.delay[hotelID]; ok {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err, ok := f.fail[hotelID]; ok {
		return nil, err
	}
	return f.urls[hotelID], nil
}

func candidates(hotelIDs ...int64) []domain.RoomCandidate {
	out := make([]domain.RoomCandidate, 0, len(hotelIDs))
	for i, id := range hotelIDs {
		out = append(out, domain.RoomCandidate{RoomID: int64(i + 1), HotelID: id})
	}
	return out
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestEnrich_AllSucceed(t *testing.T) {
	source := &fakeImageSource{
		urls: map[int64][]string{
			10: {"http://img/10a", "http://img/10b"},
			11: {"http://img/11a"},
			12: {},
		},
	}

	svc := NewService(source, 4, quietLogger())
	got := svc.Enrich(context.Background(), &domain.Session{UserID: 1}, candidates(10, 11, 12))

	require.Len(t, got, 3)
	assert.Equal(t, []string{"http://img/10a", "http://img/10b"}, got[0].ImageURLs)
	assert.Equal(t, []string{"http://img/11a"}, got[1].ImageURLs)
	assert.Empty(t, got[2].ImageURLs)
}

func TestEnrich_SoftFailuresKeepCandidates(t *testing.T) {
	// 5 candidates, exactly 2 failing lookups: all 5 come back, in input
	// order, with exactly 2 empty image lists.
	source := &fakeImageSource{
		urls: map[int64][]string{
			10: {"http://img/10"},
			12: {"http://img/12"},
			14: {"http://img/14"},
		},
		fail: map[int64]error{
			11: errors.New("boom"),
			13: errors.New("503"),
		},
	}

	svc := NewService(source, 3, quietLogger())
	got := svc.Enrich(context.Background(), &domain.Session{}, candidates(10, 11, 12, 13, 14))

	require.Len(t, got, 5)
	for i, hotelID := range []int64{10, 11, 12, 13, 14} {
		assert.Equal(t, hotelID, got[i].HotelID, "input order must be preserved")
	}

	empty := 0
	for _, c := range got {
		if len(c.ImageURLs) == 0 {
			empty++
		}
	}
	assert.Equal(t, 2, empty)
}

func TestEnrich_TimeoutOnOneCandidate(t *testing.T) {
	// Candidate 2's lookup times out; 1 and 3 keep their URLs.
	source := &fakeImageSource{
		urls: map[int64][]string{
			10: {"http://img/10"},
			12: {"http://img/12"},
		},
		fail:  map[int64]error{11: context.DeadlineExceeded},
		delay: map[int64]time.Duration{11: 10 * time.Millisecond},
	}

	svc := NewService(source, 3, quietLogger())
	got := svc.Enrich(context.Background(), &domain.Session{}, candidates(10, 11, 12))

	require.Len(t, got, 3)
	assert.NotEmpty(t, got[0].ImageURLs)
	assert.Empty(t, got[1].ImageURLs)
	assert.NotEmpty(t, got[2].ImageURLs)
}

func TestEnrich_JoinWaitsForEveryDispatch(t *testing.T) {
	// A deliberately slow straggler: the aggregate must not be released
	// until every dispatched lookup reached a terminal state, regardless of
	// completion order.
	source := &fakeImageSource{
		urls: map[int64][]string{
			10: {"a"}, 11: {"b"}, 12: {"c"}, 13: {"d"},
		},
		delay: map[int64]time.Duration{10: 50 * time.Millisecond},
	}

	svc := NewService(source, 4, quietLogger())
	got := svc.Enrich(context.Background(), &domain.Session{}, candidates(10, 11, 12, 13))

	assert.Equal(t, int64(4), source.dispatched.Load())
	assert.Equal(t, int64(4), source.terminal.Load(), "join released before all lookups were terminal")
	require.Len(t, got, 4)
	assert.Equal(t, []string{"a"}, got[0].ImageURLs, "straggler result must still land in its slot")
}

func TestEnrich_CancelledContextDegradesToSoftFailure(t *testing.T) {
	source := &fakeImageSource{
		urls:  map[int64][]string{10: {"a"}, 11: {"b"}},
		delay: map[int64]time.Duration{10: time.Second, 11: time.Second},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewService(source, 2, quietLogger())

	done := make(chan []domain.RoomCandidate, 1)
	go func() {
		done <- svc.Enrich(ctx, &domain.Session{}, candidates(10, 11))
	}()

	select {
	case got := <-done:
		require.Len(t, got, 2)
		assert.Empty(t, got[0].ImageURLs)
		assert.Empty(t, got[1].ImageURLs)
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled enrichment blocked the join")
	}
}

func TestEnrich_EmptyInput(t *testing.T) {
	source := &fakeImageSource{}
	svc := NewService(source, 4, quietLogger())

	got := svc.Enrich(context.Background(), &domain.Session{}, nil)
	assert.Empty(t, got)
	assert.Zero(t, source.dispatched.Load())
}

func TestEnrich_WorkerCapBelowCandidateCount(t *testing.T) {
	urls := map[int64][]string{}
	ids := make([]int64, 0, 20)
	for i := int64(100); i < 120; i++ {
		urls[i] = []string{"u"}
		ids = append(ids, i)
	}
	source := &fakeImageSource{urls: urls}

	svc := NewService(source, 3, quietLogger())
	got := svc.Enrich(context.Background(), &domain.Session{}, candidates(ids...))

	require.Len(t, got, 20)
	assert.Equal(t, int64(20), source.terminal.Load())
	for i, c := range got {
		assert.Equal(t, ids[i], c.HotelID)
		assert.Equal(t, []string{"u"}, c.ImageURLs)
	}
}
