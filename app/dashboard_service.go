package app

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"streamdash/adapters/eeg"
	"streamdash/adapters/participants"
	"streamdash/adapters/subjective"
	"streamdash/adapters/wristband"
	"streamdash/domain/modality"
	"streamdash/domain/timeline"
	"streamdash/internal"
	apperrors "streamdash/internal/errors"
)

// ParticipantData bundles everything loaded for one participant.
type ParticipantData struct {
	ParticipantID string
	Wristband     []modality.WristbandSample
	Sleep         []modality.IntervalRecord
	Meditation    []modality.IntervalRecord
	Subjective    []modality.SubjectiveEntry
	Notes         string
	LoadedAt      time.Time
}

// Summary condenses a participant's data for the overview page.
type Summary struct {
	ParticipantID string
	Wristband     modality.WristbandSummary
	Sleep         modality.IntervalSummary
	Meditation    modality.IntervalSummary
	Subjective    map[modality.Section]int
	Timeline      timeline.Result
}

type cacheEntry struct {
	data     *ParticipantData
	loadedAt time.Time
}

// DashboardService orchestrates the modality loaders and caches their results.
type DashboardService struct {
	dataBasePath string
	cacheTTL     time.Duration
	logger       *internal.Logger

	mu    sync.Mutex
	cache map[string]cacheEntry
}

func NewDashboardService(dataBasePath string, cacheTTL time.Duration, logger *internal.Logger) *DashboardService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DashboardService{
		dataBasePath: dataBasePath,
		cacheTTL:     cacheTTL,
		logger:       logger,
		cache:        make(map[string]cacheEntry),
	}
}

// ListParticipants returns the participant folders under the base path.
func (s *DashboardService) ListParticipants() ([]string, error) {
	names, err := participants.List(s.dataBasePath)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list participants")
	}
	return names, nil
}

// LoadParticipant returns the participant's data, serving from the cache when
// a fresh entry exists. All four modalities load concurrently.
func (s *DashboardService) LoadParticipant(ctx context.Context, participantID string) (*ParticipantData, error) {
	if !participants.Exists(s.dataBasePath, participantID) {
		return nil, apperrors.NotFound("participant " + participantID)
	}

	s.mu.Lock()
	if entry, ok := s.cache[participantID]; ok && time.Since(entry.loadedAt) < s.cacheTTL {
		s.mu.Unlock()
		s.logger.Debug("cache hit for participant %s", participantID)
		return entry.data, nil
	}
	s.mu.Unlock()

	data, err := s.loadFresh(ctx, participantID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[participantID] = cacheEntry{data: data, loadedAt: data.LoadedAt}
	s.mu.Unlock()
	return data, nil
}

func (s *DashboardService) loadFresh(ctx context.Context, participantID string) (*ParticipantData, error) {
	dir := participants.Dir(s.dataBasePath, participantID)
	data := &ParticipantData{ParticipantID: participantID}

	var g errgroup.Group
	g.Go(func() error {
		samples, err := wristband.Load(dir)
		if err != nil {
			return apperrors.Wrap(err, "failed to load wristband data")
		}
		data.Wristband = samples
		return nil
	})
	g.Go(func() error {
		records, err := eeg.LoadNights(dir)
		if err != nil {
			return apperrors.Wrap(err, "failed to load sleep reports")
		}
		data.Sleep = records
		return nil
	})
	g.Go(func() error {
		records, err := eeg.LoadMeditations(dir)
		if err != nil {
			return apperrors.Wrap(err, "failed to load meditation reports")
		}
		data.Meditation = records
		return nil
	})
	g.Go(func() error {
		entries, err := subjective.Load(dir, participantID)
		if err != nil {
			return apperrors.Wrap(err, "failed to load diary workbooks")
		}
		data.Subjective = entries
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if notes, ok := participants.Notes(dir); ok {
		data.Notes = notes
	}
	data.LoadedAt = time.Now()

	s.logger.Info("loaded participant %s: %d wearing samples, %d nights, %d meditations, %d diary entries",
		participantID, len(data.Wristband), len(data.Sleep), len(data.Meditation), len(data.Subjective))
	return data, nil
}

// Summarize builds the overview summary, including the combined timeline.
func (s *DashboardService) Summarize(ctx context.Context, participantID string) (*Summary, error) {
	data, err := s.LoadParticipant(ctx, participantID)
	if err != nil {
		return nil, err
	}
	return &Summary{
		ParticipantID: participantID,
		Wristband:     modality.SummarizeWristband(data.Wristband),
		Sleep:         modality.SummarizeIntervals(data.Sleep),
		Meditation:    modality.SummarizeIntervals(data.Meditation),
		Subjective:    modality.SummarizeSubjective(data.Subjective),
		Timeline:      s.Timeline(data),
	}, nil
}

// Timeline builds the combined multi-modality chart from loaded data.
func (s *DashboardService) Timeline(data *ParticipantData) timeline.Result {
	return timeline.Build(timeline.Input{
		Wristband:  data.Wristband,
		Sleep:      data.Sleep,
		Meditation: data.Meditation,
		Subjective: data.Subjective,
	})
}

// Invalidate drops one participant from the cache.
func (s *DashboardService) Invalidate(participantID string) {
	s.mu.Lock()
	delete(s.cache, participantID)
	s.mu.Unlock()
}

// InvalidateAll drops every cached participant.
func (s *DashboardService) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string]cacheEntry)
	s.mu.Unlock()
}
