package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/abhaysingh-22/EcoTerra/internal/api/llm"
	"github.com/abhaysingh-22/EcoTerra/internal/models"
)

type fakeTripStore struct {
	mu      sync.Mutex
	trips   []models.Trip
	err     error
	nextID  int
	created time.Time
}

func (f *fakeTripStore) Create(_ context.Context, trip *models.Trip) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.nextID++
	trip.ID = fmt.Sprintf("trip-%d", f.nextID)
	trip.Timestamp = f.created.Add(time.Duration(f.nextID) * time.Minute)
	f.trips = append(f.trips, *trip)
	return nil
}

func (f *fakeTripStore) GetByID(_ context.Context, userID, id string) (*models.Trip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, t := range f.trips {
		if t.ID == id && t.UserID == userID {
			trip := t
			return &trip, nil
		}
	}
	return nil, fmt.Errorf("get trip by id: %w", ErrNotFound)
}

func (f *fakeTripStore) ListByUser(_ context.Context, userID string, limit, offset int) ([]models.Trip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Trip
	for _, t := range f.trips {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if limit <= 0 {
		return out, nil
	}
	if offset >= len(out) {
		return []models.Trip{}, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

type fakeProfileStore struct {
	mu       sync.Mutex
	profiles map[string]models.Profile
	err      error
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[string]models.Profile)}
}

func (f *fakeProfileStore) Get(_ context.Context, uid string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.profiles[uid]
	if !ok {
		return nil, fmt.Errorf("get profile: %w", ErrNotFound)
	}
	return &p, nil
}

func (f *fakeProfileStore) Upsert(_ context.Context, p *models.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.profiles[p.UID] = *p
	return nil
}

func (f *fakeProfileStore) Update(_ context.Context, uid string, u models.ProfileUpdate) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[uid]
	if !ok {
		return nil, fmt.Errorf("update profile: %w", ErrNotFound)
	}
	if u.DisplayName != nil {
		p.DisplayName = *u.DisplayName
	}
	if u.PhotoURL != nil {
		p.PhotoURL = u.PhotoURL
	}
	if u.Preferences != nil {
		p.Preferences = *u.Preferences
	}
	f.profiles[uid] = p
	return &p, nil
}

type fakeFeedbackStore struct {
	saved []models.Feedback
	err   error
}

func (f *fakeFeedbackStore) Create(_ context.Context, fb *models.Feedback) error {
	if f.err != nil {
		return f.err
	}
	fb.ID = "fb-1"
	f.saved = append(f.saved, *fb)
	return nil
}

type fakeNotifier struct {
	sent []models.Feedback
	err  error
}

func (f *fakeNotifier) NotifyFeedback(_ context.Context, fb models.Feedback) error {
	f.sent = append(f.sent, fb)
	return f.err
}

type fakeRecommender struct {
	calls int
	reply *llm.Reply
	err   error
}

func (f *fakeRecommender) Recommend(_ context.Context, _ llm.Request) (*llm.Reply, error) {
	f.calls++
	return f.reply, f.err
}

type published struct {
	userID  string
	msgType string
}

type fakePublisher struct {
	mu   sync.Mutex
	msgs []published
}

func (f *fakePublisher) SendToUser(userID, msgType string, _ interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, published{userID: userID, msgType: msgType})
}

var errStoreDown = errors.New("store down")
