package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFeedbackInput_Validate(t *testing.T) {
	tests := []struct {
		name       string
		input      FeedbackInput
		wantFields []string
	}{
		{
			name:  "valid",
			input: FeedbackInput{Name: "Ada", Email: "ada@example.com", Message: "Great calculator!"},
		},
		{
			name:       "short name",
			input:      FeedbackInput{Name: "A", Email: "ada@example.com", Message: "Great calculator!"},
			wantFields: []string{"name"},
		},
		{
			name:       "bad email",
			input:      FeedbackInput{Name: "Ada", Email: "ada@", Message: "Great calculator!"},
			wantFields: []string{"email"},
		},
		{
			name:       "short message",
			input:      FeedbackInput{Name: "Ada", Email: "ada@example.com", Message: "Nice"},
			wantFields: []string{"message"},
		},
		{
			name:       "whitespace only",
			input:      FeedbackInput{Name: "  ", Email: " ", Message: "          "},
			wantFields: []string{"name", "email", "message"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Len(t, verr.Fields, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.Contains(t, verr.Fields, f)
			}
		})
	}
}

func TestFeedbackService_Submit(t *testing.T) {
	store := &fakeFeedbackStore{}
	notifier := &fakeNotifier{}
	svc := NewFeedbackService(store, notifier, zap.NewNop())

	fb, err := svc.Submit(context.Background(), FeedbackInput{Name: " Ada ", Email: "ada@example.com", Message: "Please add ferry routes."})
	require.NoError(t, err)

	assert.Equal(t, "fb-1", fb.ID)
	assert.Equal(t, "Ada", fb.Name)
	require.Len(t, store.saved, 1)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "fb-1", notifier.sent[0].ID)
}

func TestFeedbackService_SubmitInvalidSkipsStore(t *testing.T) {
	store := &fakeFeedbackStore{}
	svc := NewFeedbackService(store, nil, zap.NewNop())

	_, err := svc.Submit(context.Background(), FeedbackInput{Name: "A"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, store.saved)
}

func TestFeedbackService_SubmitStoreFailure(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := NewFeedbackService(&fakeFeedbackStore{err: errStoreDown}, notifier, zap.NewNop())

	_, err := svc.Submit(context.Background(), FeedbackInput{Name: "Ada", Email: "ada@example.com", Message: "Please add ferry routes."})
	assert.ErrorIs(t, err, ErrFeedbackUnavailable)
	assert.NotErrorIs(t, err, errStoreDown)
	assert.Empty(t, notifier.sent)
}

func TestFeedbackService_NotifyFailureIgnored(t *testing.T) {
	svc := NewFeedbackService(&fakeFeedbackStore{}, &fakeNotifier{err: errStoreDown}, zap.NewNop())

	fb, err := svc.Submit(context.Background(), FeedbackInput{Name: "Ada", Email: "ada@example.com", Message: "Please add ferry routes."})
	require.NoError(t, err)
	assert.NotNil(t, fb)
}

func TestValidationError_Message(t *testing.T) {
	err := FeedbackInput{}.Validate()
	assert.Equal(t, "Validation failed. Please check your input. (email, message, name)", err.Error())
}
