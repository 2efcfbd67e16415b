package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apierrors "wayfarer/internal/errors"
	"wayfarer/internal/model"
)

// MockCompletionClient is a mock implementation of CompletionClient.
type MockCompletionClient struct {
	mock.Mock
}

func (m *MockCompletionClient) Complete(ctx context.Context, system, user string) (string, error) {
	args := m.Called(ctx, system, user)
	return args.String(0), args.Error(1)
}

func TestGenerationService_BlankDestination(t *testing.T) {
	service := NewGenerationService(nil)

	for _, destination := range []string{"", "   "} {
		outcome, err := service.Generate(context.Background(), GenerateRequest{Destination: destination})
		assert.ErrorIs(t, err, apierrors.ErrDestinationRequired)
		assert.Nil(t, outcome)
	}
}

func TestGenerationService_NoClientUsesFallback(t *testing.T) {
	service := NewGenerationService(nil)
	req := GenerateRequest{Destination: "Kyoto", Duration: 3, BudgetRange: model.BudgetTierBudget}

	first, err := service.Generate(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, DraftSourceFallback, first.Source)
	assert.Len(t, first.Draft.Days, 3)

	// pure and deterministic: identical inputs, identical output
	second, err := service.Generate(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerationService_Defaults(t *testing.T) {
	service := NewGenerationService(nil)

	outcome, err := service.Generate(context.Background(), GenerateRequest{Destination: "Kyoto"})
	assert.NoError(t, err)
	assert.Len(t, outcome.Draft.Days, 5)
	assert.Equal(t, float64(5*fallbackCostDefault), outcome.Draft.EstimatedTotalCost)
}

func TestGenerationService_ModelDraft(t *testing.T) {
	raw := `{"title":"Three Days in Kyoto","overview":"Temples and tea.","estimated_total_cost":450,` +
		`"days":[{"title":"Day 1: Higashiyama","activities":[{"time":"09:00","activity":"Kiyomizu-dera",` +
		`"location":"Higashiyama","cost":"$4"}],"meals":["Nishiki Market"],"tips":["Start early"],` +
		`"estimated_cost":150}],"travel_tips":["Get an IC card"]}`

	tests := []struct {
		name    string
		content string
	}{
		{name: "plain JSON", content: raw},
		{name: "fenced JSON", content: "```json\n" + raw + "\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClient := new(MockCompletionClient)
			mockClient.On("Complete", mock.Anything, generationSystemPrompt, mock.Anything).Return(tt.content, nil)

			service := NewGenerationService(mockClient)
			outcome, err := service.Generate(context.Background(), GenerateRequest{Destination: "Kyoto", Duration: 3})
			assert.NoError(t, err)
			assert.Equal(t, DraftSourceModel, outcome.Source)
			assert.Equal(t, "Three Days in Kyoto", outcome.Draft.Title)
			assert.Len(t, outcome.Draft.Days, 1)
			assert.Equal(t, "Kiyomizu-dera", outcome.Draft.Days[0].Activities[0].Activity)

			mockClient.AssertExpectations(t)
		})
	}
}

func TestGenerationService_AbsorbsModelFailures(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		callError error
	}{
		{name: "transport error", callError: fmt.Errorf("connection refused")},
		{name: "unparsable output", content: "Sorry, I cannot help with that."},
		{name: "truncated JSON", content: `{"title":"Trip","days":[`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClient := new(MockCompletionClient)
			mockClient.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return(tt.content, tt.callError)

			service := NewGenerationService(mockClient)
			outcome, err := service.Generate(context.Background(), GenerateRequest{Destination: "Oslo", Duration: 2})

			// model-side failures never surface; the caller always gets a draft
			assert.NoError(t, err)
			assert.Equal(t, DraftSourceFallback, outcome.Source)
			assert.Len(t, outcome.Draft.Days, 2)
		})
	}
}

func TestGenerationService_PromptContents(t *testing.T) {
	mockClient := new(MockCompletionClient)
	mockClient.On("Complete", mock.Anything, generationSystemPrompt, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "4-day travel itinerary for Lisbon") &&
			strings.Contains(prompt, "$300+ per day") &&
			strings.Contains(prompt, "food, history") &&
			strings.Contains(prompt, "Travel Style: relaxed") &&
			strings.Contains(prompt, "Special Requests: vegetarian")
	})).Return("not json", nil)

	service := NewGenerationService(mockClient)
	_, err := service.Generate(context.Background(), GenerateRequest{
		Destination:     "Lisbon",
		Duration:        4,
		BudgetRange:     model.BudgetTierLuxury,
		Interests:       []string{"food", "history"},
		TravelStyle:     "relaxed",
		SpecialRequests: "vegetarian",
	})
	assert.NoError(t, err)

	mockClient.AssertExpectations(t)
}

func TestGenerationService_EmptyInterestsPrompt(t *testing.T) {
	mockClient := new(MockCompletionClient)
	mockClient.On("Complete", mock.Anything, mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "general sightseeing")
	})).Return("not json", nil)

	service := NewGenerationService(mockClient)
	_, err := service.Generate(context.Background(), GenerateRequest{Destination: "Lisbon"})
	assert.NoError(t, err)
}

func TestFallbackItinerary_LuxuryLisbon(t *testing.T) {
	draft := FallbackItinerary("Lisbon", 2, model.BudgetTierLuxury, nil)

	assert.Equal(t, "2-Day Adventure in Lisbon", draft.Title)
	assert.Len(t, draft.Days, 2)
	for _, day := range draft.Days {
		assert.Equal(t, float64(300), day.EstimatedCost)
		assert.Len(t, day.Activities, 5)
		assert.Len(t, day.Meals, 3)
		assert.Len(t, day.Tips, 2)
	}
	assert.Equal(t, float64(600), draft.EstimatedTotalCost)
	assert.Len(t, draft.TravelTips, 5)
}

func TestFallbackItinerary_TotalIsSumOfDays(t *testing.T) {
	for _, budget := range []string{model.BudgetTierBudget, model.BudgetTierModerate, model.BudgetTierComfortable, model.BudgetTierLuxury} {
		draft := FallbackItinerary("Lisbon", 4, budget, nil)
		var sum float64
		for _, day := range draft.Days {
			sum += day.EstimatedCost
		}
		assert.Equal(t, sum, draft.EstimatedTotalCost, "budget tier %s", budget)
	}
}

func TestFallbackItinerary_ConsecutiveDaysDiffer(t *testing.T) {
	draft := FallbackItinerary("Lisbon", 3, model.BudgetTierModerate, nil)

	// the day index offsets the activity pool, so two adjacent days never
	// open with the same activity
	assert.NotEqual(t, draft.Days[0].Activities[0].Activity, draft.Days[1].Activities[0].Activity)
	assert.NotEqual(t, draft.Days[1].Activities[0].Activity, draft.Days[2].Activities[0].Activity)
}

func TestFallbackItinerary_TimeSlots(t *testing.T) {
	draft := FallbackItinerary("Lisbon", 1, model.BudgetTierModerate, nil)

	slots := make([]string, 0, len(draft.Days[0].Activities))
	for _, activity := range draft.Days[0].Activities {
		slots = append(slots, activity.Time)
	}
	assert.Equal(t, []string{"09:00", "11:00", "13:00", "15:00", "18:00"}, slots)
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"{\"a\":1}", "{\"a\":1}"},
		{"```json\n{\"a\":1}\n```", "{\"a\":1}"},
		{"```\n{\"a\":1}\n```", "{\"a\":1}"},
		{"  {\"a\":1}  ", "{\"a\":1}"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripCodeFences(tt.in))
	}
}
