package retrieval

import (
	"context"
	"errors"
	"testing"

	"ai-ragchat-be/pkg/rag"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRetriever struct {
	mock.Mock
}

func (m *mockRetriever) Search(ctx context.Context, query string) ([]rag.Passage, error) {
	args := m.Called(ctx, query)
	passages, _ := args.Get(0).([]rag.Passage)
	return passages, args.Error(1)
}

func TestStageRetrieveFormatsPassages(t *testing.T) {
	r := new(mockRetriever)
	r.On("Search", mock.Anything, "pasta recipe").
		Return([]rag.Passage{{Text: "Recipe: Aglio e Olio"}, {Text: "Recipe: Carbonara"}}, nil)

	out, err := NewStage(r).Retrieve(context.Background(), "pasta recipe")

	require.NoError(t, err)
	assert.Equal(t, "<doc>\nRecipe: Aglio e Olio\n</doc>\n<doc>\nRecipe: Carbonara\n</doc>", out)
	r.AssertExpectations(t)
}

func TestStageRetrieveNoResults(t *testing.T) {
	r := new(mockRetriever)
	r.On("Search", mock.Anything, "nothing").Return([]rag.Passage{}, nil)

	out, err := NewStage(r).Retrieve(context.Background(), "nothing")

	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestStageRetrievePropagatesError(t *testing.T) {
	cause := &rag.RetrievalError{Op: "search", Err: errors.New("connection refused")}
	r := new(mockRetriever)
	r.On("Search", mock.Anything, "q").Return(nil, cause)

	out, err := NewStage(r).Retrieve(context.Background(), "q")

	assert.Empty(t, out)
	assert.Same(t, cause, err)
	assert.ErrorIs(t, err, rag.ErrRetrieval)
}
