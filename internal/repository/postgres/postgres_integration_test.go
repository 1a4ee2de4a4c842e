package postgres

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"ai-ragchat-be/internal/entity"
	"ai-ragchat-be/internal/model"
	"ai-ragchat-be/internal/repository/unitofwork"
	"ai-ragchat-be/pkg/database"
	"ai-ragchat-be/pkg/rag"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFactory(t *testing.T) unitofwork.RepositoryFactory {
	t.Helper()
	_ = godotenv.Load("../../../.env")

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, false)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, model.All()...))

	return unitofwork.NewRepositoryFactory(db)
}

func TestHistoryRepositoryRoundTrip(t *testing.T) {
	factory := setupFactory(t)
	repo := NewHistoryRepository(factory)
	ctx := context.Background()
	key := "it-" + uuid.NewString()
	t.Cleanup(func() { _ = repo.Clear(ctx, key) })

	empty, err := repo.GetOrCreate(ctx, key)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, repo.Append(ctx, key, rag.UserMessage("q1"), rag.AssistantMessage("a1")))
	require.NoError(t, repo.Append(ctx, key, rag.UserMessage("q2"), rag.AssistantMessage("a2")))

	log, err := repo.GetOrCreate(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []rag.Message{
		rag.UserMessage("q1"), rag.AssistantMessage("a1"),
		rag.UserMessage("q2"), rag.AssistantMessage("a2"),
	}, log)
}

func TestHistoryRepositoryConcurrentAppendsKeepPairs(t *testing.T) {
	factory := setupFactory(t)
	repo := NewHistoryRepository(factory)
	ctx := context.Background()
	key := "it-" + uuid.NewString()
	t.Cleanup(func() { _ = repo.Clear(ctx, key) })

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := repo.Append(ctx, key, rag.UserMessage(fmt.Sprintf("q%d", i)), rag.AssistantMessage(fmt.Sprintf("a%d", i)))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	log, err := repo.GetOrCreate(ctx, key)
	require.NoError(t, err)
	require.Len(t, log, 16)
	for i := 0; i < len(log); i += 2 {
		assert.Equal(t, rag.RoleUser, log[i].Role)
		assert.Equal(t, rag.RoleAssistant, log[i+1].Role)
		assert.Equal(t, "a"+log[i].Content[1:], log[i+1].Content)
	}
}

func TestHistoryRepositoryClear(t *testing.T) {
	factory := setupFactory(t)
	repo := NewHistoryRepository(factory)
	ctx := context.Background()
	key := "it-" + uuid.NewString()

	require.NoError(t, repo.Append(ctx, key, rag.UserMessage("q"), rag.AssistantMessage("a")))
	require.NoError(t, repo.Clear(ctx, key))

	log, err := repo.GetOrCreate(ctx, key)
	require.NoError(t, err)
	assert.Empty(t, log)
	require.NoError(t, repo.Clear(ctx, key))
}

func TestPassageIndexSearch(t *testing.T) {
	factory := setupFactory(t)
	ctx := context.Background()
	source := "it-" + uuid.NewString()
	uow := factory.NewUnitOfWork(ctx)
	t.Cleanup(func() { _ = uow.PassageRepository().DeleteBySource(ctx, source) })

	near := make([]float32, 768)
	near[0] = 1
	far := make([]float32, 768)
	far[1] = 1

	require.NoError(t, uow.PassageRepository().CreateBulk(ctx, []*entity.Passage{
		{Source: source, ChunkIndex: 0, Content: "Aglio e Olio", Embedding: near, Metadata: map[string]interface{}{"lang": "it"}},
		{Source: source, ChunkIndex: 1, Content: "Unrelated", Embedding: far},
	}))

	index := NewPassageIndex(factory)
	passages, err := index.SearchSimilar(ctx, near, 1, 0.5)

	require.NoError(t, err)
	require.Len(t, passages, 1)
	assert.Equal(t, "Aglio e Olio", passages[0].Text)
	assert.InDelta(t, 1.0, passages[0].Score, 1e-6)
	assert.Equal(t, source, passages[0].Metadata["source"])
	assert.Equal(t, "it", passages[0].Metadata["lang"])
}

func TestPromptProvider(t *testing.T) {
	factory := setupFactory(t)
	ctx := context.Background()
	name := "it-" + uuid.NewString()
	uow := factory.NewUnitOfWork(ctx)

	provider := NewPromptProvider(factory)

	_, err := provider.Resolve(ctx, name)
	assert.ErrorIs(t, err, rag.ErrTemplateNotFound)

	require.NoError(t, uow.PromptTemplateRepository().Upsert(ctx, &entity.PromptTemplate{
		Name: name, System: "sys {{.context}}", Human: "{{.question}}", IsActive: true,
	}))

	tmpl, err := provider.Resolve(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, "sys {{.context}}", tmpl.System)
}
