package prompt

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-ragchat-be/pkg/rag"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRender(t *testing.T) {
	tmpl := &Template{
		Name:   "t",
		System: "ctx: {{.context}}",
		Human:  "q: {{.question}}",
	}

	system, human, err := tmpl.Render(map[string]string{
		VarContext:  "<doc>\nA\n</doc>",
		VarQuestion: "what?",
	})

	require.NoError(t, err)
	assert.Equal(t, "ctx: <doc>\nA\n</doc>", system)
	assert.Equal(t, "q: what?", human)
}

func TestTemplateRenderMissingPlaceholder(t *testing.T) {
	tmpl := &Template{Name: "t", System: "{{.context}}", Human: "{{.input}}"}

	_, _, err := tmpl.Render(map[string]string{VarContext: "x"})

	assert.Error(t, err)
}

func TestTemplateValidate(t *testing.T) {
	assert.Error(t, (&Template{Name: "", System: "ok", Human: "ok"}).Validate())
	assert.Error(t, (&Template{Name: "bad", System: "{{.input", Human: "ok"}).Validate())
	assert.NoError(t, (&Template{Name: "good", System: "{{.input}}", Human: ""}).Validate())
}

func TestDefaultsRender(t *testing.T) {
	r := NewDefaultRegistry()
	ctx := context.Background()

	rephrase, err := r.Resolve(ctx, NameRephrase)
	require.NoError(t, err)
	_, human, err := rephrase.Render(map[string]string{VarInput: "Make it spicier"})
	require.NoError(t, err)
	assert.Equal(t, "Follow-Up Question: Make it spicier", human)

	answer, err := r.Resolve(ctx, NameAnswer)
	require.NoError(t, err)
	system, human, err := answer.Render(map[string]string{VarContext: "CTX", VarQuestion: "Q"})
	require.NoError(t, err)
	assert.Contains(t, system, "<context>\nCTX\n</context>")
	assert.Contains(t, human, "Q")
}

func TestRegistryNotFound(t *testing.T) {
	r := NewDefaultRegistry()

	_, err := r.Resolve(context.Background(), "missing")

	var notFound *rag.TemplateNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing", notFound.Name)
	assert.ErrorIs(t, err, rag.ErrTemplateNotFound)
}

func TestRegistryReturnsCopies(t *testing.T) {
	r := NewDefaultRegistry()
	ctx := context.Background()

	first, err := r.Resolve(ctx, NameAnswer)
	require.NoError(t, err)
	first.System = "changed"

	second, err := r.Resolve(ctx, NameAnswer)
	require.NoError(t, err)
	assert.NotEqual(t, "changed", second.System)
}

type countingProvider struct {
	calls    int
	template *Template
	err      error
}

func (p *countingProvider) Resolve(_ context.Context, name string) (*Template, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	if p.template == nil || p.template.Name != name {
		return nil, &rag.TemplateNotFoundError{Name: name}
	}
	return p.template, nil
}

func TestChainFallsThroughNotFound(t *testing.T) {
	empty := &countingProvider{}
	chain := Chain{empty, NewDefaultRegistry()}

	tmpl, err := chain.Resolve(context.Background(), NameRephrase)

	require.NoError(t, err)
	assert.Equal(t, NameRephrase, tmpl.Name)
	assert.Equal(t, 1, empty.calls)
}

func TestChainStopsOnOtherErrors(t *testing.T) {
	broken := &countingProvider{err: errors.New("db down")}
	chain := Chain{broken, NewDefaultRegistry()}

	_, err := chain.Resolve(context.Background(), NameRephrase)

	assert.EqualError(t, err, "db down")
}

func TestChainAllMissing(t *testing.T) {
	_, err := Chain{&countingProvider{}}.Resolve(context.Background(), "x")

	assert.ErrorIs(t, err, rag.ErrTemplateNotFound)
}

func TestCachedProvider(t *testing.T) {
	inner := &countingProvider{template: &Template{Name: "answer", System: "s", Human: "h"}}
	cached := NewCachedProvider(inner, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		tmpl, err := cached.Resolve(ctx, "answer")
		require.NoError(t, err)
		assert.Equal(t, "s", tmpl.System)
	}
	assert.Equal(t, 1, inner.calls)

	cached.Invalidate("answer")
	_, err := cached.Resolve(ctx, "answer")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedProviderDoesNotCacheMisses(t *testing.T) {
	inner := &countingProvider{}
	cached := NewCachedProvider(inner, time.Minute)

	_, err := cached.Resolve(context.Background(), "nope")
	assert.ErrorIs(t, err, rag.ErrTemplateNotFound)
	_, err = cached.Resolve(context.Background(), "nope")
	assert.ErrorIs(t, err, rag.ErrTemplateNotFound)

	assert.Equal(t, 2, inner.calls)
}

func TestWithCacheDisabledReachesInnerEveryTime(t *testing.T) {
	for _, ttl := range []time.Duration{0, -time.Second} {
		inner := &countingProvider{template: &Template{Name: "answer", System: "s", Human: "h"}}
		p := WithCache(inner, ttl)

		for i := 0; i < 3; i++ {
			_, err := p.Resolve(context.Background(), "answer")
			require.NoError(t, err)
		}
		assert.Equal(t, 3, inner.calls, "ttl %v", ttl)
	}
}

func TestWithCachePositiveTTLCaches(t *testing.T) {
	inner := &countingProvider{template: &Template{Name: "answer", System: "s", Human: "h"}}
	p := WithCache(inner, time.Minute)

	for i := 0; i < 3; i++ {
		_, err := p.Resolve(context.Background(), "answer")
		require.NoError(t, err)
	}
	assert.IsType(t, &CachedProvider{}, p)
	assert.Equal(t, 1, inner.calls)
}
