package rag

import (
	"errors"
	"fmt"
)

var (
	ErrRetrieval        = errors.New("retrieval failed")
	ErrCompletion       = errors.New("completion failed")
	ErrTemplateNotFound = errors.New("prompt template not found")
)

// RetrievalError reports a failure of the embedding or index service.
type RetrievalError struct {
	Op  string
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieval: %s: %v", e.Op, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

func (e *RetrievalError) Is(target error) bool { return target == ErrRetrieval }

// CompletionError reports a failure of the language model service.
type CompletionError struct {
	Provider string
	Err      error
}

func (e *CompletionError) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("completion: %v", e.Err)
	}
	return fmt.Sprintf("completion (%s): %v", e.Provider, e.Err)
}

func (e *CompletionError) Unwrap() error { return e.Err }

func (e *CompletionError) Is(target error) bool { return target == ErrCompletion }

// TemplateNotFoundError reports a prompt template name no provider knows.
type TemplateNotFoundError struct {
	Name string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("prompt template %q not found", e.Name)
}

func (e *TemplateNotFoundError) Is(target error) bool { return target == ErrTemplateNotFound }
