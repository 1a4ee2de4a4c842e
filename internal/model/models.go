package model

// All returns every persisted model, in migration order.
func All() []interface{} {
	return []interface{}{
		&ChatSession{},
		&ChatMessage{},
		&Passage{},
		&PromptTemplate{},
	}
}
