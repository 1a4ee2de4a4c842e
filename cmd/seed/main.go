// Command seed stores the built-in prompt templates in the database so they
// can be edited without a redeploy.
package main

import (
	"context"
	"flag"
	"log"

	"ai-ragchat-be/internal/config"
	"ai-ragchat-be/internal/entity"
	"ai-ragchat-be/internal/repository/unitofwork"
	"ai-ragchat-be/pkg/database"
	"ai-ragchat-be/pkg/rag/prompt"
)

var descriptions = map[string]string{
	prompt.NameRephrase: "Turns a follow-up message into a standalone question",
	prompt.NameAnswer:   "Answers the standalone question from retrieved context",
}

func main() {
	inactive := flag.Bool("inactive", false, "store templates disabled")
	flag.Parse()

	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, false)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		log.Fatal(err)
	}
	defer uow.Rollback()

	for _, t := range prompt.Defaults() {
		err := uow.PromptTemplateRepository().Upsert(ctx, &entity.PromptTemplate{
			Name:        t.Name,
			Description: descriptions[t.Name],
			System:      t.System,
			Human:       t.Human,
			IsActive:    !*inactive,
		})
		if err != nil {
			log.Fatalf("seed %s: %v", t.Name, err)
		}
		log.Printf("Seeded prompt template %q", t.Name)
	}

	if err := uow.Commit(); err != nil {
		log.Fatal(err)
	}
}
