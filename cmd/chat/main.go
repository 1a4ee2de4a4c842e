// Command chat is an interactive terminal for one conversation.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"ai-ragchat-be/internal/bootstrap"
	"ai-ragchat-be/internal/config"
	"ai-ragchat-be/internal/dto"
	"ai-ragchat-be/internal/pkg/serverutils"
	"ai-ragchat-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

func main() {
	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, false)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	container, err := bootstrap.NewContainer(gormDB, cfg)
	if err != nil {
		log.Fatalf("Unable to build container: %v", err)
	}
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sessionID := uuid.NewString()
	color.Cyan("Session %s. Type 'exit' to quit.", sessionID)

	prompt := color.New(color.FgYellow, color.Bold)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		prompt.Print("\nWhat's your question? ")
		if !scanner.Scan() {
			return
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			return
		}

		res, err := container.ChatService.Chat(ctx, "", sessionID, &dto.ChatRequest{Input: input})
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			_, message := serverutils.StatusFor(err)
			color.Red("Error: %s (%v)", message, err)
			continue
		}
		if res.Question != input {
			color.HiBlack("(searching for: %s)", res.Question)
		}
		fmt.Println(res.Reply)
	}
}
