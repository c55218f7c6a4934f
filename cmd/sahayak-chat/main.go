package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gramsehat/backend/internal/chat"
	"github.com/gramsehat/backend/internal/config"
	"github.com/gramsehat/backend/internal/i18n"
	"github.com/gramsehat/backend/internal/settings"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, err := zap.NewDevelopment(zap.IncreaseLevel(zap.WarnLevel))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	localizer, err := i18n.New()
	if err != nil {
		logger.Fatal("Failed to load translations", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lang := settings.NewService(settings.NewMemoryStore(), logger).Init(ctx, cfg.Settings.DeviceLocale)

	engine := chat.NewEngine(localizer, cfg.Chat.Latency, cfg.Chat.RevealInterval, logger)
	conv := engine.NewConversation("terminal", lang)

	if err := run(ctx, engine, conv, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		logger.Fatal("Chat session failed", zap.Error(err))
	}
}

// run reads one message per line from in and writes each reply to out as it
// is revealed
func run(ctx context.Context, engine *chat.Engine, conv *chat.Conversation, in io.Reader, out io.Writer) error {
	for _, msg := range conv.Messages() {
		fmt.Fprintf(out, "Sahayak: %s\n", msg.Text)
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		task, err := engine.Respond(ctx, conv, line)
		if err != nil {
			return fmt.Errorf("failed to send message: %w", err)
		}

		if err := stream(out, task); err != nil {
			return err
		}
	}
}

// stream prints the part of each snapshot not printed yet
func stream(out io.Writer, task *chat.Task) error {
	started := false
	printed := 0
	for u := range task.Updates() {
		switch u.Kind {
		case chat.UpdateTyping:
			fmt.Fprintln(out, "Sahayak is typing...")
		case chat.UpdateMessage:
			if !started {
				fmt.Fprint(out, "Sahayak: ")
				started = true
			}
			runes := []rune(u.Message.Text)
			if len(runes) > printed {
				fmt.Fprint(out, string(runes[printed:]))
				printed = len(runes)
			}
		}
	}
	fmt.Fprintln(out)
	return task.Wait()
}
