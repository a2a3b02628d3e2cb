// ABOUTME: Terminal chat client for the course assistant service
// ABOUTME: Drives the conversation store and dispatcher with line-based input

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/2389/coursechat/internal/assistant"
	"github.com/2389/coursechat/internal/config"
	"github.com/2389/coursechat/internal/conversation"
	"github.com/2389/coursechat/internal/course"
	"github.com/2389/coursechat/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "Config file path (default: $COURSECHAT_CONFIG or ~/.config/coursechat/config.yaml)")
	apiURL := flag.String("api", "", "Assistant service URL (overrides config)")
	envFile := flag.String("env", ".env", "Optional .env file loaded before the config")
	flag.Parse()

	if err := config.LoadDotEnv(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *apiURL != "" {
		cfg.Assistant.BaseURL = *apiURL
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	logger := logging.New(cfg.Logging, os.Stderr)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, logger, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nGoodbye!")
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.LoadDefault()
	}
	return config.Load(path)
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, in io.Reader, out io.Writer) error {
	client, err := assistant.NewClient(cfg.Assistant.BaseURL,
		assistant.WithTimeout(cfg.Assistant.Timeout),
		assistant.WithUserAgent(cfg.Assistant.UserAgent),
		assistant.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("creating assistant client: %w", err)
	}

	greeting := cfg.Chat.Greeting
	if greeting == "" {
		greeting = conversation.DefaultGreeting
	}
	store := conversation.NewStore(greeting, logger)
	defer store.Close()
	dispatcher := conversation.NewDispatcher(store, client, logger)

	v := newView(out)
	v.printf("coursechat connected to %s\n", client.BaseURL())
	v.println("Type a question and press Enter. /help for commands. Ctrl+C to quit.")
	v.println()

	updates, subID := store.Subscribe(ctx)
	rendered := make(chan struct{})
	go func() {
		defer close(rendered)
		for st := range updates {
			v.render(st)
		}
	}()
	defer func() {
		store.Unsubscribe(subID)
		<-rendered
	}()

	v.render(store.Snapshot())
	if len(cfg.Chat.QuickStart) > 0 {
		printExamples(v, cfg.Chat.QuickStart)
	}

	scanner := bufio.NewScanner(in)
	for {
		v.prompt()

		inputCh := make(chan string, 1)
		errCh := make(chan error, 1)

		go func() {
			if scanner.Scan() {
				inputCh <- scanner.Text()
			} else {
				if err := scanner.Err(); err != nil {
					errCh <- err
				} else {
					errCh <- io.EOF
				}
			}
		}()

		var input string
		select {
		case <-ctx.Done():
			return nil
		case err := <-errCh:
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		case input = <-inputCh:
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !strings.HasPrefix(input, "/") {
			store.SetComposingText(input)
			report(v, dispatcher.Submit(ctx))
			continue
		}

		cmd, args, _ := strings.Cut(input, " ")
		args = strings.TrimSpace(args)

		switch cmd {
		case "/quit", "/exit", "/q":
			return nil

		case "/help":
			printHelp(v)

		case "/retry":
			report(v, dispatcher.Retry(ctx))

		case "/examples":
			printExamples(v, cfg.Chat.QuickStart)

		case "/ex":
			n, err := strconv.Atoi(args)
			if err != nil || n < 1 || n > len(cfg.Chat.QuickStart) {
				v.printf("Usage: /ex <1-%d>\n", len(cfg.Chat.QuickStart))
				break
			}
			report(v, dispatcher.Send(ctx, cfg.Chat.QuickStart[n-1]))

		case "/search":
			if args == "" {
				v.println("Usage: /search <query>")
				break
			}
			courses, err := client.SearchCourses(ctx, course.SearchParams{Query: args})
			if err != nil {
				v.errorf("%v", err)
				break
			}
			v.courses(courses)

		case "/locations":
			locations, err := client.Locations(ctx)
			if err != nil {
				v.errorf("%v", err)
				break
			}
			for _, l := range locations {
				v.printf("  %d  %s (%s)\n", l.ID, l.Title, l.Country.CountryName)
			}

		case "/export":
			if args == "" {
				v.println("Usage: /export <file.html>")
				break
			}
			if err := exportTranscript(args, store.Snapshot()); err != nil {
				v.errorf("%v", err)
				break
			}
			v.printf("transcript written to %s\n", args)

		case "/health":
			if client.Health(ctx) {
				v.println("assistant service is healthy")
			} else {
				v.errorf("assistant service is unreachable at %s", client.BaseURL())
			}

		default:
			v.printf("Unknown command %s. Type /help for commands.\n", cmd)
		}
	}
}

// report renders the final state of a send and explains dropped sends.
func report(v *view, res conversation.Result) {
	v.render(res.State)
	switch res.Status {
	case conversation.StatusBusy:
		v.errorf("still waiting for the previous reply")
	case conversation.StatusNothingToRetry:
		v.errorf("nothing to retry yet")
	case conversation.StatusFailed:
		v.hint("type /retry to send your last message again")
	}
}

func printExamples(v *view, examples []string) {
	if len(examples) == 0 {
		return
	}
	v.println("Try one of these (/ex <n>):")
	for i, e := range examples {
		v.printf("  %d. %s\n", i+1, e)
	}
	v.println()
}

func printHelp(v *view) {
	v.println("Commands:")
	v.println("  /retry           Send your last message again")
	v.println("  /examples        List example questions")
	v.println("  /ex <n>          Ask example question n")
	v.println("  /search <query>  Search courses directly")
	v.println("  /locations       List school locations")
	v.println("  /export <file>   Save the conversation as HTML")
	v.println("  /health          Check the assistant service")
	v.println("  /help            Show this help")
	v.println("  /quit            Exit (also /exit, /q)")
}
