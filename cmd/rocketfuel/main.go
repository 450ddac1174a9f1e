// Command rocketfuel is the terminal client for the Rocket Fuel question and answer platform.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driven/apiclient"
	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driven/config/file"
	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driven/identity"
	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driven/rocketfuel"
	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driven/storage/memory"
	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driven/storage/sqlite"
	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driving/cli"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/ports/driven"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/services"
	"github.com/rocketfuel/rocketfuel-cli/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Startup runs before cobra parses flags.
	logger.SetVerbose(slices.Contains(os.Args[1:], "-v") || slices.Contains(os.Args[1:], "--verbose"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var configStore driven.ConfigStore
	if fileStore, err := file.NewConfigStore(""); err != nil {
		logger.Warn("config unavailable, using defaults: %v", err)
		configStore = memory.NewConfigStore()
	} else {
		configStore = fileStore
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	client, err := apiclient.NewClient(settings.API.BaseURL,
		apiclient.WithTimeout(settings.API.Timeout),
		apiclient.WithRateLimit(settings.API.RequestsPerSecond),
	)
	if err != nil {
		return fmt.Errorf("configuring api client: %w", err)
	}
	logger.Debug("api: %s", client.BaseURL())

	stores := openStores()
	defer stores.close()

	questionAPI := rocketfuel.NewQuestionAPI(client)
	answerAPI := rocketfuel.NewAnswerAPI(client)
	tagAPI := rocketfuel.NewTagAPI(client)
	userAPI := rocketfuel.NewUserAPI(client)

	google := identity.NewGoogleProvider(identity.Config{
		ClientID:     settings.Auth.ClientID,
		ClientSecret: settings.Auth.ClientSecret,
		CallbackPort: settings.Auth.CallbackPort,
	}, stores.identity)
	google.SetPrompt(func(url string) {
		fmt.Fprintf(os.Stderr, "If the browser does not open, visit:\n  %s\n", url)
	})

	sessionService := services.NewSessionService(userAPI, google)
	sessionService.SetSessionStore(stores.session)
	if err := sessionService.Restore(ctx); err != nil {
		logger.Warn("restoring session: %v", err)
	}
	client.SetAuthenticator(sessionService)

	questionService := services.NewQuestionService(questionAPI, answerAPI)
	questionService.SetSession(sessionService)
	questionService.SetHistoryStore(stores.history)

	answerService := services.NewAnswerService(answerAPI)
	answerService.SetSession(sessionService)

	tagService := services.NewTagService(tagAPI)

	quick := services.NewSearchController("quick",
		services.QuickSearcher(questionService, settings.Search.QuickLimit),
		services.WithDebounce(settings.Search.Debounce))
	defer quick.Close()
	full := services.NewSearchController("questions",
		services.QuestionSearcher(questionService, settings.Search.PageLimit),
		services.WithDebounce(settings.Search.Debounce))
	defer full.Close()
	tags := services.NewSearchController("tags",
		services.TagSearcher(tagService),
		services.WithDebounce(settings.Search.Debounce))
	defer tags.Close()

	cli.SetServices(cli.Services{
		Session:   sessionService,
		Questions: questionService,
		Answers:   answerService,
		Tags:      tagService,
		Users:     services.NewUserService(userAPI, sessionService),
		History:   services.NewHistoryService(stores.history),
		Settings:  settingsService,
	})
	cli.SetTUIConfig(&cli.TUIConfig{
		QuickSearch:    quick,
		QuestionSearch: full,
		TagSearch:      tags,
	})
	cli.SetVersion(version)

	return cli.Execute(ctx)
}

type storeSet struct {
	session  driven.SessionStore
	identity driven.IdentityTokenStore
	history  driven.SearchHistoryStore
	close    func()
}

// openStores opens the SQLite database. When it cannot be opened the client
// still runs, but nothing survives the process.
func openStores() storeSet {
	db, err := sqlite.NewStore("")
	if err != nil {
		logger.Warn("database unavailable, session and history will not be saved: %v", err)
		return storeSet{
			session:  memory.NewSessionStore(),
			identity: memory.NewIdentityTokenStore(),
			history:  memory.NewSearchHistoryStore(),
			close:    func() {},
		}
	}
	return storeSet{
		session:  db.SessionStore(),
		identity: db.IdentityTokenStore(),
		history:  db.SearchHistoryStore(),
		close: func() {
			if err := db.Close(); err != nil {
				logger.Warn("closing database: %v", err)
			}
		},
	}
}
