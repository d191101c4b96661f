package cli

import (
	"log/slog"

	"github.com/me/tijara/internal/authn"
	"github.com/me/tijara/internal/config"
	"github.com/me/tijara/internal/credstore"
	"github.com/me/tijara/internal/notify"
	"github.com/me/tijara/internal/session"
	"github.com/me/tijara/pkg/platform"
)

// App bundles the wired client stack a command runs against: durable
// credential store, platform client, and session manager.
type App struct {
	Store   credstore.Store
	Client  *platform.Client
	Session *session.Manager
}

// NewApp wires the client stack. The platform client reads its token
// from the credential store on every call; the session manager owns the
// reaction to 401s observed anywhere in the pipeline.
func NewApp(server, dbPath string, demo bool, logger *slog.Logger) (*App, error) {
	if dbPath == "" {
		var err error
		dbPath, err = config.DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}

	store, err := credstore.NewSQLiteStore(dbPath, logger)
	if err != nil {
		return nil, err
	}

	client := platform.NewClient(
		platform.DefaultConfig().
			WithBaseURL(server).
			WithTokenSource(credstore.TokenReader{Store: store}),
		logger,
	)

	var provider authn.Provider = &authn.RemoteProvider{Client: client}
	if demo {
		provider = authn.NewChain(provider, authn.DemoProvider{})
	}

	notifier := notify.LogNotifier{Logger: logger}
	sess := session.NewManager(store, provider, notifier, nil, logger, session.Options{})

	client.SetHooks(platform.Hooks{
		Unauthorized: sess.HandleUnauthorized,
		ServerError: func(status int) {
			notifier.Error("Server error, please try again later")
		},
		NetworkError: func(err error) {
			notifier.Error("Could not reach the server, check your connection")
		},
	})

	return &App{Store: store, Client: client, Session: sess}, nil
}

// Close releases the credential store.
func (a *App) Close() {
	if a.Store != nil {
		a.Store.Close()
	}
}
