package client

import (
	"context"
	"log"
	"net/http"
	"os"
)

const defaultBaseURL = "http://localhost:5000/api"

// Navigator receives route changes driven by store actions (login success,
// activity creation, logout).
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// Notifier receives the transient user-facing messages store actions emit
// on failure.
type Notifier interface {
	Notify(message string)
}

type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

// Config wires the root store's collaborators. Zero values get sensible
// defaults: REACTIVITIES_API_URL (or localhost) for the base URL, in-memory
// token storage, no-op navigation, log-backed notifications.
type Config struct {
	BaseURL      string
	HTTPClient   *http.Client
	TokenStorage TokenStorage
	Navigator    Navigator
	Notifier     Notifier
}

// RootStore composes the domain stores and wires their cross-store effects.
// There is no package-level instance: construct one explicitly and pass it
// (or its slices) to whatever needs it.
type RootStore struct {
	ActivityStore *ActivityStore
	UserStore     *UserStore
	CommentStore  *CommentStore
	CommonStore   *CommonStore
	ModalStore    *ModalStore

	agent     *Agent
	navigator Navigator
	notifier  Notifier
}

func NewRootStore(cfg Config) *RootStore {
	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("REACTIVITIES_API_URL")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.TokenStorage == nil {
		cfg.TokenStorage = NewMemoryTokenStorage()
	}

	root := &RootStore{
		navigator: cfg.Navigator,
		notifier:  cfg.Notifier,
	}

	root.CommonStore = newCommonStore(root, cfg.TokenStorage)
	root.agent = NewAgent(cfg.BaseURL, cfg.HTTPClient, func() string {
		return root.CommonStore.Token()
	})

	root.ActivityStore = newActivityStore(root)
	root.UserStore = newUserStore(root)
	root.CommentStore = newCommentStore(root)
	root.ModalStore = newModalStore(root)

	return root
}

// Initialize performs the eager startup work: when a token survived from a
// previous session, the current user is loaded (a stale token clears the
// session). The app-loaded flag is set either way.
func (r *RootStore) Initialize(ctx context.Context) {
	if r.CommonStore.Token() != "" {
		// LoadUser logs out on failure; nothing more to do here
		_ = r.UserStore.LoadUser(ctx)
	}
	r.CommonStore.SetAppLoaded()
}

// Agent exposes the HTTP collaborator, mainly for tooling built on top of
// the stores.
func (r *RootStore) Agent() *Agent {
	return r.agent
}

func (r *RootStore) navigate(path string) {
	if r.navigator != nil {
		r.navigator.Navigate(path)
	}
}

func (r *RootStore) notify(message string) {
	if r.notifier != nil {
		r.notifier.Notify(message)
		return
	}
	log.Println(message)
}
