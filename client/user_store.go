package client

import (
	"context"

	"github.com/reactivities/reactivities-go/types"
)

// UserStore holds the current session. The token itself lives in
// CommonStore, which owns the storage side-effect; UserStore only reads and
// writes it through there.
type UserStore struct {
	BaseStore

	user *types.User
}

func newUserStore(root *RootStore) *UserStore {
	return &UserStore{BaseStore: newBaseStore(root)}
}

func (s *UserStore) IsLoading() bool {
	return s.GetLoadingState("auth")
}

// CurrentUser returns a copy of the logged-in user, or nil.
func (s *UserStore) CurrentUser() *types.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

func (s *UserStore) IsLoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

func (s *UserStore) Token() string {
	return s.root.CommonStore.Token()
}

// Login authenticates and, on success, sets the user, persists the token,
// closes any open modal and navigates to the activities list.
func (s *UserStore) Login(ctx context.Context, values types.UserFormValues) error {
	user, err := executeAction(&s.BaseStore, "auth", func() (types.User, error) {
		return s.root.agent.Account.Login(ctx, values)
	}, "user login")
	if err != nil {
		s.root.notify("Invalid email or password")
		return err
	}

	s.finishSignIn(user)
	return nil
}

func (s *UserStore) Register(ctx context.Context, values types.UserFormValues) error {
	user, err := executeAction(&s.BaseStore, "auth", func() (types.User, error) {
		return s.root.agent.Account.Register(ctx, values)
	}, "user registration")
	if err != nil {
		s.root.notify("Problem registering user")
		return err
	}

	s.finishSignIn(user)
	return nil
}

func (s *UserStore) finishSignIn(user types.User) {
	s.batch(func() {
		u := user
		s.user = &u
	})
	s.root.CommonStore.SetToken(user.Token)
	s.root.ModalStore.Close()
	s.root.navigate("/activities")
}

// LoadUser fetches the current user for an already-stored token. A failure
// means the token is no good, so the session is cleared.
func (s *UserStore) LoadUser(ctx context.Context) error {
	user, err := executeAction(&s.BaseStore, "auth", func() (types.User, error) {
		return s.root.agent.Account.Current(ctx)
	}, "loading user")
	if err != nil {
		s.Logout()
		return err
	}

	s.batch(func() {
		u := user
		s.user = &u
	})
	if user.Token != "" {
		s.root.CommonStore.SetToken(user.Token)
	}
	return nil
}

// Logout clears the user and the token (which cascades to storage removal)
// and navigates to the landing page. Safe to call repeatedly.
func (s *UserStore) Logout() {
	s.batch(func() {
		s.user = nil
	})
	s.root.CommonStore.SetToken("")
	s.root.navigate("/")
}
