package client

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/reactivities/reactivities-go/types"
)

const defaultUserImage = "/assets/user.png"

// Comment is a list entry. Pending marks an optimistic entry that has not
// been confirmed by the server yet.
type Comment struct {
	types.Comment
	Pending bool
}

// CommentStore holds the comment list for the activity currently in view.
// It is cleared wholesale on navigation, not registry-based.
type CommentStore struct {
	BaseStore

	comments []Comment
}

func newCommentStore(root *RootStore) *CommentStore {
	return &CommentStore{BaseStore: newBaseStore(root)}
}

func (s *CommentStore) IsLoading() bool {
	return s.GetLoadingState("general")
}

func (s *CommentStore) IsSubmitting() bool {
	return s.GetLoadingState("submit")
}

// Comments returns a copy of the list in display order (newest first).
func (s *CommentStore) Comments() []Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Comment, len(s.comments))
	copy(out, s.comments)
	return out
}

func (s *CommentStore) LoadComments(ctx context.Context, activityID string) error {
	token := s.beginRequest("comments")

	comments, err := executeAction(&s.BaseStore, "general", func() ([]types.Comment, error) {
		return s.root.agent.Comments.List(ctx, activityID)
	}, "loading comments")
	if err != nil {
		return err
	}

	if !s.isCurrentRequest("comments", token) {
		return nil
	}

	s.batch(func() {
		s.comments = make([]Comment, 0, len(comments))
		for _, comment := range comments {
			s.comments = append(s.comments, Comment{Comment: comment})
		}
	})
	return nil
}

// AddComment prepends a provisional comment built from the locally known
// user before the request, then reconciles it against the server echo: the
// pending entry is replaced in place on success and removed on failure.
func (s *CommentStore) AddComment(ctx context.Context, activityID, body string) (Comment, error) {
	user := s.root.UserStore.CurrentUser()
	if user == nil {
		return Comment{}, NewServerError(http.StatusUnauthorized, "You need to be logged in to comment", "", nil)
	}

	image := user.Image
	if image == "" {
		image = defaultUserImage
	}

	provisional := Comment{
		Comment: types.Comment{
			ID:          uuid.NewString(),
			CreatedAt:   time.Now(),
			Body:        body,
			Username:    user.Username,
			DisplayName: user.DisplayName,
			Image:       image,
		},
		Pending: true,
	}

	s.batch(func() {
		s.comments = append([]Comment{provisional}, s.comments...)
	})

	created, err := executeAction(&s.BaseStore, "submit", func() (types.Comment, error) {
		return s.root.agent.Comments.Create(ctx, activityID, provisional.Comment)
	}, "adding comment")
	if err != nil {
		s.batch(func() {
			s.removeComment(provisional.ID)
		})
		return Comment{}, err
	}

	confirmed := Comment{Comment: created}
	s.batch(func() {
		// If the list was cleared while the request was in flight, the
		// provisional entry is gone and the echo is dropped with it.
		for i := range s.comments {
			if s.comments[i].ID == provisional.ID {
				s.comments[i] = confirmed
				break
			}
		}
	})
	return confirmed, nil
}

// DeleteComment removes exactly the matching comment, preserving the
// relative order of the rest.
func (s *CommentStore) DeleteComment(ctx context.Context, commentID string) error {
	_, err := executeAction(&s.BaseStore, "submit", func() (struct{}, error) {
		return struct{}{}, s.root.agent.Comments.Delete(ctx, commentID)
	}, "deleting comment")
	if err != nil {
		return err
	}

	s.batch(func() {
		s.removeComment(commentID)
	})
	return nil
}

// removeComment must only be called inside a batch.
func (s *CommentStore) removeComment(commentID string) {
	filtered := s.comments[:0]
	for _, comment := range s.comments {
		if comment.ID != commentID {
			filtered = append(filtered, comment)
		}
	}
	s.comments = filtered
}

func (s *CommentStore) ClearComments() {
	s.batch(func() {
		s.comments = nil
	})
}
