package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var commentsCmd = &cobra.Command{
	Use:   "comments",
	Short: "Read and write activity comments",
}

var commentsListCmd = &cobra.Command{
	Use:   "list [activity-id]",
	Short: "List the comments on an activity, newest first",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommentsList,
}

var commentsAddCmd = &cobra.Command{
	Use:   "add [activity-id] [body...]",
	Short: "Comment on an activity",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runCommentsAdd,
}

var commentsDeleteCmd = &cobra.Command{
	Use:   "delete [comment-id]",
	Short: "Delete one of your comments",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommentsDelete,
}

func runCommentsList(cmd *cobra.Command, args []string) error {
	if err := stores.CommentStore.LoadComments(cmd.Context(), args[0]); err != nil {
		return err
	}

	comments := stores.CommentStore.Comments()
	if len(comments) == 0 {
		fmt.Println(render(styles.Muted, "No comments yet"))
		return nil
	}

	for _, comment := range comments {
		header := comment.DisplayName + " " + render(styles.Muted, "@"+comment.Username+" · "+comment.CreatedAt.Local().Format("02 Jan 15:04"))
		fmt.Println(render(styles.Header, header))
		fmt.Println("  " + comment.Body)
		fmt.Println(render(styles.Muted, "  id: "+comment.ID))
	}
	return nil
}

func runCommentsAdd(cmd *cobra.Command, args []string) error {
	if err := requireLogin(cmd); err != nil {
		return err
	}

	body := strings.Join(args[1:], " ")
	comment, err := stores.CommentStore.AddComment(cmd.Context(), args[0], body)
	if err != nil {
		return err
	}

	fmt.Println(renderSuccess("Comment posted (" + comment.ID + ")"))
	return nil
}

func runCommentsDelete(cmd *cobra.Command, args []string) error {
	if err := requireLogin(cmd); err != nil {
		return err
	}
	if err := stores.CommentStore.DeleteComment(cmd.Context(), args[0]); err != nil {
		return err
	}

	fmt.Println(renderSuccess("Comment deleted"))
	return nil
}
