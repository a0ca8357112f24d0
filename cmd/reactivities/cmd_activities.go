package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/reactivities/reactivities-go/types"
)

var (
	activityTitle       string
	activityDescription string
	activityCategory    string
	activityDate        string
	activityCity        string
	activityVenue       string
)

var activitiesCmd = &cobra.Command{
	Use:     "activities",
	Short:   "Browse and manage activities",
	Aliases: []string{"activity"},
}

var activitiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List upcoming activities grouped by day",
	RunE:  runActivitiesList,
}

var activitiesGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show one activity with its attendees",
	Args:  cobra.ExactArgs(1),
	RunE:  runActivitiesGet,
}

var activitiesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Host a new activity",
	RunE:  runActivitiesCreate,
}

var activitiesEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit an activity you host",
	Args:  cobra.ExactArgs(1),
	RunE:  runActivitiesEdit,
}

var activitiesDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an activity you host",
	Args:  cobra.ExactArgs(1),
	RunE:  runActivitiesDelete,
}

var activitiesAttendCmd = &cobra.Command{
	Use:   "attend [id]",
	Short: "Join an activity",
	Args:  cobra.ExactArgs(1),
	RunE:  runActivitiesAttend,
}

var activitiesCancelCmd = &cobra.Command{
	Use:   "cancel [id]",
	Short: "Cancel your attendance",
	Args:  cobra.ExactArgs(1),
	RunE:  runActivitiesCancel,
}

func init() {
	for _, cmd := range []*cobra.Command{activitiesCreateCmd, activitiesEditCmd} {
		cmd.Flags().StringVar(&activityTitle, "title", "", "Activity title")
		cmd.Flags().StringVar(&activityDescription, "description", "", "Longer description")
		cmd.Flags().StringVar(&activityCategory, "category", "", "Category (drinks, culture, film, food, music, travel)")
		cmd.Flags().StringVar(&activityDate, "date", "", "Date and time, RFC 3339 (e.g. 2026-09-12T19:00:00Z)")
		cmd.Flags().StringVar(&activityCity, "city", "", "City")
		cmd.Flags().StringVar(&activityVenue, "venue", "", "Venue")
	}
}

func runActivitiesList(cmd *cobra.Command, args []string) error {
	if err := stores.ActivityStore.LoadActivities(cmd.Context()); err != nil {
		return err
	}

	groups := stores.ActivityStore.ActivitiesByDate()
	if len(groups) == 0 {
		fmt.Println(render(styles.Muted, "No activities yet"))
		return nil
	}

	for _, group := range groups {
		fmt.Println(render(styles.Title, group.Date))
		for _, activity := range group.Activities {
			printActivityLine(activity)
		}
		fmt.Println()
	}
	return nil
}

func printActivityLine(activity types.Activity) {
	marker := " "
	if activity.IsHost {
		marker = render(styles.Warning, "★")
	} else if activity.IsGoing {
		marker = render(styles.Success, "✓")
	}
	fmt.Printf("  %s %s  %s\n", marker, render(styles.Header, activity.Title),
		render(styles.Muted, activity.Date.Local().Format("15:04")+" · "+activity.City+" · "+activity.ID))
}

func runActivitiesGet(cmd *cobra.Command, args []string) error {
	activity, err := stores.ActivityStore.LoadActivity(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Println(render(styles.Title, activity.Title))
	fmt.Println(render(styles.Muted, activity.Date.Local().Format("Mon, 02 Jan 2006 15:04")))
	fmt.Printf("%s · %s · %s\n", activity.Category, activity.City, activity.Venue)
	if activity.Description != "" {
		fmt.Println()
		fmt.Println(activity.Description)
	}
	if activity.Host != nil {
		fmt.Println()
		fmt.Println(render(styles.Header, "Hosted by ") + activity.Host.DisplayName)
	}
	if len(activity.Attendees) > 0 {
		fmt.Println(render(styles.Header, "Attendees"))
		for _, attendee := range activity.Attendees {
			fmt.Printf("  %s %s\n", attendee.DisplayName, render(styles.Muted, "@"+attendee.Username))
		}
	}
	return nil
}

func activityFromFlags(id string) (types.Activity, error) {
	date, err := time.Parse(time.RFC3339, activityDate)
	if err != nil {
		return types.Activity{}, fmt.Errorf("parsing --date: %w", err)
	}
	return types.Activity{
		ID:          id,
		Title:       activityTitle,
		Description: activityDescription,
		Category:    activityCategory,
		Date:        date,
		City:        activityCity,
		Venue:       activityVenue,
	}, nil
}

func runActivitiesCreate(cmd *cobra.Command, args []string) error {
	if err := requireLogin(cmd); err != nil {
		return err
	}

	activity, err := activityFromFlags("")
	if err != nil {
		return err
	}
	if err := stores.ActivityStore.CreateActivity(cmd.Context(), activity); err != nil {
		return err
	}

	fmt.Println(renderSuccess("Activity created"))
	return nil
}

func runActivitiesEdit(cmd *cobra.Command, args []string) error {
	if err := requireLogin(cmd); err != nil {
		return err
	}

	// Start from the server copy so unset flags keep their current value.
	current, err := stores.ActivityStore.LoadActivity(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if activityTitle != "" {
		current.Title = activityTitle
	}
	if activityDescription != "" {
		current.Description = activityDescription
	}
	if activityCategory != "" {
		current.Category = activityCategory
	}
	if activityCity != "" {
		current.City = activityCity
	}
	if activityVenue != "" {
		current.Venue = activityVenue
	}
	if activityDate != "" {
		date, err := time.Parse(time.RFC3339, activityDate)
		if err != nil {
			return fmt.Errorf("parsing --date: %w", err)
		}
		current.Date = date
	}

	if err := stores.ActivityStore.EditActivity(cmd.Context(), current); err != nil {
		return err
	}

	fmt.Println(renderSuccess("Activity updated"))
	return nil
}

func runActivitiesDelete(cmd *cobra.Command, args []string) error {
	if err := requireLogin(cmd); err != nil {
		return err
	}
	if err := stores.ActivityStore.DeleteActivity(cmd.Context(), args[0], args[0]); err != nil {
		return err
	}

	fmt.Println(renderSuccess("Activity deleted"))
	return nil
}

func runActivitiesAttend(cmd *cobra.Command, args []string) error {
	if err := requireLogin(cmd); err != nil {
		return err
	}
	if _, err := stores.ActivityStore.LoadActivity(cmd.Context(), args[0]); err != nil {
		return err
	}
	if err := stores.ActivityStore.Attend(cmd.Context(), args[0]); err != nil {
		return err
	}

	fmt.Println(renderSuccess("You are going"))
	return nil
}

func runActivitiesCancel(cmd *cobra.Command, args []string) error {
	if err := requireLogin(cmd); err != nil {
		return err
	}
	if _, err := stores.ActivityStore.LoadActivity(cmd.Context(), args[0]); err != nil {
		return err
	}
	if err := stores.ActivityStore.CancelAttendance(cmd.Context(), args[0]); err != nil {
		return err
	}

	fmt.Println(renderSuccess("Attendance cancelled"))
	return nil
}
