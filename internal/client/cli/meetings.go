package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/smartmeet/internal/client/models"
	"github.com/dmitrijs2005/smartmeet/internal/client/output"
)

func (a *App) Meetings(ctx context.Context) error {
	list, err := a.meetings.List(ctx, 0, 0)
	if err != nil {
		a.report(ctx, "Listing meetings", err)
		return err
	}
	return a.print(output.MeetingList(list))
}

// Meeting shows one meeting followed by its action items.
func (a *App) Meeting(ctx context.Context, id string) error {
	m, err := a.meetings.Get(ctx, id)
	if err != nil {
		a.report(ctx, "Loading meeting", err)
		return err
	}
	if err := a.print(output.MeetingView(*m)); err != nil {
		return err
	}

	items, err := a.meetings.MeetingActionItems(ctx, id)
	if err != nil {
		a.report(ctx, "Loading action items", err)
		return err
	}
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Action items:")
	return a.print(output.ActionItemList(items))
}

// NewMeeting prompts for a title and description and creates a meeting.
func (a *App) NewMeeting(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}
	desc, err := GetMultiline(a.reader, "Enter description", a.out)
	if err != nil {
		return err
	}

	m, err := a.meetings.Create(ctx, models.MeetingCreate{Title: title, Description: desc})
	if err != nil {
		a.report(ctx, "Creating meeting", err)
		return err
	}
	fmt.Fprintf(a.out, "Created meeting %s\n", m.ID)
	return nil
}

// Tasks lists action items, optionally filtered by status.
func (a *App) Tasks(ctx context.Context, status string) error {
	items, err := a.meetings.ActionItems(ctx, models.TaskStatus(status))
	if err != nil {
		a.report(ctx, "Listing tasks", err)
		return err
	}
	return a.print(output.ActionItemList(items))
}
