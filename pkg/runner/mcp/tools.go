package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/dayplan/pkg/model"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListTasksTool(srv, svc)
	registerAddTaskTool(srv, svc)
	registerCompleteTaskTool(srv, svc)
	registerRescheduleTaskTool(srv, svc)
	registerDeleteTaskTool(srv, svc)
	registerListNotesTool(srv, svc)
	registerAddNoteTool(srv, svc)
	registerCompletionReportTool(srv, svc)
}

func registerListTasksTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_tasks",
		mcp.WithDescription("List the user's tasks, optionally filtered."),
		mcp.WithString("tab",
			mcp.Description("Which slice to show."),
			mcp.Enum("all", "active", "completed"),
		),
		mcp.WithString("search",
			mcp.Description("Case-insensitive substring match on title or description."),
		),
		mcp.WithNumber("importance",
			mcp.Description("Exact importance filter, 1 to 3."),
			mcp.Min(1),
			mcp.Max(3),
		),
		mcp.WithString("from",
			mcp.Description("Inclusive start of a due-date window, 2006-01-02."),
		),
		mcp.WithString("to",
			mcp.Description("Inclusive end of a due-date window, 2006-01-02."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		opts := ListTasksOptions{
			Tab:        request.GetString("tab", "all"),
			Search:     request.GetString("search", ""),
			Importance: request.GetInt("importance", 0),
		}

		from := strings.TrimSpace(request.GetString("from", ""))
		to := strings.TrimSpace(request.GetString("to", ""))
		if (from == "") != (to == "") {
			return mcp.NewToolResultError("from and to must be given together"), nil
		}
		if from != "" {
			start, err := model.ParseDate(from)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			end, err := model.ParseDate(to)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			opts.From, opts.To = start, end
		}

		tasks, err := svc.ListTasks(ctx, opts)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"tasks": tasks,
			"count": len(tasks),
		})
	})
}

func registerAddTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_task",
		mcp.WithDescription("Create a new task for the user."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("What needs doing."),
		),
		mcp.WithString("description",
			mcp.Description("Optional longer text."),
		),
		mcp.WithString("due_date",
			mcp.Required(),
			mcp.Description("Due date, 2006-01-02."),
		),
		mcp.WithString("due_time",
			mcp.Description("Optional wall-clock time, 15:04."),
		),
		mcp.WithString("importance",
			mcp.Description("Optional importance."),
			mcp.Enum("1", "2", "3"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title, err := request.RequireString("title")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dueDate, err := request.RequireString("due_date")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		task, err := svc.AddTask(ctx, AddTaskOptions{
			Title:       title,
			Description: request.GetString("description", ""),
			DueDate:     dueDate,
			DueTime:     request.GetString("due_time", ""),
			Importance:  request.GetString("importance", ""),
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(task)
	})
}

func registerCompleteTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"complete_task",
		mcp.WithDescription("Mark a task finished, or reopen it."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Task identifier."),
		),
		mcp.WithBoolean("reopen",
			mcp.Description("Clear the finished state instead of setting it."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireInt("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		task, err := svc.CompleteTask(ctx, int64(id), request.GetBool("reopen", false))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(task)
	})
}

func registerRescheduleTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"reschedule_task",
		mcp.WithDescription("Move a task to a different due date."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Task identifier."),
		),
		mcp.WithString("due_date",
			mcp.Required(),
			mcp.Description("New due date, 2006-01-02."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireInt("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		raw, err := request.RequireString("due_date")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		day, err := model.ParseDate(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		task, err := svc.RescheduleTask(ctx, int64(id), day)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(task)
	})
}

func registerDeleteTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_task",
		mcp.WithDescription("Delete a task permanently."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Task identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireInt("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.DeleteTask(ctx, int64(id)); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"deleted": id})
	})
}

func registerListNotesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_notes",
		mcp.WithDescription("List the user's notes."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		notes, err := svc.ListNotes(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"notes": notes,
			"count": len(notes),
		})
	})
}

func registerAddNoteTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_note",
		mcp.WithDescription("Create a new note for the user."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Note title."),
		),
		mcp.WithString("description",
			mcp.Description("Optional note body."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title, err := request.RequireString("title")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		note, err := svc.AddNote(ctx, title, request.GetString("description", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(note)
	})
}

func registerCompletionReportTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"completion_report",
		mcp.WithDescription("Aggregate completion statistics over a date range."),
		mcp.WithString("from",
			mcp.Required(),
			mcp.Description("Inclusive start date, 2006-01-02."),
		),
		mcp.WithString("to",
			mcp.Required(),
			mcp.Description("Inclusive end date, 2006-01-02."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		rawFrom, err := request.RequireString("from")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		rawTo, err := request.RequireString("to")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		from, err := model.ParseDate(rawFrom)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		to, err := model.ParseDate(rawTo)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		report, err := svc.CompletionReport(ctx, from, to)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(report)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
