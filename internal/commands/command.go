package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd        Type = "add"
	TypeDelete     Type = "delete"
	TypeReschedule Type = "reschedule"
	TypeTasks      Type = "tasks"
	TypeShow       Type = "show"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Message string
}

// DeleteArgs, RescheduleArgs and TasksArgs target a reminder by its
// 1-based position in the last listed snapshot. The position can go
// stale before execution; the store reports that, not the parser.
type DeleteArgs struct {
	Position int
}

type RescheduleArgs struct {
	Position int
	When     string
}

type TasksArgs struct {
	Position int
}

type Command struct {
	Type       Type
	Raw        string
	Add        *AddArgs
	Delete     *DeleteArgs
	Reschedule *RescheduleArgs
	Tasks      *TasksArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDelete:
		return parseDelete(input, args)
	case TypeReschedule:
		return parseReschedule(input, args)
	case TypeTasks:
		return parseTasks(input, args)
	case TypeShow:
		return Command{Type: TypeShow, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	message := strings.TrimSpace(strings.Join(args, " "))
	if message == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a message"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Message: message}}, nil
}

func parseDelete(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "delete requires a reminder number"}
	}
	pos, err := parsePosition(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeDelete, Raw: raw, Delete: &DeleteArgs{Position: pos}}, nil
}

func parseReschedule(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "reschedule requires a reminder number and a time"}
	}
	pos, err := parsePosition(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{
		Type:       TypeReschedule,
		Raw:        raw,
		Reschedule: &RescheduleArgs{Position: pos, When: strings.Join(args[1:], " ")},
	}, nil
}

func parseTasks(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "tasks requires a reminder number"}
	}
	pos, err := parsePosition(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeTasks, Raw: raw, Tasks: &TasksArgs{Position: pos}}, nil
}

func parsePosition(raw string) (int, error) {
	pos, err := strconv.Atoi(raw)
	if err != nil || pos < 1 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("not a reminder number: %s", raw)}
	}
	return pos, nil
}
