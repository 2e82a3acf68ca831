package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add        func(AddArgs) (Result, error)
	Delete     func(DeleteArgs) (Result, error)
	Reschedule func(RescheduleArgs) (Result, error)
	Tasks      func(TasksArgs) (Result, error)
	Show       func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "delete handler not configured"}
		}
		return handlers.Delete(*cmd.Delete)
	case TypeReschedule:
		if handlers.Reschedule == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "reschedule handler not configured"}
		}
		return handlers.Reschedule(*cmd.Reschedule)
	case TypeTasks:
		if handlers.Tasks == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "tasks handler not configured"}
		}
		return handlers.Tasks(*cmd.Tasks)
	case TypeShow:
		if handlers.Show == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "show handler not configured"}
		}
		return handlers.Show()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
