package commands

import (
	"errors"
	"testing"
)

func TestParseAdd(t *testing.T) {
	cmd, err := Parse("/add Call mom")
	if err != nil {
		t.Fatalf("parse add: %v", err)
	}
	if cmd.Type != TypeAdd || cmd.Add == nil || cmd.Add.Message != "Call mom" {
		t.Fatalf("unexpected command: %+v", cmd)
	}
}

func TestParseDelete(t *testing.T) {
	cmd, err := Parse("delete 2")
	if err != nil {
		t.Fatalf("parse delete: %v", err)
	}
	if cmd.Type != TypeDelete || cmd.Delete.Position != 2 {
		t.Fatalf("unexpected command: %+v", cmd)
	}
}

func TestParseReschedule(t *testing.T) {
	cmd, err := Parse("reschedule 1 2024-06-01 18:30")
	if err != nil {
		t.Fatalf("parse reschedule: %v", err)
	}
	if cmd.Reschedule.Position != 1 || cmd.Reschedule.When != "2024-06-01 18:30" {
		t.Fatalf("unexpected args: %+v", cmd.Reschedule)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		input string
		code  ErrorCode
	}{
		{"", ErrCodeEmptyInput},
		{"/", ErrCodeEmptyInput},
		{"frobnicate", ErrCodeUnknownCommand},
		{"add", ErrCodeInvalidArgument},
		{"delete", ErrCodeInvalidArgument},
		{"delete zero", ErrCodeInvalidArgument},
		{"delete 0", ErrCodeInvalidArgument},
		{"reschedule 1", ErrCodeInvalidArgument},
		{"tasks one two", ErrCodeInvalidArgument},
	}
	for _, tc := range cases {
		_, err := Parse(tc.input)
		var cmdErr *CommandError
		if !errors.As(err, &cmdErr) {
			t.Fatalf("%q: expected CommandError, got %v", tc.input, err)
		}
		if cmdErr.Code != tc.code {
			t.Fatalf("%q: expected code %s, got %s", tc.input, tc.code, cmdErr.Code)
		}
	}
}

func TestExecuteRoutesToHandler(t *testing.T) {
	cmd, err := Parse("tasks 3")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	called := 0
	result, err := Execute(cmd, Handlers{
		Tasks: func(args TasksArgs) (Result, error) {
			called++
			if args.Position != 3 {
				t.Fatalf("unexpected position %d", args.Position)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if called != 1 || result.Message != "ok" {
		t.Fatalf("handler not invoked correctly: called=%d result=%+v", called, result)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, _ := Parse("show")
	_, err := Execute(cmd, Handlers{})
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected handler_missing, got %v", err)
	}
}
