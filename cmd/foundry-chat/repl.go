package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hupe1980/foundryrelay/core"
)

type repl struct {
	agent   core.ChatAgent
	tasks   core.TaskService
	in      io.Reader
	out     io.Writer
	timeout time.Duration
}

func (r *repl) run(ctx context.Context) error {
	scanner := bufio.NewScanner(r.in)
	fmt.Fprintln(r.out, "Type a message, /tasks, /task <title>, /done <id> or /quit.")
	for {
		fmt.Fprint(r.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			quit, err := r.command(ctx, line)
			if err != nil {
				fmt.Fprintf(r.out, "error: %v\n", err)
			}
			if quit {
				return nil
			}
			continue
		}
		fmt.Fprintln(r.out, r.send(ctx, line).Content)
	}
}

func (r *repl) send(ctx context.Context, line string) core.ChatMessage {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return r.agent.ProcessMessage(ctx, line)
}

func (r *repl) command(ctx context.Context, line string) (bool, error) {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case "/quit", "/exit":
		return true, nil
	case "/tasks":
		tasks, err := r.tasks.List(ctx)
		if err != nil {
			return false, err
		}
		if len(tasks) == 0 {
			fmt.Fprintln(r.out, "no tasks")
		}
		for _, t := range tasks {
			mark := " "
			if t.Completed {
				mark = "x"
			}
			fmt.Fprintf(r.out, "[%s] %s %s\n", mark, t.ID, t.Title)
		}
		return false, nil
	case "/task":
		t, err := r.tasks.Create(ctx, arg)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(r.out, "added %s\n", t.ID)
		return false, nil
	case "/done":
		t, err := r.tasks.Complete(ctx, arg)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(r.out, "completed %s\n", t.Title)
		return false, nil
	default:
		return false, fmt.Errorf("unknown command %s", name)
	}
}
