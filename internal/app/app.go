package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/filepilot/filepilot/internal/actions"
	"github.com/filepilot/filepilot/internal/config"
	"github.com/filepilot/filepilot/internal/oracle"
	"github.com/filepilot/filepilot/internal/session"
)

// App runs the interactive read loop: instruction in, oracle proposal,
// confirmation for anything mutating, then dispatch and render.
type App struct {
	cfg      *config.Config
	oracle   oracle.Oracle
	executor *actions.Executor
	session  *session.Session
	in       io.Reader
	out      io.Writer
}

// Run reads instructions until EOF or an exit command. One command is
// resolved, checked and executed to completion before the next is read.
func (a *App) Run(ctx context.Context) error {
	defer a.session.Close()

	reader := bufio.NewReader(a.in)

	fmt.Fprintf(a.out, "filepilot — natural language file manager (root: %s)\n", a.cfg.Root)
	fmt.Fprintln(a.out, "Type 'exit' or 'quit' to stop.")

	for {
		fmt.Fprint(a.out, "\nyou> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}

		instruction := strings.TrimSpace(line)
		if instruction == "" {
			continue
		}
		if instruction == "exit" || instruction == "quit" {
			return nil
		}

		cmd, err := a.oracle.Translate(ctx, instruction)
		if err != nil {
			color.New(color.FgRed).Fprintf(a.out, "could not interpret instruction: %v\n", err)
			continue
		}

		a.describeProposal(cmd)

		if cmd.Mutating() && !a.cfg.AutoConfirm {
			if !a.confirm(reader, cmd.Action) {
				fmt.Fprintln(a.out, "Action cancelled.")
				continue
			}
		}

		result := a.executor.Dispatch(ctx, cmd)
		a.render(result)
	}
}

func (a *App) describeProposal(cmd oracle.Command) {
	bold := color.New(color.Bold)
	bold.Fprintf(a.out, "proposed: %s", cmd.Action)
	if cmd.FileType != "" {
		fmt.Fprintf(a.out, " type=%s", cmd.FileType)
	}
	if cmd.SourcePath != "" {
		fmt.Fprintf(a.out, " source=%s", cmd.SourcePath)
	}
	if cmd.DestinationPath != "" {
		fmt.Fprintf(a.out, " dest=%s", cmd.DestinationPath)
	}
	fmt.Fprintln(a.out)
}

func (a *App) confirm(reader *bufio.Reader, action string) bool {
	fmt.Fprintf(a.out, "CONFIRM: %s these files? (y/n): ", action)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
