package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
)

// Command is a devtool subcommand
type Command interface {
	Name() string
	Description() string
	Run(args []string) error
}

// Registry holds subcommands in the order they are registered
type Registry struct {
	order  []Command
	byName map[string]Command
}

func NewRegistry(cmds ...Command) *Registry {
	r := &Registry{byName: make(map[string]Command, len(cmds))}
	for _, cmd := range cmds {
		r.Register(cmd)
	}
	return r
}

// Register adds cmd, replacing any command with the same name
func (r *Registry) Register(cmd Command) {
	if _, exists := r.byName[cmd.Name()]; !exists {
		r.order = append(r.order, cmd)
	}
	for i, existing := range r.order {
		if existing.Name() == cmd.Name() {
			r.order[i] = cmd
		}
	}
	r.byName[cmd.Name()] = cmd
}

func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.byName[name]
	return cmd, ok
}

// Dispatch runs the command named by args[0]
func (r *Registry) Dispatch(args []string) error {
	if len(args) == 0 {
		r.WriteHelp(os.Stdout)
		return fmt.Errorf("no command given")
	}
	cmd, ok := r.Get(args[0])
	if !ok {
		r.WriteHelp(os.Stdout)
		return fmt.Errorf("unknown command %q", args[0])
	}
	if err := cmd.Run(args[1:]); err != nil {
		return fmt.Errorf("%s: %w", cmd.Name(), err)
	}
	return nil
}

func (r *Registry) WriteHelp(w io.Writer) {
	fmt.Fprintln(w, "Usage: devtool <command> [args...]")
	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, cmd := range r.order {
		fmt.Fprintf(tw, "  %s\t%s\n", cmd.Name(), cmd.Description())
	}
	_ = tw.Flush()
}
