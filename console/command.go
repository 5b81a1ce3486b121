package console

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"benchtop/adapters"
	"benchtop/instrument"
)

// Controller is the slice of the instrument facade the console needs.
// *instrument.Instrument satisfies it.
type Controller interface {
	Name() string
	Properties() []string
	Property(name string) (*instrument.Property, bool)
	Get(name string) (any, error)
	Set(name string, value any) error
	Write(command string) error
	Read() (string, error)
	Ask(command string) (string, error)
	Values(command string, cast adapters.Cast, preprocess func(string) string) ([]any, error)
	SetWriteDelay(d time.Duration)
	WriteDelay() time.Duration
}

// CommandType identifies a console command.
type CommandType int

const (
	CmdHelp CommandType = iota
	CmdList
	CmdGet
	CmdSet
	CmdWrite
	CmdRead
	CmdAsk
	CmdValues
	CmdDelay
	CmdQuit
)

// Command is one parsed console input line.
type Command struct {
	Type     CommandType
	Property string
	Value    any
	Raw      string
	Delay    time.Duration
}

// ParseCommand parses one input line. An empty line returns (nil, nil).
func ParseCommand(line string) (*Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, nil
	}
	name, args := fields[0], fields[1:]
	switch name {
	case "help":
		return &Command{Type: CmdHelp}, nil
	case "list":
		return &Command{Type: CmdList}, nil
	case "get":
		if len(args) != 1 {
			return nil, fmt.Errorf("usage: get <property>")
		}
		return &Command{Type: CmdGet, Property: args[0]}, nil
	case "set":
		if len(args) < 2 {
			return nil, fmt.Errorf("usage: set <property> <value>")
		}
		return &Command{
			Type:     CmdSet,
			Property: args[0],
			Value:    parseValue(strings.Join(args[1:], " ")),
		}, nil
	case "write":
		if len(args) == 0 {
			return nil, fmt.Errorf("usage: write <command>")
		}
		return &Command{Type: CmdWrite, Raw: strings.Join(args, " ")}, nil
	case "read":
		return &Command{Type: CmdRead}, nil
	case "ask":
		if len(args) == 0 {
			return nil, fmt.Errorf("usage: ask <command>")
		}
		return &Command{Type: CmdAsk, Raw: strings.Join(args, " ")}, nil
	case "values":
		if len(args) == 0 {
			return nil, fmt.Errorf("usage: values <command>")
		}
		return &Command{Type: CmdValues, Raw: strings.Join(args, " ")}, nil
	case "delay":
		if len(args) != 1 {
			return nil, fmt.Errorf("usage: delay <duration>")
		}
		d, err := time.ParseDuration(args[0])
		if err != nil {
			return nil, fmt.Errorf("invalid duration %q: %w", args[0], err)
		}
		return &Command{Type: CmdDelay, Delay: d}, nil
	case "quit", "exit":
		return &Command{Type: CmdQuit}, nil
	}
	return nil, fmt.Errorf("unknown command %q (help for usage)", name)
}

// parseValue interprets a set argument: a number, a comma-separated tuple of
// numbers, or a plain string.
func parseValue(s string) any {
	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		tuple := make([]any, 0, len(parts))
		for _, p := range parts {
			tuple = append(tuple, parseValue(strings.TrimSpace(p)))
		}
		return tuple
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n
	}
	return s
}

// Execute runs one parsed command against the controller and returns true
// when the console should stop.
func Execute(c Controller, cmd *Command) bool {
	switch cmd.Type {
	case CmdHelp:
		printHelp()
	case CmdList:
		for _, name := range c.Properties() {
			p, _ := c.Property(name)
			fmt.Printf("  %-16s %s  %s\n", name, accessFlags(p), p.Doc)
		}
	case CmdGet:
		v, err := c.Get(cmd.Property)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return false
		}
		fmt.Printf("%s = %v\n", cmd.Property, v)
	case CmdSet:
		if err := c.Set(cmd.Property, cmd.Value); err != nil {
			fmt.Printf("error: %v\n", err)
		}
	case CmdWrite:
		if err := c.Write(cmd.Raw); err != nil {
			fmt.Printf("error: %v\n", err)
		}
	case CmdRead:
		reply, err := c.Read()
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return false
		}
		fmt.Println(reply)
	case CmdAsk:
		reply, err := c.Ask(cmd.Raw)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return false
		}
		fmt.Println(reply)
	case CmdValues:
		vals, err := c.Values(cmd.Raw, nil, nil)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return false
		}
		fmt.Println(vals)
	case CmdDelay:
		c.SetWriteDelay(cmd.Delay)
		fmt.Printf("write delay set to %v\n", cmd.Delay)
	case CmdQuit:
		return true
	}
	return false
}

func accessFlags(p *instrument.Property) string {
	switch {
	case p.Readable() && p.Writable():
		return "rw"
	case p.Readable():
		return "r-"
	default:
		return "-w"
	}
}

func printHelp() {
	fmt.Print(`commands:
  list                 show the instrument's properties
  get <property>       query a property
  set <property> <v>   set a property (comma-separated values for tuples)
  write <command>      send a raw command
  read                 read a raw reply
  ask <command>        send a raw command and read the reply
  values <command>     send a raw command and parse the reply fields
  delay <duration>     set the write delay (e.g. 100ms)
  quit                 exit
`)
}
