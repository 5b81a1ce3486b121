package console

import (
	"fmt"

	"github.com/c-bata/go-prompt"
)

// Run reads and executes commands interactively until quit or EOF.
func Run(c Controller) {
	fmt.Printf("connected to %s (help for usage, quit to exit)\n", c.Name())

	comp := &completer{controller: c}
	var history []string
	for {
		line := prompt.Input("> ", comp.Complete,
			prompt.OptionTitle("benchtop"),
			prompt.OptionHistory(history),
		)
		if line != "" {
			history = append(history, line)
		}
		cmd, err := ParseCommand(line)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		if cmd == nil {
			continue
		}
		if Execute(c, cmd) {
			return
		}
	}
}
