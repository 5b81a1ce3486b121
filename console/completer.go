package console

import (
	"strings"

	"github.com/c-bata/go-prompt"
)

var commandSuggestions = []prompt.Suggest{
	{Text: "list", Description: "show the instrument's properties"},
	{Text: "get", Description: "query a property"},
	{Text: "set", Description: "set a property"},
	{Text: "write", Description: "send a raw command"},
	{Text: "read", Description: "read a raw reply"},
	{Text: "ask", Description: "send a raw command and read the reply"},
	{Text: "values", Description: "send a raw command and parse the reply"},
	{Text: "delay", Description: "set the write delay"},
	{Text: "help", Description: "show usage"},
	{Text: "quit", Description: "exit"},
}

// completer suggests command names for the first word and property names
// for the argument of get and set.
type completer struct {
	controller Controller
}

func (c *completer) Complete(d prompt.Document) []prompt.Suggest {
	before := d.TextBeforeCursor()
	words := strings.Fields(before)
	if len(words) == 0 || (len(words) == 1 && !strings.HasSuffix(before, " ")) {
		return prompt.FilterHasPrefix(commandSuggestions, d.GetWordBeforeCursor(), true)
	}
	switch words[0] {
	case "get", "set":
		return prompt.FilterHasPrefix(c.propertySuggestions(words[0]), d.GetWordBeforeCursor(), true)
	}
	return nil
}

func (c *completer) propertySuggestions(command string) []prompt.Suggest {
	var suggests []prompt.Suggest
	for _, name := range c.controller.Properties() {
		p, ok := c.controller.Property(name)
		if !ok {
			continue
		}
		if command == "get" && !p.Readable() {
			continue
		}
		if command == "set" && !p.Writable() {
			continue
		}
		suggests = append(suggests, prompt.Suggest{Text: name, Description: p.Doc})
	}
	return suggests
}
