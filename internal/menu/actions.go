// Package menu implements the control panel's numbered text menu.
package menu

import (
	"fmt"

	"github.com/lydakis/phase3ctl/internal/rpc"
)

// InputKind is the secondary input an action reads after its choice.
type InputKind int

const (
	InputNone InputKind = iota
	InputText
	InputLevel
)

// ExitChoice ends the loop.
const ExitChoice = 8

// Action describes one menu entry that invokes a tool.
type Action struct {
	Choice         int
	Label          string
	Tool           string
	Input          InputKind
	ResultPrefix   string
	FailureMessage string
}

// Value is the secondary input collected for an action.
type Value struct {
	Text  string
	Level int
}

// Actions lists the tool-invoking menu entries in display order.
var Actions = []Action{
	{Choice: 1, Label: "Generate Text", Tool: "generate", Input: InputText, ResultPrefix: "Result", FailureMessage: "Error calling generate tool"},
	{Choice: 2, Label: "System Status", Tool: "get_status", ResultPrefix: "Status", FailureMessage: "Error getting status"},
	{Choice: 3, Label: "Start Frontend", Tool: "start_frontend", ResultPrefix: "Frontend", FailureMessage: "Error starting frontend"},
	{Choice: 4, Label: "Debug Mode", Tool: "set_debug", Input: InputLevel, ResultPrefix: "Debug", FailureMessage: "Error setting debug level"},
	{Choice: 5, Label: "Agent Config", Tool: "get_agent_config", ResultPrefix: "Config", FailureMessage: "Error getting agent config"},
	{Choice: 6, Label: "Database Management", Tool: "db_status", ResultPrefix: "Database", FailureMessage: "Error getting database status"},
	{Choice: 7, Label: "Settings", Tool: "get_settings", ResultPrefix: "Settings", FailureMessage: "Error getting settings"},
}

// Arguments encodes the tool arguments for v as JSON text.
func (a Action) Arguments(v Value) (string, error) {
	args := map[string]any{}
	switch a.Input {
	case InputText:
		args["prompt"] = v.Text
	case InputLevel:
		args["level"] = v.Level
	}

	data, err := rpc.Encode(args)
	if err != nil {
		return "", fmt.Errorf("encoding %s arguments: %w", a.Tool, err)
	}
	return string(data), nil
}

func actionTable(actions []Action) map[int]Action {
	table := make(map[int]Action, len(actions))
	for _, a := range actions {
		table[a.Choice] = a
	}
	return table
}
