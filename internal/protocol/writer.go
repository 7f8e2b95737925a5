package protocol

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signalsfoundry/transit-planner/model"
)

// Wait is the literal emitted when a turn takes no action.
const Wait = "WAIT"

// FormatActions renders one turn's output line: the wait token when no
// action was taken, otherwise semicolon-joined commands.
func FormatActions(actions []model.Action) string {
	if len(actions) == 0 {
		return Wait
	}
	parts := make([]string, 0, len(actions))
	for _, a := range actions {
		parts = append(parts, FormatAction(a))
	}
	return strings.Join(parts, ";")
}

// FormatAction renders a single command.
func FormatAction(a model.Action) string {
	if a.Kind == model.ActionPod {
		var b strings.Builder
		b.WriteString("POD ")
		b.WriteString(strconv.Itoa(a.VehicleID))
		for _, stop := range a.Tour {
			b.WriteByte(' ')
			b.WriteString(strconv.Itoa(stop))
		}
		return b.String()
	}
	return fmt.Sprintf("%s %d %d", a.Kind, a.A, a.B)
}

// WriteTurn writes the formatted action line followed by a newline.
func WriteTurn(w io.Writer, actions []model.Action) error {
	if _, err := fmt.Fprintln(w, FormatActions(actions)); err != nil {
		return fmt.Errorf("write actions: %w", err)
	}
	return nil
}
