package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phongzhu/e-elyon/pkg/core/services"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorDim    = "\033[2m"
)

// CandidatesCmd creates the candidates command
func CandidatesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "candidates <task_id> <slot_id>",
		Short: "List ministry members annotated for a role slot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, slotID := args[0], args[1]
			app.Logger.Debug("candidates command", zap.String("task_id", taskID), zap.String("slot_id", slotID))

			candidates, err := services.ListCandidates(app.Ctx, app.Database, app.Evaluator, app.Logger, taskID, slotID)
			if err != nil {
				return err
			}

			if len(candidates) == 0 {
				fmt.Println("The task's ministry has no members.")
				return nil
			}

			nameColWidth := 20
			for _, c := range candidates {
				if len(c.Member.FullName) > nameColWidth {
					nameColWidth = len(c.Member.FullName)
				}
			}
			nameColWidth += 2

			fmt.Printf("\nCandidates for slot %s:\n\n", slotID)
			for _, c := range candidates {
				label, color := candidateStatus(c)
				fmt.Printf("%-*s %s%-14s%s %s%s%s\n",
					nameColWidth, c.Member.FullName,
					color, label, colorReset,
					colorDim, c.Eligibility.Availability.Reason, colorReset)
			}

			fmt.Println()
			fmt.Println("Legend:")
			fmt.Printf("  %sAssigned%s      = already on this slot\n", colorGreen, colorReset)
			fmt.Printf("  %sRecommended%s   = skills match and available\n", colorGreen, colorReset)
			fmt.Printf("  Available     = available, no matching skill on file\n")
			fmt.Printf("  %sUnavailable%s   = cannot be selected\n", colorRed, colorReset)
			fmt.Printf("  %sOther slot%s    = assigning moves them from another slot\n", colorYellow, colorReset)

			return nil
		},
	}
}

// candidateStatus returns the label and color shown for a candidate
func candidateStatus(c services.Candidate) (string, string) {
	switch {
	case c.Assigned:
		return "Assigned", colorGreen
	case !c.Selectable:
		return "Unavailable", colorRed
	case c.AssignedSlotID != "":
		return "Other slot", colorYellow
	case c.Eligibility.Recommended():
		return "Recommended", colorGreen
	default:
		return "Available", ""
	}
}
