package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phongzhu/e-elyon/pkg/core/services"
)

// AssignCmd creates the assign command
func AssignCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "assign <task_id> <slot_id> [member_id...]",
		Short: "Set exactly which members fill a role slot (no members clears it)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, slotID := args[0], args[1]
			memberIDs := args[2:]

			result, err := services.ReconcileSlotAssignment(app.Ctx, app.Database, app.Logger, taskID, slotID, memberIDs)
			if err != nil {
				return err
			}

			if result.Delta.Empty() {
				fmt.Printf("\nNo changes - %s already has the selected members.\n\n", result.Slot.RoleName)
				return nil
			}

			fmt.Printf("\n✓ %s updated\n\n", result.Slot.RoleName)
			if len(result.Delta.ToAdd) > 0 {
				fmt.Printf("  Added:   %s\n", strings.Join(result.Delta.ToAdd, ", "))
			}
			if len(result.Delta.ToRemove) > 0 {
				fmt.Printf("  Removed: %s\n", strings.Join(result.Delta.ToRemove, ", "))
			}
			fmt.Println()

			return nil
		},
	}
}
