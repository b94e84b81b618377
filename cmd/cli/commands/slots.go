package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phongzhu/e-elyon/pkg/core/services"
	"github.com/phongzhu/e-elyon/pkg/core/staffing"
)

// SlotsCmd creates the slots command group
func SlotsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "View or edit the role slots of a task",
	}

	cmd.AddCommand(listSlotsCmd(app))
	cmd.AddCommand(saveSlotsCmd(app))

	return cmd
}

func listSlotsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list <task_id>",
		Short: "List a task's role slots and who fills them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summaries, err := services.ListRoleSlots(app.Ctx, app.Database, app.Logger, args[0])
			if err != nil {
				return err
			}

			if len(summaries) == 0 {
				fmt.Println("No role slots defined for this task.")
				return nil
			}

			fmt.Printf("\nRole slots for task %s:\n\n", args[0])
			for _, s := range summaries {
				status := fmt.Sprintf("%d/%d", len(s.MemberIDs), s.Slot.QtyRequired)
				if s.Filled() {
					status += " ✓"
				}
				fmt.Printf("  %-24s %-8s %s\n", s.Slot.RoleName, status, s.Slot.ID)
				for _, memberID := range s.MemberIDs {
					fmt.Printf("      - %s\n", memberID)
				}
			}
			fmt.Println()

			return nil
		},
	}
}

func saveSlotsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save <task_id> <role[:qty]>...",
		Short: "Replace a task's role slots, e.g. save task-1 \"Drummer:1\" \"Usher:3\"",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID := args[0]

			drafts := make([]staffing.SlotDraft, 0, len(args)-1)
			for _, arg := range args[1:] {
				draft, err := parseSlotDraft(arg)
				if err != nil {
					return err
				}
				drafts = append(drafts, draft)
			}

			opts := app.SlotOptions()
			if cmd.Flags().Changed("preserve") {
				opts.PreserveSlotIdentity, _ = cmd.Flags().GetBool("preserve")
			}

			slots, err := services.SaveRoleSlots(app.Ctx, app.Database, app.Logger, taskID, drafts, opts)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Saved %d role slot(s) for task %s\n\n", len(slots), taskID)
			for _, s := range slots {
				fmt.Printf("  %-24s x%d  %s\n", s.RoleName, s.QtyRequired, s.ID)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Bool("preserve", false, "Keep IDs (and assignments) of slots whose role name is unchanged")

	return cmd
}

// parseSlotDraft parses "Role name:qty"; the quantity defaults to 1
func parseSlotDraft(arg string) (staffing.SlotDraft, error) {
	name, qtyText, hasQty := arg, "", false
	if i := strings.LastIndex(arg, ":"); i >= 0 {
		name, qtyText, hasQty = arg[:i], arg[i+1:], true
	}

	draft := staffing.SlotDraft{RoleName: strings.TrimSpace(name), QtyRequired: 1}
	if hasQty {
		qty, err := strconv.Atoi(strings.TrimSpace(qtyText))
		if err != nil {
			return staffing.SlotDraft{}, fmt.Errorf("quantity for %q must be a number: %w", name, err)
		}
		draft.QtyRequired = qty
	}

	return draft, nil
}
