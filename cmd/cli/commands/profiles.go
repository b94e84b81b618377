package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phongzhu/e-elyon/pkg/core/services"
	"github.com/phongzhu/e-elyon/pkg/core/staffing"
)

// ProfilesCmd creates the profiles command
func ProfilesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles <ministry_id> <member_id>...",
		Short: "Show skills and availability derived from approved applications",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ministryID := args[0]

			profiles, err := services.BuildMemberProfiles(app.Ctx, app.Database, app.Logger, []string{ministryID}, args[1:])
			if err != nil {
				return err
			}

			keys := make([]staffing.ProfileKey, 0, len(profiles))
			for k := range profiles {
				keys = append(keys, k)
			}
			sort.Slice(keys, func(i, j int) bool { return keys[i].MemberID < keys[j].MemberID })

			fmt.Printf("\nProfiles in ministry %s:\n\n", ministryID)
			for _, k := range keys {
				fmt.Printf("%s\n", k.MemberID)
				fmt.Printf("  Skills:       %s\n", formatSkills(profiles[k].Skills))
				fmt.Printf("  Availability: %s\n", formatAvailability(profiles[k].Availability))
			}
			fmt.Println()

			return nil
		},
	}
}

func formatSkills(skills []string) string {
	if len(skills) == 0 {
		return colorDim + "none on file" + colorReset
	}
	return strings.Join(skills, ", ")
}

func formatAvailability(a *staffing.AvailabilityDescriptor) string {
	if a == nil {
		return colorDim + "no restrictions" + colorReset
	}

	parts := []string{}
	if len(a.Days) > 0 {
		parts = append(parts, strings.Join(a.Days, ", "))
	} else {
		parts = append(parts, "any day")
	}
	if strings.TrimSpace(a.Notes) != "" {
		parts = append(parts, fmt.Sprintf("(%s)", strings.TrimSpace(a.Notes)))
	}
	return strings.Join(parts, " ")
}
