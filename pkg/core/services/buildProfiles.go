package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/phongzhu/e-elyon/pkg/core/staffing"
	"github.com/phongzhu/e-elyon/pkg/db"
)

// BuildMemberProfiles derives skills and availability for each (ministry, member) pair
// from approved questionnaire answers. Members without data get an empty profile.
func BuildMemberProfiles(ctx context.Context, store db.ProfileStore, logger *zap.Logger, ministryIDs, memberIDs []string) (map[staffing.ProfileKey]*staffing.MemberProfile, error) {
	ministryIDs = staffing.Unique(ministryIDs)
	memberIDs = staffing.Unique(memberIDs)

	logger.Debug("Building member profiles",
		zap.Strings("ministry_ids", ministryIDs),
		zap.Int("member_count", len(memberIDs)))

	if len(ministryIDs) == 0 || len(memberIDs) == 0 {
		return map[staffing.ProfileKey]*staffing.MemberProfile{}, nil
	}

	// Requirements and applications are independent reads
	var requirements []db.Requirement
	var applications []db.Application
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		requirements, err = store.GetActiveRequirements(gctx, ministryIDs)
		if err != nil {
			return fmt.Errorf("failed to fetch requirements: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		applications, err = store.GetApprovedApplications(gctx, ministryIDs, memberIDs)
		if err != nil {
			return fmt.Errorf("failed to fetch applications: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Debug("Fetched questionnaire metadata",
		zap.Int("requirements", len(requirements)),
		zap.Int("applications", len(applications)))

	var answers []db.Answer
	if len(applications) > 0 {
		applicationIDs := make([]string, 0, len(applications))
		for _, a := range applications {
			applicationIDs = append(applicationIDs, a.ID)
		}

		var err error
		answers, err = store.GetAnswers(ctx, applicationIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch answers: %w", err)
		}
	}

	profiles := staffing.AssembleProfiles(ministryIDs, memberIDs, requirements, applications, answers)

	logger.Debug("Member profiles built",
		zap.Int("profiles", len(profiles)),
		zap.Int("answers", len(answers)))

	return profiles, nil
}
