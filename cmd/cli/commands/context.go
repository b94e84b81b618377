package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/phongzhu/e-elyon/internal/config"
	"github.com/phongzhu/e-elyon/pkg/core/services"
	"github.com/phongzhu/e-elyon/pkg/core/staffing"
	"github.com/phongzhu/e-elyon/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg       *config.Config
	Database  db.Database
	Evaluator *staffing.Evaluator
	Logger    *zap.Logger
	Ctx       context.Context
}

// SlotOptions returns the slot editing options from config
func (app *AppContext) SlotOptions() services.SaveSlotsOptions {
	return services.SaveSlotsOptions{PreserveSlotIdentity: app.Cfg.Staffing.PreserveSlotIdentity}
}
