// @title           Paperpress API
// @version         1.0
// @description     Invoice template design and rendering API

// @contact.name   API Support
// @contact.email  support@smallbiznis.dev

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api
// @Schemes 	http https

package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/smallbiznis/paperpress/internal/audit"
	"github.com/smallbiznis/paperpress/internal/clock"
	"github.com/smallbiznis/paperpress/internal/config"
	"github.com/smallbiznis/paperpress/internal/events/dispatch"
	"github.com/smallbiznis/paperpress/internal/migration"
	"github.com/smallbiznis/paperpress/internal/observability"
	"github.com/smallbiznis/paperpress/internal/observability/logger"
	"github.com/smallbiznis/paperpress/internal/seed"
	"github.com/smallbiznis/paperpress/internal/server"
	"github.com/smallbiznis/paperpress/internal/template"
	"github.com/smallbiznis/paperpress/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,

		fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
			if err := migration.RunMigrations(conn); err != nil {
				return err
			}
			if cfg.Bootstrap.SeedSystemTemplates {
				return seed.EnsureSystemTemplates(conn, snowflake.ID(cfg.Bootstrap.OrgID))
			}
			return nil
		}),

		audit.Module,
		template.Module,
		dispatch.Module,
		server.Module,
	)
	app.Run()
}

func registerSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
