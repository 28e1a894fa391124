package template

import (
	"go.uber.org/fx"

	"github.com/smallbiznis/paperpress/internal/events"
	"github.com/smallbiznis/paperpress/internal/template/repository"
	"github.com/smallbiznis/paperpress/internal/template/service"
)

var Module = fx.Module("template.service",
	fx.Provide(events.NewOutbox),
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
