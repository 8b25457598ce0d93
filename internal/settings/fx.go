package settings

import (
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/settings/service"
	"go.uber.org/fx"
)

var Module = fx.Module("settings.service",
	fx.Provide(service.New),
)
