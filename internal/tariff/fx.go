package tariff

import (
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/tariff/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tariff.service",
	fx.Provide(service.New),
)
