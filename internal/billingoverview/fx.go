package billingoverview

import (
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/billingoverview/service"
	"go.uber.org/fx"
)

var Module = fx.Module("billingoverview.service",
	fx.Provide(service.New),
)
