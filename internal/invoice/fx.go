package invoice

import (
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(service.New),
)
