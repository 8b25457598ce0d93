package ledger

import (
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/ledger/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ledger.service",
	fx.Provide(service.New),
)
