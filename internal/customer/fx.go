package customer

import (
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/customer/repository"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/customer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
