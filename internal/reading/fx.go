package reading

import (
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/reading/repository"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/reading/service"
	"go.uber.org/fx"
)

var Module = fx.Module("reading.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
