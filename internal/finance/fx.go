package finance

import (
	"github.com/lexflow/lexfin/internal/finance/repository"
	"github.com/lexflow/lexfin/internal/finance/service"
	"go.uber.org/fx"
)

var Module = fx.Module("finance.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
