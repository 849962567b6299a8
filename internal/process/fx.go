package process

import (
	"github.com/lexflow/lexfin/internal/process/repository"
	"github.com/lexflow/lexfin/internal/process/service"
	"go.uber.org/fx"
)

var Module = fx.Module("process.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
