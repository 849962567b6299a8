package client

import (
	"github.com/lexflow/lexfin/internal/client/repository"
	"github.com/lexflow/lexfin/internal/client/service"
	"go.uber.org/fx"
)

var Module = fx.Module("client.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
