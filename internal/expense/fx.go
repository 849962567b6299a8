package expense

import (
	"github.com/lexflow/lexfin/internal/expense/repository"
	"github.com/lexflow/lexfin/internal/expense/service"
	"go.uber.org/fx"
)

var Module = fx.Module("expense.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
