package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/lexflow/lexfin/internal/config"
	"github.com/lexflow/lexfin/internal/migration"
	"github.com/lexflow/lexfin/internal/server"
	"github.com/lexflow/lexfin/pkg/db"
	"github.com/lexflow/lexfin/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		log.Module,
		db.Module,
		fx.Provide(newSnowflakeNode),
		migration.Module,
		server.Module,
	)
	app.Run()
}

func newSnowflakeNode() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
