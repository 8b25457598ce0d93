package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/config"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/server"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/pkg/db"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		log.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
