package main

import (
	"context"
	"os"

	"github.com/martillo-arte/subastas-parser/cmd"
	"github.com/martillo-arte/subastas-parser/internal/db"
	"github.com/martillo-arte/subastas-parser/internal/log"
	"github.com/martillo-arte/subastas-parser/internal/util"
)

func main() {
	config := util.GetConfig()

	log.InitLogger(config)

	defer func() {
		if r := recover(); r != nil {
			log.GetLogger().Panic(r)
		}
	}()

	connection, err := db.GetConnection(config)
	if err != nil {
		log.GetLogger().Fatalln(err)
	}

	if err := cmd.Run(context.Background(), connection, config); err != nil {
		log.GetLogger().Fatalln(err)
	}

	os.Exit(0)
}
