package app

import (
	"context"
	"log"
	"time"

	"github.com/opentextlab/restauro/internal/config"
	"github.com/opentextlab/restauro/internal/core"
	db "github.com/opentextlab/restauro/internal/core/database"
	objectclient "github.com/opentextlab/restauro/internal/core/object-client"
	"github.com/opentextlab/restauro/internal/queue"
	"github.com/opentextlab/restauro/internal/recovery"
)

type App struct {
	DBClient     core.DbClient
	ObjectClient core.ObjectClient
	Queue        queue.Queue
	Server       *Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	appCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	dbClient, err := db.NewDatabaseClient(appCtx, cfg)
	if err != nil {
		return nil, err
	}
	log.Println("Database initialized and ready.")

	objClient, err := objectclient.NewS3Client(appCtx, cfg)
	if err != nil {
		return nil, err
	}
	log.Println("Object client initialized and ready.")

	// One fresh processor per document: the correction map and error
	// frequency state must never leak between files.
	newProcessor := func() *recovery.Processor {
		return recovery.NewProcessor(
			recovery.DefaultExtractors(),
			recovery.NewDocconvFormatter(),
			recovery.WithFormatTimeout(time.Duration(cfg.FormatTimeout)*time.Second),
		)
	}

	processQueue := queue.NewProcessQueue(dbClient, objClient, cfg.BucketName, newProcessor)
	processQueue.Start(ctx, cfg.Workers)

	server := NewServer(cfg, dbClient, objClient, processQueue)

	return &App{DBClient: dbClient, ObjectClient: objClient, Queue: processQueue, Server: server}, nil
}

func (a *App) Close() {
	if a.DBClient != nil {
		_ = a.DBClient.Close()
	}
}
