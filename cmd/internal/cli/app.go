package cli

import (
	"context"
	"fmt"
	"time"

	"blog-api/config"
	"blog-api/db"
	"blog-api/eventbus"
	"blog-api/logger"
	"blog-api/repositories"
	"blog-api/services"
)

// app holds the process-wide collaborators built from config.
// The entry point owns its lifecycle: openApp connects, close releases.
type app struct {
	cfg       *config.AppConfig
	mongo     *db.Mongo
	posts     *repositories.PostRepository
	publisher eventbus.Publisher
	svc       *services.PostService
}

func openApp(ctx context.Context, cfg *config.AppConfig) (*app, error) {
	m, err := db.Connect(ctx, cfg.Mongo)
	if err != nil {
		return nil, err
	}
	a := &app{
		cfg:       cfg,
		mongo:     m,
		posts:     repositories.NewPostRepository(m.Database()),
		publisher: eventbus.NoopPublisher{},
	}
	if err := a.posts.EnsureIndexes(ctx); err != nil {
		a.close(ctx)
		return nil, err
	}

	if cfg.EventsActive() {
		bus, err := eventbus.NewKafkaEventBus(cfg.Events.Brokers)
		if err != nil {
			a.close(ctx)
			return nil, fmt.Errorf("init event bus: %w", err)
		}
		a.publisher = bus
		logger.InfoWithFields("post events enabled", logger.Fields{"topic": cfg.Events.Topic})
	}
	return a, nil
}

func (a *app) postService() *services.PostService {
	if a.svc == nil {
		a.svc = services.NewPostService(a.posts, a.publisher, a.cfg.Events.Topic)
	}
	return a.svc
}

func (a *app) close(ctx context.Context) {
	if a.svc != nil {
		drainCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		if err := a.svc.Close(drainCtx); err != nil {
			logger.Log.Errorf("failed to drain post events: %v", err)
		}
		cancel()
	}
	if a.publisher != nil {
		a.publisher.Close()
	}
	if err := a.mongo.Disconnect(ctx); err != nil {
		logger.Log.Errorf("failed to disconnect mongo: %v", err)
	}
}
