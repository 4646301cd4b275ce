package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"craftvival/db/migrations"
	"craftvival/internal/adapter/eventlog"
	httpadapter "craftvival/internal/adapter/http"
	metricsinmem "craftvival/internal/adapter/metrics/inmemory"
	"craftvival/internal/adapter/recipebook"
	gormrepo "craftvival/internal/adapter/repo/gorm"
	"craftvival/internal/adapter/repo/memory"
	"craftvival/internal/app/action"
	"craftvival/internal/app/observe"
	"craftvival/internal/app/ports"
	"craftvival/internal/app/replay"
	"craftvival/internal/config"
	"craftvival/internal/domain/survival"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type repos struct {
	State   ports.PlayerStateRepository
	Actions ports.ActionExecutionRepository
	Events  ports.EventRepository
	Tx      ports.TxManager
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		hlog.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		hlog.Fatalf("invalid config: %v", err)
	}

	book, err := recipebook.Load(cfg.Recipes.Path)
	if err != nil {
		hlog.Fatalf("load recipes: %v", err)
	}

	ctx := context.Background()
	r, err := buildRepos(ctx, cfg.Storage)
	if err != nil {
		hlog.Fatalf("build repositories: %v", err)
	}
	if err := seedDemoPlayer(ctx, r.State, cfg); err != nil {
		hlog.Fatalf("seed demo player: %v", err)
	}

	var archive ports.EventSink
	if cfg.Archive.Enabled {
		w := eventlog.NewWriter(cfg.Archive.Dir, cfg.Archive.Prefix)
		defer func() {
			if err := w.Close(); err != nil {
				hlog.Errorf("close event archive: %v", err)
			}
		}()
		archive = w
	}

	kpiRecorder := metricsinmem.NewRecorder()
	h := httpadapter.Handler{
		ObserveUC: observe.UseCase{
			StateRepo:     r.State,
			Book:          book,
			InventorySize: cfg.Inventory.Size,
			StackLimit:    cfg.Inventory.StackLimit,
			Now:           time.Now,
		},
		ActionUC: action.UseCase{
			TxManager:     r.Tx,
			StateRepo:     r.State,
			ActionRepo:    r.Actions,
			EventRepo:     r.Events,
			Archive:       archive,
			Metrics:       kpiRecorder,
			Book:          book,
			InventorySize: cfg.Inventory.Size,
			StackLimit:    cfg.Inventory.StackLimit,
			Now:           time.Now,
		},
		ReplayUC: replay.UseCase{Events: r.Events},
		Book:     book,
		KPI:      kpiRecorder,
	}

	s := server.Default(server.WithHostPorts(cfg.Server.Listen))
	h.RegisterRoutes(s)

	hlog.Infof("craftvival listening on %s (store: %s, recipes: %d, demo player: %s)",
		cfg.Server.Listen, cfg.Storage.Kind, len(book.Recipes()), cfg.Demo.PlayerID)
	s.Spin()
}

func buildRepos(ctx context.Context, cfg config.StorageConfig) (repos, error) {
	switch cfg.Kind {
	case config.StoreMemory:
		store := memory.NewStore()
		return repos{
			State:   memory.NewPlayerStateRepo(store),
			Actions: memory.NewActionExecutionRepo(store),
			Events:  memory.NewEventRepo(store),
			Tx:      memory.NewTxManager(store),
		}, nil
	case config.StorePostgres:
		db, err := gormrepo.OpenPostgres(cfg.DSN)
		if err != nil {
			return repos{}, fmt.Errorf("open postgres: %w", err)
		}
		if cfg.MigrationsDir != "" {
			err = gormrepo.ApplyMigrations(ctx, db, cfg.MigrationsDir)
		} else {
			err = gormrepo.ApplyMigrationsFS(ctx, db, migrations.FS)
		}
		if err != nil {
			return repos{}, fmt.Errorf("apply migrations: %w", err)
		}
		return repos{
			State:   gormrepo.NewPlayerStateRepo(db),
			Actions: gormrepo.NewActionExecutionRepo(db),
			Events:  gormrepo.NewEventRepo(db),
			Tx:      gormrepo.NewTxManager(db),
		}, nil
	default:
		return repos{}, fmt.Errorf("unsupported storage kind %q", cfg.Kind)
	}
}

// seedDemoPlayer gives the demo player enough for one axe so a fresh server
// has something to craft. Existing players are left alone.
func seedDemoPlayer(ctx context.Context, states ports.PlayerStateRepository, cfg config.Config) error {
	if cfg.Demo.PlayerID == "" {
		return nil
	}
	_, err := states.GetByPlayerID(ctx, cfg.Demo.PlayerID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ports.ErrNotFound) {
		return err
	}

	seed := survival.NewPlayerState(cfg.Demo.PlayerID, cfg.Inventory.Size, cfg.Inventory.StackLimit)
	for _, ic := range []survival.ItemAndCount{
		{Item: survival.Twig, Count: 1},
		{Item: survival.Flint, Count: 1},
	} {
		if overflow := seed.Inventory.Add(ic); overflow != nil {
			return fmt.Errorf("demo inventory too small for %s", ic)
		}
	}
	seed.Version = 1
	seed.UpdatedAt = time.Now()
	if err := states.SaveWithVersion(ctx, seed, 0); err != nil && !errors.Is(err, ports.ErrConflict) {
		return err
	}
	return nil
}
