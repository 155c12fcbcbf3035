package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/mwhitford/planline/internal/cli"
	"github.com/mwhitford/planline/internal/config"
	"github.com/mwhitford/planline/internal/db"
	"github.com/mwhitford/planline/internal/repository"
	"github.com/mwhitford/planline/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.planline/planline.db
	dbPath := os.Getenv("PLANLINE_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".planline", "planline.db")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	phaseRepo := repository.NewSQLitePhaseRepo(database)
	subphaseRepo := repository.NewSQLiteSubphaseRepo(database)
	depRepo := repository.NewSQLiteDependencyRepo(database)
	staffRepo := repository.NewSQLiteStaffAssignmentRepo(database)
	equipmentRepo := repository.NewSQLiteEquipmentAssignmentRepo(database)
	batch := repository.NewBatchApplier(projectRepo, phaseRepo, subphaseRepo, staffRepo, equipmentRepo)

	uow := db.NewSQLiteUnitOfWork(database)

	// Use-case logging goes to stderr when PLANLINE_LOG_USECASES is set.
	var observers []service.UseCaseObserver
	if os.Getenv("PLANLINE_LOG_USECASES") != "" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	treeSvc := service.NewTreeService(projectRepo, phaseRepo, subphaseRepo, depRepo, staffRepo, equipmentRepo)

	app := &cli.App{
		Projects:    service.NewProjectService(projectRepo, phaseRepo, subphaseRepo, depRepo),
		Phases:      service.NewPhaseService(phaseRepo, subphaseRepo, depRepo),
		Subphases:   service.NewSubphaseService(subphaseRepo, depRepo),
		Assignments: service.NewAssignmentService(staffRepo, equipmentRepo),
		Tree:        treeSvc,
		Deps:        service.NewDependencyService(treeSvc, phaseRepo, subphaseRepo, depRepo, batch, observers...),
		Schedule:    service.NewScheduleService(treeSvc, batch, observers...),
		Timeline:    service.NewTimelineService(cfg),
		Critical:    service.NewCriticalPathService(treeSvc, observers...),
		Import:      service.NewImportService(uow, observers...),
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
