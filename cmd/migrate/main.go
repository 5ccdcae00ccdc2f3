package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/sirupsen/logrus"

	"raceplanner/internal/config"
	"raceplanner/internal/database"
	"raceplanner/internal/logger"
)

const usage = `usage: migrate <command>

commands:
  up          apply all pending migrations
  down [n]    roll back n migrations (default 1)
  version     print the current schema version
  force <v>   set the version without running migrations, clearing the dirty flag
`

func main() {
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}
	logger.InitLogger(cfg.Level())

	m, err := database.NewMigrator(cfg.DB.URL())
	if err != nil {
		logrus.WithError(err).Fatal("failed to open migrator")
	}
	defer m.Close()

	if err := run(m, flag.Args()); err != nil {
		logrus.WithError(err).Fatal("migration failed")
	}
}

func run(m *migrate.Migrate, args []string) error {
	switch args[0] {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
	case "down":
		steps := 1
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				return fmt.Errorf("invalid step count %q", args[1])
			}
			steps = n
		}
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
	case "version":
	case "force":
		if len(args) < 2 {
			return errors.New("force needs a version")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid version %q", args[1])
		}
		if err := m.Force(v); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		logrus.Info("no migrations applied")
		return nil
	}
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"version": version, "dirty": dirty}).Info("schema version")
	return nil
}
