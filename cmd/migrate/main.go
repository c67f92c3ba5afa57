package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/rs/zerolog"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/config"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/database"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/logger"
)

const usage = `Usage: migrate [flags] <command> [arg]

Commands:
  up [N]          apply all pending migrations, or the next N
  down [N]        roll back one migration, or the last N
  goto <version>  migrate up or down to version
  version         print the current version and dirty flag
  force <version> set the version without running migrations

Flags:
`

func main() {
	dbURL := flag.String("database", "", "Database URL (defaults to DATABASE_URL)")
	logFormat := flag.String("log-format", "pretty", "pretty or json")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	log := logger.Setup("info", *logFormat).With().Str("component", "migrate").Logger()

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(2)
	}
	if *dbURL == "" {
		*dbURL = config.LoadDatabaseURL()
	}

	m, err := database.NewMigrator(*dbURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Migration failed to initialize")
	}
	defer m.Close()

	if err := run(m, args, log); err != nil {
		log.Fatal().Err(err).Str("command", args[0]).Msg("Migration failed")
	}
}

func run(m *migrate.Migrate, args []string, log zerolog.Logger) error {
	command := args[0]
	switch command {
	case "up":
		n, err := optionalSteps(args)
		if err != nil {
			return err
		}
		if n == 0 {
			err = m.Up()
		} else {
			err = m.Steps(n)
		}
		if ignoreNoChange(err) != nil {
			return err
		}
	case "down":
		n, err := optionalSteps(args)
		if err != nil {
			return err
		}
		if n == 0 {
			n = 1
		}
		if err := ignoreNoChange(m.Steps(-n)); err != nil {
			return err
		}
	case "goto":
		v, err := requiredVersion(args)
		if err != nil {
			return err
		}
		if err := ignoreNoChange(m.Migrate(uint(v))); err != nil {
			return err
		}
	case "force":
		v, err := requiredVersion(args)
		if err != nil {
			return err
		}
		if err := m.Force(v); err != nil {
			return err
		}
	case "version":
	default:
		flag.Usage()
		os.Exit(2)
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		log.Info().Str("command", command).Msg("No migrations applied")
		return nil
	}
	if err != nil {
		return err
	}
	log.Info().
		Str("command", command).
		Uint("version", version).
		Bool("dirty", dirty).
		Msg("Migration state")
	return nil
}

func optionalSteps(args []string) (int, error) {
	if len(args) < 2 {
		return 0, nil
	}
	n, err := strconv.Atoi(args[1])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid step count %q", args[1])
	}
	return n, nil
}

func requiredVersion(args []string) (int, error) {
	if len(args) < 2 {
		return 0, fmt.Errorf("%s requires a version argument", args[0])
	}
	v, err := strconv.Atoi(args[1])
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid version %q", args[1])
	}
	return v, nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
