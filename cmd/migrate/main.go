package main

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"ordersvc/internal/config"
	"ordersvc/internal/infrastructure/mysql"
)

const (
	migrationDir      = "migrations"
	versionTimeFormat = "20060102150405"
)

func main() {
	rootCmd := &cobra.Command{Use: "migrate"}
	rootCmd.AddCommand(
		createCommand(),
		upCommand(),
		downCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func createCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create [name]",
		Short: "create an empty pair of sql migration scripts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version := time.Now().Format(versionTimeFormat)
			up := fmt.Sprintf("%s/%s_%s.up.sql", migrationDir, version, args[0])
			down := fmt.Sprintf("%s/%s_%s.down.sql", migrationDir, version, args[0])

			if err := os.WriteFile(up, []byte{}, 0644); err != nil {
				return err
			}
			if err := os.WriteFile(down, []byte{}, 0644); err != nil {
				return err
			}

			fmt.Println("Created SQL up script:", up)
			fmt.Println("Created SQL down script:", down)
			return nil
		},
	}
}

func upCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newMigrate()
			if err != nil {
				return err
			}

			err = m.Up()
			if err == migrate.ErrNoChange {
				fmt.Println("No change in migration")
				return nil
			}
			return err
		},
	}
}

func downCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newMigrate()
			if err != nil {
				return err
			}
			return m.Steps(-1)
		},
	}
}

func newMigrate() (*migrate.Migrate, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	return migrate.New(
		fmt.Sprintf("file://%s", migrationDir),
		fmt.Sprintf("mysql://%s", mysql.DSN(cfg.Database)),
	)
}
