package main

import (
	"context"
	"fmt"
	"log"
	"os"

	configCmd "github.com/Tomas-vilte/MateIntake/internal/cli/command/config"
	"github.com/Tomas-vilte/MateIntake/internal/cli/command/submit"
	"github.com/Tomas-vilte/MateIntake/internal/cli/command/validate"
	"github.com/Tomas-vilte/MateIntake/internal/cli/registry"
	cfg "github.com/Tomas-vilte/MateIntake/internal/config"
	"github.com/Tomas-vilte/MateIntake/internal/i18n"
	"github.com/Tomas-vilte/MateIntake/internal/logging"
	"github.com/Tomas-vilte/MateIntake/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	logging.SetupLogger(verbosityFromEnv())

	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Error iniciando la cli: %v", err)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// verbosityFromEnv lee MATE_INTAKE_VERBOSE (0-2, default 0).
func verbosityFromEnv() int {
	switch os.Getenv("MATE_INTAKE_VERBOSE") {
	case "1":
		return 1
	case "2":
		return 2
	}
	return 0
}

func initializeApp() (*cli.Command, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("no se pudo obtener el directorio del usuario: %w", err)
	}

	cfgApp, err := cfg.LoadConfig(homeDir)
	if err != nil {
		return nil, err
	}

	translations, err := i18n.NewTranslations(cfgApp.Language, "")
	if err != nil {
		log.Fatalf("Error al cargar las traducciones: %v", err)
	}

	if err := cfg.SaveConfig(cfgApp); err != nil {
		return nil, err
	}

	registerCommand := registry.NewRegistry(cfgApp, translations)

	if err := registerCommand.Register("submit", submit.NewSubmitCommandFactory()); err != nil {
		log.Fatalf("Error al registrar el comando 'submit': %v", err)
	}

	if err := registerCommand.Register("validate", validate.NewValidateCommandFactory()); err != nil {
		log.Fatalf("Error al registrar el comando 'validate': %v", err)
	}

	if err := registerCommand.Register("config", configCmd.NewConfigCommandFactory()); err != nil {
		log.Fatalf("Error al registrar el comando 'config': %v", err)
	}

	commands := registerCommand.CreateCommands()

	helpCommand := &cli.Command{
		Name:    "help",
		Aliases: []string{"h"},
		Usage:   translations.GetMessage("help_command_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
	}
	commands = append(commands, helpCommand)

	return &cli.Command{
		Name:                  "mate-intake",
		Usage:                 translations.GetMessage("app_usage", 0, nil),
		Version:               version.FullVersion(),
		Description:           translations.GetMessage("app_description", 0, nil),
		Commands:              commands,
		EnableShellCompletion: true,
	}, nil
}
