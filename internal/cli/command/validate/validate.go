package validate

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/Tomas-vilte/MateIntake/internal/cli/uploads"
	"github.com/Tomas-vilte/MateIntake/internal/config"
	"github.com/Tomas-vilte/MateIntake/internal/domain/models"
	"github.com/Tomas-vilte/MateIntake/internal/i18n"
	"github.com/Tomas-vilte/MateIntake/internal/ui"
	"github.com/urfave/cli/v3"
)

type ValidateCommandFactory struct{}

func NewValidateCommandFactory() *ValidateCommandFactory {
	return &ValidateCommandFactory{}
}

func (f *ValidateCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   t.GetMessage("validate_command_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Required: true},
			&cli.StringFlag{Name: "project-version", Aliases: []string{"V"}, Required: true},
			&cli.StringFlag{Name: "python", Aliases: []string{"p"}, Value: string(models.Python312)},
			&cli.StringFlag{Name: "icon"},
			&cli.StringFlag{Name: "welcome"},
			&cli.StringFlag{Name: "header"},
		},
		Action: f.createAction(t, cfg),
	}
}

func (f *ValidateCommandFactory) createAction(t *i18n.Translations, cfg *config.Config) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		icon, err := uploads.Read(command.String("icon"))
		if err != nil {
			return err
		}
		welcome, err := uploads.Read(command.String("welcome"))
		if err != nil {
			return err
		}
		header, err := uploads.Read(command.String("header"))
		if err != nil {
			return err
		}

		submission := &models.Submission{
			ProjectName:  command.String("name"),
			Version:      command.String("project-version"),
			PythonTarget: models.PythonVersion(command.String("python")),
			Icon:         icon,
			WelcomeImage: welcome,
			HeaderImage:  header,
		}

		if errs := submission.Validate(cfg.MaxUploadMB * 1024 * 1024); len(errs) > 0 {
			ui.PrintError(t.GetMessage("validation_failed", 0, nil))
			for _, validationErr := range errs {
				ui.Dim.Printf("  - %s\n", validationErr)
			}
			return errors.New("el envío no pasó la validación")
		}

		ui.PrintSuccess(t.GetMessage("validation_ok", 0, map[string]interface{}{
			"Name":   strings.TrimSpace(submission.ProjectName),
			"Python": string(submission.PythonTarget),
		}))

		if hint := pythonHint(t, submission.PythonTarget); hint != "" {
			ui.PrintInfo(hint)
		}

		return nil
	}
}

// pythonHint reproduce el copy del formulario original según la versión
// elegida: advertencia para <3.10, elogio para 3.12+.
func pythonHint(t *i18n.Translations, version models.PythonVersion) string {
	parts := strings.SplitN(string(version), ".", 2)
	if len(parts) != 2 {
		return ""
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return ""
	}

	switch {
	case minor < 10:
		return t.GetMessage("python_hint_old", 0, nil)
	case minor >= 12:
		return t.GetMessage("python_hint_new", 0, map[string]interface{}{
			"Python": string(version),
		})
	}
	return ""
}
