package submit

import (
	"context"
	"errors"

	"github.com/Tomas-vilte/MateIntake/internal/cli/uploads"
	"github.com/Tomas-vilte/MateIntake/internal/config"
	"github.com/Tomas-vilte/MateIntake/internal/domain/models"
	"github.com/Tomas-vilte/MateIntake/internal/i18n"
	"github.com/Tomas-vilte/MateIntake/internal/icons"
	"github.com/Tomas-vilte/MateIntake/internal/infrastructure/git"
	vcsgithub "github.com/Tomas-vilte/MateIntake/internal/infrastructure/vcs/github"
	"github.com/Tomas-vilte/MateIntake/internal/stager"
	"github.com/Tomas-vilte/MateIntake/internal/ui"
	"github.com/urfave/cli/v3"
)

type SubmitCommandFactory struct{}

func NewSubmitCommandFactory() *SubmitCommandFactory {
	return &SubmitCommandFactory{}
}

func (f *SubmitCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "submit",
		Aliases: []string{"s"},
		Usage:   t.GetMessage("submit_command_usage", 0, nil),
		Flags:   f.createFlags(cfg),
		Action:  f.createAction(cfg, t),
	}
}

func (f *SubmitCommandFactory) createFlags(cfg *config.Config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "name",
			Aliases:  []string{"n"},
			Usage:    "nombre del proyecto",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "project-version",
			Aliases:  []string{"V"},
			Usage:    "versión semántica del proyecto (MAJOR.MINOR.PATCH)",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "python",
			Aliases: []string{"p"},
			Usage:   "versión de Python objetivo",
			Value:   string(models.Python312),
		},
		&cli.StringFlag{
			Name:  "icon",
			Usage: "ruta al PNG del ícono",
		},
		&cli.StringFlag{
			Name:  "welcome",
			Usage: "ruta a la imagen de bienvenida del instalador",
		},
		&cli.StringFlag{
			Name:  "header",
			Usage: "ruta a la imagen de cabecera del instalador",
		},
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   "URL del repositorio plantilla",
			Value:   cfg.TemplateRepoURL,
		},
		&cli.StringFlag{
			Name:    "token",
			Usage:   "personal access token del forge",
			Sources: cli.EnvVars("GITHUB_TOKEN"),
		},
	}
}

func (f *SubmitCommandFactory) createAction(cfg *config.Config, t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		submission, err := buildSubmission(command)
		if err != nil {
			return err
		}

		if errs := submission.Validate(cfg.MaxUploadMB * 1024 * 1024); len(errs) > 0 {
			ui.PrintError(t.GetMessage("validation_failed", 0, nil))
			for _, validationErr := range errs {
				ui.Dim.Printf("  - %s\n", validationErr)
			}
			return errors.New("el envío no pasó la validación")
		}

		repoURL := command.String("repo")
		if repoURL == "" {
			return errors.New("falta la URL del repositorio plantilla (--repo o config)")
		}

		token := command.String("token")
		if token == "" {
			return errors.New("falta el token de acceso (--token o GITHUB_TOKEN)")
		}

		forge, err := vcsgithub.NewGitHubClient(repoURL, token, cfg.BaseBranch)
		if err != nil {
			return err
		}

		gitService := git.NewGitService(forge)

		pipeline := stager.NewStager(stager.Options{
			RepoURL:      repoURL,
			Token:        token,
			ScratchRoot:  cfg.ScratchRoot,
			BranchPrefix: cfg.BranchPrefix,
			BaseBranch:   cfg.BaseBranch,
		}, gitService, forge, icons.NewBuilder(), t, nil)

		spin := ui.NewSmartSpinner(t.GetMessage("creating_pr", 0, map[string]interface{}{
			"Name": submission.ProjectName,
		}))
		spin.Start()
		defer spin.Stop()

		_, err = pipeline.Run(ctx, submission)
		return err
	}
}

func buildSubmission(command *cli.Command) (*models.Submission, error) {
	icon, err := uploads.Read(command.String("icon"))
	if err != nil {
		return nil, err
	}
	welcome, err := uploads.Read(command.String("welcome"))
	if err != nil {
		return nil, err
	}
	header, err := uploads.Read(command.String("header"))
	if err != nil {
		return nil, err
	}

	return &models.Submission{
		ProjectName:  command.String("name"),
		Version:      command.String("project-version"),
		PythonTarget: models.PythonVersion(command.String("python")),
		Icon:         icon,
		WelcomeImage: welcome,
		HeaderImage:  header,
	}, nil
}
