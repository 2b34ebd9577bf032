package config

import (
	"context"
	"fmt"

	cfgPkg "github.com/Tomas-vilte/MateIntake/internal/config"
	"github.com/Tomas-vilte/MateIntake/internal/i18n"
	"github.com/Tomas-vilte/MateIntake/internal/ui"
	"github.com/urfave/cli/v3"
)

type ConfigCommandFactory struct{}

func NewConfigCommandFactory() *ConfigCommandFactory {
	return &ConfigCommandFactory{}
}

func (f *ConfigCommandFactory) CreateCommand(t *i18n.Translations, cfg *cfgPkg.Config) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: t.GetMessage("config_command_usage", 0, nil),
		Commands: []*cli.Command{
			f.showCommand(t, cfg),
			f.setCommand(t, cfg),
		},
	}
}

func (f *ConfigCommandFactory) showCommand(t *i18n.Translations, cfg *cfgPkg.Config) *cli.Command {
	return &cli.Command{
		Name: "show",
		Action: func(ctx context.Context, command *cli.Command) error {
			ui.PrintInfo(t.GetMessage("current_config", 0, nil))
			fmt.Printf("  template_repo_url: %s\n", cfg.TemplateRepoURL)
			fmt.Printf("  scratch_root: %s\n", cfg.ScratchRoot)
			fmt.Printf("  branch_prefix: %s\n", cfg.BranchPrefix)
			fmt.Printf("  base_branch: %s\n", cfg.BaseBranch)
			fmt.Printf("  language: %s\n", cfg.Language)
			fmt.Printf("  max_upload_mb: %d\n", cfg.MaxUploadMB)
			return nil
		},
	}
}

func (f *ConfigCommandFactory) setCommand(t *i18n.Translations, cfg *cfgPkg.Config) *cli.Command {
	return &cli.Command{
		Name: "set",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "repo", Usage: "URL del repositorio plantilla"},
			&cli.StringFlag{Name: "scratch-root", Usage: "raíz de los working copies"},
			&cli.StringFlag{Name: "branch-prefix", Usage: "prefijo de las ramas de envío"},
			&cli.StringFlag{Name: "base-branch", Usage: "rama base de las pull requests"},
			&cli.StringFlag{Name: "language", Usage: "idioma de los mensajes (en, es)"},
			&cli.IntFlag{Name: "max-upload-mb", Usage: "tamaño máximo por archivo subido"},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			if repo := command.String("repo"); repo != "" {
				cfg.TemplateRepoURL = repo
			}
			if root := command.String("scratch-root"); root != "" {
				cfg.ScratchRoot = root
			}
			if prefix := command.String("branch-prefix"); prefix != "" {
				cfg.BranchPrefix = prefix
			}
			if base := command.String("base-branch"); base != "" {
				cfg.BaseBranch = base
			}
			if lang := command.String("language"); lang != "" {
				cfg.Language = lang
			}
			if maxUpload := command.Int("max-upload-mb"); maxUpload > 0 {
				cfg.MaxUploadMB = int(maxUpload)
			}

			if err := cfgPkg.SaveConfig(cfg); err != nil {
				return err
			}

			ui.PrintSuccess(t.GetMessage("config_saved", 0, nil))
			return nil
		},
	}
}
