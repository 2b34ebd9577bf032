package i18n

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

type Translations struct {
	bundle   *i18n.Bundle
	localize *i18n.Localizer
}

// NewTranslations arma el bundle con los mensajes embebidos en inglés y
// carga los archivos de locales desde localesPath (o ./locales si está vacío).
func NewTranslations(defaultLang string, localesPath string) (*Translations, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	bundle.MustParseMessageFileBytes([]byte(defaultMessages), "default.en.toml")

	if localesPath == "" {
		localesPath = "locales"
	}

	files, err := filepath.Glob(filepath.Join(localesPath, "active.*.toml"))
	if err != nil {
		return nil, fmt.Errorf("error reading locales: %w", err)
	}

	for _, file := range files {
		if _, err := bundle.LoadMessageFile(file); err != nil {
			return nil, fmt.Errorf("error loading locale file %s: %w", file, err)
		}
	}

	localize := i18n.NewLocalizer(bundle, defaultLang)

	return &Translations{
		bundle:   bundle,
		localize: localize,
	}, nil
}

func (t *Translations) SetLanguage(lang string) error {
	for _, tag := range t.bundle.LanguageTags() {
		if tag.String() == lang {
			t.localize = i18n.NewLocalizer(t.bundle, lang)
			return nil
		}
	}
	return fmt.Errorf("language '%s' not supported", lang)
}

func (t *Translations) GetMessage(messageID string, count int, templateData map[string]interface{}) string {
	localized, err := t.localize.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{
			ID: messageID,
		},
		PluralCount:  count,
		TemplateData: templateData,
	})
	if err != nil {
		return "Translation missing: " + messageID
	}
	return localized
}

var defaultMessages = `
	[app_usage]
	other = "Stage a project submission into the installer template and open a pull request"

	[app_description]
	other = "mate-intake collects a project's metadata and assets, stages them into a clone of the installer template repository, and opens a pull request with the result"

	[submit_command_usage]
	other = "Run the full submission pipeline"

	[validate_command_usage]
	other = "Validate the submission fields without touching the repository"

	[config_command_usage]
	other = "Show or change the persisted defaults"

	[help_command_usage]
	other = "Show help"

	[validation_failed]
	other = "Please fix the following before resubmitting:"

	[validation_ok]
	other = "Project '{{.Name}}' targeting Python {{.Python}} was validated successfully"

	[python_hint_old]
	other = "Python versions earlier than 3.10 only receive security fixes. Consider upgrading soon."

	[python_hint_new]
	other = "Great pick! Python {{.Python}} includes the latest performance gains."

	[cloning_repo]
	other = "Cloning Git repo to {{.Path}}..."

	[repo_already_cloned]
	other = "Git repo already cloned at {{.Path}}"

	[staging_assets]
	other = "Staging submission assets..."

	[creating_pr]
	other = "Creating pull request for '{{.Name}}'..."

	[no_changes_detected]
	other = "No changes detected in {{.Folder}}. Nothing to push."

	[changes_detected]
	other = "Changes detected!"

	[change_check_failed]
	other = "Could not check changes: {{.Error}}"

	[branch_pushed]
	other = "Successfully pushed to branch {{.Branch}}"

	[push_failed]
	other = "Failed to push changes: {{.Error}}"

	[pr_created]
	other = "Pull request created: {{.URL}}"

	[pr_already_exists]
	other = "Pull request already exists for branch {{.Branch}}. It has been automatically updated."

	[pr_failed]
	other = "Failed to create pull request: {{.Error}}"

	[cleanup_failed]
	other = "Could not remove the working copy at {{.Path}}: {{.Error}}"

	[current_config]
	other = "Current configuration"

	[config_saved]
	other = "Configuration saved"

	[factory_already_registered]
	other = "factory '{{.FactoryName}}' is already registered"
	`
