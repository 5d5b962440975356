package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prosecraft/prosecraft/internal/config"
	"github.com/prosecraft/prosecraft/internal/platform"
	"github.com/prosecraft/prosecraft/internal/storage"
	"github.com/prosecraft/prosecraft/internal/ui"
	"github.com/prosecraft/prosecraft/internal/version"
)

const supportEmail = "support@prosecraft.com"

var aboutCmd = &cobra.Command{
	Use:     "about",
	Aliases: []string{"support", "privacy"},
	Short:   "Help, contact details and what prosecraft stores",
	Args:    cobra.NoArgs,
	RunE:    runAbout,
}

type faq struct {
	Question string
	Answer   string
}

var faqs = []faq{
	{
		Question: "How do I get started?",
		Answer:   "Set GEMINI_API_KEY, then run 'prosecraft analyze grammar' and type or pipe your text.",
	},
	{
		Question: "Do I need an account?",
		Answer:   "No. Signing in with 'prosecraft account register' only adds usage statistics to your profile.",
	},
	{
		Question: "Why did my theme reset?",
		Answer:   "A preference that could not be saved falls back to its default on the next run. 'prosecraft doctor' checks the storage backend.",
	},
}

// aboutInfo is what the about screen reports about this installation.
type aboutInfo struct {
	Version     string
	ConfigPath  string
	DataPath    string
	Endpoint    string
	APIKeyIsSet bool
}

func runAbout(cmd *cobra.Command, args []string) error {
	info := aboutInfo{Version: version.Get(Version, Commit, BuildDate).Short()}

	if path, err := config.GetConfigPath(); err == nil {
		info.ConfigPath = path
	}
	if cfgFile != "" {
		info.ConfigPath = cfgFile
	}

	c := cfg
	if c == nil {
		c = config.DefaultConfig()
	}
	dataDir, err := platform.DataDir()
	if err != nil {
		return err
	}
	info.DataPath = storage.Location(c.Storage, dataDir)
	info.Endpoint = c.Analysis.Endpoint
	info.APIKeyIsSet = c.Analysis.APIKey != ""

	ui.StartScreen("HELP & SUPPORT", "prosecraft "+info.Version)
	fmt.Println(renderAbout(info))
	return nil
}

func renderAbout(info aboutInfo) string {
	const width = 12

	questions := []string{ui.TableHeader.Render("Frequently asked")}
	for _, q := range faqs {
		questions = append(questions, ui.Bold.Render(q.Question), ui.Paragraph(q.Answer))
	}

	key := "not set"
	if info.APIKeyIsSet {
		key = "set"
	}
	privacy := strings.Join([]string{
		ui.TableHeader.Render("Your data"),
		ui.Paragraph("Preferences and your account stay on this device. Passwords are stored as bcrypt hashes. Only the text you analyze is sent to the analysis API."),
		ui.KeyValue("Config", info.ConfigPath, width),
		ui.KeyValue("Storage", info.DataPath, width),
		ui.KeyValue("API", info.Endpoint, width),
		ui.KeyValue("API key", key, width),
	}, "\n")

	contact := strings.Join([]string{
		ui.TableHeader.Render("Contact"),
		ui.KeyValue("Email", supportEmail, width),
		ui.KeyValue("Diagnose", "prosecraft doctor", width),
	}, "\n")

	return joinBlocks([]string{strings.Join(questions, "\n"), privacy, contact})
}
