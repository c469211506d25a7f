package commands

import (
	"bytes"

	"github.com/leapstack-labs/askql/internal/cli/config"
	"github.com/leapstack-labs/askql/internal/cli/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const noConfigFile = "(none, using defaults and environment)"

// NewConfigCommand creates the config command.
func NewConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration after merging defaults, the askql.yaml file,
ASKQL_ environment variables and flags, together with the file that was
used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfig(cmd)
		},
	}
}

// configReport is the JSON shape of the config command.
type configReport struct {
	File   string         `json:"file,omitempty"`
	Config *config.Config `json:"config"`
}

func runConfig(cmd *cobra.Command) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer
	file := config.GetConfigFileUsed()

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(configReport{File: file, Config: cc.Cfg})
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cc.Cfg); err != nil {
		return err
	}
	_ = enc.Close()

	shown := file
	if shown == "" {
		shown = noConfigFile
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		r.Header(2, "Configuration")
		r.Println()
		r.Println(output.FormatKeyValue("Config file", shown))
		r.Println()
		r.Println(output.FormatCodeBlock("yaml", buf.String()))
		return nil
	}

	r.Header(1, "Configuration")
	r.Muted("Config file: " + shown)
	r.Println(r.Styles().Box.Render(string(bytes.TrimRight(buf.Bytes(), "\n"))))
	return nil
}
