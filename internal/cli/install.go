package cli

import (
	"github.com/playwright-community/playwright-go"
	"github.com/spf13/cobra"
)

// NewInstallCmd downloads the Playwright driver and a Chromium build. Run it
// once before the first start on a fresh host.
func NewInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Install the Playwright driver and Chromium",
		RunE: func(cmd *cobra.Command, args []string) error {
			return playwright.Install(&playwright.RunOptions{
				Browsers: []string{"chromium"},
			})
		},
	}
}
