package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/lectorapp/lector/voices"
)

var voicesCmd = &cobra.Command{
	Use:   "voices",
	Short: "List the installed voices",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		dirs, err := resolvePaths()
		if err != nil {
			return err
		}
		library, err := voices.NewLibrary(dirs.voices)
		if err != nil {
			return err
		}

		installed := library.List()
		if len(installed) == 0 {
			fmt.Printf("No voices installed. Place piper .onnx models under %s\n", dirs.voices)
			return nil
		}

		idStyle := lipgloss.NewStyle().Bold(true)
		labelStyle := lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"})
		for _, v := range installed {
			fmt.Printf("%s  %s\n", idStyle.Render(v.ID), labelStyle.Render(v.Label))
		}
		return nil
	},
}
